package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// UserService handles application users and their aggregator registration.
// Aggregator user secrets are encrypted at rest with fernet when a key is
// configured; without a key they are stored as issued.
type UserService struct {
	client   snaptrade.Client
	userRepo *repository.UserRepository
	keys     []*fernet.Key
}

// NewUserService creates a new UserService. secretKey is the base64 fernet
// key for at-rest encryption of aggregator secrets; empty disables it.
func NewUserService(client snaptrade.Client, userRepo *repository.UserRepository, secretKey string) (*UserService, error) {
	service := &UserService{
		client:   client,
		userRepo: userRepo,
	}

	if secretKey != "" {
		keys, err := fernet.DecodeKeys(secretKey)
		if err != nil {
			return nil, fmt.Errorf("invalid secret encryption key: %w", err)
		}
		service.keys = keys
	}

	return service, nil
}

// Register creates an application user and registers them with the
// aggregator. The aggregator issues the user secret exactly once; it is
// stored (encrypted when a key is configured) alongside default privacy
// settings.
func (s *UserService) Register(ctx context.Context) (model.User, error) {
	userID := uuid.NewString()

	registered, err := s.client.RegisterUser(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	secret, err := s.encryptSecret(registered.UserSecret)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:              userID,
		SnaptradeUserID: registered.UserID,
		UserSecret:      secret,
		PrivacyDefaults: model.PrivacyDefaults{
			Visibility:   model.VisibilityPublic,
			ShowAmounts:  true,
			ShowQuantity: true,
			IsPublic:     true,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return model.User{}, err
	}

	user.UserSecret = registered.UserSecret
	return user, nil
}

// Delete removes the user at the aggregator and then locally. Activities
// and trades cascade with the local row.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := s.client.DeleteUser(ctx, user.SnaptradeUserID); err != nil {
		return err
	}

	return s.userRepo.Delete(userID)
}

// GetWithSecret retrieves a user with the aggregator secret decrypted, ready
// for aggregator calls.
func (s *UserService) GetWithSecret(userID string) (model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return model.User{}, err
	}

	user.UserSecret, err = s.decryptSecret(user.UserSecret)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *UserService) encryptSecret(secret string) (string, error) {
	if len(s.keys) == 0 {
		return secret, nil
	}
	token, err := fernet.EncryptAndSign([]byte(secret), s.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt user secret: %w", err)
	}
	return string(token), nil
}

func (s *UserService) decryptSecret(stored string) (string, error) {
	if len(s.keys) == 0 || stored == "" {
		return stored, nil
	}
	// TTL 0 disables expiry; secrets stay valid until rotated.
	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, s.keys)
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt user secret")
	}
	return string(plain), nil
}
