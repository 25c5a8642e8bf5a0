package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
)

// UserRepository provides data access methods for the user table.
// It handles aggregator registration fields, privacy defaults, and the
// user-level last-sync timestamp.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row. The secret is stored as given; encryption
// is the service layer's concern.
func (r *UserRepository) Create(user model.User) error {
	query := `
		INSERT INTO user (id, snaptrade_user_id, snaptrade_user_secret,
			default_visibility, default_show_amounts, default_show_quantity, default_is_public,
			created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID,
		user.SnaptradeUserID,
		user.UserSecret,
		user.PrivacyDefaults.Visibility,
		user.PrivacyDefaults.ShowAmounts,
		user.PrivacyDefaults.ShowQuantity,
		user.PrivacyDefaults.IsPublic,
		user.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by application id.
// Returns apperrors.ErrUserNotFound when no row exists.
func (r *UserRepository) GetByID(userID string) (model.User, error) {
	query := `
		SELECT id, snaptrade_user_id, snaptrade_user_secret,
			default_visibility, default_show_amounts, default_show_quantity, default_is_public,
			last_holdings_sync_at, created_at
		FROM user
		WHERE id = ?
	`

	var u model.User
	var secretStr, lastSyncStr sql.NullString
	var createdAtStr string

	err := r.db.QueryRow(query, userID).Scan(
		&u.ID,
		&u.SnaptradeUserID,
		&secretStr,
		&u.PrivacyDefaults.Visibility,
		&u.PrivacyDefaults.ShowAmounts,
		&u.PrivacyDefaults.ShowQuantity,
		&u.PrivacyDefaults.IsPublic,
		&lastSyncStr,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	if secretStr.Valid {
		u.UserSecret = secretStr.String
	}

	u.LastHoldingsSyncAt, err = scanNullTime(lastSyncStr)
	if err != nil {
		return model.User{}, err
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return u, nil
}

// GetPrivacyDefaults retrieves only a user's standing trade-privacy settings.
// Returns apperrors.ErrUserNotFound when no row exists.
func (r *UserRepository) GetPrivacyDefaults(userID string) (model.PrivacyDefaults, error) {
	query := `
		SELECT default_visibility, default_show_amounts, default_show_quantity, default_is_public
		FROM user
		WHERE id = ?
	`

	var defaults model.PrivacyDefaults
	err := r.db.QueryRow(query, userID).Scan(
		&defaults.Visibility,
		&defaults.ShowAmounts,
		&defaults.ShowQuantity,
		&defaults.IsPublic,
	)
	if err == sql.ErrNoRows {
		return model.PrivacyDefaults{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.PrivacyDefaults{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	return defaults, nil
}

// UpdateLastHoldingsSync advances the user-level last-sync timestamp.
func (r *UserRepository) UpdateLastHoldingsSync(userID string, syncedAt time.Time) error {
	query := `
		UPDATE user
		SET last_holdings_sync_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, syncedAt.UTC().Format(time.RFC3339), userID)
	if err != nil {
		return fmt.Errorf("failed to update user last sync: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// List retrieves all users, oldest first. Used by the auto-sync scheduler.
func (r *UserRepository) List() ([]model.User, error) {
	query := `
		SELECT id
		FROM user
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user table results: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}
	rows.Close()

	users := []model.User{}
	for _, id := range ids {
		user, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// Delete removes a user row. Dependent activities and trades cascade.
func (r *UserRepository) Delete(userID string) error {
	result, err := r.db.Exec(`DELETE FROM user WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
