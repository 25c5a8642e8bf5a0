package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/testutil"
)

func TestUserRepository_CreateAndGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)

	user := model.User{
		ID:              testutil.MakeID(),
		SnaptradeUserID: testutil.MakeExternalID("st-user"),
		UserSecret:      "secret-token",
		PrivacyDefaults: model.PrivacyDefaults{
			Visibility:   model.VisibilityFollowers,
			ShowAmounts:  false,
			ShowQuantity: true,
			IsPublic:     true,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := repo.Create(user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	fetched, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if fetched.SnaptradeUserID != user.SnaptradeUserID {
		t.Errorf("Expected aggregator user id %s, got %s", user.SnaptradeUserID, fetched.SnaptradeUserID)
	}
	if fetched.UserSecret != "secret-token" {
		t.Errorf("Expected stored secret, got %q", fetched.UserSecret)
	}
	if fetched.PrivacyDefaults.Visibility != model.VisibilityFollowers {
		t.Errorf("Expected followers visibility, got %s", fetched.PrivacyDefaults.Visibility)
	}
	if fetched.PrivacyDefaults.ShowAmounts {
		t.Error("Expected show amounts disabled")
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)

	_, err := repo.GetByID(testutil.MakeID())
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_GetPrivacyDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)

	t.Run("returns stored defaults", func(t *testing.T) {
		user := testutil.NewUser().Private().Build(t, db)

		defaults, err := repo.GetPrivacyDefaults(user.ID)
		if err != nil {
			t.Fatalf("GetPrivacyDefaults failed: %v", err)
		}

		if defaults.Visibility != model.VisibilityPrivate {
			t.Errorf("Expected private visibility, got %s", defaults.Visibility)
		}
		if defaults.ShowAmounts || defaults.ShowQuantity || defaults.IsPublic {
			t.Errorf("Expected fully private defaults, got %+v", defaults)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.GetPrivacyDefaults(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_UpdateLastHoldingsSync(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)

	user := testutil.NewUser().Build(t, db)

	syncedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.UpdateLastHoldingsSync(user.ID, syncedAt); err != nil {
		t.Fatalf("UpdateLastHoldingsSync failed: %v", err)
	}

	fetched, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.LastHoldingsSyncAt == nil || !fetched.LastHoldingsSyncAt.Equal(syncedAt) {
		t.Errorf("Expected last sync %v, got %v", syncedAt, fetched.LastHoldingsSyncAt)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)

	user := testutil.NewUser().Build(t, db)
	testutil.NewStoredActivity(user.ID, testutil.MakeExternalID("acct")).Build(t, db)

	if err := repo.Delete(user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := repo.GetByID(user.ID); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after delete, got %v", err)
	}

	// Activities cascade with the user row.
	if got := testutil.CountRows(t, db, "account_activity"); got != 0 {
		t.Errorf("Expected activities to cascade, %d rows remain", got)
	}
}
