package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tradepulse/Social-Trading-Backend/internal/model"
)

// MakeID generates a UUID string for test entities.
func MakeID() string {
	return uuid.NewString()
}

// MakeExternalID generates an aggregator-style opaque id with the given prefix.
func MakeExternalID(prefix string) string {
	return fmt.Sprintf("%s-%06d", prefix, rand.Intn(1000000))
}

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithVisibility(model.VisibilityPrivate).
//	    WithShowAmounts(false).
//	    Build(t, db)
type UserBuilder struct {
	ID              string
	SnaptradeUserID string
	UserSecret      string
	Visibility      string
	ShowAmounts     bool
	ShowQuantity    bool
	IsPublic        bool
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:              MakeID(),
		SnaptradeUserID: MakeExternalID("st-user"),
		UserSecret:      "test-secret",
		Visibility:      model.VisibilityPublic,
		ShowAmounts:     true,
		ShowQuantity:    true,
		IsPublic:        true,
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithSnaptradeUserID sets a custom aggregator user id.
func (b *UserBuilder) WithSnaptradeUserID(id string) *UserBuilder {
	b.SnaptradeUserID = id
	return b
}

// WithVisibility sets the default trade visibility.
func (b *UserBuilder) WithVisibility(visibility string) *UserBuilder {
	b.Visibility = visibility
	return b
}

// WithShowAmounts sets the default show-amounts flag.
func (b *UserBuilder) WithShowAmounts(show bool) *UserBuilder {
	b.ShowAmounts = show
	return b
}

// WithShowQuantity sets the default show-quantity flag.
func (b *UserBuilder) WithShowQuantity(show bool) *UserBuilder {
	b.ShowQuantity = show
	return b
}

// Private marks the user's defaults as fully private.
func (b *UserBuilder) Private() *UserBuilder {
	b.Visibility = model.VisibilityPrivate
	b.ShowAmounts = false
	b.ShowQuantity = false
	b.IsPublic = false
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	query := `
		INSERT INTO user (id, snaptrade_user_id, snaptrade_user_secret,
			default_visibility, default_show_amounts, default_show_quantity, default_is_public,
			created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.SnaptradeUserID, b.UserSecret,
		b.Visibility, b.ShowAmounts, b.ShowQuantity, b.IsPublic,
		now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:              b.ID,
		SnaptradeUserID: b.SnaptradeUserID,
		UserSecret:      b.UserSecret,
		PrivacyDefaults: model.PrivacyDefaults{
			Visibility:   b.Visibility,
			ShowAmounts:  b.ShowAmounts,
			ShowQuantity: b.ShowQuantity,
			IsPublic:     b.IsPublic,
		},
		CreatedAt: now,
	}
}

// StoredActivityBuilder provides a fluent interface for creating stored
// activities directly in the database, bypassing the sync pipeline.
type StoredActivityBuilder struct {
	ID                  string
	UserID              string
	SnaptradeAccountID  string
	SnaptradeActivityID string
	Ticker              *string
	ActivityType        string
	Price               float64
	Units               float64
	Amount              float64
	SyncBatchID         string
}

// NewStoredActivity creates a StoredActivityBuilder with BUY defaults for
// the given user and account.
func NewStoredActivity(userID, accountID string) *StoredActivityBuilder {
	ticker := "AAPL"
	return &StoredActivityBuilder{
		ID:                  MakeID(),
		UserID:              userID,
		SnaptradeAccountID:  accountID,
		SnaptradeActivityID: MakeExternalID("act"),
		Ticker:              &ticker,
		ActivityType:        model.ActivityTypeBuy,
		Price:               150,
		Units:               10,
		Amount:              1500,
		SyncBatchID:         MakeID(),
	}
}

// WithType sets the activity type.
func (b *StoredActivityBuilder) WithType(activityType string) *StoredActivityBuilder {
	b.ActivityType = activityType
	return b
}

// WithTicker sets the ticker. Pass nil for a symbol-less activity.
func (b *StoredActivityBuilder) WithTicker(ticker *string) *StoredActivityBuilder {
	b.Ticker = ticker
	return b
}

// WithAmount sets the amount.
func (b *StoredActivityBuilder) WithAmount(amount float64) *StoredActivityBuilder {
	b.Amount = amount
	return b
}

// Build creates the stored activity in the database and returns it.
func (b *StoredActivityBuilder) Build(t *testing.T, db *sql.DB) model.StoredActivity {
	t.Helper()

	query := `
		INSERT INTO account_activity (id, user_id, snaptrade_account_id, snaptrade_activity_id,
			ticker, activity_type, price, units, amount, currency_code, sync_batch_id,
			created_at, last_synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'USD', ?, ?, ?)
	`

	now := time.Now().UTC()
	var ticker interface{}
	if b.Ticker != nil {
		ticker = *b.Ticker
	}

	_, err := db.Exec(query, b.ID, b.UserID, b.SnaptradeAccountID, b.SnaptradeActivityID,
		ticker, b.ActivityType, b.Price, b.Units, b.Amount, b.SyncBatchID,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test activity: %v", err)
	}

	return model.StoredActivity{
		ID:                  b.ID,
		UserID:              b.UserID,
		SnaptradeAccountID:  b.SnaptradeAccountID,
		SnaptradeActivityID: b.SnaptradeActivityID,
		Ticker:              b.Ticker,
		ActivityType:        b.ActivityType,
		Price:               b.Price,
		Units:               b.Units,
		Amount:              b.Amount,
		CurrencyCode:        "USD",
		SyncBatchID:         b.SyncBatchID,
		CreatedAt:           now,
		LastSyncedAt:        now,
	}
}

// CountRows returns the number of rows in a table, failing the test on error.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}
