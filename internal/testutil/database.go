package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- User table
		CREATE TABLE IF NOT EXISTS user (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			snaptrade_user_id VARCHAR(100) NOT NULL UNIQUE,
			snaptrade_user_secret TEXT,
			default_visibility VARCHAR(10) NOT NULL DEFAULT 'public',
			default_show_amounts BOOLEAN NOT NULL DEFAULT TRUE,
			default_show_quantity BOOLEAN NOT NULL DEFAULT TRUE,
			default_is_public BOOLEAN NOT NULL DEFAULT TRUE,
			last_holdings_sync_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Brokerage connection table
		CREATE TABLE IF NOT EXISTS brokerage_connection (
			snaptrade_connection_id VARCHAR(100) NOT NULL PRIMARY KEY,
			snaptrade_user_id VARCHAR(100) NOT NULL,
			brokerage_name VARCHAR(100),
			brokerage_display_name VARCHAR(100),
			brokerage_slug VARCHAR(100),
			disabled BOOLEAN NOT NULL DEFAULT FALSE,
			disabled_at DATETIME,
			external_created_at DATETIME,
			last_sync_at DATETIME,
			raw_payload TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Brokerage account table
		CREATE TABLE IF NOT EXISTS brokerage_account (
			snaptrade_account_id VARCHAR(100) NOT NULL PRIMARY KEY,
			snaptrade_user_id VARCHAR(100) NOT NULL,
			snaptrade_connection_id VARCHAR(100),
			name VARCHAR(200),
			number VARCHAR(100),
			institution_name VARCHAR(200),
			status VARCHAR(50),
			balance_amount FLOAT NOT NULL DEFAULT 0,
			balance_currency VARCHAR(10),
			holdings_sync_initialized BOOLEAN NOT NULL DEFAULT FALSE,
			holdings_last_sync_at DATETIME,
			transactions_sync_initialized BOOLEAN NOT NULL DEFAULT FALSE,
			transactions_last_sync_at DATETIME,
			raw_account TEXT,
			raw_balance TEXT,
			raw_sync_status TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Ingested activities
		CREATE TABLE IF NOT EXISTS account_activity (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			snaptrade_account_id VARCHAR(100) NOT NULL,
			snaptrade_activity_id VARCHAR(100) NOT NULL,
			ticker VARCHAR(20),
			company_name VARCHAR(200),
			activity_type VARCHAR(30) NOT NULL,
			price FLOAT NOT NULL DEFAULT 0,
			units FLOAT NOT NULL DEFAULT 0,
			amount FLOAT NOT NULL DEFAULT 0,
			currency_code VARCHAR(10) NOT NULL DEFAULT 'USD',
			fee FLOAT NOT NULL DEFAULT 0,
			trade_date DATETIME,
			settlement_date DATETIME,
			institution VARCHAR(200),
			external_reference_id VARCHAR(100),
			raw_payload TEXT,
			sync_batch_id VARCHAR(36) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_synced_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES user(id) ON DELETE CASCADE,
			CONSTRAINT unique_account_activity UNIQUE (snaptrade_account_id, snaptrade_activity_id)
		);

		-- Derived social-feed trades
		CREATE TABLE IF NOT EXISTS trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			source_activity_id VARCHAR(36) NOT NULL UNIQUE,
			symbol VARCHAR(20) NOT NULL,
			company_name VARCHAR(200),
			asset_type VARCHAR(20) NOT NULL DEFAULT 'stock',
			trade_type VARCHAR(4) NOT NULL,
			quantity FLOAT NOT NULL DEFAULT 0,
			price FLOAT NOT NULL DEFAULT 0,
			total_value FLOAT NOT NULL DEFAULT 0,
			profit_loss FLOAT,
			visibility VARCHAR(10) NOT NULL DEFAULT 'public',
			show_amounts BOOLEAN NOT NULL DEFAULT TRUE,
			show_quantity BOOLEAN NOT NULL DEFAULT TRUE,
			is_public BOOLEAN NOT NULL DEFAULT TRUE,
			executed_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES user(id) ON DELETE CASCADE,
			FOREIGN KEY(source_activity_id) REFERENCES account_activity(id) ON DELETE CASCADE
		);
	`

	_, err := db.Exec(schema)
	return err
}
