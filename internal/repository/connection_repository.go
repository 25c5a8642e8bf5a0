package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
)

// ConnectionRepository provides data access methods for the
// brokerage_connection table. Repeated saves of the same external connection
// id converge via an atomic upsert.
type ConnectionRepository struct {
	db *sql.DB
}

// NewConnectionRepository creates a new ConnectionRepository with the provided database connection.
func NewConnectionRepository(db *sql.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Upsert inserts or fully updates a connection keyed by its external id.
func (r *ConnectionRepository) Upsert(conn model.BrokerageConnection) error {
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO brokerage_connection (
			snaptrade_connection_id, snaptrade_user_id, brokerage_name,
			brokerage_display_name, brokerage_slug, disabled, disabled_at,
			external_created_at, last_sync_at, raw_payload, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (snaptrade_connection_id) DO UPDATE SET
			snaptrade_user_id = excluded.snaptrade_user_id,
			brokerage_name = excluded.brokerage_name,
			brokerage_display_name = excluded.brokerage_display_name,
			brokerage_slug = excluded.brokerage_slug,
			disabled = excluded.disabled,
			disabled_at = excluded.disabled_at,
			external_created_at = excluded.external_created_at,
			last_sync_at = excluded.last_sync_at,
			raw_payload = excluded.raw_payload,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		conn.SnaptradeConnectionID,
		conn.SnaptradeUserID,
		conn.BrokerageName,
		conn.BrokerageDisplayName,
		conn.BrokerageSlug,
		conn.Disabled,
		formatNullTime(conn.DisabledAt),
		formatNullTime(conn.ExternalCreatedAt),
		formatNullTime(conn.LastSyncAt),
		conn.RawPayload,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert connection: %w", err)
	}
	return nil
}

// GetByID retrieves a connection by its external id.
// Returns apperrors.ErrConnectionNotFound when no row exists.
func (r *ConnectionRepository) GetByID(connectionID string) (model.BrokerageConnection, error) {
	query := `
		SELECT snaptrade_connection_id, snaptrade_user_id, brokerage_name,
			brokerage_display_name, brokerage_slug, disabled, disabled_at,
			external_created_at, last_sync_at, raw_payload, created_at, updated_at
		FROM brokerage_connection
		WHERE snaptrade_connection_id = ?
	`

	var c model.BrokerageConnection
	var nameStr, displayStr, slugStr, disabledAtStr, externalCreatedStr, lastSyncStr, rawStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := r.db.QueryRow(query, connectionID).Scan(
		&c.SnaptradeConnectionID,
		&c.SnaptradeUserID,
		&nameStr,
		&displayStr,
		&slugStr,
		&c.Disabled,
		&disabledAtStr,
		&externalCreatedStr,
		&lastSyncStr,
		&rawStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.BrokerageConnection{}, apperrors.ErrConnectionNotFound
	}
	if err != nil {
		return model.BrokerageConnection{}, fmt.Errorf("failed to scan brokerage_connection table results: %w", err)
	}

	if nameStr.Valid {
		c.BrokerageName = nameStr.String
	}
	if displayStr.Valid {
		c.BrokerageDisplayName = displayStr.String
	}
	if slugStr.Valid {
		c.BrokerageSlug = slugStr.String
	}
	if rawStr.Valid {
		c.RawPayload = rawStr.String
	}

	c.DisabledAt, err = scanNullTime(disabledAtStr)
	if err != nil {
		return model.BrokerageConnection{}, err
	}
	c.ExternalCreatedAt, err = scanNullTime(externalCreatedStr)
	if err != nil {
		return model.BrokerageConnection{}, err
	}
	c.LastSyncAt, err = scanNullTime(lastSyncStr)
	if err != nil {
		return model.BrokerageConnection{}, err
	}

	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.BrokerageConnection{}, fmt.Errorf("failed to parse date: %w", err)
	}
	c.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.BrokerageConnection{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return c, nil
}
