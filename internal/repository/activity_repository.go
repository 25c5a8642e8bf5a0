package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
)

// ActivityRepository provides data access methods for the account_activity
// table. The (snaptrade_account_id, snaptrade_activity_id) pair is the
// idempotency key: re-ingestion updates in place rather than duplicating.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new ActivityRepository with the provided database connection.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Upsert stores one activity, keyed by (account id, external activity id).
//
// The insert and the conflict update are a single atomic statement; the
// conflict path performs a full-field update since the latest fetch is
// authoritative. last_synced_at advances on both paths so per-activity
// staleness stays measurable. The row id is returned so the trade deriver
// can link back.
func (r *ActivityRepository) Upsert(activity model.StoredActivity) (model.StoredActivity, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO account_activity (
			id, user_id, snaptrade_account_id, snaptrade_activity_id,
			ticker, company_name, activity_type, price, units, amount,
			currency_code, fee, trade_date, settlement_date, institution,
			external_reference_id, raw_payload, sync_batch_id, created_at, last_synced_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (snaptrade_account_id, snaptrade_activity_id) DO UPDATE SET
			user_id = excluded.user_id,
			ticker = excluded.ticker,
			company_name = excluded.company_name,
			activity_type = excluded.activity_type,
			price = excluded.price,
			units = excluded.units,
			amount = excluded.amount,
			currency_code = excluded.currency_code,
			fee = excluded.fee,
			trade_date = excluded.trade_date,
			settlement_date = excluded.settlement_date,
			institution = excluded.institution,
			external_reference_id = excluded.external_reference_id,
			raw_payload = excluded.raw_payload,
			sync_batch_id = excluded.sync_batch_id,
			last_synced_at = excluded.last_synced_at
		RETURNING id, created_at
	`

	var rowID, createdAtStr string
	err := r.db.QueryRow(query,
		activity.ID,
		activity.UserID,
		activity.SnaptradeAccountID,
		activity.SnaptradeActivityID,
		nullString(activity.Ticker),
		nullString(activity.CompanyName),
		activity.ActivityType,
		activity.Price,
		activity.Units,
		activity.Amount,
		activity.CurrencyCode,
		activity.Fee,
		formatNullTime(activity.TradeDate),
		formatNullTime(activity.SettlementDate),
		activity.Institution,
		activity.ExternalReferenceID,
		activity.RawPayload,
		activity.SyncBatchID,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	).Scan(&rowID, &createdAtStr)
	if err != nil {
		return model.StoredActivity{}, fmt.Errorf("failed to upsert activity: %w", err)
	}

	// RETURNING reports the surviving row: on the update path the id and
	// created_at belong to the original insert.
	activity.ID = rowID
	activity.LastSyncedAt = now
	activity.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.StoredActivity{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return activity, nil
}

// GetByExternalID retrieves a stored activity by its idempotency key.
// Returns apperrors.ErrActivityNotFound when no row exists.
func (r *ActivityRepository) GetByExternalID(accountID, activityID string) (model.StoredActivity, error) {
	query := `
		SELECT id, user_id, snaptrade_account_id, snaptrade_activity_id,
			ticker, company_name, activity_type, price, units, amount,
			currency_code, fee, trade_date, settlement_date, institution,
			external_reference_id, raw_payload, sync_batch_id, created_at, last_synced_at
		FROM account_activity
		WHERE snaptrade_account_id = ? AND snaptrade_activity_id = ?
	`

	var a model.StoredActivity
	var tickerStr, companyStr, tradeDateStr, settlementDateStr, institutionStr, refStr, rawStr sql.NullString
	var createdAtStr, lastSyncedAtStr string

	err := r.db.QueryRow(query, accountID, activityID).Scan(
		&a.ID,
		&a.UserID,
		&a.SnaptradeAccountID,
		&a.SnaptradeActivityID,
		&tickerStr,
		&companyStr,
		&a.ActivityType,
		&a.Price,
		&a.Units,
		&a.Amount,
		&a.CurrencyCode,
		&a.Fee,
		&tradeDateStr,
		&settlementDateStr,
		&institutionStr,
		&refStr,
		&rawStr,
		&a.SyncBatchID,
		&createdAtStr,
		&lastSyncedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.StoredActivity{}, apperrors.ErrActivityNotFound
	}
	if err != nil {
		return model.StoredActivity{}, fmt.Errorf("failed to scan account_activity table results: %w", err)
	}

	a.Ticker = stringPtr(tickerStr)
	a.CompanyName = stringPtr(companyStr)
	if institutionStr.Valid {
		a.Institution = institutionStr.String
	}
	if refStr.Valid {
		a.ExternalReferenceID = refStr.String
	}
	if rawStr.Valid {
		a.RawPayload = rawStr.String
	}

	a.TradeDate, err = scanNullTime(tradeDateStr)
	if err != nil {
		return model.StoredActivity{}, err
	}
	a.SettlementDate, err = scanNullTime(settlementDateStr)
	if err != nil {
		return model.StoredActivity{}, err
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.StoredActivity{}, fmt.Errorf("failed to parse date: %w", err)
	}
	a.LastSyncedAt, err = ParseTime(lastSyncedAtStr)
	if err != nil {
		return model.StoredActivity{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return a, nil
}

// CountByAccount returns the number of stored activities for an account.
func (r *ActivityRepository) CountByAccount(accountID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM account_activity WHERE snaptrade_account_id = ?`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}
