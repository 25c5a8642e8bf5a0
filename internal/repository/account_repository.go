package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
)

// AccountRepository provides data access methods for the brokerage_account
// table, same upsert discipline as connections.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Upsert inserts or fully updates an account keyed by its external id.
// Last write wins on every field including balances.
func (r *AccountRepository) Upsert(account model.BrokerageAccount) error {
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO brokerage_account (
			snaptrade_account_id, snaptrade_user_id, snaptrade_connection_id,
			name, number, institution_name, status, balance_amount, balance_currency,
			holdings_sync_initialized, holdings_last_sync_at,
			transactions_sync_initialized, transactions_last_sync_at,
			raw_account, raw_balance, raw_sync_status, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (snaptrade_account_id) DO UPDATE SET
			snaptrade_user_id = excluded.snaptrade_user_id,
			snaptrade_connection_id = excluded.snaptrade_connection_id,
			name = excluded.name,
			number = excluded.number,
			institution_name = excluded.institution_name,
			status = excluded.status,
			balance_amount = excluded.balance_amount,
			balance_currency = excluded.balance_currency,
			holdings_sync_initialized = excluded.holdings_sync_initialized,
			holdings_last_sync_at = excluded.holdings_last_sync_at,
			transactions_sync_initialized = excluded.transactions_sync_initialized,
			transactions_last_sync_at = excluded.transactions_last_sync_at,
			raw_account = excluded.raw_account,
			raw_balance = excluded.raw_balance,
			raw_sync_status = excluded.raw_sync_status,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		account.SnaptradeAccountID,
		account.SnaptradeUserID,
		account.SnaptradeConnectionID,
		account.Name,
		account.Number,
		account.InstitutionName,
		account.Status,
		account.BalanceAmount,
		account.BalanceCurrency,
		account.HoldingsSyncInitialized,
		formatNullTime(account.HoldingsLastSyncAt),
		account.TransactionsSyncInitialized,
		formatNullTime(account.TransactionsLastSyncAt),
		account.RawAccount,
		account.RawBalance,
		account.RawSyncStatus,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by its external id.
// Returns apperrors.ErrAccountNotFound when no row exists.
func (r *AccountRepository) GetByID(accountID string) (model.BrokerageAccount, error) {
	query := `
		SELECT snaptrade_account_id, snaptrade_user_id, snaptrade_connection_id,
			name, number, institution_name, status, balance_amount, balance_currency,
			holdings_sync_initialized, holdings_last_sync_at,
			transactions_sync_initialized, transactions_last_sync_at,
			raw_account, raw_balance, raw_sync_status, created_at, updated_at
		FROM brokerage_account
		WHERE snaptrade_account_id = ?
	`

	var a model.BrokerageAccount
	var connStr, nameStr, numberStr, institutionStr, statusStr, currencyStr sql.NullString
	var holdingsSyncStr, transactionsSyncStr, rawAccountStr, rawBalanceStr, rawSyncStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := r.db.QueryRow(query, accountID).Scan(
		&a.SnaptradeAccountID,
		&a.SnaptradeUserID,
		&connStr,
		&nameStr,
		&numberStr,
		&institutionStr,
		&statusStr,
		&a.BalanceAmount,
		&currencyStr,
		&a.HoldingsSyncInitialized,
		&holdingsSyncStr,
		&a.TransactionsSyncInitialized,
		&transactionsSyncStr,
		&rawAccountStr,
		&rawBalanceStr,
		&rawSyncStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.BrokerageAccount{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.BrokerageAccount{}, fmt.Errorf("failed to scan brokerage_account table results: %w", err)
	}

	if connStr.Valid {
		a.SnaptradeConnectionID = connStr.String
	}
	if nameStr.Valid {
		a.Name = nameStr.String
	}
	if numberStr.Valid {
		a.Number = numberStr.String
	}
	if institutionStr.Valid {
		a.InstitutionName = institutionStr.String
	}
	if statusStr.Valid {
		a.Status = statusStr.String
	}
	if currencyStr.Valid {
		a.BalanceCurrency = currencyStr.String
	}
	if rawAccountStr.Valid {
		a.RawAccount = rawAccountStr.String
	}
	if rawBalanceStr.Valid {
		a.RawBalance = rawBalanceStr.String
	}
	if rawSyncStr.Valid {
		a.RawSyncStatus = rawSyncStr.String
	}

	a.HoldingsLastSyncAt, err = scanNullTime(holdingsSyncStr)
	if err != nil {
		return model.BrokerageAccount{}, err
	}
	a.TransactionsLastSyncAt, err = scanNullTime(transactionsSyncStr)
	if err != nil {
		return model.BrokerageAccount{}, err
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.BrokerageAccount{}, fmt.Errorf("failed to parse date: %w", err)
	}
	a.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.BrokerageAccount{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return a, nil
}

// ListByUser lists accounts owned by an aggregator user id.
func (r *AccountRepository) ListByUser(snaptradeUserID string) ([]model.BrokerageAccount, error) {
	query := `
		SELECT snaptrade_account_id
		FROM brokerage_account
		WHERE snaptrade_user_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, snaptradeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query brokerage_account table: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan brokerage_account table results: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brokerage_account table: %w", err)
	}
	rows.Close()

	accounts := []model.BrokerageAccount{}
	for _, id := range ids {
		account, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}
