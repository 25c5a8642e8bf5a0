package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/model"
)

// TradeRepository provides data access methods for the trade table.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create inserts a derived trade. The source_activity_id unique constraint
// backs the application-level at-most-once check.
func (r *TradeRepository) Create(trade model.Trade) error {
	query := `
		INSERT INTO trade (
			id, user_id, source_activity_id, symbol, company_name, asset_type,
			trade_type, quantity, price, total_value, profit_loss,
			visibility, show_amounts, show_quantity, is_public,
			executed_at, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var profitLoss interface{}
	if trade.ProfitLoss != nil {
		profitLoss = *trade.ProfitLoss
	}

	_, err := r.db.Exec(query,
		trade.ID,
		trade.UserID,
		trade.SourceActivityID,
		trade.Symbol,
		trade.CompanyName,
		trade.AssetType,
		trade.TradeType,
		trade.Quantity,
		trade.Price,
		trade.TotalValue,
		profitLoss,
		trade.Visibility,
		trade.ShowAmounts,
		trade.ShowQuantity,
		trade.IsPublic,
		formatNullTime(trade.ExecutedAt),
		trade.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// GetBySourceActivity looks up the trade derived from a stored activity.
// Returns (nil, nil) when none exists; derivation treats that as "create".
func (r *TradeRepository) GetBySourceActivity(activityID string) (*model.Trade, error) {
	query := `
		SELECT id, user_id, source_activity_id, symbol, company_name, asset_type,
			trade_type, quantity, price, total_value, profit_loss,
			visibility, show_amounts, show_quantity, is_public,
			executed_at, created_at
		FROM trade
		WHERE source_activity_id = ?
	`

	var t model.Trade
	var companyStr, executedAtStr sql.NullString
	var profitLoss sql.NullFloat64
	var createdAtStr string

	err := r.db.QueryRow(query, activityID).Scan(
		&t.ID,
		&t.UserID,
		&t.SourceActivityID,
		&t.Symbol,
		&companyStr,
		&t.AssetType,
		&t.TradeType,
		&t.Quantity,
		&t.Price,
		&t.TotalValue,
		&profitLoss,
		&t.Visibility,
		&t.ShowAmounts,
		&t.ShowQuantity,
		&t.IsPublic,
		&executedAtStr,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	if companyStr.Valid {
		t.CompanyName = companyStr.String
	}
	if profitLoss.Valid {
		value := profitLoss.Float64
		t.ProfitLoss = &value
	}

	t.ExecutedAt, err = scanNullTime(executedAtStr)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	return &t, nil
}

// CountByUser returns the number of derived trades for a user.
func (r *TradeRepository) CountByUser(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trade WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}
