package service

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// deriveTrade creates the social-feed trade for a stored activity when it
// qualifies, returning (trade, created, error).
//
// Activities without a ticker or with a type outside {BUY, SELL} return
// (nil, false, nil): a deliberate non-error skip, counted as stored but not
// derived. An already-derived activity returns the existing trade unchanged,
// which makes re-running ingestion over stored activities safe.
//
// The trade insert is not transactional with the activity upsert; a failed
// insert leaves the stored activity in place and the next sync retries the
// derivation through this same at-most-once path.
func (s *SyncService) deriveTrade(stored model.StoredActivity, normalized snaptrade.NormalizedActivity, defaults model.PrivacyDefaults) (*model.Trade, bool, error) {
	if normalized.Ticker == nil || !model.IsTradeType(stored.ActivityType) {
		return nil, false, nil
	}

	existing, err := s.tradeRepo.GetBySourceActivity(stored.ID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	trade := model.Trade{
		ID:               uuid.NewString(),
		UserID:           stored.UserID,
		SourceActivityID: stored.ID,
		Symbol:           *normalized.Ticker,
		AssetType:        model.AssetTypeStock,
		TradeType:        stored.ActivityType,
		Quantity:         math.Abs(normalized.Units),
		Price:            normalized.Price,
		TotalValue:       math.Abs(normalized.Amount),
		Visibility:       defaults.Visibility,
		ShowAmounts:      defaults.ShowAmounts,
		ShowQuantity:     defaults.ShowQuantity,
		IsPublic:         defaults.IsPublic,
		ExecutedAt:       normalized.TradeDate,
		CreatedAt:        time.Now().UTC(),
	}

	if normalized.CompanyName != nil {
		trade.CompanyName = *normalized.CompanyName
	}

	// Placeholder until cost-basis tracking exists: the sale proceeds, not
	// a realized gain.
	if stored.ActivityType == model.ActivityTypeSell && normalized.Amount > 0 {
		proceeds := normalized.Amount
		trade.ProfitLoss = &proceeds
	}

	if err := s.tradeRepo.Create(trade); err != nil {
		return nil, false, err
	}

	return &trade, true, nil
}
