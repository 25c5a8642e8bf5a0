package model

import "time"

// Recognized trade activity types. Activities of any other type (dividends,
// fees, transfers, ...) are stored but never produce a derived trade.
const (
	ActivityTypeBuy  = "BUY"
	ActivityTypeSell = "SELL"
)

// StoredActivity represents one brokerage activity as persisted by the
// ingestion pipeline. Exactly one row exists per
// (snaptrade_account_id, snaptrade_activity_id) pair regardless of how many
// times ingestion runs; re-ingestion updates the row in place.
type StoredActivity struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"userId"`
	SnaptradeAccountID   string     `json:"snaptradeAccountId"`
	SnaptradeActivityID  string     `json:"snaptradeActivityId"`
	Ticker               *string    `json:"ticker,omitempty"`
	CompanyName          *string    `json:"companyName,omitempty"`
	ActivityType         string     `json:"activityType"`
	Price                float64    `json:"price"`
	Units                float64    `json:"units"`
	Amount               float64    `json:"amount"`
	CurrencyCode         string     `json:"currencyCode"`
	Fee                  float64    `json:"fee"`
	TradeDate            *time.Time `json:"tradeDate,omitempty"`
	SettlementDate       *time.Time `json:"settlementDate,omitempty"`
	Institution          string     `json:"institution,omitempty"`
	ExternalReferenceID  string     `json:"externalReferenceId,omitempty"`
	RawPayload           string     `json:"-"`
	SyncBatchID          string     `json:"syncBatchId"`
	CreatedAt            time.Time  `json:"createdAt"`
	LastSyncedAt         time.Time  `json:"lastSyncedAt"`
}

// IsTradeType reports whether an activity type belongs to the recognized
// trade-type set.
func IsTradeType(activityType string) bool {
	return activityType == ActivityTypeBuy || activityType == ActivityTypeSell
}
