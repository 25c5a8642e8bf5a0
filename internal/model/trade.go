package model

import "time"

// AssetTypeStock is the default asset type for derived trades. Option and
// crypto classification would require instrument metadata the activity feed
// does not carry.
const AssetTypeStock = "stock"

// Trade is a simplified BUY/SELL record derived from a qualifying stored
// activity, used to populate the social feed.
//
// At most one trade exists per source activity (SourceActivityID is unique).
// Trades are created during ingestion and never updated by it; amendments to
// the source activity do not propagate.
type Trade struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	SourceActivityID string    `json:"sourceActivityId"`
	Symbol           string    `json:"symbol"`
	CompanyName      string    `json:"companyName,omitempty"`
	AssetType        string    `json:"assetType"`
	TradeType        string    `json:"tradeType"`
	Quantity         float64   `json:"quantity"`
	Price            float64   `json:"price"`
	TotalValue       float64   `json:"totalValue"`

	// ProfitLoss is populated only for SELL trades with a positive amount.
	// It is the signed sale proceeds, not a realized gain: no cost-basis
	// lookup is performed. Do not present this as financially accurate.
	ProfitLoss *float64 `json:"profitLoss,omitempty"`

	Visibility   string     `json:"visibility"`
	ShowAmounts  bool       `json:"showAmounts"`
	ShowQuantity bool       `json:"showQuantity"`
	IsPublic     bool       `json:"isPublic"`
	ExecutedAt   *time.Time `json:"executedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
