package model

import "time"

// BrokerageAccount represents one brokerage account under a connection.
// At most one row exists per external account id, same upsert discipline as
// connections. Raw payload blobs are preserved verbatim for forward
// compatibility with aggregator schema changes.
type BrokerageAccount struct {
	SnaptradeAccountID          string     `json:"snaptradeAccountId"`
	SnaptradeUserID             string     `json:"snaptradeUserId"`
	SnaptradeConnectionID       string     `json:"snaptradeConnectionId"`
	Name                        string     `json:"name,omitempty"`
	Number                      string     `json:"number,omitempty"`
	InstitutionName             string     `json:"institutionName,omitempty"`
	Status                      string     `json:"status,omitempty"`
	BalanceAmount               float64    `json:"balanceAmount"`
	BalanceCurrency             string     `json:"balanceCurrency,omitempty"`
	HoldingsSyncInitialized     bool       `json:"holdingsSyncInitialized"`
	HoldingsLastSyncAt          *time.Time `json:"holdingsLastSyncAt,omitempty"`
	TransactionsSyncInitialized bool       `json:"transactionsSyncInitialized"`
	TransactionsLastSyncAt      *time.Time `json:"transactionsLastSyncAt,omitempty"`
	RawAccount                  string     `json:"-"`
	RawBalance                  string     `json:"-"`
	RawSyncStatus               string     `json:"-"`
	CreatedAt                   time.Time  `json:"createdAt"`
	UpdatedAt                   time.Time  `json:"updatedAt"`
}

// AccountSaveResult reports the outcome of upserting a single account within
// a batch. Batch operations always report per-item outcome, never a single
// pass/fail for the whole batch.
type AccountSaveResult struct {
	SnaptradeAccountID string `json:"snaptradeAccountId"`
	Success            bool   `json:"success"`
	Error              string `json:"error,omitempty"`
}

// AccountSaveSummary aggregates a batch account save.
type AccountSaveSummary struct {
	Success int `json:"success"`
	Error   int `json:"error"`
}
