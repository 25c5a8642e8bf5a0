package snaptrade

import "encoding/json"

// Activity represents one transaction/event record as returned by the
// aggregator (trade, dividend, fee, transfer, ...). All optional fields are
// pointers so that absence is distinguishable from a zero value; the
// normalizer owns the fallback decisions.
//
// Raw preserves the verbatim JSON of the record for forward compatibility
// and is carried into the activity store untouched.
type Activity struct {
	ID                  string          `json:"id"`
	Type                string          `json:"type"`
	Symbol              *ActivitySymbol `json:"symbol,omitempty"`
	Currency            *Currency       `json:"currency,omitempty"`
	Price               *float64        `json:"price,omitempty"`
	Units               *float64        `json:"units,omitempty"`
	Amount              *float64        `json:"amount,omitempty"`
	Fee                 *float64        `json:"fee,omitempty"`
	TradeDate           string          `json:"trade_date,omitempty"`
	SettlementDate      string          `json:"settlement_date,omitempty"`
	Institution         string          `json:"institution,omitempty"`
	ExternalReferenceID string          `json:"external_reference_id,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// ActivitySymbol is the embedded symbol object on an activity. The
// aggregator nests the resolved instrument under Symbol and keeps the
// broker-reported ticker in RawSymbol; either may be absent.
type ActivitySymbol struct {
	Symbol      *UniversalSymbol `json:"symbol,omitempty"`
	RawSymbol   string           `json:"raw_symbol,omitempty"`
	Description string           `json:"description,omitempty"`
	Currency    *Currency        `json:"currency,omitempty"`
}

// UniversalSymbol is the aggregator's resolved instrument record.
type UniversalSymbol struct {
	Symbol      string    `json:"symbol,omitempty"`
	RawSymbol   string    `json:"raw_symbol,omitempty"`
	Description string    `json:"description,omitempty"`
	Currency    *Currency `json:"currency,omitempty"`
}

// Currency is the aggregator's currency object.
type Currency struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// Pagination describes the aggregator's offset pagination envelope.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// ActivitiesPage is one page of account activities.
type ActivitiesPage struct {
	Data       []Activity `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Account represents a brokerage account as returned by the aggregator.
// Balance and sync-status are nested objects that may be partially or wholly
// absent; accessors below read them defensively.
type Account struct {
	ID                     string          `json:"id"`
	BrokerageAuthorization string          `json:"brokerage_authorization,omitempty"`
	Name                   string          `json:"name,omitempty"`
	Number                 string          `json:"number,omitempty"`
	InstitutionName        string          `json:"institution_name,omitempty"`
	Status                 string          `json:"status,omitempty"`
	Balance                *AccountBalance `json:"balance,omitempty"`
	SyncStatus             *SyncStatus     `json:"sync_status,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// AccountBalance nests the total balance under a separate object.
type AccountBalance struct {
	Total *BalanceTotal `json:"total,omitempty"`
}

// BalanceTotal is the innermost balance value.
type BalanceTotal struct {
	Amount   *float64 `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// SyncStatus reports per-dataset sync progress for an account.
type SyncStatus struct {
	Holdings     *DatasetSyncStatus `json:"holdings,omitempty"`
	Transactions *DatasetSyncStatus `json:"transactions,omitempty"`
}

// DatasetSyncStatus is the sync state of one dataset (holdings or
// transactions) for an account.
type DatasetSyncStatus struct {
	InitialSyncCompleted bool   `json:"initial_sync_completed"`
	LastSuccessfulSync   string `json:"last_successful_sync,omitempty"`
}

// BalanceAmount returns account.balance.total.amount, or 0 when any level of
// the nesting is absent.
func (a Account) BalanceAmount() float64 {
	if a.Balance == nil || a.Balance.Total == nil || a.Balance.Total.Amount == nil {
		return 0
	}
	return *a.Balance.Total.Amount
}

// BalanceCurrency returns account.balance.total.currency, or "" when absent.
func (a Account) BalanceCurrency() string {
	if a.Balance == nil || a.Balance.Total == nil {
		return ""
	}
	return a.Balance.Total.Currency
}

// Connection represents a brokerage authorization as returned by the
// aggregator.
type Connection struct {
	ID           string     `json:"id"`
	Brokerage    *Brokerage `json:"brokerage,omitempty"`
	Name         string     `json:"name,omitempty"`
	Disabled     bool       `json:"disabled"`
	DisabledDate string     `json:"disabled_date,omitempty"`
	CreatedDate  string     `json:"created_date,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Brokerage is the branding block on a connection.
type Brokerage struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// Position represents one holding in an account.
type Position struct {
	Symbol          *ActivitySymbol `json:"symbol,omitempty"`
	Units           *float64        `json:"units,omitempty"`
	Price           *float64        `json:"price,omitempty"`
	AveragePrice    *float64        `json:"average_purchase_price,omitempty"`
	OpenPnL         *float64        `json:"open_pnl,omitempty"`
	FractionalUnits *float64        `json:"fractional_units,omitempty"`
}

// RegisteredUser is the aggregator's response to user registration. The
// secret is issued once and must be stored by the caller.
type RegisteredUser struct {
	UserID     string `json:"userId"`
	UserSecret string `json:"userSecret"`
}

// PortalURL is the aggregator's connection-portal issuance response.
type PortalURL struct {
	RedirectURI string `json:"redirectURI"`
	SessionID   string `json:"sessionId,omitempty"`
}
