package snaptrade

import "time"

// NormalizedActivity is the canonical shape extracted from a heterogeneous
// aggregator activity record. A nil Ticker means "not tradable", not a
// fault; downstream consumers must treat it as a soft skip.
type NormalizedActivity struct {
	Ticker              *string
	CompanyName         *string
	CurrencyCode        string
	Price               float64
	Units               float64
	Amount              float64
	Fee                 float64
	TradeDate           *time.Time
	SettlementDate      *time.Time
	Institution         string
	ExternalReferenceID string
}

// Normalize extracts the canonical fields from an aggregator activity.
//
// It is a pure function and never fails: absent fields degrade to nil, zero,
// or a documented default, so one malformed record cannot abort a batch.
// The "USD" currency fallback is a deliberate default for records that carry
// no currency at all, not an inferred value.
func Normalize(activity Activity) NormalizedActivity {
	normalized := NormalizedActivity{
		CurrencyCode:        "USD",
		Price:               floatOrZero(activity.Price),
		Units:               floatOrZero(activity.Units),
		Amount:              floatOrZero(activity.Amount),
		Fee:                 floatOrZero(activity.Fee),
		TradeDate:           parseExternalDate(activity.TradeDate),
		SettlementDate:      parseExternalDate(activity.SettlementDate),
		Institution:         activity.Institution,
		ExternalReferenceID: activity.ExternalReferenceID,
	}

	if activity.Currency != nil && activity.Currency.Code != "" {
		normalized.CurrencyCode = activity.Currency.Code
	}

	if activity.Symbol == nil {
		return normalized
	}

	// Prefer the resolved instrument over the broker-reported raw ticker.
	ticker := activity.Symbol.RawSymbol
	company := activity.Symbol.Description
	if activity.Symbol.Symbol != nil {
		if activity.Symbol.Symbol.Symbol != "" {
			ticker = activity.Symbol.Symbol.Symbol
		}
		if activity.Symbol.Symbol.Description != "" {
			company = activity.Symbol.Symbol.Description
		}
		if normalized.CurrencyCode == "USD" && activity.Currency == nil &&
			activity.Symbol.Symbol.Currency != nil && activity.Symbol.Symbol.Currency.Code != "" {
			normalized.CurrencyCode = activity.Symbol.Symbol.Currency.Code
		}
	}

	if ticker != "" {
		normalized.Ticker = &ticker
	}
	if company != "" {
		normalized.CompanyName = &company
	}

	return normalized
}

func floatOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

// parseExternalDate parses the aggregator's date strings, which arrive as
// either RFC3339 timestamps or bare dates. Unparseable input degrades to
// nil rather than erroring.
func parseExternalDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
		if err != nil {
			return nil
		}
	}

	parsed = parsed.UTC()
	return &parsed
}
