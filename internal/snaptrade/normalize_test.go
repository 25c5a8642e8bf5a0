package snaptrade

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalize_ResolvedSymbolPreferred(t *testing.T) {
	activity := Activity{
		ID:   "act-1",
		Type: "BUY",
		Symbol: &ActivitySymbol{
			RawSymbol:   "AAPL.TO",
			Description: "raw description",
			Symbol: &UniversalSymbol{
				Symbol:      "AAPL",
				Description: "Apple Inc.",
			},
		},
		Units:  floatPtr(10),
		Price:  floatPtr(150),
		Amount: floatPtr(1500),
	}

	normalized := Normalize(activity)

	if normalized.Ticker == nil || *normalized.Ticker != "AAPL" {
		t.Errorf("Expected resolved ticker AAPL, got %v", normalized.Ticker)
	}
	if normalized.CompanyName == nil || *normalized.CompanyName != "Apple Inc." {
		t.Errorf("Expected resolved company name, got %v", normalized.CompanyName)
	}
	if normalized.Units != 10 || normalized.Price != 150 || normalized.Amount != 1500 {
		t.Errorf("Unexpected numeric fields: %+v", normalized)
	}
}

func TestNormalize_RawSymbolFallback(t *testing.T) {
	activity := Activity{
		ID:   "act-2",
		Type: "BUY",
		Symbol: &ActivitySymbol{
			RawSymbol:   "BRK.B",
			Description: "Berkshire Hathaway",
		},
	}

	normalized := Normalize(activity)

	if normalized.Ticker == nil || *normalized.Ticker != "BRK.B" {
		t.Errorf("Expected raw_symbol fallback BRK.B, got %v", normalized.Ticker)
	}
	if normalized.CompanyName == nil || *normalized.CompanyName != "Berkshire Hathaway" {
		t.Errorf("Expected description fallback, got %v", normalized.CompanyName)
	}
}

func TestNormalize_AbsentSymbol(t *testing.T) {
	t.Run("no symbol object yields nil ticker", func(t *testing.T) {
		normalized := Normalize(Activity{ID: "act-3", Type: "DIVIDEND", Amount: floatPtr(12.5)})

		if normalized.Ticker != nil {
			t.Errorf("Expected nil ticker, got %v", *normalized.Ticker)
		}
		if normalized.CompanyName != nil {
			t.Errorf("Expected nil company name, got %v", *normalized.CompanyName)
		}
		if normalized.Amount != 12.5 {
			t.Errorf("Expected amount 12.5, got %v", normalized.Amount)
		}
	})

	t.Run("empty symbol object yields nil ticker", func(t *testing.T) {
		normalized := Normalize(Activity{ID: "act-4", Type: "BUY", Symbol: &ActivitySymbol{}})

		if normalized.Ticker != nil {
			t.Errorf("Expected nil ticker for empty symbol, got %v", *normalized.Ticker)
		}
	})
}

func TestNormalize_Currency(t *testing.T) {
	t.Run("defaults to USD", func(t *testing.T) {
		normalized := Normalize(Activity{ID: "act-5", Type: "BUY"})
		if normalized.CurrencyCode != "USD" {
			t.Errorf("Expected USD default, got %s", normalized.CurrencyCode)
		}
	})

	t.Run("activity currency wins", func(t *testing.T) {
		normalized := Normalize(Activity{
			ID:       "act-6",
			Type:     "BUY",
			Currency: &Currency{Code: "CAD"},
		})
		if normalized.CurrencyCode != "CAD" {
			t.Errorf("Expected CAD, got %s", normalized.CurrencyCode)
		}
	})

	t.Run("instrument currency fills in when activity has none", func(t *testing.T) {
		normalized := Normalize(Activity{
			ID:   "act-7",
			Type: "BUY",
			Symbol: &ActivitySymbol{
				Symbol: &UniversalSymbol{
					Symbol:   "SHOP",
					Currency: &Currency{Code: "CAD"},
				},
			},
		})
		if normalized.CurrencyCode != "CAD" {
			t.Errorf("Expected instrument currency CAD, got %s", normalized.CurrencyCode)
		}
	})
}

func TestNormalize_AbsentNumericFields(t *testing.T) {
	normalized := Normalize(Activity{ID: "act-8", Type: "BUY"})

	if normalized.Price != 0 || normalized.Units != 0 || normalized.Amount != 0 || normalized.Fee != 0 {
		t.Errorf("Expected all numeric fields zero, got %+v", normalized)
	}
}

func TestNormalize_Dates(t *testing.T) {
	t.Run("RFC3339 timestamp", func(t *testing.T) {
		normalized := Normalize(Activity{ID: "a", Type: "BUY", TradeDate: "2024-03-15T14:30:00Z"})

		want := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
		if normalized.TradeDate == nil || !normalized.TradeDate.Equal(want) {
			t.Errorf("Expected %v, got %v", want, normalized.TradeDate)
		}
	})

	t.Run("bare date", func(t *testing.T) {
		normalized := Normalize(Activity{ID: "a", Type: "BUY", SettlementDate: "2024-03-17"})

		want := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
		if normalized.SettlementDate == nil || !normalized.SettlementDate.Equal(want) {
			t.Errorf("Expected %v, got %v", want, normalized.SettlementDate)
		}
	})

	t.Run("unparseable degrades to nil", func(t *testing.T) {
		normalized := Normalize(Activity{ID: "a", Type: "BUY", TradeDate: "yesterday"})

		if normalized.TradeDate != nil {
			t.Errorf("Expected nil for unparseable date, got %v", normalized.TradeDate)
		}
	})

	t.Run("empty degrades to nil", func(t *testing.T) {
		normalized := Normalize(Activity{ID: "a", Type: "BUY"})

		if normalized.TradeDate != nil || normalized.SettlementDate != nil {
			t.Errorf("Expected nil dates, got %+v", normalized)
		}
	})
}
