package testutil

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// MockSnaptradeClient is a mock implementation of snaptrade.Client for
// testing. It returns predefined data instead of making API calls.
type MockSnaptradeClient struct {
	// Activities is returned, windowed by offset/limit, from FetchAccountActivities.
	Activities []snaptrade.Activity
	// Accounts is returned from ListAccounts / GetAccountDetails.
	Accounts []snaptrade.Account
	// Connections is returned from ListConnections.
	Connections []snaptrade.Connection
	// Positions is returned from the position methods.
	Positions []snaptrade.Position
	// RegisterResponse is returned from RegisterUser.
	RegisterResponse snaptrade.RegisteredUser
	// Err, when set, is returned from every method.
	Err error
	// FetchCount tracks how many activity pages were requested.
	FetchCount int
}

// NewMockSnaptradeClient creates an empty mock aggregator client.
func NewMockSnaptradeClient() *MockSnaptradeClient {
	return &MockSnaptradeClient{}
}

// WithActivities configures the activity feed.
func (m *MockSnaptradeClient) WithActivities(activities ...snaptrade.Activity) *MockSnaptradeClient {
	m.Activities = activities
	return m
}

// WithError configures the mock to fail every call with err.
func (m *MockSnaptradeClient) WithError(err error) *MockSnaptradeClient {
	m.Err = err
	return m
}

// FetchAccountActivities returns the configured activities windowed by
// offset/limit, with pagination totals filled in.
func (m *MockSnaptradeClient) FetchAccountActivities(_ context.Context, _, _, _ string, offset, limit int) (snaptrade.ActivitiesPage, error) {
	m.FetchCount++
	if m.Err != nil {
		return snaptrade.ActivitiesPage{}, m.Err
	}

	page := snaptrade.ActivitiesPage{
		Pagination: snaptrade.Pagination{Offset: offset, Limit: limit, Total: len(m.Activities)},
	}
	if offset >= len(m.Activities) {
		return page, nil
	}
	end := offset + limit
	if end > len(m.Activities) {
		end = len(m.Activities)
	}
	page.Data = m.Activities[offset:end]
	return page, nil
}

// ListAccounts returns the configured accounts.
func (m *MockSnaptradeClient) ListAccounts(_ context.Context, _, _ string) ([]snaptrade.Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Accounts, nil
}

// GetAccountDetails returns the first configured account.
func (m *MockSnaptradeClient) GetAccountDetails(_ context.Context, _, _, _ string) (snaptrade.Account, error) {
	if m.Err != nil {
		return snaptrade.Account{}, m.Err
	}
	if len(m.Accounts) == 0 {
		return snaptrade.Account{}, fmt.Errorf("no accounts configured")
	}
	return m.Accounts[0], nil
}

// ListPositions returns the configured positions.
func (m *MockSnaptradeClient) ListPositions(_ context.Context, _, _, _ string) ([]snaptrade.Position, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Positions, nil
}

// ListOptionPositions returns the configured positions.
func (m *MockSnaptradeClient) ListOptionPositions(_ context.Context, _, _, _ string) ([]snaptrade.Position, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Positions, nil
}

// ListConnections returns the configured connections.
func (m *MockSnaptradeClient) ListConnections(_ context.Context, _, _ string) ([]snaptrade.Connection, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Connections, nil
}

// DeleteConnection succeeds unless Err is set.
func (m *MockSnaptradeClient) DeleteConnection(_ context.Context, _, _, _ string) error {
	return m.Err
}

// CreateConnectionPortalURL returns a static portal link.
func (m *MockSnaptradeClient) CreateConnectionPortalURL(_ context.Context, _, _, _ string) (snaptrade.PortalURL, error) {
	if m.Err != nil {
		return snaptrade.PortalURL{}, m.Err
	}
	return snaptrade.PortalURL{RedirectURI: "https://portal.test/login", SessionID: "session-1"}, nil
}

// RegisterUser echoes the requested user id with a fixed secret unless a
// response is configured.
func (m *MockSnaptradeClient) RegisterUser(_ context.Context, userID string) (snaptrade.RegisteredUser, error) {
	if m.Err != nil {
		return snaptrade.RegisteredUser{}, m.Err
	}
	if m.RegisterResponse.UserID != "" {
		return m.RegisterResponse, nil
	}
	return snaptrade.RegisteredUser{UserID: userID, UserSecret: "issued-secret"}, nil
}

// DeleteUser succeeds unless Err is set.
func (m *MockSnaptradeClient) DeleteUser(_ context.Context, _ string) error {
	return m.Err
}

// MakeBuyActivity creates an aggregator BUY activity with a resolved symbol
// and a verbatim raw payload.
func MakeBuyActivity(id, ticker string, units, price, amount float64) snaptrade.Activity {
	activity := snaptrade.Activity{
		ID:   id,
		Type: "BUY",
		Symbol: &snaptrade.ActivitySymbol{
			RawSymbol: ticker,
			Symbol: &snaptrade.UniversalSymbol{
				Symbol:      ticker,
				Description: ticker + " Inc.",
			},
		},
		Units:     &units,
		Price:     &price,
		Amount:    &amount,
		TradeDate: "2024-01-01T00:00:00Z",
	}
	return withRaw(activity)
}

// MakeSellActivity creates an aggregator SELL activity.
func MakeSellActivity(id, ticker string, units, price, amount float64) snaptrade.Activity {
	activity := MakeBuyActivity(id, ticker, units, price, amount)
	activity.Type = "SELL"
	return withRaw(activity)
}

// MakeDividendActivity creates a non-trade activity with no symbol.
func MakeDividendActivity(id string, amount float64) snaptrade.Activity {
	activity := snaptrade.Activity{
		ID:     id,
		Type:   "DIVIDEND",
		Amount: &amount,
	}
	return withRaw(activity)
}

// withRaw fills Raw with the activity's own JSON, mirroring what the real
// client preserves from the wire.
func withRaw(activity snaptrade.Activity) snaptrade.Activity {
	raw, err := json.Marshal(activity)
	if err == nil {
		activity.Raw = raw
	}
	return activity
}
