// Package snaptrade provides a typed client for the brokerage aggregation
// API and the normalization of its activity records into the shape the
// ingestion pipeline stores.
package snaptrade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Client defines the aggregator operations consumed by the application.
// This interface enables dependency injection and testing with mock
// implementations.
type Client interface {
	FetchAccountActivities(ctx context.Context, userID, userSecret, accountID string, offset, limit int) (ActivitiesPage, error)
	ListAccounts(ctx context.Context, userID, userSecret string) ([]Account, error)
	GetAccountDetails(ctx context.Context, userID, userSecret, accountID string) (Account, error)
	ListPositions(ctx context.Context, userID, userSecret, accountID string) ([]Position, error)
	ListOptionPositions(ctx context.Context, userID, userSecret, accountID string) ([]Position, error)
	ListConnections(ctx context.Context, userID, userSecret string) ([]Connection, error)
	DeleteConnection(ctx context.Context, userID, userSecret, connectionID string) error
	CreateConnectionPortalURL(ctx context.Context, userID, userSecret, brokerSlug string) (PortalURL, error)
	RegisterUser(ctx context.Context, userID string) (RegisteredUser, error)
	DeleteUser(ctx context.Context, userID string) error
}

// APIClient talks to the hosted aggregator over HTTP. Requests carry the
// application's client id and consumer key; per-user credentials travel as
// query parameters, matching the aggregator's API contract.
type APIClient struct {
	baseURL     string
	clientID    string
	consumerKey string
	httpClient  *http.Client
}

// NewAPIClient creates an aggregator client with default HTTP settings.
func NewAPIClient(baseURL, clientID, consumerKey string) *APIClient {
	return &APIClient{
		baseURL:     baseURL,
		clientID:    clientID,
		consumerKey: consumerKey,
		httpClient:  &http.Client{},
	}
}

// apiError is the aggregator's error envelope.
type apiError struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// FetchAccountActivities fetches one page of activities for an account.
// Each returned Activity carries its verbatim JSON in Raw.
func (c *APIClient) FetchAccountActivities(ctx context.Context, userID, userSecret, accountID string, offset, limit int) (ActivitiesPage, error) {
	params := c.userParams(userID, userSecret)
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%s/activities", url.PathEscape(accountID)), params, nil)
	if err != nil {
		return ActivitiesPage{}, err
	}

	// Decode the envelope with raw items first so each activity's verbatim
	// payload survives into storage.
	var envelope struct {
		Data       []json.RawMessage `json:"data"`
		Pagination Pagination        `json:"pagination"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ActivitiesPage{}, fmt.Errorf("failed to parse activities response: %w", err)
	}

	page := ActivitiesPage{Pagination: envelope.Pagination}
	for _, raw := range envelope.Data {
		var activity Activity
		if err := json.Unmarshal(raw, &activity); err != nil {
			return ActivitiesPage{}, fmt.Errorf("failed to parse activity record: %w", err)
		}
		activity.Raw = raw
		page.Data = append(page.Data, activity)
	}

	return page, nil
}

// ListAccounts lists all brokerage accounts held by the aggregator user.
func (c *APIClient) ListAccounts(ctx context.Context, userID, userSecret string) ([]Account, error) {
	data, err := c.do(ctx, http.MethodGet, "/accounts", c.userParams(userID, userSecret), nil)
	if err != nil {
		return nil, err
	}
	return parseAccounts(data)
}

// GetAccountDetails fetches a single account with balance and sync status.
func (c *APIClient) GetAccountDetails(ctx context.Context, userID, userSecret, accountID string) (Account, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%s", url.PathEscape(accountID)), c.userParams(userID, userSecret), nil)
	if err != nil {
		return Account{}, err
	}

	var account Account
	if err := json.Unmarshal(data, &account); err != nil {
		return Account{}, fmt.Errorf("failed to parse account response: %w", err)
	}
	account.Raw = data
	return account, nil
}

// ListPositions lists equity positions for an account.
func (c *APIClient) ListPositions(ctx context.Context, userID, userSecret, accountID string) ([]Position, error) {
	return c.listPositions(ctx, userID, userSecret, accountID, "positions")
}

// ListOptionPositions lists option positions for an account.
func (c *APIClient) ListOptionPositions(ctx context.Context, userID, userSecret, accountID string) ([]Position, error) {
	return c.listPositions(ctx, userID, userSecret, accountID, "options")
}

func (c *APIClient) listPositions(ctx context.Context, userID, userSecret, accountID, kind string) ([]Position, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%s/%s", url.PathEscape(accountID), kind), c.userParams(userID, userSecret), nil)
	if err != nil {
		return nil, err
	}

	var positions []Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to parse positions response: %w", err)
	}
	return positions, nil
}

// ListConnections lists the user's brokerage authorizations.
func (c *APIClient) ListConnections(ctx context.Context, userID, userSecret string) ([]Connection, error) {
	data, err := c.do(ctx, http.MethodGet, "/authorizations", c.userParams(userID, userSecret), nil)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse connections response: %w", err)
	}

	connections := make([]Connection, 0, len(raws))
	for _, raw := range raws {
		var conn Connection
		if err := json.Unmarshal(raw, &conn); err != nil {
			return nil, fmt.Errorf("failed to parse connection record: %w", err)
		}
		conn.Raw = raw
		connections = append(connections, conn)
	}
	return connections, nil
}

// DeleteConnection removes a brokerage authorization at the aggregator.
func (c *APIClient) DeleteConnection(ctx context.Context, userID, userSecret, connectionID string) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/authorizations/%s", url.PathEscape(connectionID)), c.userParams(userID, userSecret), nil)
	return err
}

// CreateConnectionPortalURL issues a connection-portal login link for the
// user. brokerSlug optionally preselects a brokerage in the portal.
func (c *APIClient) CreateConnectionPortalURL(ctx context.Context, userID, userSecret, brokerSlug string) (PortalURL, error) {
	body := map[string]string{}
	if brokerSlug != "" {
		body["broker"] = brokerSlug
	}

	data, err := c.do(ctx, http.MethodPost, "/snapTrade/login", c.userParams(userID, userSecret), body)
	if err != nil {
		return PortalURL{}, err
	}

	var portal PortalURL
	if err := json.Unmarshal(data, &portal); err != nil {
		return PortalURL{}, fmt.Errorf("failed to parse portal response: %w", err)
	}
	return portal, nil
}

// RegisterUser registers a new user with the aggregator. The returned secret
// is issued exactly once.
func (c *APIClient) RegisterUser(ctx context.Context, userID string) (RegisteredUser, error) {
	data, err := c.do(ctx, http.MethodPost, "/snapTrade/registerUser", url.Values{}, map[string]string{"userId": userID})
	if err != nil {
		return RegisteredUser{}, err
	}

	var registered RegisteredUser
	if err := json.Unmarshal(data, &registered); err != nil {
		return RegisteredUser{}, fmt.Errorf("failed to parse register response: %w", err)
	}
	return registered, nil
}

// DeleteUser removes a user and all their data at the aggregator.
func (c *APIClient) DeleteUser(ctx context.Context, userID string) error {
	params := url.Values{}
	params.Set("userId", userID)
	_, err := c.do(ctx, http.MethodDelete, "/snapTrade/deleteUser", params, nil)
	return err
}

// parseAccounts decodes an account list, keeping each account's verbatim
// payload in Raw.
func parseAccounts(data []byte) ([]Account, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse accounts response: %w", err)
	}

	accounts := make([]Account, 0, len(raws))
	for _, raw := range raws {
		var account Account
		if err := json.Unmarshal(raw, &account); err != nil {
			return nil, fmt.Errorf("failed to parse account record: %w", err)
		}
		account.Raw = raw
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (c *APIClient) userParams(userID, userSecret string) url.Values {
	params := url.Values{}
	params.Set("userId", userID)
	params.Set("userSecret", userSecret)
	return params
}

// do executes one request against the aggregator and returns the response
// body. Non-2xx responses are decoded into the aggregator's error envelope
// when possible.
func (c *APIClient) do(ctx context.Context, method, path string, params url.Values, body interface{}) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("clientId", c.clientID)
	req.Header.Set("consumerKey", c.consumerKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Detail != "" {
			return nil, fmt.Errorf("aggregator error %d: %s", resp.StatusCode, apiErr.Detail)
		}
		return nil, fmt.Errorf("aggregator error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return data, nil
}
