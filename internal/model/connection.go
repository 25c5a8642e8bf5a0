package model

import "time"

// BrokerageConnection represents one brokerage authorization held at the
// aggregator. At most one row exists per external connection id; repeated
// saves converge via upsert.
type BrokerageConnection struct {
	SnaptradeConnectionID string     `json:"snaptradeConnectionId"`
	SnaptradeUserID       string     `json:"snaptradeUserId"`
	BrokerageName         string     `json:"brokerageName,omitempty"`
	BrokerageDisplayName  string     `json:"brokerageDisplayName,omitempty"`
	BrokerageSlug         string     `json:"brokerageSlug,omitempty"`
	Disabled              bool       `json:"disabled"`
	DisabledAt            *time.Time `json:"disabledAt,omitempty"`
	ExternalCreatedAt     *time.Time `json:"externalCreatedAt,omitempty"`
	LastSyncAt            *time.Time `json:"lastSyncAt,omitempty"`
	RawPayload            string     `json:"-"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}
