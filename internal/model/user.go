package model

import "time"

// Trade visibility levels. Applied to derived trades as a snapshot of the
// owning user's defaults at derivation time.
const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)

// User represents an application user linked to the brokerage aggregator.
// The aggregator user secret is stored encrypted; UserSecret on this struct
// always holds the decrypted value when populated by the service layer.
type User struct {
	ID                 string     `json:"id"`
	SnaptradeUserID    string     `json:"snaptradeUserId"`
	UserSecret         string     `json:"-"`
	PrivacyDefaults    PrivacyDefaults
	LastHoldingsSyncAt *time.Time `json:"lastHoldingsSyncAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// PrivacyDefaults holds a user's standing trade-privacy settings.
// These are copied onto each derived trade at derivation time; later changes
// do not retroactively alter already-derived trades.
type PrivacyDefaults struct {
	Visibility   string `json:"visibility"`
	ShowAmounts  bool   `json:"showAmounts"`
	ShowQuantity bool   `json:"showQuantity"`
	IsPublic     bool   `json:"isPublic"`
}
