// Package request defines the JSON request bodies accepted by the API and
// their validation.
package request

import (
	"github.com/tradepulse/Social-Trading-Backend/internal/validation"
)

// SyncAccountActivities is the body of POST /api/sync/account-activities.
// UserID/UserSecret are the aggregator credentials; AppUserID is the owning
// application user. FullSync walks the aggregator's pagination instead of
// fetching a single page.
type SyncAccountActivities struct {
	UserID     string `json:"userId"`
	UserSecret string `json:"userSecret"`
	AccountID  string `json:"accountId"`
	AppUserID  string `json:"appUserId"`
	FullSync   bool   `json:"fullSync"`
}

// Validate checks required fields. AppUserID must be an application UUID;
// the aggregator ids are opaque externally-issued strings.
func (r SyncAccountActivities) Validate() error {
	if err := validation.ValidateNonEmpty("userId", r.UserID); err != nil {
		return err
	}
	if err := validation.ValidateNonEmpty("userSecret", r.UserSecret); err != nil {
		return err
	}
	if err := validation.ValidateNonEmpty("accountId", r.AccountID); err != nil {
		return err
	}
	return validation.ValidateUUID(r.AppUserID)
}
