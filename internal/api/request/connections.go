package request

import (
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
	"github.com/tradepulse/Social-Trading-Backend/internal/validation"
)

// SaveConnection is the body of POST /api/connections/save. ConnectionData
// is optional; a fresh portal callback carries only the authorization id.
type SaveConnection struct {
	UserID          string                `json:"userId"`
	AuthorizationID string                `json:"authorizationId"`
	BrokerageName   string                `json:"brokerageName,omitempty"`
	ConnectionData  *snaptrade.Connection `json:"connectionData,omitempty"`
}

// Validate checks required fields.
func (r SaveConnection) Validate() error {
	if err := validation.ValidateNonEmpty("userId", r.UserID); err != nil {
		return err
	}
	return validation.ValidateNonEmpty("authorizationId", r.AuthorizationID)
}

// CreatePortalURL is the body of POST /api/connections/portal.
type CreatePortalURL struct {
	UserID     string `json:"userId"`
	UserSecret string `json:"userSecret"`
	Broker     string `json:"broker,omitempty"`
}

// Validate checks required fields.
func (r CreatePortalURL) Validate() error {
	if err := validation.ValidateNonEmpty("userId", r.UserID); err != nil {
		return err
	}
	return validation.ValidateNonEmpty("userSecret", r.UserSecret)
}
