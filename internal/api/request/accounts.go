package request

import (
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
	"github.com/tradepulse/Social-Trading-Backend/internal/validation"
)

// SaveAccounts is the body of POST /api/accounts/save. Accounts carries the
// aggregator account records to upsert under the connection.
type SaveAccounts struct {
	UserID       string              `json:"userId"`
	ConnectionID string              `json:"connectionId"`
	Accounts     []snaptrade.Account `json:"accounts"`
}

// Validate checks required fields.
func (r SaveAccounts) Validate() error {
	if err := validation.ValidateNonEmpty("userId", r.UserID); err != nil {
		return err
	}
	if err := validation.ValidateNonEmpty("connectionId", r.ConnectionID); err != nil {
		return err
	}
	return nil
}
