package testutil

import (
	"database/sql"
	"testing"

	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/service"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// NewTestSyncService wires a SyncService against the given database and
// mock aggregator client. Pagination-specific tests construct the service
// directly with a small page size.
func NewTestSyncService(t *testing.T, db *sql.DB, client snaptrade.Client) *service.SyncService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	tradeRepo := repository.NewTradeRepository(db)

	return service.NewSyncService(
		client,
		userRepo,
		activityRepo,
		tradeRepo,
		100,
		10,
	)
}

// NewTestAccountService wires an AccountService against the given database.
func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	connectionRepo := repository.NewConnectionRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	return service.NewAccountService(
		connectionRepo,
		accountRepo,
	)
}

// NewTestUserService wires a UserService with no at-rest encryption.
func NewTestUserService(t *testing.T, db *sql.DB, client snaptrade.Client) *service.UserService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)

	userService, err := service.NewUserService(client, userRepo, "")
	if err != nil {
		t.Fatalf("Failed to create user service: %v", err)
	}
	return userService
}
