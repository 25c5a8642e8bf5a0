package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// AccountService persists brokerage connection and account metadata.
// Repeated saves converge through the repositories' atomic upserts instead
// of duplicating or erroring.
type AccountService struct {
	connectionRepo *repository.ConnectionRepository
	accountRepo    *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository dependencies.
func NewAccountService(
	connectionRepo *repository.ConnectionRepository,
	accountRepo *repository.AccountRepository,
) *AccountService {
	return &AccountService{
		connectionRepo: connectionRepo,
		accountRepo:    accountRepo,
	}
}

// SaveConnection upserts a brokerage connection. connectionData is optional:
// when the caller only holds the authorization id (fresh portal callback), a
// minimal record is written and enriched on the next full save.
func (s *AccountService) SaveConnection(snaptradeUserID, authorizationID, brokerageName string, connectionData *snaptrade.Connection) (model.BrokerageConnection, error) {
	conn := model.BrokerageConnection{
		SnaptradeConnectionID: authorizationID,
		SnaptradeUserID:       snaptradeUserID,
		BrokerageName:         brokerageName,
	}

	if connectionData != nil {
		conn.Disabled = connectionData.Disabled
		conn.DisabledAt = parseExternalTimestamp(connectionData.DisabledDate)
		conn.ExternalCreatedAt = parseExternalTimestamp(connectionData.CreatedDate)
		conn.RawPayload = string(connectionData.Raw)
		if connectionData.Brokerage != nil {
			if connectionData.Brokerage.Name != "" {
				conn.BrokerageName = connectionData.Brokerage.Name
			}
			conn.BrokerageDisplayName = connectionData.Brokerage.DisplayName
			conn.BrokerageSlug = connectionData.Brokerage.Slug
		}
	}

	now := time.Now().UTC()
	conn.LastSyncAt = &now

	if err := s.connectionRepo.Upsert(conn); err != nil {
		return model.BrokerageConnection{}, err
	}

	return s.connectionRepo.GetByID(authorizationID)
}

// SaveAccounts upserts a batch of aggregator accounts under a connection.
//
// Each account is processed independently: one account's failure is recorded
// in its own result entry and never blocks siblings. The summary carries the
// aggregate success/error counts.
func (s *AccountService) SaveAccounts(snaptradeUserID, connectionID string, accounts []snaptrade.Account) ([]model.AccountSaveResult, model.AccountSaveSummary) {
	results := make([]model.AccountSaveResult, 0, len(accounts))
	summary := model.AccountSaveSummary{}

	for _, account := range accounts {
		record := buildBrokerageAccount(snaptradeUserID, connectionID, account)

		if err := s.accountRepo.Upsert(record); err != nil {
			log.Printf("failed to save account %s: %v", account.ID, err)
			results = append(results, model.AccountSaveResult{
				SnaptradeAccountID: account.ID,
				Success:            false,
				Error:              err.Error(),
			})
			summary.Error++
			continue
		}

		results = append(results, model.AccountSaveResult{
			SnaptradeAccountID: account.ID,
			Success:            true,
		})
		summary.Success++
	}

	return results, summary
}

// GetAccount retrieves a stored brokerage account by external id.
func (s *AccountService) GetAccount(accountID string) (model.BrokerageAccount, error) {
	return s.accountRepo.GetByID(accountID)
}

// buildBrokerageAccount maps the aggregator's nested account shape onto the
// storage record, with explicit fallbacks for absent nesting levels.
func buildBrokerageAccount(snaptradeUserID, connectionID string, account snaptrade.Account) model.BrokerageAccount {
	record := model.BrokerageAccount{
		SnaptradeAccountID:    account.ID,
		SnaptradeUserID:       snaptradeUserID,
		SnaptradeConnectionID: connectionID,
		Name:                  account.Name,
		Number:                account.Number,
		InstitutionName:       account.InstitutionName,
		Status:                account.Status,
		BalanceAmount:         account.BalanceAmount(),
		BalanceCurrency:       account.BalanceCurrency(),
		RawAccount:            string(account.Raw),
	}

	if record.SnaptradeConnectionID == "" {
		record.SnaptradeConnectionID = account.BrokerageAuthorization
	}

	if account.Balance != nil {
		if raw, err := json.Marshal(account.Balance); err == nil {
			record.RawBalance = string(raw)
		}
	}

	if account.SyncStatus != nil {
		if raw, err := json.Marshal(account.SyncStatus); err == nil {
			record.RawSyncStatus = string(raw)
		}
		if account.SyncStatus.Holdings != nil {
			record.HoldingsSyncInitialized = account.SyncStatus.Holdings.InitialSyncCompleted
			record.HoldingsLastSyncAt = parseExternalTimestamp(account.SyncStatus.Holdings.LastSuccessfulSync)
		}
		if account.SyncStatus.Transactions != nil {
			record.TransactionsSyncInitialized = account.SyncStatus.Transactions.InitialSyncCompleted
			record.TransactionsLastSyncAt = parseExternalTimestamp(account.SyncStatus.Transactions.LastSuccessfulSync)
		}
	}

	return record
}

// parseExternalTimestamp parses aggregator timestamps, degrading to nil on
// absent or unparseable input.
func parseExternalTimestamp(value string) *time.Time {
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
