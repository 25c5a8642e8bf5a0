package service_test

import (
	"testing"

	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
	"github.com/tradepulse/Social-Trading-Backend/internal/testutil"
)

func makeAggregatorAccount(id string, balance float64) snaptrade.Account {
	return snaptrade.Account{
		ID:              id,
		Name:            "Margin Account",
		Number:          "****1234",
		InstitutionName: "Questrade",
		Status:          "open",
		Balance: &snaptrade.AccountBalance{
			Total: &snaptrade.BalanceTotal{Amount: &balance, Currency: "CAD"},
		},
		SyncStatus: &snaptrade.SyncStatus{
			Transactions: &snaptrade.DatasetSyncStatus{
				InitialSyncCompleted: true,
				LastSuccessfulSync:   "2024-06-01T08:00:00Z",
			},
		},
	}
}

func TestAccountService_SaveConnection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAccountService(t, db)

	t.Run("minimal save from portal callback", func(t *testing.T) {
		conn, err := svc.SaveConnection("st-user-1", "conn-1", "Questrade", nil)
		if err != nil {
			t.Fatalf("SaveConnection failed: %v", err)
		}

		if conn.SnaptradeConnectionID != "conn-1" {
			t.Errorf("Expected connection id conn-1, got %s", conn.SnaptradeConnectionID)
		}
		if conn.BrokerageName != "Questrade" {
			t.Errorf("Expected brokerage name, got %s", conn.BrokerageName)
		}
		if conn.LastSyncAt == nil {
			t.Error("Expected last sync timestamp")
		}
	})

	t.Run("full payload enriches the same row", func(t *testing.T) {
		data := &snaptrade.Connection{
			ID:           "conn-1",
			Disabled:     true,
			DisabledDate: "2024-06-02T10:00:00Z",
			CreatedDate:  "2024-01-15T09:00:00Z",
			Brokerage: &snaptrade.Brokerage{
				Name:        "QUESTRADE",
				DisplayName: "Questrade",
				Slug:        "questrade",
			},
		}

		conn, err := svc.SaveConnection("st-user-1", "conn-1", "", data)
		if err != nil {
			t.Fatalf("SaveConnection failed: %v", err)
		}

		if got := testutil.CountRows(t, db, "brokerage_connection"); got != 1 {
			t.Errorf("Expected saves to converge to 1 row, got %d", got)
		}
		if conn.BrokerageName != "QUESTRADE" || conn.BrokerageSlug != "questrade" {
			t.Errorf("Expected enriched brokerage fields, got %+v", conn)
		}
		if !conn.Disabled || conn.DisabledAt == nil {
			t.Errorf("Expected disabled state, got %+v", conn)
		}
		if conn.ExternalCreatedAt == nil {
			t.Error("Expected external created timestamp")
		}
	})
}

func TestAccountService_SaveAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAccountService(t, db)

	t.Run("batch save reports per-item outcome", func(t *testing.T) {
		results, summary := svc.SaveAccounts("st-user-1", "conn-1", []snaptrade.Account{
			makeAggregatorAccount("acct-1", 10000),
			makeAggregatorAccount("acct-2", 2500),
		})

		if len(results) != 2 {
			t.Fatalf("Expected 2 results, got %d", len(results))
		}
		for _, result := range results {
			if !result.Success {
				t.Errorf("Expected success for %s, got error %s", result.SnaptradeAccountID, result.Error)
			}
		}
		if summary.Success != 2 || summary.Error != 0 {
			t.Errorf("Expected summary {2 0}, got %+v", summary)
		}
	})

	t.Run("maps nested aggregator fields", func(t *testing.T) {
		account, err := svc.GetAccount("acct-1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}

		if account.BalanceAmount != 10000 || account.BalanceCurrency != "CAD" {
			t.Errorf("Expected balance 10000 CAD, got %v %s", account.BalanceAmount, account.BalanceCurrency)
		}
		if account.SnaptradeConnectionID != "conn-1" {
			t.Errorf("Expected connection id conn-1, got %s", account.SnaptradeConnectionID)
		}
		if !account.TransactionsSyncInitialized || account.TransactionsLastSyncAt == nil {
			t.Errorf("Expected transactions sync status mapped, got %+v", account)
		}
	})

	t.Run("repeated saves converge with latest balance", func(t *testing.T) {
		_, summary := svc.SaveAccounts("st-user-1", "conn-1", []snaptrade.Account{
			makeAggregatorAccount("acct-1", 12345),
		})
		if summary.Success != 1 {
			t.Fatalf("Expected success, got %+v", summary)
		}

		if got := testutil.CountRows(t, db, "brokerage_account"); got != 2 {
			t.Errorf("Expected 2 account rows, got %d", got)
		}

		account, err := svc.GetAccount("acct-1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.BalanceAmount != 12345 {
			t.Errorf("Expected latest balance 12345, got %v", account.BalanceAmount)
		}
	})

	t.Run("absent balance nesting degrades to zero", func(t *testing.T) {
		_, summary := svc.SaveAccounts("st-user-1", "conn-1", []snaptrade.Account{
			{ID: "acct-bare", Name: "Cash"},
		})
		if summary.Success != 1 {
			t.Fatalf("Expected success, got %+v", summary)
		}

		account, err := svc.GetAccount("acct-bare")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.BalanceAmount != 0 || account.BalanceCurrency != "" {
			t.Errorf("Expected zero balance, got %v %s", account.BalanceAmount, account.BalanceCurrency)
		}
	})
}

func TestAccountService_AccountRepositoryListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAccountService(t, db)

	svc.SaveAccounts("st-user-1", "conn-1", []snaptrade.Account{
		makeAggregatorAccount("acct-1", 100),
		makeAggregatorAccount("acct-2", 200),
	})
	svc.SaveAccounts("st-user-2", "conn-2", []snaptrade.Account{
		makeAggregatorAccount("acct-3", 300),
	})

	accounts, err := repository.NewAccountRepository(db).ListByUser("st-user-1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("Expected 2 accounts for st-user-1, got %d", len(accounts))
	}
}
