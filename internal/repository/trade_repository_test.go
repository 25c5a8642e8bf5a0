package repository_test

import (
	"testing"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/testutil"
)

func TestTradeRepository_CreateAndGetBySourceActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db)

	user := testutil.NewUser().Build(t, db)
	activity := testutil.NewStoredActivity(user.ID, testutil.MakeExternalID("acct")).Build(t, db)

	executedAt := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	proceeds := 1500.0
	trade := model.Trade{
		ID:               testutil.MakeID(),
		UserID:           user.ID,
		SourceActivityID: activity.ID,
		Symbol:           "AAPL",
		CompanyName:      "Apple Inc.",
		AssetType:        model.AssetTypeStock,
		TradeType:        model.ActivityTypeSell,
		Quantity:         10,
		Price:            150,
		TotalValue:       1500,
		ProfitLoss:       &proceeds,
		Visibility:       model.VisibilityPublic,
		ShowAmounts:      true,
		ShowQuantity:     true,
		IsPublic:         true,
		ExecutedAt:       &executedAt,
		CreatedAt:        time.Now().UTC(),
	}

	if err := repo.Create(trade); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	fetched, err := repo.GetBySourceActivity(activity.ID)
	if err != nil {
		t.Fatalf("GetBySourceActivity failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("Expected trade, got nil")
	}

	if fetched.ID != trade.ID {
		t.Errorf("Expected id %s, got %s", trade.ID, fetched.ID)
	}
	if fetched.Symbol != "AAPL" || fetched.TradeType != model.ActivityTypeSell {
		t.Errorf("Unexpected trade fields: %+v", fetched)
	}
	if fetched.ProfitLoss == nil || *fetched.ProfitLoss != proceeds {
		t.Errorf("Expected profit_loss %v, got %v", proceeds, fetched.ProfitLoss)
	}
	if fetched.ExecutedAt == nil || !fetched.ExecutedAt.Equal(executedAt) {
		t.Errorf("Expected executed_at %v, got %v", executedAt, fetched.ExecutedAt)
	}
}

func TestTradeRepository_GetBySourceActivity_Absent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db)

	trade, err := repo.GetBySourceActivity("no-such-activity")
	if err != nil {
		t.Fatalf("Expected no error for absent trade, got %v", err)
	}
	if trade != nil {
		t.Errorf("Expected nil trade, got %+v", trade)
	}
}

func TestTradeRepository_DuplicateSourceActivityRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db)

	user := testutil.NewUser().Build(t, db)
	activity := testutil.NewStoredActivity(user.ID, testutil.MakeExternalID("acct")).Build(t, db)

	base := model.Trade{
		UserID:           user.ID,
		SourceActivityID: activity.ID,
		Symbol:           "AAPL",
		AssetType:        model.AssetTypeStock,
		TradeType:        model.ActivityTypeBuy,
		Visibility:       model.VisibilityPublic,
		CreatedAt:        time.Now().UTC(),
	}

	first := base
	first.ID = testutil.MakeID()
	if err := repo.Create(first); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	second := base
	second.ID = testutil.MakeID()
	if err := repo.Create(second); err == nil {
		t.Error("Expected unique constraint violation for duplicate source activity")
	}

	if got := testutil.CountRows(t, db, "trade"); got != 1 {
		t.Errorf("Expected 1 trade row, got %d", got)
	}
}

func TestTradeRepository_CountByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db)

	user := testutil.NewUser().Build(t, db)
	accountID := testutil.MakeExternalID("acct")

	for i := 0; i < 2; i++ {
		activity := testutil.NewStoredActivity(user.ID, accountID).Build(t, db)
		trade := model.Trade{
			ID:               testutil.MakeID(),
			UserID:           user.ID,
			SourceActivityID: activity.ID,
			Symbol:           "AAPL",
			AssetType:        model.AssetTypeStock,
			TradeType:        model.ActivityTypeBuy,
			Visibility:       model.VisibilityPublic,
			CreatedAt:        time.Now().UTC(),
		}
		if err := repo.Create(trade); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	count, err := repo.CountByUser(user.ID)
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 trades, got %d", count)
	}
}
