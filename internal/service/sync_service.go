package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/tradepulse/Social-Trading-Backend/internal/apperrors"
	"github.com/tradepulse/Social-Trading-Backend/internal/model"
	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// SyncService drives the activity ingestion pipeline: fetch activities from
// the aggregator, normalize each record, upsert it into the activity store,
// and derive social-feed trades from qualifying activities.
//
// Concurrent syncs for the same account within this process are collapsed
// into one run via singleflight. Cross-process duplicate runs remain safe
// only through the upsert idempotency keys.
type SyncService struct {
	client       snaptrade.Client
	userRepo     *repository.UserRepository
	activityRepo *repository.ActivityRepository
	tradeRepo    *repository.TradeRepository

	pageSize int
	maxPages int

	group singleflight.Group
}

// NewSyncService creates a new SyncService with the provided dependencies.
// pageSize is the aggregator page size; maxPages bounds a full sync's
// pagination walk.
func NewSyncService(
	client snaptrade.Client,
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	tradeRepo *repository.TradeRepository,
	pageSize int,
	maxPages int,
) *SyncService {
	if pageSize <= 0 {
		pageSize = 500
	}
	if maxPages <= 0 {
		maxPages = 20
	}
	return &SyncService{
		client:       client,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		tradeRepo:    tradeRepo,
		pageSize:     pageSize,
		maxPages:     maxPages,
	}
}

// SyncAccountActivities ingests one account's activity history for the given
// app user.
//
// Failure to load the user's privacy defaults or to fetch from the
// aggregator is fatal and returns an error with no partial result. Failure
// to store or derive an individual activity is recoverable: it is logged,
// counted in SkippedActivities, and the batch continues.
//
// With fullSync the aggregator's offset pagination is walked up to the
// configured page budget; otherwise a single page is fetched.
func (s *SyncService) SyncAccountActivities(ctx context.Context, snaptradeUserID, userSecret, accountID, appUserID string, fullSync bool) (model.SyncResult, error) {
	value, err, _ := s.group.Do(accountID, func() (interface{}, error) {
		return s.syncAccountActivities(ctx, snaptradeUserID, userSecret, accountID, appUserID, fullSync)
	})
	if err != nil {
		return model.SyncResult{}, err
	}
	return value.(model.SyncResult), nil
}

func (s *SyncService) syncAccountActivities(ctx context.Context, snaptradeUserID, userSecret, accountID, appUserID string, fullSync bool) (model.SyncResult, error) {
	defaults, err := s.userRepo.GetPrivacyDefaults(appUserID)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoadPrivacyDefaults, err)
	}

	activities, err := s.fetchActivities(ctx, snaptradeUserID, userSecret, accountID, fullSync)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToFetchActivities, err)
	}

	result := model.SyncResult{
		TotalActivitiesFetched: len(activities),
		SyncBatchID:            uuid.NewString(),
		AccountID:              accountID,
	}

	for _, activity := range activities {
		normalized := snaptrade.Normalize(activity)

		stored, err := s.activityRepo.Upsert(buildStoredActivity(activity, normalized, accountID, appUserID, result.SyncBatchID))
		if err != nil {
			log.Printf("sync %s: failed to store activity %s: %v", result.SyncBatchID, activity.ID, err)
			result.SkippedActivities++
			continue
		}
		result.NewActivitiesStored++

		_, created, err := s.deriveTrade(stored, normalized, defaults)
		if err != nil {
			log.Printf("sync %s: failed to derive trade for activity %s: %v", result.SyncBatchID, activity.ID, err)
			result.SkippedActivities++
			continue
		}
		if created {
			result.NewTradesCreated++
		}
	}

	// The summary is still useful when the timestamp write fails; the next
	// sync advances it.
	if err := s.userRepo.UpdateLastHoldingsSync(appUserID, time.Now().UTC()); err != nil {
		log.Printf("sync %s: failed to update user last sync: %v", result.SyncBatchID, err)
	}

	return result, nil
}

// fetchActivities pulls the activity batch up front so a fetch failure on
// any page aborts before anything is written.
func (s *SyncService) fetchActivities(ctx context.Context, snaptradeUserID, userSecret, accountID string, fullSync bool) ([]snaptrade.Activity, error) {
	page, err := s.client.FetchAccountActivities(ctx, snaptradeUserID, userSecret, accountID, 0, s.pageSize)
	if err != nil {
		return nil, err
	}

	activities := page.Data
	if !fullSync {
		return activities, nil
	}

	for pages := 1; pages < s.maxPages; pages++ {
		offset := len(activities)
		if page.Pagination.Total > 0 && offset >= page.Pagination.Total {
			break
		}
		if len(page.Data) == 0 {
			break
		}

		page, err = s.client.FetchAccountActivities(ctx, snaptradeUserID, userSecret, accountID, offset, s.pageSize)
		if err != nil {
			return nil, err
		}
		activities = append(activities, page.Data...)
	}

	return activities, nil
}

// buildStoredActivity maps a normalized aggregator record onto the storage
// shape, preserving the verbatim payload.
func buildStoredActivity(activity snaptrade.Activity, normalized snaptrade.NormalizedActivity, accountID, appUserID, syncBatchID string) model.StoredActivity {
	return model.StoredActivity{
		ID:                  uuid.NewString(),
		UserID:              appUserID,
		SnaptradeAccountID:  accountID,
		SnaptradeActivityID: activity.ID,
		Ticker:              normalized.Ticker,
		CompanyName:         normalized.CompanyName,
		ActivityType:        activity.Type,
		Price:               normalized.Price,
		Units:               normalized.Units,
		Amount:              normalized.Amount,
		CurrencyCode:        normalized.CurrencyCode,
		Fee:                 normalized.Fee,
		TradeDate:           normalized.TradeDate,
		SettlementDate:      normalized.SettlementDate,
		Institution:         normalized.Institution,
		ExternalReferenceID: normalized.ExternalReferenceID,
		RawPayload:          string(activity.Raw),
		SyncBatchID:         syncBatchID,
	}
}
