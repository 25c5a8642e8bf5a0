// Package scheduler runs the background auto-sync job that refreshes every
// linked account's activity history on a cron schedule.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/service"
)

// Scheduler owns the cron runner for periodic ingestion. Each account syncs
// sequentially; the sync service's singleflight additionally collapses
// overlap with request-triggered syncs for the same account.
type Scheduler struct {
	cron        *cron.Cron
	userService *service.UserService
	userRepo    *repository.UserRepository
	accountRepo *repository.AccountRepository
	syncService *service.SyncService
}

// New creates a Scheduler wired to the sync pipeline.
func New(
	userService *service.UserService,
	userRepo *repository.UserRepository,
	accountRepo *repository.AccountRepository,
	syncService *service.SyncService,
) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		userService: userService,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		syncService: syncService,
	}
}

// Start registers the auto-sync job with the given cron schedule and starts
// the runner.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runAutoSync); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("auto-sync scheduled: %s", schedule)
	return nil
}

// Stop stops the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// runAutoSync syncs every account of every user. Per-user and per-account
// failures are logged and do not block the remaining work.
func (s *Scheduler) runAutoSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	users, err := s.userRepo.List()
	if err != nil {
		log.Printf("auto-sync: failed to list users: %v", err)
		return
	}

	for _, user := range users {
		withSecret, err := s.userService.GetWithSecret(user.ID)
		if err != nil {
			log.Printf("auto-sync: failed to load user %s: %v", user.ID, err)
			continue
		}

		accounts, err := s.accountRepo.ListByUser(withSecret.SnaptradeUserID)
		if err != nil {
			log.Printf("auto-sync: failed to list accounts for user %s: %v", user.ID, err)
			continue
		}

		for _, account := range accounts {
			result, err := s.syncService.SyncAccountActivities(
				ctx,
				withSecret.SnaptradeUserID,
				withSecret.UserSecret,
				account.SnaptradeAccountID,
				user.ID,
				false,
			)
			if err != nil {
				log.Printf("auto-sync: account %s failed: %v", account.SnaptradeAccountID, err)
				continue
			}
			log.Printf("auto-sync: account %s: fetched=%d stored=%d trades=%d skipped=%d",
				account.SnaptradeAccountID,
				result.TotalActivitiesFetched,
				result.NewActivitiesStored,
				result.NewTradesCreated,
				result.SkippedActivities,
			)
		}
	}
}
