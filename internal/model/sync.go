package model

// SyncResult summarizes one ingestion run for one (user, account) pair.
//
// SkippedActivities counts genuine per-item storage or derivation failures.
// Activities that are stored but not trade-eligible (non-trade type, missing
// ticker) are counted as stored, not skipped.
type SyncResult struct {
	TotalActivitiesFetched int    `json:"totalActivitiesFetched"`
	NewActivitiesStored    int    `json:"newActivitiesStored"`
	NewTradesCreated       int    `json:"newTradesCreated"`
	SkippedActivities      int    `json:"skippedActivities"`
	SyncBatchID            string `json:"syncBatchId"`
	AccountID              string `json:"accountId"`
}
