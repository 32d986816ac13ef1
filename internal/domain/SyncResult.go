package domain

import "time"

// SyncResult é o relatório de uma sincronização de conta.
// Errors preenchido com o retorno sem erro significa sucesso com avisos.
type SyncResult struct {
	AdAccountID     string    `json:"ad_account_id"`
	CampaignsSynced int       `json:"campaigns_synced"`
	AdSetsSynced    int       `json:"ad_sets_synced"`
	AdsSynced       int       `json:"ads_synced"`
	MetricsSynced   int       `json:"metrics_synced"`
	SyncedAt        time.Time `json:"synced_at"`
	Errors          []string  `json:"errors"`
}

func (r *SyncResult) HasWarnings() bool {
	return len(r.Errors) > 0
}
