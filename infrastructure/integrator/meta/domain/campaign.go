package metadomain

// Campaign é uma campanha retornada por /{account}/campaigns
type Campaign struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	StartTime *string `json:"start_time,omitempty"`
	StopTime  *string `json:"stop_time,omitempty"`
}

// AdSet é um conjunto de anúncios retornado por /{campaign}/adsets.
// DailyBudget vem em centavos.
type AdSet struct {
	ID          string  `json:"id"`
	CampaignID  string  `json:"campaign_id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	DailyBudget *string `json:"daily_budget,omitempty"`
}

type Ad struct {
	ID      string `json:"id"`
	AdSetID string `json:"adset_id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
}
