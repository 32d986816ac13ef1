package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaignhub-api/pkg/utils"
)

type AdSetStatus string

const (
	AdSetStatusActive   AdSetStatus = "ACTIVE"
	AdSetStatusPaused   AdSetStatus = "PAUSED"
	AdSetStatusDeleted  AdSetStatus = "DELETED"
	AdSetStatusArchived AdSetStatus = "ARCHIVED"
)

type AdSet struct {
	ID          string          `json:"id"`
	CampaignID  string          `json:"campaign_id"`
	Name        string          `json:"name"`
	Status      AdSetStatus     `json:"status"`
	DailyBudget decimal.Decimal `json:"daily_budget"`
	ExternalID  *string         `json:"external_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewAdSet(campaignID, name string, status AdSetStatus, dailyBudget decimal.Decimal) (*AdSet, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	return &AdSet{
		ID:          id,
		CampaignID:  campaignID,
		Name:        name,
		Status:      status,
		DailyBudget: dailyBudget,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (a *AdSet) SetExternalID(externalID string) {
	a.ExternalID = &externalID
}

func (a *AdSet) Pause() {
	a.Status = AdSetStatusPaused
}

func (a *AdSet) Activate() {
	a.Status = AdSetStatusActive
}
