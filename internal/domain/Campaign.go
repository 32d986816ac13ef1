package domain

import (
	"time"

	"github.com/vfg2006/campaignhub-api/pkg/utils"
)

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusPaused    CampaignStatus = "PAUSED"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
	CampaignStatusCancelled CampaignStatus = "CANCELLED"
)

type Campaign struct {
	ID          string         `json:"id"`
	AdAccountID string         `json:"ad_account_id"`
	Name        string         `json:"name"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Status      CampaignStatus `json:"status"`
	ExternalID  *string        `json:"external_id"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewCampaign cria uma campanha ativa para a conta de anúncios
func NewCampaign(adAccountID, name string, startDate, endDate time.Time) (*Campaign, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	return &Campaign{
		ID:          id,
		AdAccountID: adAccountID,
		Name:        name,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      CampaignStatusActive,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (c *Campaign) Update(name string, startDate, endDate time.Time) {
	c.Name = name
	c.StartDate = startDate
	c.EndDate = endDate
}

func (c *Campaign) SetExternalID(externalID string) {
	c.ExternalID = &externalID
}

func (c *Campaign) Activate() {
	c.Status = CampaignStatusActive
}

func (c *Campaign) Pause() {
	c.Status = CampaignStatusPaused
}
