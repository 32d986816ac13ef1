package domain

import (
	"time"

	"github.com/vfg2006/campaignhub-api/pkg/utils"
)

type AdStatus string

const (
	AdStatusActive   AdStatus = "ACTIVE"
	AdStatusPaused   AdStatus = "PAUSED"
	AdStatusDeleted  AdStatus = "DELETED"
	AdStatusArchived AdStatus = "ARCHIVED"
)

type Ad struct {
	ID         string    `json:"id"`
	AdSetID    string    `json:"ad_set_id"`
	Name       string    `json:"name"`
	Status     AdStatus  `json:"status"`
	ExternalID *string   `json:"external_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAd(adSetID, name string, status AdStatus) (*Ad, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	return &Ad{
		ID:        id,
		AdSetID:   adSetID,
		Name:      name,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (a *Ad) SetExternalID(externalID string) {
	a.ExternalID = &externalID
}

func (a *Ad) Pause() {
	a.Status = AdStatusPaused
}

func (a *Ad) Activate() {
	a.Status = AdStatusActive
}
