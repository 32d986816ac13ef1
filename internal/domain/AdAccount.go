package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaignhub-api/pkg/utils"
)

type AdPlatform string

const (
	AdPlatformMetaAds     AdPlatform = "META_ADS"
	AdPlatformGoogleAds   AdPlatform = "GOOGLE_ADS"
	AdPlatformTikTokAds   AdPlatform = "TIKTOK_ADS"
	AdPlatformLinkedInAds AdPlatform = "LINKEDIN_ADS"
)

func (p AdPlatform) String() string {
	return string(p)
}

// AdAccount é a conta de anúncios de um cliente em uma plataforma externa
type AdAccount struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	Goal          string          `json:"goal"`
	Platform      AdPlatform      `json:"platform"`
	ExternalID    *string         `json:"external_id"`
	LastSyncedAt  *time.Time      `json:"last_synced_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewAdAccount(customerID string, monthlyBudget decimal.Decimal, goal string, platform AdPlatform) (*AdAccount, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	return &AdAccount{
		ID:            id,
		CustomerID:    customerID,
		MonthlyBudget: monthlyBudget,
		Goal:          goal,
		Platform:      platform,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// HasExternalID indica se a conta está vinculada a uma conta remota; só espaços não contam
func (a *AdAccount) HasExternalID() bool {
	return a.ExternalID != nil && strings.TrimSpace(*a.ExternalID) != ""
}

func (a *AdAccount) GetExternalID() string {
	if a.ExternalID == nil {
		return ""
	}
	return *a.ExternalID
}

func (a *AdAccount) SetExternalID(externalID string) {
	a.ExternalID = &externalID
}

// CanSyncWith retorna true quando a conta pode ser sincronizada com a plataforma informada
func (a *AdAccount) CanSyncWith(platform AdPlatform) bool {
	return a.Platform == platform && a.HasExternalID()
}

func (a *AdAccount) MarkSynced(at time.Time) {
	syncedAt := at.UTC()
	a.LastSyncedAt = &syncedAt
}
