package syncing

import (
	"strings"

	"github.com/vfg2006/campaignhub-api/internal/domain"
)

// MapAdSetStatus converte o status da plataforma; valores desconhecidos viram pausado
func MapAdSetStatus(status string) domain.AdSetStatus {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "ACTIVE":
		return domain.AdSetStatusActive
	case "PAUSED":
		return domain.AdSetStatusPaused
	case "DELETED":
		return domain.AdSetStatusDeleted
	case "ARCHIVED":
		return domain.AdSetStatusArchived
	default:
		return domain.AdSetStatusPaused
	}
}

func MapAdStatus(status string) domain.AdStatus {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "ACTIVE":
		return domain.AdStatusActive
	case "PAUSED":
		return domain.AdStatusPaused
	case "DELETED":
		return domain.AdStatusDeleted
	case "ARCHIVED":
		return domain.AdStatusArchived
	default:
		return domain.AdStatusPaused
	}
}

// ApplyCampaignStatus usa as mesmas transições do cadastro manual.
// Só ACTIVE ativa; qualquer outro valor, inclusive DELETED e ARCHIVED, pausa.
func ApplyCampaignStatus(campaign *domain.Campaign, status string) {
	if strings.ToUpper(strings.TrimSpace(status)) == "ACTIVE" {
		campaign.Activate()
		return
	}
	campaign.Pause()
}
