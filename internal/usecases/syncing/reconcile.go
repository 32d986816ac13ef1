package syncing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/internal/domain"
	"github.com/vfg2006/campaignhub-api/pkg/utils"
)

// upsertOps descreve como localizar, atualizar e criar uma entidade local
type upsertOps[T any] struct {
	find   func() (*T, error)
	update func(existing *T)
	create func() (*T, error)
	stage  func(*T)
}

// upsert atualiza a entidade encontrada ou cria e registra uma nova. Nada é gravado aqui.
func upsert[T any](ops upsertOps[T]) (*T, error) {
	existing, err := ops.find()
	if err != nil {
		return nil, err
	}

	if existing != nil {
		ops.update(existing)
		return existing, nil
	}

	created, err := ops.create()
	if err != nil {
		return nil, err
	}
	ops.stage(created)

	return created, nil
}

// upsertCampaign mantém as datas atuais quando a plataforma não manda datas válidas.
// Campanhas novas sem datas começam agora e terminam em um ano.
func upsertCampaign(ctx context.Context, store Store, adAccountID string, remote metadomain.Campaign, now time.Time) (*domain.Campaign, error) {
	return upsert(upsertOps[domain.Campaign]{
		find: func() (*domain.Campaign, error) {
			return store.GetCampaignByExternalID(ctx, remote.ID)
		},
		update: func(existing *domain.Campaign) {
			existing.Update(
				remote.Name,
				utils.ParseRemoteDateOrDefault(remote.StartTime, existing.StartDate),
				utils.ParseRemoteDateOrDefault(remote.StopTime, existing.EndDate),
			)
			existing.SetExternalID(remote.ID)
			ApplyCampaignStatus(existing, remote.Status)
		},
		create: func() (*domain.Campaign, error) {
			campaign, err := domain.NewCampaign(
				adAccountID,
				remote.Name,
				utils.ParseRemoteDateOrDefault(remote.StartTime, now),
				utils.ParseRemoteDateOrDefault(remote.StopTime, now.AddDate(1, 0, 0)),
			)
			if err != nil {
				return nil, err
			}
			campaign.SetExternalID(remote.ID)
			ApplyCampaignStatus(campaign, remote.Status)
			return campaign, nil
		},
		stage: store.StageCampaign,
	})
}

func upsertAdSet(ctx context.Context, store Store, campaignID string, remote metadomain.AdSet) (*domain.AdSet, error) {
	return upsert(upsertOps[domain.AdSet]{
		find: func() (*domain.AdSet, error) {
			return store.GetAdSetByExternalID(ctx, remote.ID)
		},
		update: func(existing *domain.AdSet) {
			existing.Name = remote.Name
			existing.Status = MapAdSetStatus(remote.Status)
			existing.DailyBudget = utils.ParseMinorUnits(remote.DailyBudget)
			existing.SetExternalID(remote.ID)
		},
		create: func() (*domain.AdSet, error) {
			adSet, err := domain.NewAdSet(campaignID, remote.Name, MapAdSetStatus(remote.Status), utils.ParseMinorUnits(remote.DailyBudget))
			if err != nil {
				return nil, err
			}
			adSet.SetExternalID(remote.ID)
			return adSet, nil
		},
		stage: store.StageAdSet,
	})
}

func upsertAd(ctx context.Context, store Store, adSetID string, remote metadomain.Ad) (*domain.Ad, error) {
	return upsert(upsertOps[domain.Ad]{
		find: func() (*domain.Ad, error) {
			return store.GetAdByExternalID(ctx, remote.ID)
		},
		update: func(existing *domain.Ad) {
			existing.Name = remote.Name
			existing.Status = MapAdStatus(remote.Status)
		},
		create: func() (*domain.Ad, error) {
			ad, err := domain.NewAd(adSetID, remote.Name, MapAdStatus(remote.Status))
			if err != nil {
				return nil, err
			}
			ad.SetExternalID(remote.ID)
			return ad, nil
		},
		stage: store.StageAd,
	})
}

// upsertMetric devolve false, sem erro, quando a campanha do insight não existe localmente
func upsertMetric(ctx context.Context, store Store, insight metadomain.Insight) (bool, error) {
	campaign, err := store.GetCampaignByExternalID(ctx, insight.CampaignID)
	if err != nil {
		return false, err
	}
	if campaign == nil {
		return false, nil
	}

	dateStart, err := utils.ParseRemoteDate(insight.DateStart)
	if err != nil {
		return false, fmt.Errorf("data de início inválida %q: %w", insight.DateStart, err)
	}
	period := domain.NormalizePeriod(dateStart)

	expenses := utils.ParseMinorUnits(insight.Spend)

	var sales *string
	if insight.Purchases > 0 {
		s := strconv.Itoa(insight.Purchases)
		sales = &s
	}

	_, err = upsert(upsertOps[domain.MetricCampaign]{
		find: func() (*domain.MetricCampaign, error) {
			return store.GetMetricByCampaignAndPeriod(ctx, campaign.ID, period)
		},
		update: func(existing *domain.MetricCampaign) {
			existing.Update(expenses, insight.Leads, sales, insight.PurchaseValue)
		},
		create: func() (*domain.MetricCampaign, error) {
			return domain.NewMetricCampaign(campaign.ID, period, expenses, insight.Leads, sales, insight.PurchaseValue)
		},
		stage: store.StageMetric,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
