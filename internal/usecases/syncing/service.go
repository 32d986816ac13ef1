package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/internal/config"
	"github.com/vfg2006/campaignhub-api/internal/domain"
	"github.com/vfg2006/campaignhub-api/internal/metrics"
	"github.com/vfg2006/campaignhub-api/pkg/log"
)

type Phase string

const (
	PhaseNotStarted       Phase = "NOT_STARTED"
	PhaseValidating       Phase = "VALIDATING"
	PhaseSyncingCampaigns Phase = "SYNCING_CAMPAIGNS"
	PhaseSyncingInsights  Phase = "SYNCING_INSIGHTS"
	PhaseFinalizing       Phase = "FINALIZING"
	PhaseDone             Phase = "DONE"
)

const (
	entityCampaign = "campaign"
	entityAdSet    = "ad_set"
	entityAd       = "ad"
	entityMetric   = "metric"

	defaultLookbackDays = 30
)

// Service sincroniza uma conta de anúncios do Meta com a base local
type Service struct {
	client       PlatformClient
	stores       StoreFactory
	platform     domain.AdPlatform
	lookbackDays int
	now          func() time.Time
}

func NewService(client PlatformClient, stores StoreFactory, cfg config.MetaAdsSync) *Service {
	lookback := cfg.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}

	return &Service{
		client:       client,
		stores:       stores,
		platform:     domain.AdPlatformMetaAds,
		lookbackDays: lookback,
		now:          time.Now,
	}
}

// syncRun carrega o estado de uma execução
type syncRun struct {
	store  Store
	result *domain.SyncResult
	phase  Phase
	logger log.Logger
}

func (r *syncRun) enter(phase Phase) {
	r.logger.WithField("phase", string(phase)).Debugf("Sincronização: %s -> %s", r.phase, phase)
	r.phase = phase
}

func (r *syncRun) recordError(platform domain.AdPlatform, entity, message string) {
	r.result.Errors = append(r.result.Errors, message)
	metrics.SyncItemErrors.WithLabelValues(platform.String(), entity).Inc()
	r.logger.WithField("entity", entity).Warn(message)
}

// SyncAdAccount puxa campanhas, conjuntos, anúncios e insights da conta e reconcilia
// tudo localmente. Só falhas de pré-condição e de gravação final são devolvidas como
// erro; falhas de itens individuais ficam em SyncResult.Errors.
func (s *Service) SyncAdAccount(ctx context.Context, adAccountID string) (*domain.SyncResult, error) {
	startedAt := s.now()
	syncID := uuid.NewString()

	run := &syncRun{
		store: s.stores.NewStore(),
		result: &domain.SyncResult{
			AdAccountID: adAccountID,
			Errors:      []string{},
		},
		phase: PhaseNotStarted,
		logger: log.ForContext(ctx).WithFields(log.Fields{
			"sync_id":       syncID,
			"ad_account_id": adAccountID,
			"platform":      s.platform.String(),
		}),
	}

	run.enter(PhaseValidating)
	account, err := s.validate(ctx, run.store, adAccountID)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(s.platform.String(), "failed").Inc()
		run.logger.WithError(err).Error("Sincronização não iniciada")
		return nil, err
	}

	run.logger.Infof("Iniciando sincronização da conta %s", account.GetExternalID())

	run.enter(PhaseSyncingCampaigns)
	s.syncCampaigns(ctx, run, account)

	if ctx.Err() == nil {
		run.enter(PhaseSyncingInsights)
		s.syncInsights(ctx, run, account)
	}

	commitCtx := ctx
	if ctxErr := ctx.Err(); ctxErr != nil {
		run.result.Errors = append(run.result.Errors, fmt.Sprintf("Sync cancelled: %v", ctxErr))
		run.logger.Warn("Sincronização cancelada, gravando o que já foi reconciliado")
		commitCtx = context.WithoutCancel(ctx)
	}

	run.enter(PhaseFinalizing)
	syncedAt := s.now().UTC()
	account.MarkSynced(syncedAt)

	if err := run.store.Commit(commitCtx); err != nil {
		metrics.SyncRuns.WithLabelValues(s.platform.String(), "failed").Inc()
		run.logger.WithError(err).Error("Erro ao gravar a sincronização")
		return nil, fmt.Errorf("erro ao gravar sincronização da conta %s: %w", adAccountID, err)
	}

	run.result.SyncedAt = syncedAt
	run.enter(PhaseDone)

	outcome := "success"
	if run.result.HasWarnings() {
		outcome = "warnings"
	}
	metrics.SyncRuns.WithLabelValues(s.platform.String(), outcome).Inc()
	metrics.SyncDuration.WithLabelValues(s.platform.String()).Observe(time.Since(startedAt).Seconds())

	run.logger.WithFields(log.Fields{
		"campaigns_synced": run.result.CampaignsSynced,
		"ad_sets_synced":   run.result.AdSetsSynced,
		"ads_synced":       run.result.AdsSynced,
		"metrics_synced":   run.result.MetricsSynced,
		"errors":           len(run.result.Errors),
	}).Info("Sincronização concluída")

	return run.result, nil
}

func (s *Service) validate(ctx context.Context, store Store, adAccountID string) (*domain.AdAccount, error) {
	account, err := store.GetAdAccountByID(ctx, adAccountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar conta de anúncios %s: %w", adAccountID, err)
	}

	if account == nil {
		return nil, newSyncError(ErrAdAccountNotFound, adAccountID, "")
	}

	if !account.HasExternalID() {
		return nil, newSyncError(ErrExternalIDNotConfigured, adAccountID, "vincule a conta a uma conta do Meta antes de sincronizar")
	}

	if !account.CanSyncWith(s.platform) {
		return nil, newSyncError(ErrPlatformMismatch, adAccountID, fmt.Sprintf("esperado %s, conta é %s", s.platform, account.Platform))
	}

	return account, nil
}

func (s *Service) syncCampaigns(ctx context.Context, run *syncRun, account *domain.AdAccount) {
	campaigns, err := s.client.GetCampaigns(ctx, account.GetExternalID())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		run.recordError(s.platform, entityCampaign, fmt.Sprintf("Error fetching campaigns: %v", err))
		return
	}

	run.logger.Debugf("%d campanhas recebidas", len(campaigns))

	for _, remote := range campaigns {
		if ctx.Err() != nil {
			return
		}

		if err := s.syncCampaign(ctx, run, account.ID, remote); err != nil {
			if ctx.Err() != nil {
				return
			}
			run.recordError(s.platform, entityCampaign, fmt.Sprintf("Error syncing campaign %s: %v", remote.ID, err))
		}
	}
}

// syncCampaign conta a campanha assim que ela é reconciliada, antes de buscar os conjuntos
func (s *Service) syncCampaign(ctx context.Context, run *syncRun, adAccountID string, remote metadomain.Campaign) error {
	campaign, err := upsertCampaign(ctx, run.store, adAccountID, remote, s.now().UTC())
	if err != nil {
		return err
	}
	run.result.CampaignsSynced++
	metrics.SyncedEntities.WithLabelValues(s.platform.String(), entityCampaign).Inc()

	adSets, err := s.client.GetAdSets(ctx, remote.ID)
	if err != nil {
		return err
	}

	for _, remoteAdSet := range adSets {
		if ctx.Err() != nil {
			return nil
		}

		if err := s.syncAdSet(ctx, run, campaign.ID, remoteAdSet); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			run.recordError(s.platform, entityAdSet, fmt.Sprintf("Error syncing ad set %s: %v", remoteAdSet.ID, err))
		}
	}

	return nil
}

func (s *Service) syncAdSet(ctx context.Context, run *syncRun, campaignID string, remote metadomain.AdSet) error {
	adSet, err := upsertAdSet(ctx, run.store, campaignID, remote)
	if err != nil {
		return err
	}
	run.result.AdSetsSynced++
	metrics.SyncedEntities.WithLabelValues(s.platform.String(), entityAdSet).Inc()

	ads, err := s.client.GetAds(ctx, remote.ID)
	if err != nil {
		return err
	}

	for _, remoteAd := range ads {
		if ctx.Err() != nil {
			return nil
		}

		if _, err := upsertAd(ctx, run.store, adSet.ID, remoteAd); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			run.recordError(s.platform, entityAd, fmt.Sprintf("Error syncing ad %s: %v", remoteAd.ID, err))
			continue
		}
		run.result.AdsSynced++
		metrics.SyncedEntities.WithLabelValues(s.platform.String(), entityAd).Inc()
	}

	return nil
}

// InsightsWindow devolve a janela de insights: de hoje menos lookbackDays até hoje, em UTC
func (s *Service) InsightsWindow() (since, until time.Time) {
	now := s.now().UTC()
	until = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since = until.AddDate(0, 0, -s.lookbackDays)
	return since, until
}

func (s *Service) syncInsights(ctx context.Context, run *syncRun, account *domain.AdAccount) {
	since, until := s.InsightsWindow()

	insights, err := s.client.GetCampaignInsights(ctx, account.GetExternalID(), since, until)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		run.recordError(s.platform, entityMetric, fmt.Sprintf("Error fetching insights: %v", err))
		return
	}

	run.logger.Debugf("%d insights recebidos entre %s e %s", len(insights), since.Format(time.DateOnly), until.Format(time.DateOnly))

	for _, insight := range insights {
		if ctx.Err() != nil {
			return
		}

		synced, err := upsertMetric(ctx, run.store, insight)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			run.recordError(s.platform, entityMetric, fmt.Sprintf("Error syncing metric for campaign %s: %v", insight.CampaignID, err))
			continue
		}

		if synced {
			run.result.MetricsSynced++
			metrics.SyncedEntities.WithLabelValues(s.platform.String(), entityMetric).Inc()
		}
	}
}
