package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaignhub-api/infrastructure/repository"
	"github.com/vfg2006/campaignhub-api/internal/config"
	"github.com/vfg2006/campaignhub-api/internal/domain"
	"github.com/vfg2006/campaignhub-api/internal/metrics"
	"github.com/vfg2006/campaignhub-api/internal/usecases/syncing"
	"github.com/vfg2006/campaignhub-api/pkg/log"
)

const metaAdsSyncJob = "meta_ads_sync"

// ErrSyncInProgress indica que a conta já está sendo sincronizada
var ErrSyncInProgress = errors.New("sincronização já em andamento para a conta")

// MetaAdsSyncConfig representa a configuração do agendador de sincronização do Meta Ads
type MetaAdsSyncConfig struct {
	CronSchedule   string
	AccountTimeout time.Duration
	SyncEnabled    bool
}

// RunSummary resume uma execução do job sobre todas as contas
type RunSummary struct {
	Accounts     int `json:"accounts"`
	Succeeded    int `json:"succeeded"`
	WithWarnings int `json:"with_warnings"`
	Failed       int `json:"failed"`
	Skipped      int `json:"skipped"`
}

// MetaAdsSyncService agenda a sincronização diária das contas do Meta Ads e serializa
// sincronizações da mesma conta, venham elas do cron ou da API
type MetaAdsSyncService struct {
	scheduler *gocron.Scheduler
	config    MetaAdsSyncConfig
	accounts  repository.AdAccountRepository
	syncer    syncing.AdAccountSyncer

	locksMu      sync.Mutex
	accountLocks map[string]struct{}

	// runMutex também protege ctx, lido pelos disparos manuais vindos da API
	runMutex           sync.Mutex
	ctx                context.Context
	runRunning         bool
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunSummary     RunSummary
}

func NewMetaAdsSyncService(
	accounts repository.AdAccountRepository,
	syncer syncing.AdAccountSyncer,
	appConfig *config.Config,
) *MetaAdsSyncService {
	syncConfig := MetaAdsSyncConfig{
		CronSchedule:   appConfig.MetaAdsSync.CronSchedule,
		AccountTimeout: time.Duration(appConfig.MetaAdsSync.AccountTimeout) * time.Minute,
		SyncEnabled:    appConfig.MetaAdsSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   syncConfig.CronSchedule,
		"account_timeout": syncConfig.AccountTimeout.String(),
		"sync_enabled":    syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização do Meta Ads carregada")

	return &MetaAdsSyncService{
		scheduler:    gocron.NewScheduler(time.UTC),
		config:       syncConfig,
		accounts:     accounts,
		syncer:       syncer,
		ctx:          context.Background(),
		accountLocks: make(map[string]struct{}),
	}
}

// Start agenda o job e para o agendador quando ctx termina
func (s *MetaAdsSyncService) Start(ctx context.Context) error {
	s.runMutex.Lock()
	s.ctx = ctx
	s.runMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização do Meta Ads desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização do Meta Ads")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do Meta Ads: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização do Meta Ads")
		s.scheduler.Stop()
	}()

	return nil
}

// RunAll sincroniza, uma de cada vez, todas as contas do Meta com id externo.
// Uma falha em uma conta não interrompe as demais; o cancelamento de ctx interrompe o laço.
func (s *MetaAdsSyncService) RunAll(ctx context.Context) RunSummary {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Sincronização do Meta Ads já em andamento, ignorando")
		return RunSummary{}
	}
	s.runRunning = true
	s.lastRunStartedAt = time.Now()
	s.runMutex.Unlock()

	summary := RunSummary{}
	defer func() {
		s.runMutex.Lock()
		s.runRunning = false
		s.lastRunCompletedAt = time.Now()
		s.lastRunSummary = summary
		s.runMutex.Unlock()
		metrics.SchedulerLastRun.WithLabelValues(metaAdsSyncJob).SetToCurrentTime()
	}()

	// todas as contas da execução compartilham o mesmo correlation id nos logs
	ctx, _ = log.WithCorrelationID(ctx)
	ctx = log.ContextWithFields(ctx, log.Fields{"sync_job": metaAdsSyncJob})

	accounts, err := s.accounts.ListByPlatform(ctx, domain.AdPlatformMetaAds)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar contas para sincronização do Meta Ads")
		return summary
	}

	summary.Accounts = len(accounts)
	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta do Meta Ads vinculada para sincronizar")
		return summary
	}

	logrus.WithField("accounts", len(accounts)).Info("Iniciando sincronização do Meta Ads para todas as contas")
	startTime := time.Now()

	for i, account := range accounts {
		if ctx.Err() != nil {
			logrus.Warn("Sincronização do Meta Ads interrompida")
			summary.Skipped += len(accounts) - i
			break
		}

		result, err := s.SyncAccount(ctx, account.ID)
		switch {
		case errors.Is(err, ErrSyncInProgress):
			summary.Skipped++
		case err != nil:
			summary.Failed++
			logrus.WithError(err).WithField("ad_account_id", account.ID).Error("Erro ao sincronizar conta do Meta Ads")
		case result.HasWarnings():
			summary.WithWarnings++
		default:
			summary.Succeeded++
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration":      time.Since(startTime).String(),
		"accounts":      summary.Accounts,
		"succeeded":     summary.Succeeded,
		"with_warnings": summary.WithWarnings,
		"failed":        summary.Failed,
		"skipped":       summary.Skipped,
	}).Info("Sincronização do Meta Ads concluída")

	return summary
}

// SyncAccount sincroniza uma única conta respeitando o limite de tempo por conta.
// Devolve ErrSyncInProgress se a conta já estiver sendo sincronizada.
func (s *MetaAdsSyncService) SyncAccount(ctx context.Context, adAccountID string) (*domain.SyncResult, error) {
	if !s.tryLock(adAccountID) {
		return nil, ErrSyncInProgress
	}
	defer s.unlock(adAccountID)

	if s.config.AccountTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.AccountTimeout)
		defer cancel()
	}

	return s.syncer.SyncAdAccount(ctx, adAccountID)
}

func (s *MetaAdsSyncService) tryLock(adAccountID string) bool {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if _, locked := s.accountLocks[adAccountID]; locked {
		return false
	}
	s.accountLocks[adAccountID] = struct{}{}
	return true
}

func (s *MetaAdsSyncService) unlock(adAccountID string) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	delete(s.accountLocks, adAccountID)
}

// TriggerManualSync dispara RunAll em segundo plano; devolve false se já houver execução
func (s *MetaAdsSyncService) TriggerManualSync() bool {
	s.runMutex.Lock()
	running := s.runRunning
	ctx := s.ctx
	s.runMutex.Unlock()

	if running {
		logrus.Info("Sincronização do Meta Ads já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual do Meta Ads")
	go s.RunAll(ctx)
	return true
}

// GetStatus retorna o status atual do agendador
func (s *MetaAdsSyncService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"sync_enabled":          s.config.SyncEnabled,
		"sync_cron":             s.config.CronSchedule,
		"account_timeout":       s.config.AccountTimeout.String(),
		"running":               s.runRunning,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_summary":      s.lastRunSummary,
	}
}
