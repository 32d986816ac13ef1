package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaignhub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaignhub-api/internal/config"
	"github.com/vfg2006/campaignhub-api/internal/domain"
	"github.com/vfg2006/campaignhub-api/internal/metrics"
	syncmocks "github.com/vfg2006/campaignhub-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		MetaAdsSync: config.MetaAdsSync{
			CronSchedule:   "0 3 * * *",
			LookbackDays:   30,
			AccountTimeout: 5,
			Enabled:        true,
		},
	}
}

func metaAccounts(ids ...string) []*domain.AdAccount {
	accounts := make([]*domain.AdAccount, 0, len(ids))
	for _, id := range ids {
		account := &domain.AdAccount{ID: id, Platform: domain.AdPlatformMetaAds}
		account.SetExternalID("act_" + id)
		accounts = append(accounts, account)
	}
	return accounts
}

func TestMetaAdsSyncService_RunAll(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(repo *mocks.MockAdAccountRepository, syncer *syncmocks.MockAdAccountSyncer)
		validate func(t *testing.T, summary RunSummary)
	}{
		{
			name: "Contas sincronizadas em sequência, falha em uma não interrompe as demais",
			setup: func(repo *mocks.MockAdAccountRepository, syncer *syncmocks.MockAdAccountSyncer) {
				repo.EXPECT().ListByPlatform(gomock.Any(), domain.AdPlatformMetaAds).Return(metaAccounts("a1", "a2", "a3"), nil)
				gomock.InOrder(
					syncer.EXPECT().SyncAdAccount(gomock.Any(), "a1").Return(&domain.SyncResult{AdAccountID: "a1"}, nil),
					syncer.EXPECT().SyncAdAccount(gomock.Any(), "a2").Return(nil, errors.New("deadlock detected")),
					syncer.EXPECT().SyncAdAccount(gomock.Any(), "a3").Return(&domain.SyncResult{
						AdAccountID: "a3",
						Errors:      []string{"Error fetching insights: boom"},
					}, nil),
				)
			},
			validate: func(t *testing.T, summary RunSummary) {
				assert.Equal(t, RunSummary{Accounts: 3, Succeeded: 1, WithWarnings: 1, Failed: 1}, summary)
			},
		},
		{
			name: "Erro ao listar contas não sincroniza nada",
			setup: func(repo *mocks.MockAdAccountRepository, syncer *syncmocks.MockAdAccountSyncer) {
				repo.EXPECT().ListByPlatform(gomock.Any(), domain.AdPlatformMetaAds).Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, summary RunSummary) {
				assert.Equal(t, RunSummary{}, summary)
			},
		},
		{
			name: "Nenhuma conta vinculada",
			setup: func(repo *mocks.MockAdAccountRepository, syncer *syncmocks.MockAdAccountSyncer) {
				repo.EXPECT().ListByPlatform(gomock.Any(), domain.AdPlatformMetaAds).Return([]*domain.AdAccount{}, nil)
			},
			validate: func(t *testing.T, summary RunSummary) {
				assert.Equal(t, RunSummary{}, summary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockAdAccountRepository(ctrl)
			syncer := syncmocks.NewMockAdAccountSyncer(ctrl)
			tt.setup(repo, syncer)

			service := NewMetaAdsSyncService(repo, syncer, testConfig())
			summary := service.RunAll(context.Background())

			tt.validate(t, summary)
			assert.Greater(t, testutil.ToFloat64(metrics.SchedulerLastRun.WithLabelValues(metaAdsSyncJob)), float64(0))

			status := service.GetStatus()
			assert.Equal(t, false, status["running"])
			assert.Equal(t, summary, status["last_run_summary"])
		})
	}
}

func TestMetaAdsSyncService_RunAllStopsWhenCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAdAccountRepository(ctrl)
	syncer := syncmocks.NewMockAdAccountSyncer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo.EXPECT().ListByPlatform(gomock.Any(), domain.AdPlatformMetaAds).Return(metaAccounts("a1", "a2", "a3"), nil)
	syncer.EXPECT().SyncAdAccount(gomock.Any(), "a1").DoAndReturn(func(context.Context, string) (*domain.SyncResult, error) {
		cancel()
		return &domain.SyncResult{AdAccountID: "a1"}, nil
	})

	service := NewMetaAdsSyncService(repo, syncer, testConfig())
	summary := service.RunAll(ctx)

	assert.Equal(t, RunSummary{Accounts: 3, Succeeded: 1, Skipped: 2}, summary)
}

func TestMetaAdsSyncService_SyncAccountIsSerializedPerAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAdAccountRepository(ctrl)
	syncer := syncmocks.NewMockAdAccountSyncer(ctrl)
	service := NewMetaAdsSyncService(repo, syncer, testConfig())

	started := make(chan struct{})
	release := make(chan struct{})

	syncer.EXPECT().SyncAdAccount(gomock.Any(), "a1").DoAndReturn(func(context.Context, string) (*domain.SyncResult, error) {
		close(started)
		<-release
		return &domain.SyncResult{AdAccountID: "a1"}, nil
	})
	syncer.EXPECT().SyncAdAccount(gomock.Any(), "a2").Return(&domain.SyncResult{AdAccountID: "a2"}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := service.SyncAccount(context.Background(), "a1")
		done <- err
	}()
	<-started

	// mesma conta é recusada, outra conta segue normalmente
	_, err := service.SyncAccount(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrSyncInProgress)

	result, err := service.SyncAccount(context.Background(), "a2")
	require.NoError(t, err)
	assert.Equal(t, "a2", result.AdAccountID)

	close(release)
	require.NoError(t, <-done)

	// o lock é liberado ao final
	syncer.EXPECT().SyncAdAccount(gomock.Any(), "a1").Return(&domain.SyncResult{AdAccountID: "a1"}, nil)
	_, err = service.SyncAccount(context.Background(), "a1")
	assert.NoError(t, err)
}

func TestMetaAdsSyncService_SyncAccountAppliesTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAdAccountRepository(ctrl)
	syncer := syncmocks.NewMockAdAccountSyncer(ctrl)
	service := NewMetaAdsSyncService(repo, syncer, testConfig())

	syncer.EXPECT().SyncAdAccount(gomock.Any(), "a1").DoAndReturn(func(ctx context.Context, _ string) (*domain.SyncResult, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(5*time.Minute), deadline, time.Minute)
		return &domain.SyncResult{AdAccountID: "a1"}, nil
	})

	_, err := service.SyncAccount(context.Background(), "a1")
	assert.NoError(t, err)
}

func TestMetaAdsSyncService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.MetaAdsSync.Enabled = false

	service := NewMetaAdsSyncService(mocks.NewMockAdAccountRepository(ctrl), syncmocks.NewMockAdAccountSyncer(ctrl), cfg)

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestMetaAdsSyncService_TriggerManualSyncUsesStartContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.MetaAdsSync.Enabled = false

	repo := mocks.NewMockAdAccountRepository(ctrl)
	service := NewMetaAdsSyncService(repo, syncmocks.NewMockAdAccountSyncer(ctrl), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	listed := make(chan error, 1)
	repo.EXPECT().ListByPlatform(gomock.Any(), domain.AdPlatformMetaAds).
		DoAndReturn(func(ctx context.Context, _ domain.AdPlatform) ([]*domain.AdAccount, error) {
			listed <- ctx.Err()
			return nil, ctx.Err()
		})

	startDone := make(chan struct{})
	go func() {
		defer close(startDone)
		assert.NoError(t, service.Start(ctx))
	}()
	<-startDone

	require.True(t, service.TriggerManualSync())

	select {
	case err := <-listed:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("sincronização manual não foi executada")
	}

	require.Eventually(t, func() bool {
		return service.GetStatus()["running"] == false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMetaAdsSyncService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.MetaAdsSync.CronSchedule = "todo dia"

	service := NewMetaAdsSyncService(mocks.NewMockAdAccountRepository(ctrl), syncmocks.NewMockAdAccountSyncer(ctrl), cfg)

	assert.Error(t, service.Start(context.Background()))
}
