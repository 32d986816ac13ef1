package syncing

import (
	"context"
	"time"

	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/internal/domain"
)

// PlatformClient lê a hierarquia de campanhas e os insights na plataforma remota.
// As listas chegam completas, já paginadas.
type PlatformClient interface {
	GetCampaigns(ctx context.Context, accountExternalID string) ([]metadomain.Campaign, error)
	GetAdSets(ctx context.Context, campaignExternalID string) ([]metadomain.AdSet, error)
	GetAds(ctx context.Context, adSetExternalID string) ([]metadomain.Ad, error)
	GetCampaignInsights(ctx context.Context, accountExternalID string, since, until time.Time) ([]metadomain.Insight, error)
}

// Store é a unidade de trabalho de uma sincronização: consultas devolvem sempre a
// mesma instância por entidade, alterações nessas instâncias são gravadas no Commit
// e entidades novas precisam passar por Stage*.
type Store interface {
	GetAdAccountByID(ctx context.Context, id string) (*domain.AdAccount, error)
	GetCampaignByExternalID(ctx context.Context, externalID string) (*domain.Campaign, error)
	GetAdSetByExternalID(ctx context.Context, externalID string) (*domain.AdSet, error)
	GetAdByExternalID(ctx context.Context, externalID string) (*domain.Ad, error)
	GetMetricByCampaignAndPeriod(ctx context.Context, campaignID string, period time.Time) (*domain.MetricCampaign, error)

	StageCampaign(campaign *domain.Campaign)
	StageAdSet(adSet *domain.AdSet)
	StageAd(ad *domain.Ad)
	StageMetric(metric *domain.MetricCampaign)

	Commit(ctx context.Context) error
}

// StoreFactory cria uma Store nova para cada execução
type StoreFactory interface {
	NewStore() Store
}

type StoreFactoryFunc func() Store

func (f StoreFactoryFunc) NewStore() Store {
	return f()
}

// AdAccountSyncer é o que o agendador e a API enxergam da sincronização
type AdAccountSyncer interface {
	SyncAdAccount(ctx context.Context, adAccountID string) (*domain.SyncResult, error)
}
