package repository

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaignhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaignhub-api/internal/domain"
)

// Repositories agrupa os repositórios usados pela sincronização sobre um mesmo Queryer
type Repositories struct {
	AdAccounts AdAccountRepository
	Campaigns  CampaignRepository
	AdSets     AdSetRepository
	Ads        AdRepository
	Metrics    MetricCampaignRepository
}

func NewRepositories(db postgres.Queryer) Repositories {
	return Repositories{
		AdAccounts: NewAdAccountRepository(db),
		Campaigns:  NewCampaignRepository(db),
		AdSets:     NewAdSetRepository(db),
		Ads:        NewAdRepository(db),
		Metrics:    NewMetricCampaignRepository(db),
	}
}

// Transactor abre uma transação e entrega ao callback um Queryer ligado a ela
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(postgres.Queryer) error) error
}

// identityMap guarda uma única instância por chave e separa o que é novo do que
// veio do banco. Entidades carregadas são sempre regravadas no commit.
type identityMap[T any] struct {
	byKey  map[string]*T
	added  []*T
	loaded []*T
}

func newIdentityMap[T any]() *identityMap[T] {
	return &identityMap[T]{byKey: make(map[string]*T)}
}

func (m *identityMap[T]) get(key string) (*T, bool) {
	entity, ok := m.byKey[key]
	return entity, ok
}

func (m *identityMap[T]) track(key string, entity *T) {
	if _, ok := m.byKey[key]; ok {
		return
	}
	m.byKey[key] = entity
	m.loaded = append(m.loaded, entity)
}

func (m *identityMap[T]) stage(key string, entity *T) {
	if current, ok := m.byKey[key]; ok && current == entity {
		return
	}
	m.byKey[key] = entity
	m.added = append(m.added, entity)
}

// flushed move os inseridos para a lista de carregados depois de um commit
func (m *identityMap[T]) flushed() {
	m.loaded = append(m.loaded, m.added...)
	m.added = nil
}

// SyncUnitOfWork acumula as alterações de uma sincronização e grava tudo em uma
// única transação no Commit. Não é seguro para uso concorrente.
type SyncUnitOfWork struct {
	tx      Transactor
	read    Repositories
	inTx    func(postgres.Queryer) Repositories
	account *domain.AdAccount

	campaigns *identityMap[domain.Campaign]
	adSets    *identityMap[domain.AdSet]
	ads       *identityMap[domain.Ad]
	metrics   *identityMap[domain.MetricCampaign]
}

func NewSyncUnitOfWork(tx Transactor, read Repositories, inTx func(postgres.Queryer) Repositories) *SyncUnitOfWork {
	return &SyncUnitOfWork{
		tx:        tx,
		read:      read,
		inTx:      inTx,
		campaigns: newIdentityMap[domain.Campaign](),
		adSets:    newIdentityMap[domain.AdSet](),
		ads:       newIdentityMap[domain.Ad](),
		metrics:   newIdentityMap[domain.MetricCampaign](),
	}
}

func (u *SyncUnitOfWork) GetAdAccountByID(ctx context.Context, id string) (*domain.AdAccount, error) {
	if u.account != nil && u.account.ID == id {
		return u.account, nil
	}

	account, err := u.read.AdAccounts.GetByID(ctx, id)
	if err != nil || account == nil {
		return nil, err
	}

	u.account = account
	return account, nil
}

func (u *SyncUnitOfWork) GetCampaignByExternalID(ctx context.Context, externalID string) (*domain.Campaign, error) {
	return lookup(ctx, u.campaigns, externalID, u.read.Campaigns.GetByExternalID)
}

func (u *SyncUnitOfWork) GetAdSetByExternalID(ctx context.Context, externalID string) (*domain.AdSet, error) {
	return lookup(ctx, u.adSets, externalID, u.read.AdSets.GetByExternalID)
}

func (u *SyncUnitOfWork) GetAdByExternalID(ctx context.Context, externalID string) (*domain.Ad, error) {
	return lookup(ctx, u.ads, externalID, u.read.Ads.GetByExternalID)
}

func (u *SyncUnitOfWork) GetMetricByCampaignAndPeriod(ctx context.Context, campaignID string, period time.Time) (*domain.MetricCampaign, error) {
	return lookup(ctx, u.metrics, metricKey(campaignID, period), func(ctx context.Context, _ string) (*domain.MetricCampaign, error) {
		return u.read.Metrics.GetByCampaignAndPeriod(ctx, campaignID, period)
	})
}

func (u *SyncUnitOfWork) StageCampaign(campaign *domain.Campaign) {
	u.campaigns.stage(derefOrID(campaign.ExternalID, campaign.ID), campaign)
}

func (u *SyncUnitOfWork) StageAdSet(adSet *domain.AdSet) {
	u.adSets.stage(derefOrID(adSet.ExternalID, adSet.ID), adSet)
}

func (u *SyncUnitOfWork) StageAd(ad *domain.Ad) {
	u.ads.stage(derefOrID(ad.ExternalID, ad.ID), ad)
}

func (u *SyncUnitOfWork) StageMetric(metric *domain.MetricCampaign) {
	u.metrics.stage(metricKey(metric.CampaignID, metric.ReferencePeriod), metric)
}

// Commit grava inserções e atualizações na ordem das chaves estrangeiras
// (campanhas, conjuntos, anúncios, métricas) e por fim a data de sincronização da conta
func (u *SyncUnitOfWork) Commit(ctx context.Context) error {
	err := u.tx.RunInTransaction(ctx, func(q postgres.Queryer) error {
		repos := u.inTx(q)

		if err := persist(ctx, u.campaigns, repos.Campaigns.Insert, repos.Campaigns.Update); err != nil {
			return err
		}
		if err := persist(ctx, u.adSets, repos.AdSets.Insert, repos.AdSets.Update); err != nil {
			return err
		}
		if err := persist(ctx, u.ads, repos.Ads.Insert, repos.Ads.Update); err != nil {
			return err
		}
		if err := persist(ctx, u.metrics, repos.Metrics.Insert, repos.Metrics.Update); err != nil {
			return err
		}

		if u.account != nil && u.account.LastSyncedAt != nil {
			if err := repos.AdAccounts.UpdateLastSyncedAt(ctx, u.account.ID, *u.account.LastSyncedAt); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"campaigns_inserted": len(u.campaigns.added),
		"ad_sets_inserted":   len(u.adSets.added),
		"ads_inserted":       len(u.ads.added),
		"metrics_inserted":   len(u.metrics.added),
	}).Debug("Unidade de trabalho da sincronização gravada")

	u.campaigns.flushed()
	u.adSets.flushed()
	u.ads.flushed()
	u.metrics.flushed()

	return nil
}

func lookup[T any](ctx context.Context, m *identityMap[T], key string, load func(context.Context, string) (*T, error)) (*T, error) {
	if entity, ok := m.get(key); ok {
		return entity, nil
	}

	entity, err := load(ctx, key)
	if err != nil || entity == nil {
		return nil, err
	}

	m.track(key, entity)
	return entity, nil
}

func persist[T any](ctx context.Context, m *identityMap[T], insert, update func(context.Context, *T) error) error {
	for _, entity := range m.added {
		if err := insert(ctx, entity); err != nil {
			return err
		}
	}
	for _, entity := range m.loaded {
		if err := update(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

func metricKey(campaignID string, period time.Time) string {
	return campaignID + "|" + domain.NormalizePeriod(period).Format(time.DateOnly)
}

func derefOrID(externalID *string, id string) string {
	if externalID != nil && *externalID != "" {
		return *externalID
	}
	return "id:" + id
}

// SyncUnitOfWorkFactory cria uma unidade de trabalho nova para cada sincronização
type SyncUnitOfWorkFactory struct {
	conn postgres.Conn
}

func NewSyncUnitOfWorkFactory(conn postgres.Conn) *SyncUnitOfWorkFactory {
	return &SyncUnitOfWorkFactory{conn: conn}
}

func (f *SyncUnitOfWorkFactory) New() *SyncUnitOfWork {
	return NewSyncUnitOfWork(f.conn, NewRepositories(f.conn), NewRepositories)
}
