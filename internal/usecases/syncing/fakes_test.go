package syncing

import (
	"context"
	"errors"
	"time"

	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/internal/domain"
)

// memDB simula as tabelas; cada execução abre um memStore novo sobre ele
type memDB struct {
	accounts  map[string]*domain.AdAccount
	campaigns map[string]*domain.Campaign
	adSets    map[string]*domain.AdSet
	ads       map[string]*domain.Ad
	metrics   map[string]*domain.MetricCampaign
	commits   int
	commitErr error
	commitCtx []error
}

func newMemDB(accounts ...*domain.AdAccount) *memDB {
	db := &memDB{
		accounts:  make(map[string]*domain.AdAccount),
		campaigns: make(map[string]*domain.Campaign),
		adSets:    make(map[string]*domain.AdSet),
		ads:       make(map[string]*domain.Ad),
		metrics:   make(map[string]*domain.MetricCampaign),
	}
	for _, a := range accounts {
		db.accounts[a.ID] = a
	}
	return db
}

func (db *memDB) factory() StoreFactory {
	return StoreFactoryFunc(func() Store {
		return &memStore{db: db}
	})
}

func (db *memDB) metricFor(campaignExternalID string, period time.Time) *domain.MetricCampaign {
	campaign := db.campaigns[campaignExternalID]
	if campaign == nil {
		return nil
	}
	return db.metrics[memMetricKey(campaign.ID, period)]
}

func memMetricKey(campaignID string, period time.Time) string {
	return campaignID + "|" + domain.NormalizePeriod(period).Format(time.DateOnly)
}

type memStore struct {
	db        *memDB
	campaigns []*domain.Campaign
	adSets    []*domain.AdSet
	ads       []*domain.Ad
	metrics   []*domain.MetricCampaign
}

func (s *memStore) GetAdAccountByID(_ context.Context, id string) (*domain.AdAccount, error) {
	return s.db.accounts[id], nil
}

func (s *memStore) GetCampaignByExternalID(_ context.Context, externalID string) (*domain.Campaign, error) {
	for _, c := range s.campaigns {
		if c.ExternalID != nil && *c.ExternalID == externalID {
			return c, nil
		}
	}
	return s.db.campaigns[externalID], nil
}

func (s *memStore) GetAdSetByExternalID(_ context.Context, externalID string) (*domain.AdSet, error) {
	for _, a := range s.adSets {
		if a.ExternalID != nil && *a.ExternalID == externalID {
			return a, nil
		}
	}
	return s.db.adSets[externalID], nil
}

func (s *memStore) GetAdByExternalID(_ context.Context, externalID string) (*domain.Ad, error) {
	for _, a := range s.ads {
		if a.ExternalID != nil && *a.ExternalID == externalID {
			return a, nil
		}
	}
	return s.db.ads[externalID], nil
}

func (s *memStore) GetMetricByCampaignAndPeriod(_ context.Context, campaignID string, period time.Time) (*domain.MetricCampaign, error) {
	key := memMetricKey(campaignID, period)
	for _, m := range s.metrics {
		if memMetricKey(m.CampaignID, m.ReferencePeriod) == key {
			return m, nil
		}
	}
	return s.db.metrics[key], nil
}

func (s *memStore) StageCampaign(c *domain.Campaign) { s.campaigns = append(s.campaigns, c) }

func (s *memStore) StageAdSet(a *domain.AdSet) { s.adSets = append(s.adSets, a) }

func (s *memStore) StageAd(a *domain.Ad) { s.ads = append(s.ads, a) }

func (s *memStore) StageMetric(m *domain.MetricCampaign) { s.metrics = append(s.metrics, m) }

func (s *memStore) Commit(ctx context.Context) error {
	s.db.commitCtx = append(s.db.commitCtx, ctx.Err())
	if s.db.commitErr != nil {
		return s.db.commitErr
	}

	for _, c := range s.campaigns {
		s.db.campaigns[*c.ExternalID] = c
	}
	for _, a := range s.adSets {
		s.db.adSets[*a.ExternalID] = a
	}
	for _, a := range s.ads {
		s.db.ads[*a.ExternalID] = a
	}
	for _, m := range s.metrics {
		s.db.metrics[memMetricKey(m.CampaignID, m.ReferencePeriod)] = m
	}
	s.db.commits++
	return nil
}

// fakePlatform devolve respostas fixas; beforeAdSets permite agir no meio da execução
type fakePlatform struct {
	campaigns     []metadomain.Campaign
	campaignsErr  error
	adSets        map[string][]metadomain.AdSet
	adSetsErr     map[string]error
	ads           map[string][]metadomain.Ad
	insights      []metadomain.Insight
	insightsErr   error
	beforeAdSets  func(campaignExternalID string)
	insightsSince time.Time
	insightsUntil time.Time
	calls         int
}

func (f *fakePlatform) GetCampaigns(_ context.Context, _ string) ([]metadomain.Campaign, error) {
	f.calls++
	return f.campaigns, f.campaignsErr
}

func (f *fakePlatform) GetAdSets(ctx context.Context, campaignExternalID string) ([]metadomain.AdSet, error) {
	f.calls++
	if f.beforeAdSets != nil {
		f.beforeAdSets(campaignExternalID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.adSetsErr[campaignExternalID]; ok {
		return nil, err
	}
	return f.adSets[campaignExternalID], nil
}

func (f *fakePlatform) GetAds(_ context.Context, adSetExternalID string) ([]metadomain.Ad, error) {
	f.calls++
	return f.ads[adSetExternalID], nil
}

func (f *fakePlatform) GetCampaignInsights(_ context.Context, _ string, since, until time.Time) ([]metadomain.Insight, error) {
	f.calls++
	f.insightsSince = since
	f.insightsUntil = until
	return f.insights, f.insightsErr
}

var errRemote = errors.New("meta api request failed (status 500): boom")

func strPtr(s string) *string {
	return &s
}

func metaAccount(id, externalID string) *domain.AdAccount {
	account := &domain.AdAccount{
		ID:         id,
		CustomerID: "customer-1",
		Platform:   domain.AdPlatformMetaAds,
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if externalID != "" {
		account.SetExternalID(externalID)
	}
	return account
}

func newTestService(client PlatformClient, stores StoreFactory, now time.Time) *Service {
	svc := &Service{
		client:       client,
		stores:       stores,
		platform:     domain.AdPlatformMetaAds,
		lookbackDays: defaultLookbackDays,
		now:          func() time.Time { return now },
	}
	return svc
}
