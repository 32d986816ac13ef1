package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/internal/config"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	campaignFields = "id,name,status,start_time,stop_time"
	adSetFields    = "id,campaign_id,name,status,daily_budget"
	adFields       = "id,adset_id,name,status"
	insightFields  = "campaign_id,date_start,date_stop,spend,actions,action_values"

	endpointCampaigns = "campaigns"
	endpointAdSets    = "adsets"
	endpointAds       = "ads"
	endpointInsights  = "insights"
)

// Client lê a hierarquia de campanhas e os insights de uma conta na Graph API.
// Todas as listas são percorridas até a última página.
type Client interface {
	GetCampaigns(ctx context.Context, accountExternalID string) ([]metadomain.Campaign, error)
	GetAdSets(ctx context.Context, campaignExternalID string) ([]metadomain.AdSet, error)
	GetAds(ctx context.Context, adSetExternalID string) ([]metadomain.Ad, error)
	GetCampaignInsights(ctx context.Context, accountExternalID string, since, until time.Time) ([]metadomain.Insight, error)
}

// TokenProvider fornece o token de acesso atual e sabe renová-lo quando a API o rejeita
type TokenProvider interface {
	AccessToken() string
	HandleExpiredToken(ctx context.Context) error
}

type MetaClient struct {
	apiURL     string
	pageLimit  int
	maxRetries int
	httpClient *http.Client
	limiter    *rate.Limiter
	tokens     TokenProvider
}

func NewClient(cfg config.Meta, tokens TokenProvider) *MetaClient {
	apiURL := cfg.URL
	if apiURL == "" {
		apiURL = fmt.Sprintf("%s/%s", cfg.BaseURL, cfg.Version)
	}

	burst := int(cfg.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &MetaClient{
		apiURL:     strings.TrimRight(apiURL, "/"),
		pageLimit:  cfg.PageLimit,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: newTokenTransport(http.DefaultTransport, tokens),
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		tokens:  tokens,
	}
}

func (c *MetaClient) GetCampaigns(ctx context.Context, accountExternalID string) ([]metadomain.Campaign, error) {
	startURL := c.buildURL(normalizeAccountID(accountExternalID), endpointCampaigns, url.Values{
		"fields": {campaignFields},
	})
	return fetchAllPages[metadomain.Campaign](ctx, c, endpointCampaigns, startURL)
}

func (c *MetaClient) GetAdSets(ctx context.Context, campaignExternalID string) ([]metadomain.AdSet, error) {
	startURL := c.buildURL(campaignExternalID, endpointAdSets, url.Values{
		"fields": {adSetFields},
	})
	return fetchAllPages[metadomain.AdSet](ctx, c, endpointAdSets, startURL)
}

func (c *MetaClient) GetAds(ctx context.Context, adSetExternalID string) ([]metadomain.Ad, error) {
	startURL := c.buildURL(adSetExternalID, endpointAds, url.Values{
		"fields": {adFields},
	})
	return fetchAllPages[metadomain.Ad](ctx, c, endpointAds, startURL)
}

// GetCampaignInsights busca os insights mensais por campanha dentro da janela [since, until]
func (c *MetaClient) GetCampaignInsights(ctx context.Context, accountExternalID string, since, until time.Time) ([]metadomain.Insight, error) {
	timeRange, err := json.Marshal(map[string]string{
		"since": since.Format(time.DateOnly),
		"until": until.Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}

	startURL := c.buildURL(normalizeAccountID(accountExternalID), endpointInsights, url.Values{
		"fields":         {insightFields},
		"level":          {"campaign"},
		"time_increment": {"monthly"},
		"time_range":     {string(timeRange)},
	})

	raw, err := fetchAllPages[metadomain.CampaignInsight](ctx, c, endpointInsights, startURL)
	if err != nil {
		return nil, err
	}

	insights := make([]metadomain.Insight, 0, len(raw))
	for _, r := range raw {
		insights = append(insights, r.Flatten())
	}

	return insights, nil
}

func (c *MetaClient) buildURL(nodeID, edge string, params url.Values) string {
	if c.pageLimit > 0 {
		params.Set("limit", strconv.Itoa(c.pageLimit))
	}
	return fmt.Sprintf("%s/%s/%s?%s", c.apiURL, url.PathEscape(nodeID), edge, params.Encode())
}

// normalizeAccountID garante o prefixo act_ exigido pela Graph API para contas de anúncio
func normalizeAccountID(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}
