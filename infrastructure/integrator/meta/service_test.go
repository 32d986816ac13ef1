package meta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gobreaker "github.com/sony/gobreaker/v2"
	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/mocks"
	"go.uber.org/mock/gomock"
)

func testSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 2,
		Interval:            time.Minute,
		Timeout:             time.Hour,
		HalfOpenRequests:    1,
	}
}

func TestMetaIntegrator_PassesResultsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := New(client, testSettings())

	client.EXPECT().
		GetCampaigns(gomock.Any(), "act_1").
		Return([]metadomain.Campaign{{ID: "c1", Name: "Campanha"}}, nil)

	campaigns, err := integrator.GetCampaigns(context.Background(), "act_1")
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "c1", campaigns[0].ID)
	assert.Equal(t, "closed", integrator.State())
}

func TestMetaIntegrator_EmptyResultIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := New(client, testSettings())

	client.EXPECT().GetAds(gomock.Any(), "s1").Return(nil, nil)

	ads, err := integrator.GetAds(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, ads)
}

func TestMetaIntegrator_OpensAfterConsecutiveFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := New(client, testSettings())

	apiErr := &metadomain.RemoteRequestError{StatusCode: 500, Message: "boom"}
	client.EXPECT().
		GetAdSets(gomock.Any(), gomock.Any()).
		Return(nil, apiErr).
		Times(2)

	for range 2 {
		_, err := integrator.GetAdSets(context.Background(), "c1")
		assert.ErrorIs(t, err, apiErr)
	}

	assert.Equal(t, "open", integrator.State())

	// com o circuito aberto o cliente não é chamado
	_, err := integrator.GetAdSets(context.Background(), "c1")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestMetaIntegrator_CancellationDoesNotTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := New(client, testSettings())

	client.EXPECT().
		GetCampaignInsights(gomock.Any(), "act_1", gomock.Any(), gomock.Any()).
		Return(nil, context.Canceled).
		Times(3)

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.AddDate(0, 1, 0)

	for range 3 {
		_, err := integrator.GetCampaignInsights(context.Background(), "act_1", since, until)
		assert.True(t, errors.Is(err, context.Canceled))
	}

	assert.Equal(t, "closed", integrator.State())
}

func TestMetaIntegrator_PermanentItemErrorsDoNotTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := New(client, testSettings())

	badAdSet := &metadomain.RemoteRequestError{StatusCode: 400, Code: 100, Message: "Unsupported get request"}
	client.EXPECT().
		GetAdSets(gomock.Any(), gomock.Any()).
		Return(nil, badAdSet).
		Times(5)
	client.EXPECT().
		GetCampaignInsights(gomock.Any(), "act_1", gomock.Any(), gomock.Any()).
		Return([]metadomain.Insight{{CampaignID: "c1"}}, nil)

	for range 5 {
		_, err := integrator.GetAdSets(context.Background(), "c1")
		assert.ErrorIs(t, err, badAdSet)
	}
	assert.Equal(t, "closed", integrator.State())

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	insights, err := integrator.GetCampaignInsights(context.Background(), "act_1", since, since.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, insights, 1)
}

func TestMetaIntegrator_TransientErrorsCountAsFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		healthy bool
	}{
		{name: "Sem erro", err: nil, healthy: true},
		{name: "Contexto cancelado", err: context.Canceled, healthy: true},
		{name: "4xx permanente", err: &metadomain.RemoteRequestError{StatusCode: 400, Code: 100}, healthy: true},
		{name: "429", err: &metadomain.RemoteRequestError{StatusCode: 429}, healthy: false},
		{name: "5xx", err: &metadomain.RemoteRequestError{StatusCode: 503}, healthy: false},
		{name: "Falha de rede", err: &metadomain.RemoteRequestError{Transient: true}, healthy: false},
		{name: "Erro desconhecido", err: errors.New("boom"), healthy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.healthy, countsAsHealthy(tt.err))
		})
	}
}

func TestStateConversions(t *testing.T) {
	assert.Equal(t, float64(0), stateToFloat(gobreaker.StateClosed))
	assert.Equal(t, float64(1), stateToFloat(gobreaker.StateHalfOpen))
	assert.Equal(t, float64(2), stateToFloat(gobreaker.StateOpen))
	assert.Equal(t, "half-open", stateToString(gobreaker.StateHalfOpen))
}
