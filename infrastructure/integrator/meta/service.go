package meta

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaignhub-api/internal/metrics"
)

const breakerName = "meta-graph-api"

// BreakerSettings controla quando o circuito para a Graph API abre e por quanto tempo
type BreakerSettings struct {
	ConsecutiveFailures uint32
	Interval            time.Duration
	Timeout             time.Duration
	HalfOpenRequests    uint32
}

var DefaultBreakerSettings = BreakerSettings{
	ConsecutiveFailures: 5,
	Interval:            time.Minute,
	Timeout:             2 * time.Minute,
	HalfOpenRequests:    1,
}

// MetaIntegrator é a porta de entrada da sincronização para a API do Meta.
// Todas as chamadas passam por um circuit breaker: depois de falhas seguidas
// (já esgotadas as novas tentativas do cliente) as chamadas seguintes falham
// imediatamente com gobreaker.ErrOpenState até o timeout.
type MetaIntegrator struct {
	Client metaclient.Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

func New(client metaclient.Client, settings BreakerSettings) *MetaIntegrator {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: settings.HalfOpenRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= settings.ConsecutiveFailures
			if shouldTrip {
				logrus.WithField("consecutive_failures", counts.ConsecutiveFailures).
					Warn("Abrindo circuito para a API do Meta")
			}
			return shouldTrip
		},
		IsSuccessful: countsAsHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"breaker": name,
				"from":    stateToString(from),
				"to":      stateToString(to),
			}).Info("Circuit breaker mudou de estado")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &MetaIntegrator{
		Client: client,
		cb:     cb,
		name:   breakerName,
	}
}

// countsAsHealthy decide o que não conta como falha para o circuito: cancelamento e
// prazo esgotado são do chamador, e erros permanentes da API (4xx de um item só)
// não dizem nada sobre a saúde da Graph API
func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var reqErr *metadomain.RemoteRequestError
	return errors.As(err, &reqErr) && !reqErr.Retryable()
}

func (s *MetaIntegrator) GetCampaigns(ctx context.Context, accountExternalID string) ([]metadomain.Campaign, error) {
	return call(s, func() ([]metadomain.Campaign, error) {
		return s.Client.GetCampaigns(ctx, accountExternalID)
	})
}

func (s *MetaIntegrator) GetAdSets(ctx context.Context, campaignExternalID string) ([]metadomain.AdSet, error) {
	return call(s, func() ([]metadomain.AdSet, error) {
		return s.Client.GetAdSets(ctx, campaignExternalID)
	})
}

func (s *MetaIntegrator) GetAds(ctx context.Context, adSetExternalID string) ([]metadomain.Ad, error) {
	return call(s, func() ([]metadomain.Ad, error) {
		return s.Client.GetAds(ctx, adSetExternalID)
	})
}

func (s *MetaIntegrator) GetCampaignInsights(ctx context.Context, accountExternalID string, since, until time.Time) ([]metadomain.Insight, error) {
	return call(s, func() ([]metadomain.Insight, error) {
		return s.Client.GetCampaignInsights(ctx, accountExternalID, since, until)
	})
}

// State devolve o estado atual do circuito ("closed", "half-open" ou "open")
func (s *MetaIntegrator) State() string {
	return stateToString(s.cb.State())
}

func (s *MetaIntegrator) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			logrus.WithError(err).Warn("Requisição à API do Meta rejeitada pelo circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	return result, nil
}

func call[T any](s *MetaIntegrator, fn func() (T, error)) (T, error) {
	var zero T

	result, err := s.execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: tipo de resultado inesperado %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
