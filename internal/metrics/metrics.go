package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sincronização de contas
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignhub_sync_runs_total",
			Help: "Total de sincronizações de contas por plataforma e resultado",
		},
		[]string{"platform", "outcome"}, // "success", "warnings", "failed"
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaignhub_sync_duration_seconds",
			Help:    "Duração de uma sincronização de conta em segundos",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"platform"},
	)

	SyncedEntities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignhub_synced_entities_total",
			Help: "Total de entidades reconciliadas por tipo",
		},
		[]string{"platform", "entity"}, // "campaign", "ad_set", "ad", "metric"
	)

	SyncItemErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignhub_sync_item_errors_total",
			Help: "Total de falhas não fatais durante a sincronização, por tipo de item",
		},
		[]string{"platform", "entity"},
	)

	// API do Meta
	MetaAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignhub_meta_api_requests_total",
			Help: "Total de requisições à Graph API por endpoint e resultado",
		},
		[]string{"endpoint", "outcome"},
	)

	MetaAPIRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignhub_meta_api_retries_total",
			Help: "Total de novas tentativas de requisição à Graph API",
		},
		[]string{"endpoint"},
	)

	MetaAPIPages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignhub_meta_api_pages_total",
			Help: "Total de páginas percorridas por endpoint",
		},
		[]string{"endpoint"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campaignhub_circuit_breaker_state",
			Help: "Estado do circuit breaker (0=fechado, 1=meio-aberto, 2=aberto)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignhub_circuit_breaker_requests_total",
			Help: "Requisições que passaram pelo circuit breaker por resultado",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	// Agendador
	SchedulerLastRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campaignhub_scheduler_last_run_timestamp_seconds",
			Help: "Momento da última execução concluída de cada job",
		},
		[]string{"job"},
	)

	// API HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaignhub_http_requests_total",
			Help: "Total de requisições HTTP por método e status",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaignhub_http_request_duration_seconds",
			Help:    "Duração das requisições HTTP em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
