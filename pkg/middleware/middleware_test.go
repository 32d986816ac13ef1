package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaignhub-api/internal/domain"
	"github.com/vfg2006/campaignhub-api/internal/metrics"
	"github.com/vfg2006/campaignhub-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaignhub-api/pkg/apiErrors"
	"github.com/vfg2006/campaignhub-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type tokenValidatorFunc func(tokenString string) (*domain.Claims, error)

func (f tokenValidatorFunc) ValidateToken(tokenString string) (*domain.Claims, error) {
	return f(tokenString)
}

// okHandler devolve o id do usuário autenticado, quando houver
func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims); ok {
			w.Header().Set("X-User-ID", claims.UserEmail)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	validator := tokenValidatorFunc(func(tokenString string) (*domain.Claims, error) {
		switch tokenString {
		case "valido":
			return &domain.Claims{UserID: 1, UserEmail: "ana@campaignhub.com", UserRoleID: RoleAdmin}, nil
		case "expirado":
			return nil, errors.Join(authenticating.ErrExpiredToken, errors.New("token is expired"))
		default:
			return nil, authenticating.ErrInvalidToken
		}
	})

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
		wantCode   string
		wantUser   string
	}{
		{name: "Rota pública sem token", method: http.MethodPost, path: "/v1/login", wantStatus: http.StatusOK},
		{name: "Healthcheck sem token", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "Preflight sem token", method: http.MethodOptions, path: "/v1/adAccounts/1/sync", wantStatus: http.StatusOK},
		{name: "Sem header Authorization", method: http.MethodGet, path: "/v1/me", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidToken},
		{name: "Header sem Bearer", method: http.MethodGet, path: "/v1/me", header: "valido", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidToken},
		{name: "Token expirado", method: http.MethodGet, path: "/v1/me", header: "Bearer expirado", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrExpiredToken},
		{name: "Token inválido", method: http.MethodGet, path: "/v1/me", header: "Bearer lixo", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidToken},
		{name: "Token válido coloca as claims no contexto", method: http.MethodGet, path: "/v1/me", header: "Bearer valido", wantStatus: http.StatusOK, wantUser: "ana@campaignhub.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User-ID"))
			if tt.wantCode != "" {
				var apiErr apiErrors.APIError
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
				assert.Equal(t, tt.wantCode, apiErr.Code)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		claims     *domain.Claims
		wantStatus int
	}{
		{name: "Admin acessa rota de admin", middleware: AdminOnly(), claims: &domain.Claims{UserRoleID: RoleAdmin}, wantStatus: http.StatusOK},
		{name: "Supervisor barrado em rota de admin", middleware: AdminOnly(), claims: &domain.Claims{UserRoleID: RoleSupervisor}, wantStatus: http.StatusForbidden},
		{name: "Supervisor acessa rota de supervisão", middleware: AdminOrSupervisor(), claims: &domain.Claims{UserRoleID: RoleSupervisor}, wantStatus: http.StatusOK},
		{name: "Cliente barrado em rota de supervisão", middleware: AdminOrSupervisor(), claims: &domain.Claims{UserRoleID: RoleClient}, wantStatus: http.StatusForbidden},
		{name: "Cliente acessa rota comum", middleware: AllRoles(), claims: &domain.Claims{UserRoleID: RoleClient}, wantStatus: http.StatusOK},
		{name: "Sem claims no contexto", middleware: AllRoles(), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	allowed := []string{"http://localhost:5173", "https://app.campaignhub.com.br/"}

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
		wantCalled bool
	}{
		{name: "Origem permitida", method: http.MethodGet, origin: "https://app.campaignhub.com.br", wantOrigin: "https://app.campaignhub.com.br", wantStatus: http.StatusOK, wantCalled: true},
		{name: "Origem desconhecida", method: http.MethodGet, origin: "https://evil.example", wantStatus: http.StatusOK, wantCalled: true},
		{name: "Preflight responde sem chamar o handler", method: http.MethodOptions, origin: "http://localhost:5173", wantOrigin: "http://localhost:5173", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/v1/me", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(allowed)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		LogPanicMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingMiddleware(t *testing.T) {
	log.SetupTestLogger()

	var seenID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	})
	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "418")
	before := testutil.ToFloat64(counter)
	rec := httptest.NewRecorder()

	LoggingMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get("X-Correlation-ID"))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500 µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "20 ms", formatDuration(20*time.Millisecond))
	assert.Equal(t, "1.50 s", formatDuration(1500*time.Millisecond))
}
