package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaignhub-api/internal/api/handler/router"
	"github.com/vfg2006/campaignhub-api/internal/domain"
	"github.com/vfg2006/campaignhub-api/internal/scheduler"
	"github.com/vfg2006/campaignhub-api/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/campaignhub-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/campaignhub-api/internal/usecases/syncing"
	"github.com/vfg2006/campaignhub-api/pkg/apiErrors"
	"github.com/vfg2006/campaignhub-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

type accountSyncerFunc func(ctx context.Context, adAccountID string) (*domain.SyncResult, error)

func (f accountSyncerFunc) SyncAccount(ctx context.Context, adAccountID string) (*domain.SyncResult, error) {
	return f(ctx, adAccountID)
}

type fakeCronJob struct {
	triggered int
	running   bool
}

func (f *fakeCronJob) TriggerManualSync() bool {
	f.triggered++
	return !f.running
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"running": f.running}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func withClaims(r *http.Request, roleID int) *http.Request {
	claims := &domain.Claims{UserID: 1, UserRoleID: roleID}
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, claims))
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestSyncAdAccountHandler(t *testing.T) {
	syncedAt := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		roleID     int
		syncer     accountSyncerFunc
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Sincronização com avisos responde 200 com o relatório",
			roleID: middleware.RoleAdmin,
			syncer: func(_ context.Context, id string) (*domain.SyncResult, error) {
				return &domain.SyncResult{
					AdAccountID:     id,
					CampaignsSynced: 2,
					AdSetsSynced:    1,
					AdsSynced:       1,
					SyncedAt:        syncedAt,
					Errors:          []string{"Error syncing campaign A: boom"},
				}, nil
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var result domain.SyncResult
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
				assert.Equal(t, "acc-1", result.AdAccountID)
				assert.Equal(t, 2, result.CampaignsSynced)
				assert.Equal(t, []string{"Error syncing campaign A: boom"}, result.Errors)
				assert.True(t, syncedAt.Equal(result.SyncedAt))
			},
		},
		{
			name:   "Conta inexistente responde 404",
			roleID: middleware.RoleSupervisor,
			syncer: func(_ context.Context, id string) (*domain.SyncResult, error) {
				return nil, &syncing.SyncError{Err: syncing.ErrAdAccountNotFound, Code: apiErrors.ErrSyncNotFound, AdAccountID: id}
			},
			wantStatus: http.StatusNotFound,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrSyncNotFound, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Conta sem id externo responde 422",
			roleID: middleware.RoleAdmin,
			syncer: func(_ context.Context, id string) (*domain.SyncResult, error) {
				return nil, &syncing.SyncError{Err: syncing.ErrExternalIDNotConfigured, Code: apiErrors.ErrSyncInvalidOperation, AdAccountID: id}
			},
			wantStatus: http.StatusUnprocessableEntity,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrSyncInvalidOperation, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Sincronização em andamento responde 409",
			roleID: middleware.RoleAdmin,
			syncer: func(context.Context, string) (*domain.SyncResult, error) {
				return nil, scheduler.ErrSyncInProgress
			},
			wantStatus: http.StatusConflict,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrSyncInProgress, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:   "Falha ao gravar responde 500",
			roleID: middleware.RoleAdmin,
			syncer: func(context.Context, string) (*domain.SyncResult, error) {
				return nil, errors.New("deadlock detected")
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "Cliente não pode sincronizar",
			roleID: middleware.RoleClient,
			syncer: func(context.Context, string) (*domain.SyncResult, error) {
				t.Fatal("não deveria sincronizar")
				return nil, nil
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := router.New(router.WithRoutes(AdAccountSync(tt.syncer)...))

			req := withClaims(httptest.NewRequest(http.MethodPost, "/v1/adAccounts/acc-1/sync", nil), tt.roleID)
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		running    bool
		wantStatus int
		wantCalls  int
		wantBody   string
	}{
		{name: "Dispara o job do Meta Ads", path: "/v1/cron/meta-ads/run", wantStatus: http.StatusAccepted, wantCalls: 1, wantBody: `"meta-ads":true`},
		{name: "Dispara todos os jobs", path: "/v1/cron/all/run", wantStatus: http.StatusAccepted, wantCalls: 1},
		{name: "Job já em execução", path: "/v1/cron/meta-ads/run", running: true, wantStatus: http.StatusAccepted, wantCalls: 1, wantBody: `"meta-ads":false`},
		{name: "Tipo desconhecido", path: "/v1/cron/google-ads/run", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeCronJob{running: tt.running}
			rt := router.New(router.WithRoutes(CronJobs(CronJobServices{MetaAdsSyncService: job})...))

			req := withClaims(httptest.NewRequest(http.MethodPost, tt.path, nil), middleware.RoleAdmin)
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalls, job.triggered)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "Status de todos os jobs", path: "/v1/cron/all/status", wantStatus: http.StatusOK},
		{name: "Status do job do Meta Ads", path: "/v1/cron/meta-ads/status", wantStatus: http.StatusOK},
		{name: "Tipo desconhecido", path: "/v1/cron/google-ads/status", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeCronJob{running: true}
			rt := router.New(router.WithRoutes(CronJobs(CronJobServices{MetaAdsSyncService: job})...))

			req := withClaims(httptest.NewRequest(http.MethodGet, tt.path, nil), middleware.RoleSupervisor)
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var status map[string]map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
			assert.Equal(t, true, status["meta-ads"]["running"])
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(auth *authmocks.MockAuthenticator)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Login com sucesso",
			body: `{"email":"ana@campaignhub.com","password":"Senha@123"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().LoginUser(gomock.Any(), "ana@campaignhub.com", "Senha@123").Return("jwt-token", nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"token":"jwt-token"`,
		},
		{
			name: "Senha incorreta",
			body: `{"email":"ana@campaignhub.com","password":"x"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().LoginUser(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", authenticating.NewUserAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, 7, "Senha incorreta"))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   apiErrors.ErrInvalidCredentials,
		},
		{
			name:       "Corpo inválido",
			body:       `{`,
			setup:      func(auth *authmocks.MockAuthenticator) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auth := authmocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)
			rt := router.New(router.WithRoutes(Authentication(auth)...))

			req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := authmocks.NewMockAuthenticator(ctrl)
	auth.EXPECT().GetUserProfile(gomock.Any(), 1).Return(&domain.User{ID: 1, Name: "Ana", PasswordHash: "hash"}, nil)
	rt := router.New(router.WithRoutes(Authentication(auth)...))

	req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/me", nil), middleware.RoleClient)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ana"`)
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestHealthcheck(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
	}{
		{name: "Banco disponível", db: fakePinger{}, wantStatus: http.StatusOK},
		{name: "Banco indisponível", db: fakePinger{err: errors.New("connection refused")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthcheckHandler(tt.db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	rt := router.New(router.WithRoutes(Metrics()...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
