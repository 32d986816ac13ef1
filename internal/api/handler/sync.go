package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/campaignhub-api/internal/domain"
	"github.com/vfg2006/campaignhub-api/internal/scheduler"
	"github.com/vfg2006/campaignhub-api/internal/usecases/syncing"
	"github.com/vfg2006/campaignhub-api/pkg/apiErrors"
	"github.com/vfg2006/campaignhub-api/pkg/log"
)

// AccountSyncer sincroniza uma conta sob demanda, com o mesmo lock usado pelo agendador
type AccountSyncer interface {
	SyncAccount(ctx context.Context, adAccountID string) (*domain.SyncResult, error)
}

// SyncAdAccount dispara a sincronização de uma conta e devolve o relatório.
// Falhas parciais voltam com status 200 e a lista de erros preenchida.
func SyncAdAccount(service AccountSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adAccountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if adAccountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta de anúncios não informado", nil)
			return
		}

		logger := log.ForContext(r.Context()).WithField("ad_account_id", adAccountID)
		logger.Info("Sincronização manual solicitada")

		result, err := service.SyncAccount(r.Context(), adAccountID)
		if err != nil {
			handleSyncError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

func handleSyncError(w http.ResponseWriter, logger log.Logger, err error) {
	var syncErr *syncing.SyncError
	switch {
	case errors.As(err, &syncErr):
		apiErrors.WriteError(w, syncErr.Code, syncErr.Error(), map[string]any{
			"ad_account_id": syncErr.AdAccountID,
		})

	case errors.Is(err, scheduler.ErrSyncInProgress):
		apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Já existe uma sincronização em andamento para esta conta", nil)

	default:
		logger.WithError(err).Error("Erro ao sincronizar conta de anúncios")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao sincronizar conta de anúncios", nil)
	}
}
