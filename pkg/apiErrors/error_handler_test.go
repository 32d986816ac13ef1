package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		details    any
		wantStatus int
	}{
		{name: "Conta não encontrada", code: ErrSyncNotFound, wantStatus: http.StatusNotFound},
		{name: "Conta sem id externo", code: ErrSyncInvalidOperation, details: map[string]any{"ad_account_id": "acc-1"}, wantStatus: http.StatusUnprocessableEntity},
		{name: "Sincronização em andamento", code: ErrSyncInProgress, wantStatus: http.StatusConflict},
		{name: "Token expirado", code: ErrExpiredToken, wantStatus: http.StatusUnauthorized},
		{name: "Banco indisponível", code: ErrCommunication, wantStatus: http.StatusServiceUnavailable},
		{name: "Código desconhecido vira 500", code: "XYZ_999", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", tt.details)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
			if tt.details == nil {
				assert.Nil(t, body.Details)
			} else {
				assert.Equal(t, "acc-1", body.Details.(map[string]any)["ad_account_id"])
			}
		})
	}
}
