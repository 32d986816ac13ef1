package syncing

import (
	"errors"
	"fmt"

	errorcodes "github.com/vfg2006/campaignhub-api/pkg/apiErrors"
)

var (
	ErrEntityNotFound   = errors.New("entidade não encontrada")
	ErrInvalidOperation = errors.New("operação inválida")

	ErrAdAccountNotFound       = fmt.Errorf("conta de anúncios não encontrada: %w", ErrEntityNotFound)
	ErrExternalIDNotConfigured = fmt.Errorf("conta de anúncios sem id externo configurado: %w", ErrInvalidOperation)
	ErrPlatformMismatch        = fmt.Errorf("plataforma da conta não corresponde à sincronização: %w", ErrInvalidOperation)
)

// SyncError é devolvido quando a sincronização não pode nem começar
type SyncError struct {
	Err         error
	Code        string
	AdAccountID string
	Details     string
}

func (e *SyncError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func newSyncError(baseErr error, adAccountID, details string) *SyncError {
	code := errorcodes.ErrSyncInvalidOperation
	if errors.Is(baseErr, ErrEntityNotFound) {
		code = errorcodes.ErrSyncNotFound
	}

	return &SyncError{
		Err:         baseErr,
		Code:        code,
		AdAccountID: adAccountID,
		Details:     details,
	}
}
