package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaignhub-api/internal/config"
)

var ErrTokenRefreshUnavailable = errors.New("renovação de token indisponível: app id e app secret não configurados")

const (
	refreshInterval      = 23 * time.Hour
	refreshRetryInterval = time.Hour
)

// TokenManager gerencia o token de acesso da API do Meta
type TokenManager struct {
	meta        *config.Meta
	serviceID   string
	storage     config.SecretStorage
	httpClient  *http.Client
	mu          sync.RWMutex
	refreshMu   sync.Mutex
	stopRefresh chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewTokenManager cria uma nova instância do gerenciador de tokens.
// storage pode ser nil quando o token renovado não precisa ser persistido.
func NewTokenManager(cfg *config.Config, storage config.SecretStorage) *TokenManager {
	return &TokenManager{
		meta:        &cfg.Meta,
		serviceID:   cfg.Render.ServiceID,
		storage:     storage,
		httpClient:  &http.Client{Timeout: cfg.Meta.Timeout()},
		stopRefresh: make(chan struct{}),
		now:         time.Now,
	}
}

// AccessToken devolve o token em uso
func (tm *TokenManager) AccessToken() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.meta.AccessToken
}

func (tm *TokenManager) ExpiresAt() time.Time {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.meta.TokenExpiresAt
}

// CanRefresh indica se há credenciais do app para trocar o token
func (tm *TokenManager) CanRefresh() bool {
	return tm.meta.AppID != "" && tm.meta.AppSecret != ""
}

// InitToken prepara o token na inicialização: troca por um de longa duração
// ou valida o que já existe
func (tm *TokenManager) InitToken(ctx context.Context) {
	if !tm.CanRefresh() {
		logrus.Warn("App do Meta não configurado, usando o token de acesso estático")
		return
	}

	tm.loadPersisted(ctx)

	tm.mu.RLock()
	hasLongLived := tm.meta.LongLivedToken != ""
	tm.mu.RUnlock()

	if !hasLongLived {
		logrus.Info("Token de longa duração não encontrado. Iniciando processo de obtenção...")
		if err := tm.RefreshToken(ctx); err != nil {
			logrus.Errorf("Falha ao inicializar token de longa duração: %v", err)
			logrus.Warn("A API Meta pode ter funcionalidade limitada até que o token seja configurado corretamente")
		}
		return
	}

	logrus.Info("Validando token de longa duração existente...")
	if err := tm.ValidateExistingToken(ctx); err != nil {
		logrus.Errorf("Falha ao validar token existente: %v", err)
		logrus.Warn("Tentando renovar o token...")
		if err := tm.RefreshToken(ctx); err != nil {
			logrus.Errorf("Falha ao renovar token: %v", err)
		}
	}
}

// ValidateExistingToken consulta /debug_token e registra quando o token expira
func (tm *TokenManager) ValidateExistingToken(ctx context.Context) error {
	tm.mu.RLock()
	token := tm.meta.LongLivedToken
	tm.mu.RUnlock()

	info, err := GetDebugTokenInfo(ctx, tm.httpClient, tm.meta.URL, token, tm.meta.AppID, tm.meta.AppSecret)
	if err != nil {
		return err
	}

	if !info.Data.IsValid {
		return fmt.Errorf("token de longa duração inválido")
	}

	if info.Data.ExpiresAt == 0 {
		return fmt.Errorf("não foi possível determinar quando o token expira")
	}

	tm.mu.Lock()
	tm.meta.AccessToken = token
	tm.meta.TokenExpiresAt = time.Unix(info.Data.ExpiresAt, 0).Add(-24 * time.Hour)
	expiresAt := tm.meta.TokenExpiresAt
	tm.mu.Unlock()

	logrus.Infof("Token de longa duração é válido. Renovação prevista para: %s", expiresAt.Format(time.RFC3339))
	return nil
}

// RefreshToken troca o token atual por um novo token de longa duração e o persiste
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	if !tm.CanRefresh() {
		return ErrTokenRefreshUnavailable
	}

	tm.refreshMu.Lock()
	defer tm.refreshMu.Unlock()

	current := tm.AccessToken()
	if current == "" {
		tm.mu.RLock()
		current = tm.meta.LongLivedToken
		tm.mu.RUnlock()
	}

	expiresAt := tm.ExpiresAt()
	if !expiresAt.IsZero() && expiresAt.Sub(tm.now()) < time.Hour {
		logrus.Warn("Token está muito próximo da expiração ou já expirou - pode ser necessária reautorização manual")
	}

	logrus.Info("Iniciando renovação do token...")
	tokenResponse, err := GetLongLivedToken(ctx, tm.httpClient, tm.meta.URL, current, tm.meta.AppID, tm.meta.AppSecret)
	if err != nil {
		if containsTokenExpirationMessage(err.Error()) {
			logrus.Error("O token de acesso expirou e não pode ser renovado automaticamente. É necessário reautorizar")
			return fmt.Errorf("o token de acesso expirou e não pode ser renovado automaticamente, "+
				"é necessário reautorizar o aplicativo: %w", err)
		}
		return err
	}

	tm.mu.Lock()
	changed := tm.meta.LongLivedToken != tokenResponse.AccessToken
	tm.meta.LongLivedToken = tokenResponse.AccessToken
	tm.meta.AccessToken = tokenResponse.AccessToken
	tm.meta.TokenExpiresAt = CalculateTokenExpiration(tm.now(), tokenResponse.ExpiresIn)
	newExpiresAt := tm.meta.TokenExpiresAt
	tm.mu.Unlock()

	if changed {
		logrus.Infof("Token de longa duração atualizado com sucesso. Renovação prevista para: %s", newExpiresAt.Format(time.RFC3339))
		tm.persist(ctx, tokenResponse.AccessToken)
	} else {
		logrus.Info("Token renovado, mas não mudou")
	}

	return nil
}

// HandleExpiredToken é chamado pelo cliente quando a API rejeita o token
func (tm *TokenManager) HandleExpiredToken(ctx context.Context) error {
	if err := tm.RefreshToken(ctx); err != nil {
		return fmt.Errorf("erro ao renovar token expirado: %w", err)
	}
	return nil
}

// StartAutoRefresh renova o token periodicamente até StopAutoRefresh ou o fim do contexto
func (tm *TokenManager) StartAutoRefresh(ctx context.Context) {
	tm.InitToken(ctx)

	if !tm.CanRefresh() {
		return
	}

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token da Meta")
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)
				ticker.Reset(refreshRetryInterval)
				continue
			}
			logrus.Info("Renovação periódica do token concluída com sucesso")
			ticker.Reset(refreshInterval)
		case <-tm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		case <-ctx.Done():
			logrus.Info("Contexto encerrado, parando renovação periódica do token")
			return
		}
	}
}

func (tm *TokenManager) StopAutoRefresh() {
	tm.stopOnce.Do(func() {
		close(tm.stopRefresh)
	})
}

// loadPersisted recupera o último token renovado quando o ambiente não traz um de longa duração
func (tm *TokenManager) loadPersisted(ctx context.Context) {
	if tm.storage == nil || tm.serviceID == "" {
		return
	}

	tm.mu.RLock()
	hasLongLived := tm.meta.LongLivedToken != ""
	tm.mu.RUnlock()
	if hasLongLived {
		return
	}

	secrets, err := tm.storage.ListSecrets(ctx, tm.serviceID)
	if err != nil {
		logrus.WithError(err).Warn("Não foi possível ler o token persistido do Meta")
		return
	}

	token := strings.TrimSpace(secrets[config.MetaAccessTokenSecret])
	if token == "" {
		return
	}

	tm.mu.Lock()
	tm.meta.LongLivedToken = token
	tm.meta.AccessToken = token
	tm.mu.Unlock()
	logrus.Info("Token do Meta recuperado do armazenamento de secrets")
}

func (tm *TokenManager) persist(ctx context.Context, token string) {
	if tm.storage == nil || tm.serviceID == "" {
		return
	}

	if err := tm.storage.AddOrUpdateSecret(ctx, tm.serviceID, config.MetaAccessTokenSecret, token); err != nil {
		logrus.WithError(err).Error("Erro ao persistir o token renovado do Meta")
	}
}

// containsTokenExpirationMessage verifica se a mensagem contém indicação de token expirado
func containsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
