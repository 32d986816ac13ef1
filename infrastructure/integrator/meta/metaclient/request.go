package metaclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/internal/metrics"
)

var retryInitialInterval = 500 * time.Millisecond

// get faz um GET na Graph API respeitando o rate limit local.
// Erros temporários são repetidos com backoff exponencial até maxRetries vezes;
// um token expirado é renovado uma única vez antes de nova tentativa.
func (c *MetaClient) get(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	tokenRefreshed := false

	operation := func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, backoff.Permanent(ctxErr)
			}
			metrics.MetaAPIRequests.WithLabelValues(endpoint, "network_error").Inc()
			return nil, &metadomain.RemoteRequestError{URL: rawURL, Message: err.Error(), Transient: true, Err: err}
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			metrics.MetaAPIRequests.WithLabelValues(endpoint, "network_error").Inc()
			return nil, &metadomain.RemoteRequestError{URL: rawURL, StatusCode: resp.StatusCode, Message: err.Error(), Transient: true, Err: err}
		}

		if isSuccessStatus(resp.StatusCode) {
			metrics.MetaAPIRequests.WithLabelValues(endpoint, "success").Inc()
			return body, nil
		}

		metrics.MetaAPIRequests.WithLabelValues(endpoint, "error").Inc()

		errorResp := parseErrorResponse(body)
		if errorResp != nil && errorResp.IsTokenExpired() && !tokenRefreshed {
			tokenRefreshed = true
			logrus.WithFields(logrus.Fields{
				"endpoint": endpoint,
				"code":     errorResp.Error.Code,
				"subcode":  errorResp.Error.ErrorSubcode,
			}).Warn("Token do Meta expirado durante a requisição, renovando")

			refreshErr := c.tokens.HandleExpiredToken(ctx)
			if refreshErr == nil {
				return nil, &metadomain.RemoteRequestError{
					URL:        rawURL,
					StatusCode: resp.StatusCode,
					Code:       errorResp.Error.Code,
					Message:    "token expirado e renovado",
					Transient:  true,
				}
			}
			logrus.WithError(refreshErr).Error("Não foi possível renovar o token do Meta")
		}

		reqErr := metadomain.NewRemoteRequestError(rawURL, resp.StatusCode, errorResp, string(body))
		if !reqErr.Retryable() {
			return nil, backoff.Permanent(reqErr)
		}
		return nil, reqErr
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval

	notify := func(err error, wait time.Duration) {
		metrics.MetaAPIRetries.WithLabelValues(endpoint).Inc()
		logrus.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"wait":     wait.String(),
			"error":    err.Error(),
		}).Warn("Falha temporária na API do Meta, tentando novamente")
	}

	body, err := backoff.RetryNotifyWithData[[]byte](
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx),
		notify,
	)
	if err != nil {
		var reqErr *metadomain.RemoteRequestError
		if errors.As(err, &reqErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &metadomain.RemoteRequestError{URL: rawURL, Message: err.Error(), Err: err}
	}

	return body, nil
}

func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// parseErrorResponse tenta interpretar o corpo de erro da API do Meta
func parseErrorResponse(body []byte) *metadomain.ErrorResponse {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil
	}
	if errorResp.Error.Message == "" && errorResp.Error.Code == 0 {
		return nil
	}
	return &errorResp
}
