package metaclient

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaignhub-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaignhub-api/internal/metrics"
)

// fetchAllPages segue paging.next a partir de startURL até a última página e devolve
// todos os registros na ordem das páginas. O contexto é verificado antes de cada página.
func fetchAllPages[T any](ctx context.Context, c *MetaClient, endpoint, startURL string) ([]T, error) {
	items := make([]T, 0)
	visited := make(map[string]struct{})
	next := startURL

	for next != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, seen := visited[next]; seen {
			return nil, &metadomain.RemoteRequestError{
				URL:        next,
				StatusCode: http.StatusOK,
				Message:    "paginação repetiu uma página já lida",
			}
		}
		visited[next] = struct{}{}

		body, err := c.get(ctx, endpoint, next)
		if err != nil {
			return nil, err
		}

		var page metadomain.Page[T]
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, &metadomain.RemoteRequestError{
				URL:        next,
				StatusCode: http.StatusOK,
				Message:    "resposta em formato inválido: " + err.Error(),
				Err:        err,
			}
		}

		metrics.MetaAPIPages.WithLabelValues(endpoint).Inc()
		items = append(items, page.Data...)
		if !page.HasNext() {
			break
		}
		next = stripAccessToken(page.Paging.Next)
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"pages":    len(visited),
		"items":    len(items),
	}).Debug("Paginação da API do Meta concluída")

	return items, nil
}
