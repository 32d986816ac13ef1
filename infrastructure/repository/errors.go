package repository

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// wrapDBError anexa o código do Postgres à mensagem quando o erro vem do driver
func wrapDBError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(err, "%s (code: %s)", message, pqErr.Code)
	}
	return errors.Wrap(err, message)
}
