package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaignhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaignhub-api/internal/domain"
)

const adAccountsTable = "ad_accounts"

var adAccountColumns = []string{
	"id", "customer_id", "monthly_budget", "goal", "platform", "external_id", "last_synced_at", "created_at",
}

type AdAccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.AdAccount, error)
	ListByPlatform(ctx context.Context, platform domain.AdPlatform) ([]*domain.AdAccount, error)
	UpdateLastSyncedAt(ctx context.Context, id string, syncedAt time.Time) error
}

type adAccountRepository struct {
	db postgres.Queryer
}

func NewAdAccountRepository(db postgres.Queryer) AdAccountRepository {
	return &adAccountRepository{db: db}
}

func (r *adAccountRepository) GetByID(ctx context.Context, id string) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select(adAccountColumns...).
		From(adAccountsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	account, err := scanAdAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "erro ao buscar conta de anúncios")
	}

	return account, nil
}

// ListByPlatform devolve as contas da plataforma que já têm conta remota vinculada
func (r *adAccountRepository) ListByPlatform(ctx context.Context, platform domain.AdPlatform) ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select(adAccountColumns...).
		From(adAccountsTable).
		Where(squirrel.Eq{"platform": platform}).
		Where(squirrel.NotEq{"external_id": nil}).
		Where(squirrel.NotEq{"external_id": ""}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "erro ao listar contas de anúncios")
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		account, err := scanAdAccount(rows)
		if err != nil {
			return nil, wrapDBError(err, "erro ao ler conta de anúncios")
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "erro durante iteração das contas")
	}

	return accounts, nil
}

func (r *adAccountRepository) UpdateLastSyncedAt(ctx context.Context, id string, syncedAt time.Time) error {
	query, args, err := squirrel.
		Update(adAccountsTable).
		Set("last_synced_at", syncedAt.UTC()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao registrar sincronização da conta")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAdAccount(row rowScanner) (*domain.AdAccount, error) {
	account := &domain.AdAccount{}

	if err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.MonthlyBudget,
		&account.Goal,
		&account.Platform,
		&account.ExternalID,
		&account.LastSyncedAt,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}

	return account, nil
}
