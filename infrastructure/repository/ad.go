package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaignhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaignhub-api/internal/domain"
)

const adsTable = "ads"

type AdRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.Ad, error)
	Insert(ctx context.Context, ad *domain.Ad) error
	Update(ctx context.Context, ad *domain.Ad) error
}

type adRepository struct {
	db postgres.Queryer
}

func NewAdRepository(db postgres.Queryer) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Ad, error) {
	query, args, err := squirrel.
		Select("id", "ad_set_id", "name", "status", "external_id", "created_at").
		From(adsTable).
		Where(squirrel.Eq{"external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	ad := &domain.Ad{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&ad.ID,
		&ad.AdSetID,
		&ad.Name,
		&ad.Status,
		&ad.ExternalID,
		&ad.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "erro ao buscar anúncio")
	}

	return ad, nil
}

func (r *adRepository) Insert(ctx context.Context, ad *domain.Ad) error {
	query, args, err := squirrel.
		Insert(adsTable).
		Columns("id", "ad_set_id", "name", "status", "external_id", "created_at").
		Values(ad.ID, ad.AdSetID, ad.Name, ad.Status, ad.ExternalID, ad.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao inserir anúncio")
	}

	return nil
}

func (r *adRepository) Update(ctx context.Context, ad *domain.Ad) error {
	query, args, err := squirrel.
		Update(adsTable).
		Set("ad_set_id", ad.AdSetID).
		Set("name", ad.Name).
		Set("status", ad.Status).
		Where(squirrel.Eq{"id": ad.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao atualizar anúncio")
	}

	return nil
}
