package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaignhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaignhub-api/internal/domain"
)

const adSetsTable = "ad_sets"

type AdSetRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.AdSet, error)
	Insert(ctx context.Context, adSet *domain.AdSet) error
	Update(ctx context.Context, adSet *domain.AdSet) error
}

type adSetRepository struct {
	db postgres.Queryer
}

func NewAdSetRepository(db postgres.Queryer) AdSetRepository {
	return &adSetRepository{db: db}
}

func (r *adSetRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.AdSet, error) {
	query, args, err := squirrel.
		Select("id", "campaign_id", "name", "status", "daily_budget", "external_id", "created_at").
		From(adSetsTable).
		Where(squirrel.Eq{"external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	adSet := &domain.AdSet{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&adSet.ID,
		&adSet.CampaignID,
		&adSet.Name,
		&adSet.Status,
		&adSet.DailyBudget,
		&adSet.ExternalID,
		&adSet.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "erro ao buscar conjunto de anúncios")
	}

	return adSet, nil
}

func (r *adSetRepository) Insert(ctx context.Context, adSet *domain.AdSet) error {
	query, args, err := squirrel.
		Insert(adSetsTable).
		Columns("id", "campaign_id", "name", "status", "daily_budget", "external_id", "created_at").
		Values(adSet.ID, adSet.CampaignID, adSet.Name, adSet.Status, adSet.DailyBudget, adSet.ExternalID, adSet.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao inserir conjunto de anúncios")
	}

	return nil
}

func (r *adSetRepository) Update(ctx context.Context, adSet *domain.AdSet) error {
	query, args, err := squirrel.
		Update(adSetsTable).
		Set("campaign_id", adSet.CampaignID).
		Set("name", adSet.Name).
		Set("status", adSet.Status).
		Set("daily_budget", adSet.DailyBudget).
		Where(squirrel.Eq{"id": adSet.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao atualizar conjunto de anúncios")
	}

	return nil
}
