package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaignhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaignhub-api/internal/domain"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.Campaign, error)
	Insert(ctx context.Context, campaign *domain.Campaign) error
	Update(ctx context.Context, campaign *domain.Campaign) error
}

type campaignRepository struct {
	db postgres.Queryer
}

func NewCampaignRepository(db postgres.Queryer) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("id", "ad_account_id", "name", "start_date", "end_date", "status", "external_id", "created_at").
		From(campaignsTable).
		Where(squirrel.Eq{"external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	campaign := &domain.Campaign{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&campaign.ID,
		&campaign.AdAccountID,
		&campaign.Name,
		&campaign.StartDate,
		&campaign.EndDate,
		&campaign.Status,
		&campaign.ExternalID,
		&campaign.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "erro ao buscar campanha")
	}

	return campaign, nil
}

func (r *campaignRepository) Insert(ctx context.Context, campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "ad_account_id", "name", "start_date", "end_date", "status", "external_id", "created_at").
		Values(
			campaign.ID,
			campaign.AdAccountID,
			campaign.Name,
			campaign.StartDate,
			campaign.EndDate,
			campaign.Status,
			campaign.ExternalID,
			campaign.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao inserir campanha")
	}

	return nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Update(campaignsTable).
		Set("name", campaign.Name).
		Set("start_date", campaign.StartDate).
		Set("end_date", campaign.EndDate).
		Set("status", campaign.Status).
		Set("external_id", campaign.ExternalID).
		Where(squirrel.Eq{"id": campaign.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao atualizar campanha")
	}

	return nil
}
