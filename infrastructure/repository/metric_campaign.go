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

const metricCampaignsTable = "metric_campaigns"

type MetricCampaignRepository interface {
	GetByCampaignAndPeriod(ctx context.Context, campaignID string, period time.Time) (*domain.MetricCampaign, error)
	Insert(ctx context.Context, metric *domain.MetricCampaign) error
	Update(ctx context.Context, metric *domain.MetricCampaign) error
}

type metricCampaignRepository struct {
	db postgres.Queryer
}

func NewMetricCampaignRepository(db postgres.Queryer) MetricCampaignRepository {
	return &metricCampaignRepository{db: db}
}

func (r *metricCampaignRepository) GetByCampaignAndPeriod(ctx context.Context, campaignID string, period time.Time) (*domain.MetricCampaign, error) {
	query, args, err := squirrel.
		Select("id", "campaign_id", "reference_period", "expenses", "leads", "sales", "revenue", "created_at").
		From(metricCampaignsTable).
		Where(squirrel.Eq{
			"campaign_id":      campaignID,
			"reference_period": domain.NormalizePeriod(period),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	metric := &domain.MetricCampaign{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&metric.ID,
		&metric.CampaignID,
		&metric.ReferencePeriod,
		&metric.Expenses,
		&metric.Leads,
		&metric.Sales,
		&metric.Revenue,
		&metric.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err, "erro ao buscar métrica da campanha")
	}

	metric.ReferencePeriod = domain.NormalizePeriod(metric.ReferencePeriod)

	return metric, nil
}

func (r *metricCampaignRepository) Insert(ctx context.Context, metric *domain.MetricCampaign) error {
	query, args, err := squirrel.
		Insert(metricCampaignsTable).
		Columns("id", "campaign_id", "reference_period", "expenses", "leads", "sales", "revenue", "created_at").
		Values(
			metric.ID,
			metric.CampaignID,
			metric.ReferencePeriod,
			metric.Expenses,
			metric.Leads,
			metric.Sales,
			metric.Revenue,
			metric.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao inserir métrica da campanha")
	}

	return nil
}

func (r *metricCampaignRepository) Update(ctx context.Context, metric *domain.MetricCampaign) error {
	query, args, err := squirrel.
		Update(metricCampaignsTable).
		Set("expenses", metric.Expenses).
		Set("leads", metric.Leads).
		Set("sales", metric.Sales).
		Set("revenue", metric.Revenue).
		Where(squirrel.Eq{"id": metric.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "erro ao atualizar métrica da campanha")
	}

	return nil
}
