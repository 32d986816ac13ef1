package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaignhub-api/pkg/utils"
)

// MetricCampaign guarda o desempenho mensal de uma campanha.
// Existe no máximo uma métrica por (campanha, período de referência).
type MetricCampaign struct {
	ID              string          `json:"id"`
	CampaignID      string          `json:"campaign_id"`
	ReferencePeriod time.Time       `json:"reference_period"`
	Expenses        decimal.Decimal `json:"expenses"`
	Leads           int             `json:"leads"`
	Sales           *string         `json:"sales"`
	Revenue         *string         `json:"revenue"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewMetricCampaign(campaignID string, referencePeriod time.Time, expenses decimal.Decimal, leads int, sales, revenue *string) (*MetricCampaign, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	return &MetricCampaign{
		ID:              id,
		CampaignID:      campaignID,
		ReferencePeriod: NormalizePeriod(referencePeriod),
		Expenses:        expenses,
		Leads:           leads,
		Sales:           sales,
		Revenue:         revenue,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

func (m *MetricCampaign) Update(expenses decimal.Decimal, leads int, sales, revenue *string) {
	m.Expenses = expenses
	m.Leads = leads
	m.Sales = sales
	m.Revenue = revenue
}

// NormalizePeriod retorna o primeiro dia do mês da data, em UTC
func NormalizePeriod(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
