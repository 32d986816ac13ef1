package metadomain

import (
	"strconv"
	"strings"
)

const (
	ActionTypeLead         = "lead"
	ActionTypePurchase     = "purchase"
	ActionTypeOmniPurchase = "omni_purchase"
)

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// CampaignInsight é a linha crua de /{account}/insights com level=campaign
type CampaignInsight struct {
	CampaignID   string   `json:"campaign_id"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Spend        *string  `json:"spend,omitempty"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
}

// Insight é o desempenho mensal de uma campanha já extraído das ações
type Insight struct {
	CampaignID    string
	DateStart     string
	DateStop      string
	Spend         *string
	Leads         int
	Purchases     int
	PurchaseValue *string
}

func isPurchase(actionType string) bool {
	return actionType == ActionTypePurchase || actionType == ActionTypeOmniPurchase
}

// Flatten extrai leads, compras e valor de compras das listas de ações.
// Quando a API devolve "purchase" e "omni_purchase", prevalece "omni_purchase".
func (c CampaignInsight) Flatten() Insight {
	insight := Insight{
		CampaignID: c.CampaignID,
		DateStart:  c.DateStart,
		DateStop:   c.DateStop,
		Spend:      c.Spend,
	}

	purchaseFromOmni := false
	for _, action := range c.Actions {
		switch {
		case action.ActionType == ActionTypeLead:
			insight.Leads = atoiOrZero(action.Value)
		case isPurchase(action.ActionType):
			if purchaseFromOmni && action.ActionType != ActionTypeOmniPurchase {
				continue
			}
			insight.Purchases = atoiOrZero(action.Value)
			purchaseFromOmni = action.ActionType == ActionTypeOmniPurchase
		}
	}

	valueFromOmni := false
	for _, value := range c.ActionValues {
		if !isPurchase(value.ActionType) {
			continue
		}
		if valueFromOmni && value.ActionType != ActionTypeOmniPurchase {
			continue
		}
		v := value.Value
		insight.PurchaseValue = &v
		valueFromOmni = value.ActionType == ActionTypeOmniPurchase
	}

	return insight
}

func atoiOrZero(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
