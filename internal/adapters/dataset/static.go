package dataset

import (
	"context"

	"github.com/dravina/dravina-agent/internal/domain"
)

// StaticProvider serves a small embedded sample of the published
// datasets. Used in local mode and in tests, where the bucket URLs are
// not configured.
type StaticProvider struct {
	funds       []domain.Fund
	details     domain.FundDetails
	commodities domain.CommodityHistory
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		funds:       sampleFunds,
		details:     sampleDetails,
		commodities: sampleCommodities,
	}
}

func (p *StaticProvider) Funds(_ context.Context) ([]domain.Fund, error) {
	return p.funds, nil
}

func (p *StaticProvider) FundDetails(_ context.Context) (domain.FundDetails, error) {
	return p.details, nil
}

func (p *StaticProvider) CommodityHistory(_ context.Context) (domain.CommodityHistory, error) {
	return p.commodities, nil
}

var sampleFunds = []domain.Fund{
	{
		Title:        "nippon india large cap fund",
		Tags:         []string{"equity", "large cap"},
		AUM:          "₹35,313 Cr",
		Return:       "18.9%",
		ExpenseRatio: "0.66%",
	},
	{
		Title:        "icici prudential bluechip fund",
		Tags:         []string{"equity", "large cap"},
		AUM:          "₹63,264 Cr",
		Return:       "16.8%",
		ExpenseRatio: "0.91%",
	},
	{
		Title:        "quant multi cap fund",
		Tags:         []string{"equity", "multi cap"},
		AUM:          "₹8,731 Cr",
		Return:       "22.5%",
		ExpenseRatio: "0.59%",
		Decreased:    true,
	},
	{
		Title:        "hdfc mid cap opportunities fund",
		Tags:         []string{"equity", "mid cap"},
		AUM:          "₹75,037 Cr",
		Return:       "24.1%",
		ExpenseRatio: "0.74%",
	},
	{
		Title:        "nippon india small cap fund",
		Tags:         []string{"equity", "small cap"},
		AUM:          "₹61,027 Cr",
		Return:       "28.3%",
		ExpenseRatio: "0.68%",
	},
	{
		Title:        "icici prudential balanced advantage fund",
		Tags:         []string{"hybrid", "balanced advantage"},
		AUM:          "₹60,534 Cr",
		Return:       "12.1%",
		ExpenseRatio: "0.87%",
	},
	{
		Title:        "sbi liquid fund",
		Tags:         []string{"debt", "liquid"},
		AUM:          "₹58,896 Cr",
		Return:       "7.1%",
		ExpenseRatio: "0.18%",
	},
	{
		Title:        "sbi magnum gilt fund",
		Tags:         []string{"debt", "gilt"},
		AUM:          "₹11,262 Cr",
		Return:       "8.9%",
		ExpenseRatio: "0.46%",
	},
}

var sampleDetails = domain.FundDetails{
	"asset class": {
		"equity": "Equity funds invest primarily in stocks and carry market risk with higher long-term growth potential.",
		"debt":   "Debt funds invest in fixed income instruments like bonds and treasury bills, trading growth for stability.",
		"hybrid": "Hybrid funds mix equity and debt exposure to balance growth and stability within one scheme.",
	},
	"structure": {
		"open ended":   "Open ended funds can be bought and redeemed on any business day at the prevailing NAV.",
		"closed ended": "Closed ended funds have a fixed maturity and units can only be redeemed at the end of the term.",
	},
	"risk appetite": {
		"low":    "Low risk funds favor capital preservation: overnight, liquid and short duration debt categories.",
		"medium": "Medium risk funds accept moderate drawdowns for better returns: balanced advantage and large cap categories.",
		"high":   "High risk funds chase growth through mid caps, small caps and credit risk strategies.",
	},
}

var sampleCommodities = domain.CommodityHistory{
	"gold": {
		"2019": "35220", "2020": "48651", "2021": "48720",
		"2022": "52670", "2023": "63203", "2024": "77913",
	},
	"silver": {
		"2019": "46599", "2020": "63435", "2021": "62572",
		"2022": "68092", "2023": "74622", "2024": "90864",
	},
}
