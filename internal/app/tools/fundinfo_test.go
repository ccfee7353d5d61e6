package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dravina/dravina-agent/internal/app/tools"
	"github.com/dravina/dravina-agent/internal/domain"
)

var detailFixture = domain.FundDetails{
	"asset class": {
		"equity": "Equity funds invest primarily in stocks.",
		"debt":   "Debt funds invest in fixed income securities.",
	},
	"structure": {
		"open ended": "Open ended funds allow entry and exit at any time.",
	},
}

func TestFundDetailFound(t *testing.T) {
	got := tools.FundDetail(detailFixture, "asset class", "equity")
	assert.Equal(t, "Equity funds invest primarily in stocks.", got)
}

func TestFundDetailUnknownCategoryListsAlternatives(t *testing.T) {
	got := tools.FundDetail(detailFixture, "flavour", "equity")
	assert.Equal(t, "The category 'flavour' does not exist. Available categories: [asset class structure]", got)
}

func TestFundDetailUnknownFundListsAlternatives(t *testing.T) {
	got := tools.FundDetail(detailFixture, "asset class", "crypto")
	assert.Equal(t, "The fund 'crypto' is not available in category 'asset class'. Available funds: [debt equity]", got)
}

func TestFundDetailEmptyDataset(t *testing.T) {
	got := tools.FundDetail(nil, "asset class", "equity")
	assert.Equal(t, "No fund details available from data source", got)
}

func TestFundInfoToolDegradesOnDatasetError(t *testing.T) {
	tool := tools.NewFundInfoTool(&fakeProvider{err: errors.New("bucket down")})

	out, err := tool.Call(context.Background(), tools.ToolContext{}, map[string]any{
		"category": "asset class",
		"fund":     "equity",
	})
	require.NoError(t, err)
	assert.Equal(t, "No fund details available from data source", out["result"])
}
