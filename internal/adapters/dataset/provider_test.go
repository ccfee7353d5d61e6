package dataset_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dravina/dravina-agent/internal/adapters/dataset"
)

const fundsJSON = `[
	{
		"title": "Quant Small Cap Fund",
		"tags": ["small cap", "equity"],
		"aum": "26,330.82",
		"decrease from last time": false,
		"return": "47.51%",
		"expense ratio": "0.64%"
	}
]`

const detailsJSON = `{
	"asset class": {
		"equity": "Equity funds invest primarily in stocks."
	}
}`

const commoditiesJSON = `{"gold": {"2024": "71000"}}`

func newDatasetServer(t *testing.T, fundsHits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/funds.json", func(w http.ResponseWriter, r *http.Request) {
		if fundsHits != nil {
			fundsHits.Add(1)
		}
		w.Write([]byte(fundsJSON))
	})
	mux.HandleFunc("/details.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(detailsJSON))
	})
	mux.HandleFunc("/commodities.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(commoditiesJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProviderFetchesAndDecodes(t *testing.T) {
	srv := newDatasetServer(t, nil)
	p := dataset.NewHTTPProvider(srv.URL+"/funds.json", srv.URL+"/details.json", srv.URL+"/commodities.json")
	ctx := context.Background()

	funds, err := p.Funds(ctx)
	require.NoError(t, err)
	require.Len(t, funds, 1)
	assert.Equal(t, "Quant Small Cap Fund", funds[0].Title)
	assert.Equal(t, []string{"small cap", "equity"}, funds[0].Tags)
	assert.False(t, funds[0].Decreased)
	assert.Equal(t, "0.64%", funds[0].ExpenseRatio)

	details, err := p.FundDetails(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Equity funds invest primarily in stocks.", details["asset class"]["equity"])

	history, err := p.CommodityHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "71000", history["gold"]["2024"])
}

func TestHTTPProviderCachesBetweenCalls(t *testing.T) {
	var hits atomic.Int32
	srv := newDatasetServer(t, &hits)
	p := dataset.NewHTTPProvider(srv.URL+"/funds.json", srv.URL+"/details.json", srv.URL+"/commodities.json")
	ctx := context.Background()

	_, err := p.Funds(ctx)
	require.NoError(t, err)
	_, err = p.Funds(ctx)
	require.NoError(t, err)
	_, err = p.FundDetails(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())

	// Refresh re-pulls.
	require.NoError(t, p.Refresh(ctx))
	assert.Equal(t, int32(2), hits.Load())
}

func TestHTTPProviderKeepsPreviousDataOnFailedRefresh(t *testing.T) {
	var failing atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/funds.json", func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(fundsJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := dataset.NewHTTPProvider(srv.URL+"/funds.json", "", "")
	ctx := context.Background()

	funds, err := p.Funds(ctx)
	require.NoError(t, err)
	require.Len(t, funds, 1)

	failing.Store(true)
	err = p.Refresh(ctx)
	require.Error(t, err)

	funds, err = p.Funds(ctx)
	require.NoError(t, err)
	assert.Len(t, funds, 1, "stale data must survive a failed refresh")
}

func TestHTTPProviderUnconfiguredURLsYieldEmptyData(t *testing.T) {
	p := dataset.NewHTTPProvider("", "", "")
	ctx := context.Background()

	funds, err := p.Funds(ctx)
	require.NoError(t, err)
	assert.Empty(t, funds)

	details, err := p.FundDetails(ctx)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestStaticProviderServesConsistentData(t *testing.T) {
	p := dataset.NewStaticProvider()
	ctx := context.Background()

	funds, err := p.Funds(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, funds)
	for _, f := range funds {
		assert.NotEmpty(t, f.Title)
		assert.NotEmpty(t, f.Tags)
	}

	details, err := p.FundDetails(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, details)

	history, err := p.CommodityHistory(ctx)
	require.NoError(t, err)
	assert.Contains(t, history, "gold")
	assert.Contains(t, history, "silver")
}
