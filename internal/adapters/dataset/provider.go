package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

// HTTPProvider implements domain.DatasetProvider against the published
// JSON buckets of the scraping pipeline. Fetched datasets are cached in
// memory; Refresh re-pulls them (driven by the cron refresher). An
// unconfigured URL yields empty data, not an error.
type HTTPProvider struct {
	client *http.Client

	fundsURL       string
	detailsURL     string
	commoditiesURL string

	mu          sync.RWMutex
	funds       []domain.Fund
	details     domain.FundDetails
	commodities domain.CommodityHistory
	fetchedAt   time.Time
}

func NewHTTPProvider(fundsURL, detailsURL, commoditiesURL string) *HTTPProvider {
	return &HTTPProvider{
		client:         &http.Client{Timeout: 30 * time.Second},
		fundsURL:       fundsURL,
		detailsURL:     detailsURL,
		commoditiesURL: commoditiesURL,
	}
}

func (p *HTTPProvider) Funds(ctx context.Context) ([]domain.Fund, error) {
	if err := p.ensureFetched(ctx); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.funds, nil
}

func (p *HTTPProvider) FundDetails(ctx context.Context) (domain.FundDetails, error) {
	if err := p.ensureFetched(ctx); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.details, nil
}

func (p *HTTPProvider) CommodityHistory(ctx context.Context) (domain.CommodityHistory, error) {
	if err := p.ensureFetched(ctx); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.commodities, nil
}

func (p *HTTPProvider) ensureFetched(ctx context.Context) error {
	p.mu.RLock()
	fetched := !p.fetchedAt.IsZero()
	p.mu.RUnlock()
	if fetched {
		return nil
	}
	return p.Refresh(ctx)
}

// Refresh re-pulls all three datasets. Partial failures keep whatever
// was fetched before; the first error is returned for logging.
func (p *HTTPProvider) Refresh(ctx context.Context) error {
	log := observability.LoggerFromContext(ctx)
	var firstErr error

	var funds []domain.Fund
	if p.fundsURL != "" {
		if err := p.fetchJSON(ctx, p.fundsURL, &funds); err != nil {
			firstErr = fmt.Errorf("fetch funds: %w", err)
			log.Error("fund dataset refresh failed", "error", err)
			funds = nil
		}
	}

	var details domain.FundDetails
	if p.detailsURL != "" {
		if err := p.fetchJSON(ctx, p.detailsURL, &details); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fetch details: %w", err)
			}
			log.Error("detail dataset refresh failed", "error", err)
			details = nil
		}
	}

	var commodities domain.CommodityHistory
	if p.commoditiesURL != "" {
		if err := p.fetchJSON(ctx, p.commoditiesURL, &commodities); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fetch commodities: %w", err)
			}
			log.Error("commodity dataset refresh failed", "error", err)
			commodities = nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if funds != nil || p.fundsURL == "" {
		p.funds = funds
	}
	if details != nil || p.detailsURL == "" {
		p.details = details
	}
	if commodities != nil || p.commoditiesURL == "" {
		p.commodities = commodities
	}
	p.fetchedAt = time.Now()
	return firstErr
}

func (p *HTTPProvider) fetchJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
