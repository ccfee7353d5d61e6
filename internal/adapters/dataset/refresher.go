package dataset

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/dravina/dravina-agent/internal/observability"
)

// Refresher re-pulls the published datasets on a cron schedule, matching
// the upstream scraper's periodic republish.
type Refresher struct {
	cron     *cron.Cron
	provider *HTTPProvider
	ctx      context.Context
}

func NewRefresher(ctx context.Context, provider *HTTPProvider) *Refresher {
	return &Refresher{
		cron:     cron.New(cron.WithSeconds()),
		provider: provider,
		ctx:      ctx,
	}
}

// Register installs the refresh job. spec uses the six-field cron format.
func (r *Refresher) Register(spec string) error {
	_, err := r.cron.AddFunc(spec, func() {
		log := observability.LoggerFromContext(r.ctx)
		log.Info("refreshing datasets")
		if err := r.provider.Refresh(r.ctx); err != nil {
			log.Error("dataset refresh failed", "error", err)
		}
	})
	return err
}

func (r *Refresher) Start() {
	r.cron.Start()
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}
