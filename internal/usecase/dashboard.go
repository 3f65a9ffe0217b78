package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mkamada/scanboard/internal/domain"
	"github.com/mkamada/scanboard/internal/gateway"
)

// Dashboard is the use case that assembles the normalized dashboard view.
// It fetches the three backend collections concurrently, runs the pure
// aggregation functions over them, and keeps the most recent committed
// result.
//
// Every Refresh takes a new generation number; a refresh that finishes after
// a newer one has started never overwrites the latest result, so stale
// responses for an old window or repository selection are discarded instead
// of clobbering fresher state.
type Dashboard struct {
	fetcher gateway.Fetcher
	logger  *zap.Logger
	debt    domain.DebtConfig

	gen atomic.Uint64
	mu  sync.RWMutex
	// latest is the most recent committed result, nil until the first
	// refresh commits.
	latest *domain.DashboardData

	// now is swapped in tests for deterministic windows.
	now func() time.Time
}

// NewDashboard creates a new Dashboard instance.
func NewDashboard(fetcher gateway.Fetcher, logger *zap.Logger, debt domain.DebtConfig) *Dashboard {
	return &Dashboard{
		fetcher: fetcher,
		logger:  logger,
		debt:    debt,
		now:     time.Now,
	}
}

// Refresh fetches the dashboard inputs and computes a fresh DashboardData
// for the given window and repository selection.
//
// Fetch failures are not fatal: each failing collection is logged and
// degrades to empty, so the worst case is an under-populated dashboard. The
// only returned error is a cancelled or expired context.
func (d *Dashboard) Refresh(ctx context.Context, window domain.TimeFilter, repoSelector string) (domain.DashboardData, error) {
	generation := d.gen.Add(1)
	d.logger.Debug("starting dashboard refresh",
		zap.Uint64("generation", generation),
		zap.String("window", string(window)),
		zap.String("repository", repoSelector))

	var (
		repos       []domain.Repository
		customScans []domain.CustomScanResult
		overview    gateway.RawSecurityOverview
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		fetched, err := d.fetcher.FetchRepositories(egCtx)
		if err != nil {
			d.logger.Warn("repositories fetch failed, degrading to empty", zap.Error(err))
			return nil
		}
		repos = fetched
		return nil
	})
	eg.Go(func() error {
		fetched, err := d.fetcher.FetchCustomScans(egCtx)
		if err != nil {
			d.logger.Warn("custom scans fetch failed, degrading to empty", zap.Error(err))
			return nil
		}
		customScans = fetched
		return nil
	})
	eg.Go(func() error {
		fetched, err := d.fetcher.FetchSecurityOverview(egCtx, window, repoSelector)
		if err != nil {
			d.logger.Warn("security overview fetch failed, degrading to empty", zap.Error(err))
			return nil
		}
		overview = fetched
		return nil
	})
	// The goroutines swallow fetch errors, so Wait only reflects context
	// cancellation.
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return domain.DashboardData{}, err
	}

	now := d.now()
	data := domain.DashboardData{
		GeneratedAt:        now,
		Window:             window,
		Repository:         repoSelector,
		SecurityScore:      SecurityScore(repos, customScans, window, repoSelector, now),
		TotalRepositories:  len(filterRepositories(repos, window, repoSelector, now)),
		TotalScans:         len(collectScanRecords(repos, customScans, window, repoSelector, now)),
		VulnerabilityTypes: ClassifyVulnerabilities(repos, customScans, window, repoSelector, now),
		RecentActivity:     BuildActivityFeed(repos, customScans, window, repoSelector, now),
		CustomScanStats:    AggregateCustomScanStats(customScans, window, repoSelector, now),
		AdvancedMetrics:    TransformMetrics(overview, d.debt),
	}

	d.commit(generation, data)
	return data, nil
}

// commit stores the result unless a newer refresh has started since this one
// began.
func (d *Dashboard) commit(generation uint64, data domain.DashboardData) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if generation != d.gen.Load() {
		d.logger.Debug("discarding stale dashboard result",
			zap.Uint64("generation", generation),
			zap.Uint64("current", d.gen.Load()))
		return
	}
	d.latest = &data
}

// Latest returns the most recently committed dashboard result. The second
// return is false before the first successful refresh.
func (d *Dashboard) Latest() (domain.DashboardData, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.latest == nil {
		return domain.DashboardData{}, false
	}
	return *d.latest, true
}
