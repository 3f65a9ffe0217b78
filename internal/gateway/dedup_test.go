package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkamada/scanboard/internal/domain"
)

// countingFetcher counts calls per method and returns canned values.
type countingFetcher struct {
	mu            sync.Mutex
	repoCalls     int
	scanCalls     int
	overviewCalls int
	repoErr       error
}

func (f *countingFetcher) FetchRepositories(ctx context.Context) ([]domain.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repoCalls++
	if f.repoErr != nil {
		return nil, f.repoErr
	}
	return []domain.Repository{{ID: 1, Name: "api"}}, nil
}

func (f *countingFetcher) FetchCustomScans(ctx context.Context) ([]domain.CustomScanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanCalls++
	return []domain.CustomScanResult{}, nil
}

func (f *countingFetcher) FetchSecurityOverview(ctx context.Context, window domain.TimeFilter, repoSelector string) (RawSecurityOverview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overviewCalls++
	return RawSecurityOverview{}, nil
}

func TestDedupFetcher_CachesWithinTTL(t *testing.T) {
	inner := &countingFetcher{}
	dedup := NewDedupFetcher(inner, time.Minute, 16)

	for i := 0; i < 5; i++ {
		repos, err := dedup.FetchRepositories(context.Background())
		require.NoError(t, err)
		require.Len(t, repos, 1)
	}
	assert.Equal(t, 1, inner.repoCalls)
}

func TestDedupFetcher_ExpiresAfterTTL(t *testing.T) {
	inner := &countingFetcher{}
	dedup := NewDedupFetcher(inner, time.Minute, 16)

	current := time.Unix(1_750_000_000, 0)
	dedup.now = func() time.Time { return current }

	_, err := dedup.FetchRepositories(context.Background())
	require.NoError(t, err)
	_, err = dedup.FetchRepositories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inner.repoCalls)

	current = current.Add(2 * time.Minute)
	_, err = dedup.FetchRepositories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.repoCalls)
}

func TestDedupFetcher_ErrorsAreNotCached(t *testing.T) {
	inner := &countingFetcher{repoErr: errors.New("backend down")}
	dedup := NewDedupFetcher(inner, time.Minute, 16)

	_, err := dedup.FetchRepositories(context.Background())
	assert.Error(t, err)
	_, err = dedup.FetchRepositories(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, inner.repoCalls)

	// The next success is served and then cached.
	inner.repoErr = nil
	_, err = dedup.FetchRepositories(context.Background())
	require.NoError(t, err)
	_, err = dedup.FetchRepositories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, inner.repoCalls)
}

func TestDedupFetcher_OverviewKeyIncludesWindowAndSelector(t *testing.T) {
	inner := &countingFetcher{}
	dedup := NewDedupFetcher(inner, time.Minute, 16)
	ctx := context.Background()

	_, err := dedup.FetchSecurityOverview(ctx, domain.LastWeek, "all")
	require.NoError(t, err)
	_, err = dedup.FetchSecurityOverview(ctx, domain.LastWeek, "all")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.overviewCalls)

	// Different window and different selector are distinct requests.
	_, err = dedup.FetchSecurityOverview(ctx, domain.LastMonth, "all")
	require.NoError(t, err)
	_, err = dedup.FetchSecurityOverview(ctx, domain.LastWeek, "3")
	require.NoError(t, err)
	assert.Equal(t, 3, inner.overviewCalls)
}

func TestDedupFetcher_BoundedEviction(t *testing.T) {
	inner := &countingFetcher{}
	dedup := NewDedupFetcher(inner, time.Minute, 2)
	ctx := context.Background()

	// Three distinct keys against a two-entry cache.
	_, _ = dedup.FetchSecurityOverview(ctx, domain.LastDay, "all")
	_, _ = dedup.FetchSecurityOverview(ctx, domain.LastWeek, "all")
	_, _ = dedup.FetchSecurityOverview(ctx, domain.LastMonth, "all")
	assert.Equal(t, 3, inner.overviewCalls)

	dedup.mu.Lock()
	assert.LessOrEqual(t, len(dedup.cache), 2)
	dedup.mu.Unlock()
}
