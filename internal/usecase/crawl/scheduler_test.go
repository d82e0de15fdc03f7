package crawl

import (
	"context"
	"errors"
	"testing"
	"time"

	"newscrawl/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cancellingDiscoverer cancels the run context after a fixed number of
// discovery calls so scheduler loops terminate deterministically.
type cancellingDiscoverer struct {
	calls      int
	cancelAt   int
	cancelFunc context.CancelFunc
}

func (d *cancellingDiscoverer) DiscoverLinks(_ context.Context, _ string) ([]string, error) {
	d.calls++
	if d.calls >= d.cancelAt {
		d.cancelFunc()
	}
	return nil, nil
}

func newTestScheduler(d LinkDiscoverer, repo *memRepo, cfg SchedulerConfig) *Scheduler {
	svc := NewService(d, &stubFetcher{}, &stubExtractor{}, repo, testConfig(), nil)
	return NewScheduler(svc, cfg, nil)
}

func TestScheduler_BootstrapsEmptyStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &cancellingDiscoverer{cancelAt: 1, cancelFunc: cancel}
	sched := newTestScheduler(d, newMemRepo(), SchedulerConfig{Interval: time.Hour})

	err := sched.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, d.calls, "bootstrap pass should run exactly once")
}

func TestScheduler_SkipsBootstrapWhenPopulated(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.Create(context.Background(),
		&entity.Article{URL: "https://example.com/content/a", Title: "A"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancelled on the first regular pass: no extra bootstrap pass before it.
	d := &cancellingDiscoverer{cancelAt: 1, cancelFunc: cancel}
	sched := newTestScheduler(d, repo, SchedulerConfig{Interval: time.Millisecond})

	err := sched.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, d.calls)
}

func TestScheduler_IntervalLoopRepeats(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.Create(context.Background(),
		&entity.Article{URL: "https://example.com/content/a", Title: "A"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &cancellingDiscoverer{cancelAt: 3, cancelFunc: cancel}
	sched := newTestScheduler(d, repo, SchedulerConfig{Interval: time.Millisecond})

	err := sched.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, d.calls, 3)
}

func TestScheduler_InvalidCronSchedule(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.Create(context.Background(),
		&entity.Article{URL: "https://example.com/content/a", Title: "A"}))

	sched := newTestScheduler(&stubDiscoverer{}, repo, SchedulerConfig{
		Interval:     time.Hour,
		CronSchedule: "not a cron expression",
	})

	err := sched.Run(context.Background())
	assert.ErrorContains(t, err, "parse cron schedule")
}

func TestScheduler_CountFailureIsFatal(t *testing.T) {
	failing := &countFailingRepo{memRepo: newMemRepo()}
	svc := NewService(&stubDiscoverer{}, &stubFetcher{}, &stubExtractor{}, failing, testConfig(), nil)
	sched := NewScheduler(svc, SchedulerConfig{Interval: time.Hour}, nil)

	err := sched.Run(context.Background())
	assert.ErrorContains(t, err, "count stored articles")
}

type countFailingRepo struct {
	*memRepo
}

func (r *countFailingRepo) CountArticles(_ context.Context) (int64, error) {
	return 0, errors.New("connection lost")
}
