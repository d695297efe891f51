package calendar

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/studystreak/studystreak/internal/metrics"
	"github.com/studystreak/studystreak/scheduler"
)

// Aggregator unions events from the remote calendar and every subscription
// feed. Each source is best-effort: a fetch or parse failure is logged and
// contributes an empty list, never an error to the caller.
type Aggregator struct {
	remote   RemoteSource
	fetcher  FeedFetcher
	limiter  *rate.Limiter
	exporter *metrics.Exporter
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithRateLimit bounds outbound source fetches.
func WithRateLimit(limiter *rate.Limiter) AggregatorOption {
	return func(a *Aggregator) { a.limiter = limiter }
}

// WithExporter records fetch outcomes on the metrics exporter.
func WithExporter(exporter *metrics.Exporter) AggregatorOption {
	return func(a *Aggregator) { a.exporter = exporter }
}

// NewAggregator creates an Aggregator. remote may be nil when no remote
// calendar is configured; fetcher may be nil when feeds are never consulted.
func NewAggregator(remote RemoteSource, fetcher FeedFetcher, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		remote:  remote,
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Events returns the normalized events of every source for [start, end).
// Feeds are fetched concurrently; the merge is plain concatenation with no
// cross-source deduplication.
func (a *Aggregator) Events(ctx context.Context, start, end time.Time, feedURLs []string) []Event {
	events := a.fetchRemote(ctx, start, end)

	if a.fetcher == nil || len(feedURLs) == 0 {
		return events
	}

	perFeed := make([][]Event, len(feedURLs))
	var eg errgroup.Group
	for i, feedURL := range feedURLs {
		eg.Go(func() error {
			perFeed[i] = a.fetchFeed(ctx, feedURL, start, end)
			return nil
		})
	}
	// Workers never return errors; failures already degraded to empty lists.
	_ = eg.Wait()

	for _, feedEvents := range perFeed {
		events = append(events, feedEvents...)
	}
	return events
}

// BusyIntervals converts the aggregated events into busy intervals for the
// conflict filter. Events whose start or end cannot be parsed are skipped,
// matching the swallow-and-continue read policy.
func (a *Aggregator) BusyIntervals(ctx context.Context, start, end time.Time, feedURLs []string) []scheduler.BusyInterval {
	events := a.Events(ctx, start, end, feedURLs)

	intervals := make([]scheduler.BusyInterval, 0, len(events))
	for _, event := range events {
		busyStart, err := parseEventTime(event.Start)
		if err != nil {
			continue
		}
		busyEnd, err := parseEventTime(event.End)
		if err != nil {
			continue
		}
		source := scheduler.SourceSubscriptionFeed
		if event.Source == SourceRemote {
			source = scheduler.SourceCalendarAPI
		}
		intervals = append(intervals, scheduler.BusyInterval{
			Start:  busyStart,
			End:    busyEnd,
			Source: source,
		})
	}
	return intervals
}

func (a *Aggregator) fetchRemote(ctx context.Context, start, end time.Time) []Event {
	if a.remote == nil {
		return nil
	}
	a.waitQuota(ctx)

	began := time.Now()
	events, err := a.remote.FetchEvents(ctx, start, end)
	a.recordFetch(SourceRemote, time.Since(began), err)
	if err != nil {
		slog.Warn("remote calendar fetch failed, continuing without it",
			slog.Any("err", err))
		return nil
	}
	return events
}

func (a *Aggregator) fetchFeed(ctx context.Context, feedURL string, start, end time.Time) []Event {
	a.waitQuota(ctx)

	began := time.Now()
	text, err := a.fetcher.FetchText(ctx, feedURL)
	a.recordFetch(SourceFeed, time.Since(began), err)
	if err != nil {
		slog.Warn("subscription feed fetch failed, continuing without it",
			slog.String("url", feedURL),
			slog.Any("err", err))
		return nil
	}
	return ParseFeed(text, start, end)
}

func (a *Aggregator) waitQuota(ctx context.Context) {
	if a.limiter == nil {
		return
	}
	// A canceled context surfaces on the fetch itself.
	_ = a.limiter.Wait(ctx)
}

func (a *Aggregator) recordFetch(source string, elapsed time.Duration, err error) {
	if a.exporter != nil {
		a.exporter.RecordCalendarFetch(source, elapsed, err)
	}
}
