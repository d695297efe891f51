package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/scheduler"
)

type fakeRemote struct {
	events []Event
	err    error
}

func (f *fakeRemote) FetchEvents(_ context.Context, _, _ time.Time) ([]Event, error) {
	return f.events, f.err
}

func (f *fakeRemote) CreateEvent(_ context.Context, _ CreateEventRequest) (*CreatedEvent, error) {
	return nil, ErrNotAuthenticated
}

type fakeFetcher struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeFetcher) FetchText(_ context.Context, url string) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	return f.texts[url], nil
}

var remoteEvent = Event{
	Title:  "Standup",
	Start:  "2026-04-02T09:00:00Z",
	End:    "2026-04-02T09:30:00Z",
	Source: SourceRemote,
}

func TestAggregatorEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("MergesAllSources", func(t *testing.T) {
		fetcher := &fakeFetcher{texts: map[string]string{
			"https://feeds.example.com/a.ics": sampleFeed,
		}}
		agg := NewAggregator(&fakeRemote{events: []Event{remoteEvent}}, fetcher)

		events := agg.Events(ctx, windowStart, windowEnd, []string{"https://feeds.example.com/a.ics"})
		if len(events) != 2 {
			t.Fatalf("expected remote + feed events, got %d: %+v", len(events), events)
		}
	})

	t.Run("FeedFailureDegradesGracefully", func(t *testing.T) {
		fetcher := &fakeFetcher{errs: map[string]error{
			"https://feeds.example.com/broken.ics": errors.New("connection refused"),
		}}
		agg := NewAggregator(&fakeRemote{events: []Event{remoteEvent}}, fetcher)

		events := agg.Events(ctx, windowStart, windowEnd, []string{"https://feeds.example.com/broken.ics"})
		if len(events) != 1 {
			t.Fatalf("broken feed must not lose remote events, got %d", len(events))
		}
		if events[0].Source != SourceRemote {
			t.Errorf("surviving event source = %q, want %q", events[0].Source, SourceRemote)
		}
	})

	t.Run("RemoteFailureDegradesGracefully", func(t *testing.T) {
		fetcher := &fakeFetcher{texts: map[string]string{
			"https://feeds.example.com/a.ics": sampleFeed,
		}}
		agg := NewAggregator(&fakeRemote{err: errors.New("token expired")}, fetcher)

		events := agg.Events(ctx, windowStart, windowEnd, []string{"https://feeds.example.com/a.ics"})
		if len(events) != 1 {
			t.Fatalf("remote failure must not lose feed events, got %d", len(events))
		}
	})

	t.Run("NilRemoteAndNoFeeds", func(t *testing.T) {
		agg := NewAggregator(nil, nil)
		if events := agg.Events(ctx, windowStart, windowEnd, nil); len(events) != 0 {
			t.Errorf("expected no events, got %d", len(events))
		}
	})
}

func TestAggregatorBusyIntervals(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{events: []Event{
		remoteEvent,
		{Title: "All-day", Start: "2026-04-03", End: "2026-04-04", Source: SourceRemote},
		{Title: "Unparsable", Start: "???", End: "???", Source: SourceRemote},
	}}
	fetcher := &fakeFetcher{texts: map[string]string{
		"https://feeds.example.com/a.ics": sampleFeed,
	}}
	agg := NewAggregator(remote, fetcher)

	intervals := agg.BusyIntervals(ctx, windowStart, windowEnd, []string{"https://feeds.example.com/a.ics"})
	if len(intervals) != 3 {
		t.Fatalf("expected 3 parseable intervals, got %d: %+v", len(intervals), intervals)
	}

	var remoteCount, feedCount int
	for _, interval := range intervals {
		if !interval.Start.Before(interval.End) {
			t.Errorf("interval %+v has start >= end", interval)
		}
		switch interval.Source {
		case scheduler.SourceCalendarAPI:
			remoteCount++
		case scheduler.SourceSubscriptionFeed:
			feedCount++
		}
	}
	if remoteCount != 2 || feedCount != 1 {
		t.Errorf("source split = %d remote / %d feed, want 2/1", remoteCount, feedCount)
	}
}
