package calendar

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// feedFetchTimeout bounds a single subscription-feed download.
const feedFetchTimeout = 10 * time.Second

// FeedFetcher retrieves the raw text of a subscription feed. The aggregator
// owns parsing the returned text.
type FeedFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// HTTPFeedFetcher fetches feeds over plain HTTP with a bounded timeout.
type HTTPFeedFetcher struct {
	client *http.Client
}

// NewHTTPFeedFetcher creates a fetcher. A nil client gets the default one
// with the standard feed timeout.
func NewHTTPFeedFetcher(client *http.Client) *HTTPFeedFetcher {
	if client == nil {
		client = &http.Client{Timeout: feedFetchTimeout}
	}
	return &HTTPFeedFetcher{client: client}
}

func (f *HTTPFeedFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrapf(err, "failed to construct feed request to %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch feed %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Errorf("feed %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read feed %s", url)
	}
	return string(body), nil
}

// Field prefixes of a feed event record.
const (
	feedEventBegin    = "BEGIN:VEVENT"
	feedEventEnd      = "END:VEVENT"
	feedFieldSummary  = "SUMMARY:"
	feedFieldStart    = "DTSTART:"
	feedFieldFinish   = "DTEND:"
	feedFieldDescribe = "DESCRIPTION:"
)

// ParseFeed scans feed text for event blocks and keeps the events whose
// parsed start timestamp falls inside the window, inclusive on both ends.
// Events lacking a parseable start are dropped.
func ParseFeed(text string, windowStart, windowEnd time.Time) []Event {
	var events []Event
	var current Event
	var inEvent bool

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == feedEventBegin:
			current = Event{Source: SourceFeed}
			inEvent = true
		case line == feedEventEnd:
			if inEvent && keepFeedEvent(current, windowStart, windowEnd) {
				events = append(events, current)
			}
			inEvent = false
		case strings.HasPrefix(line, feedFieldSummary):
			current.Title = line[len(feedFieldSummary):]
		case strings.HasPrefix(line, feedFieldStart):
			current.Start = line[len(feedFieldStart):]
		case strings.HasPrefix(line, feedFieldFinish):
			current.End = line[len(feedFieldFinish):]
		case strings.HasPrefix(line, feedFieldDescribe):
			current.Description = line[len(feedFieldDescribe):]
		}
	}
	return events
}

func keepFeedEvent(event Event, windowStart, windowEnd time.Time) bool {
	if event.Start == "" {
		return false
	}
	start, err := parseEventTime(event.Start)
	if err != nil {
		return false
	}
	return !start.Before(windowStart) && !start.After(windowEnd)
}
