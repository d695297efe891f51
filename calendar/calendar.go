// Package calendar aggregates busy intervals from heterogeneous calendar
// sources: a remote calendar API and plain-text subscription feeds. Reads
// are best-effort; a broken source contributes nothing instead of failing
// the aggregation. Writes to the remote calendar propagate their errors.
package calendar

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Source labels on normalized events. BusyIntervals maps them onto the
// scheduler's interval sources.
const (
	SourceRemote = "calendar_api"
	SourceFeed   = "subscription_feed"
)

// ErrNotAuthenticated is returned when a remote-calendar write is attempted
// without prior authorization. Reads degrade instead (empty contribution).
var ErrNotAuthenticated = errors.New("remote calendar not authenticated")

// Event is a calendar entry normalized across sources. Start and End keep
// the source's textual timestamps: all-day events from the remote API carry
// a bare date, timed events an ISO-8601 timestamp.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	Source      string `json:"source"`
}

// RemoteSource is the remote calendar API the aggregator reads from and the
// event writer writes to.
type RemoteSource interface {
	// FetchEvents returns events within [start, end), pre-filtered by the
	// remote API.
	FetchEvents(ctx context.Context, start, end time.Time) ([]Event, error)
	// CreateEvent inserts a new event. Returns ErrNotAuthenticated when no
	// authorization state is available.
	CreateEvent(ctx context.Context, req CreateEventRequest) (*CreatedEvent, error)
}

// CreateEventRequest describes a remote calendar event to create.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
}

// CreatedEvent echoes the remote API's view of a created event.
type CreatedEvent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	HTMLLink string `json:"html_link,omitempty"`
	Source   string `json:"source"`
}

// parseEventTime accepts the timestamp shapes calendar sources emit:
// RFC 3339, a zoneless ISO-8601 timestamp (interpreted in local time), or a
// bare date (all-day events).
func parseEventTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", value)
}
