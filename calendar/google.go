package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// defaultCalendarBaseURL is the Google Calendar v3 endpoint. Tests point
// the client at a local server instead.
const defaultCalendarBaseURL = "https://www.googleapis.com/calendar/v3"

// GoogleClient talks to a Google-Calendar-shaped remote API. The zero value
// is unusable; construct with NewGoogleClient. Authorization flows are out
// of scope: the client consumes an already-obtained token source.
type GoogleClient struct {
	httpClient *http.Client
	baseURL    string
	calendarID string
	timezone   string
}

// GoogleOption configures a GoogleClient.
type GoogleOption func(*GoogleClient)

// WithHTTPClient replaces the OAuth-wrapped HTTP client. Tests use this to
// bypass token injection.
func WithHTTPClient(client *http.Client) GoogleOption {
	return func(c *GoogleClient) { c.httpClient = client }
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(baseURL string) GoogleOption {
	return func(c *GoogleClient) { c.baseURL = baseURL }
}

// WithCalendarID selects the calendar to read and write. Defaults to
// "primary".
func WithCalendarID(id string) GoogleOption {
	return func(c *GoogleClient) { c.calendarID = id }
}

// WithTimezone sets the timezone attached to created events.
func WithTimezone(tz string) GoogleOption {
	return func(c *GoogleClient) { c.timezone = tz }
}

// NewGoogleClient creates a client around the given token source. A nil
// token source yields an unauthenticated client: reads return
// ErrNotAuthenticated (which the aggregator degrades to an empty
// contribution) and writes propagate it.
func NewGoogleClient(ts oauth2.TokenSource, opts ...GoogleOption) *GoogleClient {
	c := &GoogleClient{
		baseURL:    defaultCalendarBaseURL,
		calendarID: "primary",
		timezone:   "America/Los_Angeles",
	}
	if ts != nil {
		c.httpClient = oauth2.NewClient(context.Background(), ts)
		c.httpClient.Timeout = 30 * time.Second
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// googleEventTime is the API's split date/dateTime representation.
type googleEventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// value returns the timed value when present, otherwise the all-day date
// verbatim.
func (t googleEventTime) value() string {
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

type googleEvent struct {
	ID          string          `json:"id,omitempty"`
	Summary     string          `json:"summary"`
	Description string          `json:"description,omitempty"`
	Start       googleEventTime `json:"start"`
	End         googleEventTime `json:"end"`
	HTMLLink    string          `json:"htmlLink,omitempty"`
	ColorID     string          `json:"colorId,omitempty"`
	Reminders   *googleReminder `json:"reminders,omitempty"`
}

type googleReminder struct {
	UseDefault bool                     `json:"useDefault"`
	Overrides  []googleReminderOverride `json:"overrides"`
}

type googleReminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// FetchEvents lists events within [start, end), expanded to single
// instances and ordered by start time, the way the remote API pre-filters.
func (c *GoogleClient) FetchEvents(ctx context.Context, start, end time.Time) ([]Event, error) {
	if c.httpClient == nil {
		return nil, ErrNotAuthenticated
	}

	params := url.Values{}
	params.Set("timeMin", start.Format(time.RFC3339))
	params.Set("timeMax", end.Format(time.RFC3339))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")
	params.Set("maxResults", "250")
	listURL := c.baseURL + "/calendars/" + url.PathEscape(c.calendarID) + "/events?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to construct calendar list request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list calendar events")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("calendar list returned status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Items []googleEvent `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode calendar list response")
	}

	events := make([]Event, 0, len(payload.Items))
	for _, item := range payload.Items {
		title := item.Summary
		if title == "" {
			title = "No Title"
		}
		events = append(events, Event{
			Title:       title,
			Description: item.Description,
			Start:       item.Start.value(),
			End:         item.End.value(),
			Source:      SourceRemote,
		})
	}
	return events, nil
}

// CreateEvent inserts a study-session event with the standard reminder
// overrides (email a day ahead, popup 30 minutes ahead) and the green study
// color. Unlike reads, a missing authorization state is a hard error: the
// caller must know the write did not happen.
func (c *GoogleClient) CreateEvent(ctx context.Context, create CreateEventRequest) (*CreatedEvent, error) {
	if c.httpClient == nil {
		return nil, ErrNotAuthenticated
	}

	body := googleEvent{
		Summary:     create.Title,
		Description: create.Description,
		Start:       googleEventTime{DateTime: create.Start.Format(time.RFC3339), TimeZone: c.timezone},
		End:         googleEventTime{DateTime: create.End.Format(time.RFC3339), TimeZone: c.timezone},
		ColorID:     "2",
		Reminders: &googleReminder{
			UseDefault: false,
			Overrides: []googleReminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
		},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal calendar event")
	}

	insertURL := c.baseURL + "/calendars/" + url.PathEscape(c.calendarID) + "/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, insertURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "failed to construct calendar insert request")
	}
	req.Header.Set("Content-Type", "application/json")
	// Request ID lets the remote API deduplicate a retried insert.
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create calendar event")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("calendar insert returned status %d: %s", resp.StatusCode, respBody)
	}

	var created googleEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, errors.Wrap(err, "failed to decode created calendar event")
	}

	return &CreatedEvent{
		ID:       created.ID,
		Title:    created.Summary,
		Start:    created.Start.value(),
		End:      created.End.value(),
		HTMLLink: created.HTMLLink,
		Source:   SourceRemote,
	}, nil
}
