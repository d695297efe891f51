package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/calendar"
	"github.com/studystreak/studystreak/scheduler"
)

// ListCalendarEvents returns the normalized events of every configured
// source within the query window. Broken sources degrade to empty
// contributions exactly like busy-interval aggregation.
func (s *APIV1Service) ListCalendarEvents(c echo.Context) error {
	userID, err := userIDQuery(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	windowStart, err := time.Parse(time.RFC3339, c.QueryParam("start_date"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "start_date must be RFC 3339")
	}
	windowEnd, err := time.Parse(time.RFC3339, c.QueryParam("end_date"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "end_date must be RFC 3339")
	}
	if !windowStart.Before(windowEnd) {
		return errorJSON(c, http.StatusBadRequest, "start_date must be before end_date")
	}

	ctx := c.Request().Context()
	prefs := s.loadPreferences(ctx, userID, scheduler.Preferences{})
	events := s.aggregator.Events(ctx, windowStart, windowEnd, prefs.FeedURLs)

	return c.JSON(http.StatusOK, map[string]any{
		"user_id": userID,
		"events":  events,
	})
}

// createEventRequest describes a remote calendar event to create.
type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// CreateCalendarEvent writes an event to the remote calendar. Unlike the
// read path, a missing authorization state is propagated: the caller must
// know the side effect did not happen.
func (s *APIV1Service) CreateCalendarEvent(c echo.Context) error {
	request := &createEventRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if request.Title == "" {
		return errorJSON(c, http.StatusBadRequest, "title is required")
	}

	start, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "start_time must be RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, request.EndTime)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "end_time must be RFC 3339")
	}
	if !start.Before(end) {
		return errorJSON(c, http.StatusBadRequest, "start_time must be before end_time")
	}

	if s.remote == nil {
		return errorJSON(c, http.StatusUnauthorized, calendar.ErrNotAuthenticated.Error())
	}

	created, err := s.remote.CreateEvent(c.Request().Context(), calendar.CreateEventRequest{
		Title:       request.Title,
		Description: request.Description,
		Start:       start,
		End:         end,
	})
	if err != nil {
		if errors.Is(err, calendar.ErrNotAuthenticated) {
			return errorJSON(c, http.StatusUnauthorized, err.Error())
		}
		return errorJSON(c, http.StatusBadGateway, "failed to create calendar event")
	}

	return c.JSON(http.StatusCreated, created)
}
