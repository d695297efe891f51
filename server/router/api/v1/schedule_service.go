package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studystreak/studystreak/scheduler"
)

// recommendRequest asks for ranked study-slot recommendations.
type recommendRequest struct {
	UserID          int32                 `json:"user_id"`
	Preferences     scheduler.Preferences `json:"preferences"`
	DurationMinutes int                   `json:"duration_minutes"`
	HorizonDays     int                   `json:"horizon_days"`
}

type recommendResponse struct {
	UserID              int32                  `json:"user_id"`
	RecommendedSessions []scheduler.ScoredSlot `json:"recommended_sessions"`
}

// RecommendStudyTimes merges stored and request preferences, aggregates busy
// intervals over the lookahead window and runs the slot pipeline.
func (s *APIV1Service) RecommendStudyTimes(c echo.Context) error {
	request := &recommendRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	prefs := s.loadPreferences(ctx, request.UserID, request.Preferences)

	horizonDays := request.HorizonDays
	if horizonDays <= 0 {
		horizonDays = s.engine.Config().HorizonDays
	}

	// The aggregation window matches the slot-generation window exactly so
	// every candidate can be checked against a busy interval.
	windowStart := s.engine.Now()
	windowEnd := windowStart.Add(time.Duration(horizonDays) * 24 * time.Hour)
	busy := s.aggregator.BusyIntervals(ctx, windowStart, windowEnd, prefs.FeedURLs)

	slots := s.engine.FindOptimalStudyTimes(prefs, busy, request.DurationMinutes, horizonDays)
	if s.exporter != nil {
		s.exporter.RecordRecommendations(len(slots))
	}

	return c.JSON(http.StatusOK, recommendResponse{
		UserID:              request.UserID,
		RecommendedSessions: slots,
	})
}

// suggestRequest asks for a study plan derived from a work description.
type suggestRequest struct {
	UserID          int32                 `json:"user_id"`
	WorkDescription string                `json:"work_description"`
	Preferences     scheduler.Preferences `json:"preferences"`
}

type suggestResponse struct {
	WorkDescription string                     `json:"work_description"`
	Suggestions     []scheduler.PlannedSession `json:"suggestions"`
}

// SuggestSessions classifies the free-text work description and fans it out
// into placed sessions. This path never consults calendar data.
func (s *APIV1Service) SuggestSessions(c echo.Context) error {
	request := &suggestRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if request.WorkDescription == "" {
		return errorJSON(c, http.StatusBadRequest, "work_description is required")
	}

	prefs := s.loadPreferences(c.Request().Context(), request.UserID, request.Preferences)
	sessions := s.engine.SuggestSessions(request.WorkDescription, prefs)

	return c.JSON(http.StatusOK, suggestResponse{
		WorkDescription: request.WorkDescription,
		Suggestions:     sessions,
	})
}
