package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/habit"
	"github.com/studystreak/studystreak/scheduler"
	"github.com/studystreak/studystreak/store"
)

// errorResponse is the uniform failure body.
type errorResponse struct {
	Message string `json:"message"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Message: message})
}

// userIDParam parses the :id path parameter.
func userIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return int32(id), nil
}

// userIDQuery parses the user_id query parameter.
func userIDQuery(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.QueryParam("user_id"), 10, 32)
	if err != nil {
		return 0, errors.New("user_id is required")
	}
	return int32(id), nil
}

// loadPreferences reads the user's stored preference document and lays the
// request-level overrides on top, request wins. A missing or unreadable
// stored document falls back to the overrides alone; the engine fills the
// documented defaults for anything still absent.
func (s *APIV1Service) loadPreferences(ctx context.Context, userID int32, override scheduler.Preferences) scheduler.Preferences {
	var base scheduler.Preferences

	stored, err := s.Store.GetUserPreferences(ctx, &store.FindUserPreferences{UserID: &userID})
	if err != nil {
		slog.Warn("failed to load stored preferences, using request values only",
			slog.Int("user_id", int(userID)),
			slog.Any("err", err))
	} else if stored != nil {
		if err := json.Unmarshal([]byte(stored.Preferences), &base); err != nil {
			slog.Warn("stored preferences are not valid JSON, using request values only",
				slog.Int("user_id", int(userID)),
				slog.Any("err", err))
		}
	}

	return scheduler.MergePreferences(base, override)
}

// sessionResponse is the JSON shape of a stored session.
type sessionResponse struct {
	UID             string  `json:"uid"`
	UserID          int32   `json:"user_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Subject         string  `json:"subject,omitempty"`
	StudyType       string  `json:"study_type,omitempty"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        string  `json:"location,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Completed       bool    `json:"completed"`
	CompletedAt     *string `json:"completed_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func sessionFromStore(session *store.StudySession) sessionResponse {
	resp := sessionResponse{
		UID:             session.UID,
		UserID:          session.UserID,
		Title:           session.Title,
		Description:     session.Description,
		Subject:         session.Subject,
		StudyType:       session.StudyType,
		StartTime:       time.Unix(session.StartTs, 0).UTC().Format(time.RFC3339),
		EndTime:         time.Unix(session.EndTs, 0).UTC().Format(time.RFC3339),
		DurationMinutes: session.DurationMinutes,
		Location:        session.Location,
		Notes:           session.Notes,
		Completed:       session.Completed,
		CreatedAt:       time.Unix(session.CreatedTs, 0).UTC().Format(time.RFC3339),
	}
	if session.CompletedTs != nil {
		completedAt := time.Unix(*session.CompletedTs, 0).UTC().Format(time.RFC3339)
		resp.CompletedAt = &completedAt
	}
	return resp
}

// completionRecords converts the ascending session list into the tracker's
// input records.
func completionRecords(sessions []*store.StudySession) []habit.CompletionRecord {
	records := make([]habit.CompletionRecord, 0, len(sessions))
	for _, session := range sessions {
		records = append(records, habit.CompletionRecord{
			Date:      time.Unix(session.CreatedTs, 0),
			Completed: session.Completed,
		})
	}
	return records
}
