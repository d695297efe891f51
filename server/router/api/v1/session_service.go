package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/calendar"
	"github.com/studystreak/studystreak/plugin/webhook"
	"github.com/studystreak/studystreak/store"
)

// createSessionRequest describes a study session to record.
type createSessionRequest struct {
	UserID          int32  `json:"user_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Subject         string `json:"subject"`
	StudyType       string `json:"study_type"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Location        string `json:"location"`
	Notes           string `json:"notes"`
	AddToCalendar   bool   `json:"add_to_calendar"`
	DurationMinutes int    `json:"duration_minutes"`
}

// CreateSession records a planned session. With add_to_calendar set, the
// session is also written to the remote calendar; that write failing fails
// the whole request since the caller asked for the side effect.
func (s *APIV1Service) CreateSession(c echo.Context) error {
	request := &createSessionRequest{}
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

	durationMinutes := request.DurationMinutes
	if durationMinutes <= 0 {
		durationMinutes = int(end.Sub(start) / time.Minute)
	}

	ctx := c.Request().Context()
	session, err := s.Store.CreateStudySession(ctx, &store.StudySession{
		UID:             shortuuid.New(),
		UserID:          request.UserID,
		Title:           request.Title,
		Description:     request.Description,
		Subject:         request.Subject,
		StudyType:       request.StudyType,
		StartTs:         start.Unix(),
		EndTs:           end.Unix(),
		DurationMinutes: durationMinutes,
		Location:        request.Location,
		Notes:           request.Notes,
	})
	if err != nil {
		slog.Error("failed to create study session", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to create session")
	}

	if request.AddToCalendar {
		if s.remote == nil {
			return errorJSON(c, http.StatusUnauthorized, calendar.ErrNotAuthenticated.Error())
		}
		if _, err := s.remote.CreateEvent(ctx, calendar.CreateEventRequest{
			Title:       request.Title,
			Description: request.Description,
			Start:       start,
			End:         end,
		}); err != nil {
			if errors.Is(err, calendar.ErrNotAuthenticated) {
				return errorJSON(c, http.StatusUnauthorized, err.Error())
			}
			return errorJSON(c, http.StatusBadGateway, "failed to add session to calendar")
		}
	}

	return c.JSON(http.StatusCreated, sessionFromStore(session))
}

// ListSessions returns a user's sessions, optionally narrowed by a CEL
// filter expression over subject, study_type, completed and
// duration_minutes, e.g. `subject == "Mathematics" && completed`.
func (s *APIV1Service) ListSessions(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	sessions, err := s.Store.ListStudySessions(c.Request().Context(), &store.FindStudySession{UserID: &userID})
	if err != nil {
		slog.Error("failed to list study sessions", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to list sessions")
	}

	if filter := c.QueryParam("filter"); filter != "" {
		sessions, err = filterSessions(sessions, filter)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
	}

	responses := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, sessionFromStore(session))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":  userID,
		"sessions": responses,
	})
}

// completeSessionRequest identifies the owner of the session to complete.
type completeSessionRequest struct {
	UserID int32 `json:"user_id"`
}

// CompleteSession marks a session completed and, when the completion pushes
// the user across new milestone thresholds, fans the newly earned rewards
// out to the configured notifiers.
func (s *APIV1Service) CompleteSession(c echo.Context) error {
	request := &completeSessionRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	uid := c.Param("uid")

	ctx := c.Request().Context()
	session, err := s.Store.GetStudySession(ctx, &store.FindStudySession{UID: &uid})
	if err != nil {
		slog.Error("failed to load study session", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to load session")
	}
	if session == nil || session.UserID != request.UserID {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}

	rewardsBefore := s.currentRewards(ctx, request.UserID)

	completed := true
	completedTs := time.Now().Unix()
	updated, err := s.Store.UpdateStudySession(ctx, &store.UpdateStudySession{
		ID:          session.ID,
		Completed:   &completed,
		CompletedTs: &completedTs,
	})
	if err != nil {
		slog.Error("failed to complete study session", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to complete session")
	}

	// A completion after a gap can shrink the reward list (the streak
	// resets), so only a strictly longer list counts as new milestones.
	rewardsAfter := s.currentRewards(ctx, request.UserID)
	if len(rewardsAfter) > len(rewardsBefore) {
		s.notifyMilestones(request.UserID, rewardsAfter[len(rewardsBefore):])
	}

	return c.JSON(http.StatusOK, sessionFromStore(updated))
}

// DeleteSession removes a session by UID.
func (s *APIV1Service) DeleteSession(c echo.Context) error {
	userID, err := userIDQuery(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	uid := c.Param("uid")

	if err := s.Store.DeleteStudySession(c.Request().Context(), &store.DeleteStudySession{UID: uid, UserID: userID}); err != nil {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// currentRewards recomputes the user's milestone rewards from the full
// session log. Failures degrade to an empty list; notification is
// best-effort on top of a completed write.
func (s *APIV1Service) currentRewards(ctx context.Context, userID int32) []string {
	sessions, err := s.Store.ListStudySessions(ctx, &store.FindStudySession{UserID: &userID})
	if err != nil {
		slog.Warn("failed to compute milestone rewards", slog.Any("err", err))
		return nil
	}
	progress := s.tracker.TrackProgress(completionRecords(sessions))
	return s.tracker.MilestoneRewards(progress)
}

// notifyMilestones pushes newly earned rewards to Telegram and the webhook,
// both asynchronous and best-effort.
func (s *APIV1Service) notifyMilestones(userID int32, rewards []string) {
	if s.exporter != nil {
		s.exporter.RecordMilestones(len(rewards))
	}
	if s.telegram != nil {
		s.telegram.NotifyAsync(rewards)
	}
	if s.webhookURL != "" {
		webhook.PostAsync(&webhook.MilestonePayload{
			URL:     s.webhookURL,
			UserID:  userID,
			Rewards: rewards,
		})
	}
}
