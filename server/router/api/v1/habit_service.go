package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studystreak/studystreak/habit"
	"github.com/studystreak/studystreak/store"
)

// GetHabitProgress recomputes the user's habit-formation progress and the
// earned milestone rewards from the full session log.
func (s *APIV1Service) GetHabitProgress(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	sessions, err := s.Store.ListStudySessions(c.Request().Context(), &store.FindStudySession{UserID: &userID})
	if err != nil {
		slog.Error("failed to list study sessions", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to load session history")
	}

	progress := s.tracker.TrackProgress(completionRecords(sessions))
	rewards := s.tracker.MilestoneRewards(progress)

	return c.JSON(http.StatusOK, map[string]any{
		"user_id":  userID,
		"progress": progress,
		"rewards":  rewards,
	})
}

// GetWeeklyProgress returns per-week session counts for the trailing weeks,
// oldest first.
func (s *APIV1Service) GetWeeklyProgress(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	weeks := 4
	if raw := c.QueryParam("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return errorJSON(c, http.StatusBadRequest, "weeks must be a positive integer")
		}
		weeks = parsed
	}

	sessions, err := s.Store.ListStudySessions(c.Request().Context(), &store.FindStudySession{UserID: &userID})
	if err != nil {
		slog.Error("failed to list study sessions", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to load session history")
	}

	buckets := habit.WeeklyProgress(logEntries(sessions), time.Now(), weeks)
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":         userID,
		"weekly_progress": buckets,
	})
}

// GetUserStats returns session totals and the completion rate.
func (s *APIV1Service) GetUserStats(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	sessions, err := s.Store.ListStudySessions(c.Request().Context(), &store.FindStudySession{UserID: &userID})
	if err != nil {
		slog.Error("failed to list study sessions", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to load session history")
	}

	stats := habit.CalculateStats(logEntries(sessions), time.Now())
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":    userID,
		"statistics": stats,
	})
}

func logEntries(sessions []*store.StudySession) []habit.LogEntry {
	entries := make([]habit.LogEntry, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, habit.LogEntry{
			CreatedAt: time.Unix(session.CreatedTs, 0),
			Completed: session.Completed,
		})
	}
	return entries
}
