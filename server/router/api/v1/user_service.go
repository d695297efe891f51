package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studystreak/studystreak/scheduler"
	"github.com/studystreak/studystreak/store"
)

// GetPreferences returns the user's stored scheduling preferences. A user
// without a stored document gets an empty one; the engine defaults apply at
// scheduling time, not here.
func (s *APIV1Service) GetPreferences(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	stored, err := s.Store.GetUserPreferences(c.Request().Context(), &store.FindUserPreferences{UserID: &userID})
	if err != nil {
		slog.Error("failed to get user preferences", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to load preferences")
	}

	prefs := scheduler.Preferences{}
	if stored != nil {
		if err := json.Unmarshal([]byte(stored.Preferences), &prefs); err != nil {
			slog.Warn("stored preferences are not valid JSON",
				slog.Int("user_id", int(userID)),
				slog.Any("err", err))
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user_id":     userID,
		"preferences": prefs,
	})
}

// UpdatePreferences replaces the user's stored preference document.
func (s *APIV1Service) UpdatePreferences(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	prefs := scheduler.Preferences{}
	if err := c.Bind(&prefs); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	encoded, err := json.Marshal(prefs)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "failed to encode preferences")
	}

	stored, err := s.Store.UpsertUserPreferences(c.Request().Context(), &store.UpsertUserPreferences{
		UserID:      userID,
		Preferences: string(encoded),
	})
	if err != nil {
		slog.Error("failed to upsert user preferences", slog.Any("err", err))
		return errorJSON(c, http.StatusInternalServerError, "failed to save preferences")
	}

	saved := scheduler.Preferences{}
	_ = json.Unmarshal([]byte(stored.Preferences), &saved)
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":     userID,
		"preferences": saved,
	})
}
