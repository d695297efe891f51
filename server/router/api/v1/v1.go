// Package v1 exposes the JSON API consumed by the surrounding application.
// Handlers are a thin request layer: preferences merging, window parsing and
// response shaping around the scheduler, calendar and habit cores.
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/studystreak/studystreak/calendar"
	"github.com/studystreak/studystreak/habit"
	"github.com/studystreak/studystreak/internal/metrics"
	"github.com/studystreak/studystreak/internal/profile"
	"github.com/studystreak/studystreak/plugin/telegram"
	"github.com/studystreak/studystreak/scheduler"
	"github.com/studystreak/studystreak/store"
)

// Dependencies bundles the core components the API services call into.
type Dependencies struct {
	Engine     *scheduler.Engine
	Tracker    *habit.Tracker
	Aggregator *calendar.Aggregator
	Remote     calendar.RemoteSource
	Exporter   *metrics.Exporter
	Telegram   *telegram.Notifier
	WebhookURL string
}

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	engine     *scheduler.Engine
	tracker    *habit.Tracker
	aggregator *calendar.Aggregator
	remote     calendar.RemoteSource
	exporter   *metrics.Exporter
	telegram   *telegram.Notifier
	webhookURL string
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, deps *Dependencies) *APIV1Service {
	return &APIV1Service{
		Profile:    profile,
		Store:      store,
		engine:     deps.Engine,
		tracker:    deps.Tracker,
		aggregator: deps.Aggregator,
		remote:     deps.Remote,
		exporter:   deps.Exporter,
		telegram:   deps.Telegram,
		webhookURL: deps.WebhookURL,
	}
}

// RegisterRoutes attaches every API route to the echo server.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.POST("/schedule/recommend", s.RecommendStudyTimes)
	g.POST("/schedule/suggest", s.SuggestSessions)

	g.GET("/calendar/events", s.ListCalendarEvents)
	g.POST("/calendar/events", s.CreateCalendarEvent)

	g.POST("/sessions", s.CreateSession)
	g.PUT("/sessions/:uid/complete", s.CompleteSession)
	g.DELETE("/sessions/:uid", s.DeleteSession)

	g.GET("/users/:id/sessions", s.ListSessions)
	g.GET("/users/:id/habit-progress", s.GetHabitProgress)
	g.GET("/users/:id/weekly-progress", s.GetWeeklyProgress)
	g.GET("/users/:id/stats", s.GetUserStats)
	g.GET("/users/:id/preferences", s.GetPreferences)
	g.PUT("/users/:id/preferences", s.UpdatePreferences)
}
