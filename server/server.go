// Package server wires the HTTP surface around the scheduling core.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/net/http2"
	"golang.org/x/oauth2"

	"github.com/studystreak/studystreak/calendar"
	"github.com/studystreak/studystreak/habit"
	"github.com/studystreak/studystreak/internal/metrics"
	"github.com/studystreak/studystreak/internal/profile"
	"github.com/studystreak/studystreak/plugin/telegram"
	apiv1 "github.com/studystreak/studystreak/server/router/api/v1"
	"github.com/studystreak/studystreak/server/router/feed"
	"github.com/studystreak/studystreak/scheduler"
	"github.com/studystreak/studystreak/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.Debug = true
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
	}

	e.Use(middleware.Recover())

	exporter := metrics.NewExporter()
	e.Use(requestMetrics(exporter))

	engine := scheduler.NewEngine(scheduler.DefaultConfig())
	tracker := habit.NewTracker(habit.DefaultConfig())

	var remote calendar.RemoteSource
	if profile.HasRemoteCalendar() {
		opts := []calendar.GoogleOption{
			calendar.WithCalendarID(profile.CalendarID),
			calendar.WithTimezone(profile.CalendarTimezone),
		}
		if profile.CalendarBaseURL != "" {
			opts = append(opts, calendar.WithBaseURL(profile.CalendarBaseURL))
		}
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: profile.CalendarToken})
		remote = calendar.NewGoogleClient(tokenSource, opts...)
	} else {
		slog.Info("no remote calendar token configured, running with subscription feeds only")
	}

	aggregator := calendar.NewAggregator(
		remote,
		calendar.NewHTTPFeedFetcher(nil),
		calendar.WithExporter(exporter),
	)

	var notifier *telegram.Notifier
	if profile.TelegramBotToken != "" {
		var err error
		notifier, err = telegram.NewNotifier(profile.TelegramBotToken, profile.TelegramChatID)
		if err != nil {
			// Milestone pushes are best-effort; a bad token only disables them.
			slog.Warn("failed to initialize telegram notifier", slog.Any("err", err))
			notifier = nil
		}
	}

	apiService := apiv1.NewAPIV1Service(profile, store, &apiv1.Dependencies{
		Engine:     engine,
		Tracker:    tracker,
		Aggregator: aggregator,
		Remote:     remote,
		Exporter:   exporter,
		Telegram:   notifier,
		WebhookURL: profile.WebhookURL,
	})
	apiService.RegisterRoutes(e)

	feedService := feed.NewFeedService(profile, store)
	feedService.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(exporter.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	return s, nil
}

func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	go func() {
		if err := s.echoServer.StartH2CServer(address, &http2.Server{}); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start echo server", slog.Any("err", err))
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.Any("err", err))
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", slog.Any("err", err))
	}

	slog.Info("server stopped properly")
}

// requestMetrics counts every handled request by route template and status.
func requestMetrics(exporter *metrics.Exporter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}
			exporter.RecordAPIRequest(c.Path(), status)
			return err
		}
	}
}
