// Package feed serves a user's upcoming study sessions as an Atom feed so
// they can subscribe from any calendar or reader app.
package feed

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"

	"github.com/studystreak/studystreak/internal/profile"
	"github.com/studystreak/studystreak/store"
)

type FeedService struct {
	Profile *profile.Profile
	Store   *store.Store

	markdown goldmark.Markdown
}

func NewFeedService(profile *profile.Profile, store *store.Store) *FeedService {
	return &FeedService{
		Profile:  profile,
		Store:    store,
		markdown: goldmark.New(),
	}
}

// RegisterRoutes attaches the feed route to the echo server.
func (s *FeedService) RegisterRoutes(e *echo.Echo) {
	e.GET("/u/:id/sessions.atom", s.UpcomingSessionsFeed)
}

// UpcomingSessionsFeed renders the user's not-yet-started sessions as Atom
// entries, soonest first.
func (s *FeedService) UpcomingSessionsFeed(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	userID := int32(id)

	now := time.Now()
	startAfter := now.Unix()
	sessions, err := s.Store.ListStudySessions(c.Request().Context(), &store.FindStudySession{
		UserID:       &userID,
		StartTsAfter: &startAfter,
	})
	if err != nil {
		slog.Error("failed to list sessions for feed", slog.Any("err", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load sessions")
	}

	baseURL := s.Profile.InstanceURL
	atomFeed := &feeds.Feed{
		Title:   "Upcoming study sessions",
		Link:    &feeds.Link{Href: baseURL + "/u/" + c.Param("id") + "/sessions.atom"},
		Created: now,
	}

	for _, session := range sessions {
		start := time.Unix(session.StartTs, 0)
		atomFeed.Items = append(atomFeed.Items, &feeds.Item{
			Id:          session.UID,
			Title:       session.Title,
			Description: s.renderDescription(session),
			Link:        &feeds.Link{Href: baseURL + "/sessions/" + session.UID},
			Created:     start,
		})
	}

	atom, err := atomFeed.ToAtom()
	if err != nil {
		slog.Error("failed to render atom feed", slog.Any("err", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render feed")
	}
	return c.Blob(http.StatusOK, "application/atom+xml", []byte(atom))
}

// renderDescription converts the session's markdown description to HTML.
// Render failures fall back to the raw text.
func (s *FeedService) renderDescription(session *store.StudySession) string {
	if session.Description == "" {
		return session.Subject
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(session.Description), &buf); err != nil {
		return session.Description
	}
	return buf.String()
}
