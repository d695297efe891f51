package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// demoUserID is the user every demo-mode seed row belongs to.
const demoUserID int32 = 1

// seedDemoData inserts a small completed-session history for the demo user
// so the dashboard and habit endpoints have something to show. Seeding only
// happens when the demo user has no sessions yet.
func (s *Store) seedDemoData(ctx context.Context) error {
	userID := demoUserID
	existing, err := s.ListStudySessions(ctx, &FindStudySession{UserID: &userID})
	if err != nil {
		return errors.Wrap(err, "failed to check for existing demo sessions")
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	seeds := []struct {
		daysAgo   int
		subject   string
		studyType string
		completed bool
	}{
		{6, "Mathematics", "Problem Set", true},
		{5, "Computer Science", "Coding Practice", true},
		{4, "Science", "Reading & Notes", true},
		{3, "Mathematics", "Exam Preparation", true},
		{2, "History", "Reading & Notes", true},
		{1, "Computer Science", "Project Work", false},
	}

	for _, seed := range seeds {
		start := now.AddDate(0, 0, -seed.daysAgo)
		session := &StudySession{
			UID:             shortuuid.New(),
			UserID:          userID,
			Title:           seed.studyType + " - " + seed.subject,
			Description:     "Seeded demo session",
			Subject:         seed.subject,
			StudyType:       seed.studyType,
			StartTs:         start.Unix(),
			EndTs:           start.Add(2 * time.Hour).Unix(),
			DurationMinutes: 120,
			Completed:       seed.completed,
			CreatedTs:       start.Unix(),
		}
		if seed.completed {
			completedTs := start.Add(2 * time.Hour).Unix()
			session.CompletedTs = &completedTs
		}
		if _, err := s.CreateStudySession(ctx, session); err != nil {
			return errors.Wrap(err, "failed to insert demo session")
		}
	}
	return nil
}
