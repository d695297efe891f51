// Package store provides database access to the session log and stored
// user preferences. A Store wraps a Driver so sqlite and postgres backends
// share one call surface.
package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Migrate applies the latest schema and, in demo mode, seeds example data.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.applyLatestSchema(ctx); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}
	if s.profile.Mode == "demo" {
		if err := s.seedDemoData(ctx); err != nil {
			return errors.Wrap(err, "failed to seed demo data")
		}
	}
	return nil
}

func (s *Store) CreateStudySession(ctx context.Context, create *StudySession) (*StudySession, error) {
	return s.driver.CreateStudySession(ctx, create)
}

func (s *Store) ListStudySessions(ctx context.Context, find *FindStudySession) ([]*StudySession, error) {
	return s.driver.ListStudySessions(ctx, find)
}

func (s *Store) GetStudySession(ctx context.Context, find *FindStudySession) (*StudySession, error) {
	list, err := s.driver.ListStudySessions(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateStudySession(ctx context.Context, update *UpdateStudySession) (*StudySession, error) {
	return s.driver.UpdateStudySession(ctx, update)
}

func (s *Store) DeleteStudySession(ctx context.Context, delete *DeleteStudySession) error {
	return s.driver.DeleteStudySession(ctx, delete)
}

func (s *Store) UpsertUserPreferences(ctx context.Context, upsert *UpsertUserPreferences) (*UserPreferences, error) {
	return s.driver.UpsertUserPreferences(ctx, upsert)
}

func (s *Store) GetUserPreferences(ctx context.Context, find *FindUserPreferences) (*UserPreferences, error) {
	return s.driver.GetUserPreferences(ctx, find)
}
