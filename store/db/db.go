// Package db handles database driver creation based on profile settings.
package db

import (
	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/internal/profile"
	"github.com/studystreak/studystreak/store"
	"github.com/studystreak/studystreak/store/db/postgres"
	"github.com/studystreak/studystreak/store/db/sqlite"
)

// NewDBDriver creates a new DB driver based on the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "sqlite":
		return sqlite.NewDB(profile)
	case "postgres":
		return postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q", profile.Driver)
	}
}
