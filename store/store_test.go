package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/stretchr/testify/require"

	"github.com/studystreak/studystreak/internal/profile"
	"github.com/studystreak/studystreak/store"
	"github.com/studystreak/studystreak/store/db/sqlite"
)

func newTestStore(t *testing.T, mode string) *store.Store {
	t.Helper()
	testProfile := &profile.Profile{
		Mode:   mode,
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "studystreak_test.db"),
	}

	driver, err := sqlite.NewDB(testProfile)
	require.NoError(t, err)

	testStore := store.New(driver, testProfile)
	require.NoError(t, testStore.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = testStore.Close()
	})
	return testStore
}

func TestStudySessionCRUD(t *testing.T) {
	ctx := context.Background()
	testStore := newTestStore(t, "dev")

	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	created, err := testStore.CreateStudySession(ctx, &store.StudySession{
		UID:             shortuuid.New(),
		UserID:          42,
		Title:           "Problem Set - Mathematics",
		Description:     "Study session for: calculus pset",
		Subject:         "Mathematics",
		StudyType:       "Problem Set",
		StartTs:         start.Unix(),
		EndTs:           start.Add(3 * time.Hour).Unix(),
		DurationMinutes: 180,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotZero(t, created.CreatedTs)
	require.False(t, created.Completed)

	userID := int32(42)
	list, err := testStore.ListStudySessions(ctx, &store.FindStudySession{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, created.UID, list[0].UID)

	otherUser := int32(7)
	list, err = testStore.ListStudySessions(ctx, &store.FindStudySession{UserID: &otherUser})
	require.NoError(t, err)
	require.Empty(t, list)

	completed := true
	completedTs := start.Add(3 * time.Hour).Unix()
	updated, err := testStore.UpdateStudySession(ctx, &store.UpdateStudySession{
		ID:          created.ID,
		Completed:   &completed,
		CompletedTs: &completedTs,
	})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedTs)
	require.Equal(t, completedTs, *updated.CompletedTs)

	err = testStore.DeleteStudySession(ctx, &store.DeleteStudySession{UID: created.UID, UserID: 42})
	require.NoError(t, err)

	list, err = testStore.ListStudySessions(ctx, &store.FindStudySession{UserID: &userID})
	require.NoError(t, err)
	require.Empty(t, list)

	err = testStore.DeleteStudySession(ctx, &store.DeleteStudySession{UID: created.UID, UserID: 42})
	require.Error(t, err, "deleting a missing session reports an error")
}

func TestListStudySessionsOrdering(t *testing.T) {
	ctx := context.Background()
	testStore := newTestStore(t, "dev")

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 2; i >= 0; i-- {
		createdAt := base.AddDate(0, 0, i)
		_, err := testStore.CreateStudySession(ctx, &store.StudySession{
			UID:       shortuuid.New(),
			UserID:    1,
			Title:     "Session",
			StartTs:   createdAt.Unix(),
			EndTs:     createdAt.Add(time.Hour).Unix(),
			CreatedTs: createdAt.Unix(),
		})
		require.NoError(t, err)
	}

	userID := int32(1)
	list, err := testStore.ListStudySessions(ctx, &store.FindStudySession{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		require.LessOrEqual(t, list[i-1].CreatedTs, list[i].CreatedTs,
			"sessions must come back ascending for the habit tracker")
	}
}

func TestUserPreferencesUpsert(t *testing.T) {
	ctx := context.Background()
	testStore := newTestStore(t, "dev")

	userID := int32(9)
	found, err := testStore.GetUserPreferences(ctx, &store.FindUserPreferences{UserID: &userID})
	require.NoError(t, err)
	require.Nil(t, found, "missing preferences return nil, not an error")

	prefs, err := testStore.UpsertUserPreferences(ctx, &store.UpsertUserPreferences{
		UserID:      userID,
		Preferences: `{"preferred_hours":[8,20]}`,
	})
	require.NoError(t, err)
	require.Equal(t, `{"preferred_hours":[8,20]}`, prefs.Preferences)

	prefs, err = testStore.UpsertUserPreferences(ctx, &store.UpsertUserPreferences{
		UserID:      userID,
		Preferences: `{"preferred_hours":[6]}`,
	})
	require.NoError(t, err)
	require.Equal(t, `{"preferred_hours":[6]}`, prefs.Preferences)

	found, err = testStore.GetUserPreferences(ctx, &store.FindUserPreferences{UserID: &userID})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, `{"preferred_hours":[6]}`, found.Preferences)
}

func TestDemoModeSeedsSessions(t *testing.T) {
	ctx := context.Background()
	testStore := newTestStore(t, "demo")

	userID := int32(1)
	list, err := testStore.ListStudySessions(ctx, &store.FindStudySession{UserID: &userID})
	require.NoError(t, err)
	require.NotEmpty(t, list, "demo mode seeds sessions for the demo user")

	// Migrate again: seeding must be idempotent.
	require.NoError(t, testStore.Migrate(ctx))
	again, err := testStore.ListStudySessions(ctx, &store.FindStudySession{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, again, len(list))
}
