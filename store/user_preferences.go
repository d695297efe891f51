package store

// UserPreferences holds a user's stored scheduling preferences as a JSON
// document. Request-level preferences shallow-merge over this at call time.
type UserPreferences struct {
	UserID      int32
	Preferences string
	CreatedTs   int64
	UpdatedTs   int64
}

// FindUserPreferences specifies the conditions for finding user preferences.
type FindUserPreferences struct {
	UserID *int32
}

// UpsertUserPreferences specifies the data for upserting user preferences.
type UpsertUserPreferences struct {
	UserID      int32
	Preferences string
}
