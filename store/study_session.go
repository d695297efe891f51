package store

// StudySession is one planned or completed study session. The ascending
// per-user log of these rows is the completion history the habit tracker
// reads.
type StudySession struct {
	ID              int32
	UID             string
	UserID          int32
	Title           string
	Description     string
	Subject         string
	StudyType       string
	StartTs         int64
	EndTs           int64
	DurationMinutes int
	Location        string
	Notes           string
	Completed       bool
	CompletedTs     *int64
	CreatedTs       int64
	UpdatedTs       int64
}

// FindStudySession specifies the conditions for finding study sessions.
// Results are ordered by created_ts ascending so the habit tracker can walk
// them directly.
type FindStudySession struct {
	ID     *int32
	UID    *string
	UserID *int32
	// StartTsAfter keeps sessions with start_ts >= the given value.
	StartTsAfter *int64
	Completed    *bool
	Limit        *int
}

// UpdateStudySession specifies the fields to update. Nil fields are left
// untouched.
type UpdateStudySession struct {
	ID          int32
	Title       *string
	Description *string
	Notes       *string
	Completed   *bool
	CompletedTs *int64
}

// DeleteStudySession specifies the session to delete by UID.
type DeleteStudySession struct {
	UID    string
	UserID int32
}
