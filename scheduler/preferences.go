package scheduler

// Preferences captures a user's scheduling preferences as they cross the JSON
// boundary. Absent fields fall back to the engine defaults at use time; the
// stored document keeps only what the user actually set.
type Preferences struct {
	// PreferredHours are the start hours (0-23) candidate slots are placed at.
	PreferredHours []int `json:"preferred_hours,omitempty"`
	// PreferredWeekdays are the weekdays slots may land on, Monday = 0
	// through Sunday = 6.
	PreferredWeekdays []int `json:"preferred_weekdays,omitempty"`
	// Weights override the time-of-day bucket scores when present.
	Weights *TimeOfDayWeights `json:"time_of_day_weights,omitempty"`
	// Subjects drive the weekday subject rotation.
	Subjects []string `json:"subjects,omitempty"`
	// FeedURLs are the user's subscription feeds consulted for busy times.
	FeedURLs []string `json:"subscription_feed_urls,omitempty"`
}

// MergePreferences lays override on top of base field by field: any field the
// override supplies replaces the stored one wholesale. Fields the override
// leaves empty keep the base value.
func MergePreferences(base, override Preferences) Preferences {
	merged := base
	if len(override.PreferredHours) > 0 {
		merged.PreferredHours = override.PreferredHours
	}
	if len(override.PreferredWeekdays) > 0 {
		merged.PreferredWeekdays = override.PreferredWeekdays
	}
	if override.Weights != nil {
		merged.Weights = override.Weights
	}
	if len(override.Subjects) > 0 {
		merged.Subjects = override.Subjects
	}
	if len(override.FeedURLs) > 0 {
		merged.FeedURLs = override.FeedURLs
	}
	return merged
}

// normalize fills absent preference fields with the engine defaults. The
// returned value shares the default slices, so callers must not mutate them.
func (e *Engine) normalize(p Preferences) Preferences {
	if len(p.PreferredHours) == 0 {
		p.PreferredHours = e.cfg.DefaultHours
	}
	if len(p.PreferredWeekdays) == 0 {
		p.PreferredWeekdays = e.cfg.DefaultWeekdays
	}
	if len(p.Subjects) == 0 {
		p.Subjects = e.cfg.RotationSubjects
	}
	return p
}
