// Package habit derives streak and habit-formation progress from a user's
// session history. Everything here is recomputed from the authoritative log
// on each call; the package keeps no state of its own.
package habit

import "time"

// Config carries the habit-formation constants so tests can override them.
type Config struct {
	// FormationDays is the consecutive-day target that counts as a formed
	// habit.
	FormationDays int
	// OnTrackStreak is the minimum streak considered "on track".
	OnTrackStreak int
}

// DefaultConfig returns the stock formation constants: a 70-day target and
// a 5-day on-track threshold.
func DefaultConfig() Config {
	return Config{
		FormationDays: 70,
		OnTrackStreak: 5,
	}
}

// CompletionRecord is one entry of the ascending session log the tracker
// walks.
type CompletionRecord struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// Progress is the derived habit-formation state.
type Progress struct {
	CurrentStreak      int     `json:"current_streak"`
	DaysCompleted      int     `json:"days_completed"`
	DaysRemaining      int     `json:"days_remaining"`
	ProgressPercentage float64 `json:"progress_percentage"`
	IsOnTrack          bool    `json:"is_on_track"`
	MilestoneReached   bool    `json:"milestone_reached"`
}

// Tracker computes habit progress and milestone rewards.
type Tracker struct {
	cfg Config
}

// NewTracker creates a Tracker. Zero config fields fall back to defaults.
func NewTracker(cfg Config) *Tracker {
	def := DefaultConfig()
	if cfg.FormationDays <= 0 {
		cfg.FormationDays = def.FormationDays
	}
	if cfg.OnTrackStreak <= 0 {
		cfg.OnTrackStreak = def.OnTrackStreak
	}
	return &Tracker{cfg: cfg}
}

// TrackProgress walks the ascending record log and derives the current
// streak. Only completed records mutate the streak state: the day after the
// previous completed date extends the streak, a repeat of the same date
// leaves it unchanged, and any other date resets it to 1. Records with
// Completed false never move the previous-date pointer.
func (t *Tracker) TrackProgress(records []CompletionRecord) Progress {
	var streak int
	var lastDate time.Time
	var haveLast bool

	for _, record := range records {
		if !record.Completed {
			continue
		}
		date := dayOf(record.Date)
		switch {
		case !haveLast || date.Equal(lastDate.AddDate(0, 0, 1)):
			streak++
		case !date.Equal(lastDate):
			streak = 1
		}
		lastDate = date
		haveLast = true
	}

	daysCompleted := streak
	if daysCompleted > t.cfg.FormationDays {
		daysCompleted = t.cfg.FormationDays
	}
	daysRemaining := t.cfg.FormationDays - daysCompleted
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return Progress{
		CurrentStreak:      streak,
		DaysCompleted:      daysCompleted,
		DaysRemaining:      daysRemaining,
		ProgressPercentage: float64(daysCompleted) / float64(t.cfg.FormationDays) * 100,
		IsOnTrack:          streak >= t.cfg.OnTrackStreak,
		MilestoneReached:   daysCompleted >= t.cfg.FormationDays,
	}
}

// milestoneRules list the reward thresholds in ascending order. Every rule
// whose condition holds contributes its message.
var milestoneRules = []struct {
	qualifies func(Progress) bool
	message   string
}{
	{func(p Progress) bool { return p.CurrentStreak >= 7 }, "🔥 7-day streak! You're building momentum!"},
	{func(p Progress) bool { return p.CurrentStreak >= 21 }, "🌟 21-day streak! This is becoming a habit!"},
	{func(p Progress) bool { return p.CurrentStreak >= 30 }, "💪 30-day streak! You're unstoppable!"},
	{func(p Progress) bool { return p.DaysCompleted >= 50 }, "🎯 50 days! You're almost at the finish line!"},
	{func(p Progress) bool { return p.MilestoneReached }, "🏆 Congratulations! You've formed a lasting habit!"},
}

// MilestoneRewards returns the celebratory messages earned by the given
// progress, in ascending threshold order.
func (t *Tracker) MilestoneRewards(progress Progress) []string {
	rewards := []string{}
	for _, rule := range milestoneRules {
		if rule.qualifies(progress) {
			rewards = append(rewards, rule.message)
		}
	}
	return rewards
}

// dayOf truncates a timestamp to its calendar date.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
