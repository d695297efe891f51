package scheduler

// TimeOfDayWeights holds the base confidence contribution per time-of-day
// bucket. Bucket boundaries: 06-09 morning, 10-14 midday, 15-18 afternoon,
// everything else evening.
type TimeOfDayWeights struct {
	Morning   float64 `json:"morning"`
	Midday    float64 `json:"midday"`
	Afternoon float64 `json:"afternoon"`
	Evening   float64 `json:"evening"`
}

// Config carries every tunable constant of the scheduling engine so tests
// and callers can override them without touching package globals.
type Config struct {
	// HorizonDays is the default lookahead window for slot generation.
	HorizonDays int
	// SessionMinutes is the default study-session length.
	SessionMinutes int
	// MaxResults bounds the ranked recommendation list.
	MaxResults int
	// Weights are the time-of-day bucket scores used when the request
	// preferences carry none.
	Weights TimeOfDayWeights
	// PreferredDayBonus is added to a slot's score when its weekday is one
	// of the user's preferred weekdays.
	PreferredDayBonus float64
	// DefaultHours are the slot start hours used when the user has none.
	DefaultHours []int
	// DefaultWeekdays are the preferred weekdays (Monday = 0) used when the
	// user has none.
	DefaultWeekdays []int
	// RotationSubjects is the weekday-rotated subject list used when the
	// user has no subjects of their own.
	RotationSubjects []string
	// SplitThresholdMinutes is the work duration above which the planner
	// fans a task out into multiple sessions.
	SplitThresholdMinutes int
	// SplitSessionMinutes is the length of each session in a split plan.
	SplitSessionMinutes int
}

// DefaultConfig returns the stock engine constants.
func DefaultConfig() Config {
	return Config{
		HorizonDays:       7,
		SessionMinutes:    120,
		MaxResults:        10,
		PreferredDayBonus: 0.2,
		Weights: TimeOfDayWeights{
			Morning:   0.8,
			Midday:    0.6,
			Afternoon: 0.7,
			Evening:   0.5,
		},
		DefaultHours:          []int{9, 14, 19},
		DefaultWeekdays:       []int{0, 1, 2, 3, 4},
		RotationSubjects:      []string{"General Study", "Math", "Science", "Literature"},
		SplitThresholdMinutes: 180,
		SplitSessionMinutes:   120,
	}
}
