package scheduler

import (
	"slices"
	"sort"
	"time"
)

// Engine computes ranked study-slot recommendations.
type Engine struct {
	cfg Config
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine. Zero config fields fall back to the defaults,
// so callers typically start from DefaultConfig and override what they need.
func NewEngine(cfg Config, opts ...Option) *Engine {
	def := DefaultConfig()
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = def.HorizonDays
	}
	if cfg.SessionMinutes <= 0 {
		cfg.SessionMinutes = def.SessionMinutes
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.PreferredDayBonus == 0 {
		cfg.PreferredDayBonus = def.PreferredDayBonus
	}
	if cfg.Weights == (TimeOfDayWeights{}) {
		cfg.Weights = def.Weights
	}
	if len(cfg.DefaultHours) == 0 {
		cfg.DefaultHours = def.DefaultHours
	}
	if len(cfg.DefaultWeekdays) == 0 {
		cfg.DefaultWeekdays = def.DefaultWeekdays
	}
	if len(cfg.RotationSubjects) == 0 {
		cfg.RotationSubjects = def.RotationSubjects
	}
	if cfg.SplitThresholdMinutes <= 0 {
		cfg.SplitThresholdMinutes = def.SplitThresholdMinutes
	}
	if cfg.SplitSessionMinutes <= 0 {
		cfg.SplitSessionMinutes = def.SplitSessionMinutes
	}

	e := &Engine{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's resolved configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Now returns the engine's current time. The recommendation window starts
// here; handlers use it so the aggregation window matches slot generation.
func (e *Engine) Now() time.Time {
	return e.now()
}

// FindOptimalStudyTimes runs the full pipeline: generate candidate slots over
// the horizon, drop the ones colliding with busy intervals, score and rank
// the rest. Non-positive durationMinutes or horizonDays fall back to the
// configured defaults.
func (e *Engine) FindOptimalStudyTimes(prefs Preferences, busy []BusyInterval, durationMinutes, horizonDays int) []ScoredSlot {
	if durationMinutes <= 0 {
		durationMinutes = e.cfg.SessionMinutes
	}
	if horizonDays <= 0 {
		horizonDays = e.cfg.HorizonDays
	}

	candidates := e.GenerateCandidateSlots(prefs, durationMinutes, horizonDays)
	free := FilterConflicts(candidates, busy)
	return e.Rank(e.ScoreSlots(free, prefs))
}

// GenerateCandidateSlots enumerates one slot per preferred hour on every
// preferred weekday within [now, now+horizonDays). Slots that would start in
// the past are skipped.
func (e *Engine) GenerateCandidateSlots(prefs Preferences, durationMinutes, horizonDays int) []CandidateSlot {
	prefs = e.normalize(prefs)
	now := e.now()
	duration := time.Duration(durationMinutes) * time.Minute

	var candidates []CandidateSlot
	for offset := 0; offset < horizonDays; offset++ {
		day := now.AddDate(0, 0, offset)
		if !slices.Contains(prefs.PreferredWeekdays, weekdayIndex(day)) {
			continue
		}
		for _, hour := range prefs.PreferredHours {
			start := atHour(day, hour)
			if start.Before(now) {
				continue
			}
			candidates = append(candidates, CandidateSlot{
				Start:           start,
				End:             start.Add(duration),
				DurationMinutes: durationMinutes,
			})
		}
	}
	return candidates
}

// FilterConflicts drops every candidate that overlaps any busy interval.
func FilterConflicts(candidates []CandidateSlot, busy []BusyInterval) []CandidateSlot {
	free := make([]CandidateSlot, 0, len(candidates))
	for _, candidate := range candidates {
		conflicted := false
		for _, interval := range busy {
			if candidate.Overlaps(interval) {
				conflicted = true
				break
			}
		}
		if !conflicted {
			free = append(free, candidate)
		}
	}
	return free
}

// ScoreSlots annotates each slot with its confidence score and the
// weekday-rotated subject suggestion.
func (e *Engine) ScoreSlots(candidates []CandidateSlot, prefs Preferences) []ScoredSlot {
	prefs = e.normalize(prefs)
	scored := make([]ScoredSlot, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, ScoredSlot{
			CandidateSlot:    candidate,
			ConfidenceScore:  e.confidenceScore(candidate.Start, prefs),
			SuggestedSubject: rotateSubject(candidate.Start, prefs.Subjects),
		})
	}
	return scored
}

// confidenceScore is additive: the slot hour's bucket weight plus the
// preferred-day bonus, capped at 1.0. Generation already restricts slots to
// preferred weekdays, so the bonus applies to every surviving slot; the
// score stays additive anyway to keep the published scale.
func (e *Engine) confidenceScore(start time.Time, prefs Preferences) float64 {
	weights := e.cfg.Weights
	if prefs.Weights != nil {
		weights = *prefs.Weights
	}

	var score float64
	hour := start.Hour()
	switch {
	case hour >= 6 && hour <= 9:
		score += weights.Morning
	case hour >= 10 && hour <= 14:
		score += weights.Midday
	case hour >= 15 && hour <= 18:
		score += weights.Afternoon
	default:
		score += weights.Evening
	}

	if slices.Contains(prefs.PreferredWeekdays, weekdayIndex(start)) {
		score += e.cfg.PreferredDayBonus
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// rotateSubject picks subjects[weekday mod len] so every weekday maps to a
// stable subject suggestion.
func rotateSubject(start time.Time, subjects []string) string {
	if len(subjects) == 0 {
		return ""
	}
	return subjects[weekdayIndex(start)%len(subjects)]
}

// Rank orders slots by confidence, highest first, and cuts the list at the
// configured maximum. The sort is stable so equal scores keep generation
// order: earlier day first, then earlier hour.
func (e *Engine) Rank(scored []ScoredSlot) []ScoredSlot {
	ranked := make([]ScoredSlot, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ConfidenceScore > ranked[j].ConfidenceScore
	})
	if len(ranked) > e.cfg.MaxResults {
		ranked = ranked[:e.cfg.MaxResults]
	}
	return ranked
}
