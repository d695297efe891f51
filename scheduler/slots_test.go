package scheduler

import (
	"math"
	"testing"
	"time"
)

// monday is a fixed Monday morning used to pin the engine clock.
var monday = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, now time.Time, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return now })}, opts...)
	return NewEngine(DefaultConfig(), opts...)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGenerateCandidateSlots(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		engine := newTestEngine(t, monday)
		slots := engine.GenerateCandidateSlots(Preferences{}, 120, 7)

		// Mon-Fri within the week, three hours each.
		if len(slots) != 15 {
			t.Fatalf("expected 15 slots, got %d", len(slots))
		}
		first := slots[0]
		wantStart := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
		if !first.Start.Equal(wantStart) {
			t.Errorf("first slot start = %v, want %v", first.Start, wantStart)
		}
		if !first.End.Equal(wantStart.Add(2 * time.Hour)) {
			t.Errorf("first slot end = %v, want %v", first.End, wantStart.Add(2*time.Hour))
		}
		if first.DurationMinutes != 120 {
			t.Errorf("duration = %d, want 120", first.DurationMinutes)
		}
	})

	t.Run("SkipsWeekdaysOutsidePreference", func(t *testing.T) {
		engine := newTestEngine(t, monday)
		prefs := Preferences{
			PreferredHours:    []int{10},
			PreferredWeekdays: []int{5, 6}, // Saturday, Sunday
		}
		slots := engine.GenerateCandidateSlots(prefs, 60, 7)

		if len(slots) != 2 {
			t.Fatalf("expected 2 weekend slots, got %d", len(slots))
		}
		for _, slot := range slots {
			if wd := slot.Start.Weekday(); wd != time.Saturday && wd != time.Sunday {
				t.Errorf("slot on %v, want weekend only", wd)
			}
		}
	})

	t.Run("SkipsPastHoursOnFirstDay", func(t *testing.T) {
		lateMorning := time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC)
		engine := newTestEngine(t, lateMorning)
		slots := engine.GenerateCandidateSlots(Preferences{}, 120, 7)

		// The 09:00 slot on day zero is already in the past.
		if len(slots) != 14 {
			t.Fatalf("expected 14 slots, got %d", len(slots))
		}
		for _, slot := range slots {
			if slot.Start.Before(lateMorning) {
				t.Errorf("slot %v starts before now", slot.Start)
			}
		}
	})

	t.Run("StaysWithinHorizon", func(t *testing.T) {
		engine := newTestEngine(t, monday)
		horizonEnd := monday.AddDate(0, 0, 14)
		slots := engine.GenerateCandidateSlots(Preferences{}, 120, 14)

		for _, slot := range slots {
			if slot.Start.Before(monday) || !slot.Start.Before(horizonEnd) {
				t.Errorf("slot %v outside [%v, %v)", slot.Start, monday, horizonEnd)
			}
		}
	})
}

func TestFilterConflicts(t *testing.T) {
	slot := func(hour int) CandidateSlot {
		start := time.Date(2026, 1, 5, hour, 0, 0, 0, time.UTC)
		return CandidateSlot{Start: start, End: start.Add(2 * time.Hour), DurationMinutes: 120}
	}
	busy := func(startHour, startMin, endHour, endMin int) BusyInterval {
		return BusyInterval{
			Start:  time.Date(2026, 1, 5, startHour, startMin, 0, 0, time.UTC),
			End:    time.Date(2026, 1, 5, endHour, endMin, 0, 0, time.UTC),
			Source: SourceCalendarAPI,
		}
	}

	t.Run("DropsOverlapping", func(t *testing.T) {
		free := FilterConflicts([]CandidateSlot{slot(9), slot(14), slot(19)}, []BusyInterval{busy(15, 0, 15, 30)})
		if len(free) != 2 {
			t.Fatalf("expected 2 free slots, got %d", len(free))
		}
		for _, s := range free {
			if s.Start.Hour() == 14 {
				t.Error("14:00 slot overlaps 15:00-15:30 busy interval, should be dropped")
			}
		}
	})

	t.Run("TouchingBoundariesDoNotConflict", func(t *testing.T) {
		// Busy ends exactly when the slot starts, and another begins exactly
		// when the slot ends.
		intervals := []BusyInterval{busy(7, 0, 9, 0), busy(11, 0, 12, 0)}
		free := FilterConflicts([]CandidateSlot{slot(9)}, intervals)
		if len(free) != 1 {
			t.Fatalf("expected back-to-back slot to survive, got %d slots", len(free))
		}
	})

	t.Run("OneMinuteOverlapConflicts", func(t *testing.T) {
		free := FilterConflicts([]CandidateSlot{slot(9)}, []BusyInterval{busy(10, 59, 11, 30)})
		if len(free) != 0 {
			t.Fatal("expected slot overlapping by one minute to be dropped")
		}
	})

	t.Run("NoBusyKeepsAll", func(t *testing.T) {
		free := FilterConflicts([]CandidateSlot{slot(9), slot(14)}, nil)
		if len(free) != 2 {
			t.Fatalf("expected all slots kept, got %d", len(free))
		}
	})
}

func TestConfidenceScores(t *testing.T) {
	engine := newTestEngine(t, monday)

	tests := []struct {
		name string
		hour int
		want float64
	}{
		{"MorningSlot", 9, 1.0},  // 0.8 + 0.2, capped scale
		{"MiddaySlot", 14, 0.8},  // 0.6 + 0.2
		{"AfternoonSlot", 15, 0.9}, // 0.7 + 0.2
		{"EveningSlot", 19, 0.7}, // 0.5 + 0.2
		{"LateNightSlot", 23, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := Preferences{PreferredHours: []int{tt.hour}}
			slots := engine.GenerateCandidateSlots(prefs, 120, 1)
			if len(slots) != 1 {
				t.Fatalf("expected 1 slot, got %d", len(slots))
			}
			scored := engine.ScoreSlots(slots, prefs)
			if !almostEqual(scored[0].ConfidenceScore, tt.want) {
				t.Errorf("score = %v, want %v", scored[0].ConfidenceScore, tt.want)
			}
		})
	}

	t.Run("CustomWeights", func(t *testing.T) {
		prefs := Preferences{
			PreferredHours: []int{9},
			Weights:        &TimeOfDayWeights{Morning: 0.3, Midday: 0.3, Afternoon: 0.3, Evening: 0.3},
		}
		slots := engine.GenerateCandidateSlots(prefs, 120, 1)
		scored := engine.ScoreSlots(slots, prefs)
		if !almostEqual(scored[0].ConfidenceScore, 0.5) {
			t.Errorf("score = %v, want 0.5", scored[0].ConfidenceScore)
		}
	})

	t.Run("ScoreNeverExceedsOne", func(t *testing.T) {
		prefs := Preferences{
			PreferredHours: []int{9},
			Weights:        &TimeOfDayWeights{Morning: 0.95, Midday: 0.95, Afternoon: 0.95, Evening: 0.95},
		}
		slots := engine.GenerateCandidateSlots(prefs, 120, 1)
		scored := engine.ScoreSlots(slots, prefs)
		if scored[0].ConfidenceScore > 1.0 {
			t.Errorf("score %v exceeds 1.0", scored[0].ConfidenceScore)
		}
	})
}

func TestSubjectRotation(t *testing.T) {
	engine := newTestEngine(t, monday)

	t.Run("DefaultRotation", func(t *testing.T) {
		slots := engine.GenerateCandidateSlots(Preferences{PreferredHours: []int{9}}, 120, 5)
		scored := engine.ScoreSlots(slots, Preferences{PreferredHours: []int{9}})

		// Monday through Friday against the four stock subjects.
		want := []string{"General Study", "Math", "Science", "Literature", "General Study"}
		if len(scored) != len(want) {
			t.Fatalf("expected %d slots, got %d", len(want), len(scored))
		}
		for i, subject := range want {
			if scored[i].SuggestedSubject != subject {
				t.Errorf("day %d subject = %q, want %q", i, scored[i].SuggestedSubject, subject)
			}
		}
	})

	t.Run("UserSubjects", func(t *testing.T) {
		prefs := Preferences{PreferredHours: []int{9}, Subjects: []string{"Linear Algebra"}}
		slots := engine.GenerateCandidateSlots(prefs, 120, 5)
		scored := engine.ScoreSlots(slots, prefs)
		for _, s := range scored {
			if s.SuggestedSubject != "Linear Algebra" {
				t.Errorf("subject = %q, want Linear Algebra", s.SuggestedSubject)
			}
		}
	})
}

func TestRank(t *testing.T) {
	t.Run("OrdersByScoreStable", func(t *testing.T) {
		engine := newTestEngine(t, monday)
		prefs := Preferences{PreferredHours: []int{9, 19}}

		ranked := engine.FindOptimalStudyTimes(prefs, nil, 120, 7)
		if len(ranked) != 10 {
			t.Fatalf("expected 10 ranked slots, got %d", len(ranked))
		}
		// Five morning slots outrank five evening slots; ties stay in day
		// order.
		for i := 0; i < 5; i++ {
			if ranked[i].Start.Hour() != 9 {
				t.Errorf("rank %d is %02d:00, want 09:00", i, ranked[i].Start.Hour())
			}
		}
		for i := 1; i < 5; i++ {
			if !ranked[i-1].Start.Before(ranked[i].Start) {
				t.Errorf("equal-score slots out of day order at rank %d", i)
			}
		}
		for i := 1; i < len(ranked); i++ {
			if ranked[i].ConfidenceScore > ranked[i-1].ConfidenceScore {
				t.Errorf("scores not descending at rank %d", i)
			}
		}
	})

	t.Run("CapsResultCount", func(t *testing.T) {
		engine := newTestEngine(t, monday)
		// 15 candidates, only 10 survive ranking.
		ranked := engine.FindOptimalStudyTimes(Preferences{}, nil, 120, 7)
		if len(ranked) > 10 {
			t.Fatalf("expected at most 10 slots, got %d", len(ranked))
		}
	})

	t.Run("CustomMaxResults", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxResults = 3
		engine := NewEngine(cfg, WithClock(func() time.Time { return monday }))
		ranked := engine.FindOptimalStudyTimes(Preferences{}, nil, 120, 7)
		if len(ranked) != 3 {
			t.Fatalf("expected 3 slots, got %d", len(ranked))
		}
	})
}

func TestFindOptimalStudyTimes(t *testing.T) {
	engine := newTestEngine(t, monday)

	t.Run("BusyIntervalsFromBothSourcesBlock", func(t *testing.T) {
		busy := []BusyInterval{
			{
				Start:  time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
				End:    time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
				Source: SourceCalendarAPI,
			},
			{
				Start:  time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC),
				End:    time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC),
				Source: SourceSubscriptionFeed,
			},
		}
		ranked := engine.FindOptimalStudyTimes(Preferences{}, busy, 120, 7)
		for _, slot := range ranked {
			if slot.Start.Equal(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)) {
				t.Error("Monday 09:00 conflicts with a calendar event, should be dropped")
			}
			if slot.Start.Equal(time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC)) {
				t.Error("Tuesday 14:00 conflicts with a feed event, should be dropped")
			}
		}
	})

	t.Run("FullyBookedReturnsEmpty", func(t *testing.T) {
		busy := []BusyInterval{{
			Start:  monday,
			End:    monday.AddDate(0, 0, 7),
			Source: SourceCalendarAPI,
		}}
		ranked := engine.FindOptimalStudyTimes(Preferences{}, busy, 120, 7)
		if len(ranked) != 0 {
			t.Fatalf("expected no slots in a fully booked week, got %d", len(ranked))
		}
	})

	t.Run("ZeroArgumentsUseDefaults", func(t *testing.T) {
		ranked := engine.FindOptimalStudyTimes(Preferences{}, nil, 0, 0)
		if len(ranked) == 0 {
			t.Fatal("expected default horizon and duration to produce slots")
		}
		for _, slot := range ranked {
			if slot.DurationMinutes != 120 {
				t.Errorf("duration = %d, want default 120", slot.DurationMinutes)
			}
		}
	})

	t.Run("WindowBounds", func(t *testing.T) {
		ranked := engine.FindOptimalStudyTimes(Preferences{}, nil, 120, 3)
		end := monday.AddDate(0, 0, 3)
		for _, slot := range ranked {
			if slot.Start.Before(monday) || !slot.Start.Before(end) {
				t.Errorf("slot %v outside recommendation window", slot.Start)
			}
		}
	})
}
