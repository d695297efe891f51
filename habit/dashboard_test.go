package habit

import (
	"testing"
	"time"
)

var statsNow = time.Date(2026, 3, 30, 12, 0, 0, 0, time.UTC)

func TestCalculateStats(t *testing.T) {
	t.Run("EmptyLog", func(t *testing.T) {
		stats := CalculateStats(nil, statsNow)
		if stats.TotalSessions != 0 || stats.CompletionRate != 0 {
			t.Errorf("empty log stats = %+v, want zeroes", stats)
		}
	})

	t.Run("MixedLog", func(t *testing.T) {
		entries := []LogEntry{
			{CreatedAt: statsNow.AddDate(0, 0, -20), Completed: true},
			{CreatedAt: statsNow.AddDate(0, 0, -10), Completed: false},
			{CreatedAt: statsNow.AddDate(0, 0, -3), Completed: true},
			{CreatedAt: statsNow.AddDate(0, 0, -1), Completed: true},
		}
		stats := CalculateStats(entries, statsNow)
		if stats.TotalSessions != 4 {
			t.Errorf("total = %d, want 4", stats.TotalSessions)
		}
		if stats.CompletedSessions != 3 {
			t.Errorf("completed = %d, want 3", stats.CompletedSessions)
		}
		if stats.CompletionRate != 75 {
			t.Errorf("rate = %v, want 75", stats.CompletionRate)
		}
		if stats.ThisWeekSessions != 2 {
			t.Errorf("this week = %d, want 2", stats.ThisWeekSessions)
		}
	})
}

func TestWeeklyProgress(t *testing.T) {
	entries := []LogEntry{
		// Last week: two sessions, one completed.
		{CreatedAt: statsNow.AddDate(0, 0, -6), Completed: true},
		{CreatedAt: statsNow.AddDate(0, 0, -5), Completed: false},
		// Two weeks back: one completed session.
		{CreatedAt: statsNow.AddDate(0, 0, -10), Completed: true},
	}
	buckets := WeeklyProgress(entries, statsNow, 4)

	if len(buckets) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(buckets))
	}
	// Oldest first: the last bucket is the most recent week.
	latest := buckets[3]
	if latest.TotalSessions != 2 || latest.CompletedSessions != 1 {
		t.Errorf("latest week = %+v, want 2 total / 1 completed", latest)
	}
	if latest.CompletionRate != 50 {
		t.Errorf("latest rate = %v, want 50", latest.CompletionRate)
	}
	prior := buckets[2]
	if prior.TotalSessions != 1 || prior.CompletedSessions != 1 {
		t.Errorf("prior week = %+v, want 1 total / 1 completed", prior)
	}
	empty := buckets[0]
	if empty.TotalSessions != 0 || empty.CompletionRate != 0 {
		t.Errorf("empty week = %+v, want zeroes", empty)
	}
	wantLabel := statsNow.AddDate(0, 0, -28).Format("2006-01-02")
	if empty.Week != wantLabel {
		t.Errorf("oldest label = %q, want %q", empty.Week, wantLabel)
	}
}
