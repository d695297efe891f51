package habit

import "time"

// LogEntry is the minimal view of a stored session the statistics need.
type LogEntry struct {
	CreatedAt time.Time
	Completed bool
}

// Stats summarizes a user's session history.
type Stats struct {
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	CompletionRate    float64 `json:"completion_rate"`
	ThisWeekSessions  int     `json:"this_week_sessions"`
}

// WeeklyBucket is one week of session counts.
type WeeklyBucket struct {
	Week              string  `json:"week"`
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	CompletionRate    float64 `json:"completion_rate"`
}

// CalculateStats derives totals, the completion rate and the trailing-week
// count from the session log. An empty log yields a zero completion rate.
func CalculateStats(entries []LogEntry, now time.Time) Stats {
	weekAgo := now.AddDate(0, 0, -7)

	stats := Stats{TotalSessions: len(entries)}
	for _, entry := range entries {
		if entry.Completed {
			stats.CompletedSessions++
		}
		if !entry.CreatedAt.Before(weekAgo) {
			stats.ThisWeekSessions++
		}
	}
	if stats.TotalSessions > 0 {
		stats.CompletionRate = float64(stats.CompletedSessions) / float64(stats.TotalSessions) * 100
	}
	return stats
}

// WeeklyProgress buckets the session log into the trailing weeks and returns
// them oldest first. Week offset i covers [now-(i+1) weeks, start+7d); the
// bucket label is the window's start date.
func WeeklyProgress(entries []LogEntry, now time.Time, weeks int) []WeeklyBucket {
	buckets := make([]WeeklyBucket, 0, weeks)
	for offset := 0; offset < weeks; offset++ {
		weekStart := now.AddDate(0, 0, -7*(offset+1))
		weekEnd := weekStart.AddDate(0, 0, 7)

		bucket := WeeklyBucket{Week: weekStart.Format("2006-01-02")}
		for _, entry := range entries {
			if entry.CreatedAt.Before(weekStart) || !entry.CreatedAt.Before(weekEnd) {
				continue
			}
			bucket.TotalSessions++
			if entry.Completed {
				bucket.CompletedSessions++
			}
		}
		if bucket.TotalSessions > 0 {
			bucket.CompletionRate = float64(bucket.CompletedSessions) / float64(bucket.TotalSessions) * 100
		}
		buckets = append(buckets, bucket)
	}

	// Reverse into chronological order.
	for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	}
	return buckets
}
