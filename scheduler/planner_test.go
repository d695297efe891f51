package scheduler

import (
	"fmt"
	"testing"
	"time"
)

func TestClassifyWork(t *testing.T) {
	tests := []struct {
		description string
		wantType    string
		wantSubject string
		wantMinutes int
	}{
		{"Math pset due Friday", TypeProblemSet, SubjectMathematics, 180},
		{"study for biology final exam", TypeExamPrep, SubjectScience, 240},
		// "essay" matches the type rules and the english subject rule before
		// "history" is ever consulted.
		{"write history essay on the cold war", TypeProjectWork, SubjectEnglish, 200},
		{"catch up on social studies reading", TypeReading, SubjectHistory, 90},
		{"read chapter 5 of the physics textbook", TypeReading, SubjectScience, 90},
		{"debug the graph algorithm", TypeCoding, SubjectGeneral, 150},
		{"programming practice", TypeCoding, SubjectCS, 150},
		{"catch up on statistics homework", TypeProblemSet, SubjectMathematics, 180},
		{"just study", TypeGeneral, SubjectGeneral, 120},
		{"", TypeGeneral, SubjectGeneral, 120},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			item := ClassifyWork(tt.description)
			if item.StudyType != tt.wantType {
				t.Errorf("type = %q, want %q", item.StudyType, tt.wantType)
			}
			if item.Subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", item.Subject, tt.wantSubject)
			}
			if item.TotalDurationMinutes != tt.wantMinutes {
				t.Errorf("minutes = %d, want %d", item.TotalDurationMinutes, tt.wantMinutes)
			}
		})
	}

	t.Run("FirstTypeRuleWins", func(t *testing.T) {
		// Both "pset" and "exam" appear; the problem-set rule is checked first.
		item := ClassifyWork("finish the exam review pset")
		if item.StudyType != TypeProblemSet {
			t.Errorf("type = %q, want %q", item.StudyType, TypeProblemSet)
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		item := ClassifyWork("CALCULUS MIDTERM")
		if item.StudyType != TypeExamPrep || item.Subject != SubjectMathematics {
			t.Errorf("got %q/%q, want %q/%q", item.StudyType, item.Subject, TypeExamPrep, SubjectMathematics)
		}
	})
}

func TestSuggestSessionsSingle(t *testing.T) {
	engine := newTestEngine(t, monday)

	sessions := engine.SuggestSessions("read history chapter 3", Preferences{})
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session for short work, got %d", len(sessions))
	}

	session := sessions[0]
	if session.Title != "Reading & Notes - History" {
		t.Errorf("title = %q", session.Title)
	}
	if session.Description != "Study session for: read history chapter 3" {
		t.Errorf("description = %q", session.Description)
	}
	wantStart := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	if !session.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", session.Start, wantStart)
	}
	if !session.End.Equal(wantStart.Add(90 * time.Minute)) {
		t.Errorf("end = %v, want %v", session.End, wantStart.Add(90*time.Minute))
	}
	if session.DurationMinutes != 90 {
		t.Errorf("duration = %d, want 90", session.DurationMinutes)
	}
	if !almostEqual(session.ConfidenceScore, 0.9) {
		t.Errorf("confidence = %v, want 0.9", session.ConfidenceScore)
	}
}

func TestSuggestSessionsSplit(t *testing.T) {
	engine := newTestEngine(t, monday)

	t.Run("ExamSplitsIntoTwo", func(t *testing.T) {
		sessions := engine.SuggestSessions("physics exam next week", Preferences{})
		if len(sessions) != 2 {
			t.Fatalf("expected 240 minutes to split into 2 sessions, got %d", len(sessions))
		}

		for i, session := range sessions {
			wantTitle := fmt.Sprintf("Exam Preparation - Science (Part %d)", i+1)
			if session.Title != wantTitle {
				t.Errorf("session %d title = %q, want %q", i, session.Title, wantTitle)
			}
			if session.DurationMinutes != 120 {
				t.Errorf("session %d duration = %d, want 120", i, session.DurationMinutes)
			}
			if !almostEqual(session.ConfidenceScore, 0.8) {
				t.Errorf("session %d confidence = %v, want 0.8", i, session.ConfidenceScore)
			}
		}

		// Consecutive days rotating through the preferred hours.
		first, second := sessions[0], sessions[1]
		if !first.Start.Equal(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)) {
			t.Errorf("first start = %v", first.Start)
		}
		if !second.Start.Equal(time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC)) {
			t.Errorf("second start = %v", second.Start)
		}
	})

	t.Run("ProjectSplitsIntoMinimumTwo", func(t *testing.T) {
		// 200 minutes is above the threshold but yields only one full split
		// session; the plan still carries the two-session minimum.
		sessions := engine.SuggestSessions("history project", Preferences{})
		if len(sessions) != 2 {
			t.Fatalf("expected minimum of 2 sessions, got %d", len(sessions))
		}
	})

	t.Run("ProblemSetStaysSingle", func(t *testing.T) {
		// 180 minutes sits exactly on the threshold and is not split.
		sessions := engine.SuggestSessions("algebra homework", Preferences{})
		if len(sessions) != 1 {
			t.Fatalf("expected single session at the threshold, got %d", len(sessions))
		}
		if sessions[0].Title != "Problem Set - Mathematics" {
			t.Errorf("title = %q", sessions[0].Title)
		}
		if sessions[0].DurationMinutes != 180 {
			t.Errorf("duration = %d, want 180", sessions[0].DurationMinutes)
		}
	})

	t.Run("CustomHoursPlaceSessions", func(t *testing.T) {
		prefs := Preferences{PreferredHours: []int{20}}
		sessions := engine.SuggestSessions("chemistry midterm", Preferences{PreferredHours: prefs.PreferredHours})
		if len(sessions) != 2 {
			t.Fatalf("expected 2 sessions, got %d", len(sessions))
		}
		for i, session := range sessions {
			if session.Start.Hour() != 20 {
				t.Errorf("session %d at hour %d, want 20", i, session.Start.Hour())
			}
			wantDay := monday.AddDate(0, 0, i)
			if session.Start.Day() != wantDay.Day() {
				t.Errorf("session %d on day %d, want %d", i, session.Start.Day(), wantDay.Day())
			}
		}
	})
}
