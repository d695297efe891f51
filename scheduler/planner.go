package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// Study types assigned by the work-description classifier.
const (
	TypeProblemSet  = "Problem Set"
	TypeExamPrep    = "Exam Preparation"
	TypeProjectWork = "Project Work"
	TypeReading     = "Reading & Notes"
	TypeCoding      = "Coding Practice"
	TypeGeneral     = "General Study"
)

// Subjects assigned by the classifier.
const (
	SubjectMathematics = "Mathematics"
	SubjectScience     = "Science"
	SubjectCS          = "Computer Science"
	SubjectEnglish     = "English/Literature"
	SubjectHistory     = "History"
	SubjectGeneral     = "General"
)

// Split plans carry a lower confidence than single-session plans.
const (
	multiSessionConfidence  = 0.8
	singleSessionConfidence = 0.9
)

// WorkItem is the classification of a free-text work description.
type WorkItem struct {
	StudyType            string `json:"study_type"`
	Subject              string `json:"subject"`
	TotalDurationMinutes int    `json:"total_duration_minutes"`
}

// PlannedSession is one placed entry of a study plan. Unlike recommendation,
// planning never consults calendar data; the user reconciles conflicts.
type PlannedSession struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Start           time.Time `json:"start_time"`
	End             time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Subject         string    `json:"subject"`
	StudyType       string    `json:"type"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// typeRules map keyword hits to a study type and its total duration.
// Evaluated top to bottom, first match wins: "calculus pset and exam" is a
// Problem Set.
var typeRules = []struct {
	keywords []string
	study    string
	minutes  int
}{
	{[]string{"pset", "problem set", "homework", "assignment"}, TypeProblemSet, 180},
	{[]string{"exam", "test", "midterm", "final"}, TypeExamPrep, 240},
	{[]string{"project", "paper", "essay", "report"}, TypeProjectWork, 200},
	{[]string{"read", "reading", "textbook", "chapter"}, TypeReading, 90},
	{[]string{"code", "programming", "debug", "algorithm"}, TypeCoding, 150},
}

// subjectRules map keyword hits to a subject. The pass is independent of
// typeRules; both run over the same lowercased text.
var subjectRules = []struct {
	keywords []string
	subject  string
}{
	{[]string{"math", "calculus", "algebra", "statistics"}, SubjectMathematics},
	{[]string{"physics", "chemistry", "biology", "science"}, SubjectScience},
	{[]string{"cs", "computer science", "programming", "code"}, SubjectCS},
	{[]string{"english", "literature", "writing", "essay"}, SubjectEnglish},
	{[]string{"history", "social studies", "politics"}, SubjectHistory},
}

// ClassifyWork classifies a free-text work description by case-insensitive
// substring matching. Unmatched descriptions land on General Study / General
// with the default duration.
func ClassifyWork(description string) WorkItem {
	text := strings.ToLower(description)

	item := WorkItem{
		StudyType:            TypeGeneral,
		Subject:              SubjectGeneral,
		TotalDurationMinutes: 120,
	}
	for _, rule := range typeRules {
		if containsAny(text, rule.keywords) {
			item.StudyType = rule.study
			item.TotalDurationMinutes = rule.minutes
			break
		}
	}
	for _, rule := range subjectRules {
		if containsAny(text, rule.keywords) {
			item.Subject = rule.subject
			break
		}
	}
	return item
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// SuggestSessions classifies the work description and fans it out into one
// or more planned sessions. Work longer than the split threshold becomes at
// least two spaced sessions on consecutive days, rotating through the
// preferred hours; everything else is a single session today at the first
// preferred hour.
func (e *Engine) SuggestSessions(description string, prefs Preferences) []PlannedSession {
	prefs = e.normalize(prefs)
	item := ClassifyWork(description)
	now := e.now()
	hours := prefs.PreferredHours
	planDescription := "Study session for: " + description

	if item.TotalDurationMinutes > e.cfg.SplitThresholdMinutes {
		count := item.TotalDurationMinutes / e.cfg.SplitSessionMinutes
		if count < 2 {
			count = 2
		}
		sessions := make([]PlannedSession, 0, count)
		for i := 0; i < count; i++ {
			start := atHour(now.AddDate(0, 0, i), hours[i%len(hours)])
			sessions = append(sessions, PlannedSession{
				Title:           fmt.Sprintf("%s - %s (Part %d)", item.StudyType, item.Subject, i+1),
				Description:     planDescription,
				Start:           start,
				End:             start.Add(time.Duration(e.cfg.SplitSessionMinutes) * time.Minute),
				DurationMinutes: e.cfg.SplitSessionMinutes,
				Subject:         item.Subject,
				StudyType:       item.StudyType,
				ConfidenceScore: multiSessionConfidence,
			})
		}
		return sessions
	}

	start := atHour(now, hours[0])
	return []PlannedSession{{
		Title:           fmt.Sprintf("%s - %s", item.StudyType, item.Subject),
		Description:     planDescription,
		Start:           start,
		End:             start.Add(time.Duration(item.TotalDurationMinutes) * time.Minute),
		DurationMinutes: item.TotalDurationMinutes,
		Subject:         item.Subject,
		StudyType:       item.StudyType,
		ConfidenceScore: singleSessionConfidence,
	}}
}
