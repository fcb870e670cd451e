package models

import "time"

// DayLayout is the calendar-day format used for streak arithmetic.
// All day comparisons are done in UTC to avoid off-by-one-day behavior
// near midnight; the API never exposes a timezone choice.
const DayLayout = "2006-01-02"

// StudyStreak tracks consecutive-calendar-day study activity for one user.
// One row per user, upserted on every check-in under a row lock.
type StudyStreak struct {
	UserID          uint      `gorm:"primaryKey" json:"user_id"`
	CurrentStreak   int       `json:"current_streak"`
	LongestStreak   int       `json:"longest_streak"`
	LastStudyDate   string    `gorm:"size:10" json:"last_study_date"`
	StreakStartDate string    `gorm:"size:10" json:"streak_start_date"`
	TotalStudyDays  int       `json:"total_study_days"`
	WeeklyGoal      int       `gorm:"default:5" json:"weekly_goal"`
	WeeklyProgress  int       `json:"weekly_progress"`
	MonthlyMinutes  int       `json:"monthly_minutes"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewStudyStreak builds the first streak row for a user who studied today.
func NewStudyStreak(userID uint, today string, minutes int) StudyStreak {
	if minutes < 0 {
		minutes = 0
	}
	return StudyStreak{
		UserID:          userID,
		CurrentStreak:   1,
		LongestStreak:   1,
		LastStudyDate:   today,
		StreakStartDate: today,
		TotalStudyDays:  1,
		WeeklyGoal:      5,
		WeeklyProgress:  1,
		MonthlyMinutes:  minutes,
	}
}

// Advance applies one check-in on the given calendar day and reports whether
// the row changed. The transition rules:
//
//	same day        -> streak fields untouched (minutes still accumulate)
//	exactly next day -> current streak +1
//	gap of >=2 days or a date anomaly -> streak resets to 1
//
// LongestStreak is kept at max(longest, current) on every path that touches
// the streak, and TotalStudyDays counts each distinct study day once.
func (s *StudyStreak) Advance(today string, minutes int) bool {
	if minutes < 0 {
		minutes = 0
	}
	if s.LastStudyDate == today {
		if minutes == 0 {
			return false
		}
		s.MonthlyMinutes += minutes
		return true
	}

	if !sameISOWeek(s.LastStudyDate, today) {
		s.WeeklyProgress = 0
	}
	if !sameMonth(s.LastStudyDate, today) {
		s.MonthlyMinutes = 0
	}

	if isNextDay(s.LastStudyDate, today) {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
		s.StreakStartDate = today
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.WeeklyProgress++
	s.MonthlyMinutes += minutes
	s.TotalStudyDays++
	s.LastStudyDate = today
	return true
}

func parseDay(day string) (time.Time, bool) {
	t, err := time.ParseInLocation(DayLayout, day, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// isNextDay reports whether cur is exactly the calendar day after prev.
func isNextDay(prev, cur string) bool {
	p, okP := parseDay(prev)
	c, okC := parseDay(cur)
	if !okP || !okC {
		return false
	}
	return c.Sub(p) == 24*time.Hour
}

func sameISOWeek(a, b string) bool {
	ta, okA := parseDay(a)
	tb, okB := parseDay(b)
	if !okA || !okB {
		return false
	}
	ya, wa := ta.ISOWeek()
	yb, wb := tb.ISOWeek()
	return ya == yb && wa == wb
}

func sameMonth(a, b string) bool {
	ta, okA := parseDay(a)
	tb, okB := parseDay(b)
	if !okA || !okB {
		return false
	}
	return ta.Year() == tb.Year() && ta.Month() == tb.Month()
}
