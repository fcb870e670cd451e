package models

import "testing"

func TestNewStudyStreak(t *testing.T) {
	s := NewStudyStreak(42, "2026-03-10", 30)
	if s.CurrentStreak != 1 || s.LongestStreak != 1 {
		t.Errorf("new streak = (%d, %d), want (1, 1)", s.CurrentStreak, s.LongestStreak)
	}
	if s.LastStudyDate != "2026-03-10" || s.StreakStartDate != "2026-03-10" {
		t.Errorf("dates = (%s, %s), want both 2026-03-10", s.LastStudyDate, s.StreakStartDate)
	}
	if s.TotalStudyDays != 1 || s.WeeklyProgress != 1 || s.MonthlyMinutes != 30 {
		t.Errorf("counters = (%d, %d, %d), want (1, 1, 30)",
			s.TotalStudyDays, s.WeeklyProgress, s.MonthlyMinutes)
	}
}

func TestAdvanceSameDay(t *testing.T) {
	s := NewStudyStreak(1, "2026-03-10", 30)

	if s.Advance("2026-03-10", 0) {
		t.Error("same day with no minutes must be a no-op")
	}
	if !s.Advance("2026-03-10", 15) {
		t.Error("same day with minutes must report a change")
	}
	if s.CurrentStreak != 1 || s.TotalStudyDays != 1 || s.WeeklyProgress != 1 {
		t.Errorf("same day touched streak counters: %+v", s)
	}
	if s.MonthlyMinutes != 45 {
		t.Errorf("MonthlyMinutes = %d, want 45", s.MonthlyMinutes)
	}
}

func TestAdvanceNextDay(t *testing.T) {
	s := NewStudyStreak(1, "2026-03-10", 10)
	if !s.Advance("2026-03-11", 20) {
		t.Fatal("next day must report a change")
	}
	if s.CurrentStreak != 2 || s.LongestStreak != 2 {
		t.Errorf("streak = (%d, %d), want (2, 2)", s.CurrentStreak, s.LongestStreak)
	}
	if s.TotalStudyDays != 2 || s.LastStudyDate != "2026-03-11" {
		t.Errorf("days = %d last = %s", s.TotalStudyDays, s.LastStudyDate)
	}
	if s.StreakStartDate != "2026-03-10" {
		t.Errorf("StreakStartDate = %s, want 2026-03-10", s.StreakStartDate)
	}
}

func TestAdvanceGapResets(t *testing.T) {
	s := NewStudyStreak(1, "2026-03-10", 0)
	s.Advance("2026-03-11", 0)
	s.Advance("2026-03-12", 0)
	if s.CurrentStreak != 3 {
		t.Fatalf("CurrentStreak = %d, want 3", s.CurrentStreak)
	}

	// Two day gap.
	s.Advance("2026-03-15", 0)
	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak after gap = %d, want 1", s.CurrentStreak)
	}
	if s.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", s.LongestStreak)
	}
	if s.StreakStartDate != "2026-03-15" {
		t.Errorf("StreakStartDate = %s, want 2026-03-15", s.StreakStartDate)
	}
	if s.TotalStudyDays != 4 {
		t.Errorf("TotalStudyDays = %d, want 4", s.TotalStudyDays)
	}
}

func TestAdvanceDateAnomalyResets(t *testing.T) {
	s := NewStudyStreak(1, "2026-03-10", 0)
	s.Advance("2026-03-11", 0)

	// A check-in carrying an earlier day than the last recorded one.
	s.Advance("2026-03-05", 0)
	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak after anomaly = %d, want 1", s.CurrentStreak)
	}
	if s.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", s.LongestStreak)
	}
}

func TestAdvanceWeekRollover(t *testing.T) {
	// 2026-03-08 is a Sunday, 2026-03-09 a Monday.
	s := NewStudyStreak(1, "2026-03-08", 0)
	s.Advance("2026-03-09", 0)
	if s.WeeklyProgress != 1 {
		t.Errorf("WeeklyProgress after ISO week change = %d, want 1", s.WeeklyProgress)
	}
	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (week reset must not break the streak)", s.CurrentStreak)
	}
}

func TestAdvanceMonthRollover(t *testing.T) {
	s := NewStudyStreak(1, "2026-03-31", 100)
	s.Advance("2026-04-01", 25)
	if s.MonthlyMinutes != 25 {
		t.Errorf("MonthlyMinutes after month change = %d, want 25", s.MonthlyMinutes)
	}
	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", s.CurrentStreak)
	}
}

func TestAdvanceNegativeMinutesClamped(t *testing.T) {
	s := NewStudyStreak(1, "2026-03-10", -5)
	if s.MonthlyMinutes != 0 {
		t.Errorf("MonthlyMinutes = %d, want 0", s.MonthlyMinutes)
	}
	s.Advance("2026-03-11", -10)
	if s.MonthlyMinutes != 0 {
		t.Errorf("MonthlyMinutes = %d, want 0", s.MonthlyMinutes)
	}
}
