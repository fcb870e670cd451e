package models

import (
	"testing"
	"time"
)

func TestTimeframeKey(t *testing.T) {
	// Thursday of ISO week 11, 2026.
	ref := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		lbType string
		want   string
	}{
		{LeaderboardWeekly, "2026-W11"},
		{LeaderboardMonthly, "2026-03"},
		{LeaderboardAllTime, "all_time"},
	}
	for _, tt := range tests {
		if got := TimeframeKey(tt.lbType, ref); got != tt.want {
			t.Errorf("TimeframeKey(%q) = %q, want %q", tt.lbType, got, tt.want)
		}
	}
}

func TestTimeframeKeyYearBoundary(t *testing.T) {
	// 2027-01-01 is a Friday belonging to ISO week 53 of 2026.
	ref := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := TimeframeKey(LeaderboardWeekly, ref); got != "2026-W53" {
		t.Errorf("TimeframeKey(weekly) = %q, want 2026-W53", got)
	}
	if got := TimeframeKey(LeaderboardMonthly, ref); got != "2027-01" {
		t.Errorf("TimeframeKey(monthly) = %q, want 2027-01", got)
	}
}

func TestLeaderboardKey(t *testing.T) {
	ref := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	if got := LeaderboardKey(LeaderboardWeekly, LeaderboardCategoryOverall, ref); got != "weekly_overall_2026-W11" {
		t.Errorf("LeaderboardKey = %q", got)
	}
	if got := LeaderboardKey(LeaderboardAllTime, PointCategoryVote, ref); got != "all_time_vote_all_time" {
		t.Errorf("LeaderboardKey = %q", got)
	}
}

func TestPeriodBounds(t *testing.T) {
	// Thursday 2026-03-12; the ISO week runs Monday 03-09 to Monday 03-16.
	ref := time.Date(2026, 3, 12, 18, 30, 0, 0, time.UTC)

	start, end, ok := PeriodBounds(LeaderboardWeekly, ref)
	if !ok {
		t.Fatal("weekly period must be bounded")
	}
	wantStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantStart.AddDate(0, 0, 7)) {
		t.Errorf("weekly bounds = [%v, %v)", start, end)
	}

	start, end, ok = PeriodBounds(LeaderboardMonthly, ref)
	if !ok {
		t.Fatal("monthly period must be bounded")
	}
	wantStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantStart.AddDate(0, 1, 0)) {
		t.Errorf("monthly bounds = [%v, %v)", start, end)
	}

	if _, _, ok := PeriodBounds(LeaderboardAllTime, ref); ok {
		t.Error("all_time must be unbounded")
	}
}

func TestPeriodBoundsSunday(t *testing.T) {
	// A Sunday must still map to the Monday that started its week.
	ref := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	start, _, ok := PeriodBounds(LeaderboardWeekly, ref)
	if !ok {
		t.Fatal("weekly period must be bounded")
	}
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("week start for Sunday = %v, want %v", start, want)
	}
}

func TestValidLeaderboardInputs(t *testing.T) {
	for _, typ := range []string{LeaderboardWeekly, LeaderboardMonthly, LeaderboardAllTime} {
		if !ValidLeaderboardType(typ) {
			t.Errorf("type %q must be valid", typ)
		}
	}
	if ValidLeaderboardType("daily") {
		t.Error("daily must not be a valid type")
	}

	for _, cat := range []string{LeaderboardCategoryOverall, PointCategoryCheckIn, PointCategoryVote, PointCategoryVerified} {
		if !ValidLeaderboardCategory(cat) {
			t.Errorf("category %q must be valid", cat)
		}
	}
	if ValidLeaderboardCategory("streak") {
		t.Error("streak must not be a valid category")
	}
}
