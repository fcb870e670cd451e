package models

import "testing"

func TestValidCheckInType(t *testing.T) {
	for _, typ := range []string{CheckInTypePhoto, CheckInTypeVerification, CheckInTypeProgressUpdate} {
		if !ValidCheckInType(typ) {
			t.Errorf("type %q must be valid", typ)
		}
	}
	for _, typ := range []string{"", "selfie", "PHOTO"} {
		if ValidCheckInType(typ) {
			t.Errorf("type %q must not be valid", typ)
		}
	}
}

func TestVerifiedByRoundTrip(t *testing.T) {
	c := CheckIn{VerifiedBy: EncodeVerifiedBy([]uint{3, 7, 11})}
	got := c.VerifiedByIDs()
	want := []uint{3, 7, 11}
	if len(got) != len(want) {
		t.Fatalf("VerifiedByIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("VerifiedByIDs[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestVerifiedByEmptyAndGarbage(t *testing.T) {
	if EncodeVerifiedBy(nil) != "[]" {
		t.Errorf("EncodeVerifiedBy(nil) = %q, want []", EncodeVerifiedBy(nil))
	}
	if ids := (&CheckIn{}).VerifiedByIDs(); ids != nil {
		t.Errorf("empty VerifiedBy decoded to %v", ids)
	}
	if ids := (&CheckIn{VerifiedBy: "not json"}).VerifiedByIDs(); ids != nil {
		t.Errorf("garbage VerifiedBy decoded to %v", ids)
	}
}

func TestPointColumn(t *testing.T) {
	tests := []struct {
		category string
		column   string
		ok       bool
	}{
		{PointCategoryCheckIn, "check_in_points", true},
		{PointCategoryVote, "vote_points", true},
		{PointCategoryVerified, "verified_points", true},
		{"overall", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		col, ok := PointColumn(tt.category)
		if col != tt.column || ok != tt.ok {
			t.Errorf("PointColumn(%q) = (%q, %v), want (%q, %v)",
				tt.category, col, ok, tt.column, tt.ok)
		}
	}
}
