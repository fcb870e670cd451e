package services

import (
	"testing"
	"time"

	"github.com/studyhive/studyhive/models"
)

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		checkIn models.CheckIn
		userID  uint
		want    Kind
	}{
		{
			name:    "owner with unverified photo check-in",
			checkIn: models.CheckIn{UserID: 1, CheckInType: models.CheckInTypePhoto},
			userID:  1,
			want:    -1,
		},
		{
			name:    "non-owner rejected",
			checkIn: models.CheckIn{UserID: 1, CheckInType: models.CheckInTypePhoto},
			userID:  2,
			want:    KindPermissionDenied,
		},
		{
			name:    "non-photo check-in rejected",
			checkIn: models.CheckIn{UserID: 1, CheckInType: models.CheckInTypeProgressUpdate},
			userID:  1,
			want:    KindFailedPrecondition,
		},
		{
			name:    "already verified check-in rejected",
			checkIn: models.CheckIn{UserID: 1, CheckInType: models.CheckInTypePhoto, IsVerified: true},
			userID:  1,
			want:    KindFailedPrecondition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubmission(&tt.checkIn, tt.userID)
			if tt.want == -1 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := KindOf(err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateVote(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	pending := func() models.VerificationRequest {
		return models.VerificationRequest{
			ID:        10,
			UserID:    1,
			Status:    models.VerificationPending,
			ExpiresAt: now.Add(time.Hour),
		}
	}

	t.Run("fresh vote accepted", func(t *testing.T) {
		req := pending()
		if err := validateVote(&req, nil, 2, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("self vote rejected", func(t *testing.T) {
		req := pending()
		err := validateVote(&req, nil, 1, now)
		if KindOf(err) != KindPermissionDenied {
			t.Errorf("KindOf = %v, want KindPermissionDenied", KindOf(err))
		}
	})

	t.Run("duplicate voter rejected", func(t *testing.T) {
		req := pending()
		votes := []models.VerificationVote{{VerificationID: 10, VoterID: 2, Vote: models.VoteApprove}}
		err := validateVote(&req, votes, 2, now)
		if KindOf(err) != KindFailedPrecondition {
			t.Errorf("KindOf = %v, want KindFailedPrecondition", KindOf(err))
		}
		// A different voter is still fine.
		if err := validateVote(&req, votes, 3, now); err != nil {
			t.Errorf("unexpected error for new voter: %v", err)
		}
	})

	t.Run("settled request rejected", func(t *testing.T) {
		for _, status := range []models.VerificationStatus{
			models.VerificationApproved,
			models.VerificationRejected,
			models.VerificationExpired,
		} {
			req := pending()
			req.Status = status
			err := validateVote(&req, nil, 2, now)
			if KindOf(err) != KindFailedPrecondition {
				t.Errorf("status %q: KindOf = %v, want KindFailedPrecondition", status, KindOf(err))
			}
		}
	})

	t.Run("past deadline rejected even while pending", func(t *testing.T) {
		req := pending()
		req.ExpiresAt = now.Add(-time.Minute)
		err := validateVote(&req, nil, 2, now)
		if KindOf(err) != KindFailedPrecondition {
			t.Errorf("KindOf = %v, want KindFailedPrecondition", KindOf(err))
		}
	})
}
