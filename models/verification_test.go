package models

import "testing"

func TestEvaluateQuorum(t *testing.T) {
	tests := []struct {
		name     string
		approve  int
		reject   int
		required int
		want     VerificationStatus
	}{
		{"no votes", 0, 0, 3, VerificationPending},
		{"below threshold", 2, 2, 3, VerificationPending},
		{"approved at threshold", 3, 0, 3, VerificationApproved},
		{"approved above threshold", 4, 1, 3, VerificationApproved},
		{"rejected at threshold", 0, 3, 3, VerificationRejected},
		{"approval wins a tie", 3, 3, 3, VerificationApproved},
		{"quorum of one", 1, 0, 1, VerificationApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateQuorum(tt.approve, tt.reject, tt.required); got != tt.want {
				t.Errorf("EvaluateQuorum(%d, %d, %d) = %q, want %q",
					tt.approve, tt.reject, tt.required, got, tt.want)
			}
		})
	}
}

func TestTallyVotes(t *testing.T) {
	votes := []VerificationVote{
		{VoterID: 1, Vote: VoteApprove},
		{VoterID: 2, Vote: VoteReject},
		{VoterID: 3, Vote: VoteApprove},
		{VoterID: 4, Vote: "bogus"},
	}
	approve, reject := TallyVotes(votes)
	if approve != 2 || reject != 1 {
		t.Errorf("TallyVotes = (%d, %d), want (2, 1)", approve, reject)
	}

	approve, reject = TallyVotes(nil)
	if approve != 0 || reject != 0 {
		t.Errorf("TallyVotes(nil) = (%d, %d), want (0, 0)", approve, reject)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to VerificationStatus
		want     bool
	}{
		{VerificationPending, VerificationApproved, true},
		{VerificationPending, VerificationRejected, true},
		{VerificationPending, VerificationExpired, true},
		{VerificationApproved, VerificationRejected, false},
		{VerificationApproved, VerificationPending, false},
		{VerificationRejected, VerificationApproved, false},
		{VerificationExpired, VerificationApproved, false},
		{VerificationPending, VerificationPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%q -> %q = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if VerificationPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	for _, s := range []VerificationStatus{VerificationApproved, VerificationRejected, VerificationExpired} {
		if !s.Terminal() {
			t.Errorf("%q must be terminal", s)
		}
	}
}

func TestApproverIDs(t *testing.T) {
	votes := []VerificationVote{
		{VoterID: 7, Vote: VoteApprove},
		{VoterID: 8, Vote: VoteReject},
		{VoterID: 9, Vote: VoteApprove},
	}
	got := ApproverIDs(votes)
	want := []uint{7, 9}
	if len(got) != len(want) {
		t.Fatalf("ApproverIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ApproverIDs[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestValidVoteChoice(t *testing.T) {
	if !ValidVoteChoice(VoteApprove) || !ValidVoteChoice(VoteReject) {
		t.Error("approve and reject must be valid choices")
	}
	for _, v := range []string{"", "yes", "APPROVE", "abstain"} {
		if ValidVoteChoice(v) {
			t.Errorf("%q must not be a valid choice", v)
		}
	}
}
