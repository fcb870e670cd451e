package models

import "time"

// VerificationStatus is the lifecycle state of a verification request.
// pending is the only state with outgoing transitions.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
	VerificationExpired  VerificationStatus = "expired"
)

// Vote choices.
const (
	VoteApprove = "approve"
	VoteReject  = "reject"
)

// ValidVoteChoice reports whether v is a recognized vote value.
func ValidVoteChoice(v string) bool {
	return v == VoteApprove || v == VoteReject
}

// verificationTransitions is the guarded transition table. Anything not
// listed here is rejected, which keeps terminal states terminal.
var verificationTransitions = map[VerificationStatus][]VerificationStatus{
	VerificationPending: {VerificationApproved, VerificationRejected, VerificationExpired},
}

// CanTransition reports whether moving from s to next is a legal transition.
func (s VerificationStatus) CanTransition(next VerificationStatus) bool {
	for _, allowed := range verificationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s VerificationStatus) Terminal() bool {
	return len(verificationTransitions[s]) == 0
}

// VerificationRequest is a quorum-voting workflow attached to a photo
// check-in. RequiredVotes is fixed at creation and never changes.
type VerificationRequest struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	CheckInID     uint               `gorm:"index;not null" json:"checkin_id"`
	UserID        uint               `gorm:"index;not null" json:"user_id"`
	RoomID        uint               `gorm:"index;not null" json:"room_id"`
	PhotoURL      string             `gorm:"size:512;not null" json:"photo_url"`
	RequiredVotes int                `gorm:"not null" json:"required_votes"`
	Status        VerificationStatus `gorm:"size:16;not null;index;default:'pending'" json:"status"`
	RequestedAt   time.Time          `json:"requested_at"`
	ExpiresAt     time.Time          `gorm:"index" json:"expires_at"`
	DecidedAt     *time.Time         `json:"decided_at"`
	Votes         []VerificationVote `gorm:"foreignKey:VerificationID" json:"votes"`
}

// VerificationVote is immutable once cast. The composite unique index
// enforces one vote per voter per request at the schema level in addition
// to the engine's own check.
type VerificationVote struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	VerificationID uint      `gorm:"uniqueIndex:idx_verification_voter;not null" json:"-"`
	VoterID        uint      `gorm:"uniqueIndex:idx_verification_voter;not null" json:"voter_id"`
	Vote           string    `gorm:"size:8;not null" json:"vote"`
	Reason         string    `gorm:"size:512" json:"reason,omitempty"`
	CreatedAt      time.Time `json:"timestamp"`
}

// TallyVotes counts approvals and rejections over a vote list.
func TallyVotes(votes []VerificationVote) (approve, reject int) {
	for _, v := range votes {
		switch v.Vote {
		case VoteApprove:
			approve++
		case VoteReject:
			reject++
		}
	}
	return approve, reject
}

// EvaluateQuorum returns the status a pending request should hold after a
// tally. Approval is checked before rejection, so approval wins if both
// thresholds were ever reached in the same evaluation.
func EvaluateQuorum(approve, reject, required int) VerificationStatus {
	switch {
	case approve >= required:
		return VerificationApproved
	case reject >= required:
		return VerificationRejected
	default:
		return VerificationPending
	}
}

// ApproverIDs returns the voter IDs of every approval vote, in cast order.
func ApproverIDs(votes []VerificationVote) []uint {
	var ids []uint
	for _, v := range votes {
		if v.Vote == VoteApprove {
			ids = append(ids, v.VoterID)
		}
	}
	return ids
}
