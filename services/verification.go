package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// VerificationEngine owns the verification-request lifecycle: submission,
// vote casting, quorum evaluation, the status transition, and the reward
// side effects that follow a decision.
//
// Vote casting is the one genuinely racy write in the system: two concurrent
// votes re-deriving the tally from a stale read could drop one another. The
// engine therefore locks the request row (SELECT ... FOR UPDATE) for the
// whole insert-tally-transition sequence, so votes against one request are
// strictly serialized.
type VerificationEngine struct {
	db             *gorm.DB
	ledger         *RewardsLedger
	requiredVotes  int
	ttl            time.Duration
	votePoints     int
	verifiedPoints int
}

// NewVerificationEngine wires the engine with its policy knobs: quorum size,
// request lifetime, and the two reward amounts.
func NewVerificationEngine(db *gorm.DB, ledger *RewardsLedger, requiredVotes int, ttl time.Duration, votePoints, verifiedPoints int) *VerificationEngine {
	if requiredVotes < 1 {
		requiredVotes = 1
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &VerificationEngine{
		db:             db,
		ledger:         ledger,
		requiredVotes:  requiredVotes,
		ttl:            ttl,
		votePoints:     votePoints,
		verifiedPoints: verifiedPoints,
	}
}

// validateSubmission holds the pure submission preconditions: ownership,
// check-in type, and that the check-in is not already verified. A verified
// check-in has collected its reward; letting it re-enter pending would let
// the owner farm the verified bonus once per approval round.
func validateSubmission(checkIn *models.CheckIn, userID uint) error {
	if checkIn.UserID != userID {
		return permissionDenied("only the check-in owner may request verification")
	}
	if checkIn.CheckInType != models.CheckInTypePhoto {
		return failedPrecondition("only photo check-ins require peer verification")
	}
	if checkIn.IsVerified {
		return failedPrecondition("check-in is already verified")
	}
	return nil
}

// validateVote holds the pure vote preconditions against a loaded request and
// its current votes: no self-votes, no votes on settled or expired requests,
// one vote per voter.
func validateVote(req *models.VerificationRequest, votes []models.VerificationVote, voterID uint, now time.Time) error {
	if req.UserID == voterID {
		return permissionDenied("you cannot vote on your own verification request")
	}
	if req.Status != models.VerificationPending {
		return failedPrecondition("verification request is no longer pending")
	}
	if now.After(req.ExpiresAt) {
		return failedPrecondition("verification request has expired")
	}
	for _, v := range votes {
		if v.VoterID == voterID {
			return failedPrecondition("you have already voted on this request")
		}
	}
	return nil
}

// Submit opens a verification request for a photo check-in. Only the
// check-in's owner may submit, and only one request per check-in may be
// pending at a time; resubmission is allowed once a previous request has
// reached rejected or expired. Approval is final: the check-in is verified
// and no further request may be opened for it.
func (e *VerificationEngine) Submit(userID, checkInID uint, photoURL string) (*models.VerificationRequest, error) {
	if checkInID == 0 {
		return nil, invalidArgument("check-in id is required")
	}
	if photoURL == "" {
		return nil, invalidArgument("photo url is required")
	}

	var req models.VerificationRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var checkIn models.CheckIn
		// Lock the check-in row so two concurrent submissions for the same
		// check-in cannot both pass the pending-uniqueness check below.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&checkIn, checkInID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("check-in not found")
		}
		if err != nil {
			return err
		}
		if err := validateSubmission(&checkIn, userID); err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&models.VerificationRequest{}).
			Where("check_in_id = ? AND status = ?", checkInID, models.VerificationPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return failedPrecondition("a verification request for this check-in is already pending")
		}

		now := time.Now().UTC()
		req = models.VerificationRequest{
			CheckInID:     checkInID,
			UserID:        userID,
			RoomID:        checkIn.RoomID,
			PhotoURL:      photoURL,
			RequiredVotes: e.requiredVotes,
			Status:        models.VerificationPending,
			RequestedAt:   now,
			ExpiresAt:     now.Add(e.ttl),
		}
		if err := tx.Create(&req).Error; err != nil {
			return err
		}

		return tx.Model(&models.CheckIn{}).
			Where("id = ?", checkInID).
			UpdateColumn("photo_url", photoURL).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CastVote records one peer vote and evaluates the quorum. The vote insert,
// the tally, and any status transition happen inside a single transaction
// holding the request row lock. The participation bonus and the approval
// side effects run after commit, best-effort.
func (e *VerificationEngine) CastVote(voterID, verificationID uint, choice, reason string) (*models.VerificationRequest, error) {
	if verificationID == 0 {
		return nil, invalidArgument("verification id is required")
	}
	if !models.ValidVoteChoice(choice) {
		return nil, invalidArgument("vote must be approve or reject")
	}

	var req models.VerificationRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, verificationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("verification request not found")
		}
		if err != nil {
			return err
		}
		// The request row lock keeps this vote list stable for the whole
		// validate-insert-tally sequence; the composite unique index remains
		// as a schema-level backstop against duplicate voters.
		var votes []models.VerificationVote
		if err := tx.Where("verification_id = ?", req.ID).
			Order("created_at ASC").
			Find(&votes).Error; err != nil {
			return err
		}
		if err := validateVote(&req, votes, voterID, time.Now().UTC()); err != nil {
			return err
		}

		vote := models.VerificationVote{
			VerificationID: req.ID,
			VoterID:        voterID,
			Vote:           choice,
			Reason:         utils.Sanitize(reason),
		}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		votes = append(votes, vote)
		req.Votes = votes

		approve, reject := models.TallyVotes(votes)
		next := models.EvaluateQuorum(approve, reject, req.RequiredVotes)
		if next == req.Status {
			return nil
		}
		if !req.Status.CanTransition(next) {
			return failedPrecondition("verification request is no longer pending")
		}
		now := time.Now().UTC()
		req.Status = next
		req.DecidedAt = &now
		return tx.Model(&models.VerificationRequest{}).
			Where("id = ?", req.ID).
			Updates(map[string]interface{}{"status": next, "decided_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	// Voters earn the participation bonus regardless of outcome.
	if err := e.ledger.AwardPoints(voterID, models.PointCategoryVote, e.votePoints); err != nil {
		utils.Sugar.Warnf("vote bonus failed for voter %d on request %d: %v", voterID, req.ID, err)
	}
	if req.Status == models.VerificationApproved {
		e.finalizeApproval(&req)
	}

	return &req, nil
}

// finalizeApproval marks the underlying check-in verified and pays the
// submitter. Both steps are best-effort: the request is already approved and
// a failure here must not unwind that decision.
func (e *VerificationEngine) finalizeApproval(req *models.VerificationRequest) {
	approvers := models.ApproverIDs(req.Votes)
	err := e.db.Model(&models.CheckIn{}).
		Where("id = ?", req.CheckInID).
		Updates(map[string]interface{}{
			"is_verified": true,
			"verified_by": models.EncodeVerifiedBy(approvers),
		}).Error
	if err != nil {
		utils.Sugar.Errorf("failed to mark check-in %d verified: %v", req.CheckInID, err)
	}
	if err := e.ledger.AwardPoints(req.UserID, models.PointCategoryVerified, e.verifiedPoints); err != nil {
		utils.Sugar.Warnf("verification bonus failed for user %d: %v", req.UserID, err)
	}
	// The verified bonus is the largest single award; drop the current-period
	// ranking snapshots so the next leaderboard read regenerates instead of
	// waiting out the staleness window.
	now := time.Now().UTC()
	for _, lbType := range []string{models.LeaderboardWeekly, models.LeaderboardMonthly} {
		prefix := lbType + "_%_" + models.TimeframeKey(lbType, now)
		if err := e.db.Where("`key` LIKE ?", prefix).Delete(&models.Leaderboard{}).Error; err != nil {
			utils.Sugar.Warnf("leaderboard snapshot invalidation failed: %v", err)
		}
	}
	utils.InvalidateByPrefix(leaderboardCachePrefix)
}

// Get loads one verification request with its votes.
func (e *VerificationEngine) Get(id uint) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := e.db.Preload("Votes").First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("verification request not found")
		}
		return nil, err
	}
	return &req, nil
}

// ListForRoom returns a room's verification requests, optionally filtered by
// status, newest first.
func (e *VerificationEngine) ListForRoom(roomID uint, status string, page, pageSize int) ([]models.VerificationRequest, int64, error) {
	q := e.db.Model(&models.VerificationRequest{}).Where("room_id = ?", roomID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reqs []models.VerificationRequest
	if err := q.Preload("Votes").
		Order("requested_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// SweepExpired transitions every pending request past its deadline to
// expired in one atomic UPDATE and returns the number of rows moved.
// Expired requests award no points and leave their check-ins unverified.
func (e *VerificationEngine) SweepExpired(now time.Time) (int64, error) {
	decided := now.UTC()
	res := e.db.Model(&models.VerificationRequest{}).
		Where("status = ? AND expires_at <= ?", models.VerificationPending, decided).
		Updates(map[string]interface{}{
			"status":     models.VerificationExpired,
			"decided_at": decided,
		})
	return res.RowsAffected, res.Error
}
