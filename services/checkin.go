package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// CheckInService creates check-in records and triggers their reward side
// effects. The check-in row is the primary write; the streak update and the
// point award that follow are best-effort and their failure is logged but
// never rolls back an already persisted check-in.
type CheckInService struct {
	db            *gorm.DB
	ledger        *RewardsLedger
	checkInPoints int
}

// NewCheckInService wires the service with its ledger and the configured
// per-check-in bonus.
func NewCheckInService(db *gorm.DB, ledger *RewardsLedger, checkInPoints int) *CheckInService {
	return &CheckInService{db: db, ledger: ledger, checkInPoints: checkInPoints}
}

// CreateCheckInInput carries the caller-supplied check-in fields.
type CreateCheckInInput struct {
	RoomID          uint
	CheckInType     string
	StudyProgress   string
	Location        string
	DurationMinutes int
}

// Create validates room membership, persists the check-in, then updates the
// streak and awards the check-in bonus.
func (s *CheckInService) Create(userID uint, in CreateCheckInInput) (*models.CheckIn, error) {
	if userID == 0 {
		return nil, invalidArgument("user id is required")
	}
	if in.RoomID == 0 {
		return nil, invalidArgument("room id is required")
	}
	if !models.ValidCheckInType(in.CheckInType) {
		return nil, invalidArgument("unknown check-in type")
	}
	if in.DurationMinutes < 0 {
		return nil, invalidArgument("duration cannot be negative")
	}

	var room models.Room
	if err := s.db.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room not found")
		}
		return nil, err
	}

	var membership int64
	if err := s.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", in.RoomID, userID).
		Count(&membership).Error; err != nil {
		return nil, err
	}
	if membership == 0 {
		return nil, permissionDenied("you are not a participant of this room")
	}

	checkIn := models.CheckIn{
		UserID:          userID,
		RoomID:          in.RoomID,
		CheckInType:     in.CheckInType,
		StudyProgress:   utils.Sanitize(in.StudyProgress),
		Location:        utils.Sanitize(in.Location),
		DurationMinutes: in.DurationMinutes,
		// Non-photo check-ins are self-attested and verified at creation.
		IsVerified: in.CheckInType != models.CheckInTypePhoto,
	}
	if err := s.db.Create(&checkIn).Error; err != nil {
		return nil, err
	}

	if _, err := s.ledger.UpdateStudyStreak(userID, time.Now(), in.DurationMinutes); err != nil {
		utils.Sugar.Warnf("streak update failed after check-in %d: %v", checkIn.ID, err)
	}
	if err := s.ledger.AwardPoints(userID, models.PointCategoryCheckIn, s.checkInPoints); err != nil {
		utils.Sugar.Warnf("check-in bonus failed for user %d: %v", userID, err)
	}

	return &checkIn, nil
}

// Get loads a single check-in.
func (s *CheckInService) Get(id uint) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	if err := s.db.First(&checkIn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("check-in not found")
		}
		return nil, err
	}
	return &checkIn, nil
}

// ListForRoom returns a room's check-ins newest first, with the total count
// for pagination.
func (s *CheckInService) ListForRoom(roomID uint, page, pageSize int) ([]models.CheckIn, int64, error) {
	var checkIns []models.CheckIn
	var total int64

	q := s.db.Model(&models.CheckIn{}).Where("room_id = ?", roomID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&checkIns).Error; err != nil {
		return nil, 0, err
	}
	return checkIns, total, nil
}
