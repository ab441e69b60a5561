package repository

import (
	"errors"

	"github.com/reehan7086/EchoVibe-sub000/internal/models"

	"gorm.io/gorm"
)

type SafetyRepository struct {
	db *gorm.DB
}

func NewSafetyRepository(db *gorm.DB) *SafetyRepository {
	return &SafetyRepository{db: db}
}

// Block inserts a block edge; blocking twice is a no-op.
func (r *SafetyRepository) Block(blockerID, blockedID uint) error {
	var existing models.Block
	err := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&models.Block{BlockerID: blockerID, BlockedID: blockedID}).Error
}

func (r *SafetyRepository) Unblock(blockerID, blockedID uint) error {
	return r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}

// IsBlockedEither reports whether a block exists in either direction.
func (r *SafetyRepository) IsBlockedEither(userA, userB uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).Count(&n).Error
	return n > 0, err
}

func (r *SafetyRepository) ListBlocked(blockerID uint) ([]models.Block, error) {
	var list []models.Block
	err := r.db.Preload("Blocked").Where("blocker_id = ?", blockerID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *SafetyRepository) CreateReport(rep *models.Report) error {
	return r.db.Create(rep).Error
}
