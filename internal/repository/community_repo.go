package repository

import (
	"errors"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/internal/models"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// Create inserts the community and the creator's membership in one
// transaction so a community can never exist without its creator inside.
func (r *CommunityRepository) Create(c *models.Community) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		c.MemberCount = 1
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(&models.CommunityMember{
			CommunityID: c.ID,
			UserID:      c.CreatorID,
			JoinedAt:    time.Now(),
		}).Error
	})
}

func (r *CommunityRepository) GetByID(id uint) (*models.Community, error) {
	var c models.Community
	err := r.db.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommunityRepository) List(limit, offset int) ([]models.Community, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []models.Community
	err := r.db.Order("member_count DESC, created_at DESC").
		Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *CommunityRepository) ListByMember(userID uint) ([]models.Community, error) {
	var list []models.Community
	err := r.db.Joins("INNER JOIN community_members cm ON cm.community_id = communities.id").
		Where("cm.user_id = ?", userID).
		Order("communities.created_at DESC").Find(&list).Error
	return list, err
}

// Join adds userID; joining twice is a no-op.
func (r *CommunityRepository) Join(communityID, userID uint) error {
	var existing models.CommunityMember
	err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.CommunityMember{
			CommunityID: communityID,
			UserID:      userID,
			JoinedAt:    time.Now(),
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Community{}).Where("id = ?", communityID).
			Update("member_count", gorm.Expr("member_count + 1")).Error
	})
}

func (r *CommunityRepository) Leave(communityID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("community_id = ? AND user_id = ?", communityID, userID).
			Delete(&models.CommunityMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Community{}).Where("id = ? AND member_count > 0", communityID).
			Update("member_count", gorm.Expr("member_count - 1")).Error
	})
}

func (r *CommunityRepository) IsMember(communityID, userID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).Count(&n).Error
	return n > 0, err
}
