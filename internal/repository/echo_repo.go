package repository

import (
	"errors"

	"github.com/reehan7086/EchoVibe-sub000/internal/models"

	"gorm.io/gorm"
)

// EchoWithCounts is one feed row: the echo plus its author, like/comment
// counts, and whether the caller already liked it.
type EchoWithCounts struct {
	Echo         models.VibeEcho
	Author       models.User
	LikeCount    int64
	CommentCount int64
	LikedByMe    bool
}

type EchoRepository struct {
	db *gorm.DB
}

func NewEchoRepository(db *gorm.DB) *EchoRepository {
	return &EchoRepository{db: db}
}

func (r *EchoRepository) Create(e *models.VibeEcho) error {
	return r.db.Create(e).Error
}

func (r *EchoRepository) GetByID(id uint) (*models.VibeEcho, error) {
	var e models.VibeEcho
	err := r.db.First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EchoRepository) Delete(e *models.VibeEcho) error {
	return r.db.Delete(e).Error
}

// ListRecent returns the newest echoes with counts, viewed as viewerID.
func (r *EchoRepository) ListRecent(viewerID uint, limit, offset int) ([]EchoWithCounts, error) {
	if limit <= 0 {
		limit = 20
	}
	var echoes []models.VibeEcho
	err := r.db.Preload("User").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&echoes).Error
	if err != nil {
		return nil, err
	}
	out := make([]EchoWithCounts, 0, len(echoes))
	for _, e := range echoes {
		row := EchoWithCounts{Echo: e, Author: e.User}
		r.db.Model(&models.EchoLike{}).Where("echo_id = ?", e.ID).Count(&row.LikeCount)
		r.db.Model(&models.EchoComment{}).Where("echo_id = ?", e.ID).Count(&row.CommentCount)
		if viewerID != 0 {
			var n int64
			r.db.Model(&models.EchoLike{}).Where("echo_id = ? AND user_id = ?", e.ID, viewerID).Count(&n)
			row.LikedByMe = n > 0
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *EchoRepository) ListByUser(userID uint, limit, offset int) ([]models.VibeEcho, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []models.VibeEcho
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// Like inserts an EchoLike; a second like of the same echo is a no-op.
// Returns true when a new like row was created.
func (r *EchoRepository) Like(echoID, userID uint) (bool, error) {
	var existing models.EchoLike
	err := r.db.Where("echo_id = ? AND user_id = ?", echoID, userID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := r.db.Create(&models.EchoLike{EchoID: echoID, UserID: userID}).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *EchoRepository) Unlike(echoID, userID uint) error {
	return r.db.Where("echo_id = ? AND user_id = ?", echoID, userID).Delete(&models.EchoLike{}).Error
}

func (r *EchoRepository) CreateComment(c *models.EchoComment) error {
	return r.db.Create(c).Error
}

func (r *EchoRepository) ListComments(echoID uint, limit, offset int) ([]models.EchoComment, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []models.EchoComment
	err := r.db.Preload("User").Where("echo_id = ?", echoID).
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
