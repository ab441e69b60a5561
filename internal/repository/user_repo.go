package repository

import (
	"time"

	"github.com/reehan7086/EchoVibe-sub000/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByGoogleID(googleID string) (*models.User, error) {
	var u models.User
	err := r.db.Where("google_id = ?", googleID).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

// UpdateLocation writes coordinates and refreshes the heartbeat in one
// statement so the pair can never be half-written.
func (r *UserRepository) UpdateLocation(userID uint, lat, lng float64, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"latitude":       lat,
		"longitude":      lng,
		"is_online":      true,
		"last_active_at": at,
	}).Error
}

// Heartbeat refreshes last_active_at and marks the user online.
func (r *UserRepository) Heartbeat(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_online":      true,
		"last_active_at": at,
	}).Error
}

func (r *UserRepository) SetOffline(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("is_online", false).Error
}

// SweepStale marks users offline whose heartbeat is older than cutoff.
// Returns the number of rows affected.
func (r *UserRepository) SweepStale(cutoff time.Time) (int64, error) {
	res := r.db.Model(&models.User{}).
		Where("is_online = ? AND last_active_at < ?", true, cutoff).
		Update("is_online", false)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) Deactivate(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"deactivated_at": at,
		"is_online":      false,
	}).Error
}

func (r *UserRepository) Search(query string, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []models.User
	like := "%" + query + "%"
	err := r.db.Where("deactivated_at IS NULL AND (username LIKE ? OR display_name LIKE ?)", like, like).
		Limit(limit).Find(&list).Error
	return list, err
}
