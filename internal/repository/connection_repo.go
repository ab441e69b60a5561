package repository

import (
	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"

	"gorm.io/gorm"
)

type ConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

func (r *ConnectionRepository) Create(conn *models.Connection) error {
	return r.db.Create(conn).Error
}

func (r *ConnectionRepository) GetByID(id uint) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.First(&conn, id).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// GetBetween returns the edge for an unordered pair, checking both
// orientations. gorm.ErrRecordNotFound when no edge exists.
func (r *ConnectionRepository) GetBetween(userA, userB uint) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		userA, userB, userB, userA,
	).First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *ConnectionRepository) Update(conn *models.Connection) error {
	return r.db.Save(conn).Error
}

func (r *ConnectionRepository) Delete(conn *models.Connection) error {
	return r.db.Delete(conn).Error
}

// ListByStatus returns edges touching userID with the given status,
// preloading both endpoints for display.
func (r *ConnectionRepository) ListByStatus(userID uint, status string) ([]models.Connection, error) {
	var list []models.Connection
	err := r.db.Preload("Requester").Preload("Addressee").
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?", userID, userID, status).
		Order("updated_at DESC").Find(&list).Error
	return list, err
}

// ListPendingIncoming returns requests awaiting userID's decision.
func (r *ConnectionRepository) ListPendingIncoming(userID uint) ([]models.Connection, error) {
	var list []models.Connection
	err := r.db.Preload("Requester").
		Where("addressee_id = ? AND status = ?", userID, domain.ConnectionPending).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

// CountAccepted returns how many accepted edges touch userID.
func (r *ConnectionRepository) CountAccepted(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Connection{}).
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?", userID, userID, domain.ConnectionAccepted).
		Count(&n).Error
	return n, err
}
