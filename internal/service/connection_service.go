package service

import (
	"errors"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrSelfConnection = errors.New("cannot connect to yourself")
	ErrEdgeExists     = errors.New("a connection already exists for this pair")
	ErrBlocked        = errors.New("connection not possible")
	ErrNotAddressee   = errors.New("only the addressee can decide this request")
	ErrNotPending     = errors.New("request is not pending")
	ErrEdgeNotFound   = errors.New("connection not found")
	ErrNotParticipant = errors.New("not part of this connection")
)

// ConnectionService owns the friend-edge lifecycle. Multi-step mutations
// (accept = status update + notification insert) run inside a single DB
// transaction; the live push happens only after commit.
type ConnectionService struct {
	db       *gorm.DB
	conns    *repository.ConnectionRepository
	users    *repository.UserRepository
	safety   *repository.SafetyRepository
	notifSvc *NotificationService
	pusher   Pusher
}

func NewConnectionService(db *gorm.DB, conns *repository.ConnectionRepository, users *repository.UserRepository, safety *repository.SafetyRepository, notifSvc *NotificationService, pusher Pusher) *ConnectionService {
	return &ConnectionService{db: db, conns: conns, users: users, safety: safety, notifSvc: notifSvc, pusher: pusher}
}

// Request creates the single edge for the pair. At most one meaningful
// edge exists per unordered pair; both orientations are checked first.
func (s *ConnectionService) Request(requesterID, addresseeID uint) (*models.Connection, error) {
	if requesterID == addresseeID {
		return nil, ErrSelfConnection
	}
	if blocked, err := s.safety.IsBlockedEither(requesterID, addresseeID); err != nil {
		return nil, err
	} else if blocked {
		return nil, ErrBlocked
	}
	if _, err := s.users.GetByID(addresseeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEdgeNotFound
		}
		return nil, err
	}
	existing, err := s.conns.GetBetween(requesterID, addresseeID)
	if err == nil && existing != nil {
		return nil, ErrEdgeExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	conn := &models.Connection{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      domain.ConnectionPending,
	}
	if err := s.conns.Create(conn); err != nil {
		return nil, err
	}
	if requester, err := s.users.GetByID(requesterID); err == nil {
		_ = s.notifSvc.NotifyConnectRequest(addresseeID, requesterID, requester.DisplayName)
	}
	return conn, nil
}

// Accept flips the edge to accepted and records the notification for the
// requester in the same transaction, so a partial failure can never leave
// an accepted edge without its notification (or the reverse).
func (s *ConnectionService) Accept(connID, userID uint) (*models.Connection, error) {
	conn, err := s.conns.GetByID(connID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEdgeNotFound
		}
		return nil, err
	}
	if conn.AddresseeID != userID {
		return nil, ErrNotAddressee
	}
	if conn.Status != domain.ConnectionPending {
		return nil, ErrNotPending
	}
	addressee, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var notif *models.Notification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Connection{}).
			Where("id = ? AND status = ?", connID, domain.ConnectionPending).
			Updates(map[string]interface{}{
				"status":      domain.ConnectionAccepted,
				"accepted_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		related := userID
		notif = &models.Notification{
			UserID:        conn.RequesterID,
			Type:          domain.NotifTypeConnectAccepted,
			Message:       addressee.DisplayName + " accepted your connection request",
			RelatedUserID: &related,
		}
		return tx.Create(notif).Error
	})
	if err != nil {
		return nil, err
	}
	conn.Status = domain.ConnectionAccepted
	conn.AcceptedAt = &now
	if s.pusher != nil && notif != nil {
		s.pusher.BroadcastToUser(conn.RequesterID, map[string]interface{}{
			"type":         "notification",
			"notification": notif,
		})
	}
	return conn, nil
}

// Decline removes a pending request; only the addressee may decline.
func (s *ConnectionService) Decline(connID, userID uint) error {
	conn, err := s.conns.GetByID(connID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEdgeNotFound
		}
		return err
	}
	if conn.AddresseeID != userID {
		return ErrNotAddressee
	}
	if conn.Status != domain.ConnectionPending {
		return ErrNotPending
	}
	return s.conns.Delete(conn)
}

// Disconnect removes an accepted edge; either side may disconnect.
func (s *ConnectionService) Disconnect(connID, userID uint) error {
	conn, err := s.conns.GetByID(connID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEdgeNotFound
		}
		return err
	}
	if !conn.Involves(userID) {
		return ErrNotParticipant
	}
	return s.conns.Delete(conn)
}

// Block records the block edge and, when a connection exists, marks it
// blocked in the same transaction.
func (s *ConnectionService) Block(blockerID, blockedID uint) error {
	if blockerID == blockedID {
		return ErrSelfConnection
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewSafetyRepository(tx).Block(blockerID, blockedID); err != nil {
			return err
		}
		conn, err := repository.NewConnectionRepository(tx).GetBetween(blockerID, blockedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		conn.Status = domain.ConnectionBlocked
		return tx.Save(conn).Error
	})
}
