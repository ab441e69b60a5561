package service

import (
	"encoding/json"

	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
)

// Pusher delivers a payload to every live connection of one user.
type Pusher interface {
	BroadcastToUser(userID uint, payload interface{})
}

type NotificationService struct {
	repo   *repository.NotificationRepository
	pusher Pusher
}

func NewNotificationService(repo *repository.NotificationRepository, pusher Pusher) *NotificationService {
	return &NotificationService{repo: repo, pusher: pusher}
}

// Notify persists the notification, then pushes it over the user's live
// channel. The push is best-effort; the table row is the source of truth.
func (s *NotificationService) Notify(userID uint, notifType, message string, relatedUserID *uint, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	n := &models.Notification{
		UserID:        userID,
		Type:          notifType,
		Message:       message,
		RelatedUserID: relatedUserID,
		Data:          dataJSON,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	if s.pusher != nil {
		s.pusher.BroadcastToUser(userID, map[string]interface{}{
			"type":         "notification",
			"notification": n,
		})
	}
	return nil
}

func (s *NotificationService) NotifyConnectRequest(addresseeID, requesterID uint, requesterName string) error {
	return s.Notify(addresseeID, domain.NotifTypeConnectRequest,
		requesterName+" wants to connect", &requesterID, nil)
}

func (s *NotificationService) NotifyLike(authorID, likerID uint, likerName string, echoID uint) error {
	return s.Notify(authorID, domain.NotifTypeLike,
		likerName+" liked your vibe", &likerID,
		map[string]interface{}{"echo_id": echoID})
}

func (s *NotificationService) NotifyComment(authorID, commenterID uint, commenterName string, echoID uint) error {
	return s.Notify(authorID, domain.NotifTypeComment,
		commenterName+" commented on your vibe", &commenterID,
		map[string]interface{}{"echo_id": echoID})
}

func (s *NotificationService) NotifyMessage(recipientID, senderID uint, senderName string, chatID uint) error {
	return s.Notify(recipientID, domain.NotifTypeMessage,
		"New message from "+senderName, &senderID,
		map[string]interface{}{"chat_id": chatID})
}
