package repository

import (
	"errors"

	"github.com/reehan7086/EchoVibe-sub000/internal/models"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetOrCreate returns the chat for an unordered participant pair, creating
// it on first use. The pair is canonicalised (lower id first) so the unique
// index holds regardless of who opens the chat.
func (r *ChatRepository) GetOrCreate(userA, userB uint) (*models.Chat, error) {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}
	var chat models.Chat
	err := r.db.Where("user_a_id = ? AND user_b_id = ?", lo, hi).First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	chat = models.Chat{UserAID: lo, UserBID: hi}
	if err := r.db.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *ChatRepository) GetByID(id uint) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.First(&chat, id).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListByUser returns the chats userID participates in, most recently
// updated first, with both participants preloaded.
func (r *ChatRepository) ListByUser(userID uint) ([]models.Chat, error) {
	var list []models.Chat
	err := r.db.Preload("UserA").Preload("UserB").
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").Find(&list).Error
	return list, err
}

func (r *ChatRepository) CreateMessage(m *models.Message) error {
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	// Bump the chat so ListByUser orders by latest activity.
	return r.db.Model(&models.Chat{}).Where("id = ?", m.ChatID).Update("updated_at", m.CreatedAt).Error
}

// ListMessages returns messages in creation order (append-only sequence).
func (r *ChatRepository) ListMessages(chatID uint, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []models.Message
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *ChatRepository) LastMessage(chatID uint) (*models.Message, error) {
	var m models.Message
	err := r.db.Where("chat_id = ?", chatID).Order("created_at DESC").First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkRead flips the read flag on every counterpart message in the chat.
func (r *ChatRepository) MarkRead(chatID, readerID uint) error {
	return r.db.Model(&models.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND `read` = ?", chatID, readerID, false).
		Update("read", true).Error
}

func (r *ChatRepository) CountUnread(chatID, readerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND `read` = ?", chatID, readerID, false).
		Count(&n).Error
	return n, err
}
