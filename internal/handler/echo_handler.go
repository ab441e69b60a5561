package handler

import (
	"net/http"
	"strconv"

	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type EchoHandler struct {
	repo     *repository.EchoRepository
	userRepo *repository.UserRepository
	notifSvc *service.NotificationService
}

func NewEchoHandler(repo *repository.EchoRepository, userRepo *repository.UserRepository, notifSvc *service.NotificationService) *EchoHandler {
	return &EchoHandler{repo: repo, userRepo: userRepo, notifSvc: notifSvc}
}

type CreateEchoRequest struct {
	Content  string `json:"content" binding:"required,max=500"`
	Mood     string `json:"mood" binding:"max=32"`
	MediaURL string `json:"media_url" binding:"max=512"`
}

func (h *EchoHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateEchoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mood != "" && !domain.ValidMood(req.Mood) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mood"})
		return
	}
	e := &models.VibeEcho{
		UserID:   userID,
		Content:  req.Content,
		Mood:     req.Mood,
		MediaURL: req.MediaURL,
	}
	if err := h.repo.Create(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// Feed lists recent echoes with counts, newest first.
func (h *EchoHandler) Feed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	rows, err := h.repo.ListRecent(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feed failed"})
		return
	}
	out := make([]gin.H, len(rows))
	for i, row := range rows {
		out[i] = gin.H{
			"id":            row.Echo.ID,
			"content":       row.Echo.Content,
			"mood":          row.Echo.Mood,
			"media_url":     row.Echo.MediaURL,
			"created_at":    row.Echo.CreatedAt,
			"author":        row.Author.Public(),
			"like_count":    row.LikeCount,
			"comment_count": row.CommentCount,
			"liked_by_me":   row.LikedByMe,
		}
	}
	c.JSON(http.StatusOK, gin.H{"echoes": out})
}

// Like is idempotent; only a fresh like notifies the author.
func (h *EchoHandler) Like(c *gin.Context) {
	userID := middleware.GetUserID(c)
	echoID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	echo, err := h.repo.GetByID(uint(echoID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "echo not found"})
		return
	}
	created, err := h.repo.Like(echo.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
		return
	}
	if created && echo.UserID != userID {
		if liker, err := h.userRepo.GetByID(userID); err == nil {
			_ = h.notifSvc.NotifyLike(echo.UserID, liker.ID, liker.DisplayName, echo.ID)
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "liked"})
}

func (h *EchoHandler) Unlike(c *gin.Context) {
	userID := middleware.GetUserID(c)
	echoID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Unlike(uint(echoID), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unlike failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unliked"})
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

func (h *EchoHandler) Comment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	echoID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	echo, err := h.repo.GetByID(uint(echoID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "echo not found"})
		return
	}
	comment := &models.EchoComment{
		EchoID:  echo.ID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := h.repo.CreateComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "comment failed"})
		return
	}
	if echo.UserID != userID {
		if commenter, err := h.userRepo.GetByID(userID); err == nil {
			_ = h.notifSvc.NotifyComment(echo.UserID, commenter.ID, commenter.DisplayName, echo.ID)
		}
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *EchoHandler) Comments(c *gin.Context) {
	echoID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.ListComments(uint(echoID), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, len(list))
	for i, cm := range list {
		out[i] = gin.H{
			"id":         cm.ID,
			"content":    cm.Content,
			"created_at": cm.CreatedAt,
			"author":     cm.User.Public(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

// Delete removes the caller's own echo.
func (h *EchoHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	echoID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	echo, err := h.repo.GetByID(uint(echoID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "echo not found"})
		return
	}
	if echo.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your echo"})
		return
	}
	if err := h.repo.Delete(echo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
