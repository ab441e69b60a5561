package handler

import (
	"net/http"
	"strconv"

	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	repo    *repository.CommunityRepository
	feedHub *ws.Hub
}

func NewCommunityHandler(repo *repository.CommunityRepository, feedHub *ws.Hub) *CommunityHandler {
	return &CommunityHandler{repo: repo, feedHub: feedHub}
}

type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=128"`
	Description string `json:"description" binding:"max=1000"`
	AvatarURL   string `json:"avatar_url" binding:"max=512"`
}

// Create inserts the community and announces it on the live feed channel.
func (h *CommunityHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	community := &models.Community{
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		CreatorID:   userID,
	}
	if err := h.repo.Create(community); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "community name already taken"})
		return
	}
	if h.feedHub != nil {
		h.feedHub.BroadcastAll(map[string]interface{}{
			"type":      domain.NotifTypeCommunity,
			"community": community,
		})
	}
	c.JSON(http.StatusCreated, community)
}

func (h *CommunityHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"communities": list})
}

func (h *CommunityHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.repo.ListByMember(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"communities": list})
}

func (h *CommunityHandler) Join(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if _, err := h.repo.GetByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "community not found"})
		return
	}
	if err := h.repo.Join(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "join failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "joined"})
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Leave(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leave failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "left"})
}
