package handler

import (
	"net/http"

	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type SafetyHandler struct {
	repo    *repository.SafetyRepository
	connSvc *service.ConnectionService
}

func NewSafetyHandler(repo *repository.SafetyRepository, connSvc *service.ConnectionService) *SafetyHandler {
	return &SafetyHandler{repo: repo, connSvc: connSvc}
}

type BlockRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// Block hides the pair from each other everywhere: nearby, chat, new
// connection requests. An existing edge is marked blocked atomically.
func (h *SafetyHandler) Block(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.connSvc.Block(callerID, req.UserID); err != nil {
		c.JSON(connErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "blocked"})
}

func (h *SafetyHandler) Unblock(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.Unblock(callerID, req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unblock failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unblocked"})
}

func (h *SafetyHandler) ListBlocked(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	list, err := h.repo.ListBlocked(callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, len(list))
	for i, b := range list {
		out[i] = gin.H{
			"user":       b.Blocked.Public(),
			"blocked_at": b.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"blocked": out})
}

type ReportRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Reason  string `json:"reason" binding:"required,max=64"`
	Details string `json:"details" binding:"max=2000"`
}

func (h *SafetyHandler) Report(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == callerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot report yourself"})
		return
	}
	rep := &models.Report{
		ReporterID: callerID,
		ReportedID: req.UserID,
		Reason:     req.Reason,
		Details:    req.Details,
	}
	if err := h.repo.CreateReport(rep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "reported"})
}
