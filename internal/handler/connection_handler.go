package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	svc  *service.ConnectionService
	repo *repository.ConnectionRepository
}

func NewConnectionHandler(svc *service.ConnectionService, repo *repository.ConnectionRepository) *ConnectionHandler {
	return &ConnectionHandler{svc: svc, repo: repo}
}

type ConnectRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func (h *ConnectionHandler) Request(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conn, err := h.svc.Request(callerID, req.UserID)
	if err != nil {
		c.JSON(connErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, conn)
}

func (h *ConnectionHandler) Accept(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	conn, err := h.svc.Accept(uint(id), callerID)
	if err != nil {
		c.JSON(connErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *ConnectionHandler) Decline(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Decline(uint(id), callerID); err != nil {
		c.JSON(connErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "declined"})
}

func (h *ConnectionHandler) Disconnect(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Disconnect(uint(id), callerID); err != nil {
		c.JSON(connErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "disconnected"})
}

// List returns accepted connections, with the counterpart profile resolved
// for display.
func (h *ConnectionHandler) List(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	status := c.DefaultQuery("status", domain.ConnectionAccepted)
	list, err := h.repo.ListByStatus(callerID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, len(list))
	for i, conn := range list {
		other := conn.Addressee
		if conn.AddresseeID == callerID {
			other = conn.Requester
		}
		out[i] = gin.H{
			"id":          conn.ID,
			"status":      conn.Status,
			"accepted_at": conn.AcceptedAt,
			"created_at":  conn.CreatedAt,
			"user":        other.Public(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"connections": out})
}

func (h *ConnectionHandler) ListPending(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	list, err := h.repo.ListPendingIncoming(callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, len(list))
	for i, conn := range list {
		out[i] = gin.H{
			"id":         conn.ID,
			"created_at": conn.CreatedAt,
			"requester":  conn.Requester.Public(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

func connErrStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSelfConnection), errors.Is(err, service.ErrNotPending):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEdgeExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrBlocked), errors.Is(err, service.ErrNotAddressee), errors.Is(err, service.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, service.ErrEdgeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
