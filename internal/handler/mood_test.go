package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reehan7086/EchoVibe-sub000/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateEchoRejectsUnknownMood(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handler.NewEchoHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/echoes", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		h.Create(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echoes",
		strings.NewReader(`{"content":"hello","mood":"grumpy"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown mood")
}

func TestUpdateProfileRejectsUnknownMood(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handler.NewMeHandler(nil, nil, nil, nil)
	r := gin.New()
	r.PATCH("/me", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		h.UpdateProfile(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/me",
		strings.NewReader(`{"mood":"grumpy"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown mood")
}
