package handlers

import (
	"net/http"

	"delivery-management-api/service"

	"github.com/gin-gonic/gin"
)

// Register creates a new user account
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !bind(c, &req) {
		return
	}
	if _, err := h.auth.Register(c.Request.Context(), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req service.LoginInput
	if !bind(c, &req) {
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome " + string(user.Role),
		"token":   token,
	})
}
