package handlers

import (
	"context"
	"net/http"
	"time"

	"delivery-management-api/models"
	"delivery-management-api/statemachine"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "Delivery Management API"
	serviceVersion = "1.0.0"
)

// Health reports whether the store answers a ping
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
			"version": serviceVersion,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Welcome to the " + serviceName,
		"lifecycle": "/api/route-lifecycle",
		"health":    "/health",
		"metrics":   "/metrics",
		"roles":     []models.Role{models.RoleAdmin, models.RoleDriver, models.RoleUser},
	})
}

// RouteLifecycle describes the route state machine
func (h *Handler) RouteLifecycle(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "effect": t.Effect})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":    info,
		"initial_states":   statemachine.InitialStatuses(),
		"terminal_states":  []models.RouteStatus{models.RouteCompleted},
		"description":      "Delivery route lifecycle",
		"self_transitions": "re-saving a route with its current status is allowed",
	})
}
