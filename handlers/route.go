package handlers

import (
	"net/http"

	"delivery-management-api/service"

	"github.com/gin-gonic/gin"
)

// CreateRoute assigns an order to a driver
func (h *Handler) CreateRoute(c *gin.Context) {
	var req service.RouteInput
	if !bind(c, &req) {
		return
	}
	route, err := h.routes.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *Handler) ListRoutes(c *gin.Context) {
	routes, err := h.routes.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *Handler) GetRoute(c *gin.Context) {
	route, err := h.routes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// UpdateRoute replaces the route and applies the effects of its new status
func (h *Handler) UpdateRoute(c *gin.Context) {
	var req service.RouteInput
	if !bind(c, &req) {
		return
	}
	route, err := h.routes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *Handler) DeleteRoute(c *gin.Context) {
	if err := h.routes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}

func (h *Handler) AddRouteStep(c *gin.Context) {
	var req service.StepInput
	if !bind(c, &req) {
		return
	}
	route, err := h.routes.AddStep(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}
