package handlers

import (
	"net/http"

	"delivery-management-api/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder places a new order under a generated orderId
func (h *Handler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderInput
	if !bind(c, &req) {
		return
	}
	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder changes only the fields present in the body
func (h *Handler) UpdateOrder(c *gin.Context) {
	var req service.UpdateOrderInput
	if !bind(c, &req) {
		return
	}
	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
