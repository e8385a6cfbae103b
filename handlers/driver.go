package handlers

import (
	"net/http"

	"delivery-management-api/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateDriver(c *gin.Context) {
	var req service.CreateDriverInput
	if !bind(c, &req) {
		return
	}
	driver, err := h.drivers.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (h *Handler) ListDrivers(c *gin.Context) {
	drivers, err := h.drivers.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// GetDriver returns the driver with its online time brought up to date
func (h *Handler) GetDriver(c *gin.Context) {
	driver, err := h.drivers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) UpdateDriver(c *gin.Context) {
	var req service.UpdateDriverInput
	if !bind(c, &req) {
		return
	}
	driver, err := h.drivers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) DeleteDriver(c *gin.Context) {
	if err := h.drivers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted successfully"})
}

// DriverPayment returns the payment breakdown for a driver
func (h *Handler) DriverPayment(c *gin.Context) {
	summary, err := h.drivers.Payment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
