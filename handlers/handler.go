package handlers

import (
	"net/http"

	"delivery-management-api/apperr"
	"delivery-management-api/middleware"
	"delivery-management-api/service"
	"delivery-management-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the REST API on top of the services
type Handler struct {
	auth    *service.AuthService
	drivers *service.DriverService
	orders  *service.OrderService
	routes  *service.RouteService
	store   store.Store
	log     *zap.Logger
}

type Services struct {
	Auth    *service.AuthService
	Drivers *service.DriverService
	Orders  *service.OrderService
	Routes  *service.RouteService
}

func New(svc Services, st store.Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		auth:    svc.Auth,
		drivers: svc.Drivers,
		orders:  svc.Orders,
		routes:  svc.Routes,
		store:   st,
		log:     log,
	}
}

// bind decodes the JSON body into dst and answers 400 when it is malformed
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// respondError writes err with the status of its kind. Errors without a kind
// are logged and hidden behind a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	if apperr.HTTPStatus(err) == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	middleware.AbortWithError(c, err)
}
