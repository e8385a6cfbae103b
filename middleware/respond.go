package middleware

import (
	"delivery-management-api/apperr"

	"github.com/gin-gonic/gin"
)

var (
	errMissingToken = apperr.New(apperr.Unauthorized, "Not authorized")
	errBadToken     = apperr.New(apperr.Unauthorized, "Token expired or invalid")
	errRoleDenied   = apperr.New(apperr.Forbidden, "Not authorized for this role")
)

// AbortWithError stops the chain and writes err as {"error": message} with
// the status of its kind
func AbortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err, err.Error())})
}
