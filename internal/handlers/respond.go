package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/dstrelka/marketcart/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// callerID reads the authenticated user id set by AuthMiddleware.
func callerID(c *gin.Context) int64 {
	userID_raw, _ := c.Get(middleware.CtxUserID)
	return userID_raw.(int64)
}

// callerRole reads the authenticated role set by AuthMiddleware.
func callerRole(c *gin.Context) string {
	role_raw, _ := c.Get(middleware.CtxUserRole)
	return role_raw.(string)
}

// errorResponse maps a service error onto the taxonomy's HTTP status.
// Errors outside the taxonomy are logged and hidden behind a generic 500.
func errorResponse(c *gin.Context, err error) {
	if !apperrors.IsAppError(err) {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}

// bindingError turns gin's binding failure into a readable 400 message.
func bindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid input: field '%s' failed on the '%s' rule", fe.Field(), fe.Tag()),
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
}
