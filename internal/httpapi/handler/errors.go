package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
)

// respondError maps service errors to the wire taxonomy: field-scoped 400s
// for validation, 403 for insufficient rights, 404 for missing rows.
func respondError(c *gin.Context, err error) {
	var fieldErrs dto.FieldErrors
	var pairErr *service.SignupPairError

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, fieldErrs)
	case errors.As(err, &pairErr):
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{pairErr.Error()}})
	case errors.Is(err, service.ErrReviewExists):
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"You have already reviewed this title."}})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

// requireAdmin enforces administrator rights inside handlers that dispatch
// on path parameters and cannot rely on route-level middleware.
func requireAdmin(c *gin.Context) bool {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return false
	}
	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"detail": "insufficient permissions"})
		return false
	}
	return true
}

// parseIDParam reads a numeric path parameter; non-numeric values behave
// like a missing resource.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return id, true
}
