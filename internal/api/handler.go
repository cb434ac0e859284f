package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"deanery-backend/internal/service"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	students *service.StudentService
	groups   *service.GroupService
	dorms    *service.DormitoryService
}

// NewHandler creates a new API handler.
func NewHandler(students *service.StudentService, groups *service.GroupService, dorms *service.DormitoryService) *Handler {
	return &Handler{
		students: students,
		groups:   groups,
		dorms:    dorms,
	}
}

// writeError maps a service error onto an HTTP status and JSON body.
func writeError(c *gin.Context, err error) {
	var (
		notFound   *service.NotFoundError
		validation *service.ValidationError
		duplicate  *service.DuplicateError
		capacity   *service.CapacityError
	)
	switch {
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &duplicate):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": duplicate.Error()})
	case errors.As(err, &capacity):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":   capacity.Error(),
			"current": capacity.Current,
			"max":     capacity.Max,
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
