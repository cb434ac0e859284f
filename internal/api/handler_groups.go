package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deanery-backend/internal/service"
)

type groupRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Year           int    `json:"year"`
}

func (r groupRequest) toInput() service.GroupInput {
	return service.GroupInput{
		Name:           r.Name,
		Specialization: r.Specialization,
		Year:           r.Year,
	}
}

// ListGroups handles GET /api/groups.
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// CreateGroup handles POST /api/groups.
func (h *Handler) CreateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group, err := h.groups.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// GetGroup handles GET /api/groups/:id.
func (h *Handler) GetGroup(c *gin.Context) {
	group, err := h.groups.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// UpdateGroup handles PUT /api/groups/:id.
func (h *Handler) UpdateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group, err := h.groups.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroup handles DELETE /api/groups/:id.
func (h *Handler) DeleteGroup(c *gin.Context) {
	if err := h.groups.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGroupStudents handles GET /api/groups/:id/students.
func (h *Handler) ListGroupStudents(c *gin.Context) {
	students, err := h.groups.Students(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// EnrollStudent handles PUT /api/groups/:id/students/:student_id.
func (h *Handler) EnrollStudent(c *gin.Context) {
	if err := h.groups.Enroll(c.Request.Context(), c.Param("id"), c.Param("student_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnenrollStudent handles DELETE /api/groups/:id/students/:student_id.
func (h *Handler) UnenrollStudent(c *gin.Context) {
	if err := h.groups.Unenroll(c.Request.Context(), c.Param("id"), c.Param("student_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
