package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"deanery-backend/internal/service"
)

// dateOnly is the wire format for dates of birth.
const dateOnly = "2006-01-02"

type studentRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	MiddleName  string `json:"middleName"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func (r studentRequest) toInput(c *gin.Context) (service.StudentInput, bool) {
	dob, err := time.Parse(dateOnly, r.DateOfBirth)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "dateOfBirth must be YYYY-MM-DD"})
		return service.StudentInput{}, false
	}
	return service.StudentInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		MiddleName:  r.MiddleName,
		DateOfBirth: dob,
		Email:       r.Email,
		Phone:       r.Phone,
	}, true
}

// ListStudents handles GET /api/students. An optional q parameter narrows
// the result to a case-insensitive name search.
func (h *Handler) ListStudents(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		students, err := h.students.Search(c.Request.Context(), q)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, students)
		return
	}
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// CreateStudent handles POST /api/students.
func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	student, err := h.students.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// GetStudent handles GET /api/students/:id.
func (h *Handler) GetStudent(c *gin.Context) {
	student, err := h.students.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpdateStudent handles PUT /api/students/:id.
func (h *Handler) UpdateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent handles DELETE /api/students/:id.
func (h *Handler) DeleteStudent(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckOutStudent handles DELETE /api/students/:id/room.
func (h *Handler) CheckOutStudent(c *gin.Context) {
	if err := h.dorms.CheckOut(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
