package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deanery-backend/internal/service"
)

type dormitoryRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type roomRequest struct {
	Number      string `json:"number"`
	Floor       int    `json:"floor"`
	MaxCapacity int    `json:"maxCapacity"`
}

func (r roomRequest) toInput() service.RoomInput {
	return service.RoomInput{
		Number:      r.Number,
		Floor:       r.Floor,
		MaxCapacity: r.MaxCapacity,
	}
}

// ListDorms handles GET /api/dorms.
func (h *Handler) ListDorms(c *gin.Context) {
	dorms, err := h.dorms.ListDormitories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dorms)
}

// CreateDorm handles POST /api/dorms.
func (h *Handler) CreateDorm(c *gin.Context) {
	var req dormitoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dorm, err := h.dorms.CreateDormitory(c.Request.Context(), service.DormitoryInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dorm)
}

// GetDorm handles GET /api/dorms/:id.
func (h *Handler) GetDorm(c *gin.Context) {
	dorm, err := h.dorms.GetDormitory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dorm)
}

// UpdateDorm handles PUT /api/dorms/:id.
func (h *Handler) UpdateDorm(c *gin.Context) {
	var req dormitoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dorm, err := h.dorms.UpdateDormitory(c.Request.Context(), c.Param("id"), service.DormitoryInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dorm)
}

// DeleteDorm handles DELETE /api/dorms/:id.
func (h *Handler) DeleteDorm(c *gin.Context) {
	if err := h.dorms.DeleteDormitory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDormRooms handles GET /api/dorms/:id/rooms.
func (h *Handler) ListDormRooms(c *gin.Context) {
	rooms, err := h.dorms.Rooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateRoom handles POST /api/dorms/:id/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.dorms.CreateRoom(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ListDormResidents handles GET /api/dorms/:id/residents.
func (h *Handler) ListDormResidents(c *gin.Context) {
	students, err := h.dorms.Residents(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// GetDormCapacity handles GET /api/dorms/:id/capacity.
func (h *Handler) GetDormCapacity(c *gin.Context) {
	report, err := h.dorms.Capacity(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetRoom handles GET /api/rooms/:id.
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.dorms.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// UpdateRoom handles PUT /api/rooms/:id.
func (h *Handler) UpdateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.dorms.UpdateRoom(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	if err := h.dorms.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRoomResidents handles GET /api/rooms/:id/residents.
func (h *Handler) ListRoomResidents(c *gin.Context) {
	students, err := h.dorms.RoomResidents(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// CheckInStudent handles PUT /api/rooms/:id/residents/:student_id.
func (h *Handler) CheckInStudent(c *gin.Context) {
	if err := h.dorms.CheckIn(c.Request.Context(), c.Param("student_id"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
