package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"deanery-backend/config"
	"deanery-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, handler *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	api := r.Group("/api")
	api.Use(rateLimiter, caching)
	{
		api.GET("/students", handler.ListStudents)
		api.POST("/students", handler.CreateStudent)
		api.GET("/students/:id", handler.GetStudent)
		api.PUT("/students/:id", handler.UpdateStudent)
		api.DELETE("/students/:id", handler.DeleteStudent)
		api.DELETE("/students/:id/room", handler.CheckOutStudent)

		api.GET("/groups", handler.ListGroups)
		api.POST("/groups", handler.CreateGroup)
		api.GET("/groups/:id", handler.GetGroup)
		api.PUT("/groups/:id", handler.UpdateGroup)
		api.DELETE("/groups/:id", handler.DeleteGroup)
		api.GET("/groups/:id/students", handler.ListGroupStudents)
		api.PUT("/groups/:id/students/:student_id", handler.EnrollStudent)
		api.DELETE("/groups/:id/students/:student_id", handler.UnenrollStudent)

		api.GET("/dorms", handler.ListDorms)
		api.POST("/dorms", handler.CreateDorm)
		api.GET("/dorms/:id", handler.GetDorm)
		api.PUT("/dorms/:id", handler.UpdateDorm)
		api.DELETE("/dorms/:id", handler.DeleteDorm)
		api.GET("/dorms/:id/rooms", handler.ListDormRooms)
		api.POST("/dorms/:id/rooms", handler.CreateRoom)
		api.GET("/dorms/:id/residents", handler.ListDormResidents)
		api.GET("/dorms/:id/capacity", handler.GetDormCapacity)

		api.GET("/rooms/:id", handler.GetRoom)
		api.PUT("/rooms/:id", handler.UpdateRoom)
		api.DELETE("/rooms/:id", handler.DeleteRoom)
		api.GET("/rooms/:id/residents", handler.ListRoomResidents)
		api.PUT("/rooms/:id/residents/:student_id", handler.CheckInStudent)
	}

	return r
}
