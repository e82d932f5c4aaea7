package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/handlers"
	"github.com/kuldeep27396/prime-backend/internal/middlewares"
)

func RegisterProtectedEndpoints(
	router *gin.Engine,
	userHandler *handlers.UserHandler,
	mentorHandler *handlers.MentorHandler,
	sessionHandler *handlers.SessionHandler,
	roomHandler *handlers.RoomHandler,
	reviewHandler *handlers.ReviewHandler,
	companyHandler *handlers.CompanyHandler,
	paymentHandler *handlers.PaymentHandler,
	jwtSecret string,
) {
	protected := router.Group("/api")
	protected.Use(middlewares.AuthMiddleware(jwtSecret))

	protected.GET("/users/:id", userHandler.GetUser)
	protected.GET("/users/:id/analytics", userHandler.GetAnalytics)
	protected.PATCH("/users/me/profile", userHandler.UpdateProfile)
	protected.POST("/users/me/skills", userHandler.RecordSkill)
	protected.GET("/users/me/skills", userHandler.ListSkills)

	protected.POST("/mentor/profile", mentorHandler.CreateProfile)

	protected.POST("/sessions", sessionHandler.CreateSession)
	protected.GET("/sessions", sessionHandler.ListSessions)
	protected.PATCH("/sessions/:id", sessionHandler.UpdateSession)

	protected.POST("/rooms", roomHandler.CreateRoom)
	protected.GET("/rooms/:id/status", roomHandler.GetRoomStatus)
	protected.POST("/rooms/:id/end", roomHandler.EndRoom)

	protected.POST("/reviews", reviewHandler.CreateReview)

	protected.POST("/payments", paymentHandler.CreatePayment)

	admin := protected.Group("")
	admin.Use(middlewares.RequireAdmin())
	admin.POST("/companies", companyHandler.CreateCompany)
	admin.POST("/jobs", companyHandler.CreateJob)
	admin.PATCH("/jobs/:id", companyHandler.UpdateJob)
}
