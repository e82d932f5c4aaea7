package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/handlers"
	"github.com/kuldeep27396/prime-backend/internal/middlewares"
	"github.com/kuldeep27396/prime-backend/internal/repositories"
)

func RegisterPublicEndpoints(
	router *gin.Engine,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	mentorHandler *handlers.MentorHandler,
	companyHandler *handlers.CompanyHandler,
	emailHandler *handlers.EmailHandler,
	paymentHandler *handlers.PaymentHandler,
	webSocketHandler *handlers.WebSocketHandler,
	roomRepo *repositories.VideoRoomRepository,
	sessionRepo *repositories.SessionRepository,
	userRepo *repositories.UserRepository,
	mentorRepo *repositories.MentorRepository,
	jwtSecret string,
) {
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)

	public := router.Group("/api")

	public.POST("/users", authHandler.Register)
	public.POST("/auth/login", authHandler.Login)
	public.POST("/auth/refresh", authHandler.Refresh)

	public.GET("/mentors", mentorHandler.ListMentors)
	public.GET("/mentors/:id", mentorHandler.GetMentor)
	public.GET("/mentors/:id/reviews", mentorHandler.ListReviews)

	public.GET("/companies", companyHandler.ListCompanies)
	public.GET("/companies/:id", companyHandler.GetCompany)
	public.GET("/jobs", companyHandler.ListJobs)
	public.GET("/jobs/:id", companyHandler.GetJob)

	public.POST("/send-email", emailHandler.SendEmail)
	public.POST("/webhooks/razorpay", paymentHandler.RazorpayWebhook)

	// Query-param token auth: browsers cannot set headers on websocket
	// requests. Role is derived from session ownership in the middleware.
	wsAuth := middlewares.WebSocketAuthMiddleware(jwtSecret, roomRepo, sessionRepo, userRepo, mentorRepo)
	public.GET("/ws/rooms", wsAuth, webSocketHandler.HandleWebSocket)
}
