// internal/app/router.go
package app

import (
	"ims-service/internal/handlers"
	appHandler "ims-service/internal/handlers/application"
	authHandler "ims-service/internal/handlers/auth"
	closureHandler "ims-service/internal/handlers/closure"
	companyHandler "ims-service/internal/handlers/company"
	guideHandler "ims-service/internal/handlers/guide"
	internshipHandler "ims-service/internal/handlers/internship"
	notifyHandler "ims-service/internal/handlers/notification"
	"ims-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler        *authHandler.AuthHandler
	InternshipHandler  *internshipHandler.InternshipHandler
	ApplicationHandler *appHandler.ApplicationHandler
	GuideHandler       *guideHandler.GuideHandler
	ClosureHandler     *closureHandler.ClosureHandler
	CompanyHandler     *companyHandler.CompanyHandler
	NotifHandler       *notifyHandler.NotificationHandler
	WSHandler          *handlers.WebSocketHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/register-student", h.AuthHandler.RegisterStudent)
		authPublic.POST("/restore", h.AuthHandler.Restore)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.Me)
		authProtected.PUT("/profile", h.AuthHandler.UpdateProfile)
		authProtected.PUT("/change-password", h.AuthHandler.ChangePassword)
	}

	// ==================== Internships ====================
	internships := api.Group("/internships")
	internships.Use(h.AuthMiddleware.Auth())
	{
		internships.GET("", h.InternshipHandler.List)
		internships.GET("/:id", h.InternshipHandler.Get)
	}

	recruiterInternships := api.Group("/internships")
	recruiterInternships.Use(h.AuthMiddleware.WithRoles("RECRUITER")...)
	{
		recruiterInternships.POST("", h.InternshipHandler.Create)
		recruiterInternships.GET("/mine", h.InternshipHandler.ListMine)
		recruiterInternships.PUT("/:id", h.InternshipHandler.Update)
		recruiterInternships.POST("/:id/submit", h.InternshipHandler.Submit)
	}

	placementInternships := api.Group("/internships")
	placementInternships.Use(h.AuthMiddleware.WithRoles("PLACEMENT_OFFICE", "PLACEMENT_HEAD", "ADMIN")...)
	{
		placementInternships.POST("/:id/approve", h.InternshipHandler.Approve)
		placementInternships.POST("/:id/reject", h.InternshipHandler.Reject)
		placementInternships.POST("/:id/close", h.InternshipHandler.Close)
		placementInternships.GET("/stats/summary", h.InternshipHandler.Stats)
	}

	// ==================== Applications ====================
	studentApplications := api.Group("/applications")
	studentApplications.Use(h.AuthMiddleware.WithRoles("STUDENT")...)
	{
		studentApplications.POST("", h.ApplicationHandler.Apply)
		studentApplications.GET("/mine", h.ApplicationHandler.ListMine)
		studentApplications.POST("/:id/offer-letter", h.ApplicationHandler.SubmitOfferLetter)
	}

	applications := api.Group("/applications")
	applications.Use(h.AuthMiddleware.Auth())
	{
		applications.GET("/:id", h.ApplicationHandler.Get)
	}

	reviewApplications := api.Group("/applications")
	reviewApplications.Use(h.AuthMiddleware.WithRoles("RECRUITER", "PLACEMENT_OFFICE", "PLACEMENT_HEAD", "ADMIN")...)
	{
		reviewApplications.GET("", h.ApplicationHandler.List)
		reviewApplications.PUT("/:id/status", h.ApplicationHandler.UpdateStatus)
		reviewApplications.PUT("/:id/offer-letter", h.ApplicationHandler.AttachOfferLetter)
	}

	// ==================== Guide Assignments & Weekly Logs ====================
	assignments := api.Group("/assignments")
	assignments.Use(h.AuthMiddleware.Auth())
	{
		assignments.GET("/mine", h.GuideHandler.ListMine)
		assignments.GET("/:id", h.GuideHandler.Get)
		assignments.GET("/:id/logs", h.GuideHandler.ListWeeklyLogs)
	}

	assignGuides := api.Group("/assignments")
	assignGuides.Use(h.AuthMiddleware.WithRoles("PLACEMENT_OFFICE", "PLACEMENT_HEAD", "PROGRAMME_COORDINATOR", "HOD", "ADMIN")...)
	{
		assignGuides.POST("", h.GuideHandler.Assign)
	}

	guideOnly := api.Group("/assignments")
	guideOnly.Use(h.AuthMiddleware.WithRoles("FACULTY")...)
	{
		guideOnly.POST("/:id/feedback", h.GuideHandler.AddFeedback)
	}

	studentLogs := api.Group("/assignments")
	studentLogs.Use(h.AuthMiddleware.WithRoles("STUDENT")...)
	{
		studentLogs.POST("/:id/logs", h.GuideHandler.SaveWeeklyLog)
	}

	logReview := api.Group("/logs")
	logReview.Use(h.AuthMiddleware.WithRoles("FACULTY")...)
	{
		logReview.PUT("/:log_id/review", h.GuideHandler.ReviewWeeklyLog)
	}

	// ==================== Closures, Evaluation & Credits ====================
	studentClosures := api.Group("/closures")
	studentClosures.Use(h.AuthMiddleware.WithRoles("STUDENT")...)
	{
		studentClosures.POST("", h.ClosureHandler.Submit)
	}

	closures := api.Group("/closures")
	closures.Use(h.AuthMiddleware.Auth())
	{
		closures.GET("/:id", h.ClosureHandler.Get)
	}

	facultyClosures := api.Group("/closures")
	facultyClosures.Use(h.AuthMiddleware.WithRoles("FACULTY")...)
	{
		facultyClosures.GET("/pending/evaluation", h.ClosureHandler.ListPendingEvaluation)
		facultyClosures.POST("/:id/evaluate", h.ClosureHandler.Evaluate)
	}

	creditClosures := api.Group("/closures")
	creditClosures.Use(h.AuthMiddleware.WithRoles("PROGRAMME_COORDINATOR", "ADMIN")...)
	{
		creditClosures.GET("/pending/credits", h.ClosureHandler.ListPendingCredits)
		creditClosures.POST("/:id/credits", h.ClosureHandler.AwardCredits)
	}

	// ==================== Companies ====================
	companies := api.Group("/companies")
	companies.Use(h.AuthMiddleware.Auth())
	{
		companies.GET("/:id", h.CompanyHandler.Get)
	}

	recruiterCompanies := api.Group("/companies")
	recruiterCompanies.Use(h.AuthMiddleware.WithRoles("RECRUITER")...)
	{
		recruiterCompanies.POST("", h.CompanyHandler.Create)
		recruiterCompanies.GET("/mine", h.CompanyHandler.GetMine)
		recruiterCompanies.PUT("/mine", h.CompanyHandler.Update)
	}

	placementCompanies := api.Group("/companies")
	placementCompanies.Use(h.AuthMiddleware.WithRoles("PLACEMENT_OFFICE", "PLACEMENT_HEAD", "ADMIN")...)
	{
		placementCompanies.GET("", h.CompanyHandler.List)
		placementCompanies.POST("/:id/approve", h.CompanyHandler.Approve)
		placementCompanies.POST("/:id/reject", h.CompanyHandler.Reject)
		placementCompanies.POST("/:id/ban", h.CompanyHandler.Ban)
		placementCompanies.POST("/:id/unban", h.CompanyHandler.Unban)
	}

	// ==================== Notifications ====================
	notifications := api.Group("/notifications")
	notifications.Use(h.AuthMiddleware.Auth())
	{
		notifications.GET("", h.NotifHandler.List)
		notifications.GET("/latest", h.NotifHandler.Latest)
		notifications.GET("/summary", h.NotifHandler.Summary)
		notifications.POST("", h.NotifHandler.Add)
		notifications.PUT("/:id/read", h.NotifHandler.MarkRead)
		notifications.PUT("/read-all", h.NotifHandler.MarkAllRead)
		notifications.DELETE("/:id", h.NotifHandler.Delete)
		notifications.DELETE("", h.NotifHandler.ClearAll)
	}

	logger.Info("routes registered")
}
