package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mockdrill/mockdrill-backend/internal/config"
	"github.com/mockdrill/mockdrill-backend/internal/handler"
	"github.com/mockdrill/mockdrill-backend/internal/middleware"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Company     *handler.CompanyHandler
	Test        *handler.TestHandler
	Question    *handler.QuestionHandler
	Bank        *handler.BankHandler
	Course      *handler.CourseHandler
	Order       *handler.OrderHandler
	Attempt     *handler.AttemptHandler
	Media       *handler.MediaHandler
	Dashboard   *handler.DashboardHandler
	StudentMgmt *handler.StudentManagementHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth and payment routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Public Catalog (No Auth) ───────────────────────────────────
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.GET("/companies", handlers.Company.List)
		publicAPI.GET("/companies/:id", handlers.Company.Get)
		publicAPI.GET("/tests", handlers.Test.List)
		publicAPI.GET("/tests/:id", handlers.Test.Get)
		publicAPI.GET("/courses", handlers.Course.List)
		publicAPI.GET("/courses/:id", handlers.Course.Get)
		// Enrollment-aware: logged-in students see their unlocked recordings,
		// anonymous visitors see paid content locked.
		publicAPI.GET("/courses/:id/recordings",
			middleware.OptionalStudentJWT(authService), handlers.Course.ListRecordings)
	}

	// ─── 2. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/register", handlers.Auth.StudentRegister)
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 3. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		// Attempts
		studentAPI.POST("/tests/:id/attempts", handlers.Attempt.Start)
		studentAPI.GET("/attempts", handlers.Attempt.List)
		studentAPI.GET("/attempts/:id/paper", handlers.Attempt.GetPaper)
		studentAPI.POST("/attempts/:id/answers", handlers.Attempt.SaveAnswer)
		studentAPI.POST("/attempts/:id/submit", handlers.Attempt.Submit)
		studentAPI.GET("/attempts/:id/result", handlers.Attempt.GetResult)

		// Orders and enrollments
		studentAPI.POST("/orders", authLimiter.Middleware(), handlers.Order.CreateOrder)
		studentAPI.POST("/orders/verify", authLimiter.Middleware(), handlers.Order.VerifyPayment)
		studentAPI.POST("/orders/cancel", handlers.Order.CancelOrder)
		studentAPI.GET("/orders", handlers.Order.ListOrders)
		studentAPI.POST("/enrollments", handlers.Order.EnrollFree)
		studentAPI.GET("/enrollments", handlers.Order.ListEnrollments)
	}

	// ─── 4. WebSocket Group (Student WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStudentWSAuth(authService))
	{
		ws.GET("/attempts/:id/stream", handlers.WS.AttemptStream)
	}

	// ─── 5. Admin Group (JWT + Role) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		editor := middleware.RequireRole(model.AdminRoleEditor)
		superadmin := middleware.RequireRole(model.AdminRoleSuperadmin)

		// Dashboard, open to all admins
		adminAPI.GET("/dashboard", handlers.Dashboard.GetSummary)

		// Media upload
		adminAPI.POST("/media/upload", editor, handlers.Media.UploadMedia)

		// Company management
		adminAPI.POST("/companies", editor, handlers.Company.Create)
		adminAPI.PUT("/companies/:id", editor, handlers.Company.Update)
		adminAPI.PUT("/companies/:id/pattern", editor, handlers.Company.UpdatePattern)
		adminAPI.DELETE("/companies/:id", editor, handlers.Company.Delete)

		// Test management
		adminAPI.POST("/tests", editor, handlers.Test.Create)
		adminAPI.PUT("/tests/:id", editor, handlers.Test.Update)
		adminAPI.DELETE("/tests/:id", editor, handlers.Test.Delete)
		adminAPI.POST("/tests/:id/generate", editor, handlers.Test.Generate)

		// Question authoring
		adminAPI.GET("/tests/:id/questions", editor, handlers.Question.ListByTest)
		adminAPI.POST("/tests/:id/questions", editor, handlers.Question.Create)
		adminAPI.PUT("/tests/:id/questions/:question_id", editor, handlers.Question.Update)
		adminAPI.DELETE("/tests/:id/questions/:question_id", editor, handlers.Question.Delete)

		// Question banks
		adminAPI.GET("/companies/:id/banks", editor, handlers.Bank.ListByCompany)
		adminAPI.POST("/banks", editor, handlers.Bank.Create)
		adminAPI.GET("/banks/:id", editor, handlers.Bank.Get)
		adminAPI.GET("/banks/:id/questions", editor, handlers.Bank.ListQuestions)
		adminAPI.POST("/banks/:id/upload", editor, handlers.Bank.Append)
		adminAPI.DELETE("/banks/:id", editor, handlers.Bank.Delete)

		// Course management
		adminAPI.POST("/courses", editor, handlers.Course.Create)
		adminAPI.PUT("/courses/:id", editor, handlers.Course.Update)
		adminAPI.DELETE("/courses/:id", editor, handlers.Course.Delete)
		adminAPI.POST("/courses/:id/recordings", editor, handlers.Course.CreateRecording)
		adminAPI.DELETE("/courses/:id/recordings/:recording_id", editor, handlers.Course.DeleteRecording)

		// Student accounts and order reporting, superadmin only
		adminAPI.GET("/students", superadmin, handlers.StudentMgmt.List)
		adminAPI.GET("/students/:id", superadmin, handlers.StudentMgmt.Get)
		adminAPI.GET("/orders", superadmin, handlers.Order.AdminListOrders)
	}

	return router
}
