package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"edumart/internal/caching"
	"edumart/internal/handlers"
	"edumart/internal/jobs/background"
	"edumart/internal/middleware"
	"edumart/internal/models"
	"edumart/internal/normalize"
	"edumart/internal/repositories"
	"edumart/internal/services"
	"edumart/internal/validation"
	"edumart/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "edumart"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	mediaSvc, err := services.NewMediaService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}

	// Create repositories
	orgRepo := repositories.NewOrganizationRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	studentRepo := repositories.NewStudentRepo(pool)
	profileRepo := repositories.NewProfileRepo(pool)
	orgPaymentRepo := repositories.NewOrganizationPaymentRepo(pool)
	studentPaymentRepo := repositories.NewStudentPaymentRepo(pool)
	resultRepo := repositories.NewResultRepo(pool)
	examRepo := repositories.NewExamRepo(pool)
	departmentRepo := repositories.NewDepartmentRepo(pool)
	bannerRepo := repositories.NewBannerRepo(pool)
	noticeRepo := repositories.NewNoticeRepo(pool)
	aboutRepo := repositories.NewAboutRepo(pool)
	refRepo := repositories.NewRefRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Validation registry and reference resolver
	registry := validation.NewEntityRegistry()
	resolver := normalize.NewResolver(refRepo)

	// Create services
	orgService := services.NewOrganizationService(orgRepo)
	userService := services.NewUserService(userRepo, studentRepo, profileRepo)
	orgPaymentService := services.NewOrganizationPaymentService(orgPaymentRepo, orgService)
	studentPaymentService := services.NewStudentPaymentService(studentPaymentRepo)
	resultService := services.NewResultService(resultRepo)
	bannerService := services.NewBannerService(bannerRepo, mediaSvc, cacheSvc)
	authService := services.NewAuthService(userRepo, orgRepo, cacheSvc, jwtSecret, 15*time.Minute, 7*24*time.Hour)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authService, userService)
	orgHandlers := handlers.NewOrganizationHandlers(orgService, registry)
	userHandlers := handlers.NewUserHandlers(userService, registry)
	studentHandlers := handlers.NewStudentHandlers(studentRepo, registry)
	orgPaymentHandlers := handlers.NewOrganizationPaymentHandlers(orgPaymentService, resolver, registry)
	studentPaymentHandlers := handlers.NewStudentPaymentHandlers(studentPaymentService, resolver, registry)
	resultHandlers := handlers.NewResultHandlers(resultService, resolver, registry)
	examHandlers := handlers.NewExamHandlers(examRepo, registry)
	departmentHandlers := handlers.NewDepartmentHandlers(departmentRepo, orgRepo, cacheSvc, registry)
	bannerHandlers := handlers.NewBannerHandlers(bannerService, bannerRepo, orgRepo, cacheSvc, registry)
	noticeHandlers := handlers.NewNoticeHandlers(noticeRepo, orgRepo, cacheSvc, registry)
	aboutHandlers := handlers.NewAboutHandlers(aboutRepo, orgRepo, cacheSvc, registry)

	// Background jobs
	scheduler := background.NewJobScheduler(orgService, cacheSvc, orgRepo, departmentRepo, noticeRepo, bannerRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", handlers.ReadinessCheck)
	e.GET("/health/detailed", func(c echo.Context) error {
		return handlers.HealthCheckDetailed(c, pool)
	})

	// API routes
	v1 := e.Group("/api/v1")
	v1.Use(middleware.VersionHeader("v1"))

	// Authentication routes (no JWT required)
	v1.POST("/auth/login", authHandlers.Login)
	v1.POST("/auth/refresh", authHandlers.Refresh)

	// Public content routes, keyed by organization subdomain
	v1.GET("/organization/:domain", orgHandlers.GetOrganization)
	v1.GET("/department/:domain", departmentHandlers.GetDepartmentsByDomain)
	v1.GET("/banner/:domain", bannerHandlers.GetBannersByDomain)
	v1.GET("/notice/:domain", noticeHandlers.GetNoticesByDomain)
	v1.GET("/about/:domain", aboutHandlers.GetAboutByDomain)

	// Protected routes (require JWT)
	jwtConfig := echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(middleware.JWTCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}

	seedClaims := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			claims, ok := token.Claims.(*middleware.JWTCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if err := middleware.SeedContext(c, claims); err != nil {
				return err
			}
			return next(c)
		}
	}

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig), seedClaims)

	staffRoles := middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleTeacher, models.RoleStaff)
	adminRoles := middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin)
	superAdminOnly := middleware.RequireRole(models.RoleSuperAdmin)

	protected.GET("/me", authHandlers.Me)

	// Organization management (platform level)
	protected.POST("/organization/create-organization", orgHandlers.CreateOrganization, superAdminOnly)
	protected.GET("/organization", orgHandlers.ListOrganizations, superAdminOnly)
	protected.GET("/organization/single/:id", orgHandlers.GetSingleOrganization, adminRoles)
	protected.PUT("/organization/:id", orgHandlers.UpdateOrganization, superAdminOnly)
	protected.DELETE("/organization/:id", orgHandlers.DeleteOrganization, superAdminOnly)

	// Users
	protected.POST("/user/create-user", userHandlers.CreateUser, adminRoles)
	protected.GET("/user", userHandlers.ListUsers, adminRoles)
	protected.GET("/user/single/:id", userHandlers.GetSingleUser, adminRoles)
	protected.PUT("/user/:id", userHandlers.UpdateUser, adminRoles)
	protected.PUT("/user/block/:id", userHandlers.BlockUser, adminRoles)
	protected.DELETE("/user/:id", userHandlers.DeleteUser, adminRoles)

	// Students
	protected.GET("/student", studentHandlers.ListStudents, staffRoles)
	protected.GET("/student/single/:id", studentHandlers.GetSingleStudent, staffRoles)
	protected.PUT("/student/:id", studentHandlers.UpdateStudent, adminRoles)
	protected.DELETE("/student/:id", studentHandlers.DeleteStudent, adminRoles)

	// Organization payments (platform level)
	protected.POST("/organization-payment/create-organization-payment", orgPaymentHandlers.CreateOrganizationPayment, superAdminOnly)
	protected.GET("/organization-payment/organization/:organizationId", orgPaymentHandlers.ListOrganizationPayments, superAdminOnly)
	protected.GET("/organization-payment/single/:id", orgPaymentHandlers.GetSingleOrganizationPayment, superAdminOnly)
	protected.PUT("/organization-payment/:id", orgPaymentHandlers.UpdateOrganizationPayment, superAdminOnly)
	protected.PUT("/organization-payment/mark-paid/:id", orgPaymentHandlers.MarkOrganizationPaymentPaid, superAdminOnly)
	protected.PUT("/organization-payment/restore/:id", orgPaymentHandlers.RestoreOrganizationPayment, superAdminOnly)
	protected.DELETE("/organization-payment/:id", orgPaymentHandlers.DeleteOrganizationPayment, superAdminOnly)

	// Student payments
	protected.POST("/student-payment/create-student-payment", studentPaymentHandlers.CreateStudentPayment, adminRoles)
	protected.GET("/student-payment", studentPaymentHandlers.ListStudentPayments, staffRoles)
	protected.GET("/student-payment/single/:id", studentPaymentHandlers.GetSingleStudentPayment, staffRoles)
	protected.PUT("/student-payment/:id", studentPaymentHandlers.UpdateStudentPayment, adminRoles)
	protected.PUT("/student-payment/restore/:id", studentPaymentHandlers.RestoreStudentPayment, adminRoles)
	protected.DELETE("/student-payment/:id", studentPaymentHandlers.DeleteStudentPayment, adminRoles)

	// Results
	protected.POST("/result/create-result", resultHandlers.CreateResult, staffRoles)
	protected.GET("/result", resultHandlers.ListResults, staffRoles)
	protected.GET("/result/single/:id", resultHandlers.GetSingleResult, staffRoles)
	protected.PUT("/result/:id", resultHandlers.UpdateResult, staffRoles)
	protected.DELETE("/result/:id", resultHandlers.DeleteResult, adminRoles)

	// Exams
	protected.POST("/exam/create-exam", examHandlers.CreateExam, staffRoles)
	protected.GET("/exam", examHandlers.ListExams, staffRoles)
	protected.GET("/exam/single/:id", examHandlers.GetSingleExam, staffRoles)
	protected.PUT("/exam/:id", examHandlers.UpdateExam, staffRoles)
	protected.PUT("/exam/restore/:id", examHandlers.RestoreExam, adminRoles)
	protected.DELETE("/exam/:id", examHandlers.DeleteExam, adminRoles)

	// Departments
	protected.POST("/department/create-department", departmentHandlers.CreateDepartment, adminRoles)
	protected.GET("/department/single/:id", departmentHandlers.GetSingleDepartment, staffRoles)
	protected.PUT("/department/:id", departmentHandlers.UpdateDepartment, adminRoles)
	protected.DELETE("/department/:id", departmentHandlers.DeleteDepartment, adminRoles)

	// Banners
	protected.POST("/banner/create-banner", bannerHandlers.CreateBanner, adminRoles)
	protected.GET("/banner/single/:id", bannerHandlers.GetSingleBanner, staffRoles)
	protected.PUT("/banner/:id", bannerHandlers.UpdateBanner, adminRoles)
	protected.DELETE("/banner/:id", bannerHandlers.DeleteBanner, adminRoles)

	// Notices
	protected.POST("/notice/create-notice", noticeHandlers.CreateNotice, adminRoles)
	protected.GET("/notice/single/:id", noticeHandlers.GetSingleNotice, staffRoles)
	protected.PUT("/notice/:id", noticeHandlers.UpdateNotice, adminRoles)
	protected.DELETE("/notice/:id", noticeHandlers.DeleteNotice, adminRoles)

	// About
	protected.POST("/about/create-about", aboutHandlers.CreateAbout, adminRoles)
	protected.GET("/about/single/:id", aboutHandlers.GetSingleAbout, staffRoles)
	protected.PUT("/about/:id", aboutHandlers.UpdateAbout, adminRoles)
	protected.DELETE("/about/:id", aboutHandlers.DeleteAbout, adminRoles)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Edumart server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
