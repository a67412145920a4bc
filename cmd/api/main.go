package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/veljkom/e-dnevnik-api/api/swagger"
	"github.com/veljkom/e-dnevnik-api/internal/handler"
	"github.com/veljkom/e-dnevnik-api/internal/middleware"
	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	"github.com/veljkom/e-dnevnik-api/internal/service"
	"github.com/veljkom/e-dnevnik-api/pkg/cache"
	"github.com/veljkom/e-dnevnik-api/pkg/config"
	"github.com/veljkom/e-dnevnik-api/pkg/database"
	"github.com/veljkom/e-dnevnik-api/pkg/logger"
	corsmiddleware "github.com/veljkom/e-dnevnik-api/pkg/middleware/cors"
	reqidmiddleware "github.com/veljkom/e-dnevnik-api/pkg/middleware/requestid"
)

// @title e-Dnevnik API
// @version 1.0.0
// @description Digital gradebook backend for a primary school
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	linkRepo := repository.NewTeachingLinkRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	userSvc := service.NewUserService(userRepo, classroomRepo, validate, logr)
	classroomSvc := service.NewClassroomService(classroomRepo, userRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)
	linkSvc := service.NewTeachingLinkService(linkRepo, userRepo, classroomRepo, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, linkRepo, userRepo, validate, logr)
	gradeSvc := service.NewGradeService(gradeRepo, linkRepo, validate, logr)
	exportSvc := service.NewExportService(gradeRepo, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	linkHandler := handler.NewTeachingLinkHandler(linkSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc, exportSvc)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/me", userHandler.Me)

	admin := authed.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PATCH("/users/:id", userHandler.Update)
	admin.GET("/teachers", userHandler.Teachers)
	admin.GET("/classrooms", classroomHandler.List)
	admin.POST("/classrooms", classroomHandler.Create)
	admin.PATCH("/classrooms/:id", classroomHandler.SetHomeroom)
	admin.GET("/subjects", subjectHandler.List)
	admin.POST("/subjects", subjectHandler.Create)
	admin.DELETE("/subjects", subjectHandler.Delete)
	admin.GET("/teacher-subjects", linkHandler.List)
	admin.POST("/teacher-subjects", linkHandler.Create)
	admin.DELETE("/teacher-subjects", linkHandler.Delete)

	authed.GET("/assignments", assignmentHandler.List)
	authed.POST("/assignments", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), assignmentHandler.Create)
	authed.DELETE("/assignments", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), assignmentHandler.Delete)

	authed.GET("/grades", gradeHandler.List)
	authed.POST("/grades", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), gradeHandler.Create)
	authed.GET("/grades/me", middleware.RequireRoles(models.RoleStudent), gradeHandler.MyGrades)
	authed.GET("/grades/me/export", middleware.RequireRoles(models.RoleStudent), gradeHandler.ExportMyGrades)
	authed.GET("/classrooms/me", middleware.RequireRoles(models.RoleStudent), classroomHandler.MyClassroom)

	teacher := authed.Group("/teacher", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	teacher.GET("/grades/context", linkHandler.GradingContext)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
