package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keynertyc/Fullstack-Test-01/internal/auth"
	"github.com/keynertyc/Fullstack-Test-01/internal/config"
	"github.com/keynertyc/Fullstack-Test-01/internal/database"
	"github.com/keynertyc/Fullstack-Test-01/internal/handlers"
	"github.com/keynertyc/Fullstack-Test-01/internal/middleware"
	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
	"github.com/keynertyc/Fullstack-Test-01/internal/services"
	"github.com/keynertyc/Fullstack-Test-01/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database ready")

	// Wiring: repositories -> services -> handlers
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	accessService := services.NewAccessService(projectRepo)
	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo, userRepo, accessService)
	taskService := services.NewTaskService(taskRepo, accessService)
	statsService := services.NewStatisticsService(statsRepo)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	statsHandler := handlers.NewStatisticsHandler(statsService)

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task tracker API is running",
		})
	})

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/profile", middleware.RequireAuth(tokens), authHandler.GetProfile)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/collaborators", projectHandler.ListCollaborators)
			projects.POST("/:id/collaborators", projectHandler.AddCollaborator)
			projects.DELETE("/:id/collaborators/:userId", projectHandler.RemoveCollaborator)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.GET("/project/:projectId", taskHandler.ListTasksByProject)
		}

		api.GET("/statistics", middleware.RequireAuth(tokens), statsHandler.GetStatistics)
	}

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
