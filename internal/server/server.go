// Package server wires storage, services, handlers and the request
// governance pipeline into one gin engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentboard/internal/config"
	"agentboard/internal/handler"
	"agentboard/internal/llm"
	"agentboard/internal/middleware"
	"agentboard/internal/model"
	"agentboard/internal/ratelimit"
	"agentboard/internal/repository"
	"agentboard/internal/service"
	"agentboard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("Connected to database")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Board{},
		&model.Column{},
		&model.Task{},
		&model.TaskEvent{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.Run{},
		&model.MemoryDocument{},
		&model.MemoryChunk{},
		&model.EmbeddingEntry{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	engine := NewEngine(cfg, db)

	return &Server{Engine: engine, DB: db, Config: cfg}, nil
}

// NewEngine builds the gin engine with the full middleware chain and route
// table. Split out from Init so tests can run it against any database.
func NewEngine(cfg *config.Config, db *gorm.DB) *gin.Engine {
	boardRepo := repository.NewBoardRepository(db)
	chatRepo := repository.NewChatRepository(db)
	memoryRepo := repository.NewMemoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	tracer := telemetry.NewTracer(cfg.TracingEnabled)
	client := llm.NewClientFromConfig(cfg)

	boardService := service.NewBoardService(boardRepo)
	chatService := service.NewChatService(chatRepo, client, tracer, providerName(cfg), cfg.LLMModel)
	memoryService := service.NewMemoryService(memoryRepo, cfg.VectorDimensions, cfg.ChunkSize, cfg.SearchLimitMax)
	agentService := service.NewAgentService(chatRepo)

	boardHandler := handler.NewBoardHandler(boardService)
	taskHandler := handler.NewTaskHandler(boardService)
	chatHandler := handler.NewChatHandler(chatService)
	memoryHandler := handler.NewMemoryHandler(memoryService, cfg.SearchLimitDefault)
	agentHandler := handler.NewAgentHandler(agentService)
	systemHandler := handler.NewSystemHandler(db, userRepo)

	engine := gin.New()
	engine.Use(gin.Recovery())

	// Governance pipeline: body cap, auth, rate limiting. The request
	// deadline is applied outside the engine (see Run), so it bounds this
	// whole chain.
	exempt := middleware.ExemptPaths()
	engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	engine.Use(middleware.BearerAuth(cfg.AuthToken, exempt))
	engine.Use(middleware.RateLimit(ratelimit.New(), middleware.RateLimitConfig{
		IPWindow:    cfg.RateLimitIPWindow,
		TokenWindow: cfg.RateLimitTokenWindow,
		PerIP:       cfg.RateLimitPerIP,
		PerToken:    cfg.RateLimitPerToken,
	}, exempt))
	engine.Use(middleware.Metrics())

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	{
		api.GET("/health", systemHandler.Health)
		api.GET("/ready", systemHandler.Ready)
		api.GET("/me", systemHandler.Me)
		api.GET("/agent/status", agentHandler.Status)

		api.POST("/boards", boardHandler.Create)
		api.GET("/boards", boardHandler.List)
		api.GET("/boards/:id", boardHandler.Get)
		api.PATCH("/boards/:id", boardHandler.Update)
		api.GET("/boards/:id/tasks", taskHandler.ListByBoard)

		api.POST("/tasks", taskHandler.Create)
		api.PATCH("/tasks/:id", taskHandler.Update)
		api.POST("/tasks/:id/move", taskHandler.Move)
		api.GET("/tasks/:id/history", taskHandler.History)

		api.POST("/chat/sessions", chatHandler.CreateSession)
		api.GET("/chat/sessions", chatHandler.ListSessions)
		api.POST("/chat/sessions/:id/messages", chatHandler.AddMessage)
		api.GET("/chat/sessions/:id/messages", chatHandler.ListMessages)

		api.POST("/memory/documents", memoryHandler.Ingest)
		api.GET("/memory/documents/:id", memoryHandler.GetDocument)
		api.POST("/memory/search", memoryHandler.Search)
	}

	return engine
}

func providerName(cfg *config.Config) string {
	switch {
	case cfg.LLMProvider == "anthropic":
		return "anthropic"
	case cfg.LLMBaseURL != "":
		return "openai-compatible"
	default:
		return "echo"
	}
}

func (s *Server) Run() {
	// The timeout wrapper runs the engine per-request in its own goroutine
	// with a private buffered writer, so every inbound request gets a fresh
	// gin context regardless of stragglers.
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: middleware.Timeout(s.Engine, s.Config.RequestTimeout),
	}

	go func() {
		log.Infof("Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %s", err)
	}

	log.Info("Server exited properly")
}
