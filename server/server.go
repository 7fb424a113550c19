package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"kb-server/cache"
	"kb-server/confs"
	"kb-server/db"
	httpHandler "kb-server/handlers/http"
	"kb-server/middlewares"
	"kb-server/repositories"
	"kb-server/services"
	"kb-server/usecases"
)

const (
	maxBodyBytes  = 10 << 20 // 10MB request body cap
	rateWindow    = 15 * time.Minute
	apiRateLimit  = 500
	authRateLimit = 100
	shutdownGrace = 10 * time.Second
	apiLimitMsg   = "Too many API requests from this IP, please try again later."
	authLimitMsg  = "Too many authentication attempts from this IP, please try again later."
)

type Server struct {
	app *gin.Engine
	cfg *confs.Config
	db  db.Database
	log *logrus.Logger
}

func New(cfg *confs.Config, database db.Database, log *logrus.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		app: gin.New(),
		cfg: cfg,
		db:  database,
		log: log,
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.Use(s.recovery())
	s.app.Use(middlewares.SecurityHeaders())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = s.cfg.CORSOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsCfg.MaxAge = 24 * time.Hour
	s.app.Use(cors.New(corsCfg))

	s.app.Use(middlewares.BodyLimit(maxBodyBytes))

	if !s.cfg.IsProduction() {
		s.app.Use(middlewares.RequestLogger(s.log))
	}

	// two independent windows, both in-process; a single-instance
	// deployment constraint
	apiWindow := cache.NewHitWindow(rateWindow, apiRateLimit)
	authWindow := cache.NewHitWindow(rateWindow, authRateLimit)
	apiWindow.StartSweeper(rateWindow)
	authWindow.StartSweeper(rateWindow)

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	articleRepo := repositories.NewArticlePgRepository(s.db)

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo, []byte(s.cfg.JWTSecret))
	articleUseCase := usecases.NewArticleUseCase(articleRepo)
	summaryClient := services.NewOpenAIClient(s.cfg.OpenAIAPIKey)
	summarizeUseCase := usecases.NewSummarizeUseCase(articleRepo, summaryClient, s.log)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	articleHandler := httpHandler.NewArticleHandler(articleUseCase)
	aiHandler := httpHandler.NewAIHandler(summarizeUseCase)

	requireAuth := middlewares.Authenticate([]byte(s.cfg.JWTSecret))

	api := s.app.Group("/api")
	api.Use(middlewares.RateLimit(apiWindow, apiLimitMsg))
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"message":   "Server is healthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		auth := api.Group("/auth")
		auth.Use(middlewares.RateLimit(authWindow, authLimitMsg))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/validate", authHandler.Validate)
		}

		articles := api.Group("/articles")
		articles.Use(requireAuth)
		{
			articles.POST("", articleHandler.Create)
			articles.GET("", articleHandler.List)
			articles.GET("/:id", articleHandler.Get)
			articles.PUT("/:id", articleHandler.Update)
			articles.DELETE("/:id", articleHandler.Delete)
		}

		ai := api.Group("/ai")
		ai.Use(requireAuth)
		{
			ai.POST("/summarize/:id", aiHandler.Summarize)
		}
	}

	s.app.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path),
		})
	})
}

// recovery turns a handler panic into a 500 envelope instead of tearing
// the process down. The panic detail leaves the process only outside
// production.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		s.log.WithField("panic", recovered).Error("recovered from handler panic")

		body := gin.H{"success": false, "message": "Internal server error"}
		if !s.cfg.IsProduction() {
			body["detail"] = fmt.Sprintf("%v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests and
// closes the store.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.app,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(logrus.Fields{
			"port": s.cfg.Port,
			"env":  s.cfg.Environment,
		}).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}
