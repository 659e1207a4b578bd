// Package server assembles the HTTP API: the auth surface, the provider
// normalization layer, and the dashboard panels behind the access gate.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Hema-02/intent-cloud-project/internal/assistant"
	authhandlers "github.com/Hema-02/intent-cloud-project/internal/auth/handlers"
	"github.com/Hema-02/intent-cloud-project/internal/auth/jwt"
	authrepo "github.com/Hema-02/intent-cloud-project/internal/auth/repository"
	authservice "github.com/Hema-02/intent-cloud-project/internal/auth/service"
	"github.com/Hema-02/intent-cloud-project/internal/billing"
	"github.com/Hema-02/intent-cloud-project/internal/domain/identity"
	"github.com/Hema-02/intent-cloud-project/internal/monitoring"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	awsprovider "github.com/Hema-02/intent-cloud-project/internal/provider/aws"
	azureprovider "github.com/Hema-02/intent-cloud-project/internal/provider/azure"
	gcpprovider "github.com/Hema-02/intent-cloud-project/internal/provider/gcp"
	"github.com/Hema-02/intent-cloud-project/internal/provider/health"
	ibmprovider "github.com/Hema-02/intent-cloud-project/internal/provider/ibm"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/internal/resources"
	"github.com/Hema-02/intent-cloud-project/internal/security"
	"github.com/Hema-02/intent-cloud-project/pkg/cache"
	"github.com/Hema-02/intent-cloud-project/pkg/config"
	"github.com/Hema-02/intent-cloud-project/pkg/database"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
	"github.com/Hema-02/intent-cloud-project/pkg/metrics"
	authmw "github.com/Hema-02/intent-cloud-project/pkg/middleware/auth"
	"github.com/Hema-02/intent-cloud-project/pkg/middleware/ratelimit"
)

type Server struct {
	config  *config.Config
	logger  logger.Logger
	router  *gin.Engine
	http    *http.Server
	checker *health.Checker
	db      *gorm.DB
	redis   *redis.Client
}

func New(cfg *config.Config, log logger.Logger) (*Server, error) {
	var db *gorm.DB
	if cfg.Database.Configured() {
		var err error
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("No database configured, using in-memory stores")
	}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	} else {
		log.Warn("No redis configured, token revocation and shared rate limits disabled")
	}

	registry := buildRegistry(cfg, log)
	checker := health.NewChecker(registry, log)

	resourceService := resources.NewService(registry, log).
		WithCache(cache.New(redisClient, "intentcloud", 30*time.Second))

	s := &Server{
		config:  cfg,
		logger:  log,
		checker: checker,
		db:      db,
		redis:   redisClient,
	}
	s.buildRouter(resourceService)

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}
	return s, nil
}

// buildRegistry wires one backend per provider: the live SDK client when
// credentials are configured, the seeded demo store otherwise. A live client
// that fails to construct also degrades to demo mode.
func buildRegistry(cfg *config.Config, log logger.Logger) *provider.Registry {
	registry := provider.NewRegistry()
	ctx := context.Background()

	if cfg.Providers.AWS.Configured() {
		backend, err := awsprovider.New(ctx, cfg.Providers.AWS, log)
		if err == nil {
			registry.Register(backend)
		} else {
			log.Error("Failed to initialize AWS backend, using demo mode", "error", err)
			registry.Register(static.New("aws"))
		}
	} else {
		log.Info("AWS credentials not configured, running in demo mode")
		registry.Register(static.New("aws"))
	}

	if cfg.Providers.GCP.Configured() {
		backend, err := gcpprovider.New(ctx, cfg.Providers.GCP, log)
		if err == nil {
			registry.Register(backend)
		} else {
			log.Error("Failed to initialize GCP backend, using demo mode", "error", err)
			registry.Register(static.New("gcp"))
		}
	} else {
		log.Info("GCP credentials not configured, running in demo mode")
		registry.Register(static.New("gcp"))
	}

	if cfg.Providers.Azure.Configured() {
		backend, err := azureprovider.New(cfg.Providers.Azure, log)
		if err == nil {
			registry.Register(backend)
		} else {
			log.Error("Failed to initialize Azure backend, using demo mode", "error", err)
			registry.Register(static.New("azure"))
		}
	} else {
		log.Info("Azure credentials not configured, running in demo mode")
		registry.Register(static.New("azure"))
	}

	if cfg.Providers.IBM.Configured() {
		backend, err := ibmprovider.New(cfg.Providers.IBM, log)
		if err == nil {
			registry.Register(backend)
		} else {
			log.Error("Failed to initialize IBM backend, using demo mode", "error", err)
			registry.Register(static.New("ibm"))
		}
	} else {
		log.Info("IBM credentials not configured, running in demo mode")
		registry.Register(static.New("ibm"))
	}

	return registry
}

func (s *Server) buildRouter(resourceService *resources.Service) {
	jwtManager := jwt.NewManager(s.config.Auth)
	gate := authmw.New(jwtManager, s.redis)

	userRepo := s.buildUserRepository()
	authSvc := authservice.NewAuthService(userRepo, jwtManager, s.redis, s.logger)
	authH := authhandlers.NewAuthHandlers(authSvc, s.logger)

	resourceH := resources.NewHandlers(resourceService, s.logger)
	monitoringH := monitoring.NewHandlers(monitoring.NewService(resourceService, s.logger), s.logger)
	billingH := billing.NewHandlers(billing.NewService(), s.logger)
	securityH := security.NewHandlers(security.NewService(), s.logger)

	interpreter := assistant.NewInterpreter(resourceService, s.logger)
	assistantH := assistant.NewHandlers(interpreter, s.buildHistoryStore(), s.logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	router.Use(metrics.Middleware())
	router.Use(cors())

	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", ratelimit.LoginMiddleware(s.buildLoginLimiter()), authH.Login)
	auth.POST("/demo-login", authH.DemoLogin)
	auth.POST("/signout", gate.Authenticate(), authH.Signout)
	auth.GET("/me", gate.Authenticate(), authH.Me)

	res := api.Group("/resources", gate.Authenticate())
	res.GET("/:provider", resourceH.List)
	res.GET("/:provider/:type/:id", resourceH.Get)
	res.POST("/:provider/:type", authmw.RequireRole(identity.RoleUser), resourceH.Create)
	res.PUT("/:provider/:type/:id", authmw.RequireRole(identity.RoleUser), resourceH.Update)
	res.DELETE("/:provider/:type/:id", authmw.RequireRole(identity.RoleUser), resourceH.Delete)

	mon := api.Group("/monitoring", gate.Authenticate(), authmw.RequireRole(identity.RoleUser))
	mon.GET("/:provider", monitoringH.Overview)
	mon.GET("/:provider/metrics/:metric", monitoringH.Metric)
	mon.GET("/:provider/alerts", monitoringH.Alerts)

	bill := api.Group("/billing", gate.Authenticate(), authmw.RequireRole(identity.RoleUser))
	bill.GET("/:provider", billingH.Summary)
	bill.GET("/:provider/breakdown", billingH.Breakdown)
	bill.GET("/:provider/alerts", billingH.Alerts)

	sec := api.Group("/security", gate.Authenticate(), authmw.RequireRole(identity.RoleAdmin))
	sec.GET("/:provider", securityH.Overview)
	sec.GET("/:provider/vulnerabilities", securityH.Vulnerabilities)
	sec.GET("/:provider/compliance", securityH.Compliance)
	sec.POST("/:provider/scan", securityH.Scan)

	nlp := api.Group("/nlp", gate.Authenticate())
	nlp.POST("/process", authmw.RequireRole(identity.RoleUser), assistantH.Process)
	nlp.GET("/suggestions", assistantH.Suggestions)
	nlp.GET("/history", assistantH.History)

	api.GET("/providers", gate.Authenticate(), s.handleProviders(resourceService))

	s.router = router
}

func (s *Server) buildUserRepository() authrepo.UserRepository {
	if s.db == nil {
		return authrepo.NewMemoryRepository()
	}
	repo, err := authrepo.NewUserRepository(s.db)
	if err != nil {
		s.logger.Error("Failed to migrate user table, using in-memory store", "error", err)
		return authrepo.NewMemoryRepository()
	}
	return repo
}

func (s *Server) buildHistoryStore() assistant.HistoryStore {
	if s.db == nil {
		return assistant.NewMemoryHistoryStore()
	}
	store, err := assistant.NewHistoryStore(s.db)
	if err != nil {
		s.logger.Error("Failed to migrate command history, using in-memory store", "error", err)
		return assistant.NewMemoryHistoryStore()
	}
	return store
}

func (s *Server) buildLoginLimiter() ratelimit.Limiter {
	span := time.Duration(s.config.Auth.LoginWindow) * time.Second
	if s.redis != nil {
		return ratelimit.NewRedisLimiter(s.redis, s.config.Auth.LoginLimit, span)
	}
	return ratelimit.NewInMemoryLimiter(s.config.Auth.LoginLimit, span)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"providers": s.checker.Snapshot(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleProviders(resourceService *resources.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"providers": resourceService.Providers(),
			"health":    s.checker.Snapshot(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) Run() error {
	if err := s.checker.Start(); err != nil {
		return err
	}
	s.logger.Info("Server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.checker.Stop()
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("Failed to close redis client", "error", err)
		}
	}
	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			s.logger.Warn("Failed to close database", "error", err)
		}
	}
	return s.http.Shutdown(ctx)
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"clientIp", c.ClientIP(),
		)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
