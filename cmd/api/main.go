package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recstudio/internal/cache"
	"recstudio/internal/config"
	"recstudio/internal/database"
	"recstudio/internal/logging"
	"recstudio/internal/metrics"
	"recstudio/internal/middleware"
	"recstudio/internal/modules/auth"
	"recstudio/internal/modules/catalog"
	"recstudio/internal/modules/gear"
	"recstudio/internal/modules/live"
	"recstudio/internal/modules/scheduling"
	"recstudio/internal/modules/timeline"
	jwtsvc "recstudio/internal/pkg/jwt"
	"recstudio/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultsCacheTTL = 5 * time.Minute

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, logCloser, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	metrics.Register()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("database migrate failed")
	}

	// Studio defaults are read on every booking, so they sit behind a cache:
	// redis shared across instances when reachable, in-process otherwise.
	memoryCache := cache.NewMemoryDefaultsCache(defaultsCacheTTL)
	var defaultsCache cache.DefaultsCache = memoryCache
	redisClient := cache.NewRedisClient(cfg.Redis)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cache.Ping(pingCtx, redisClient); err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address).
			Msg("redis unreachable, defaults cache runs in memory")
	} else {
		defaultsCache = cache.NewFailoverDefaultsCache(
			cache.NewRedisDefaultsCache(redisClient, defaultsCacheTTL),
			memoryCache,
			logger,
		)
	}
	cancelPing()

	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	studioRepo := repository.NewStudioRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	clientRepo := repository.NewClientRepository(db)
	gearRepo := repository.NewGearRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	defaultsRepo := repository.NewDefaultsRepository(db)

	j := jwtsvc.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute)

	hub := live.NewHub()

	authService := auth.NewService(userRepo, memberRepo, j)
	authHandler := auth.NewHandler(authService)

	schedulingService := scheduling.NewService(
		sessionRepo,
		roomRepo,
		clientRepo,
		memberRepo,
		studioRepo,
		defaultsRepo,
		defaultsCache,
		hub,
		cfg.Scheduling,
	)
	schedulingHandler := scheduling.NewHandler(schedulingService)

	gearService := gear.NewService(gearRepo, sessionRepo, memberRepo)
	gearHandler := gear.NewHandler(gearService)

	timelineService := timeline.NewService(sessionRepo, studioRepo, cfg.Scheduling)
	timelineHandler := timeline.NewHandler(timelineService)

	catalogService := catalog.NewService(roomRepo, clientRepo, gearRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	liveHandler := live.NewHandler(hub, j, memberRepo, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	sa := middleware.NewStudioAccess(memberRepo)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// public: register/login plus the board socket, which carries its
		// token in the query string and authenticates in the handler
		public := v1.Group("/")
		public.Use(limiter.Middleware())
		{
			authHandler.RegisterPublicRoutes(public)
			liveHandler.RegisterRoutes(public)
		}

		// protected: the limiter runs after JWT so buckets key by user id
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j), limiter.Middleware())
		{
			authHandler.RegisterProtectedRoutes(protected)
			schedulingHandler.RegisterSessionRoutes(protected)
			gearHandler.RegisterRoutes(protected)

			// studio-scoped: membership resolved once per request
			studios := protected.Group("/studios/:id")
			studios.Use(sa.RequireMember())
			{
				schedulingHandler.RegisterStudioRoutes(studios)
				timelineHandler.RegisterStudioRoutes(studios)
				catalogHandler.RegisterStudioRoutes(studios)
			}
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Str("environment", cfg.App.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown did not finish cleanly")
	}
	hub.Close()

	logger.Info().Msg("server stopped")
}
