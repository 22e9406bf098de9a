package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	accountHandler "github.com/rxhub/member-portal-api/internal/handler/account"
	authHandler "github.com/rxhub/member-portal-api/internal/handler/auth"
	bookmarkHandler "github.com/rxhub/member-portal-api/internal/handler/bookmark"
	dashboardHandler "github.com/rxhub/member-portal-api/internal/handler/dashboard"
	healthHandler "github.com/rxhub/member-portal-api/internal/handler/health"
	profileHandler "github.com/rxhub/member-portal-api/internal/handler/profile"
	trainingHandler "github.com/rxhub/member-portal-api/internal/handler/training"

	"github.com/rxhub/member-portal-api/internal/config"
	"github.com/rxhub/member-portal-api/internal/middleware"
	"github.com/rxhub/member-portal-api/internal/provider"
	"github.com/rxhub/member-portal-api/internal/repository/postgres"
	"github.com/rxhub/member-portal-api/internal/router"
	dashboardService "github.com/rxhub/member-portal-api/internal/service/dashboard"
	profileService "github.com/rxhub/member-portal-api/internal/service/profile"
	trainingService "github.com/rxhub/member-portal-api/internal/service/training"
	authStore "github.com/rxhub/member-portal-api/internal/store/auth"
	bookmarkStore "github.com/rxhub/member-portal-api/internal/store/bookmark"
	profileStore "github.com/rxhub/member-portal-api/internal/store/profile"
	"github.com/rxhub/member-portal-api/pkg/event"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal(err, "failed to parse redis URL")
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	base := postgres.NewBaseRepository(db)
	accountRepo := postgres.NewAccountRepository(base)
	profileRepo := postgres.NewProfileRepository(base)
	bookmarkRepo := postgres.NewBookmarkRepository(base)
	activityRepo := postgres.NewActivityRepository(base)
	announcementRepo := postgres.NewAnnouncementRepository(base)
	trainingRepo := postgres.NewTrainingRepository(base)
	catalogRepo := postgres.NewCatalogRepository(base)

	bus := event.NewBus()

	sessionProvider := provider.NewSessionProvider(accountRepo, rdb, provider.Config{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
	}, log)

	cache := gocache.New(cfg.Session.TTL, 10*time.Minute)

	auth := authStore.NewStore(sessionProvider, accountRepo, bus, log)
	profiles := profileStore.NewStore(profileRepo, cache, bus, log)
	bookmarks := bookmarkStore.NewStore(bookmarkRepo, bus)

	profileSvc := profileService.NewService(profileRepo, log)
	trainingSvc := trainingService.NewService(trainingRepo, log)
	dashboardSvc := dashboardService.NewService(catalogRepo, activityRepo, announcementRepo, bookmarkRepo, log)

	// Restore any session that survived a restart before serving.
	if err := auth.CheckSession(context.Background()); err != nil {
		log.Warn("failed to restore session", "error", err.Error())
	}

	authMiddleware := middleware.NewAuthMiddleware(sessionProvider)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		healthHandler.NewHandler(db, rdb),
		authHandler.NewHandler(auth),
		accountHandler.NewHandler(auth),
		profileHandler.NewHandler(profileSvc, profiles),
		bookmarkHandler.NewHandler(bookmarks, profiles, dashboardSvc),
		dashboardHandler.NewHandler(dashboardSvc, profiles),
		trainingHandler.NewHandler(trainingSvc, profiles),
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    corsConfig,
			MetricsPrefix: "member_portal",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited")
}
