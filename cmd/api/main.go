package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/legalconnect/schedule-service/internal/config"
	dbpkg "github.com/legalconnect/schedule-service/internal/db"
	"github.com/legalconnect/schedule-service/internal/httperr"
	"github.com/legalconnect/schedule-service/internal/identity"
	infraRepo "github.com/legalconnect/schedule-service/internal/infra/repository"
	"github.com/legalconnect/schedule-service/internal/lock"
	"github.com/legalconnect/schedule-service/internal/logging"
	"github.com/legalconnect/schedule-service/internal/middleware"
	"github.com/legalconnect/schedule-service/internal/notification"
	"github.com/legalconnect/schedule-service/internal/reminder"
	"github.com/legalconnect/schedule-service/internal/routes"
)

func main() {

	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	db := dbpkg.NewDB(cfg)

	// Without redis the booking lock degrades to an in-process mutex,
	// which is only safe for a single instance.
	var locker lock.Locker = lock.NewKeyedMutex()
	if cfg.RedisAddr != "" {
		client, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPass)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		locker = lock.NewRedisLocker(client, 10*time.Second)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, using in-process booking lock")
	}

	ids := identity.NewHTTPClient(cfg.UserServiceURL)
	notify := notification.NewDispatcher(notification.NewSMTPMailer(cfg))

	reminders := reminder.NewScheduler(infraRepo.NewSchedulingGormRepository(db), ids, notify)
	if err := reminders.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start reminder scheduler")
	}
	defer reminders.Stop()

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "route_not_found", "no such endpoint")
	})

	routes.RegisterRoutes(r, db, cfg, ids, locker, notify)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
