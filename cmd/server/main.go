package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padelgestionado/padel-club-api/internal/app"
	"github.com/padelgestionado/padel-club-api/internal/cache"
	"github.com/padelgestionado/padel-club-api/internal/config"
	"github.com/padelgestionado/padel-club-api/internal/database"
	"github.com/padelgestionado/padel-club-api/internal/handler"
	"github.com/padelgestionado/padel-club-api/internal/middleware"
	"github.com/padelgestionado/padel-club-api/internal/queue"
	"github.com/padelgestionado/padel-club-api/internal/repository"
	"github.com/padelgestionado/padel-club-api/internal/router"
	"github.com/padelgestionado/padel-club-api/internal/scheduler"
	queue_publisher "github.com/padelgestionado/padel-club-api/internal/service"
	"github.com/padelgestionado/padel-club-api/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()
	logger := app.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		logger.Fatal("migrations failed", zap.Error(err))
	}
	cancel()

	users := repository.NewUserRepo(db)
	bookings := repository.NewBookingRepo(db)
	registrations := repository.NewRegistrationRepo(db)
	tournaments := repository.NewTournamentRepo(db)
	pairs := repository.NewPairRepo(db)
	matches := repository.NewMatchRepo(db)

	// Bootstrap the administrator account if one is configured. The
	// console has no self-service registration so this is how the first
	// admin comes to exist; the token logged here is how the operator
	// reaches the console endpoints.
	if cfg.AdminEmail != "" && cfg.AdminPass != "" {
		bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
		id, err := users.EnsureAdmin(bootCtx, cfg.AdminNombre, cfg.AdminEmail, cfg.AdminPass, cfg.BcryptCost)
		bootCancel()
		if err != nil {
			logger.Fatal("admin bootstrap failed", zap.Error(err))
		}
		tok, err := utils.NewAccessToken(cfg.JWTSecret, id, "ADMIN", cfg.AccessTTLMin)
		if err != nil {
			logger.Fatal("console token issuance failed", zap.Error(err))
		}
		logger.Info("administrator account ready",
			zap.Int("user_id", id),
			zap.String("console_token", tok.Token),
			zap.Time("token_expires", tok.Exp))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, cache and rate limiting disabled")
	}

	cacheCfg := config.LoadCacheConfig()
	var grids *cache.AvailabilityCache
	if cacheCfg.Enabled {
		grids = cache.New(rdb, cacheCfg.TTL)
	}

	publisher := queue_publisher.New(cfg.RabbitURL, logger)
	if cfg.RabbitURL != "" {
		go queue.StartReservaConsumer(cfg.RabbitURL, logger)
	}

	availabilityH := handler.NewAvailabilityHandler(bookings, grids)
	bookingH := handler.NewBookingHandler(users, bookings, grids, publisher)
	registrationH := handler.NewRegistrationHandler(users, tournaments, registrations)
	tournamentH := handler.NewTournamentHandler(users, tournaments, pairs, matches)

	var limiter echo.MiddlewareFunc
	rlCfg := config.LoadRateLimitConfig()
	if rlCfg.Enabled && rdb != nil {
		limiter = middleware.RateLimit(rlCfg, rdb)
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAPI(e, availabilityH, bookingH, registrationH, tournamentH, cfg.JWTSecret, limiter)

	warmer, err := scheduler.NewWarmer(bookings, grids, cacheCfg.WarmDays, 10*time.Minute, logger)
	if err != nil {
		logger.Warn("availability warmer disabled", zap.Error(err))
	}
	warmer.Start()
	defer func() { _ = warmer.Stop() }()

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
