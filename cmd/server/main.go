package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio/adapters/http"
	"github.com/khoahotran/portfolio/adapters/persistence"
	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("FATAL: cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	log.Info("Start Portfolio API Server...")

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := tracing.Setup(cfg, log, "portfolio-api")
	if err != nil {
		log.Fatal("cannot init tracing", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Error("Failed to shutdown tracer provider", err)
		}
	}()

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, log)
	if err != nil {
		log.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, log)
	if err != nil {
		log.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, log)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, log)
	portfolioCache := persistence.NewRedisPortfolioCache(redisClient, cfg.Redis.CacheTTL)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, log)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(portfolioRepo, portfolioCache, log)
	createPortfolioUseCase := portfolioUC.NewCreatePortfolioUseCase(portfolioRepo, portfolioCache, kafkaClient, log)
	updatePortfolioUseCase := portfolioUC.NewUpdatePortfolioUseCase(portfolioRepo, portfolioCache, kafkaClient, log)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, log)
	portfolioHandler := httpAdapter.NewPortfolioHandler(
		getPortfolioUseCase,
		createPortfolioUseCase,
		updatePortfolioUseCase,
		log,
	)

	// Middleware
	routerCfg := httpAdapter.RouterConfig{
		PortfolioHandler: portfolioHandler,
		AuthHandler:      authHandler,
		ErrorMiddleware:  httpAdapter.ErrorMiddleware(log),
		RequestLogger:    httpAdapter.RequestLogger(log),
		WriteLimiter:     httpAdapter.NewWriteRateLimiter(cfg.HTTP.WriteRPS, cfg.HTTP.WriteBurst).Middleware(),
	}
	if len(cfg.HTTP.CORSOrigins) > 0 {
		routerCfg.CORS = httpAdapter.CORS(cfg.HTTP.CORSOrigins)
	}
	if cfg.Auth.RequireForWrites {
		routerCfg.WriteAuth = httpAdapter.AuthMiddleware(jwtSvc, log)
	}

	router := httpAdapter.NewRouter(routerCfg)

	log.Info("Server running", zap.String("port", cfg.App.Port), zap.Bool("auth_for_writes", cfg.Auth.RequireForWrites))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal("Cannot run server", err)
	}
}
