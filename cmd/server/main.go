package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"order-service/internal/config"
	ohttp "order-service/internal/controllers/http"
	"order-service/internal/infra/mysql"
	"order-service/internal/infra/rabbitmq"
	"order-service/internal/infra/redis"
	mysqlrepo "order-service/internal/repository/mysql"
	"order-service/internal/services"
	"order-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	db, err := mysql.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db: connect")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.RedisAddr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	cache := redis.NewOrderCache(rdb)

	limiter, err := redis.NewRateLimiter(rdb, cfg.RateLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("rate limit policy")
	}

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.QueueName)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbit: publisher")
	}

	orderRepo := mysqlrepo.NewOrderRepository(db)
	userRepo := mysqlrepo.NewUserRepository(db)

	orders := services.NewOrderService(orderRepo, cache, publisher, cfg.CacheTTL)
	auth, err := services.NewAuthService(userRepo, cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("auth")
	}

	handler := ohttp.NewHandler(orders, auth)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ohttp.RateLimit(limiter))
	handler.RegisterRoutes(r)

	corsWrapper := cors.New(ohttp.CORSOptions(cfg.AllowedOrigins))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsWrapper.Handler(r),
	}

	w := worker.New(cfg.RabbitURL, cfg.QueueName, worker.ProcessOrder, cfg.WorkerRequeue)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting order service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return w.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
		publisher.Close()
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("service exited")
	}
	log.Info().Msg("shutdown complete")
}
