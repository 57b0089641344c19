package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ShivaTejMatam/Blog-Platform/internal/config"
	"github.com/ShivaTejMatam/Blog-Platform/internal/handler"
	"github.com/ShivaTejMatam/Blog-Platform/internal/logger"
	"github.com/ShivaTejMatam/Blog-Platform/internal/rabbitmq"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/postgres"
	"github.com/ShivaTejMatam/Blog-Platform/internal/server"
	"github.com/ShivaTejMatam/Blog-Platform/internal/service"
	"github.com/ShivaTejMatam/Blog-Platform/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	bootLogger, _ := zap.NewProduction()

	if err := config.LoadEnv(); err != nil {
		bootLogger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := config.InitViper(); err != nil {
		bootLogger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	logger, err := logger.New(config.LogConfigFromViper())
	if err != nil {
		bootLogger.Sugar().Panicf("failed to build logger: %s", err.Error())
	}
	defer logger.Sync()

	authConfig, err := config.AuthConfigFromEnv()
	if err != nil {
		logger.Sugar().Panicf("failed to load auth config: %s", err.Error())
	}

	db, err := postgres.DB(ctx, config.DBConfigFromEnv())
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Sugar().Panicf("failed to run migrations: %s", err.Error())
	}

	redisOptions := &redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	}
	rdb := redis.NewClient(redisOptions)
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	serviceOptions := service.Options{
		Tokens:   utils.NewJWTManager(authConfig.AccessSecret, authConfig.TokenTTL),
		CacheTTL: viper.GetDuration("cache.ttl"),
	}

	if connString := os.Getenv("RABBITMQ_CONN_STRING"); connString != "" {
		mq, err := rabbitmq.New(connString)
		if err != nil {
			logger.Sugar().Panicf("failed to connect to rabbitmq: %s", err.Error())
		}
		defer mq.Close()
		serviceOptions.Publisher = mq
		logger.Info("Successfully connected to RabbitMQ")
	} else {
		logger.Info("RABBITMQ_CONN_STRING is empty, notification events are not published")
	}

	gin.SetMode(viper.GetString("app.mode"))

	repos := repository.New(db, rdb)
	services := service.New(logger, repos, serviceOptions)
	handlers := handler.New(logger, services, handler.Options{
		ClientOrigin:       viper.GetString("client.origin"),
		RateLimitPerMinute: authConfig.RateLimitPerMinute,
	})

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}
	go func() {
		if err := srv.Run(serverConfig); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	logger.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
	if err := rdb.Close(); err != nil {
		logger.Sugar().Errorf("failed to close redis: %s", err.Error())
	}
}
