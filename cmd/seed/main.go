// Command seed fills a fresh database with demo users, posts, a comment
// thread and the notifications it produces.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/ShivaTejMatam/Blog-Platform/internal/config"
	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/postgres"
	"github.com/ShivaTejMatam/Blog-Platform/internal/service"
	"github.com/ShivaTejMatam/Blog-Platform/pkg/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const DEMO_PASSWORD = "test123"

type demoUser struct {
	name  string
	email string
}

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := config.LoadEnv(); err != nil {
		logger.Sugar().Fatalf("failed to load environment variables: %s", err.Error())
	}
	if err := config.InitViper(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
		}
	}

	authConfig, err := config.AuthConfigFromEnv()
	if err != nil {
		logger.Sugar().Fatalf("failed to load auth config: %s", err.Error())
	}

	db, err := postgres.DB(ctx, config.DBConfigFromEnv())
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Sugar().Fatalf("failed to run migrations: %s", err.Error())
	}

	rdb := redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_ADDR")})
	defer rdb.Close()

	tokens := utils.NewJWTManager(authConfig.AccessSecret, authConfig.TokenTTL)
	services := service.New(logger, repository.New(db, rdb), service.Options{
		Tokens:   tokens,
		CacheTTL: viper.GetDuration("cache.ttl"),
	})

	if err := seed(ctx, logger, services); err != nil {
		logger.Sugar().Fatalf("failed to seed: %s", err.Error())
	}

	logger.Info("Seed data created successfully")
}

func seed(ctx context.Context, logger *zap.Logger, services *service.Service) error {
	tejass, err := ensureUser(ctx, services, demoUser{name: "Tejass", email: "tejass@gmail.com"})
	if err != nil {
		return err
	}
	anusha, err := ensureUser(ctx, services, demoUser{name: "Anusha", email: "anusha@gmail.com"})
	if err != nil {
		return err
	}

	var tagIDs []int64
	for _, name := range []string{"golang", "webdev"} {
		tag, err := services.Tag.Create(ctx, name)
		if err != nil {
			if !errors.Is(err, service.ErrTagAlreadyExists) {
				return err
			}
			continue
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	first, err := services.Post.Create(ctx, tejass, dto.CreatePostRequest{
		Title:     "First Test Post",
		Content:   "This is the content of the first test post",
		Published: true,
		TagIDs:    tagIDs,
	})
	if err != nil {
		return err
	}

	second, err := services.Post.Create(ctx, anusha, dto.CreatePostRequest{
		Title:     "Second Test Post",
		Content:   "This is the content of the second test post",
		Published: true,
	})
	if err != nil {
		return err
	}

	root, err := services.Comment.Create(ctx, anusha, dto.CreateCommentRequest{
		PostID:  first.Post.ID,
		Content: "This is a test comment on the first post",
	})
	if err != nil {
		return err
	}

	if _, err := services.Comment.Create(ctx, tejass, dto.CreateCommentRequest{
		PostID:   first.Post.ID,
		ParentID: &root.Comment.ID,
		Content:  "Thanks for reading!",
	}); err != nil {
		return err
	}

	if _, err := services.Comment.Create(ctx, tejass, dto.CreateCommentRequest{
		PostID:  second.Post.ID,
		Content: "This is another test comment",
	}); err != nil {
		return err
	}

	following, err := services.Follow.Status(ctx, anusha, tejass)
	if err != nil {
		return err
	}
	if !following {
		if _, err := services.Follow.Toggle(ctx, anusha, tejass); err != nil {
			return err
		}
	}

	logger.Sugar().Infof("seeded users %s and %s", tejass.String(), anusha.String())
	return nil
}

func ensureUser(ctx context.Context, services *service.Service, u demoUser) (uuid.UUID, error) {
	token, err := services.Auth.Register(ctx, dto.RegisterRequest{
		Email:    u.email,
		Password: DEMO_PASSWORD,
		Name:     u.name,
	})
	if errors.Is(err, service.ErrUserAlreadyExists) {
		token, err = services.Auth.Login(ctx, dto.LoginRequest{Email: u.email, Password: DEMO_PASSWORD})
	}
	if err != nil {
		return uuid.Nil, err
	}

	claims, err := services.Auth.Authenticate(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}

	return claims.UserID, nil
}
