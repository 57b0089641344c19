package service

import (
	"context"
	"strings"
	"time"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/postgres"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/redisrepo"
	"github.com/ShivaTejMatam/Blog-Platform/pkg/utils"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type authService struct {
	logger *zap.Logger
	repo   *repository.Repository
	tokens *utils.JWTManager
}

func newAuthService(logger *zap.Logger, repo *repository.Repository, tokens *utils.JWTManager) Auth {
	return &authService{
		logger: logger,
		repo:   repo,
		tokens: tokens,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, input dto.RegisterRequest) (string, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(utils.Sanitize(input.Name))
	if email == "" || name == "" || input.Password == "" {
		return "", newError(ErrInvalidArgument, "email, password and name are required")
	}

	existing, err := s.repo.Postgres.User.FindByEmail(ctx, email)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find user by email(%s) from postgres: %s", email, err.Error())
		return "", ErrInternal
	}
	if existing != nil {
		return "", ErrUserAlreadyExists
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
		return "", ErrInternal
	}

	user, err := s.repo.Postgres.User.Create(ctx, model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return "", ErrUserAlreadyExists
		}
		s.logger.Sugar().Errorf("failed to create user(%s) in postgres: %s", email, err.Error())
		return "", ErrInternal
	}

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (string, error) {
	email := normalizeEmail(input.Email)

	user, err := s.repo.Postgres.User.FindByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to find user by email(%s) from postgres: %s", email, err.Error())
		return "", ErrInternal
	}

	if !utils.CheckPassword(user.PasswordHash, input.Password) {
		return "", ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) issue(user *model.User) (string, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to issue token for user(%s): %s", user.ID.String(), err.Error())
		return "", ErrInternal
	}

	return token, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, claims *utils.TokenClaims) error {
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.repo.Redis.Default.Set(ctx, redisrepo.RevokedTokenKey(claims.TokenID), 1, ttl); err != nil {
		s.logger.Sugar().Errorf("failed to revoke token(%s) in redis: %s", claims.TokenID, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	revoked, err := s.repo.Redis.Default.Exists(ctx, redisrepo.RevokedTokenKey(claims.TokenID)).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to check token(%s) revocation in redis: %s", claims.TokenID, err.Error())
		return nil, ErrInternal
	}
	if revoked > 0 {
		return nil, ErrUnauthorized
	}

	return claims, nil
}
