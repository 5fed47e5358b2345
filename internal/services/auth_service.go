package services

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shoply/jobboard/internal/cache"
	"github.com/shoply/jobboard/internal/models"
	pgrepo "github.com/shoply/jobboard/internal/repositories/postgres"
	"github.com/shoply/jobboard/internal/utils"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour

	refreshKeyPrefix = "refresh:"
)

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthService interface {
	IssuePair(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authService struct {
	users      pgrepo.UserRepository
	tokens     cache.Store
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users pgrepo.UserRepository, tokens cache.Store) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		secret:     []byte(os.Getenv("JWT_SECRET")),
		accessTTL:  ttlFromEnv("ACCESS_TOKEN_TTL", defaultAccessTTL),
		refreshTTL: ttlFromEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL),
	}
}

// ttlFromEnv reads a Go duration string ("30m", "168h") from the env.
func ttlFromEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func (s *authService) IssuePair(ctx context.Context, username, password string) (*TokenPair, error) {
	const op = "AuthService.IssuePair"

	if username == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "username and password are required", nil)
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "no active account found with the given credentials", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "no active account found with the given credentials", nil)
	}

	return s.mint(ctx, u)
}

// Refresh validates a refresh token and rotates it: the presented token's
// id is retired, a fresh pair is minted. Re-using a retired token fails.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "AuthService.Refresh"

	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || tok == nil || !tok.Valid || claims.ID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "token is invalid or expired", err)
	}

	_, live, err := s.tokens.Get(ctx, refreshKeyPrefix+claims.ID)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "token store unavailable", err)
	}
	if !live {
		return nil, utils.E(utils.CodeUnauthorized, op, "token is invalid or expired", nil)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "token is invalid or expired", err)
	}
	u, err := s.users.GetByID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "token is invalid or expired", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	if err := s.tokens.Del(ctx, refreshKeyPrefix+claims.ID); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "token store unavailable", err)
	}

	return s.mint(ctx, u)
}

func (s *authService) mint(ctx context.Context, u *models.User) (*TokenPair, error) {
	const op = "AuthService.mint"

	now := time.Now()
	sub := strconv.FormatUint(uint64(u.ID), 10)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.accessTTL).Unix(),
	})
	accessStr, err := access.SignedString(s.secret)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign access token", err)
	}

	jti := uuid.NewString()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        jti,
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
	})
	refreshStr, err := refresh.SignedString(s.secret)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign refresh token", err)
	}

	if err := s.tokens.Set(ctx, refreshKeyPrefix+jti, sub, s.refreshTTL); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "token store unavailable", err)
	}

	return &TokenPair{Access: accessStr, Refresh: refreshStr}, nil
}
