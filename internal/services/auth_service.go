package services

import (
	"context"
	"errors"
	"time"

	"messagebox/config"
	"messagebox/internal/repository"
	mb_errors "messagebox/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type TokenInput struct {
	Email    string
	Password string
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

// Token exchanges credentials for a signed access token.
func (s *AuthService) Token(ctx context.Context, in TokenInput) (string, error) {
	if in.Email == "" || in.Password == "" {
		return "", mb_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, mb_errors.ErrNotFound) {
			return "", mb_errors.ErrUnauthorized
		}
		return "", err
	}

	if !u.IsActive {
		return "", mb_errors.ErrUnauthorized
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return "", mb_errors.ErrUnauthorized
	}

	return s.newAccessToken(u.ID)
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, mb_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, mb_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, mb_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, mb_errors.ErrUnauthorized
	}

	return *claims, nil
}

// ResolveUser parses the token and confirms the account still exists and
// is active, so tokens outlive neither deletion nor deactivation.
func (s *AuthService) ResolveUser(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := s.ParseAccessToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, mb_errors.ErrUnauthorized
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return uuid.Nil, mb_errors.ErrUnauthorized
	}
	if !u.IsActive {
		return uuid.Nil, mb_errors.ErrUnauthorized
	}

	return u.ID, nil
}

func (s *AuthService) newAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, mb_errors.ErrInvalidInput), errors.Is(err, mb_errors.ErrInvalidParameter):
		return 400
	case errors.Is(err, mb_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, mb_errors.ErrForbidden):
		return 403
	case errors.Is(err, mb_errors.ErrNotFound):
		return 404
	case errors.Is(err, mb_errors.ErrAlreadyExists), errors.Is(err, mb_errors.ErrConflict):
		return 409
	case errors.Is(err, mb_errors.ErrRateLimited):
		return 429
	default:
		return 500
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
