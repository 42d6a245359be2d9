package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"edumart/internal/caching"
	"edumart/internal/models"
	"edumart/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

// AuthService issues and refreshes tokens. Login is scoped by subdomain:
// the same email may exist under different organizations.
type AuthService interface {
	Login(ctx context.Context, subdomain, email, password string) (*models.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
}

// TokenClaims carries the identity and tenant scope of a request.
type TokenClaims struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo   repositories.UserRepository
	orgRepo    repositories.OrganizationRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, orgRepo repositories.OrganizationRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) Login(ctx context.Context, subdomain, email, password string) (*models.TokenResponse, error) {
	org, err := s.orgRepo.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, org.ID, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	tokenHash := hashToken(refreshToken)
	stored, err := s.cacheSvc.GetString(ctx, refreshKey(tokenHash))
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidRefresh
	}
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	orgID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.userRepo.GetByID(ctx, orgID, userID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	// Single use: the old refresh token dies with the rotation.
	_ = s.cacheSvc.Delete(ctx, refreshKey(tokenHash))

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID.String(),
		OrgID:  user.OrgID.String(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := randomToken()
	if err != nil {
		return nil, err
	}
	record := fmt.Sprintf("%s:%s", user.ID, user.OrgID)
	if err := s.cacheSvc.SetString(ctx, refreshKey(hashToken(refreshToken)), record, s.refreshTTL); err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
	}, nil
}

func refreshKey(tokenHash string) string {
	return "refresh_token:" + tokenHash
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
