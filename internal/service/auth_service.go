package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

// AuthConfig defines configuration for token issuance.
type AuthConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// AuthService issues and validates administrator tokens.
type AuthService struct {
	repo      UserRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	metrics   *MetricsService
	now       func() time.Time

	// bootstrap serializes anonymous registrations so only one can claim the empty store.
	bootstrap sync.Mutex
}

// NewAuthService constructs an AuthService instance. metrics may be nil.
func NewAuthService(repo UserRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig, metrics *MetricsService) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.Expiry <= 0 {
		config.Expiry = 7 * 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		config:    config,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates an administrator and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordLogin(loginRejected)
		return nil, validationError(err, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.RecordLogin(loginRejected)
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
		}
		return nil, internalError(err, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.RecordLogin(loginRejected)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
	}

	if user.Role != models.RoleAdmin {
		s.metrics.RecordLogin(loginForbidden)
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized as admin")
	}

	issuedAt := s.now()
	token, err := s.sign(user, issuedAt)
	if err != nil {
		return nil, internalError(err, "failed to create access token")
	}

	s.metrics.RecordLogin(loginSucceeded)
	s.logger.Info("admin logged in", zap.String("user_id", user.ID))

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.config.Expiry.Seconds()),
		IssuedAt:  issuedAt,
		User:      userInfo(user),
	}, nil
}

// Register creates an administrator. While no user exists anyone may register; afterwards
// caller must carry admin claims.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest, caller *models.JWTClaims) (*models.UserInfo, error) {
	if caller == nil {
		s.bootstrap.Lock()
		defer s.bootstrap.Unlock()
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, internalError(err, "failed to count users")
	}
	if count > 0 {
		if caller == nil {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Not authorized, no token")
		}
		if caller.Role != models.RoleAdmin {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized as admin")
		}
	}
	return s.CreateAdmin(ctx, req)
}

// CreateAdmin stores a new administrator without checking who asked for it.
func (s *AuthService) CreateAdmin(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid registration payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError(err, "failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "User already exists")
		}
		return nil, internalError(err, "failed to create user")
	}

	s.logger.Info("admin registered", zap.String("user_id", user.ID))
	info := userInfo(user)
	return &info, nil
}

// Me describes the administrator the claims were issued to.
func (s *AuthService) Me(claims *models.JWTClaims) (*models.UserInfo, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.UserInfo{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrTokenInvalid.Code, appErrors.ErrTokenInvalid.Status, "Not authorized, token failed")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrTokenInvalid, "Not authorized, token failed")
	}
	return claims, nil
}

func (s *AuthService) sign(user *models.User, issuedAt time.Time) (string, error) {
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}

func userInfo(user *models.User) models.UserInfo {
	return models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
