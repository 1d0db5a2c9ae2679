package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/identity"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	revoked    auth.RevocationList
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	revoked auth.RevocationList,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		revoked:    revoked,
		config:     config,
		logger:     logger,
	}
}

var errInvalidCredentials = shared.NewDomainError(shared.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")

// Register creates a customer account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	user, err := identity.NewUser(req.Email, req.Password, req.DisplayName)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("DUPLICATE_EMAIL", "Email is already registered")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.With(ctx, s.logger).Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			logger.With(ctx, s.logger).Warn("Login for unknown email")
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			logger.With(ctx, s.logger).Warn("Login attempt for locked account", zap.String("user_id", user.ID.String()))
			return nil, shared.NewDomainError(shared.KindUnauthorized, "ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		return nil, shared.NewDomainError(shared.KindForbidden, "ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			logger.With(ctx, s.logger).Error("Failed to update user after login failure", zap.Error(err))
		}
		if locked {
			logger.With(ctx, s.logger).Warn("Account locked after too many failed attempts",
				zap.String("user_id", user.ID.String()),
				zap.Int("attempts", user.FailedAttempts))
			return nil, shared.NewDomainError(shared.KindUnauthorized, "ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		return nil, errInvalidCredentials
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login
		logger.With(ctx, s.logger).Error("Failed to update user after successful login", zap.Error(err))
	}

	logger.With(ctx, s.logger).Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Refresh exchanges a refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		logger.With(ctx, s.logger).Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "TOKEN_INVALID", "Invalid user ID in token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil, shared.NewDomainError(shared.KindUnauthorized, "TOKEN_INVALID", "User no longer exists")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "ACCOUNT_INACTIVE", "Account can no longer sign in")
	}

	// Rotate: the old refresh token cannot be used twice.
	if err := s.revoked.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return nil, shared.NewUpstreamError("Failed to revoke refresh token", err)
	}
	return s.issue(user)
}

// Logout revokes the access token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.NewDomainError(shared.KindUnauthorized, "TOKEN_INVALID", "Missing token")
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return shared.NewUpstreamError("Failed to revoke token", err)
	}
	logger.With(ctx, s.logger).Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Authenticate validates a bearer token and rejects revoked ones
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return shared.NewUpstreamError("Failed to check token revocation", err)
	}
	if revoked {
		return tokenError(auth.ErrTokenRevoked)
	}
	return nil
}

func (s *AuthService) issue(user *identity.User) (*TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  []string{string(user.Role)},
	})
	if err != nil {
		return nil, shared.NewUpstreamError("Failed to generate authentication tokens", err)
	}
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError(shared.KindUnauthorized, "TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		return shared.NewDomainError(shared.KindUnauthorized, "TOKEN_REVOKED", "Token has been revoked")
	default:
		return shared.NewDomainError(shared.KindUnauthorized, "TOKEN_INVALID", "Invalid token")
	}
}
