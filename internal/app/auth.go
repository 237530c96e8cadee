package app

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	users    ports.UserRepository
	logger   ports.Logger
	secret   []byte
	tokenTTL time.Duration
}

// AuthConfig carries the dependencies and settings of the auth service.
type AuthConfig struct {
	Users    ports.UserRepository
	Logger   ports.Logger
	Secret   string
	TokenTTL time.Duration
}

// NewAuthService creates the auth application service.
func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	if cfg.Users == nil || cfg.Logger == nil {
		return nil, fmt.Errorf("missing required dependencies for AuthService")
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth service requires a signing secret")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 30 * time.Minute
	}
	return &AuthService{
		users:    cfg.Users,
		logger:   cfg.Logger,
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
	}, nil
}

// Register creates a new login. The email must not already be in use.
func (s *AuthService) Register(ctx context.Context, email, name, password string, role domain.UserRole) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s already registered", ports.ErrDuplicateEntry, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if role == "" {
		role = domain.RoleUser
	}
	user := &domain.User{
		Email:          email,
		Name:           name,
		Role:           role,
		HashedPassword: string(hash),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	s.logger.Info(ctx, "user registered", map[string]interface{}{"id": id, "email": email})
	return user, nil
}

// Login checks the credentials and issues a signed token. Inactive users
// cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ports.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ports.ErrUnauthorized)
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: user is inactive", ports.ErrForbidden)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	s.logger.Info(ctx, "user logged in", map[string]interface{}{"id": user.ID, "email": user.Email})
	return token, user, nil
}

// VerifyToken validates a signed token and returns the user id it names.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid token", ports.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid token claims", ports.ErrUnauthorized)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: token has no subject", ports.ErrUnauthorized)
	}
	return sub, nil
}

// CurrentUser resolves a token into its active user.
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user no longer exists", ports.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is inactive", ports.ErrForbidden)
	}
	return user, nil
}

// ChangePassword replaces the user's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ports.ErrNotFound, userID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ports.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	s.logger.Info(ctx, "password changed", map[string]interface{}{"id": userID})
	return nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
