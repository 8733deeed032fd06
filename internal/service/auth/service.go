// Package auth covers account registration, credential checks, JWT
// issuance, login history, and profile edits. The consumption core never
// sees any of this; it only receives the username the middleware extracts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sahilk27/wattwise/internal/domain/models"
	"github.com/sahilk27/wattwise/internal/repository/mongodb"
)

const loginHistoryLimit = 10

// Service implements account operations on the user repository.
type Service struct {
	users     mongodb.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewService wires an auth service instance.
func NewService(users mongodb.UserRepository, jwtSecret []byte, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Profile:      models.Profile{HouseholdSize: 1},
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials, appends a login event, and returns a signed
// token plus the account. Unknown users and wrong passwords are both
// reported as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password, ip, userAgent string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	now := time.Now()
	event := models.LoginEvent{
		Username:  username,
		LoginTime: now,
		LoginDate: now.Format(models.DateLayout),
		SessionID: uuid.NewString(),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.users.RecordLogin(ctx, event); err != nil {
		// Login history is best effort; the session itself still starts.
		s.logger.Warn("failed to record login event", zap.String("username", username), zap.Error(err))
	}

	token, err := GenerateToken(username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("username", username), zap.String("session_id", event.SessionID))
	return token, user, nil
}

// Profile returns the stored account for the username.
func (s *Service) Profile(ctx context.Context, username string) (*models.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(ctx context.Context, username, email string, profile models.Profile) error {
	return s.users.UpdateProfile(ctx, username, email, profile)
}

// LoginHistory returns the most recent login events, newest first.
func (s *Service) LoginHistory(ctx context.Context, username string) ([]models.LoginEvent, error) {
	return s.users.LoginHistory(ctx, username, loginHistoryLimit)
}
