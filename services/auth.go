package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant-api/mailer"
	"restaurant-api/models"
	"restaurant-api/validators"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordResetValidity is how long a reset token stays usable.
const PasswordResetValidity = time.Hour

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	db          *gorm.DB
	tokens      TokenIssuer
	mailer      mailer.Mailer
	restaurant  string
	frontendURL string
	now         func() time.Time
}

func NewAuthService(db *gorm.DB, tokens TokenIssuer, m mailer.Mailer, restaurant, frontendURL string) *AuthService {
	return &AuthService{
		db:          db,
		tokens:      tokens,
		mailer:      m,
		restaurant:  restaurant,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// Register creates a new user account and signs a token for it
func (s *AuthService) Register(ctx context.Context, req validators.RegisterRequest) (*AuthResult, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, Conflict("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, Conflict("email is already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(&user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req validators.LoginRequest) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, Forbidden("user is inactive, contact an administrator")
	}
	return s.issue(&user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// ForgotPassword stores a reset token and mails it. It reports success whether
// or not the email exists, and mail delivery failures are only logged.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(PasswordResetValidity)
	if err := db.Model(&user).Updates(map[string]any{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}).Error; err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	body, err := mailer.PasswordResetEmail(s.restaurant, s.frontendURL, token, "1 hour")
	if err != nil {
		slog.ErrorContext(ctx, "render reset email", "error", err)
		return nil
	}
	if err := s.mailer.Send(ctx, user.Email, "Password reset - "+s.restaurant, body); err != nil {
		slog.WarnContext(ctx, "reset email not delivered", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword consumes a valid, unexpired token and sets a new password
func (s *AuthService) ResetPassword(ctx context.Context, req validators.ResetPasswordRequest) error {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("reset_password_token = ? AND reset_password_expires > ?", req.Token, s.now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Invalid("invalid or expired token")
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return db.Model(&user).Updates(map[string]any{
		"password_hash":          string(hash),
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}).Error
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
