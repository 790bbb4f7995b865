package services

import (
	"context"
	"errors"
	"fmt"

	"restaurant-api/models"
	"restaurant-api/validators"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// ActiveUser resolves the subject of an access token. Deleted and deactivated
// accounts are rejected as unauthenticated.
func (s *UserService) ActiveUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if KindOf(err) == KindNotFound {
		return nil, Unauthorized("invalid token: user not found")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, Unauthorized("user is inactive, contact an administrator")
	}
	return user, nil
}

// UpdateProfile changes the caller's own name, email or password
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req validators.ProfileUpdateRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	update := map[string]any{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return nil, Conflict("email is already registered")
		}
		update["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		update["password_hash"] = string(hash)
	}
	if len(update) == 0 {
		return user, nil
	}
	if err := db.Model(user).Updates(update).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, Conflict("email is already registered")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.Get(ctx, id)
}

// List returns all users, optionally restricted to one role
func (s *UserService) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := s.db.WithContext(ctx).Order("id")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetActive enables or disables an account. Admins cannot disable themselves.
func (s *UserService) SetActive(ctx context.Context, actor Actor, id uint, active bool) (*models.User, error) {
	if actor.UserID == id && !active {
		return nil, Invalid("you cannot deactivate your own account")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	user.IsActive = active
	return user, nil
}
