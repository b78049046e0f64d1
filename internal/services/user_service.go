// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dscommerce/dscommerce-backend/internal/models"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type CreateUserRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=80"`
	Email     string   `json:"email" validate:"required,email,max=255"`
	Phone     string   `json:"phone" validate:"omitempty,max=30"`
	BirthDate string   `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Password  string   `json:"password" validate:"required,min=6,max=72"`
	Roles     []string `json:"roles" validate:"omitempty,dive,oneof=ROLE_CLIENT ROLE_ADMIN"`
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Roles     []string   `json:"roles"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CurrentPrincipal resolves the acting user of a request from the id carried
// by its access token.
func (s *UserService) CurrentPrincipal(ctx context.Context, userID uuid.UUID) (*models.Principal, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user.Principal(), nil
}

func (s *UserService) GetUser(ctx context.Context, principal *models.Principal, id uuid.UUID) (*UserView, error) {
	if err := ValidateSelfOrAdmin(principal, id); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return newUserView(&user), nil
}

// CreateUser registers an account. Without explicit roles the user is a client.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth date: %v", ErrValidation, err)
		}
		user.BirthDate = &birthDate
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	authorities := req.Roles
	if len(authorities) == 0 {
		authorities = []string{models.AuthorityClient}
	}
	if err := s.db.WithContext(ctx).Where("authority IN ?", authorities).Find(&user.Roles).Error; err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	if len(user.Roles) == 0 {
		return nil, fmt.Errorf("roles %v: %w", authorities, ErrNotFound)
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("user %s: %w", req.Email, ErrConflict)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("user %s: %w", req.Email, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUserView(user), nil
}

func newUserView(user *models.User) *UserView {
	return &UserView{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		BirthDate: user.BirthDate,
		Roles:     user.Principal().Roles.Authorities(),
	}
}
