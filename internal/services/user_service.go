package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/task-analytics-api/internal/constants"
	"github.com/yukikurage/task-analytics-api/internal/dto"
	"github.com/yukikurage/task-analytics-api/internal/models"
	"github.com/yukikurage/task-analytics-api/internal/repository"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already exists")
	ErrPersistence          = errors.New("failed to persist user")
	ErrInvalidName          = errors.New("name must be between 4 and 20 characters")
	ErrEmailRequired        = errors.New("email is required")
	ErrInvalidRole          = errors.New("role must be MEMBER or ADMIN")
	ErrInvalidPassword      = errors.New("password must be between 8 and 20 characters")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents the information required to create a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Role     models.UserRole
	Password string
}

// ListUsersInput represents filters for listing users. Empty fields do not filter.
type ListUsersInput struct {
	Role  *models.UserRole
	Name  string
	Email string
}

// CreateUser stores a new user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if n := utf8.RuneCountInString(name); n < constants.MinNameLength || n > constants.MaxNameLength {
		return nil, ErrInvalidName
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if input.Role == "" {
		input.Role = models.RoleMember
	}
	if input.Role != models.RoleMember && input.Role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}
	if n := utf8.RuneCountInString(input.Password); n < constants.MinPasswordLength || n > constants.MaxPasswordLength ||
		len(input.Password) > constants.MaxPasswordBytes {
		return nil, ErrInvalidPassword
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Role:     input.Role,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent insert can still hit the unique index after the lookup above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns the matching users, each with the number and total cost
// of the completed tasks assigned to them.
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) ([]dto.UserWithTaskStatsDTO, error) {
	filter := repository.UserFilter{
		Role:  input.Role,
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
	}

	users, err := s.userRepo.List(ctx, filter, "Tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]dto.UserWithTaskStatsDTO, len(users))
	for i, user := range users {
		completed, cost := completedTaskStats(user.Tasks)
		result[i] = dto.ToUserWithTaskStatsDTO(user, completed, cost)
	}

	return result, nil
}

// DeleteUser deletes a user and its task assignments.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// completedTaskStats counts the completed tasks and sums their cost. The sum
// is rounded half-up once, after all terms are added.
func completedTaskStats(tasks []models.Task) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero

	for _, task := range tasks {
		if !task.IsCompleted() {
			continue
		}
		count++
		total = total.Add(task.MonetaryCost)
	}

	return count, total.Round(constants.MoneyScale)
}
