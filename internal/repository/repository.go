package repository

import (
	"context"
	"time"

	"github.com/yukikurage/task-analytics-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a task together with its assigned user references
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id string, preload ...string) (*models.Task, error)

	// List retrieves tasks matching filter with their assigned users
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update saves the task columns and, when replaceAssignees is set,
	// replaces the assigned user set with task.AssignedUsers
	Update(ctx context.Context, task *models.Task, replaceAssignees bool) error

	// Delete removes a task and its assignment rows
	Delete(ctx context.Context, id string) error

	// Count counts tasks matching filter
	Count(ctx context.Context, filter TaskCountFilter) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Title                   string
	DueDate                 *time.Time
	AssignedUserID          string
	AssignedUserNameOrEmail string
	SortDescending          bool
}

// TaskCountFilter holds the predicates used by aggregate counts
type TaskCountFilter struct {
	Status    *models.TaskStatus
	DueBefore *time.Time
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByIDs returns the users that exist among ids
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)

	// List retrieves users matching filter in creation order
	List(ctx context.Context, filter UserFilter, preload ...string) ([]models.User, error)

	// Delete removes a user and its assignment rows
	Delete(ctx context.Context, id string) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role  *models.UserRole
	Name  string
	Email string
}
