package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yukikurage/task-analytics-api/internal/constants"
	"github.com/yukikurage/task-analytics-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UserWithTaskStatsDTO is a user enriched with its completed task aggregates
type UserWithTaskStatsDTO struct {
	UserDTO
	CompletedTasksCount     int             `json:"completed_tasks_count"`
	TotalCompletedTasksCost decimal.Decimal `json:"total_completed_tasks_cost"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	EstimatedHours int               `json:"estimated_hours"`
	DueDate        string            `json:"due_date"`
	Status         models.TaskStatus `json:"status"`
	CompletionDate *time.Time        `json:"completion_date"`
	MonetaryCost   decimal.Decimal   `json:"monetary_cost"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	AssignedUsers  []UserDTO         `json:"assigned_users"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserWithTaskStatsDTO attaches completed task aggregates to a user
func ToUserWithTaskStatsDTO(user models.User, completedCount int, completedCost decimal.Decimal) UserWithTaskStatsDTO {
	return UserWithTaskStatsDTO{
		UserDTO:                 ToUserDTO(user),
		CompletedTasksCount:     completedCount,
		TotalCompletedTasksCost: completedCost,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		EstimatedHours: task.EstimatedHours,
		DueDate:        task.DueDate.Format(constants.DateLayout),
		Status:         task.Status,
		CompletionDate: task.CompletionDate,
		MonetaryCost:   task.MonetaryCost,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
		AssignedUsers:  make([]UserDTO, len(task.AssignedUsers)),
	}

	for i, user := range task.AssignedUsers {
		dto.AssignedUsers[i] = ToUserDTO(user)
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
