package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yukikurage/task-analytics-api/internal/constants"
	"github.com/yukikurage/task-analytics-api/internal/models"
	"github.com/yukikurage/task-analytics-api/internal/repository"
	"github.com/yukikurage/task-analytics-api/internal/utils"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrAssignedUserNotFound  = errors.New("one or more assigned users not found")
	ErrTitleRequired         = errors.New("title is required")
	ErrTitleEmpty            = errors.New("title cannot be empty")
	ErrTitleTooLong          = errors.New("title is too long")
	ErrInvalidEstimatedHours = errors.New("estimated hours cannot be negative")
	ErrInvalidStatus         = errors.New("status must be ACTIVE or COMPLETED")
	ErrInvalidSortOrder      = errors.New("sort order must be ASC or DESC")
	ErrDueDateRequired       = errors.New("due date is required")
	ErrInvalidMonetaryCost   = errors.New("monetary cost cannot be negative")
)

// SortOrder is the direction of the due date ordering in task listings
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title           string
	Description     string
	EstimatedHours  int
	DueDate         time.Time
	Status          models.TaskStatus
	CompletionDate  *time.Time
	MonetaryCost    decimal.Decimal
	AssignedUserIDs []string
}

// ListTasksInput represents filters for listing tasks. Empty fields do not filter.
type ListTasksInput struct {
	Title                   string
	DueDate                 *time.Time
	AssignedUserID          string
	AssignedUserNameOrEmail string
	SortOrder               SortOrder
}

// UpdateTaskInput is a field-level patch: nil fields keep their current value.
// A non-nil AssignedUserIDs replaces the whole assignment set.
type UpdateTaskInput struct {
	Title               *string
	Description         *string
	EstimatedHours      *int
	DueDate             *time.Time
	Status              *models.TaskStatus
	CompletionDate      *time.Time
	ClearCompletionDate bool
	MonetaryCost        *decimal.Decimal
	AssignedUserIDs     *[]string
}

// CreateTask validates the assigned users and stores the task. Nothing is
// written when any assigned user is missing.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if input.EstimatedHours < 0 {
		return nil, ErrInvalidEstimatedHours
	}
	if input.DueDate.IsZero() {
		return nil, ErrDueDateRequired
	}
	if input.MonetaryCost.IsNegative() {
		return nil, ErrInvalidMonetaryCost
	}

	if input.Status == "" {
		input.Status = models.TaskStatusActive
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	task := &models.Task{
		Title:          title,
		Description:    input.Description,
		EstimatedHours: input.EstimatedHours,
		DueDate:        utils.TruncateToDay(input.DueDate),
		Status:         input.Status,
		CompletionDate: normalizeTimestamp(input.CompletionDate),
		MonetaryCost:   input.MonetaryCost.Round(constants.MoneyScale),
	}

	if len(input.AssignedUserIDs) > 0 {
		users, err := s.resolveAssignees(ctx, input.AssignedUserIDs)
		if err != nil {
			return nil, err
		}
		task.AssignedUsers = users
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// ListTasks returns the tasks matching every provided filter, sorted by due
// date (descending unless SortAsc is requested)
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		Title:                   strings.TrimSpace(input.Title),
		DueDate:                 input.DueDate,
		AssignedUserID:          input.AssignedUserID,
		AssignedUserNameOrEmail: strings.TrimSpace(input.AssignedUserNameOrEmail),
		SortDescending:          true,
	}

	switch SortOrder(strings.ToUpper(string(input.SortOrder))) {
	case "", SortDesc:
	case SortAsc:
		filter.SortDescending = false
	default:
		return nil, ErrInvalidSortOrder
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task with its assigned users
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, "AssignedUsers")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTask applies the patch to an existing task
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		if utf8.RuneCountInString(title) > constants.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.EstimatedHours != nil {
		if *input.EstimatedHours < 0 {
			return nil, ErrInvalidEstimatedHours
		}
		task.EstimatedHours = *input.EstimatedHours
	}
	if input.DueDate != nil {
		task.DueDate = utils.TruncateToDay(*input.DueDate)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ClearCompletionDate {
		task.CompletionDate = nil
	} else if input.CompletionDate != nil {
		task.CompletionDate = normalizeTimestamp(input.CompletionDate)
	}
	if input.MonetaryCost != nil {
		if input.MonetaryCost.IsNegative() {
			return nil, ErrInvalidMonetaryCost
		}
		task.MonetaryCost = input.MonetaryCost.Round(constants.MoneyScale)
	}

	replaceAssignees := input.AssignedUserIDs != nil
	if replaceAssignees {
		users, err := s.resolveAssignees(ctx, *input.AssignedUserIDs)
		if err != nil {
			return nil, err
		}
		task.AssignedUsers = users
	}

	if err := s.taskRepo.Update(ctx, task, replaceAssignees); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// DeleteTask deletes a task and its assignments
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// resolveAssignees loads the users for ids and fails when any of them is missing
func (s *TaskService) resolveAssignees(ctx context.Context, ids []string) ([]models.User, error) {
	userIDs := uniqueStrings(ids)
	if len(userIDs) == 0 {
		return []models.User{}, nil
	}

	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to verify users: %w", err)
	}
	if len(users) < len(userIDs) {
		return nil, ErrAssignedUserNotFound
	}

	return users, nil
}

func normalizeTimestamp(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// uniqueStrings removes duplicate values while keeping the first occurrence order
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
