package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/yukikurage/task-analytics-api/internal/dto"
	"github.com/yukikurage/task-analytics-api/internal/models"
	"github.com/yukikurage/task-analytics-api/internal/repository"
	"github.com/yukikurage/task-analytics-api/internal/utils"
)

// AnalyticsService computes read-only reports over all tasks and users
type AnalyticsService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *AnalyticsService {
	return &AnalyticsService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// TaskStatusAnalytics counts tasks per status and the active tasks whose due
// date is before today. The four counts run concurrently.
func (s *AnalyticsService) TaskStatusAnalytics(ctx context.Context) (*dto.TaskStatusAnalyticsDTO, error) {
	today := utils.TruncateToDay(s.now().UTC())
	active := models.TaskStatusActive
	completed := models.TaskStatusCompleted

	var total, activeCount, completedCount, overdueCount int64

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, filter repository.TaskCountFilter) {
		g.Go(func() error {
			n, err := s.taskRepo.Count(gctx, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&total, repository.TaskCountFilter{})
	count(&activeCount, repository.TaskCountFilter{Status: &active})
	count(&completedCount, repository.TaskCountFilter{Status: &completed})
	count(&overdueCount, repository.TaskCountFilter{Status: &active, DueBefore: &today})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &dto.TaskStatusAnalyticsDTO{
		TotalTasksCount:          total,
		ActiveTasksCount:         activeCount,
		ActiveTasksPercentage:    percentage(activeCount, total),
		CompletedTasksCount:      completedCount,
		CompletedTasksPercentage: percentage(completedCount, total),
		OverdueTasksCount:        overdueCount,
		OverdueTasksPercentage:   percentage(overdueCount, total),
	}, nil
}

// UserEfficiencyAnalytics returns one record per user in creation order
func (s *AnalyticsService) UserEfficiencyAnalytics(ctx context.Context) ([]dto.UserEfficiencyDTO, error) {
	users, err := s.userRepo.List(ctx, repository.UserFilter{}, "Tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	records := make([]dto.UserEfficiencyDTO, len(users))
	for i, user := range users {
		records[i] = userEfficiency(user)
	}

	return records, nil
}

func userEfficiency(user models.User) dto.UserEfficiencyDTO {
	record := dto.UserEfficiencyDTO{
		UserID:             user.ID,
		UserName:           user.Name,
		AssignedTasksCount: len(user.Tasks),
	}

	for _, task := range user.Tasks {
		if !task.IsCompleted() {
			continue
		}
		record.CompletedTasksCount++

		// Completed tasks without a completion date are left unclassified
		if task.CompletionDate == nil {
			continue
		}
		if utils.TruncateToDay(*task.CompletionDate).After(utils.TruncateToDay(task.DueDate)) {
			record.OverdueCompletedTasksCount++
		} else {
			record.OnTimeCompletedTasksCount++
		}
	}

	return record
}

// percentage returns part/total*100 rounded to 2 decimals, or 0 when total is 0
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}

	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2).
		InexactFloat64()
}
