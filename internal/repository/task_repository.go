package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/task-analytics-api/internal/database"
	"github.com/yukikurage/task-analytics-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts the task and one join row per assigned user. Users are
// referenced, never upserted.
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("AssignedUsers.*").Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, "tasks.id = ?", id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching every non-empty filter field
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.Title != "" {
		query = query.Scopes(database.TitleContains(filter.Title))
	}
	if filter.DueDate != nil {
		query = query.Scopes(database.DueOn(*filter.DueDate))
	}
	if filter.AssignedUserID != "" {
		query = query.Scopes(database.AssignedTo(filter.AssignedUserID))
	}
	if filter.AssignedUserNameOrEmail != "" {
		query = query.Scopes(database.AssigneeNameOrEmailContains(filter.AssignedUserNameOrEmail))
	}

	tasks := []models.Task{}
	if err := query.
		Scopes(database.OrderByDueDate(filter.SortDescending)).
		Preload("AssignedUsers").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update saves the task and optionally replaces its assignments in one transaction
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task, replaceAssignees bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}

		if !replaceAssignees {
			return nil
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignedUser{}).Error; err != nil {
			return err
		}

		if len(task.AssignedUsers) == 0 {
			return nil
		}

		rows := make([]models.TaskAssignedUser, len(task.AssignedUsers))
		for i, user := range task.AssignedUsers {
			rows[i] = models.TaskAssignedUser{TaskID: task.ID, UserID: user.ID}
		}

		return tx.Create(&rows).Error
	})
}

// Delete removes the task and its assignment rows. It returns
// gorm.ErrRecordNotFound when no task has that id.
func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignedUser{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// Count counts tasks matching the filter predicates
func (r *GormTaskRepository) Count(ctx context.Context, filter TaskCountFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.Status != nil {
		query = query.Scopes(database.WithStatus(*filter.Status))
	}
	if filter.DueBefore != nil {
		query = query.Scopes(database.DueBefore(*filter.DueBefore))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
