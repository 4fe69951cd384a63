package database

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/task-analytics-api/internal/models"
	"github.com/yukikurage/task-analytics-api/internal/utils"
)

func containsPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// TitleContains matches tasks whose title contains term, ignoring case
func TitleContains(term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(tasks.title) LIKE ?", containsPattern(term))
	}
}

// DueOn matches tasks due on the calendar day of day
func DueOn(day time.Time) func(db *gorm.DB) *gorm.DB {
	start, end := utils.DayRange(day)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.due_date >= ? AND tasks.due_date < ?", start, end)
	}
}

// DueBefore matches tasks whose due date is strictly before day
func DueBefore(day time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.due_date < ?", utils.TruncateToDay(day))
	}
}

// WithStatus matches tasks in the given status
func WithStatus(status models.TaskStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.status = ?", status)
	}
}

// AssignedTo matches tasks that have userID among their assigned users
func AssignedTo(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`EXISTS (
			SELECT 1 FROM tasks_assigned_users
			WHERE tasks_assigned_users.task_id = tasks.id
			AND tasks_assigned_users.user_id = ?)`, userID)
	}
}

// AssigneeNameOrEmailContains matches tasks with at least one assigned user
// whose name or email contains term, ignoring case
func AssigneeNameOrEmailContains(term string) func(db *gorm.DB) *gorm.DB {
	pattern := containsPattern(term)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`EXISTS (
			SELECT 1 FROM tasks_assigned_users
			JOIN users ON users.id = tasks_assigned_users.user_id
			WHERE tasks_assigned_users.task_id = tasks.id
			AND (LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?))`, pattern, pattern)
	}
}

// OrderByDueDate sorts tasks by due date, breaking ties by id
func OrderByDueDate(descending bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if descending {
			return db.Order("tasks.due_date DESC").Order("tasks.id DESC")
		}
		return db.Order("tasks.due_date ASC").Order("tasks.id ASC")
	}
}

// WithRole matches users holding role
func WithRole(role models.UserRole) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("users.role = ?", role)
	}
}

// NameContains matches users whose name contains term, ignoring case
func NameContains(term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(users.name) LIKE ?", containsPattern(term))
	}
}

// WithEmail matches the user with exactly this email
func WithEmail(email string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("users.email = ?", email)
	}
}

// CreationOrder lists users oldest first
func CreationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("users.created_at ASC").Order("users.id ASC")
}
