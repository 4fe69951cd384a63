package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "ACTIVE"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// Valid reports whether s is a known status
func (s TaskStatus) Valid() bool {
	return s == TaskStatusActive || s == TaskStatusCompleted
}

type Task struct {
	ID             string          `gorm:"type:varchar(36);primarykey" json:"id"`
	Title          string          `gorm:"type:varchar(255);not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	EstimatedHours int             `gorm:"not null" json:"estimated_hours"`
	DueDate        time.Time       `gorm:"type:date;not null" json:"due_date"`
	Status         TaskStatus      `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CompletionDate *time.Time      `json:"completion_date"`
	MonetaryCost   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monetary_cost"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	AssignedUsers []User `gorm:"many2many:tasks_assigned_users;constraint:OnDelete:CASCADE" json:"assigned_users"`
}

// BeforeCreate assigns a random UUID when the caller did not set one
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsCompleted reports whether the task has status COMPLETED
func (t Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}
