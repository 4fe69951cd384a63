package models

// TaskAssignedUser is one row of the tasks_assigned_users join table.
// The table itself is created through the many2many relation on Task.
type TaskAssignedUser struct {
	TaskID string `gorm:"type:varchar(36);primarykey" json:"task_id"`
	UserID string `gorm:"type:varchar(36);primarykey" json:"user_id"`
}

func (TaskAssignedUser) TableName() string {
	return "tasks_assigned_users"
}
