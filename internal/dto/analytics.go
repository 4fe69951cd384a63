package dto

// TaskStatusAnalyticsDTO summarizes the status of every task
type TaskStatusAnalyticsDTO struct {
	TotalTasksCount          int64   `json:"total_tasks_count"`
	ActiveTasksCount         int64   `json:"active_tasks_count"`
	ActiveTasksPercentage    float64 `json:"active_tasks_percentage"`
	CompletedTasksCount      int64   `json:"completed_tasks_count"`
	CompletedTasksPercentage float64 `json:"completed_tasks_percentage"`
	OverdueTasksCount        int64   `json:"overdue_tasks_count"`
	OverdueTasksPercentage   float64 `json:"overdue_tasks_percentage"`
}

// UserEfficiencyDTO is the per-user assignment and completion summary
type UserEfficiencyDTO struct {
	UserID                     string `json:"user_id"`
	UserName                   string `json:"user_name"`
	AssignedTasksCount         int    `json:"assigned_tasks_count"`
	CompletedTasksCount        int    `json:"completed_tasks_count"`
	OnTimeCompletedTasksCount  int    `json:"on_time_completed_tasks_count"`
	OverdueCompletedTasksCount int    `json:"overdue_completed_tasks_count"`
}
