package handlers

import (
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/task-analytics-api/internal/dto"
	"github.com/yukikurage/task-analytics-api/internal/models"
)

func (suite *APITestSuite) TestTaskStatusAnalytics_Empty() {
	w := suite.request(http.MethodGet, "/api/analytics/tasks/status", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	assert.JSONEq(suite.T(), `{
		"total_tasks_count": 0,
		"active_tasks_count": 0,
		"active_tasks_percentage": 0,
		"completed_tasks_count": 0,
		"completed_tasks_percentage": 0,
		"overdue_tasks_count": 0,
		"overdue_tasks_percentage": 0
	}`, w.Body.String())
}

func (suite *APITestSuite) TestTaskStatusAnalytics() {
	today := time.Now().UTC()
	yesterday := time.Date(today.Year(), today.Month(), today.Day()-1, 0, 0, 0, 0, time.UTC)
	nextWeek := yesterday.AddDate(0, 0, 8)

	suite.createTestTask("Overdue", yesterday, models.TaskStatusActive, "1")
	suite.createTestTask("Upcoming", nextWeek, models.TaskStatusActive, "1")
	suite.createTestTask("Finished", yesterday, models.TaskStatusCompleted, "1")
	suite.createTestTask("Finished too", nextWeek, models.TaskStatusCompleted, "1")

	w := suite.request(http.MethodGet, "/api/analytics/tasks/status", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var stats dto.TaskStatusAnalyticsDTO
	suite.decode(w, &stats)
	assert.EqualValues(suite.T(), 4, stats.TotalTasksCount)
	assert.EqualValues(suite.T(), 2, stats.ActiveTasksCount)
	assert.Equal(suite.T(), 50.0, stats.ActiveTasksPercentage)
	assert.EqualValues(suite.T(), 1, stats.OverdueTasksCount)
	assert.Equal(suite.T(), 25.0, stats.OverdueTasksPercentage)
}

func (suite *APITestSuite) TestUserEfficiencyAnalytics() {
	anna := suite.createTestUser("Anna", "anna@example.com", models.RoleMember)
	bob := suite.createTestUser("Bob Jones", "bob@example.com", models.RoleMember)

	due := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, time.May, 3, 8, 0, 0, 0, time.UTC)
	onTime := suite.createTestTask("On time", due, models.TaskStatusCompleted, "1", anna)
	overdue := suite.createTestTask("Late", due, models.TaskStatusCompleted, "1", anna)
	suite.Require().NoError(suite.db.Model(&onTime).Update("completion_date", due.Add(20*time.Hour)).Error)
	suite.Require().NoError(suite.db.Model(&overdue).Update("completion_date", late).Error)

	w := suite.request(http.MethodGet, "/api/analytics/users/efficiency", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var records []dto.UserEfficiencyDTO
	suite.decode(w, &records)
	assert.Equal(suite.T(), []dto.UserEfficiencyDTO{
		{UserID: anna.ID, UserName: "Anna", AssignedTasksCount: 2, CompletedTasksCount: 2, OnTimeCompletedTasksCount: 1, OverdueCompletedTasksCount: 1},
		{UserID: bob.ID, UserName: "Bob Jones"},
	}, records)
}
