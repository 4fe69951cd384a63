package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/task-analytics-api/internal/dto"
	"github.com/yukikurage/task-analytics-api/internal/models"
)

func (suite *APITestSuite) TestCreateUser_Success() {
	w := suite.request(http.MethodPost, "/api/users", map[string]interface{}{
		"name":     "Anna Smith",
		"email":    "anna@example.com",
		"role":     "ADMIN",
		"password": "password123",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response dto.UserDTO
	suite.decode(w, &response)
	assert.NotEmpty(suite.T(), response.ID)
	assert.Equal(suite.T(), models.RoleAdmin, response.Role)
	assert.NotContains(suite.T(), w.Body.String(), "password")
}

func (suite *APITestSuite) TestCreateUser_DuplicateEmail() {
	suite.createTestUser("Anna", "anna@example.com", models.RoleMember)

	w := suite.request(http.MethodPost, "/api/users", map[string]interface{}{
		"name":     "Other Anna",
		"email":    "anna@example.com",
		"password": "password123",
	})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "ALREADY_EXISTS")
}

func (suite *APITestSuite) TestCreateUser_InvalidRequest() {
	tests := map[string]map[string]interface{}{
		"short name":     {"name": "Ann", "email": "a@example.com", "password": "password123"},
		"bad email":      {"name": "Anna", "email": "not-an-email", "password": "password123"},
		"bad role":       {"name": "Anna", "email": "a@example.com", "password": "password123", "role": "OWNER"},
		"short password": {"name": "Anna", "email": "a@example.com", "password": "short"},
		"long password":  {"name": "Anna", "email": "a@example.com", "password": "this-password-is-far-too-long"},
	}

	for name, body := range tests {
		suite.Run(name, func() {
			w := suite.request(http.MethodPost, "/api/users", body)
			assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
		})
	}
}

func (suite *APITestSuite) TestListUsers_WithTaskStats() {
	u1 := suite.createTestUser("Anna", "anna@example.com", models.RoleMember)
	u2 := suite.createTestUser("JoAnna", "joanna@example.com", models.RoleAdmin)
	suite.createTestUser("Bob Jones", "bob@example.com", models.RoleMember)

	due := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	suite.createTestTask("T1", due, models.TaskStatusCompleted, "100.00", u1)
	suite.createTestTask("T2", due, models.TaskStatusActive, "50.00", u1, u2)

	w := suite.request(http.MethodGet, "/api/users?name=ann", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var users []dto.UserWithTaskStatsDTO
	suite.decode(w, &users)
	suite.Require().Len(users, 2)
	assert.Equal(suite.T(), u1.ID, users[0].ID)
	assert.Equal(suite.T(), 1, users[0].CompletedTasksCount)
	assert.Equal(suite.T(), "100", users[0].TotalCompletedTasksCost.String())
	assert.Equal(suite.T(), u2.ID, users[1].ID)
	assert.Equal(suite.T(), 0, users[1].CompletedTasksCount)
	assert.NotContains(suite.T(), w.Body.String(), `"tasks"`)

	w = suite.request(http.MethodGet, "/api/users?role=admin", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	users = nil
	suite.decode(w, &users)
	suite.Require().Len(users, 1)
	assert.Equal(suite.T(), u2.ID, users[0].ID)

	w = suite.request(http.MethodGet, "/api/users?email=bob@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	users = nil
	suite.decode(w, &users)
	suite.Require().Len(users, 1)
	assert.Equal(suite.T(), "Bob Jones", users[0].Name)

	assert.Equal(suite.T(), http.StatusBadRequest, suite.request(http.MethodGet, "/api/users?role=OWNER", nil).Code)
}

func (suite *APITestSuite) TestGetUser() {
	anna := suite.createTestUser("Anna", "anna@example.com", models.RoleMember)

	w := suite.request(http.MethodGet, "/api/users/"+anna.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.UserDTO
	suite.decode(w, &response)
	assert.Equal(suite.T(), anna.Email, response.Email)

	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodGet, "/api/users/"+uuid.NewString(), nil).Code)
	assert.Equal(suite.T(), http.StatusBadRequest, suite.request(http.MethodGet, "/api/users/me", nil).Code)
}

func (suite *APITestSuite) TestDeleteUser() {
	anna := suite.createTestUser("Anna", "anna@example.com", models.RoleMember)
	task := suite.createTestTask("Shared", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), models.TaskStatusActive, "1", anna)

	w := suite.request(http.MethodDelete, "/api/users/"+anna.ID, nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, "/api/tasks/"+task.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var response dto.TaskDTO
	suite.decode(w, &response)
	assert.Empty(suite.T(), response.AssignedUsers)

	assert.Equal(suite.T(), http.StatusNotFound, suite.request(http.MethodDelete, "/api/users/"+anna.ID, nil).Code)
}
