package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/task-analytics-api/internal/database"
	"github.com/yukikurage/task-analytics-api/internal/logging"
	"github.com/yukikurage/task-analytics-api/internal/models"
	"github.com/yukikurage/task-analytics-api/internal/repository"
)

func init() {
	logging.Logger.SetOutput(&bytes.Buffer{})
}

type testEnv struct {
	db               *gorm.DB
	taskService      *TaskService
	userService      *UserService
	analyticsService *AnalyticsService
}

// newTestEnv wires every service against a fresh in-memory database. A
// single connection keeps concurrent queries on the same database.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.Options())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.MigrateDatabase(db))

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	return testEnv{
		db:               db,
		taskService:      NewTaskService(taskRepo, userRepo),
		userService:      NewUserService(userRepo),
		analyticsService: NewAnalyticsService(taskRepo, userRepo),
	}
}

// seedUser inserts a user directly, skipping password hashing
func seedUser(t *testing.T, db *gorm.DB, name, email string, role models.UserRole) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role, Password: "$2a$04$seeded"}
	require.NoError(t, db.Create(&user).Error)

	// Distinct creation timestamps keep listing order deterministic
	time.Sleep(2 * time.Millisecond)
	return user
}

type taskSeed struct {
	title      string
	due        time.Time
	status     models.TaskStatus
	completion *time.Time
	cost       string
	assignees  []models.User
}

func seedTask(t *testing.T, db *gorm.DB, seed taskSeed) models.Task {
	t.Helper()

	if seed.status == "" {
		seed.status = models.TaskStatusActive
	}
	if seed.cost == "" {
		seed.cost = "0"
	}

	task := models.Task{
		Title:          seed.title,
		EstimatedHours: 1,
		DueDate:        seed.due,
		Status:         seed.status,
		CompletionDate: seed.completion,
		MonetaryCost:   decimal.RequireFromString(seed.cost),
		AssignedUsers:  seed.assignees,
	}
	require.NoError(t, db.Omit("AssignedUsers.*").Create(&task).Error)
	return task
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func taskTitles(tasks []models.Task) []string {
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	return titles
}

func userIDs(users []models.User) []string {
	ids := make([]string, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}
	return ids
}

func checkPassword(t *testing.T, hash, password string) {
	t.Helper()
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)))
}
