package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-collab-api/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "not-a-real-hash",
		FullName:     username,
		Role:         "user",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTask inserts a pending task created by creatorID and assigned to assigneeIDs.
func CreateTask(t *testing.T, db *gorm.DB, creatorID uint64, assigneeIDs ...uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       "Task",
		Description: "Description",
		Status:      models.TaskStatusPending,
		Priority:    models.TaskPriorityMedium,
		Category:    models.TaskCategoryDevelopment,
		CreatedBy:   creatorID,
	}
	require.NoError(t, db.Create(task).Error)

	for _, id := range assigneeIDs {
		require.NoError(t, db.Create(&models.TaskAssignee{TaskID: task.ID, UserID: id}).Error)
	}
	return task
}
