package repository

import (
	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(email string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether a user holds the username
	// (compared case-insensitively) or the email (compared exactly)
	ExistsByUsernameOrEmail(username, email string) (bool, error)

	// List returns all users ordered by username
	List() ([]models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []uint64) (int64, error)

	// FindProfile finds a user with every profile section loaded and ordered
	FindProfile(id uint64) (*models.User, error)

	// ReplaceProfile overwrites the user's base fields and replaces every
	// profile section in a single transaction
	ReplaceProfile(user *models.User) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task and its assignee rows in one transaction
	Create(task *models.Task, assigneeIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Exists reports whether a task with the ID exists
	Exists(id uint64) (bool, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update applies column changes and appends activities atomically
	Update(taskID uint64, changes map[string]interface{}, activities []models.TaskActivity) error

	// Delete deletes a task; child rows go with it through cascading foreign keys
	Delete(id uint64) error

	// ListAssigneeIDs returns the task's assignees, leaving out excludeUserID
	ListAssigneeIDs(taskID, excludeUserID uint64) ([]uint64, error)

	// ReplaceAssignees makes userIDs the task's exact assignee set and appends activity
	ReplaceAssignees(taskID uint64, userIDs []uint64, activity *models.TaskActivity) error

	// SetResultLink stores the result link and appends activity
	SetResultLink(taskID uint64, link string, activity *models.TaskActivity) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	Category   *models.TaskCategory
	AssigneeID *uint64
	CreatedBy  *uint64
	Pagination utils.PaginationParams
}

// CommentRepository defines the interface for task comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.TaskComment) error

	// FindByID finds a comment with its author loaded
	FindByID(id uint64) (*models.TaskComment, error)

	// ListByTask lists a task's comments newest first with authors loaded
	ListByTask(taskID uint64) ([]models.TaskComment, error)
}

// ActivityRepository defines the interface for task activity data access
type ActivityRepository interface {
	// ListByTask lists a task's activities newest first with actors loaded
	ListByTask(taskID uint64) ([]models.TaskActivity, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// CreateBatch inserts all notifications with one multi-row statement
	CreateBatch(notifications []models.Notification) error

	// ListForUser lists the newest notifications addressed to userID
	ListForUser(userID uint64, limit int) ([]models.Notification, error)

	// FindForUser finds a notification only if it is addressed to userID
	FindForUser(id, userID uint64) (*models.Notification, error)

	// MarkRead marks one notification as read
	MarkRead(id uint64) error

	// MarkAllRead marks every notification addressed to userID as read
	MarkAllRead(userID uint64) error

	// Delete deletes a notification
	Delete(id uint64) error

	// CountUnread counts unread notifications addressed to userID
	CountUnread(userID uint64) (int64, error)
}
