package dto

import (
	"time"

	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/utils"
)

// TaskUserDTO represents a creator or assignee inside a task
type TaskUserDTO struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Category    models.TaskCategory `json:"category"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedBy   uint64              `json:"created_by"`
	ResultLink  *string             `json:"result_link"`
	CreatedAt   time.Time           `json:"created_at"`
	Creator     *TaskUserDTO        `json:"creator,omitempty"`
	Assignees   []TaskUserDTO       `json:"assignees"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// CommentDTO is a comment decorated with its author
type CommentDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	UserID    uint64    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Avatar    *string   `json:"avatar"`
}

// ActivityDTO is an activity entry decorated with its actor
type ActivityDTO struct {
	ID         uint64              `json:"id"`
	TaskID     uint64              `json:"task_id"`
	UserID     uint64              `json:"user_id"`
	Type       models.ActivityType `json:"type"`
	Content    string              `json:"content"`
	ResultLink *string             `json:"result_link"`
	CreatedAt  time.Time           `json:"created_at"`
	Username   string              `json:"username"`
	Avatar     *string             `json:"avatar"`
}

// Conversion functions

func toTaskUserDTO(user *models.User) *TaskUserDTO {
	if user == nil {
		return nil
	}
	return &TaskUserDTO{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	result := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Category:    task.Category,
		DueDate:     task.DueDate,
		CreatedBy:   task.CreatedBy,
		ResultLink:  task.ResultLink,
		CreatedAt:   task.CreatedAt,
		Creator:     toTaskUserDTO(task.Creator),
		Assignees:   make([]TaskUserDTO, 0, len(task.Assignees)),
	}

	for _, assignee := range task.Assignees {
		if user := toTaskUserDTO(assignee.User); user != nil {
			result.Assignees = append(result.Assignees, *user)
		} else {
			result.Assignees = append(result.Assignees, TaskUserDTO{ID: assignee.UserID})
		}
	}

	return result
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: params.Response(total),
	}
}

// ToCommentDTO converts a TaskComment with its author loaded
func ToCommentDTO(comment models.TaskComment) CommentDTO {
	result := CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		result.Username = comment.User.Username
		result.Avatar = comment.User.Avatar
	}
	return result
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.TaskComment) []CommentDTO {
	result := make([]CommentDTO, len(comments))
	for i, c := range comments {
		result[i] = ToCommentDTO(c)
	}
	return result
}

// ToActivityDTOs converts a slice of activities
func ToActivityDTOs(activities []models.TaskActivity) []ActivityDTO {
	result := make([]ActivityDTO, len(activities))
	for i, a := range activities {
		result[i] = ActivityDTO{
			ID:         a.ID,
			TaskID:     a.TaskID,
			UserID:     a.UserID,
			Type:       a.Type,
			Content:    a.Content,
			ResultLink: a.ResultLink,
			CreatedAt:  a.CreatedAt,
		}
		if a.User != nil {
			result[i].Username = a.User.Username
			result[i].Avatar = a.User.Avatar
		}
	}
	return result
}
