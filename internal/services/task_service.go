package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/repository"
	"github.com/yukikurage/team-collab-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrNotTaskCreator      = errors.New("only the task creator can perform this action")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleEmpty          = errors.New("title cannot be empty")
	ErrInvalidStatus       = errors.New("invalid task status")
	ErrInvalidPriority     = errors.New("invalid task priority")
	ErrInvalidCategory     = errors.New("invalid task category")
	ErrInvalidTaskAssignee = errors.New("one or more assignees do not exist")
	ErrCommentEmpty        = errors.New("comment content cannot be empty")
	ErrResultLinkRequired  = errors.New("result link is required")
)

var taskDetailPreloads = []string{"Creator", "Assignees", "Assignees.User"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	commentRepo  repository.CommentRepository
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
	notifier     *Notifier
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	commentRepo repository.CommentRepository,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID       uint64
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	Category     *models.TaskCategory
	AssigneeID   *uint64
	AssignedToMe bool
	CreatedByMe  bool
	Pagination   utils.PaginationParams
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	Category    models.TaskCategory
	DueDate     *time.Time
	CreatorID   uint64
	AssigneeIDs []uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	Category     *models.TaskCategory
	DueDate      *time.Time
	ClearDueDate bool
}

// AssignUsersInput represents input for replacing a task's assignees
type AssignUsersInput struct {
	TaskID  uint64
	ActorID uint64
	UserIDs []uint64
}

// ListTasks returns tasks matching the provided filters
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return nil, 0, ErrInvalidPriority
	}
	if input.Category != nil && !input.Category.IsValid() {
		return nil, 0, ErrInvalidCategory
	}

	filter := repository.TaskFilter{
		Status:     input.Status,
		Priority:   input.Priority,
		Category:   input.Category,
		AssigneeID: input.AssigneeID,
		Pagination: input.Pagination,
	}
	if input.AssignedToMe {
		filter.AssigneeID = &input.UserID
	}
	if input.CreatedByMe {
		filter.CreatedBy = &input.UserID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its creator and assignees
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	return s.findTask(taskID, taskDetailPreloads...)
}

// CreateTask creates a task and notifies its assignees
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if !input.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if !input.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)
	if err := s.ensureUsersExist(assigneeIDs); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Category:    input.Category,
		DueDate:     input.DueDate,
		CreatedBy:   input.CreatorID,
	}

	if err := s.taskRepo.Create(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.notifier.NotifyTask(TaskEvent{
		Type:       models.NotificationTaskAssigned,
		TaskID:     task.ID,
		ActorID:    input.CreatorID,
		Recipients: assigneeIDs,
	}); err != nil {
		return nil, err
	}

	return s.findTask(task.ID, taskDetailPreloads...)
}

// UpdateTask applies the changed fields, records them as activities and
// notifies the creator and assignees other than the actor
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	var edited []string

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		if title != task.Title {
			changes["title"] = title
			edited = append(edited, "title")
		}
	}
	if input.Description != nil && *input.Description != task.Description {
		changes["description"] = *input.Description
		edited = append(edited, "description")
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		if *input.Priority != task.Priority {
			changes["priority"] = *input.Priority
			edited = append(edited, "priority")
		}
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, ErrInvalidCategory
		}
		if *input.Category != task.Category {
			changes["category"] = *input.Category
			edited = append(edited, "category")
		}
	}
	if input.ClearDueDate {
		if task.DueDate != nil {
			changes["due_date"] = nil
			edited = append(edited, "due date")
		}
	} else if input.DueDate != nil && (task.DueDate == nil || !task.DueDate.Equal(*input.DueDate)) {
		changes["due_date"] = *input.DueDate
		edited = append(edited, "due date")
	}

	var activities []models.TaskActivity
	statusChanged := false
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		if *input.Status != task.Status {
			statusChanged = true
			changes["status"] = *input.Status
			activities = append(activities, models.TaskActivity{
				TaskID:  taskID,
				UserID:  actorID,
				Type:    models.ActivityStatusChange,
				Content: fmt.Sprintf("Status changed from %s to %s", task.Status, *input.Status),
			})
		}
	}
	if len(edited) > 0 {
		activities = append(activities, models.TaskActivity{
			TaskID:  taskID,
			UserID:  actorID,
			Type:    models.ActivityEdit,
			Content: "Updated " + strings.Join(edited, ", "),
		})
	}

	if len(changes) == 0 {
		return s.findTask(taskID, taskDetailPreloads...)
	}

	if err := s.taskRepo.Update(taskID, changes, activities); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	recipients, err := s.taskRepo.ListAssigneeIDs(taskID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignees: %w", err)
	}
	recipients = append(recipients, task.CreatedBy)

	eventType := models.NotificationTaskUpdated
	if statusChanged && *input.Status == models.TaskStatusCompleted {
		eventType = models.NotificationTaskCompleted
	}
	if err := s.notifier.NotifyTask(TaskEvent{
		Type:       eventType,
		TaskID:     taskID,
		ActorID:    actorID,
		Recipients: recipients,
	}); err != nil {
		return nil, err
	}

	return s.findTask(taskID, taskDetailPreloads...)
}

// DeleteTask deletes a task if the actor is the creator
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if task.CreatedBy != actorID {
		return ErrNotTaskCreator
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ReplaceAssignees sets the task's assignees to exactly the given users and
// notifies the newly added ones
func (s *TaskService) ReplaceAssignees(input AssignUsersInput) (*models.Task, error) {
	task, err := s.findTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	if task.CreatedBy != input.ActorID {
		return nil, ErrNotTaskCreator
	}

	userIDs := uniqueUint64(input.UserIDs)
	if err := s.ensureUsersExist(userIDs); err != nil {
		return nil, err
	}

	current, err := s.taskRepo.ListAssigneeIDs(task.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignees: %w", err)
	}

	added := difference(userIDs, current)
	removed := difference(current, userIDs)
	if len(added) == 0 && len(removed) == 0 {
		return s.findTask(task.ID, taskDetailPreloads...)
	}

	activity := &models.TaskActivity{
		TaskID:  task.ID,
		UserID:  input.ActorID,
		Type:    models.ActivityAssigneeChange,
		Content: fmt.Sprintf("Assignees changed: %d added, %d removed", len(added), len(removed)),
	}
	if err := s.taskRepo.ReplaceAssignees(task.ID, userIDs, activity); err != nil {
		return nil, fmt.Errorf("failed to replace assignees: %w", err)
	}

	if err := s.notifier.NotifyTask(TaskEvent{
		Type:       models.NotificationTaskAssigned,
		TaskID:     task.ID,
		ActorID:    input.ActorID,
		Recipients: added,
	}); err != nil {
		return nil, err
	}

	return s.findTask(task.ID, taskDetailPreloads...)
}

// ListComments returns a task's comments newest first
func (s *TaskService) ListComments(taskID uint64) ([]models.TaskComment, error) {
	if err := s.ensureTaskExists(taskID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment stores a comment and notifies every other assignee
func (s *TaskService) AddComment(taskID, actorID uint64, content string) (*models.TaskComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrCommentEmpty
	}
	if err := s.ensureTaskExists(taskID); err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		TaskID:  taskID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if err := s.notifyAssignees(models.NotificationTaskComment, taskID, actorID); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return created, nil
}

// AddResult stores the task's result link, logs it and notifies every other
// assignee. Repeating the call overwrites the link and logs again.
func (s *TaskService) AddResult(taskID, actorID uint64, link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return ErrResultLinkRequired
	}
	if err := s.ensureTaskExists(taskID); err != nil {
		return err
	}

	activity := &models.TaskActivity{
		TaskID:     taskID,
		UserID:     actorID,
		Type:       models.ActivityResult,
		Content:    "Added result link",
		ResultLink: &link,
	}
	if err := s.taskRepo.SetResultLink(taskID, link, activity); err != nil {
		return fmt.Errorf("failed to set result link: %w", err)
	}

	return s.notifyAssignees(models.NotificationTaskResult, taskID, actorID)
}

// ListActivities returns a task's activity log newest first
func (s *TaskService) ListActivities(taskID uint64) ([]models.TaskActivity, error) {
	if err := s.ensureTaskExists(taskID); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (s *TaskService) notifyAssignees(eventType models.NotificationType, taskID, actorID uint64) error {
	recipients, err := s.taskRepo.ListAssigneeIDs(taskID, actorID)
	if err != nil {
		return fmt.Errorf("failed to load assignees: %w", err)
	}

	return s.notifier.NotifyTask(TaskEvent{
		Type:       eventType,
		TaskID:     taskID,
		ActorID:    actorID,
		Recipients: recipients,
	})
}

func (s *TaskService) findTask(taskID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ensureTaskExists(taskID uint64) error {
	exists, err := s.taskRepo.Exists(taskID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	if !exists {
		return ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) ensureUsersExist(userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	count, err := s.userRepo.CountByIDs(userIDs)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(userIDs) {
		return ErrInvalidTaskAssignee
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

// difference returns the values of a that are not in b
func difference(a, b []uint64) []uint64 {
	inB := make(map[uint64]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}

	result := []uint64{}
	for _, v := range a {
		if _, ok := inB[v]; !ok {
			result = append(result, v)
		}
	}
	return result
}
