package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-collab-api/internal/dto"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/services"
	"github.com/yukikurage/team-collab-api/internal/utils"
)

var errInvalidDueDate = errors.New("due_date must be RFC3339 or YYYY-MM-DD")

type TaskHandler struct {
	taskService *services.TaskService
	log         logging.Logger
}

func NewTaskHandler(taskService *services.TaskService, log logging.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// dueDate distinguishes an absent due_date from an explicit null.
type dueDate struct {
	Set   bool
	Value *time.Time
}

func (d *dueDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	if string(data) == "null" {
		d.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errInvalidDueDate
	}
	if raw == "" {
		d.Value = nil
		return nil
	}

	t, err := parseDueDate(raw)
	if err != nil {
		return err
	}
	d.Value = &t
	return nil
}

func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidDueDate
}

// ListTasks returns tasks matching the query filters, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	input := services.ListTasksInput{
		UserID:     userID,
		Pagination: utils.GetPaginationParams(c),
	}

	if v := c.Query("status"); v != "" {
		status := models.TaskStatus(v)
		input.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := models.TaskPriority(v)
		input.Priority = &priority
	}
	if v := c.Query("category"); v != "" {
		category := models.TaskCategory(v)
		input.Category = &category
	}
	if v := c.Query("assignee_id"); v != "" {
		assigneeID, err := strconv.ParseUint(v, 10, 64)
		if err != nil || assigneeID == 0 {
			apierrors.BadRequest(c, "Invalid assignee_id")
			return
		}
		input.AssigneeID = &assigneeID
	}

	var err error
	if input.AssignedToMe, err = queryBool(c, "assigned_to_me"); err != nil {
		apierrors.BadRequest(c, "Invalid assigned_to_me")
		return
	}
	if input.CreatedByMe, err = queryBool(c, "created_by_me"); err != nil {
		apierrors.BadRequest(c, "Invalid created_by_me")
		return
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, input.Pagination, total))
}

func queryBool(c *gin.Context, key string) (bool, error) {
	v := c.Query(key)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// CreateTask creates a new task owned by the acting user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string   `json:"title" binding:"required,max=255"`
		Description string   `json:"description"`
		Status      string   `json:"status"`
		Priority    string   `json:"priority"`
		Category    string   `json:"category" binding:"required"`
		DueDate     dueDate  `json:"due_date"`
		AssigneeIDs []uint64 `json:"assignee_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, invalidBodyMessage)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		Category:    models.TaskCategory(req.Category),
		DueDate:     req.DueDate.Value,
		CreatorID:   userID,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task with its creator and assignees
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. An explicit null due_date clears it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title" binding:"omitempty,max=255"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		Category    *string `json:"category"`
		DueDate     dueDate `json:"due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, invalidBodyMessage)
		return
	}

	input := services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate.Value,
		ClearDueDate: req.DueDate.Set && req.DueDate.Value == nil,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Category != nil {
		category := models.TaskCategory(*req.Category)
		input.Category = &category
	}

	task, err := h.taskService.UpdateTask(taskID, userID, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task. Only its creator may do so.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	respondMessage(c, "Task deleted successfully")
}

// ReplaceAssignees replaces the set of users assigned to a task
func (h *TaskHandler) ReplaceAssignees(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	type AssignUsersRequest struct {
		AssigneeIDs []uint64 `json:"assignee_ids"`
	}

	var req AssignUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, invalidBodyMessage)
		return
	}

	task, err := h.taskService.ReplaceAssignees(services.AssignUsersInput{
		TaskID:  taskID,
		ActorID: userID,
		UserIDs: req.AssigneeIDs,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListComments returns a task's comments, newest first
func (h *TaskHandler) ListComments(c *gin.Context) {
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.taskService.ListComments(taskID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// AddComment posts a comment and notifies the other assignees
func (h *TaskHandler) AddComment(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	type AddCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, services.ErrCommentEmpty.Error())
		return
	}

	comment, err := h.taskService.AddComment(taskID, userID, req.Content)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// AddResult attaches a result link and notifies the other assignees
func (h *TaskHandler) AddResult(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	type AddResultRequest struct {
		ResultLink string `json:"resultLink" binding:"required"`
	}

	var req AddResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, services.ErrResultLinkRequired.Error())
		return
	}

	if err := h.taskService.AddResult(taskID, userID, req.ResultLink); err != nil {
		h.respondTaskError(c, err)
		return
	}

	respondMessage(c, "Result link added successfully")
}

// ListActivities returns a task's activity log, newest first
func (h *TaskHandler) ListActivities(c *gin.Context) {
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	activities, err := h.taskService.ListActivities(taskID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityDTOs(activities))
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrNotTaskCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidTaskAssignee),
		errors.Is(err, services.ErrCommentEmpty),
		errors.Is(err, services.ErrResultLinkRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		respondInternalError(c, h.log, err)
	}
}
