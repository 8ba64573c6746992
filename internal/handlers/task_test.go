package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/team-collab-api/internal/dto"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
	"github.com/yukikurage/team-collab-api/internal/models"
	"github.com/yukikurage/team-collab-api/internal/services"
	"github.com/yukikurage/team-collab-api/internal/testutil"
)

// TaskHandlerTestSuite runs the task endpoints against three users
type TaskHandlerTestSuite struct {
	suite.Suite
	env *testEnv
	u1  *models.User
	u2  *models.User
	u3  *models.User
}

func (s *TaskHandlerTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.u1 = testutil.CreateUser(s.T(), s.env.db, "u1")
	s.u2 = testutil.CreateUser(s.T(), s.env.db, "u2")
	s.u3 = testutil.CreateUser(s.T(), s.env.db, "u3")
}

func (s *TaskHandlerTestSuite) notifications(userID uint64, typ models.NotificationType) []models.Notification {
	var rows []models.Notification
	s.Require().NoError(s.env.db.Where("user_id = ? AND type = ?", userID, typ).Find(&rows).Error)
	return rows
}

func (s *TaskHandlerTestSuite) TestCreateTask() {
	w := s.env.do(http.MethodPost, "/api/tasks", s.u1.ID, gin.H{
		"title":        "Write docs",
		"description":  "All of them",
		"category":     "development",
		"due_date":     "2030-01-15",
		"assignee_ids": []uint64{s.u1.ID, s.u2.ID, s.u2.ID},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	task := decode[dto.TaskDTO](s.T(), w)
	s.Equal("Write docs", task.Title)
	s.Equal(models.TaskStatusPending, task.Status)
	s.Equal(models.TaskPriorityMedium, task.Priority)
	s.Equal(s.u1.ID, task.CreatedBy)
	s.Require().NotNil(task.Creator)
	s.Equal("u1", task.Creator.Username)
	s.Len(task.Assignees, 2)
	s.Require().NotNil(task.DueDate)
	s.True(task.DueDate.Equal(time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)))

	s.Len(s.notifications(s.u2.ID, models.NotificationTaskAssigned), 1)
	s.Empty(s.notifications(s.u1.ID, models.NotificationTaskAssigned))
}

func (s *TaskHandlerTestSuite) TestCreateTask_Invalid() {
	tests := []struct {
		name    string
		payload gin.H
	}{
		{"missing title", gin.H{"category": "design"}},
		{"blank title", gin.H{"title": "   ", "category": "design"}},
		{"missing category", gin.H{"title": "t"}},
		{"bad category", gin.H{"title": "t", "category": "Not A Slug"}},
		{"bad status", gin.H{"title": "t", "category": "design", "status": "archived"}},
		{"bad priority", gin.H{"title": "t", "category": "design", "priority": "urgent"}},
		{"bad due date", gin.H{"title": "t", "category": "design", "due_date": "next week"}},
		{"unknown assignee", gin.H{"title": "t", "category": "design", "assignee_ids": []uint64{9999}}},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			w := s.env.do(http.MethodPost, "/api/tasks", s.u1.ID, tc.payload)
			s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())
			s.Equal(apierrors.ErrCodeInvalidInput, errorCode(s.T(), w))
		})
	}

	var count int64
	s.Require().NoError(s.env.db.Model(&models.Task{}).Count(&count).Error)
	s.Zero(count)
}

func (s *TaskHandlerTestSuite) TestCreateTask_CustomCategory() {
	w := s.env.do(http.MethodPost, "/api/tasks", s.u1.ID, gin.H{"title": "t", "category": "research-ops"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal(models.TaskCategory("research-ops"), decode[dto.TaskDTO](s.T(), w).Category)
}

func (s *TaskHandlerTestSuite) TestGetTask() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID)

	w := s.env.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), s.u3.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	got := decode[dto.TaskDTO](s.T(), w)
	s.Equal(task.ID, got.ID)
	s.Require().Len(got.Assignees, 1)
	s.Equal("u2", got.Assignees[0].Username)

	w = s.env.do(http.MethodGet, "/api/tasks/9999", s.u1.ID, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.env.do(http.MethodGet, "/api/tasks/abc", s.u1.ID, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TaskHandlerTestSuite) TestListTasks_Filters() {
	mine := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID)
	testutil.CreateTask(s.T(), s.env.db, s.u2.ID, s.u3.ID)
	third := testutil.CreateTask(s.T(), s.env.db, s.u3.ID, s.u2.ID)

	w := s.env.do(http.MethodGet, "/api/tasks", s.u1.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	all := decode[dto.TaskListResponse](s.T(), w)
	s.Equal(int64(3), all.Pagination.Total)
	s.Require().Len(all.Tasks, 3)
	s.Equal(third.ID, all.Tasks[0].ID)

	w = s.env.do(http.MethodGet, "/api/tasks?created_by_me=true", s.u1.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	created := decode[dto.TaskListResponse](s.T(), w)
	s.Require().Len(created.Tasks, 1)
	s.Equal(mine.ID, created.Tasks[0].ID)

	w = s.env.do(http.MethodGet, "/api/tasks?assigned_to_me=1", s.u2.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[dto.TaskListResponse](s.T(), w).Tasks, 2)

	w = s.env.do(http.MethodGet, fmt.Sprintf("/api/tasks?assignee_id=%d", s.u3.ID), s.u1.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[dto.TaskListResponse](s.T(), w).Tasks, 1)

	w = s.env.do(http.MethodGet, "/api/tasks?page=2&limit=2", s.u1.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	page := decode[dto.TaskListResponse](s.T(), w)
	s.Equal(2, page.Pagination.Page)
	s.Equal(2, page.Pagination.Limit)
	s.Equal(int64(3), page.Pagination.Total)
	s.Len(page.Tasks, 1)

	for _, query := range []string{"status=archived", "priority=urgent", "assignee_id=x", "assigned_to_me=maybe"} {
		w = s.env.do(http.MethodGet, "/api/tasks?"+query, s.u1.ID, nil)
		s.Equal(http.StatusBadRequest, w.Code, query)
	}
}

func (s *TaskHandlerTestSuite) TestUpdateTask_StatusAndCompletion() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID, s.u3.ID)

	w := s.env.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), s.u2.ID, gin.H{"status": "completed"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(models.TaskStatusCompleted, decode[dto.TaskDTO](s.T(), w).Status)

	s.Len(s.notifications(s.u1.ID, models.NotificationTaskCompleted), 1)
	s.Len(s.notifications(s.u3.ID, models.NotificationTaskCompleted), 1)
	s.Empty(s.notifications(s.u2.ID, models.NotificationTaskCompleted))

	var activity models.TaskActivity
	s.Require().NoError(s.env.db.Where("task_id = ?", task.ID).First(&activity).Error)
	s.Equal(models.ActivityStatusChange, activity.Type)
	s.Equal("Status changed from pending to completed", activity.Content)
}

func (s *TaskHandlerTestSuite) TestUpdateTask_DueDate() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID)
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := s.env.do(http.MethodPatch, path, s.u1.ID, gin.H{"due_date": "2031-06-01T12:00:00Z"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.NotNil(decode[dto.TaskDTO](s.T(), w).DueDate)

	w = s.env.do(http.MethodPatch, path, s.u1.ID, gin.H{"title": "Renamed"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotNil(decode[dto.TaskDTO](s.T(), w).DueDate, "absent due_date leaves it unchanged")

	w = s.env.do(http.MethodPatch, path, s.u1.ID, gin.H{"due_date": nil})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Nil(decode[dto.TaskDTO](s.T(), w).DueDate)

	var edits int64
	s.Require().NoError(s.env.db.Model(&models.TaskActivity{}).
		Where("task_id = ? AND type = ?", task.ID, models.ActivityEdit).Count(&edits).Error)
	s.Equal(int64(3), edits)
}

func (s *TaskHandlerTestSuite) TestUpdateTask_Invalid() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID)
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	s.Equal(http.StatusBadRequest, s.env.do(http.MethodPatch, path, s.u1.ID, gin.H{"title": " "}).Code)
	s.Equal(http.StatusBadRequest, s.env.do(http.MethodPatch, path, s.u1.ID, gin.H{"status": "done-ish"}).Code)
	s.Equal(http.StatusNotFound, s.env.do(http.MethodPatch, "/api/tasks/9999", s.u1.ID, gin.H{"title": "x"}).Code)
}

func (s *TaskHandlerTestSuite) TestDeleteTask_CreatorOnly() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID)
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := s.env.do(http.MethodDelete, path, s.u2.ID, nil)
	s.Require().Equal(http.StatusForbidden, w.Code)
	s.Equal(apierrors.ErrCodeForbidden, errorCode(s.T(), w))

	w = s.env.do(http.MethodDelete, path, s.u1.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	s.Equal(http.StatusNotFound, s.env.do(http.MethodGet, path, s.u1.ID, nil).Code)
}

func (s *TaskHandlerTestSuite) TestReplaceAssignees() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID)
	path := fmt.Sprintf("/api/tasks/%d/assignees", task.ID)

	w := s.env.do(http.MethodPut, path, s.u2.ID, gin.H{"assignee_ids": []uint64{s.u3.ID}})
	s.Require().Equal(http.StatusForbidden, w.Code)

	w = s.env.do(http.MethodPut, path, s.u1.ID, gin.H{"assignee_ids": []uint64{s.u3.ID}})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	got := decode[dto.TaskDTO](s.T(), w)
	s.Require().Len(got.Assignees, 1)
	s.Equal(s.u3.ID, got.Assignees[0].ID)

	s.Len(s.notifications(s.u3.ID, models.NotificationTaskAssigned), 1)

	w = s.env.do(http.MethodPut, path, s.u1.ID, gin.H{"assignee_ids": []uint64{4242}})
	s.Equal(http.StatusBadRequest, w.Code)
}

// u1 creates a task for u2 and u3; u2 comments.
func (s *TaskHandlerTestSuite) TestAddComment_FansOutToOtherAssignees() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID, s.u3.ID)
	path := fmt.Sprintf("/api/tasks/%d/comments", task.ID)

	w := s.env.do(http.MethodPost, path, s.u2.ID, gin.H{"content": "On it"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	comment := decode[dto.CommentDTO](s.T(), w)
	s.Equal("On it", comment.Content)
	s.Equal("u2", comment.Username)
	s.Equal(s.u2.ID, comment.UserID)

	u3 := s.notifications(s.u3.ID, models.NotificationTaskComment)
	s.Require().Len(u3, 1)
	s.Equal("New Comment", u3[0].Title)
	s.Equal("New comment on your task", u3[0].Message)
	s.Require().NotNil(u3[0].TriggeredBy)
	s.Equal(s.u2.ID, *u3[0].TriggeredBy)
	s.False(u3[0].Read)

	s.Empty(s.notifications(s.u2.ID, models.NotificationTaskComment))
	s.Empty(s.notifications(s.u1.ID, models.NotificationTaskComment))
}

func (s *TaskHandlerTestSuite) TestComments_ListAndErrors() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID)
	path := fmt.Sprintf("/api/tasks/%d/comments", task.ID)

	s.Require().Equal(http.StatusCreated, s.env.do(http.MethodPost, path, s.u1.ID, gin.H{"content": "first"}).Code)
	s.Require().Equal(http.StatusCreated, s.env.do(http.MethodPost, path, s.u2.ID, gin.H{"content": "second"}).Code)

	w := s.env.do(http.MethodGet, path, s.u3.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	comments := decode[[]dto.CommentDTO](s.T(), w)
	s.Require().Len(comments, 2)
	s.Equal("second", comments[0].Content)
	s.Equal("first", comments[1].Content)

	s.Equal(http.StatusBadRequest, s.env.do(http.MethodPost, path, s.u1.ID, gin.H{"content": ""}).Code)
	s.Equal(http.StatusBadRequest, s.env.do(http.MethodPost, path, s.u1.ID, gin.H{"content": "  "}).Code)
	s.Equal(http.StatusNotFound, s.env.do(http.MethodPost, "/api/tasks/9999/comments", s.u1.ID, gin.H{"content": "x"}).Code)
	s.Equal(http.StatusNotFound, s.env.do(http.MethodGet, "/api/tasks/9999/comments", s.u1.ID, nil).Code)
}

func (s *TaskHandlerTestSuite) TestAddResult() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID, s.u3.ID)
	path := fmt.Sprintf("/api/tasks/%d/result", task.ID)

	w := s.env.do(http.MethodPost, path, s.u2.ID, gin.H{"resultLink": "https://example.com/pr/1"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Result link added successfully", decode[map[string]string](s.T(), w)["message"])

	var stored models.Task
	s.Require().NoError(s.env.db.First(&stored, task.ID).Error)
	s.Require().NotNil(stored.ResultLink)
	s.Equal("https://example.com/pr/1", *stored.ResultLink)

	s.Len(s.notifications(s.u3.ID, models.NotificationTaskResult), 1)
	s.Empty(s.notifications(s.u2.ID, models.NotificationTaskResult))

	w = s.env.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d/activities", task.ID), s.u1.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	activities := decode[[]dto.ActivityDTO](s.T(), w)
	s.Require().Len(activities, 1)
	s.Equal(models.ActivityResult, activities[0].Type)
	s.Equal("Added result link", activities[0].Content)
	s.Equal("u2", activities[0].Username)

	s.Equal(http.StatusBadRequest, s.env.do(http.MethodPost, path, s.u2.ID, gin.H{}).Code)
	s.Equal(http.StatusNotFound, s.env.do(http.MethodPost, "/api/tasks/9999/result", s.u2.ID, gin.H{"resultLink": "x"}).Code)
	s.Equal(http.StatusNotFound, s.env.do(http.MethodGet, "/api/tasks/9999/activities", s.u2.ID, nil).Code)
}

func (s *TaskHandlerTestSuite) TestCommentAndResult_BodyErrors() {
	task := testutil.CreateTask(s.T(), s.env.db, s.u1.ID, s.u2.ID)

	tests := []struct {
		name        string
		path        string
		body        string
		wantMessage string
		wantField   string
	}{
		{"malformed comment", "comments", `{"content":`, "Invalid request body", ""},
		{"comment of wrong type", "comments", `{"content":42}`, "Invalid request body", ""},
		{"missing content", "comments", `{}`, services.ErrCommentEmpty.Error(), "Content"},
		{"malformed result", "result", `not json`, "Invalid request body", ""},
		{"missing result link", "result", `{"resultLink":""}`, services.ErrResultLinkRequired.Error(), "ResultLink"},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			path := fmt.Sprintf("/api/tasks/%d/%s", task.ID, tc.path)
			w := s.env.doRaw(http.MethodPost, path, s.u2.ID, []byte(tc.body))
			s.Require().Equal(http.StatusBadRequest, w.Code)

			body := decode[apierrors.APIError](s.T(), w)
			s.Equal(apierrors.ErrCodeInvalidInput, body.Code)
			s.Equal(tc.wantMessage, body.Message)
			if tc.wantField == "" {
				s.Nil(body.Details)
				return
			}
			s.Equal([]any{map[string]any{"field": tc.wantField, "rule": "required"}}, body.Details)
		})
	}

	var comments int64
	s.Require().NoError(s.env.db.Model(&models.TaskComment{}).Count(&comments).Error)
	s.Zero(comments)
}

func (s *TaskHandlerTestSuite) TestRequiresAuthentication() {
	w := s.env.do(http.MethodGet, "/api/tasks", 0, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
