package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-collab-api/internal/auth"
	"github.com/yukikurage/team-collab-api/internal/constants"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/middleware"
	"github.com/yukikurage/team-collab-api/internal/repository"
	"github.com/yukikurage/team-collab-api/internal/services"
	"github.com/yukikurage/team-collab-api/internal/testutil"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	tokens *auth.TokenManager
	router *gin.Engine
}

// newTestEnv wires every handler against an in-memory database behind the
// real auth and ID middleware.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	log := logging.Discard()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notifier := services.NewNotifier(notificationRepo)
	authHandler := NewAuthHandler(services.NewAuthService(userRepo), tokens, log, false)
	userHandler := NewUserHandler(services.NewUserService(userRepo), log)
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, commentRepo, activityRepo, userRepo, notifier), log)
	notificationHandler := NewNotificationHandler(services.NewNotificationService(notificationRepo), log)

	r := gin.New()
	r.GET("/health", Health)

	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)

	protected := r.Group("/api", middleware.RequireAuth(tokens))
	withID := middleware.RequireIDParam("id")

	protected.GET("/users", userHandler.ListUsers)
	protected.PUT("/users/me/profile", userHandler.UpdateMyProfile)
	protected.GET("/users/:id/profile", withID, userHandler.GetProfile)

	protected.GET("/tasks", taskHandler.ListTasks)
	protected.POST("/tasks", taskHandler.CreateTask)
	protected.GET("/tasks/:id", withID, taskHandler.GetTask)
	protected.PATCH("/tasks/:id", withID, taskHandler.UpdateTask)
	protected.DELETE("/tasks/:id", withID, taskHandler.DeleteTask)
	protected.PUT("/tasks/:id/assignees", withID, taskHandler.ReplaceAssignees)
	protected.GET("/tasks/:id/comments", withID, taskHandler.ListComments)
	protected.POST("/tasks/:id/comments", withID, taskHandler.AddComment)
	protected.POST("/tasks/:id/result", withID, taskHandler.AddResult)
	protected.GET("/tasks/:id/activities", withID, taskHandler.ListActivities)

	protected.GET("/notifications", notificationHandler.ListNotifications)
	protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.PUT("/notifications/:id/read", withID, notificationHandler.MarkRead)
	protected.DELETE("/notifications/:id", withID, notificationHandler.DeleteNotification)

	return &testEnv{t: t, db: db, tokens: tokens, router: r}
}

// do sends a request as userID. A zero userID sends no token cookie.
func (e *testEnv) do(method, path string, userID uint64, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(e.t, err)
	}
	return e.doRaw(method, path, userID, raw)
}

// doRaw sends body bytes exactly as given.
func (e *testEnv) doRaw(method, path string, userID uint64, body []byte) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		token, err := e.tokens.Issue(userID)
		require.NoError(e.t, err)
		req.AddCookie(&http.Cookie{Name: constants.TokenCookieName, Value: token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierrors.APIError](t, w).Code
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
