package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-collab-api/internal/auth"
	"github.com/yukikurage/team-collab-api/internal/constants"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/testutil"
)

const testOrigin = "http://localhost:5173"

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	return New(Options{
		DB:          testutil.NewDB(t),
		Tokens:      auth.NewTokenManager("router-test-secret", time.Hour),
		Logger:      logging.Discard(),
		CORSOrigins: []string{testOrigin},
	})
}

// call sends a JSON request and keeps whatever token cookie comes back.
func (c *client) call(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.TokenCookieName {
			c.cookie = cookie
		}
	}
	return w
}

func (c *client) register(username string) uint64 {
	c.t.Helper()

	w := c.call(http.MethodPost, "/api/auth/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID uint64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestRegisterLoginMe(t *testing.T) {
	h := newHandler(t)
	registrar := &client{t: t, handler: h}

	w := registrar.call(http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "a@x.io",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	alice := &client{t: t, handler: h}
	w = alice.call(http.MethodPost, "/api/auth/login", gin.H{"email": "a@x.io", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	require.NotNil(t, alice.cookie)

	w = alice.call(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeMap(t, w)["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@x.io", user["email"])
	assert.NotContains(t, user, "password")
}

func TestAuthenticationStatuses(t *testing.T) {
	h := newHandler(t)

	anonymous := &client{t: t, handler: h}
	w := anonymous.call(http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	forged := &client{t: t, handler: h, cookie: &http.Cookie{Name: constants.TokenCookieName, Value: "forged.token.value"}}
	w = forged.call(http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	foreign := auth.NewTokenManager("some-other-secret", time.Hour)
	token, err := foreign.Issue(1)
	require.NoError(t, err)
	signedElsewhere := &client{t: t, handler: h, cookie: &http.Cookie{Name: constants.TokenCookieName, Value: token}}
	w = signedElsewhere.call(http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommentFanOut(t *testing.T) {
	h := newHandler(t)
	u1 := &client{t: t, handler: h}
	u2 := &client{t: t, handler: h}
	u3 := &client{t: t, handler: h}
	u1.register("user1")
	id2 := u2.register("user2")
	id3 := u3.register("user3")

	w := u1.call(http.MethodPost, "/api/tasks", gin.H{
		"title":        "Ship it",
		"category":     "development",
		"assignee_ids": []uint64{id2, id3},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	taskID := uint64(decodeMap(t, w)["id"].(float64))

	w = u2.call(http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", taskID), gin.H{"content": "looks good"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	countComments := func(c *client) int {
		w := c.call(http.MethodGet, "/api/notifications", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		n := 0
		for _, item := range list {
			if item["type"] == "task_comment" {
				n++
				assert.Equal(t, "user2", item["triggered_by_username"])
			}
		}
		return n
	}

	assert.Equal(t, 1, countComments(u3))
	assert.Equal(t, 0, countComments(u2))
	assert.Equal(t, 0, countComments(u1))

	w = u3.call(http.MethodGet, "/api/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeMap(t, w)["count"], "task_assigned plus task_comment")
}

func TestHealthAndRequestID(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeMap(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(constants.RequestIDHeader))
}

func TestCORS(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
