package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"messagebox/config"
	"messagebox/internal/domain/message"
	"messagebox/internal/domain/user"
	"messagebox/internal/handler"
	"messagebox/internal/repository"
	"messagebox/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &message.Message{}))

	cfg := &config.Config{
		AppPort:            "8080",
		AppMode:            TestMode,
		JWTSecret:          "test-secret",
		JWTExpiryMin:       60,
		ListExcludeBanned:  true,
		SearchIncludeEmail: true,
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	messageService := services.NewMessageService(messageRepo, cfg)

	srv := New(cfg, nil)
	srv.SetupRoutes(&Handlers{
		User:    handler.NewUserHandler(userService, authService),
		Message: handler.NewMessageHandler(messageService),
	}, authService, nil)

	return srv.Engine()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func registerAndLogin(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()

	w, _ := doJSON(t, engine, http.MethodPost, "/api/user/create/", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, engine, http.MethodPost, "/api/user/token/", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createMessage(t *testing.T, engine *gin.Engine, token string, body gin.H) string {
	t.Helper()

	w, env := doJSON(t, engine, http.MethodPost, "/api/message/messages/", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var detail struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	return detail.ID
}

func TestPing(t *testing.T) {
	engine := newTestServer(t)

	w, env := doJSON(t, engine, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestRegisterEndpoint(t *testing.T) {
	engine := newTestServer(t)

	w, env := doJSON(t, engine, http.MethodPost, "/api/user/create/", "", gin.H{
		"email":    "alice@EXAMPLE.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "alice", resp.Name)

	// Same account again, regardless of domain casing.
	w, env = doJSON(t, engine, http.MethodPost, "/api/user/create/", "", gin.H{
		"email":    "alice@example.COM",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	w, _ = doJSON(t, engine, http.MethodPost, "/api/user/create/", "", gin.H{
		"email":    "bob@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, engine, http.MethodPost, "/api/user/create/", "", gin.H{
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenEndpoint(t *testing.T) {
	engine := newTestServer(t)

	w, _ := doJSON(t, engine, http.MethodPost, "/api/user/create/", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, engine, http.MethodPost, "/api/user/token/", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	// Bad credentials answer 400, not 401.
	w, _ = doJSON(t, engine, http.MethodPost, "/api/user/token/", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, engine, http.MethodPost, "/api/user/token/", "", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileEndpoint(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "alice@example.com")

	// Anonymous profile access answers 401.
	w, _ := doJSON(t, engine, http.MethodGet, "/api/user/profile/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/user/profile/", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// POST is not part of the profile surface; the refusal carries the
	// JSON envelope like every other error.
	w, env := doJSON(t, engine, http.MethodPost, "/api/user/profile/", token, gin.H{})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "METHOD_NOT_ALLOWED", env.Code)

	w, env = doJSON(t, engine, http.MethodGet, "/api/user/profile/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "alice", profile.Name)
	assert.Equal(t, "alice@example.com", profile.Email)

	w, env = doJSON(t, engine, http.MethodPatch, "/api/user/profile/", token, gin.H{
		"name": "Alice A.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Alice A.", profile.Name)
}

func TestProfileDeleteInvalidatesToken(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "alice@example.com")

	w, _ := doJSON(t, engine, http.MethodDelete, "/api/user/profile/", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/user/profile/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMessagesRequireAuth(t *testing.T) {
	engine := newTestServer(t)

	// Anonymous message access answers 403, not 401.
	w, _ := doJSON(t, engine, http.MethodGet, "/api/message/messages/", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, engine, http.MethodPost, "/api/message/messages/", "", gin.H{
		"content": "body",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMessageCreateAndGet(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "alice@example.com")

	w, env := doJSON(t, engine, http.MethodPost, "/api/message/messages/", token, gin.H{
		"email":   "subscriber@example.com",
		"name":    "John Doe",
		"title":   "Hello",
		"content": "A message body",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var detail struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		IsRecent   bool   `json:"is_recent"`
		IsRead     bool   `json:"is_read"`
		IsAnswered bool   `json:"is_answered"`
		IsBanned   bool   `json:"is_banned"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.NotEmpty(t, detail.ID)
	assert.True(t, detail.IsRecent)
	assert.False(t, detail.IsRead)

	w, env = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/message/messages/%s/", detail.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "A message body", detail.Content)

	// Missing content fails validation.
	w, _ = doJSON(t, engine, http.MethodPost, "/api/message/messages/", token, gin.H{
		"title": "No body",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageListReturnsSummaries(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "alice@example.com")

	createMessage(t, engine, token, gin.H{
		"email":   "subscriber@example.com",
		"name":    "John Doe",
		"title":   "Hello",
		"content": "A message body",
	})

	w, env := doJSON(t, engine, http.MethodGet, "/api/message/messages/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "subscriber@example.com", summaries[0]["email"])
	assert.Equal(t, "John Doe", summaries[0]["name"])
	assert.Equal(t, "Hello", summaries[0]["title"])
	assert.NotContains(t, summaries[0], "content")
	assert.NotContains(t, summaries[0], "id")
}

func TestMessageListEmptyIsArray(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "alice@example.com")

	w, env := doJSON(t, engine, http.MethodGet, "/api/message/messages/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// No matches still serializes data as an empty array.
	assert.Equal(t, "[]", string(env.Data))
}

func TestUnknownRouteAnswersEnvelope(t *testing.T) {
	engine := newTestServer(t)

	w, env := doJSON(t, engine, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestMessageListFiltering(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "alice@example.com")

	createMessage(t, engine, token, gin.H{
		"title":   "Recent one",
		"content": "still waiting",
	})
	readID := createMessage(t, engine, token, gin.H{
		"title":   "Read one",
		"content": "already seen",
	})
	w, _ := doJSON(t, engine, http.MethodPatch, fmt.Sprintf("/api/message/messages/%s/", readID), token, gin.H{
		"is_recent": false,
		"is_read":   true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	titles := func(env envelope) []string {
		var summaries []struct {
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &summaries))
		out := make([]string, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, s.Title)
		}
		return out
	}

	w, env := doJSON(t, engine, http.MethodGet, "/api/message/messages/?filter=recent", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Recent one"}, titles(env))

	w, env = doJSON(t, engine, http.MethodGet, "/api/message/messages/?filter=recent,read", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []string{"Recent one", "Read one"}, titles(env))

	// Present but useless filter yields an empty page.
	w, env = doJSON(t, engine, http.MethodGet, "/api/message/messages/?filter=bogus", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, titles(env))

	w, env = doJSON(t, engine, http.MethodGet, "/api/message/messages/?search=WAITING", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Recent one"}, titles(env))

	w, _ = doJSON(t, engine, http.MethodGet, "/api/message/messages/?fd=2023/10/04", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageOwnerIsolation(t *testing.T) {
	engine := newTestServer(t)
	aliceToken := registerAndLogin(t, engine, "alice@example.com")
	bobToken := registerAndLogin(t, engine, "bob@example.com")

	id := createMessage(t, engine, aliceToken, gin.H{
		"title":   "Private",
		"content": "for alice only",
	})

	// A foreign message is indistinguishable from a missing one.
	w, _ := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/message/messages/%s/", id), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/message/messages/%s/", id), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := doJSON(t, engine, http.MethodGet, "/api/message/messages/", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summaries []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	assert.Empty(t, summaries)

	// Malformed ids answer 404 as well.
	w, _ = doJSON(t, engine, http.MethodGet, "/api/message/messages/not-a-uuid/", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageDelete(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "alice@example.com")

	id := createMessage(t, engine, token, gin.H{
		"title":   "Disposable",
		"content": "delete me",
	})

	w, _ := doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/message/messages/%s/", id), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/message/messages/%s/", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
