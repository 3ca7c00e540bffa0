package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"food-assistant/internal/chat/router"
	"food-assistant/internal/common/database"
	"food-assistant/internal/common/logger"
	"food-assistant/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type stubChatter struct {
	reply    models.Reply
	requests []router.Request
}

func (s *stubChatter) Handle(_ context.Context, req router.Request) models.Reply {
	s.requests = append(s.requests, req)
	return s.reply
}

type stubPinger struct {
	name string
	err  error
}

func (p stubPinger) Name() string               { return p.name }
func (p stubPinger) Ping(context.Context) error { return p.err }

func createTestServer(t *testing.T, checks ...database.Pinger) (http.Handler, *stubChatter) {
	chat := &stubChatter{reply: models.Reply{Reply: "Hello!", Source: models.SourceGreeting}}
	srv, err := NewServer(chat, checks, logger.NewTestLogger(t))
	require.NoError(t, err)
	return srv.Handler(), chat
}

func postChat(h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

// ==========================
// Chat Endpoint Tests
// ==========================

func TestChat_Success(t *testing.T) {
	h, chat := createTestServer(t)

	rec := postChat(h, `{"message":"hi","userId":"u1","coordinates":{"lat":31.5,"lng":74.3,"name":"Gulberg"}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	var reply models.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, models.Reply{Reply: "Hello!", Source: models.SourceGreeting}, reply)
	assert.NotContains(t, rec.Body.String(), "needsLocation")

	require.Len(t, chat.requests, 1)
	got := chat.requests[0]
	assert.Equal(t, "hi", got.Message)
	assert.Equal(t, "u1", got.UserID)
	require.NotNil(t, got.Coordinates)
	assert.Equal(t, 31.5, got.Coordinates.Lat)
	assert.Equal(t, 74.3, got.Coordinates.Lng)
	assert.Equal(t, "Gulberg", got.Coordinates.Name)
}

func TestChat_NullCoordinates(t *testing.T) {
	h, chat := createTestServer(t)

	rec := postChat(h, `{"message":"hi","userId":"u1","coordinates":null}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, chat.requests, 1)
	assert.Nil(t, chat.requests[0].Coordinates)
}

func TestChat_EchoesRequestID(t *testing.T) {
	h, _ := createTestServer(t)
	id := uuid.NewString()

	rec := postChat(h, `{"message":"menu"}`, map[string]string{RequestIDHeader: id})
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	rec = postChat(h, `{"message":"menu"}`, map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestChat_InvalidBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{"userId":"u1"}`},
		{"empty message", `{"message":""}`},
		{"blank message", `{"message":"   "}`},
		{"message not a string", `{"message":42}`},
		{"latitude out of range", `{"message":"here","coordinates":{"lat":91,"lng":74}}`},
		{"longitude out of range", `{"message":"here","coordinates":{"lat":31,"lng":-181}}`},
		{"coordinates missing lng", `{"message":"here","coordinates":{"lat":31}}`},
		{"coordinates not an object", `{"message":"here","coordinates":"dha"}`},
		{"malformed json", `{"message":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, chat := createTestServer(t)

			rec := postChat(h, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "INVALID_REQUEST", body.Error.Code)
			assert.NotEmpty(t, body.Error.Details)
			assert.Empty(t, chat.requests)
		})
	}
}

func TestChat_MethodNotAllowed(t *testing.T) {
	h, _ := createTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ==========================
// Probe Tests
// ==========================

func TestHealth(t *testing.T) {
	h, _ := createTestServer(t, stubPinger{name: "postgres", err: errors.New("down")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestReady(t *testing.T) {
	t.Run("all dependencies reachable", func(t *testing.T) {
		h, _ := createTestServer(t, stubPinger{name: "postgres"}, stubPinger{name: "redis"})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ready"`)
	})

	t.Run("dependency down", func(t *testing.T) {
		h, _ := createTestServer(t, stubPinger{name: "postgres"}, stubPinger{name: "redis", err: errors.New("connection refused")})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "DEPENDENCY_UNAVAILABLE", body.Error.Code)
		assert.Equal(t, "redis is not reachable", body.Error.Message)
		assert.Equal(t, "connection refused", body.Error.Details)
	})

	t.Run("no dependencies configured", func(t *testing.T) {
		h, _ := createTestServer(t)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := createTestServer(t)
	postChat(h, `{"message":"hi"}`, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chat_http_requests_total")
}
