package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistencia-escolar/asistencia-api/internal/middleware"
	"github.com/asistencia-escolar/asistencia-api/internal/models"
	"github.com/asistencia-escolar/asistencia-api/internal/repository"
	"github.com/asistencia-escolar/asistencia-api/internal/service"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type sessionStoreFake struct {
	sessions map[string]*models.Session
}

func newSessionStoreFake() *sessionStoreFake {
	return &sessionStoreFake{sessions: map[string]*models.Session{}}
}

func (f *sessionStoreFake) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	return f.sessions[sessionID], nil
}

func (f *sessionStoreFake) Create(ctx context.Context, session *models.Session) error {
	f.sessions[session.SessionID] = session
	return nil
}

func (f *sessionStoreFake) Close(ctx context.Context, sessionID string) error {
	f.sessions[sessionID].Status = models.SessionStatusClosed
	return nil
}

func (f *sessionStoreFake) List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error) {
	var out []models.Session
	for _, session := range f.sessions {
		out = append(out, *session)
	}
	return out, nil
}

type courseAccessFake struct{}

func (courseAccessFake) AssignedCourseIDs(ctx context.Context, userID string) (map[string]bool, error) {
	return nil, nil
}

func testContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RolePreceptor})
	return c, rec
}

func newSessionHandler(store *sessionStoreFake) *SessionHandler {
	svc := service.NewSessionService(store, courseAccessFake{}, nil, nil, nil)
	return NewSessionHandler(svc)
}

func TestSessionHandlerOpenCreates(t *testing.T) {
	handler := newSessionHandler(newSessionStoreFake())

	c, rec := testContext(t, http.MethodPost, "/sessions", `{"course_id":"1A","date":"2026-03-10","context":"REGULAR"}`)
	handler.Open(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "SES|1A|2026-03-10|REGULAR", envelope.Data["session_id"])
	assert.Equal(t, "OPEN", envelope.Data["status"])
}

func TestSessionHandlerOpenExistingReturns200(t *testing.T) {
	store := newSessionStoreFake()
	handler := newSessionHandler(store)

	c, rec := testContext(t, http.MethodPost, "/sessions", `{"course_id":"1A","date":"2026-03-10"}`)
	handler.Open(c)
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = testContext(t, http.MethodPost, "/sessions", `{"course_id":"1A","date":"2026-03-10"}`)
	handler.Open(c)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionHandlerOpenRejectsBadBody(t *testing.T) {
	handler := newSessionHandler(newSessionStoreFake())

	c, rec := testContext(t, http.MethodPost, "/sessions", `{"course_id":`)
	handler.Open(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerCloseConflictOnSecondClose(t *testing.T) {
	store := newSessionStoreFake()
	handler := newSessionHandler(store)

	c, rec := testContext(t, http.MethodPost, "/sessions", `{"course_id":"1A","date":"2026-03-10"}`)
	handler.Open(c)
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = testContext(t, http.MethodPost, "/sessions/close", "")
	c.Params = gin.Params{{Key: "sessionId", Value: "SES|1A|2026-03-10|REGULAR"}}
	handler.Close(c)
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = testContext(t, http.MethodPost, "/sessions/close", "")
	c.Params = gin.Params{{Key: "sessionId", Value: "SES|1A|2026-03-10|REGULAR"}}
	handler.Close(c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
