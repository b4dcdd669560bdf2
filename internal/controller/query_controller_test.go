package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"robotics-tutor-be/internal/dto"
	"robotics-tutor-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubQueryService struct {
	processed      int
	lastSessionID  string
	historyCalled  string
	clearedCalled  string
	historyPayload *dto.SessionHistoryResponse
}

func (s *stubQueryService) ProcessQuery(ctx context.Context, req *dto.QueryRequest) *dto.QueryResponse {
	s.processed++
	s.lastSessionID = req.SessionID
	return &dto.QueryResponse{
		Answer:      "stub answer",
		Sources:     []string{},
		Status:      "success",
		QueryTimeMS: 1.5,
		Confidence:  "high",
	}
}

func (s *stubQueryService) ProcessSessionMessage(ctx context.Context, sessionID string, req *dto.QueryRequest) *dto.QueryResponse {
	scoped := *req
	scoped.SessionID = sessionID
	return s.ProcessQuery(ctx, &scoped)
}

func (s *stubQueryService) GetSessionHistory(sessionID string) *dto.SessionHistoryResponse {
	s.historyCalled = sessionID
	if s.historyPayload != nil {
		return s.historyPayload
	}
	return &dto.SessionHistoryResponse{Messages: nil, SessionID: sessionID, Count: 0}
}

func (s *stubQueryService) ClearSession(ctx context.Context, sessionID string) *dto.SessionClearedResponse {
	s.clearedCalled = sessionID
	return &dto.SessionClearedResponse{Status: "success", Message: "Session " + sessionID + " cleared"}
}

func newTestApp(stub *stubQueryService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewQueryController(stub).RegisterRoutes(app)
	return app
}

func TestAskSuccess(t *testing.T) {
	stub := &stubQueryService{}
	app := newTestApp(stub)

	body := `{"query": "what is a humanoid robot", "session_id": "s1"}`
	req := httptest.NewRequest("POST", "/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var res dto.QueryResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "stub answer", res.Answer)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, 1, stub.processed)
	assert.Equal(t, "s1", stub.lastSessionID)
}

func TestAskEmptyQueryRejectedBeforePipeline(t *testing.T) {
	stub := &stubQueryService{}
	app := newTestApp(stub)

	body := `{"query": "   "}`
	req := httptest.NewRequest("POST", "/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var res serverutils.BaseResponse[any]
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "Query cannot be empty", res.Message)
	assert.Equal(t, 0, stub.processed, "pipeline must not run for invalid input")
}

func TestAskOversizedQueryRejected(t *testing.T) {
	stub := &stubQueryService{}
	app := newTestApp(stub)

	payload, _ := json.Marshal(dto.QueryRequest{Query: strings.Repeat("a", 2001)})
	req := httptest.NewRequest("POST", "/ask", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var res serverutils.BaseResponse[any]
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "Query too long, maximum 2000 characters", res.Message)
	assert.Equal(t, 0, stub.processed)
}

func TestAskOversizedSessionIDRejected(t *testing.T) {
	stub := &stubQueryService{}
	app := newTestApp(stub)

	payload, _ := json.Marshal(dto.QueryRequest{
		Query:     "a valid question",
		SessionID: strings.Repeat("s", 129),
	})
	req := httptest.NewRequest("POST", "/ask", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var res serverutils.BaseResponse[any]
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Contains(t, res.Message, "validation failed")
	assert.Equal(t, 0, stub.processed)
}

func TestChatUsesMessageNoun(t *testing.T) {
	stub := &stubQueryService{}
	app := newTestApp(stub)

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"query": ""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var res serverutils.BaseResponse[any]
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "Message cannot be empty", res.Message)
}

func TestSessionMessageUsesPathSession(t *testing.T) {
	stub := &stubQueryService{}
	app := newTestApp(stub)

	body := `{"query": "a question for the session", "session_id": "body-session"}`
	req := httptest.NewRequest("POST", "/sessions/path-session/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "path-session", stub.lastSessionID, "path session id must win over the body")
}

func TestGetSessionHistory(t *testing.T) {
	stub := &stubQueryService{}
	app := newTestApp(stub)

	req := httptest.NewRequest("GET", "/sessions/s9/history", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var res dto.SessionHistoryResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "s9", res.SessionID)
	assert.Equal(t, "s9", stub.historyCalled)
}

func TestClearSession(t *testing.T) {
	stub := &stubQueryService{}
	app := newTestApp(stub)

	req := httptest.NewRequest("DELETE", "/sessions/s9", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var res dto.SessionClearedResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "s9", stub.clearedCalled)
}
