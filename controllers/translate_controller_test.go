package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"claritycoach/config"
	"claritycoach/middlewares"
	"claritycoach/models"
	"claritycoach/routes"
	"claritycoach/services"

	"github.com/gin-gonic/gin"
)

// stubBackend answers every gateway call with canned data.
type stubBackend struct {
	translateCalls int
	chatCalls      int
}

func (s *stubBackend) ClassifyStyle(ctx context.Context, text string) (string, error) {
	return models.StyleDirect, nil
}

func (s *stubBackend) Translate(ctx context.Context, req models.TranslationRequest) (models.TranslationResult, error) {
	s.translateCalls++
	return models.TranslationResult{Explanation: "<p>e</p>", Response: "<p>r</p>"}, nil
}

func (s *stubBackend) ExpandVerbose(ctx context.Context, target string, original models.TranslationRequest, generated string) (string, error) {
	return "<p>v</p>", nil
}

func (s *stubBackend) SendChat(ctx context.Context, history []models.ChatTurn) (models.ChatTurn, error) {
	s.chatCalls++
	return models.ChatTurn{Role: models.RoleModel, Content: "<p>reply</p>"}, nil
}

func (s *stubBackend) SubmitRating(ctx context.Context, rating models.FeedbackRating, mode string, timestamp time.Time) error {
	return nil
}

func (s *stubBackend) SaveEdit(ctx context.Context, original models.TranslationRequest, originalResponse, editedResponse string) (string, error) {
	return "doc-1", nil
}

func (s *stubBackend) ReportReanalysis(ctx context.Context, docID, reanalysisText string) error {
	return nil
}

func (s *stubBackend) Subscribe(ctx context.Context, email string) error { return nil }

func (s *stubBackend) Contact(ctx context.Context, subject, message, email string, timestamp time.Time) error {
	return nil
}

func setupTestRouter(t *testing.T) (*gin.Engine, *stubBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &stubBackend{}
	cfg := &config.Config{}
	cfg.Ticker.IntervalMs = 10
	cfg.Session.TTLMinutes = 1
	services.InitWithBackend(cfg, backend)
	t.Cleanup(func() { services.Store().Shutdown() })

	router := gin.New()
	app := router.Group("/")
	app.Use(middlewares.Session())
	routes.SetupTranslateRoutes(app)
	routes.SetupChatRoutes(app)
	routes.SetupFormRoutes(app)
	return router, backend
}

func postJSON(t *testing.T, router *gin.Engine, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middlewares.SessionHeader, sessionID)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestSubmitReturnsResultAndSessionID(t *testing.T) {
	router, backend := setupTestRouter(t)

	body := map[string]string{
		"mode":    models.ModeDraft,
		"text":    "Can you cover my shift?",
		"context": "asking a favor",
		"sender":  models.StyleDirect,
	}
	recorder := postJSON(t, router, "/translate/submit", "", body)

	if recorder.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if recorder.Header().Get(middlewares.SessionHeader) == "" {
		t.Error("Expected a session ID to be minted and echoed")
	}
	if backend.translateCalls != 1 {
		t.Errorf("Expected one translate call, got %d", backend.translateCalls)
	}

	var result models.TranslationResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if result.Explanation == "" || result.Response == "" {
		t.Error("Expected both HTML fragments in the response")
	}
}

func TestValidationFailureIs400WithNoCall(t *testing.T) {
	router, backend := setupTestRouter(t)

	body := map[string]string{
		"mode": models.ModeDraft,
		"text": "draft without intent",
	}
	recorder := postJSON(t, router, "/translate/submit", "", body)

	if recorder.Code != 400 {
		t.Errorf("Expected 400, got %d", recorder.Code)
	}
	if backend.translateCalls != 0 {
		t.Errorf("Expected no translate call, got %d", backend.translateCalls)
	}
}

func TestOutOfSequenceOperationIs409(t *testing.T) {
	router, _ := setupTestRouter(t)

	recorder := postJSON(t, router, "/translate/verbose", "", map[string]string{"target": models.TargetExplanation})
	if recorder.Code != 409 {
		t.Errorf("Expected 409 before any translation, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestWorkflowStateIsScopedToSession(t *testing.T) {
	router, _ := setupTestRouter(t)

	body := map[string]string{
		"mode":    models.ModeDraft,
		"text":    "hello",
		"context": "greeting",
		"sender":  models.StyleDirect,
	}
	first := postJSON(t, router, "/translate/submit", "", body)
	if first.Code != 200 {
		t.Fatalf("Submit failed: %d", first.Code)
	}
	sessionID := first.Header().Get(middlewares.SessionHeader)

	// The session that translated can begin an edit.
	edit := postJSON(t, router, "/translate/edit/begin", sessionID, struct{}{})
	if edit.Code != 200 {
		t.Errorf("Expected the owning session to edit, got %d", edit.Code)
	}

	// A stranger session has no result to edit.
	stranger := postJSON(t, router, "/translate/edit/begin", "", struct{}{})
	if stranger.Code != 409 {
		t.Errorf("Expected 409 for a fresh session, got %d", stranger.Code)
	}
}

func TestZeroStarRatingGetsValidationMessage(t *testing.T) {
	router, _ := setupTestRouter(t)

	body := map[string]interface{}{"target": models.TargetExplanation, "stars": 0}
	recorder := postJSON(t, router, "/translate/rating", "", body)

	if recorder.Code != 400 {
		t.Fatalf("Expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !bytes.Contains(recorder.Body.Bytes(), []byte("rating must be between 1 and 5 stars")) {
		t.Errorf("Expected the stars validation message, got %s", recorder.Body.String())
	}
}

func TestChatRoundTrip(t *testing.T) {
	router, backend := setupTestRouter(t)

	recorder := postJSON(t, router, "/chat/send", "", map[string]string{"message": "help me say no"})
	if recorder.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if backend.chatCalls != 1 {
		t.Errorf("Expected one chat call, got %d", backend.chatCalls)
	}

	var payload struct {
		Reply   models.ChatTurn   `json:"reply"`
		History []models.ChatTurn `json:"history"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode reply: %v", err)
	}
	if len(payload.History) != 3 {
		t.Errorf("Expected greeting + user + reply, got %d turns", len(payload.History))
	}

	// Whitespace input makes no call and changes nothing.
	blank := postJSON(t, router, "/chat/send", "", map[string]string{"message": "   "})
	if blank.Code != 400 {
		t.Errorf("Expected 400 for blank input, got %d", blank.Code)
	}
	if backend.chatCalls != 1 {
		t.Errorf("Expected chat call count unchanged, got %d", backend.chatCalls)
	}
}
