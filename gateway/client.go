package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"claritycoach/config"
	"claritycoach/models"

	"github.com/microcosm-cc/bluemonday"
)

// Client wraps the remote AI backend's JSON endpoints. Every operation is
// a single POST round trip: no retries, no server-side session state. All
// HTML returned by the backend is sanitized before it leaves this package
// because the backend sits on the other side of a trust boundary.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sanitizer  *bluemonday.Policy
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Backend.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Backend.RequestTimeoutSeconds) * time.Second,
		},
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// post sends body as JSON to path and decodes a 2xx response into out
// (out may be nil for endpoints whose success body is irrelevant).
// Non-2xx responses are normalized into a *models.ServiceError carrying
// the backend's "error" or "message" field when present.
func (c *Client) post(ctx context.Context, operation, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.ServiceError{Operation: operation, Message: ""}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		// Best effort: an unparseable error body falls back to the
		// generic message.
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		msg := errBody.Error
		if msg == "" {
			msg = errBody.Message
		}
		return &models.ServiceError{Operation: operation, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.ServiceError{Operation: operation, Status: resp.StatusCode}
	}
	return nil
}

// ClassifyStyle infers a communication-style label from sample text.
func (c *Client) ClassifyStyle(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", &models.ValidationError{Field: "text", Reason: "please provide text for the style analysis"}
	}

	var result struct {
		Style string `json:"style"`
	}
	body := map[string]string{"text": text}
	if err := c.post(ctx, "classify-style", "/api/classify-style", body, &result); err != nil {
		return "", err
	}
	if result.Style == "" {
		return "", &models.ServiceError{Operation: "classify-style"}
	}
	return result.Style, nil
}

// Translate runs one draft or analyze cycle and returns the sanitized
// explanation and response.
func (c *Client) Translate(ctx context.Context, req models.TranslationRequest) (models.TranslationResult, error) {
	var result models.TranslationResult
	if err := c.post(ctx, "translate", "/api/translate", req, &result); err != nil {
		return models.TranslationResult{}, err
	}
	result.Explanation = c.sanitizer.Sanitize(result.Explanation)
	result.Response = c.sanitizer.Sanitize(result.Response)
	return result, nil
}

// ExpandVerbose fetches the deeper explanation for one generated
// artifact. The original request is resent so the backend has full
// context without holding session state.
func (c *Client) ExpandVerbose(ctx context.Context, target string, original models.TranslationRequest, generated string) (string, error) {
	body := struct {
		Target         string                    `json:"target"`
		OriginalInputs models.TranslationRequest `json:"originalInputs"`
		GeneratedText  string                    `json:"generatedText"`
	}{Target: target, OriginalInputs: original, GeneratedText: generated}

	var result struct {
		VerboseContent string `json:"verboseContent"`
	}
	if err := c.post(ctx, "verbose", "/api/verbose", body, &result); err != nil {
		return "", err
	}
	return c.sanitizer.Sanitize(result.VerboseContent), nil
}

// SendChat resends the full conversation and returns the coach's next
// turn.
func (c *Client) SendChat(ctx context.Context, history []models.ChatTurn) (models.ChatTurn, error) {
	body := struct {
		History []models.ChatTurn `json:"history"`
	}{History: history}

	var result struct {
		Reply string `json:"reply"`
	}
	if err := c.post(ctx, "chat", "/api/chat", body, &result); err != nil {
		return models.ChatTurn{}, err
	}
	return models.ChatTurn{Role: models.RoleModel, Content: c.sanitizer.Sanitize(result.Reply)}, nil
}

// SubmitRating records a star rating for one artifact. The rating payload
// keys vary by target, per the backend contract.
func (c *Client) SubmitRating(ctx context.Context, rating models.FeedbackRating, mode string, timestamp time.Time) error {
	body := map[string]interface{}{
		"mode":      mode,
		"timestamp": timestamp.UTC().Format(time.RFC3339),
	}
	switch rating.Target {
	case models.TargetExplanation:
		body["explanationRating"] = rating.Stars
		if rating.Comment != "" {
			body["explanationComment"] = rating.Comment
		}
	case models.TargetResponse:
		body["responseRating"] = rating.Stars
		if rating.Comment != "" {
			body["responseComment"] = rating.Comment
		}
	}
	return c.post(ctx, "feedback-rating", "/api/feedback/rating", body, nil)
}

// SaveEdit persists a user-corrected response and returns the document ID
// that later links the re-analysis to it.
func (c *Client) SaveEdit(ctx context.Context, original models.TranslationRequest, originalResponse, editedResponse string) (string, error) {
	body := struct {
		OriginalInputs   models.TranslationRequest `json:"originalInputs"`
		OriginalResponse string                    `json:"originalResponse"`
		EditedResponse   string                    `json:"editedResponse"`
	}{OriginalInputs: original, OriginalResponse: originalResponse, EditedResponse: editedResponse}

	var result struct {
		DocID string `json:"docId"`
	}
	if err := c.post(ctx, "feedback-edit", "/api/feedback/edit", body, &result); err != nil {
		return "", err
	}
	if result.DocID == "" {
		return "", &models.ServiceError{Operation: "feedback-edit"}
	}
	return result.DocID, nil
}

// ReportReanalysis attaches the fresh explanation of an edited response
// to its saved feedback document.
func (c *Client) ReportReanalysis(ctx context.Context, docID, reanalysisText string) error {
	body := map[string]string{"docId": docID, "reanalysisText": reanalysisText}
	return c.post(ctx, "feedback-reanalysis", "/api/feedback/reanalysis", body, nil)
}

// Subscribe signs an email address up for updates.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, "subscribe", "/api/subscribe", body, nil)
}

// Contact submits the general feedback form.
func (c *Client) Contact(ctx context.Context, subject, message, email string, timestamp time.Time) error {
	body := map[string]string{
		"subject":   subject,
		"message":   message,
		"timestamp": timestamp.UTC().Format(time.RFC3339),
	}
	if email != "" {
		body["email"] = email
	}
	return c.post(ctx, "contact", "/api/contact", body, nil)
}
