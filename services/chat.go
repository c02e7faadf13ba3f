package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"claritycoach/models"
)

// ChatSession holds one append-only conversation with the coach. Turns
// are appended optimistically and never rolled back: a failed send leaves
// the user's turn in place and appends a synthetic error turn after it.
type ChatSession struct {
	backend Backend

	mu       sync.Mutex
	history  []models.ChatTurn
	inFlight bool
}

func NewChatSession(backend Backend) *ChatSession {
	return &ChatSession{
		backend: backend,
		history: []models.ChatTurn{models.GreetingTurn()},
	}
}

// History returns a copy of the conversation so far.
func (c *ChatSession) History() []models.ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatTurn, len(c.history))
	copy(out, c.history)
	return out
}

// Loading reports whether a send is outstanding.
func (c *ChatSession) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Send appends the user's turn, resends the full history to the backend,
// and appends the coach's reply. Blank input and overlapping sends are
// rejected before anything is appended or sent.
func (c *ChatSession) Send(ctx context.Context, input string) (models.ChatTurn, error) {
	if strings.TrimSpace(input) == "" {
		return models.ChatTurn{}, &models.ValidationError{Field: "message", Reason: "please type a message first"}
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return models.ChatTurn{}, &models.StateError{Operation: "chat", Reason: "the coach is still replying"}
	}
	c.inFlight = true
	c.history = append(c.history, models.ChatTurn{Role: models.RoleUser, Content: input})
	// The backend holds no session state, so the entire history rides
	// along on every call.
	sent := make([]models.ChatTurn, len(c.history))
	copy(sent, c.history)
	c.mu.Unlock()

	reply, err := c.backend.SendChat(ctx, sent)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		log.Printf("chat send failed: %v", err)
		reply = models.ChatErrorTurn()
	}
	c.history = append(c.history, reply)
	return reply, nil
}

// Reset starts the conversation over from the greeting.
func (c *ChatSession) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return &models.StateError{Operation: "chat", Reason: "the coach is still replying"}
	}
	c.history = []models.ChatTurn{models.GreetingTurn()}
	return nil
}
