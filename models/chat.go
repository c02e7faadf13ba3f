package models

// Chat roles as the backend expects them. The assistant side is "model",
// matching the generation API's vocabulary.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatTurn is one entry in a conversation. History is append-only: turns
// are never reordered or mutated once added.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GreetingTurn is the synthetic assistant turn every conversation starts
// with.
func GreetingTurn() ChatTurn {
	return ChatTurn{
		Role: RoleModel,
		Content: "<p>Hi there! I'm the <strong>Clarity Coach</strong>. How can I help you navigate a communication challenge today?</p>" +
			"<p>You can ask for advice, role-play a conversation, or brainstorm solutions.</p>",
	}
}

// ChatErrorTurn is the synthetic assistant turn appended when the coach
// could not be reached. The user's attempted turn stays in the history.
func ChatErrorTurn() ChatTurn {
	return ChatTurn{
		Role:    RoleModel,
		Content: "<p><strong>Error:</strong> Sorry, the coach is unavailable. Please check your connection and try again.</p>",
	}
}
