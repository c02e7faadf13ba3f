package models

// Mode selects the translation workflow variant.
const (
	ModeDraft   = "draft"
	ModeAnalyze = "analyze"
)

// Communication styles. SenderLetAIDecide defers the sender style to a
// classification call before translating.
const (
	StyleDirect       = "direct"
	StyleIndirect     = "indirect"
	SenderLetAIDecide = "let-ai-decide"
)

// Defaults shown by the UI before the user picks anything.
const (
	DefaultNeurotype  = "Unsure"
	DefaultGeneration = "unsure"
)

// TranslationRequest carries everything the backend needs to draft or
// analyze a message. Field names follow the backend's JSON contract.
type TranslationRequest struct {
	Mode               string `json:"mode"`
	Text               string `json:"text"`
	Context            string `json:"context"`
	Interpretation     string `json:"interpretation"`
	AnalyzeContext     string `json:"analyzeContext"`
	Sender             string `json:"sender"`
	Receiver           string `json:"receiver"`
	SenderNeurotype    string `json:"senderNeurotype"`
	ReceiverNeurotype  string `json:"receiverNeurotype"`
	SenderGeneration   string `json:"senderGeneration"`
	ReceiverGeneration string `json:"receiverGeneration"`
}

// Validate checks the per-mode required fields before any network call.
// Draft mode needs the raw text plus the intent behind it; analyze mode
// needs the received text plus the user's interpretation of it.
func (r *TranslationRequest) Validate() error {
	switch r.Mode {
	case ModeDraft:
		if r.Context == "" {
			return &ValidationError{Field: "context", Reason: "please describe what you mean to say"}
		}
		if r.Text == "" {
			return &ValidationError{Field: "text", Reason: "please provide your draft text"}
		}
	case ModeAnalyze:
		if r.Text == "" {
			return &ValidationError{Field: "text", Reason: "please paste the message you received"}
		}
		if r.Interpretation == "" {
			return &ValidationError{Field: "interpretation", Reason: "please describe how you heard the message"}
		}
	default:
		return &ValidationError{Field: "mode", Reason: "mode must be draft or analyze"}
	}

	switch r.Sender {
	case StyleDirect, StyleIndirect, SenderLetAIDecide:
	default:
		return &ValidationError{Field: "sender", Reason: "sender style must be direct, indirect or let-ai-decide"}
	}
	switch r.Receiver {
	case StyleDirect, StyleIndirect:
	default:
		return &ValidationError{Field: "receiver", Reason: "receiver style must be direct or indirect"}
	}
	return nil
}

// ClassificationSample returns the text the style classifier should look
// at: in draft mode the stated intent (falling back to the draft itself),
// in analyze mode the received message.
func (r *TranslationRequest) ClassificationSample() string {
	if r.Mode == ModeDraft {
		if r.Context != "" {
			return r.Context
		}
		return r.Text
	}
	return r.Text
}

// TranslationResult holds the two generated HTML fragments. It is never
// mutated; a new submission replaces it wholesale.
type TranslationResult struct {
	Explanation string `json:"explanation"`
	Response    string `json:"response"`
}

// EditedArtifact tracks an in-progress edit of the suggested response.
// DocID is assigned by the backend on first save and gates re-analysis.
type EditedArtifact struct {
	OriginalResponse string `json:"originalResponse"`
	EditedResponse   string `json:"editedResponse"`
	DocID            string `json:"docId,omitempty"`
}
