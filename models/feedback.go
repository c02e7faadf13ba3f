package models

// Artifacts a user can rate or expand.
const (
	TargetExplanation = "explanation"
	TargetResponse    = "response"
)

// ValidTarget reports whether t names a rateable/expandable artifact.
func ValidTarget(t string) bool {
	return t == TargetExplanation || t == TargetResponse
}

// FeedbackRating is a star rating (with optional comment) bound to one
// generated artifact. At most one rating per target is accepted per
// session.
type FeedbackRating struct {
	Target  string `json:"target"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment,omitempty"`
}

func (f *FeedbackRating) Validate() error {
	if !ValidTarget(f.Target) {
		return &ValidationError{Field: "target", Reason: "target must be explanation or response"}
	}
	if f.Stars < 1 || f.Stars > 5 {
		return &ValidationError{Field: "stars", Reason: "rating must be between 1 and 5 stars"}
	}
	return nil
}

// Contact form subjects offered by the UI.
const (
	SubjectGeneral  = "general"
	SubjectBug      = "bug"
	SubjectQuestion = "question"
)

// ValidSubject reports whether s is one of the offered contact subjects.
func ValidSubject(s string) bool {
	return s == SubjectGeneral || s == SubjectBug || s == SubjectQuestion
}
