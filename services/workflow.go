package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"claritycoach/models"
)

// Phase is the workflow's current position in the translate/analyze
// cycle. Exactly one gateway call can be outstanding per phase; a phase
// other than Idle, Ready or Editing means a call is in flight.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseClassifying Phase = "classifying"
	PhaseTranslating Phase = "translating"
	PhaseReady       Phase = "ready"
	PhaseExpanding   Phase = "expanding"
	PhaseEditing     Phase = "editing"
	PhaseSaving      Phase = "saving"
	PhaseReanalyzing Phase = "reanalyzing"
)

// Workflow is the translate/analyze state machine for one session. It
// replaces the original UI's scattered loading/editing/success booleans
// with a single tagged phase so that out-of-order operations (re-analyze
// before save, expand before translate) are rejected instead of merely
// hidden behind disabled buttons.
type Workflow struct {
	backend Backend
	ticker  *TipTicker

	mu             sync.Mutex
	mode           string
	phase          Phase
	lastError      string
	originalInputs *models.TranslationRequest
	result         *models.TranslationResult
	expansions     map[string]string
	edit           *models.EditedArtifact
	reanalysis     string
	ratingDone     map[string]bool
}

func NewWorkflow(backend Backend, ticker *TipTicker) *Workflow {
	return &Workflow{
		backend:    backend,
		ticker:     ticker,
		mode:       models.ModeDraft,
		phase:      PhaseIdle,
		expansions: make(map[string]string),
		ratingDone: make(map[string]bool),
	}
}

// WorkflowState is a renderable snapshot of the machine.
type WorkflowState struct {
	Mode        string                    `json:"mode"`
	Phase       Phase                     `json:"phase"`
	Loading     bool                      `json:"loading"`
	LoadingTip  string                    `json:"loadingTip,omitempty"`
	Error       string                    `json:"error,omitempty"`
	Result      *models.TranslationResult `json:"result,omitempty"`
	Expansions  map[string]string         `json:"expansions,omitempty"`
	Edit        *models.EditedArtifact    `json:"edit,omitempty"`
	Reanalysis  string                    `json:"reanalysis,omitempty"`
	RatingDone  map[string]bool           `json:"ratingDone,omitempty"`
}

func (w *Workflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := WorkflowState{
		Mode:       w.mode,
		Phase:      w.phase,
		Loading:    w.inFlightLocked(),
		Error:      w.lastError,
		Reanalysis: w.reanalysis,
	}
	if state.Loading {
		state.LoadingTip = w.ticker.Current()
	}
	if w.result != nil {
		res := *w.result
		state.Result = &res
	}
	if len(w.expansions) > 0 {
		state.Expansions = make(map[string]string, len(w.expansions))
		for k, v := range w.expansions {
			state.Expansions[k] = v
		}
	}
	if w.edit != nil {
		edit := *w.edit
		state.Edit = &edit
	}
	if len(w.ratingDone) > 0 {
		state.RatingDone = make(map[string]bool, len(w.ratingDone))
		for k, v := range w.ratingDone {
			state.RatingDone[k] = v
		}
	}
	return state
}

func (w *Workflow) inFlightLocked() bool {
	switch w.phase {
	case PhaseClassifying, PhaseTranslating, PhaseExpanding, PhaseSaving, PhaseReanalyzing:
		return true
	}
	return false
}

// Ticker exposes the loading-tip ticker for progress streaming.
func (w *Workflow) Ticker() *TipTicker {
	return w.ticker
}

// Submit runs one full translate cycle: validate, optionally classify the
// sender's style, then translate. A successful result supersedes
// everything from the previous cycle; nothing is merged.
func (w *Workflow) Submit(ctx context.Context, req models.TranslationRequest) (*models.TranslationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.inFlightLocked() {
		w.mu.Unlock()
		return nil, &models.StateError{Operation: "translate", Reason: "a translation is already in progress"}
	}
	// Discard the previous cycle before going to the network so a
	// failure never leaves stale results on screen.
	w.mode = req.Mode
	w.lastError = ""
	w.result = nil
	w.originalInputs = nil
	w.expansions = make(map[string]string)
	w.edit = nil
	w.reanalysis = ""
	w.ratingDone = make(map[string]bool)

	if req.Sender == models.SenderLetAIDecide {
		sample := req.ClassificationSample()
		if sample == "" {
			w.phase = PhaseIdle
			w.mu.Unlock()
			return nil, &models.ValidationError{Field: "text", Reason: "please provide text for the style analysis"}
		}
		w.phase = PhaseClassifying
		w.ticker.Start()
		w.mu.Unlock()

		style, err := w.backend.ClassifyStyle(ctx, sample)
		if err != nil {
			// A failed classification aborts the whole cycle;
			// translate is never attempted.
			w.finish(PhaseIdle, err)
			return nil, err
		}
		req.Sender = style
		w.mu.Lock()
	}

	w.phase = PhaseTranslating
	w.ticker.Start()
	inputs := req
	w.originalInputs = &inputs
	w.mu.Unlock()

	result, err := w.backend.Translate(ctx, req)
	if err != nil {
		w.finish(PhaseIdle, err)
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.ticker.Stop()
	w.phase = PhaseReady
	w.result = &result
	return &result, nil
}

// finish records a failed transition and returns control to the given
// phase, always stopping the ticker.
func (w *Workflow) finish(phase Phase, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ticker.Stop()
	w.phase = phase
	if err != nil {
		w.lastError = err.Error()
	}
}

// ExpandVerbose fetches the deeper explanation for one artifact. The call
// is idempotent per target per result: once an expansion exists, repeat
// requests return it without touching the network.
func (w *Workflow) ExpandVerbose(ctx context.Context, target string) (string, error) {
	if !models.ValidTarget(target) {
		return "", &models.ValidationError{Field: "target", Reason: "target must be explanation or response"}
	}

	w.mu.Lock()
	if w.result == nil || w.originalInputs == nil {
		w.mu.Unlock()
		return "", &models.StateError{Operation: "verbose", Reason: "cannot fetch details because the original context is missing"}
	}
	if existing, ok := w.expansions[target]; ok {
		w.mu.Unlock()
		return existing, nil
	}
	if w.phase != PhaseReady {
		w.mu.Unlock()
		return "", &models.StateError{Operation: "verbose", Reason: "another request is already in progress"}
	}
	w.phase = PhaseExpanding
	w.ticker.Start()
	original := *w.originalInputs
	generated := w.result.Explanation
	if target == models.TargetResponse {
		generated = w.result.Response
	}
	w.mu.Unlock()

	content, err := w.backend.ExpandVerbose(ctx, target, original, generated)
	if err != nil {
		w.finish(PhaseReady, err)
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.ticker.Stop()
	w.phase = PhaseReady
	w.expansions[target] = content
	w.lastError = ""
	return content, nil
}

// BeginEdit snapshots the current response as the seed for editing.
func (w *Workflow) BeginEdit() (*models.EditedArtifact, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return nil, &models.StateError{Operation: "edit", Reason: "there is no response to edit yet"}
	}
	if w.phase != PhaseReady {
		return nil, &models.StateError{Operation: "edit", Reason: "another request is already in progress"}
	}
	w.phase = PhaseEditing
	w.edit = &models.EditedArtifact{
		OriginalResponse: w.result.Response,
		EditedResponse:   w.result.Response,
	}
	w.reanalysis = ""
	w.lastError = ""
	edit := *w.edit
	return &edit, nil
}

// UpdateEdit replaces the in-progress edited text. Changing the text
// invalidates any previously saved document: the next re-analysis needs a
// fresh save.
func (w *Workflow) UpdateEdit(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.edit == nil || w.phase != PhaseEditing {
		return &models.StateError{Operation: "edit", Reason: "no edit is in progress"}
	}
	if text != w.edit.EditedResponse {
		w.edit.EditedResponse = text
		w.edit.DocID = ""
	}
	return nil
}

// CancelEdit discards the in-progress edit without contacting the
// backend.
func (w *Workflow) CancelEdit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.edit == nil || w.phase != PhaseEditing {
		return &models.StateError{Operation: "edit", Reason: "no edit is in progress"}
	}
	w.edit = nil
	w.reanalysis = ""
	w.phase = PhaseReady
	return nil
}

// SaveEdit persists the current edit and records the backend-assigned
// document ID that unlocks re-analysis.
func (w *Workflow) SaveEdit(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.edit == nil || w.phase != PhaseEditing {
		w.mu.Unlock()
		return "", &models.StateError{Operation: "save-edit", Reason: "no edit is in progress"}
	}
	w.phase = PhaseSaving
	w.ticker.Start()
	original := *w.originalInputs
	originalResponse := w.edit.OriginalResponse
	edited := w.edit.EditedResponse
	w.mu.Unlock()

	docID, err := w.backend.SaveEdit(ctx, original, originalResponse, edited)
	if err != nil {
		w.finish(PhaseEditing, err)
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.ticker.Stop()
	w.phase = PhaseEditing
	if w.edit != nil {
		w.edit.DocID = docID
	}
	w.lastError = ""
	return docID, nil
}

// Reanalyze resubmits the edited text as a fresh analyze-mode request and
// reports the resulting explanation back to the saved feedback document.
// It is rejected until SaveEdit has succeeded for the current edit.
func (w *Workflow) Reanalyze(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.edit == nil || w.phase != PhaseEditing {
		w.mu.Unlock()
		return "", &models.StateError{Operation: "reanalyze", Reason: "no edit is in progress"}
	}
	if w.edit.DocID == "" {
		w.mu.Unlock()
		return "", &models.StateError{Operation: "reanalyze", Reason: "please save your edit before re-analyzing"}
	}

	req := *w.originalInputs
	req.Mode = models.ModeAnalyze
	req.Text = w.edit.EditedResponse
	req.Interpretation = "How does my new version sound?"
	req.AnalyzeContext = fmt.Sprintf(
		"The user edited the AI's suggestion. Analyze their new version for clarity and potential misinterpretations based on the original sender/receiver profiles. Original AI suggestion was: \"%s\"",
		w.result.Response,
	)
	docID := w.edit.DocID
	w.phase = PhaseReanalyzing
	w.ticker.Start()
	w.mu.Unlock()

	result, err := w.backend.Translate(ctx, req)
	if err != nil {
		w.finish(PhaseEditing, err)
		return "", err
	}

	w.mu.Lock()
	w.ticker.Stop()
	w.phase = PhaseEditing
	w.reanalysis = result.Explanation
	w.lastError = ""
	w.mu.Unlock()

	// The new explanation stays on screen even if reporting it back to
	// the feedback record fails.
	if err := w.backend.ReportReanalysis(ctx, docID, result.Explanation); err != nil {
		w.mu.Lock()
		w.lastError = err.Error()
		w.mu.Unlock()
		return result.Explanation, err
	}
	return result.Explanation, nil
}

// SubmitRating records a star rating for one artifact, at most once per
// target per session. A repeat submission for an already-rated target is
// rejected without a network call.
func (w *Workflow) SubmitRating(ctx context.Context, rating models.FeedbackRating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if w.result == nil {
		w.mu.Unlock()
		return &models.StateError{Operation: "rating", Reason: "there is nothing to rate yet"}
	}
	if w.ratingDone[rating.Target] {
		w.mu.Unlock()
		return &models.StateError{Operation: "rating", Reason: "feedback for this " + rating.Target + " was already submitted"}
	}
	mode := w.mode
	w.mu.Unlock()

	if err := w.backend.SubmitRating(ctx, rating, mode, time.Now()); err != nil {
		w.mu.Lock()
		w.lastError = "Sorry, could not submit feedback."
		w.mu.Unlock()
		return &models.ServiceError{Operation: "feedback-rating", Message: "Sorry, could not submit feedback."}
	}

	w.mu.Lock()
	w.ratingDone[rating.Target] = true
	w.lastError = ""
	w.mu.Unlock()
	return nil
}

// Reset discards all workflow state unconditionally, including unsent
// edits, and stops any running ticker. Switching modes resets too.
func (w *Workflow) Reset(mode string) {
	if mode != models.ModeAnalyze {
		mode = models.ModeDraft
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ticker.Stop()
	w.mode = mode
	w.phase = PhaseIdle
	w.lastError = ""
	w.result = nil
	w.originalInputs = nil
	w.expansions = make(map[string]string)
	w.edit = nil
	w.reanalysis = ""
	w.ratingDone = make(map[string]bool)
}

// Close releases the workflow's resources on session teardown.
func (w *Workflow) Close() {
	w.ticker.Stop()
}
