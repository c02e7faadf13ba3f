package controllers

import (
	"claritycoach/middlewares"
	"claritycoach/models"

	"github.com/gin-gonic/gin"
)

type submitRequest struct {
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

// toModel fills in the UI defaults for fields the client omitted.
func (r *submitRequest) toModel() models.TranslationRequest {
	req := models.TranslationRequest{
		Mode:               r.Mode,
		Text:               r.Text,
		Context:            r.Context,
		Interpretation:     r.Interpretation,
		AnalyzeContext:     r.AnalyzeContext,
		Sender:             r.Sender,
		Receiver:           r.Receiver,
		SenderNeurotype:    r.SenderNeurotype,
		ReceiverNeurotype:  r.ReceiverNeurotype,
		SenderGeneration:   r.SenderGeneration,
		ReceiverGeneration: r.ReceiverGeneration,
	}
	if req.Sender == "" {
		req.Sender = models.SenderLetAIDecide
	}
	if req.Receiver == "" {
		req.Receiver = models.StyleIndirect
	}
	if req.SenderNeurotype == "" {
		req.SenderNeurotype = models.DefaultNeurotype
	}
	if req.ReceiverNeurotype == "" {
		req.ReceiverNeurotype = models.DefaultNeurotype
	}
	if req.SenderGeneration == "" {
		req.SenderGeneration = models.DefaultGeneration
	}
	if req.ReceiverGeneration == "" {
		req.ReceiverGeneration = models.DefaultGeneration
	}
	return req
}

// SubmitTranslation runs one draft/analyze cycle for the session.
func SubmitTranslation(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := sess.Workflow.Submit(c.Request.Context(), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, result)
}

type verboseRequest struct {
	Target string `json:"target" binding:"required"`
}

// ExpandVerbose fetches the deeper explanation for one artifact.
func ExpandVerbose(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var req verboseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	content, err := sess.Workflow.ExpandVerbose(c.Request.Context(), req.Target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"target": req.Target, "verboseContent": content})
}

// BeginEdit snapshots the current response as the editing seed.
func BeginEdit(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	edit, err := sess.Workflow.BeginEdit()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, edit)
}

type updateEditRequest struct {
	Text string `json:"text"`
}

// UpdateEdit replaces the in-progress edited text.
func UpdateEdit(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var req updateEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	if err := sess.Workflow.UpdateEdit(req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}

// CancelEdit discards the in-progress edit.
func CancelEdit(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	if err := sess.Workflow.CancelEdit(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}

// SaveEdit persists the current edit and returns the assigned document
// ID.
func SaveEdit(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	docID, err := sess.Workflow.SaveEdit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"docId": docID})
}

// Reanalyze resubmits the saved edit for a fresh explanation.
func Reanalyze(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	explanation, err := sess.Workflow.Reanalyze(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"explanation": explanation})
}

type ratingRequest struct {
	Target  string `json:"target" binding:"required"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

// SubmitRating records a star rating for one artifact.
func SubmitRating(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	rating := models.FeedbackRating{Target: req.Target, Stars: req.Stars, Comment: req.Comment}
	if err := sess.Workflow.SubmitRating(c.Request.Context(), rating); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}

type resetRequest struct {
	Mode string `json:"mode"`
}

// ResetWorkflow discards all workflow state, optionally switching modes.
func ResetWorkflow(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var req resetRequest
	// Body is optional; an empty reset keeps draft mode.
	_ = c.ShouldBindJSON(&req)

	sess.Workflow.Reset(req.Mode)
	c.JSON(200, gin.H{"status": "ok"})
}

// WorkflowStateHandler returns the renderable snapshot of the machine.
func WorkflowStateHandler(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	c.JSON(200, sess.Workflow.State())
}
