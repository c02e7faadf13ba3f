package controllers

import (
	"claritycoach/middlewares"

	"github.com/gin-gonic/gin"
)

type chatSendRequest struct {
	Message string `json:"message"`
}

// SendChatMessage appends the user's turn and returns the coach's reply
// along with the updated history.
func SendChatMessage(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var req chatSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	reply, err := sess.Chat.Send(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"reply": reply, "history": sess.Chat.History()})
}

// ChatHistory returns the conversation so far.
func ChatHistory(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	c.JSON(200, gin.H{"history": sess.Chat.History()})
}

// ResetChat starts the conversation over.
func ResetChat(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	if err := sess.Chat.Reset(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"history": sess.Chat.History()})
}
