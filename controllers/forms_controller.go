package controllers

import (
	"claritycoach/services"

	"github.com/gin-gonic/gin"
)

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// Subscribe signs an email address up for product updates.
func Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	if err := services.Subscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}

type contactRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
	Email   string `json:"email"`
}

// Contact submits the general feedback form.
func Contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	if err := services.Contact(c.Request.Context(), req.Subject, req.Message, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}
