package services

import (
	"context"
	"strings"
	"time"

	"claritycoach/models"
)

// Subscribe validates the address and forwards it to the backend. Fire
// and forget beyond the single success/failure result.
func Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return &models.ValidationError{Field: "email", Reason: "please enter a valid email address"}
	}
	return defaultBackend.Subscribe(ctx, email)
}

// Contact validates and forwards the general feedback form.
func Contact(ctx context.Context, subject, message, email string) error {
	if !models.ValidSubject(subject) {
		return &models.ValidationError{Field: "subject", Reason: "subject must be general, bug or question"}
	}
	if strings.TrimSpace(message) == "" {
		return &models.ValidationError{Field: "message", Reason: "please enter a message"}
	}
	return defaultBackend.Contact(ctx, subject, message, strings.TrimSpace(email), time.Now())
}
