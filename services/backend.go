package services

import (
	"context"
	"time"

	"claritycoach/models"
)

// Backend is the slice of the remote gateway the workflow layer depends
// on. *gateway.Client satisfies it; tests substitute a recording fake.
type Backend interface {
	ClassifyStyle(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, req models.TranslationRequest) (models.TranslationResult, error)
	ExpandVerbose(ctx context.Context, target string, original models.TranslationRequest, generated string) (string, error)
	SendChat(ctx context.Context, history []models.ChatTurn) (models.ChatTurn, error)
	SubmitRating(ctx context.Context, rating models.FeedbackRating, mode string, timestamp time.Time) error
	SaveEdit(ctx context.Context, original models.TranslationRequest, originalResponse, editedResponse string) (string, error)
	ReportReanalysis(ctx context.Context, docID, reanalysisText string) error
	Subscribe(ctx context.Context, email string) error
	Contact(ctx context.Context, subject, message, email string, timestamp time.Time) error
}
