package service

import (
	"context"

	"github.com/grpaccess/backend/internal/model"
	"github.com/grpaccess/backend/internal/notify"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Create validates the input, persists a new submission with status "new",
	// then attempts the notification email. A nil error means the submission
	// is stored; it says nothing about the email.
	Create(ctx context.Context, in model.ContactSubmissionCreate) (*model.ContactSubmission, error)

	// List returns up to docstore.MaxFindResults submissions in store order.
	List(ctx context.Context) ([]*model.ContactSubmission, error)
}

// Notifier sends the email that accompanies a new submission.
type Notifier interface {
	SendContactNotification(ctx context.Context, p notify.ContactPayload) notify.Result
}
