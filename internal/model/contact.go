package model

import "time"

// ContactStatusNew is the status every submission is created with.
const ContactStatusNew = "new"

// ContactSubmission represents a message submitted via the contact form.
type ContactSubmission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
	Status      string    `json:"status"`
}

// ContactSubmissionCreate is the caller-supplied part of a contact submission.
type ContactSubmissionCreate struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message" validate:"required"`
}
