// Package notify sends the transactional email that accompanies a contact submission.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/grpaccess/backend/internal/metrics"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ReasonNotConfigured is reported when no provider credential is set.
const ReasonNotConfigured = "api key not configured"

// ContactPayload is the data embedded in a contact notification.
type ContactPayload struct {
	Name        string
	Email       string
	Phone       *string
	Message     string
	SubmittedAt time.Time
}

// Result is the outcome of one send attempt. A failed send is a value, not an error.
type Result struct {
	Sent       bool
	StatusCode int
	Reason     string
}

// Config configures a Sender.
type Config struct {
	APIKey         string
	FromEmail      string
	RecipientEmail string
	Timeout        time.Duration
}

// mailClient is the subset of *sendgrid.Client used by Sender.
type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Sender delivers contact notifications through SendGrid.
type Sender struct {
	cfg    Config
	client mailClient
}

// NewSender creates a Sender. With an empty APIKey every send reports
// ReasonNotConfigured without contacting the provider.
func NewSender(cfg Config) *Sender {
	s := &Sender{cfg: cfg}
	if cfg.APIKey != "" {
		s.client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return s
}

// SendContactNotification makes one attempt to email the submission to the
// configured recipient. It never returns an error and never panics.
func (s *Sender) SendContactNotification(ctx context.Context, p ContactPayload) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Reason: fmt.Sprintf("panic: %v", r)}
		}
		metrics.NotificationsTotal.WithLabelValues(resultLabel(res)).Inc()
	}()

	if s.client == nil {
		return Result{Reason: ReasonNotConfigured}
	}

	msg, err := s.buildMessage(p)
	if err != nil {
		return Result{Reason: "render: " + err.Error()}
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return Result{Reason: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{StatusCode: resp.StatusCode, Reason: fmt.Sprintf("provider returned status %d", resp.StatusCode)}
	}
	return Result{Sent: true, StatusCode: resp.StatusCode}
}

func (s *Sender) buildMessage(p ContactPayload) (*mail.SGMailV3, error) {
	html, err := renderContactHTML(p)
	if err != nil {
		return nil, err
	}
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("", s.cfg.FromEmail))
	message.Subject = "New Contact Form Submission from " + p.Name

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", s.cfg.RecipientEmail))
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/html", html))
	return message, nil
}

func resultLabel(r Result) string {
	switch {
	case r.Sent:
		return metrics.ResultSent
	case r.Reason == ReasonNotConfigured:
		return metrics.ResultSkipped
	default:
		return metrics.ResultFailed
	}
}
