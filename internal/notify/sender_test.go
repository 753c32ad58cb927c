package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ---------------------------------------------------------------------------
// fakeMailClient records the message instead of calling SendGrid
// ---------------------------------------------------------------------------

type fakeMailClient struct {
	sendFunc func(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
	calls    int
	last     *mail.SGMailV3
}

func (f *fakeMailClient) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.calls++
	f.last = email
	if f.sendFunc != nil {
		return f.sendFunc(ctx, email)
	}
	return &rest.Response{StatusCode: 202}, nil
}

func newTestSender(client mailClient) *Sender {
	return &Sender{
		cfg: Config{
			APIKey:         "SG.test",
			FromEmail:      "noreply@grpaccess.com",
			RecipientEmail: "zack@grpaccess.com",
			Timeout:        time.Second,
		},
		client: client,
	}
}

func testPayload() ContactPayload {
	phone := "+1 555 0100"
	return ContactPayload{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Phone:       &phone,
		Message:     "Please call me back.",
		SubmittedAt: time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestSendContactNotification_NotConfigured(t *testing.T) {
	s := NewSender(Config{FromEmail: "noreply@grpaccess.com", RecipientEmail: "zack@grpaccess.com"})

	res := s.SendContactNotification(context.Background(), testPayload())
	if res.Sent {
		t.Error("expected Sent=false without an API key")
	}
	if res.Reason != ReasonNotConfigured {
		t.Errorf("expected reason %q, got %q", ReasonNotConfigured, res.Reason)
	}
}

func TestSendContactNotification_Success(t *testing.T) {
	fake := &fakeMailClient{}
	s := newTestSender(fake)

	res := s.SendContactNotification(context.Background(), testPayload())
	if !res.Sent {
		t.Fatalf("expected Sent=true, got %+v", res)
	}
	if res.StatusCode != 202 {
		t.Errorf("expected status 202, got %d", res.StatusCode)
	}
	if fake.calls != 1 {
		t.Errorf("expected exactly one provider call, got %d", fake.calls)
	}

	msg := fake.last
	if msg.Subject != "New Contact Form Submission from Jane Doe" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if msg.From.Address != "noreply@grpaccess.com" {
		t.Errorf("unexpected from %q", msg.From.Address)
	}
	if len(msg.Personalizations) != 1 || msg.Personalizations[0].To[0].Address != "zack@grpaccess.com" {
		t.Errorf("unexpected recipients: %+v", msg.Personalizations)
	}
	if len(msg.Content) != 1 || msg.Content[0].Type != "text/html" {
		t.Fatalf("expected a single text/html part, got %+v", msg.Content)
	}
	body := msg.Content[0].Value
	for _, want := range []string{"Jane Doe", "mailto:jane@example.com", "+1 555 0100", "Please call me back.", "Submitted at: 2026-10-15T09:30:00Z"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}

func TestSendContactNotification_ProviderRejects(t *testing.T) {
	fake := &fakeMailClient{
		sendFunc: func(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
			return &rest.Response{StatusCode: 401, Body: `{"errors":[{"message":"bad key"}]}`}, nil
		},
	}
	s := newTestSender(fake)

	res := s.SendContactNotification(context.Background(), testPayload())
	if res.Sent {
		t.Error("expected Sent=false for a 401 response")
	}
	if res.StatusCode != 401 {
		t.Errorf("expected status 401, got %d", res.StatusCode)
	}
}

func TestSendContactNotification_TransportError(t *testing.T) {
	fake := &fakeMailClient{
		sendFunc: func(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
			return nil, errors.New("dial tcp: no route to host")
		},
	}
	s := newTestSender(fake)

	res := s.SendContactNotification(context.Background(), testPayload())
	if res.Sent {
		t.Error("expected Sent=false on transport error")
	}
	if !strings.Contains(res.Reason, "no route to host") {
		t.Errorf("unexpected reason %q", res.Reason)
	}
}

func TestSendContactNotification_Timeout(t *testing.T) {
	fake := &fakeMailClient{
		sendFunc: func(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	s := newTestSender(fake)
	s.cfg.Timeout = 10 * time.Millisecond

	res := s.SendContactNotification(context.Background(), testPayload())
	if res.Sent {
		t.Error("expected Sent=false on timeout")
	}
}

func TestSendContactNotification_PanicIsReportedAsFailure(t *testing.T) {
	fake := &fakeMailClient{
		sendFunc: func(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
			panic("boom")
		},
	}
	s := newTestSender(fake)

	res := s.SendContactNotification(context.Background(), testPayload())
	if res.Sent {
		t.Error("expected Sent=false after a panic")
	}
	if !strings.Contains(res.Reason, "boom") {
		t.Errorf("unexpected reason %q", res.Reason)
	}
}

func TestRenderContactHTML(t *testing.T) {
	t.Run("phone absent", func(t *testing.T) {
		p := testPayload()
		p.Phone = nil
		html, err := renderContactHTML(p)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if !strings.Contains(html, "Not provided") {
			t.Error("expected Not provided placeholder")
		}
	})

	t.Run("escapes markup", func(t *testing.T) {
		p := testPayload()
		p.Message = `<script>alert("x")</script>`
		html, err := renderContactHTML(p)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if strings.Contains(html, "<script>") {
			t.Error("message markup should be escaped")
		}
		if !strings.Contains(html, "&lt;script&gt;") {
			t.Error("expected escaped script tag")
		}
	})
}
