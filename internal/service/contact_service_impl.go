package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grpaccess/backend/internal/docstore"
	"github.com/grpaccess/backend/internal/metrics"
	"github.com/grpaccess/backend/internal/model"
	"github.com/grpaccess/backend/internal/notify"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	store    docstore.Store
	notifier Notifier
	newID    func() string
	now      func() time.Time
}

// NewContactService creates a ContactService that persists to store and
// notifies through notifier.
func NewContactService(store docstore.Store, notifier Notifier) ContactService {
	return &contactServiceImpl{
		store:    store,
		notifier: notifier,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Create runs validate → persist → notify. A storage failure aborts before the
// notification; a notification failure is logged and otherwise ignored.
func (s *contactServiceImpl) Create(ctx context.Context, in model.ContactSubmissionCreate) (*model.ContactSubmission, error) {
	in = normalizeContact(in)
	if err := validateStruct(in); err != nil {
		metrics.ContactSubmissionsTotal.WithLabelValues(metrics.ResultValidationError).Inc()
		return nil, err
	}

	sub := &model.ContactSubmission{
		ID:          s.newID(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Message:     in.Message,
		SubmittedAt: s.now().UTC(),
		Status:      model.ContactStatusNew,
	}

	if err := s.store.Insert(ctx, docstore.CollectionContactSubmissions, sub); err != nil {
		metrics.ContactSubmissionsTotal.WithLabelValues(metrics.ResultStorageError).Inc()
		return nil, err
	}
	slog.Info("contact submission saved", "submission_id", sub.ID)
	metrics.ContactSubmissionsTotal.WithLabelValues(metrics.ResultOK).Inc()

	// The record is already durable; a client disconnect must not abort the email.
	res := s.notifier.SendContactNotification(context.WithoutCancel(ctx), notify.ContactPayload{
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Message:     sub.Message,
		SubmittedAt: sub.SubmittedAt,
	})
	if res.Sent {
		slog.Info("contact notification sent", "submission_id", sub.ID, "status_code", res.StatusCode)
	} else {
		slog.Warn("contact notification failed", "submission_id", sub.ID, "reason", res.Reason, "status_code", res.StatusCode)
	}

	return sub, nil
}

func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	raws, err := s.store.FindAll(ctx, docstore.CollectionContactSubmissions,
		docstore.WithProjection(docstore.Exclude("_id")))
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[model.ContactSubmission](docstore.CollectionContactSubmissions, raws)
}

func normalizeContact(in model.ContactSubmissionCreate) model.ContactSubmissionCreate {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone == "" {
			in.Phone = nil
		} else {
			in.Phone = &phone
		}
	}
	return in
}
