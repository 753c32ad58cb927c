package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grpaccess/backend/internal/docstore"
	"github.com/grpaccess/backend/internal/metrics"
	"github.com/grpaccess/backend/internal/model"
)

type statusServiceImpl struct {
	store docstore.Store
	newID func() string
	now   func() time.Time
}

// NewStatusService creates a StatusService backed by the given store.
func NewStatusService(store docstore.Store) StatusService {
	return &statusServiceImpl{store: store, newID: uuid.NewString, now: time.Now}
}

func (s *statusServiceImpl) Create(ctx context.Context, in model.StatusCheckCreate) (*model.StatusCheck, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	if err := validateStruct(in); err != nil {
		metrics.StatusChecksTotal.WithLabelValues(metrics.ResultValidationError).Inc()
		return nil, err
	}

	check := &model.StatusCheck{
		ID:         s.newID(),
		ClientName: in.ClientName,
		Timestamp:  s.now().UTC(),
	}
	if err := s.store.Insert(ctx, docstore.CollectionStatusChecks, check); err != nil {
		metrics.StatusChecksTotal.WithLabelValues(metrics.ResultStorageError).Inc()
		return nil, err
	}
	metrics.StatusChecksTotal.WithLabelValues(metrics.ResultOK).Inc()
	return check, nil
}

func (s *statusServiceImpl) List(ctx context.Context) ([]*model.StatusCheck, error) {
	raws, err := s.store.FindAll(ctx, docstore.CollectionStatusChecks,
		docstore.WithProjection(docstore.Exclude("_id")))
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[model.StatusCheck](docstore.CollectionStatusChecks, raws)
}
