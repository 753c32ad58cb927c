package service

import (
	"context"

	"github.com/grpaccess/backend/internal/model"
)

// StatusService records and lists status-check pings.
type StatusService interface {
	// Create validates the input, assigns ID and timestamp, and persists the record.
	Create(ctx context.Context, in model.StatusCheckCreate) (*model.StatusCheck, error)

	// List returns up to docstore.MaxFindResults status checks in store order.
	List(ctx context.Context) ([]*model.StatusCheck, error)
}
