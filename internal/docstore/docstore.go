// Package docstore persists JSON documents in named collections.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// MaxFindResults caps the number of documents a single FindAll returns.
const MaxFindResults = 1000

// Collection names used by the services.
const (
	CollectionStatusChecks       = "status_checks"
	CollectionContactSubmissions = "contact_submissions"
)

// Store is the persistence interface the services depend on.
// Implementations must be safe for concurrent use.
type Store interface {
	// Insert stores doc as one document in the named collection.
	Insert(ctx context.Context, collection string, doc any) error

	// FindAll returns up to MaxFindResults documents in store order.
	FindAll(ctx context.Context, collection string, opts ...FindOption) ([]json.RawMessage, error)

	Ping(ctx context.Context) error
	Close()
}

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

var errInvalidCollection = errors.New("invalid collection name")

func validateCollection(name string) error {
	if !collectionName.MatchString(name) {
		return fmt.Errorf("%w: %q", errInvalidCollection, name)
	}
	return nil
}

// FindOption customises a FindAll call.
type FindOption func(*findOptions)

type findOptions struct {
	limit   int
	exclude []string
}

// WithLimit lowers the number of returned documents. Values outside
// 1..MaxFindResults are clamped.
func WithLimit(n int) FindOption {
	return func(o *findOptions) {
		switch {
		case n < 1:
			o.limit = 1
		case n > MaxFindResults:
			o.limit = MaxFindResults
		default:
			o.limit = n
		}
	}
}

// WithProjection strips the given top-level fields from every returned document.
func WithProjection(p Projection) FindOption {
	return func(o *findOptions) {
		o.exclude = append(o.exclude, p.exclude...)
	}
}

// Projection describes which top-level fields to drop from results.
type Projection struct {
	exclude []string
}

// Exclude builds a Projection that removes the named fields.
func Exclude(fields ...string) Projection {
	return Projection{exclude: fields}
}

func buildFindOptions(opts []FindOption) findOptions {
	o := findOptions{limit: MaxFindResults}
	for _, opt := range opts {
		opt(&o)
	}
	if o.exclude == nil {
		o.exclude = []string{}
	}
	return o
}

// DecodeAll decodes raw documents read from collection into typed records.
func DecodeAll[T any](collection string, raws []json.RawMessage) ([]*T, error) {
	out := make([]*T, 0, len(raws))
	for _, raw := range raws {
		v := new(T)
		if err := json.Unmarshal(raw, v); err != nil {
			return nil, &StorageError{Op: OpDecode, Collection: collection, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}
