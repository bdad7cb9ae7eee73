// Package plasmid defines the persistence and messaging contracts the
// recognition service depends on.  Implementations live under
// internal/infrastructure.
package plasmid

import (
	"context"

	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// RecordRepository is the catalog's record table.  The recognition engine
// only reads it to build the corpus vocabulary; field write-back is used by
// the catalog workflow after a user confirms a recognition.
type RecordRepository interface {
	// List returns every record.  Order is unspecified.
	List(ctx context.Context) ([]ptypes.Record, error)

	// Get returns one record.  Returns errors.ErrCodeRecordNotFound if absent.
	Get(ctx context.Context, id string) (*ptypes.Record, error)

	// Upsert inserts or replaces a record by ID.
	Upsert(ctx context.Context, r *ptypes.Record) error

	// UpdateFields merges fields into the record's existing fields.  A field
	// mapped to an empty slice is removed.
	UpdateFields(ctx context.Context, id string, fields map[string]ptypes.FieldValues) error

	Count(ctx context.Context) (int64, error)
}

// CorrectionStore persists user corrections so they survive restarts and
// are shared between instances.  Save overwrites the entry with the same
// Correction.Key.
type CorrectionStore interface {
	Save(ctx context.Context, c ptypes.Correction) error
	List(ctx context.Context) ([]ptypes.Correction, error)
	Delete(ctx context.Context, filename, category string) error
}

// RulesSource yields the raw rules document.  A nil slice with a nil error
// means no document is configured.
type RulesSource interface {
	LoadRules(ctx context.Context) ([]byte, error)
}

// ContentFetcher reads a plasmid file from object storage.
type ContentFetcher interface {
	Fetch(ctx context.Context, key string, maxBytes int64) ([]byte, error)
}

// EventPublisher fans recognition side effects out to other instances.
type EventPublisher interface {
	PublishCorrection(ctx context.Context, ev *CorrectionRecordedEvent) error
	PublishResult(ctx context.Context, res *ptypes.RecognitionJobResult) error
}

//Personal.AI order the ending
