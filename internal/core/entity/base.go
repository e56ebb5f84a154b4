// Package entity provides the shared base types embedded by all aggregates.
package entity

import (
	"context"
	"time"

	"storechain/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains the fields common to every persisted record.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// NewBase creates a Base with a generated ID.
func NewBase() Base {
	return Base{
		ID:      id.New(),
		Version: 1,
	}
}

// SetVersion updates the version number. Version is managed by the
// repository layer: it is the optimistic-lock predicate on update, and the
// repository syncs the incremented value back through this method.
func (b *Base) SetVersion(v int) {
	b.Version = v
}

// Record extends Base with audit timestamps for long-lived aggregates.
type Record struct {
	Base

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewRecord creates a Record with generated ID and timestamps.
func NewRecord() Record {
	now := time.Now().UTC()
	return Record{
		Base:      NewBase(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

