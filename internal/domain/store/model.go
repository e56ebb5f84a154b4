// Package store provides the Store aggregate and its operations.
//
// A store owns three ordered id sets: incoming (inventory orders not yet
// shelved), outgoing (cart orders placed against it) and current (on-shelf
// stock). Every id in these sets must reference a record whose own owner
// field points back at this store.
package store

import (
	"context"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
)

// Store represents a single retail location.
type Store struct {
	entity.Record

	Name        string `db:"name" json:"name"`
	StoreNumber string `db:"store_number" json:"storeNumber"`
	Address     string `db:"address" json:"address"`

	// Employees assigned to this store
	Employees []id.ID `db:"employees" json:"employees"`

	// Incoming inventory orders (goods on the way from suppliers)
	Incoming []id.ID `db:"incoming" json:"incoming"`

	// Outgoing cart orders (customer orders against this store)
	Outgoing []id.ID `db:"outgoing" json:"outgoing"`

	// Current on-shelf stock (inventory product ids)
	Current []id.ID `db:"current" json:"current"`
}

// New creates a store with generated id and timestamps.
func New(name, storeNumber, address string) *Store {
	return &Store{
		Record:      entity.NewRecord(),
		Name:        name,
		StoreNumber: storeNumber,
		Address:     address,
		Employees:   []id.ID{},
		Incoming:    []id.ID{},
		Outgoing:    []id.ID{},
		Current:     []id.ID{},
	}
}

// Validate implements entity.Validatable.
func (s *Store) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if s.StoreNumber == "" {
		return apperror.NewValidation("store number is required").WithDetail("field", "storeNumber")
	}
	if s.Address == "" {
		return apperror.NewValidation("address is required").WithDetail("field", "address")
	}
	return nil
}

var _ entity.Validatable = (*Store)(nil)
