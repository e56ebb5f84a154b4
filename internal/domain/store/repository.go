package store

import (
	"context"

	"storechain/internal/core/id"
)

// Repository defines persistence operations for stores.
type Repository interface {
	// Create inserts a new store
	Create(ctx context.Context, s *Store) error

	// GetByID retrieves a store by id
	GetByID(ctx context.Context, storeID id.ID) (*Store, error)

	// GetByNumber retrieves a store by its unique store number
	GetByNumber(ctx context.Context, number string) (*Store, error)

	// Update modifies an existing store (with optimistic locking)
	Update(ctx context.Context, s *Store) error

	// Delete removes the store record (children are handled by the service)
	Delete(ctx context.Context, storeID id.ID) error

	// Exists checks if a store with the given id exists
	Exists(ctx context.Context, storeID id.ID) (bool, error)

	// ExistsByNumber checks if a store with the given number exists
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// ListIDs returns the ids of all stores
	ListIDs(ctx context.Context) ([]id.ID, error)
}

// InventoryOrders is the view of the receiving pipeline the store service
// needs for cascade deletion.
type InventoryOrders interface {
	ListIDsByStore(ctx context.Context, storeID id.ID) ([]id.ID, error)
	Delete(ctx context.Context, orderID id.ID) error
}

// CartOrders is the view of the fulfillment pipeline the store service
// needs for cascade deletion.
type CartOrders interface {
	ListIDsByStore(ctx context.Context, storeID id.ID) ([]id.ID, error)
	DeleteOrder(ctx context.Context, orderID id.ID) error
}

// ShelfStock deletes the on-shelf product records owned by a store.
type ShelfStock interface {
	DeleteByStore(ctx context.Context, storeID id.ID) (int64, error)
}

// Employees deletes the employee records owned by a store.
type Employees interface {
	DeleteByStore(ctx context.Context, storeID id.ID) (int64, error)
}
