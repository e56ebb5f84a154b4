package inventory

import (
	"context"

	"storechain/internal/core/id"
)

// Repository defines persistence operations for inventory products.
type Repository interface {
	// Create inserts a new product record
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by id
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// Update modifies an existing product (with optimistic locking)
	Update(ctx context.Context, p *Product) error

	// Delete removes a product record
	Delete(ctx context.Context, productID id.ID) error

	// GetOnShelf retrieves the on-shelf record for a SKU
	GetOnShelf(ctx context.Context, storeID id.ID, name, description string) (*Product, error)

	// GetOnShelfForUpdate retrieves the on-shelf record with a row lock,
	// for merge operations that read-modify-write the quantity
	GetOnShelfForUpdate(ctx context.Context, storeID id.ID, name, description string) (*Product, error)

	// DecrementOnShelf atomically decrements the shelf quantity of a SKU,
	// guarded so it never goes below zero. Returns false when no row
	// matched (absent SKU or not enough stock).
	DecrementOnShelf(ctx context.Context, storeID id.ID, name, description string, qty int64) (bool, error)

	// IncrementOnShelf atomically credits the shelf quantity of a SKU.
	// Returns false when no on-shelf row matched.
	IncrementOnShelf(ctx context.Context, storeID id.ID, name, description string, qty int64) (bool, error)

	// ListByStore returns all on-shelf records of a store
	ListByStore(ctx context.Context, storeID id.ID) ([]Product, error)

	// ListByOrder returns the unshelved line items of an inventory order
	ListByOrder(ctx context.Context, orderID id.ID) ([]Product, error)

	// DeleteByOrder removes all line items of an inventory order
	DeleteByOrder(ctx context.Context, orderID id.ID) (int64, error)

	// DeleteByStore removes all on-shelf records of a store
	DeleteByStore(ctx context.Context, storeID id.ID) (int64, error)

	// ListIDs returns the ids of all product records
	ListIDs(ctx context.Context) ([]id.ID, error)
}

// StoreStock is the view of the store aggregate the accounting service
// needs: existence checks and maintenance of the `current` id set.
type StoreStock interface {
	Exists(ctx context.Context, storeID id.ID) (bool, error)
	AppendCurrent(ctx context.Context, storeID, productID id.ID) error
	RemoveCurrent(ctx context.Context, storeID, productID id.ID) error
}
