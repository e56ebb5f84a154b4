package receiving

import (
	"context"

	"storechain/internal/core/id"
	"storechain/internal/domain/inventory"
)

// Repository defines persistence operations for inventory orders.
type Repository interface {
	// Create inserts a new order
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order by id
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// GetForUpdate retrieves an order with a row lock (used by the drain)
	GetForUpdate(ctx context.Context, orderID id.ID) (*Order, error)

	// Update modifies an existing order (with optimistic locking)
	Update(ctx context.Context, o *Order) error

	// Delete removes the order record
	Delete(ctx context.Context, orderID id.ID) error

	// ListIDsByStore returns ids of all orders owned by a store
	ListIDsByStore(ctx context.Context, storeID id.ID) ([]id.ID, error)

	// ListIDs returns the ids of all orders
	ListIDs(ctx context.Context) ([]id.ID, error)
}

// LineItems is the view of the product repository the pipeline needs to
// manage unshelved line-item records.
type LineItems interface {
	Create(ctx context.Context, p *inventory.Product) error
	GetByID(ctx context.Context, productID id.ID) (*inventory.Product, error)
	Delete(ctx context.Context, productID id.ID) error
	DeleteByOrder(ctx context.Context, orderID id.ID) (int64, error)
	ListByOrder(ctx context.Context, orderID id.ID) ([]inventory.Product, error)
}

// StoreSets maintains the store's incoming id set.
type StoreSets interface {
	Exists(ctx context.Context, storeID id.ID) (bool, error)
	AppendIncoming(ctx context.Context, storeID, orderID id.ID) error
	RemoveIncoming(ctx context.Context, storeID, orderID id.ID) error
}

// Accounting is the shelving operation of the inventory accounting service.
type Accounting interface {
	MergeOrCreateShelfStock(ctx context.Context, storeID id.ID, candidate *inventory.Product) (*inventory.Product, error)
}
