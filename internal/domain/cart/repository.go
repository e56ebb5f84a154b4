package cart

import (
	"context"

	"storechain/internal/core/id"
)

// OrderRepository persists cart orders.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)
	GetForUpdate(ctx context.Context, orderID id.ID) (*Order, error)
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, orderID id.ID) error
	ListIDsByStore(ctx context.Context, storeID id.ID) ([]id.ID, error)
	ListIDs(ctx context.Context) ([]id.ID, error)
}

// ProductRepository persists cart line items.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetForUpdate(ctx context.Context, productID id.ID) (*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, productID id.ID) error
	DeleteByOrder(ctx context.Context, orderID id.ID) (int64, error)
	ListByOrder(ctx context.Context, orderID id.ID) ([]Product, error)
	ListIDs(ctx context.Context) ([]id.ID, error)
}

// Customers is the slice of the customer domain the cart pipeline touches:
// shipping defaults on order creation and the current/past order sets.
type Customers interface {
	GetShippingDefaults(ctx context.Context, customerID id.ID) (name, address string, err error)
	AppendCurrentOrder(ctx context.Context, customerID, orderID id.ID) error
	RemoveCurrentOrder(ctx context.Context, customerID, orderID id.ID) error
	MoveOrderToPast(ctx context.Context, customerID, orderID id.ID) error
}

// StoreSets maintains the owning store's outgoing order set.
type StoreSets interface {
	Exists(ctx context.Context, storeID id.ID) (bool, error)
	AppendOutgoing(ctx context.Context, storeID, orderID id.ID) error
	RemoveOutgoing(ctx context.Context, storeID, orderID id.ID) error
}

// Accounting is the reservation operation of the inventory accounting
// service.
type Accounting interface {
	ReserveStock(ctx context.Context, storeID id.ID, name, description string, quantity int64) error
}
