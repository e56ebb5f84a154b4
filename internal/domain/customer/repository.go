package customer

import (
	"context"

	"storechain/internal/core/id"
)

// Repository persists customers and maintains their cart-order sets.
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)
	GetByUsername(ctx context.Context, username string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, customerID id.ID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	AppendCurrentOrder(ctx context.Context, customerID, orderID id.ID) error
	RemoveCurrentOrder(ctx context.Context, customerID, orderID id.ID) error
	MoveOrderToPast(ctx context.Context, customerID, orderID id.ID) error
	ListIDs(ctx context.Context) ([]id.ID, error)
}

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
