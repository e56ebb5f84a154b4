package employee

import (
	"context"

	"storechain/internal/core/id"
)

// Repository persists employees.
type Repository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, employeeID id.ID) (*Employee, error)
	GetByUsername(ctx context.Context, username string) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, employeeID id.ID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ListByStore(ctx context.Context, storeID id.ID) ([]Employee, error)
	DeleteByStore(ctx context.Context, storeID id.ID) (int64, error)
	ListIDs(ctx context.Context) ([]id.ID, error)
}

// StoreStaff maintains the owning store's employee set.
type StoreStaff interface {
	Exists(ctx context.Context, storeID id.ID) (bool, error)
	AppendEmployee(ctx context.Context, storeID, employeeID id.ID) error
	RemoveEmployee(ctx context.Context, storeID, employeeID id.ID) error
}

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
