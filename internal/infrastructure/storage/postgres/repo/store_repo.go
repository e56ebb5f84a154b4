package repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"storechain/internal/core/id"
	"storechain/internal/domain/store"
	"storechain/internal/infrastructure/storage/postgres"
)

// StoreRepo persists stores. Beyond CRUD it maintains the four uuid[]
// membership columns (employees, incoming, outgoing, current) the order
// pipelines splice ids in and out of.
type StoreRepo struct {
	*BaseRepo[store.Store]
}

// NewStoreRepo creates a new store repository.
func NewStoreRepo(txm *postgres.TxManager) *StoreRepo {
	return &StoreRepo{
		BaseRepo: NewBaseRepo(txm, "stores", "store", func() store.Store {
			return store.Store{}
		}),
	}
}

// GetByNumber retrieves a store by its chain-unique store number.
func (r *StoreRepo) GetByNumber(ctx context.Context, storeNumber string) (*store.Store, error) {
	q := r.baseSelect().Where(squirrel.Eq{"store_number": storeNumber})
	return r.getWhere(ctx, q, storeNumber)
}

// ExistsByNumber reports whether a store with the number exists.
func (r *StoreRepo) ExistsByNumber(ctx context.Context, storeNumber string) (bool, error) {
	return r.existsWhere(ctx, squirrel.Eq{"store_number": storeNumber})
}

// AppendEmployee adds an employee id to the store's staff set.
func (r *StoreRepo) AppendEmployee(ctx context.Context, storeID, employeeID id.ID) error {
	return r.appendToSet(ctx, storeID, "employees", employeeID)
}

// RemoveEmployee splices an employee id out of the staff set.
func (r *StoreRepo) RemoveEmployee(ctx context.Context, storeID, employeeID id.ID) error {
	return r.removeFromSet(ctx, storeID, "employees", employeeID)
}

// AppendIncoming adds an inventory order id to the store's incoming set.
func (r *StoreRepo) AppendIncoming(ctx context.Context, storeID, orderID id.ID) error {
	return r.appendToSet(ctx, storeID, "incoming", orderID)
}

// RemoveIncoming splices an inventory order id out of the incoming set.
func (r *StoreRepo) RemoveIncoming(ctx context.Context, storeID, orderID id.ID) error {
	return r.removeFromSet(ctx, storeID, "incoming", orderID)
}

// AppendOutgoing adds a cart order id to the store's outgoing set.
func (r *StoreRepo) AppendOutgoing(ctx context.Context, storeID, orderID id.ID) error {
	return r.appendToSet(ctx, storeID, "outgoing", orderID)
}

// RemoveOutgoing splices a cart order id out of the outgoing set.
func (r *StoreRepo) RemoveOutgoing(ctx context.Context, storeID, orderID id.ID) error {
	return r.removeFromSet(ctx, storeID, "outgoing", orderID)
}

// AppendCurrent adds an on-shelf product id to the store's current set.
func (r *StoreRepo) AppendCurrent(ctx context.Context, storeID, productID id.ID) error {
	return r.appendToSet(ctx, storeID, "current", productID)
}

// RemoveCurrent splices an on-shelf product id out of the current set.
func (r *StoreRepo) RemoveCurrent(ctx context.Context, storeID, productID id.ID) error {
	return r.removeFromSet(ctx, storeID, "current", productID)
}
