package repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"storechain/internal/core/id"
	"storechain/internal/domain/inventory"
	"storechain/internal/infrastructure/storage/postgres"
)

// InventoryProductRepo persists inventory products, both order line items
// (inventory_order_id set) and on-shelf stock (store_id set). A SKU on a
// shelf is identified by (store_id, name, description).
type InventoryProductRepo struct {
	*BaseRepo[inventory.Product]
}

// NewInventoryProductRepo creates a new inventory product repository.
func NewInventoryProductRepo(txm *postgres.TxManager) *InventoryProductRepo {
	return &InventoryProductRepo{
		BaseRepo: NewBaseRepo(txm, "inventory_products", "inventory product", func() inventory.Product {
			return inventory.Product{}
		}),
	}
}

func (r *InventoryProductRepo) shelfPred(storeID id.ID, name, description string) squirrel.Eq {
	return squirrel.Eq{
		"store_id":    storeID,
		"name":        name,
		"description": description,
	}
}

// GetOnShelf retrieves the shelf record of a SKU at a store.
func (r *InventoryProductRepo) GetOnShelf(ctx context.Context, storeID id.ID, name, description string) (*inventory.Product, error) {
	q := r.baseSelect().Where(r.shelfPred(storeID, name, description))
	return r.getWhere(ctx, q, name)
}

// GetOnShelfForUpdate retrieves the shelf record of a SKU with a row lock.
func (r *InventoryProductRepo) GetOnShelfForUpdate(ctx context.Context, storeID id.ID, name, description string) (*inventory.Product, error) {
	q := r.baseSelect().
		Where(r.shelfPred(storeID, name, description)).
		Suffix("FOR UPDATE")
	return r.getWhere(ctx, q, name)
}

// DecrementOnShelf atomically debits quantity units from a shelf SKU. The
// guard in the WHERE clause makes the debit conditional on sufficient
// stock: false means no row qualified, and the caller re-reads to find out
// whether the SKU is missing, empty, or short.
func (r *InventoryProductRepo) DecrementOnShelf(ctx context.Context, storeID id.ID, name, description string, quantity int64) (bool, error) {
	sql, args, err := r.decrementSQL(storeID, name, description, quantity)
	if err != nil {
		return false, err
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *InventoryProductRepo) decrementSQL(storeID id.ID, name, description string, quantity int64) (string, []any, error) {
	return r.Builder().
		Update("inventory_products").
		Set("quantity", squirrel.Expr("quantity - ?", quantity)).
		Where(r.shelfPred(storeID, name, description)).
		Where(squirrel.GtOrEq{"quantity": quantity}).
		ToSql()
}

// IncrementOnShelf credits quantity units back to a shelf SKU.
func (r *InventoryProductRepo) IncrementOnShelf(ctx context.Context, storeID id.ID, name, description string, quantity int64) (bool, error) {
	sql, args, err := r.Builder().
		Update("inventory_products").
		Set("quantity", squirrel.Expr("quantity + ?", quantity)).
		Where(r.shelfPred(storeID, name, description)).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// ListByStore returns all on-shelf products of a store, oldest first.
func (r *InventoryProductRepo) ListByStore(ctx context.Context, storeID id.ID) ([]inventory.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("id")
	return selectWhere(ctx, r.BaseRepo, q)
}

// ListByOrder returns the line items of an inventory order, oldest first.
func (r *InventoryProductRepo) ListByOrder(ctx context.Context, orderID id.ID) ([]inventory.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"inventory_order_id": orderID}).
		OrderBy("id")
	return selectWhere(ctx, r.BaseRepo, q)
}

// DeleteByOrder removes all line items of an inventory order.
func (r *InventoryProductRepo) DeleteByOrder(ctx context.Context, orderID id.ID) (int64, error) {
	return r.deleteWhere(ctx, squirrel.Eq{"inventory_order_id": orderID})
}

// DeleteByStore removes all on-shelf products of a store.
func (r *InventoryProductRepo) DeleteByStore(ctx context.Context, storeID id.ID) (int64, error) {
	return r.deleteWhere(ctx, squirrel.Eq{"store_id": storeID})
}
