package repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"storechain/internal/core/id"
	"storechain/internal/domain/receiving"
	"storechain/internal/infrastructure/storage/postgres"
)

// InventoryOrderRepo persists inventory orders.
type InventoryOrderRepo struct {
	*BaseRepo[receiving.Order]
}

// NewInventoryOrderRepo creates a new inventory order repository.
func NewInventoryOrderRepo(txm *postgres.TxManager) *InventoryOrderRepo {
	return &InventoryOrderRepo{
		BaseRepo: NewBaseRepo(txm, "inventory_orders", "inventory order", func() receiving.Order {
			return receiving.Order{}
		}),
	}
}

// ListIDsByStore returns ids of a store's inventory orders, oldest first.
func (r *InventoryOrderRepo) ListIDsByStore(ctx context.Context, storeID id.ID) ([]id.ID, error) {
	return r.listIDsWhere(ctx, squirrel.Eq{"store_id": storeID})
}
