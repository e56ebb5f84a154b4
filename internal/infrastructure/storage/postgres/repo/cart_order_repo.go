package repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"storechain/internal/core/id"
	"storechain/internal/domain/cart"
	"storechain/internal/infrastructure/storage/postgres"
)

// CartOrderRepo persists cart orders.
type CartOrderRepo struct {
	*BaseRepo[cart.Order]
}

// NewCartOrderRepo creates a new cart order repository.
func NewCartOrderRepo(txm *postgres.TxManager) *CartOrderRepo {
	return &CartOrderRepo{
		BaseRepo: NewBaseRepo(txm, "cart_orders", "cart order", func() cart.Order {
			return cart.Order{}
		}),
	}
}

// ListIDsByStore returns ids of the cart orders placed against a store,
// oldest first.
func (r *CartOrderRepo) ListIDsByStore(ctx context.Context, storeID id.ID) ([]id.ID, error) {
	return r.listIDsWhere(ctx, squirrel.Eq{"store_id": storeID})
}
