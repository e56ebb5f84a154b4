package repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"storechain/internal/core/id"
	"storechain/internal/domain/cart"
	"storechain/internal/infrastructure/storage/postgres"
)

// CartProductRepo persists cart line items.
type CartProductRepo struct {
	*BaseRepo[cart.Product]
}

// NewCartProductRepo creates a new cart product repository.
func NewCartProductRepo(txm *postgres.TxManager) *CartProductRepo {
	return &CartProductRepo{
		BaseRepo: NewBaseRepo(txm, "cart_products", "cart product", func() cart.Product {
			return cart.Product{}
		}),
	}
}

// ListByOrder returns the line items of a cart order, oldest first.
func (r *CartProductRepo) ListByOrder(ctx context.Context, orderID id.ID) ([]cart.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"cart_order_id": orderID}).
		OrderBy("id")
	return selectWhere(ctx, r.BaseRepo, q)
}

// DeleteByOrder removes all line items of a cart order.
func (r *CartProductRepo) DeleteByOrder(ctx context.Context, orderID id.ID) (int64, error) {
	return r.deleteWhere(ctx, squirrel.Eq{"cart_order_id": orderID})
}
