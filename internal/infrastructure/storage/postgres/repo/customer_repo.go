package repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"storechain/internal/core/apperror"
	"storechain/internal/core/id"
	"storechain/internal/domain/customer"
	"storechain/internal/infrastructure/storage/postgres"
)

// CustomerRepo persists customers and their current/past order sets.
type CustomerRepo struct {
	*BaseRepo[customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseRepo: NewBaseRepo(txm, "customers", "customer", func() customer.Customer {
			return customer.Customer{}
		}),
	}
}

// GetByUsername retrieves a customer by login name.
func (r *CustomerRepo) GetByUsername(ctx context.Context, username string) (*customer.Customer, error) {
	q := r.baseSelect().Where(squirrel.Eq{"username": username})
	return r.getWhere(ctx, q, username)
}

// ExistsByUsername reports whether the login name is taken.
func (r *CustomerRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.existsWhere(ctx, squirrel.Eq{"username": username})
}

// AppendCurrentOrder adds a cart order id to the customer's open set.
func (r *CustomerRepo) AppendCurrentOrder(ctx context.Context, customerID, orderID id.ID) error {
	return r.appendToSet(ctx, customerID, "current_orders", orderID)
}

// RemoveCurrentOrder splices a cart order id out of the open set.
func (r *CustomerRepo) RemoveCurrentOrder(ctx context.Context, customerID, orderID id.ID) error {
	return r.removeFromSet(ctx, customerID, "current_orders", orderID)
}

// MoveOrderToPast moves a cart order id from the open set to the past set
// in one statement.
func (r *CustomerRepo) MoveOrderToPast(ctx context.Context, customerID, orderID id.ID) error {
	sql := `UPDATE customers
		SET current_orders = array_remove(current_orders, $1),
		    past_orders = array_append(array_remove(past_orders, $1), $1)
		WHERE id = $2`

	result, err := r.querier(ctx).Exec(ctx, sql, orderID, customerID)
	if err != nil {
		return fmt.Errorf("move order to past: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", customerID.String())
	}
	return nil
}
