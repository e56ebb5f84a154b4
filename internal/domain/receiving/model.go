// Package receiving provides the InventoryOrder aggregate and the pipeline
// that shelves its line items into store stock.
package receiving

import (
	"context"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
)

// Order is an inventory order: goods ordered from a supplier that have not
// been shelved yet. Inventories is the ordered list of unshelved line-item
// ids; the pipeline consumes it from the head.
type Order struct {
	entity.Base

	StoreID     id.ID   `db:"store_id" json:"storeId"`
	Inventories []id.ID `db:"inventories" json:"inventories"`
}

// NewOrder creates an empty inventory order for a store.
func NewOrder(storeID id.ID) *Order {
	return &Order{
		Base:        entity.NewBase(),
		StoreID:     storeID,
		Inventories: []id.ID{},
	}
}

// Validate implements entity.Validatable.
func (o *Order) Validate(ctx context.Context) error {
	if id.IsNil(o.StoreID) {
		return apperror.NewValidation("store is required").WithDetail("field", "storeId")
	}
	return nil
}

var _ entity.Validatable = (*Order)(nil)
