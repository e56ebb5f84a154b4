// Package inventory provides the InventoryProduct record and the stock
// accounting that guards its quantity.
//
// A product record is in exactly one of two states: unshelved (owned by an
// inventory order, OrderID set) or on-shelf (owned by a store, StoreID set).
// The receiving pipeline moves records from the first state to the second.
// "The same SKU" is identified by the (name, description, store) triple; at
// most one on-shelf record exists per SKU, with duplicates merged by summing
// quantity.
package inventory

import (
	"context"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
	"storechain/internal/core/types"
)

// Product is a stock keeping unit, either an unshelved receiving line item
// or an on-shelf record available for sale.
type Product struct {
	entity.Base

	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"desc"`
	Category    string      `db:"category" json:"category"`
	Price       types.Money `db:"price" json:"price"`

	// Quantity on hand; never negative
	Quantity int64 `db:"quantity" json:"quantity"`

	// OrderID is set while the record is an unshelved line item
	OrderID *id.ID `db:"inventory_order_id" json:"inventoryOrderId,omitempty"`

	// StoreID is set once the record is shelved
	StoreID *id.ID `db:"store_id" json:"storeId,omitempty"`
}

// NewProduct creates an unattached product record.
func NewProduct(name, description, category string, price types.Money, quantity int64) *Product {
	return &Product{
		Base:        entity.NewBase(),
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
	}
}

// OnShelf reports whether the record is store-owned stock.
func (p *Product) OnShelf() bool {
	return p.StoreID != nil && !id.IsNil(*p.StoreID)
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if p.Description == "" {
		return apperror.NewValidation("description is required").WithDetail("field", "desc")
	}
	if p.Category == "" {
		return apperror.NewValidation("category is required").WithDetail("field", "category")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").WithDetail("field", "price")
	}
	if p.Quantity < 0 {
		return apperror.NewValidation("quantity must not be negative").WithDetail("field", "quantity")
	}
	return nil
}

var _ entity.Validatable = (*Product)(nil)
