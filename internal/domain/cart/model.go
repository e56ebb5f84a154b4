package cart

import (
	"context"
	"strings"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
)

// Order is a customer's cart against one store. Line-item ids are kept in
// insertion order.
type Order struct {
	entity.Base

	CustomerID      id.ID   `db:"customer_id" json:"customer_id"`
	StoreID         id.ID   `db:"store_id" json:"store_id"`
	ShippingName    string  `db:"shipping_name" json:"shipping_name"`
	ShippingAddress string  `db:"shipping_address" json:"shipping_address"`
	Products        []id.ID `db:"products" json:"products"`
	Completed       bool    `db:"completed" json:"completed"`
}

// NewOrder creates an open cart order for a customer at a store.
func NewOrder(customerID, storeID id.ID) *Order {
	return &Order{
		Base:       entity.NewBase(),
		CustomerID: customerID,
		StoreID:    storeID,
		Products:   []id.ID{},
	}
}

func (o *Order) Validate(_ context.Context) error {
	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required")
	}
	if id.IsNil(o.StoreID) {
		return apperror.NewValidation("store is required")
	}
	if strings.TrimSpace(o.ShippingName) == "" {
		return apperror.NewValidation("shipping name is required")
	}
	if strings.TrimSpace(o.ShippingAddress) == "" {
		return apperror.NewValidation("shipping address is required")
	}
	return nil
}

// Product is one reserved line item of a cart order. Its quantity has
// already been debited from the store's shelf stock.
type Product struct {
	entity.Base

	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"desc"`
	Quantity    int64  `db:"quantity" json:"quantity"`
	OrderID     id.ID  `db:"cart_order_id" json:"cart_order_id"`
}

// NewProduct creates a cart line item.
func NewProduct(name, description string, quantity int64) *Product {
	return &Product{
		Base:        entity.NewBase(),
		Name:        name,
		Description: description,
		Quantity:    quantity,
	}
}

func (p *Product) Validate(_ context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return apperror.NewValidation("description is required")
	}
	if p.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", p.Quantity)
	}
	return nil
}
