package dto

import (
	"storechain/internal/domain/cart"
)

// CreateCartOrderRequest for opening a cart order. Blank shipping fields
// default from the customer profile.
type CreateCartOrderRequest struct {
	ShippingName    string `json:"shipping_name"`
	ShippingAddress string `json:"shipping_address"`
}

// ToOrder converts the request into a cart order draft.
func (r CreateCartOrderRequest) ToOrder() *cart.Order {
	return &cart.Order{
		ShippingName:    r.ShippingName,
		ShippingAddress: r.ShippingAddress,
	}
}

// CartProductRequest describes one line item to reserve.
type CartProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"desc" binding:"required"`
	Quantity    int64  `json:"quantity" binding:"required,min=1"`
}

// ToProduct converts the request into a cart product entity.
func (r CartProductRequest) ToProduct() *cart.Product {
	return cart.NewProduct(r.Name, r.Description, r.Quantity)
}

// UpdateCartOrderRequest changes where an open order ships to.
type UpdateCartOrderRequest struct {
	ShippingName    string `json:"shipping_name" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// UpdateCartProductRequest adjusts a line's quantity by a delta.
type UpdateCartProductRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// CartProductResponse contains cart line item fields.
type CartProductResponse struct {
	ID          string `json:"id"`
	Version     int    `json:"version"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	Quantity    int64  `json:"quantity"`
	OrderID     string `json:"cart_order_id"`
}

// FromCartProduct creates a response from a cart line item.
func FromCartProduct(p *cart.Product) CartProductResponse {
	return CartProductResponse{
		ID:          p.ID.String(),
		Version:     p.Version,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		OrderID:     p.OrderID.String(),
	}
}

// FromCartProducts converts a slice of cart line items.
func FromCartProducts(items []cart.Product) []CartProductResponse {
	out := make([]CartProductResponse, len(items))
	for i := range items {
		out[i] = FromCartProduct(&items[i])
	}
	return out
}

// CartOrderResponse contains cart order fields.
type CartOrderResponse struct {
	ID              string                `json:"id"`
	Version         int                   `json:"version"`
	CustomerID      string                `json:"customer_id"`
	StoreID         string                `json:"store_id"`
	ShippingName    string                `json:"shipping_name"`
	ShippingAddress string                `json:"shipping_address"`
	Completed       bool                  `json:"completed"`
	ProductIDs      []string              `json:"products"`
	Products        []CartProductResponse `json:"line_items,omitempty"`
}

// FromCartOrder creates a response from a cart order entity, attaching
// line items when supplied.
func FromCartOrder(o *cart.Order, items []cart.Product) CartOrderResponse {
	resp := CartOrderResponse{
		ID:              o.ID.String(),
		Version:         o.Version,
		CustomerID:      o.CustomerID.String(),
		StoreID:         o.StoreID.String(),
		ShippingName:    o.ShippingName,
		ShippingAddress: o.ShippingAddress,
		Completed:       o.Completed,
		ProductIDs:      idStrings(o.Products),
	}
	if items != nil {
		resp.Products = FromCartProducts(items)
	}
	return resp
}
