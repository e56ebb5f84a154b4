package dto

import (
	"storechain/internal/core/types"
	"storechain/internal/domain/inventory"
	"storechain/internal/domain/receiving"
)

// InventoryProductRequest describes one product, either a line item of an
// inventory order or a shelf record.
type InventoryProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"desc" binding:"required"`
	Category    string      `json:"category" binding:"required"`
	Price       types.Money `json:"price"`
	Quantity    int64       `json:"quantity" binding:"required,min=1"`
}

// ToProduct converts the request into an inventory product entity.
func (r InventoryProductRequest) ToProduct() *inventory.Product {
	return inventory.NewProduct(r.Name, r.Description, r.Category, r.Price, r.Quantity)
}

// InventoryProductResponse contains product fields.
type InventoryProductResponse struct {
	ID          string      `json:"id"`
	Version     int         `json:"version"`
	Name        string      `json:"name"`
	Description string      `json:"desc"`
	Category    string      `json:"category"`
	Price       types.Money `json:"price"`
	Quantity    int64       `json:"quantity"`
	OrderID     *string     `json:"inventory_order_id,omitempty"`
	StoreID     *string     `json:"store_id,omitempty"`
}

// FromInventoryProduct creates a response from a product entity.
func FromInventoryProduct(p *inventory.Product) InventoryProductResponse {
	resp := InventoryProductResponse{
		ID:          p.ID.String(),
		Version:     p.Version,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
	if p.OrderID != nil {
		s := p.OrderID.String()
		resp.OrderID = &s
	}
	if p.StoreID != nil {
		s := p.StoreID.String()
		resp.StoreID = &s
	}
	return resp
}

// FromInventoryProducts converts a slice of product entities.
func FromInventoryProducts(items []inventory.Product) []InventoryProductResponse {
	out := make([]InventoryProductResponse, len(items))
	for i := range items {
		out[i] = FromInventoryProduct(&items[i])
	}
	return out
}

// CreateInventoryOrderRequest for opening an inventory order, optionally
// with initial line items.
type CreateInventoryOrderRequest struct {
	Products []InventoryProductRequest `json:"products"`
}

// InventoryOrderResponse contains inventory order fields.
type InventoryOrderResponse struct {
	ID          string                     `json:"id"`
	Version     int                        `json:"version"`
	StoreID     string                     `json:"store_id"`
	Inventories []string                   `json:"inventories"`
	Products    []InventoryProductResponse `json:"products,omitempty"`
}

// FromInventoryOrder creates a response from an order entity, attaching
// line items when supplied.
func FromInventoryOrder(o *receiving.Order, items []inventory.Product) InventoryOrderResponse {
	resp := InventoryOrderResponse{
		ID:          o.ID.String(),
		Version:     o.Version,
		StoreID:     o.StoreID.String(),
		Inventories: idStrings(o.Inventories),
	}
	if items != nil {
		resp.Products = FromInventoryProducts(items)
	}
	return resp
}
