package handlers

import (
	"github.com/gin-gonic/gin"

	"storechain/internal/domain/cart"
	"storechain/internal/infrastructure/http/v1/dto"
)

// CartOrderHandler handles the cart fulfillment pipeline endpoints.
type CartOrderHandler struct {
	*BaseHandler
	service *cart.Service
}

// NewCartOrderHandler creates a new cart order handler.
func NewCartOrderHandler(service *cart.Service) *CartOrderHandler {
	return &CartOrderHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /api/customer/:customerID/store/:storeID/order
func (h *CartOrderHandler) Create(c *gin.Context) {
	customerID, ok := h.ParseID(c, "customerID")
	if !ok {
		return
	}
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	var req dto.CreateCartOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), customerID, storeID, req.ToOrder())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromCartOrder(order, nil))
}

// Get handles GET /api/orders/:cartOrderID
func (h *CartOrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "cartOrderID")
	if !ok {
		return
	}

	order, items, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCartOrder(order, items))
}

// AddProduct handles POST /api/orders/:cartOrderID/store/:storeID/cart
// Reserves shelf stock and records it as a cart line item.
func (h *CartOrderHandler) AddProduct(c *gin.Context) {
	orderID, ok := h.ParseID(c, "cartOrderID")
	if !ok {
		return
	}
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	var req dto.CartProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.AddLineItem(c.Request.Context(), orderID, storeID, req.ToProduct())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromCartProduct(item))
}

// Update handles PUT /api/orders/:cartOrderID
func (h *CartOrderHandler) Update(c *gin.Context) {
	orderID, ok := h.ParseID(c, "cartOrderID")
	if !ok {
		return
	}

	var req dto.UpdateCartOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.UpdateShipping(c.Request.Context(), orderID, req.ShippingName, req.ShippingAddress)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCartOrder(order, nil))
}

// Complete handles POST /api/orders/:cartOrderID/complete
func (h *CartOrderHandler) Complete(c *gin.Context) {
	orderID, ok := h.ParseID(c, "cartOrderID")
	if !ok {
		return
	}

	order, err := h.service.CompleteOrder(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCartOrder(order, nil))
}

// Delete handles DELETE /api/orders/:cartOrderID
func (h *CartOrderHandler) Delete(c *gin.Context) {
	orderID, ok := h.ParseID(c, "cartOrderID")
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), orderID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
