package handlers

import (
	"github.com/gin-gonic/gin"

	"storechain/internal/domain/inventory"
	"storechain/internal/domain/receiving"
	"storechain/internal/infrastructure/http/v1/dto"
)

// InventoryOrderHandler handles the receiving pipeline endpoints.
type InventoryOrderHandler struct {
	*BaseHandler
	service *receiving.Service
}

// NewInventoryOrderHandler creates a new inventory order handler.
func NewInventoryOrderHandler(service *receiving.Service) *InventoryOrderHandler {
	return &InventoryOrderHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /api/store/:storeID/inventory-order
func (h *InventoryOrderHandler) Create(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	var req dto.CreateInventoryOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items := make([]inventory.Product, len(req.Products))
	for i, p := range req.Products {
		items[i] = *p.ToProduct()
	}

	order, err := h.service.Create(c.Request.Context(), storeID, items)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromInventoryOrder(order, nil))
}

// Get handles GET /api/inventories/:inventoryOrderID
func (h *InventoryOrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "inventoryOrderID")
	if !ok {
		return
	}

	order, items, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInventoryOrder(order, items))
}

// ListByStore handles GET /api/store/:storeID/inventory-order
func (h *InventoryOrderHandler) ListByStore(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	ids, err := h.service.ListIDsByStore(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewIDListResponse(ids))
}

// AddProduct handles POST /api/inventories/:inventoryOrderID/product
func (h *InventoryOrderHandler) AddProduct(c *gin.Context) {
	orderID, ok := h.ParseID(c, "inventoryOrderID")
	if !ok {
		return
	}

	var req dto.InventoryProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.AddLineItem(c.Request.Context(), orderID, req.ToProduct())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromInventoryProduct(item))
}

// Complete handles POST /api/inventories/:inventoryOrderID/complete
// Drains the order onto the store's shelf and removes it.
func (h *InventoryOrderHandler) Complete(c *gin.Context) {
	orderID, ok := h.ParseID(c, "inventoryOrderID")
	if !ok {
		return
	}

	if err := h.service.CompleteNextLineItem(c.Request.Context(), orderID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "inventory order completed")
}

// Delete handles DELETE /api/inventories/:inventoryOrderID
func (h *InventoryOrderHandler) Delete(c *gin.Context) {
	orderID, ok := h.ParseID(c, "inventoryOrderID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), orderID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveProduct handles DELETE /api/inventory-products/:productID
// Removes one unshelved line item.
func (h *InventoryOrderHandler) RemoveProduct(c *gin.Context) {
	productID, ok := h.ParseID(c, "productID")
	if !ok {
		return
	}

	if err := h.service.RemoveLineItem(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
