package handlers

import (
	"github.com/gin-gonic/gin"

	"storechain/internal/domain/inventory"
	"storechain/internal/infrastructure/http/v1/dto"
)

// InventoryProductHandler handles shelf-stock read endpoints.
type InventoryProductHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryProductHandler creates a new inventory product handler.
func NewInventoryProductHandler(service *inventory.Service) *InventoryProductHandler {
	return &InventoryProductHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Get handles GET /api/inventory-products/:productID
func (h *InventoryProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "productID")
	if !ok {
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInventoryProduct(product))
}

// List handles GET /api/inventory-products
func (h *InventoryProductHandler) List(c *gin.Context) {
	ids, err := h.service.ListIDs(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewIDListResponse(ids))
}

// RemoveFromShelf handles DELETE /api/store/:storeID/shelf/:productID
// Takes the product off the shelf and out of the store's current set.
func (h *InventoryProductHandler) RemoveFromShelf(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}
	productID, ok := h.ParseID(c, "productID")
	if !ok {
		return
	}

	if err := h.service.RemoveShelfStock(c.Request.Context(), storeID, productID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Shelf handles GET /api/store/:storeID/shelf
// Returns the store's current on-shelf stock.
func (h *InventoryProductHandler) Shelf(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	products, err := h.service.ListShelf(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInventoryProducts(products))
}
