package handlers

import (
	"github.com/gin-gonic/gin"

	"storechain/internal/domain/cart"
	"storechain/internal/infrastructure/http/v1/dto"
)

// CartProductHandler handles cart line item endpoints.
type CartProductHandler struct {
	*BaseHandler
	service *cart.Service
}

// NewCartProductHandler creates a new cart product handler.
func NewCartProductHandler(service *cart.Service) *CartProductHandler {
	return &CartProductHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Get handles GET /api/products/:productID
func (h *CartProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "productID")
	if !ok {
		return
	}

	item, err := h.service.GetLineItem(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCartProduct(item))
}

// List handles GET /api/products
func (h *CartProductHandler) List(c *gin.Context) {
	ids, err := h.service.ListLineItemIDs(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewIDListResponse(ids))
}

// UpdateQuantity handles PUT /api/store/:storeID/products/:productID
// A positive delta reserves more shelf stock; a negative one shrinks the
// line without restocking.
func (h *CartProductHandler) UpdateQuantity(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}
	productID, ok := h.ParseID(c, "productID")
	if !ok {
		return
	}

	var req dto.UpdateCartProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.UpdateLineItemQuantity(c.Request.Context(), productID, storeID, req.Delta)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCartProduct(item))
}

// Delete handles DELETE /api/products/:productID
func (h *CartProductHandler) Delete(c *gin.Context) {
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
