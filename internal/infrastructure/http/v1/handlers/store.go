package handlers

import (
	"github.com/gin-gonic/gin"

	"storechain/internal/domain/store"
	"storechain/internal/infrastructure/http/v1/dto"
)

// StoreHandler handles store management endpoints.
type StoreHandler struct {
	*BaseHandler
	service *store.Service
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(service *store.Service) *StoreHandler {
	return &StoreHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /api/store
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	st := store.New(req.Name, req.StoreNumber, req.Address)
	if err := h.service.Create(c.Request.Context(), st); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromStore(st))
}

// Get handles GET /api/store/:storeID
func (h *StoreHandler) Get(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	st, err := h.service.GetByID(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStore(st))
}

// List handles GET /api/store
func (h *StoreHandler) List(c *gin.Context) {
	ids, err := h.service.ListIDs(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewIDListResponse(ids))
}

// Update handles PUT /api/store/:storeID
func (h *StoreHandler) Update(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	var req dto.UpdateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	st, err := h.service.GetByID(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	st.Name = req.Name
	st.StoreNumber = req.StoreNumber
	st.Address = req.Address
	if err := h.service.Update(c.Request.Context(), st); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStore(st))
}

// Delete handles DELETE /api/store/:storeID
// Removes the store and everything it owns.
func (h *StoreHandler) Delete(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), storeID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
