package handlers

import (
	"github.com/gin-gonic/gin"

	"storechain/internal/domain/customer"
	"storechain/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles customer account endpoints.
type CustomerHandler struct {
	*BaseHandler
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service *customer.Service) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Get handles GET /api/customer/:customerID
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := h.ParseID(c, "customerID")
	if !ok {
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCustomer(cust))
}

// List handles GET /api/customer
func (h *CustomerHandler) List(c *gin.Context) {
	ids, err := h.service.ListIDs(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewIDListResponse(ids))
}

// Update handles PUT /api/customer/:customerID
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, ok := h.ParseID(c, "customerID")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	cust.Username = req.Username
	cust.Email = req.Email
	cust.Name = req.Name
	cust.Address = req.Address

	updated, err := h.service.Update(c.Request.Context(), cust)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCustomer(updated))
}

// Delete handles DELETE /api/customer/:customerID
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, ok := h.ParseID(c, "customerID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), customerID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
