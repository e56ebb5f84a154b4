package handlers

import (
	"github.com/gin-gonic/gin"

	appctx "storechain/internal/core/context"
	"storechain/internal/domain/auth"
	"storechain/internal/domain/employee"
	"storechain/internal/infrastructure/http/v1/dto"
)

// EmployeeHandler handles store staff endpoints.
type EmployeeHandler struct {
	*BaseHandler
	service     *employee.Service
	authService *auth.Service
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(service *employee.Service, authService *auth.Service) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		authService: authService,
	}
}

// Create handles POST /api/store/:storeID/employee
// Hires an employee and logs the new account in immediately.
func (h *EmployeeHandler) Create(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	var req dto.SignupEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), storeID, req.ToEmployee(), req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	token, err := h.authService.IssueFor(c.Request.Context(),
		created.ID, appctx.KindEmployee, created.Username, created.Email,
		created.Admin, created.Shipping, created.Receiving)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.SignupResponse{
		ID:    created.ID.String(),
		Token: dto.FromToken(token),
	})
}

// Get handles GET /api/employees/:employeeID
func (h *EmployeeHandler) Get(c *gin.Context) {
	employeeID, ok := h.ParseID(c, "employeeID")
	if !ok {
		return
	}

	emp, err := h.service.GetByID(c.Request.Context(), employeeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromEmployee(emp))
}

// ListByStore handles GET /api/store/:storeID/employee
func (h *EmployeeHandler) ListByStore(c *gin.Context) {
	storeID, ok := h.ParseID(c, "storeID")
	if !ok {
		return
	}

	staff, err := h.service.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromEmployees(staff))
}

// Update handles PUT /api/employees/:employeeID
func (h *EmployeeHandler) Update(c *gin.Context) {
	employeeID, ok := h.ParseID(c, "employeeID")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	emp, err := h.service.GetByID(c.Request.Context(), employeeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	emp.Username = req.Username
	emp.Email = req.Email
	emp.Name = req.Name
	emp.Admin = req.Admin
	emp.Shipping = req.Shipping
	emp.Receiving = req.Receiving

	updated, err := h.service.Update(c.Request.Context(), emp)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromEmployee(updated))
}

// Delete handles DELETE /api/employees/:employeeID
func (h *EmployeeHandler) Delete(c *gin.Context) {
	employeeID, ok := h.ParseID(c, "employeeID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), employeeID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
