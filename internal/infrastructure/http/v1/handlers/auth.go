package handlers

import (
	"github.com/gin-gonic/gin"

	"storechain/internal/core/apperror"
	appctx "storechain/internal/core/context"
	"storechain/internal/domain/auth"
	"storechain/internal/domain/customer"
	"storechain/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles signup and login for both principal kinds.
// Login reads credentials from HTTP basic auth.
type AuthHandler struct {
	*BaseHandler
	authService     *auth.Service
	customerService *customer.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *auth.Service, customerService *customer.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler:     NewBaseHandler(),
		authService:     authService,
		customerService: customerService,
	}
}

// SignupCustomer handles POST /api/signup
// Registers a customer and logs the new account in immediately.
func (h *AuthHandler) SignupCustomer(c *gin.Context) {
	var req dto.SignupCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.customerService.Create(c.Request.Context(), req.ToCustomer(), req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	token, err := h.authService.IssueFor(c.Request.Context(),
		created.ID, appctx.KindCustomer, created.Username, created.Email,
		false, false, false)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.SignupResponse{
		ID:    created.ID.String(),
		Token: dto.FromToken(token),
	})
}

// LoginCustomer handles GET /api/login
func (h *AuthHandler) LoginCustomer(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		h.Error(c, apperror.NewUnauthorized("basic auth credentials required"))
		return
	}

	token, err := h.authService.LoginCustomer(c.Request.Context(), username, password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromToken(token))
}

// LoginEmployee handles GET /api/employee/login
func (h *AuthHandler) LoginEmployee(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		h.Error(c, apperror.NewUnauthorized("basic auth credentials required"))
		return
	}

	token, err := h.authService.LoginEmployee(c.Request.Context(), username, password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromToken(token))
}
