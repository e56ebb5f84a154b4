package dto

import (
	"storechain/internal/domain/customer"
)

// SignupCustomerRequest registers a customer account.
type SignupCustomerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// ToCustomer converts the request into a customer entity.
func (r SignupCustomerRequest) ToCustomer() *customer.Customer {
	return customer.New(r.Username, r.Email, r.Name, r.Address)
}

// UpdateCustomerRequest for profile changes.
type UpdateCustomerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// CustomerResponse contains customer fields. The password hash never
// leaves the server.
type CustomerResponse struct {
	ID            string   `json:"id"`
	Version       int      `json:"version"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	CurrentOrders []string `json:"current_orders"`
	PastOrders    []string `json:"past_orders"`
}

// FromCustomer creates CustomerResponse from a customer entity.
func FromCustomer(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID.String(),
		Version:       c.Version,
		Username:      c.Username,
		Email:         c.Email,
		Name:          c.Name,
		Address:       c.Address,
		CurrentOrders: idStrings(c.CurrentOrders),
		PastOrders:    idStrings(c.PastOrders),
	}
}
