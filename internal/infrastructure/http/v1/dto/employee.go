package dto

import (
	"storechain/internal/domain/employee"
)

// SignupEmployeeRequest hires an employee into a store.
type SignupEmployeeRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Name      string `json:"name" binding:"required"`
	Admin     bool   `json:"admin"`
	Shipping  bool   `json:"shipping"`
	Receiving bool   `json:"receiving"`
}

// ToEmployee converts the request into an employee entity. Role
// normalization runs on the entity afterwards.
func (r SignupEmployeeRequest) ToEmployee() *employee.Employee {
	return &employee.Employee{
		Username:  r.Username,
		Email:     r.Email,
		Name:      r.Name,
		Admin:     r.Admin,
		Shipping:  r.Shipping,
		Receiving: r.Receiving,
	}
}

// UpdateEmployeeRequest for staff record changes.
type UpdateEmployeeRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name" binding:"required"`
	Admin     bool   `json:"admin"`
	Shipping  bool   `json:"shipping"`
	Receiving bool   `json:"receiving"`
}

// EmployeeResponse contains employee fields.
type EmployeeResponse struct {
	ID        string  `json:"id"`
	Version   int     `json:"version"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	StoreID   *string `json:"store_id,omitempty"`
	Admin     bool    `json:"admin"`
	Shipping  bool    `json:"shipping"`
	Receiving bool    `json:"receiving"`
}

// FromEmployee creates EmployeeResponse from an employee entity.
func FromEmployee(e *employee.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID.String(),
		Version:   e.Version,
		Username:  e.Username,
		Email:     e.Email,
		Name:      e.Name,
		Admin:     e.Admin,
		Shipping:  e.Shipping,
		Receiving: e.Receiving,
	}
	if e.StoreID != nil {
		s := e.StoreID.String()
		resp.StoreID = &s
	}
	return resp
}

// FromEmployees converts a slice of employee entities.
func FromEmployees(items []employee.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(items))
	for i := range items {
		out[i] = FromEmployee(&items[i])
	}
	return out
}
