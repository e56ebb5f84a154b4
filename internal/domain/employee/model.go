package employee

import (
	"context"
	"strings"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
)

// Employee is a member of store staff. Role flags gate the order
// pipelines: shipping for cart fulfillment, receiving for inventory
// intake, admin for both plus store management.
type Employee struct {
	entity.Record

	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Name         string `db:"name" json:"name"`
	StoreID      *id.ID `db:"store_id" json:"store_id,omitempty"`
	Admin        bool   `db:"admin" json:"admin"`
	Shipping     bool   `db:"shipping" json:"shipping"`
	Receiving    bool   `db:"receiving" json:"receiving"`
}

// New creates an employee assigned to a store.
func New(username, email, name string, storeID id.ID) *Employee {
	e := &Employee{
		Record:   entity.NewRecord(),
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Name:     strings.TrimSpace(name),
		StoreID:  &storeID,
	}
	e.Normalize()
	return e
}

// Normalize defaults the username to the email when blank and widens an
// admin to both pipeline roles.
func (e *Employee) Normalize() {
	if strings.TrimSpace(e.Username) == "" {
		e.Username = e.Email
	}
	if e.Admin {
		e.Shipping = true
		e.Receiving = true
	}
}

func (e *Employee) Validate(_ context.Context) error {
	if strings.TrimSpace(e.Email) == "" {
		return apperror.NewValidation("email is required")
	}
	if strings.TrimSpace(e.Username) == "" {
		return apperror.NewValidation("username is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return apperror.NewValidation("name is required")
	}
	return nil
}
