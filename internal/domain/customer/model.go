package customer

import (
	"context"
	"strings"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
)

// Customer is a registered shopper. Current and past cart-order ids are
// kept as ordered sets on the record, the current set holding open carts.
type Customer struct {
	entity.Record

	Username      string  `db:"username" json:"username"`
	Email         string  `db:"email" json:"email"`
	PasswordHash  string  `db:"password_hash" json:"-"`
	Name          string  `db:"name" json:"name"`
	Address       string  `db:"address" json:"address"`
	CurrentOrders []id.ID `db:"current_orders" json:"current_orders"`
	PastOrders    []id.ID `db:"past_orders" json:"past_orders"`
}

// New creates a customer. The password hash is set separately by the
// service after hashing.
func New(username, email, name, address string) *Customer {
	c := &Customer{
		Record:        entity.NewRecord(),
		Username:      strings.TrimSpace(username),
		Email:         strings.TrimSpace(email),
		Name:          strings.TrimSpace(name),
		Address:       strings.TrimSpace(address),
		CurrentOrders: []id.ID{},
		PastOrders:    []id.ID{},
	}
	c.Normalize()
	return c
}

// Normalize defaults the username to the email when blank.
func (c *Customer) Normalize() {
	if strings.TrimSpace(c.Username) == "" {
		c.Username = c.Email
	}
}

func (c *Customer) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Email) == "" {
		return apperror.NewValidation("email is required")
	}
	if strings.TrimSpace(c.Username) == "" {
		return apperror.NewValidation("username is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required")
	}
	if strings.TrimSpace(c.Address) == "" {
		return apperror.NewValidation("address is required")
	}
	return nil
}
