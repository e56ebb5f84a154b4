package context

import (
	"context"
)

// Principal kinds carried in tokens.
const (
	KindCustomer = "customer"
	KindEmployee = "employee"
)

// UserContext contains authenticated principal information.
// A principal is either a customer or an employee; the role flags are
// only meaningful for employees.
type UserContext struct {
	UserID    string
	Kind      string
	Username  string
	Email     string
	Admin     bool
	Shipping  bool
	Receiving bool
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns the principal id from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// IsEmployee reports whether the context principal is an employee.
func IsEmployee(ctx context.Context) bool {
	u := GetUser(ctx)
	return u != nil && u.Kind == KindEmployee
}
