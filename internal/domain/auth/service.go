package auth

import (
	"context"
	"time"

	"storechain/internal/core/apperror"
	appctx "storechain/internal/core/context"
	"storechain/internal/core/id"
	"storechain/internal/domain/customer"
	"storechain/internal/domain/employee"
	"storechain/pkg/logger"
)

// CustomerAccounts looks customers up by login name.
type CustomerAccounts interface {
	GetByUsername(ctx context.Context, username string) (*customer.Customer, error)
}

// EmployeeAccounts looks employees up by login name.
type EmployeeAccounts interface {
	GetByUsername(ctx context.Context, username string) (*employee.Employee, error)
}

// Token is an issued bearer token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Service authenticates customers and employees against their stored
// bcrypt hashes and issues bearer tokens.
type Service struct {
	customers  CustomerAccounts
	employees  EmployeeAccounts
	hasher     *BcryptHasher
	jwtService *JWTService
}

// NewService creates a new auth service.
func NewService(customers CustomerAccounts, employees EmployeeAccounts, hasher *BcryptHasher, jwtService *JWTService) *Service {
	return &Service{
		customers:  customers,
		employees:  employees,
		hasher:     hasher,
		jwtService: jwtService,
	}
}

// LoginCustomer checks customer credentials and issues a token. A missing
// account and a wrong password both map to the same Unauthorized error.
func (s *Service) LoginCustomer(ctx context.Context, username, password string) (*Token, error) {
	c, err := s.customers.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !s.hasher.Compare(c.PasswordHash, password) {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.issue(&appctx.UserContext{
		UserID:   c.ID.String(),
		Kind:     appctx.KindCustomer,
		Username: c.Username,
		Email:    c.Email,
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer logged in", "customer_id", c.ID)
	return token, nil
}

// LoginEmployee checks employee credentials and issues a token carrying
// the role flags the pipeline guards check.
func (s *Service) LoginEmployee(ctx context.Context, username, password string) (*Token, error) {
	e, err := s.employees.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !s.hasher.Compare(e.PasswordHash, password) {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.issue(&appctx.UserContext{
		UserID:    e.ID.String(),
		Kind:      appctx.KindEmployee,
		Username:  e.Username,
		Email:     e.Email,
		Admin:     e.Admin,
		Shipping:  e.Shipping,
		Receiving: e.Receiving,
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "employee logged in", "employee_id", e.ID)
	return token, nil
}

// IssueFor issues a token for a freshly created principal, used by the
// signup handlers so a new account is logged in immediately.
func (s *Service) IssueFor(ctx context.Context, userID id.ID, kind, username, email string, admin, shipping, receiving bool) (*Token, error) {
	return s.issue(&appctx.UserContext{
		UserID:    userID.String(),
		Kind:      kind,
		Username:  username,
		Email:     email,
		Admin:     admin,
		Shipping:  shipping,
		Receiving: receiving,
	})
}

func (s *Service) issue(user *appctx.UserContext) (*Token, error) {
	access, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &Token{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
