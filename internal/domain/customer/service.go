package customer

import (
	"context"
	"fmt"
	"strings"

	"storechain/internal/core/apperror"
	"storechain/internal/core/id"
	"storechain/internal/core/tx"
	"storechain/pkg/logger"
)

// Service manages customer accounts.
type Service struct {
	repo      Repository
	hasher    PasswordHasher
	txManager tx.Manager
}

// NewService creates a new customer service.
func NewService(repo Repository, hasher PasswordHasher, txManager tx.Manager) *Service {
	return &Service{repo: repo, hasher: hasher, txManager: txManager}
}

// Create registers a customer, hashing the supplied password.
func (s *Service) Create(ctx context.Context, customer *Customer, password string) (*Customer, error) {
	if customer == nil {
		return nil, apperror.NewValidation("customer is required")
	}
	customer.Normalize()
	if err := customer.Validate(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperror.NewValidation("password is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	customer.PasswordHash = hash

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByUsername(ctx, customer.Username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("customer", "username", customer.Username)
		}
		return s.repo.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer created", "id", customer.ID, "username", customer.Username)
	return customer, nil
}

// GetByID retrieves a customer.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// Update applies profile changes. Password and order sets are managed
// through their own operations.
func (s *Service) Update(ctx context.Context, customer *Customer) (*Customer, error) {
	if customer == nil {
		return nil, apperror.NewValidation("customer is required")
	}
	customer.Normalize()
	if err := customer.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, customer.ID)
		if err != nil {
			return err
		}
		customer.PasswordHash = current.PasswordHash
		customer.CurrentOrders = current.CurrentOrders
		customer.PastOrders = current.PastOrders
		customer.SetVersion(current.Version)
		return s.repo.Update(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer updated", "id", customer.ID)
	return customer, nil
}

// Delete removes a customer account.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, customerID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, customerID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "customer deleted", "id", customerID)
	return nil
}

// GetShippingDefaults returns the profile name and address used to default
// the shipping fields of a new cart order.
func (s *Service) GetShippingDefaults(ctx context.Context, customerID id.ID) (string, string, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return "", "", err
	}
	return c.Name, c.Address, nil
}

// AppendCurrentOrder records a newly opened cart order on the customer.
func (s *Service) AppendCurrentOrder(ctx context.Context, customerID, orderID id.ID) error {
	return s.repo.AppendCurrentOrder(ctx, customerID, orderID)
}

// RemoveCurrentOrder splices a deleted cart order out of the current set.
func (s *Service) RemoveCurrentOrder(ctx context.Context, customerID, orderID id.ID) error {
	return s.repo.RemoveCurrentOrder(ctx, customerID, orderID)
}

// MoveOrderToPast moves a completed order from current to past.
func (s *Service) MoveOrderToPast(ctx context.Context, customerID, orderID id.ID) error {
	return s.repo.MoveOrderToPast(ctx, customerID, orderID)
}

// ListIDs returns ids of every customer.
func (s *Service) ListIDs(ctx context.Context) ([]id.ID, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperror.NewEmptyCollection("customers")
	}
	return ids, nil
}
