package employee

import (
	"context"
	"fmt"
	"strings"

	"storechain/internal/core/apperror"
	"storechain/internal/core/id"
	"storechain/internal/core/tx"
	"storechain/pkg/logger"
)

// Service manages store staff.
type Service struct {
	repo      Repository
	stores    StoreStaff
	hasher    PasswordHasher
	txManager tx.Manager
}

// NewService creates a new employee service.
func NewService(repo Repository, stores StoreStaff, hasher PasswordHasher, txManager tx.Manager) *Service {
	return &Service{repo: repo, stores: stores, hasher: hasher, txManager: txManager}
}

// Create hires an employee into a store: the record is created and the
// employee id is appended to the store's staff set in one transaction.
func (s *Service) Create(ctx context.Context, storeID id.ID, employee *Employee, password string) (*Employee, error) {
	if employee == nil {
		return nil, apperror.NewValidation("employee is required")
	}
	employee.StoreID = &storeID
	employee.Normalize()
	if err := employee.Validate(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperror.NewValidation("password is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	employee.PasswordHash = hash

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.stores.Exists(ctx, storeID)
		if err != nil {
			return fmt.Errorf("check store: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("store", storeID.String())
		}

		exists, err := s.repo.ExistsByUsername(ctx, employee.Username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("employee", "username", employee.Username)
		}

		if err := s.repo.Create(ctx, employee); err != nil {
			return err
		}
		return s.stores.AppendEmployee(ctx, storeID, employee.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "employee created",
		"id", employee.ID, "username", employee.Username, "store_id", storeID)
	return employee, nil
}

// GetByID retrieves an employee.
func (s *Service) GetByID(ctx context.Context, employeeID id.ID) (*Employee, error) {
	return s.repo.GetByID(ctx, employeeID)
}

// Update applies changes to an employee record, re-running role
// normalization. Password and store assignment are untouched.
func (s *Service) Update(ctx context.Context, employee *Employee) (*Employee, error) {
	if employee == nil {
		return nil, apperror.NewValidation("employee is required")
	}
	employee.Normalize()
	if err := employee.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, employee.ID)
		if err != nil {
			return err
		}
		employee.PasswordHash = current.PasswordHash
		employee.StoreID = current.StoreID
		employee.SetVersion(current.Version)
		return s.repo.Update(ctx, employee)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "employee updated", "id", employee.ID)
	return employee, nil
}

// Delete fires an employee: the record is removed and the id is spliced
// out of the store's staff set.
func (s *Service) Delete(ctx context.Context, employeeID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		employee, err := s.repo.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, employeeID); err != nil {
			return err
		}
		if employee.StoreID != nil {
			return s.stores.RemoveEmployee(ctx, *employee.StoreID, employeeID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "employee deleted", "id", employeeID)
	return nil
}

// ListByStore returns all staff of a store.
func (s *Service) ListByStore(ctx context.Context, storeID id.ID) ([]Employee, error) {
	return s.repo.ListByStore(ctx, storeID)
}

// ListIDs returns ids of every employee.
func (s *Service) ListIDs(ctx context.Context) ([]id.ID, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperror.NewEmptyCollection("employees")
	}
	return ids, nil
}
