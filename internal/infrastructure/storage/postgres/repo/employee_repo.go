package repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"storechain/internal/core/id"
	"storechain/internal/domain/employee"
	"storechain/internal/infrastructure/storage/postgres"
)

// EmployeeRepo persists employees.
type EmployeeRepo struct {
	*BaseRepo[employee.Employee]
}

// NewEmployeeRepo creates a new employee repository.
func NewEmployeeRepo(txm *postgres.TxManager) *EmployeeRepo {
	return &EmployeeRepo{
		BaseRepo: NewBaseRepo(txm, "employees", "employee", func() employee.Employee {
			return employee.Employee{}
		}),
	}
}

// GetByUsername retrieves an employee by login name.
func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (*employee.Employee, error) {
	q := r.baseSelect().Where(squirrel.Eq{"username": username})
	return r.getWhere(ctx, q, username)
}

// ExistsByUsername reports whether the login name is taken.
func (r *EmployeeRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.existsWhere(ctx, squirrel.Eq{"username": username})
}

// ListByStore returns the staff of a store, oldest hire first.
func (r *EmployeeRepo) ListByStore(ctx context.Context, storeID id.ID) ([]employee.Employee, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("id")
	return selectWhere(ctx, r.BaseRepo, q)
}

// DeleteByStore removes all staff of a store.
func (r *EmployeeRepo) DeleteByStore(ctx context.Context, storeID id.ID) (int64, error) {
	return r.deleteWhere(ctx, squirrel.Eq{"store_id": storeID})
}
