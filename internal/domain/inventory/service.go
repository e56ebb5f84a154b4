package inventory

import (
	"context"
	"fmt"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
	"storechain/internal/core/tx"
	"storechain/pkg/logger"
)

// Service enforces the stock invariants: an on-shelf quantity never goes
// negative, and a SKU has at most one on-shelf record per store.
type Service struct {
	repo      Repository
	stores    StoreStock
	txManager tx.Manager
}

// NewService creates a new inventory accounting service.
func NewService(repo Repository, stores StoreStock, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		stores:    stores,
		txManager: txManager,
	}
}

// MergeOrCreateShelfStock moves candidate onto the store's shelf.
//
// If an on-shelf record with the same SKU already exists, the candidate's
// quantity is added to it and the candidate's own record (if persisted) is
// deleted. Otherwise the candidate itself is claimed for the store and its
// id is appended to the store's current set.
//
// Returns the record that now carries the stock.
func (s *Service) MergeOrCreateShelfStock(ctx context.Context, storeID id.ID, candidate *Product) (*Product, error) {
	if candidate == nil {
		return nil, apperror.NewValidation("product is required")
	}
	if err := candidate.Validate(ctx); err != nil {
		return nil, err
	}

	var result *Product
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetOnShelfForUpdate(ctx, storeID, candidate.Name, candidate.Description)
		switch {
		case err == nil:
			existing.Quantity += candidate.Quantity
			if err := s.repo.Update(ctx, existing); err != nil {
				return fmt.Errorf("merge shelf stock: %w", err)
			}
			// The candidate's own record is consumed by the merge.
			if !id.IsNil(candidate.ID) && candidate.ID != existing.ID {
				if err := s.repo.Delete(ctx, candidate.ID); err != nil {
					return fmt.Errorf("retire merged line item: %w", err)
				}
			}
			result = existing
			return nil

		case apperror.IsNotFound(err):
			ok, err := s.stores.Exists(ctx, storeID)
			if err != nil {
				return fmt.Errorf("check store: %w", err)
			}
			if !ok {
				return apperror.NewNotFound("store", storeID.String())
			}

			sid := storeID
			candidate.StoreID = &sid
			candidate.OrderID = nil
			if id.IsNil(candidate.ID) {
				candidate.Base = entity.NewBase()
				if err := s.repo.Create(ctx, candidate); err != nil {
					return fmt.Errorf("create shelf stock: %w", err)
				}
			} else {
				if err := s.repo.Update(ctx, candidate); err != nil {
					return fmt.Errorf("claim shelf stock: %w", err)
				}
			}
			if err := s.stores.AppendCurrent(ctx, storeID, candidate.ID); err != nil {
				return fmt.Errorf("register shelf stock: %w", err)
			}
			result = candidate
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "shelf stock updated",
		"store_id", storeID,
		"product_id", result.ID,
		"name", result.Name,
		"quantity", result.Quantity,
	)
	return result, nil
}

// ReserveStock debits qty from a SKU's on-shelf quantity.
//
// The decrement is a single conditional update (quantity >= qty), so two
// concurrent reservations can never over-sell. When the update matches no
// row, the SKU is re-read inside the same transaction to report the precise
// failure: absent record, shelf at zero, or not enough stock.
func (s *Service) ReserveStock(ctx context.Context, storeID id.ID, name, description string, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive").WithDetail("quantity", qty)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.repo.DecrementOnShelf(ctx, storeID, name, description, qty)
		if err != nil {
			return fmt.Errorf("decrement shelf stock: %w", err)
		}
		if ok {
			logger.Debug(ctx, "stock reserved",
				"store_id", storeID, "name", name, "quantity", qty)
			return nil
		}

		existing, err := s.repo.GetOnShelf(ctx, storeID, name, description)
		if err != nil {
			return err
		}
		if existing.Quantity == 0 {
			return apperror.NewOutOfStock(name)
		}
		return apperror.NewInsufficientStock(name, qty, existing.Quantity)
	})
}

// Restock credits qty back to a SKU's on-shelf quantity. Fails with a
// not-found error when the SKU has no on-shelf record.
func (s *Service) Restock(ctx context.Context, storeID id.ID, name, description string, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive").WithDetail("quantity", qty)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.repo.IncrementOnShelf(ctx, storeID, name, description, qty)
		if err != nil {
			return fmt.Errorf("credit shelf stock: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("inventory product", name)
		}
		return nil
	})
}

// RemoveShelfStock takes a product off a store's shelf entirely: the record
// is deleted and its id is spliced out of the store's current set.
func (s *Service) RemoveShelfStock(ctx context.Context, storeID, productID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p.StoreID == nil || *p.StoreID != storeID {
			return apperror.NewNotFound("inventory product", productID.String())
		}

		if err := s.repo.Delete(ctx, p.ID); err != nil {
			return err
		}
		return s.stores.RemoveCurrent(ctx, storeID, p.ID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "shelf stock removed", "store_id", storeID, "product_id", productID)
	return nil
}

// GetByID retrieves a product record.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// ListShelf returns the on-shelf stock of a store.
func (s *Service) ListShelf(ctx context.Context, storeID id.ID) ([]Product, error) {
	ok, err := s.stores.Exists(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewNotFound("store", storeID.String())
	}
	return s.repo.ListByStore(ctx, storeID)
}

// ListIDs returns the ids of all product records.
// Fails with an empty-collection error when none exist (legacy wire contract).
func (s *Service) ListIDs(ctx context.Context) ([]id.ID, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperror.NewEmptyCollection("inventory product")
	}
	return ids, nil
}
