package receiving

import (
	"context"
	"fmt"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
	"storechain/internal/core/tx"
	"storechain/internal/domain/inventory"
	"storechain/pkg/logger"
)

// Service runs the receiving pipeline: inventory orders are created against
// a store, accumulate line items one at a time, and are drained head-first
// into the store's shelf stock.
type Service struct {
	orders     Repository
	lineItems  LineItems
	stores     StoreSets
	accounting Accounting
	txManager  tx.Manager
}

// NewService creates a new receiving service.
func NewService(
	orders Repository,
	lineItems LineItems,
	stores StoreSets,
	accounting Accounting,
	txManager tx.Manager,
) *Service {
	return &Service{
		orders:     orders,
		lineItems:  lineItems,
		stores:     stores,
		accounting: accounting,
		txManager:  txManager,
	}
}

// Create creates an inventory order for a store, optionally with initial
// line items, and registers it in the store's incoming set.
func (s *Service) Create(ctx context.Context, storeID id.ID, items []inventory.Product) (*Order, error) {
	order := NewOrder(storeID)
	if err := order.Validate(ctx); err != nil {
		return nil, err
	}
	for i := range items {
		if err := items[i].Validate(ctx); err != nil {
			return nil, err
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.stores.Exists(ctx, storeID)
		if err != nil {
			return fmt.Errorf("check store: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("store", storeID.String())
		}

		if err := s.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i := range items {
			item := items[i]
			item.Base = entity.NewBase()
			oid := order.ID
			item.OrderID = &oid
			item.StoreID = nil
			if err := s.lineItems.Create(ctx, &item); err != nil {
				return fmt.Errorf("create line item: %w", err)
			}
			order.Inventories = append(order.Inventories, item.ID)
		}
		if len(items) > 0 {
			if err := s.orders.Update(ctx, order); err != nil {
				return fmt.Errorf("save line items: %w", err)
			}
		}

		return s.stores.AppendIncoming(ctx, storeID, order.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "inventory order created",
		"id", order.ID, "store_id", storeID, "line_items", len(order.Inventories))
	return order, nil
}

// AddLineItem appends one line item to an existing order.
func (s *Service) AddLineItem(ctx context.Context, orderID id.ID, item *inventory.Product) (*inventory.Product, error) {
	if item == nil {
		return nil, apperror.NewValidation("product is required")
	}
	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		item.Base = entity.NewBase()
		oid := order.ID
		item.OrderID = &oid
		item.StoreID = nil
		if err := s.lineItems.Create(ctx, item); err != nil {
			return fmt.Errorf("create line item: %w", err)
		}

		order.Inventories = append(order.Inventories, item.ID)
		return s.orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "line item added", "order_id", orderID, "product_id", item.ID)
	return item, nil
}

// RemoveLineItem deletes one unshelved line item and splices it out of its
// order's list.
func (s *Service) RemoveLineItem(ctx context.Context, productID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.lineItems.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if item.OrderID == nil {
			return apperror.NewValidation("product is not an order line item").
				WithDetail("id", productID.String())
		}

		if err := s.lineItems.Delete(ctx, item.ID); err != nil {
			return err
		}

		order, err := s.orders.GetForUpdate(ctx, *item.OrderID)
		if err != nil {
			return err
		}
		order.Inventories = removeID(order.Inventories, item.ID)
		return s.orders.Update(ctx, order)
	})
}

// CompleteNextLineItem shelves the order's line items into store stock,
// head-first, and deletes the order once drained.
//
// The drain is an explicit loop, not recursion, and runs inside a single
// transaction: a failure partway through rolls everything back, leaving the
// order listing exactly the unprocessed remainder.
func (s *Service) CompleteNextLineItem(ctx context.Context, orderID id.ID) error {
	var shelved int

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		ok, err := s.stores.Exists(ctx, order.StoreID)
		if err != nil {
			return fmt.Errorf("check store: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("store", order.StoreID.String())
		}

		if len(order.Inventories) == 0 {
			return apperror.NewEmptyOrder(order.ID.String())
		}

		for len(order.Inventories) > 0 {
			headID := order.Inventories[0]

			item, err := s.lineItems.GetByID(ctx, headID)
			if err != nil {
				return fmt.Errorf("load line item %s: %w", headID, err)
			}

			if _, err := s.accounting.MergeOrCreateShelfStock(ctx, order.StoreID, item); err != nil {
				return fmt.Errorf("shelve line item %s: %w", headID, err)
			}

			order.Inventories = order.Inventories[1:]
			shelved++
		}

		// Drained: retire the order and splice it from the store.
		if err := s.orders.Delete(ctx, order.ID); err != nil {
			return fmt.Errorf("retire order: %w", err)
		}
		return s.stores.RemoveIncoming(ctx, order.StoreID, order.ID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "inventory order drained", "order_id", orderID, "shelved", shelved)
	return nil
}

// Delete cancels an inventory order: remaining line items are deleted and
// the order is spliced out of the store's incoming set. Awaited and atomic.
func (s *Service) Delete(ctx context.Context, orderID id.ID) error {
	var removed int64

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		if removed, err = s.lineItems.DeleteByOrder(ctx, order.ID); err != nil {
			return fmt.Errorf("delete line items: %w", err)
		}

		if err := s.orders.Delete(ctx, order.ID); err != nil {
			return err
		}
		return s.stores.RemoveIncoming(ctx, order.StoreID, order.ID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "inventory order cancelled", "order_id", orderID, "line_items", removed)
	return nil
}

// GetByID retrieves an order with its line items populated.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, []inventory.Product, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.lineItems.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("list line items: %w", err)
	}
	return order, items, nil
}

// ListIDsByStore returns ids of all orders owned by a store.
func (s *Service) ListIDsByStore(ctx context.Context, storeID id.ID) ([]id.ID, error) {
	return s.orders.ListIDsByStore(ctx, storeID)
}

func removeID(ids []id.ID, target id.ID) []id.ID {
	out := ids[:0]
	for _, v := range ids {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
