package cart

import (
	"context"
	"fmt"
	"strings"

	"storechain/internal/core/apperror"
	"storechain/internal/core/entity"
	"storechain/internal/core/id"
	"storechain/internal/core/tx"
	"storechain/pkg/logger"
)

// Service runs the cart fulfillment pipeline. Every line item added to a
// cart order is backed by a shelf-stock reservation made in the same
// transaction, so a committed cart never references stock the store does
// not have.
type Service struct {
	orders     OrderRepository
	products   ProductRepository
	customers  Customers
	stores     StoreSets
	accounting Accounting
	txManager  tx.Manager
}

// NewService creates a new cart service.
func NewService(
	orders OrderRepository,
	products ProductRepository,
	customers Customers,
	stores StoreSets,
	accounting Accounting,
	txManager tx.Manager,
) *Service {
	return &Service{
		orders:     orders,
		products:   products,
		customers:  customers,
		stores:     stores,
		accounting: accounting,
		txManager:  txManager,
	}
}

// CreateOrder opens a cart order for a customer at a store. Shipping name
// and address default to the customer's profile when the draft leaves them
// blank.
func (s *Service) CreateOrder(ctx context.Context, customerID, storeID id.ID, draft *Order) (*Order, error) {
	order := NewOrder(customerID, storeID)
	if draft != nil {
		order.ShippingName = strings.TrimSpace(draft.ShippingName)
		order.ShippingAddress = strings.TrimSpace(draft.ShippingAddress)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.stores.Exists(ctx, storeID)
		if err != nil {
			return fmt.Errorf("check store: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("store", storeID.String())
		}

		if order.ShippingName == "" || order.ShippingAddress == "" {
			name, address, err := s.customers.GetShippingDefaults(ctx, customerID)
			if err != nil {
				return err
			}
			if order.ShippingName == "" {
				order.ShippingName = name
			}
			if order.ShippingAddress == "" {
				order.ShippingAddress = address
			}
		}
		if err := order.Validate(ctx); err != nil {
			return err
		}

		if err := s.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create cart order: %w", err)
		}
		if err := s.customers.AppendCurrentOrder(ctx, customerID, order.ID); err != nil {
			return err
		}
		return s.stores.AppendOutgoing(ctx, storeID, order.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "cart order created",
		"id", order.ID, "customer_id", customerID, "store_id", storeID)
	return order, nil
}

// AddLineItem reserves item.Quantity units of the named product from the
// store's shelf and records the reservation as a cart line item. Stock
// errors from the reservation propagate unchanged.
func (s *Service) AddLineItem(ctx context.Context, orderID, storeID id.ID, item *Product) (*Product, error) {
	if item == nil {
		return nil, apperror.NewValidation("product is required")
	}
	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.accounting.ReserveStock(ctx, storeID, item.Name, item.Description, item.Quantity); err != nil {
			return err
		}

		order, err := s.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		item.Base = entity.NewBase()
		item.OrderID = order.ID
		if err := s.products.Create(ctx, item); err != nil {
			return fmt.Errorf("create line item: %w", err)
		}

		order.Products = append(order.Products, item.ID)
		return s.orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "cart line item added",
		"order_id", orderID, "product_id", item.ID, "quantity", item.Quantity)
	return item, nil
}

// UpdateLineItemQuantity adjusts a cart line by delta units. A positive
// delta reserves exactly the delta from shelf stock; a negative delta only
// shrinks the line, it does not credit the shelf. The resulting quantity
// must stay positive.
func (s *Service) UpdateLineItemQuantity(ctx context.Context, productID, storeID id.ID, delta int64) (*Product, error) {
	if delta == 0 {
		return nil, apperror.NewValidation("quantity delta must be non-zero")
	}

	var item *Product
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		if item.Quantity+delta <= 0 {
			return apperror.NewValidation("quantity must stay positive").
				WithDetail("quantity", item.Quantity).
				WithDetail("delta", delta)
		}

		if delta > 0 {
			if err := s.accounting.ReserveStock(ctx, storeID, item.Name, item.Description, delta); err != nil {
				return err
			}
		}

		item.Quantity += delta
		return s.products.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "cart line item updated",
		"product_id", productID, "delta", delta, "quantity", item.Quantity)
	return item, nil
}

// RemoveLineItem deletes a cart line and splices it out of its order. The
// reserved units stay debited from shelf stock.
func (s *Service) RemoveLineItem(ctx context.Context, productID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		if err := s.products.Delete(ctx, item.ID); err != nil {
			return err
		}

		order, err := s.orders.GetForUpdate(ctx, item.OrderID)
		if err != nil {
			return err
		}
		order.Products = removeID(order.Products, item.ID)
		return s.orders.Update(ctx, order)
	})
}

// UpdateShipping changes the shipping name and address of an open order.
func (s *Service) UpdateShipping(ctx context.Context, orderID id.ID, name, address string) (*Order, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" || address == "" {
		return nil, apperror.NewValidation("shipping name and address are required")
	}

	var order *Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Completed {
			return apperror.NewConflict("cart order already completed").
				WithDetail("id", orderID.String())
		}

		order.ShippingName = name
		order.ShippingAddress = address
		return s.orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteOrder marks the order fulfilled and moves it from the customer's
// current orders to past orders.
func (s *Service) CompleteOrder(ctx context.Context, orderID id.ID) (*Order, error) {
	var order *Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Completed {
			return apperror.NewConflict("cart order already completed").
				WithDetail("id", orderID.String())
		}
		if len(order.Products) == 0 {
			return apperror.NewEmptyOrder(orderID.String())
		}

		order.Completed = true
		if err := s.orders.Update(ctx, order); err != nil {
			return err
		}
		return s.customers.MoveOrderToPast(ctx, order.CustomerID, order.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "cart order completed",
		"order_id", orderID, "line_items", len(order.Products))
	return order, nil
}

// DeleteOrder removes a cart order with all its line items and splices it
// out of the customer's current orders and the store's outgoing set, in a
// single transaction.
func (s *Service) DeleteOrder(ctx context.Context, orderID id.ID) error {
	var removed int64

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		if removed, err = s.products.DeleteByOrder(ctx, order.ID); err != nil {
			return fmt.Errorf("delete line items: %w", err)
		}
		if err := s.orders.Delete(ctx, order.ID); err != nil {
			return err
		}
		if err := s.customers.RemoveCurrentOrder(ctx, order.CustomerID, order.ID); err != nil {
			return err
		}
		return s.stores.RemoveOutgoing(ctx, order.StoreID, order.ID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "cart order deleted", "order_id", orderID, "line_items", removed)
	return nil
}

// GetOrder retrieves a cart order with its line items populated.
func (s *Service) GetOrder(ctx context.Context, orderID id.ID) (*Order, []Product, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.products.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("list line items: %w", err)
	}
	return order, items, nil
}

// GetLineItem retrieves one cart line item.
func (s *Service) GetLineItem(ctx context.Context, productID id.ID) (*Product, error) {
	return s.products.GetByID(ctx, productID)
}

// ListLineItemIDs returns ids of every cart line item.
func (s *Service) ListLineItemIDs(ctx context.Context) ([]id.ID, error) {
	ids, err := s.products.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperror.NewEmptyCollection("cart products")
	}
	return ids, nil
}

// ListIDsByStore returns ids of all cart orders placed against a store.
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
