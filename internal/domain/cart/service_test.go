package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storechain/internal/core/apperror"
	"storechain/internal/core/id"
)

type txStub struct{}

func (txStub) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memOrders struct {
	orders map[id.ID]*Order
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[id.ID]*Order)}
}

func (m *memOrders) clone(o *Order) *Order {
	cp := *o
	cp.Products = append([]id.ID(nil), o.Products...)
	return &cp
}

func (m *memOrders) Create(_ context.Context, o *Order) error {
	m.orders[o.ID] = m.clone(o)
	return nil
}

func (m *memOrders) GetByID(_ context.Context, orderID id.ID) (*Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("cart order", orderID.String())
	}
	return m.clone(o), nil
}

func (m *memOrders) GetForUpdate(ctx context.Context, orderID id.ID) (*Order, error) {
	return m.GetByID(ctx, orderID)
}

func (m *memOrders) Update(_ context.Context, o *Order) error {
	cur, ok := m.orders[o.ID]
	if !ok {
		return apperror.NewNotFound("cart order", o.ID.String())
	}
	if cur.Version != o.Version {
		return apperror.NewConcurrentModification("cart order", o.ID.String())
	}
	o.SetVersion(o.Version + 1)
	m.orders[o.ID] = m.clone(o)
	return nil
}

func (m *memOrders) Delete(_ context.Context, orderID id.ID) error {
	if _, ok := m.orders[orderID]; !ok {
		return apperror.NewNotFound("cart order", orderID.String())
	}
	delete(m.orders, orderID)
	return nil
}

func (m *memOrders) ListIDsByStore(_ context.Context, storeID id.ID) ([]id.ID, error) {
	var out []id.ID
	for oid, o := range m.orders {
		if o.StoreID == storeID {
			out = append(out, oid)
		}
	}
	return out, nil
}

func (m *memOrders) ListIDs(_ context.Context) ([]id.ID, error) {
	out := make([]id.ID, 0, len(m.orders))
	for oid := range m.orders {
		out = append(out, oid)
	}
	return out, nil
}

type memProducts struct {
	items map[id.ID]*Product
}

func newMemProducts() *memProducts {
	return &memProducts{items: make(map[id.ID]*Product)}
}

func (m *memProducts) Create(_ context.Context, p *Product) error {
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := m.items[productID]
	if !ok {
		return nil, apperror.NewNotFound("cart product", productID.String())
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetForUpdate(ctx context.Context, productID id.ID) (*Product, error) {
	return m.GetByID(ctx, productID)
}

func (m *memProducts) Update(_ context.Context, p *Product) error {
	cur, ok := m.items[p.ID]
	if !ok {
		return apperror.NewNotFound("cart product", p.ID.String())
	}
	if cur.Version != p.Version {
		return apperror.NewConcurrentModification("cart product", p.ID.String())
	}
	p.SetVersion(p.Version + 1)
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) Delete(_ context.Context, productID id.ID) error {
	if _, ok := m.items[productID]; !ok {
		return apperror.NewNotFound("cart product", productID.String())
	}
	delete(m.items, productID)
	return nil
}

func (m *memProducts) DeleteByOrder(_ context.Context, orderID id.ID) (int64, error) {
	var n int64
	for pid, p := range m.items {
		if p.OrderID == orderID {
			delete(m.items, pid)
			n++
		}
	}
	return n, nil
}

func (m *memProducts) ListByOrder(_ context.Context, orderID id.ID) ([]Product, error) {
	var out []Product
	for _, p := range m.items {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProducts) ListIDs(_ context.Context) ([]id.ID, error) {
	out := make([]id.ID, 0, len(m.items))
	for pid := range m.items {
		out = append(out, pid)
	}
	return out, nil
}

type memCustomer struct {
	name    string
	address string
	current []id.ID
	past    []id.ID
}

type memCustomers struct {
	customers map[id.ID]*memCustomer
}

func newMemCustomers() *memCustomers {
	return &memCustomers{customers: make(map[id.ID]*memCustomer)}
}

func (m *memCustomers) add(name, address string) id.ID {
	cid := id.New()
	m.customers[cid] = &memCustomer{name: name, address: address}
	return cid
}

func (m *memCustomers) get(customerID id.ID) (*memCustomer, error) {
	c, ok := m.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	return c, nil
}

func (m *memCustomers) GetShippingDefaults(_ context.Context, customerID id.ID) (string, string, error) {
	c, err := m.get(customerID)
	if err != nil {
		return "", "", err
	}
	return c.name, c.address, nil
}

func (m *memCustomers) AppendCurrentOrder(_ context.Context, customerID, orderID id.ID) error {
	c, err := m.get(customerID)
	if err != nil {
		return err
	}
	c.current = append(c.current, orderID)
	return nil
}

func (m *memCustomers) RemoveCurrentOrder(_ context.Context, customerID, orderID id.ID) error {
	c, err := m.get(customerID)
	if err != nil {
		return err
	}
	out := c.current[:0]
	for _, v := range c.current {
		if v != orderID {
			out = append(out, v)
		}
	}
	c.current = out
	return nil
}

func (m *memCustomers) MoveOrderToPast(ctx context.Context, customerID, orderID id.ID) error {
	if err := m.RemoveCurrentOrder(ctx, customerID, orderID); err != nil {
		return err
	}
	c, _ := m.get(customerID)
	c.past = append(c.past, orderID)
	return nil
}

type memStoreSets struct {
	stores   map[id.ID]bool
	outgoing map[id.ID][]id.ID
}

func newMemStoreSets(ids ...id.ID) *memStoreSets {
	m := &memStoreSets{stores: make(map[id.ID]bool), outgoing: make(map[id.ID][]id.ID)}
	for _, sid := range ids {
		m.stores[sid] = true
	}
	return m
}

func (m *memStoreSets) Exists(_ context.Context, storeID id.ID) (bool, error) {
	return m.stores[storeID], nil
}

func (m *memStoreSets) AppendOutgoing(_ context.Context, storeID, orderID id.ID) error {
	m.outgoing[storeID] = append(m.outgoing[storeID], orderID)
	return nil
}

func (m *memStoreSets) RemoveOutgoing(_ context.Context, storeID, orderID id.ID) error {
	out := m.outgoing[storeID][:0]
	for _, v := range m.outgoing[storeID] {
		if v != orderID {
			out = append(out, v)
		}
	}
	m.outgoing[storeID] = out
	return nil
}

// shelfAccounting reserves against an in-memory shelf keyed by SKU name,
// reporting the same error kinds the accounting service does.
type shelfAccounting struct {
	shelf map[string]int64
}

func (a *shelfAccounting) ReserveStock(_ context.Context, _ id.ID, name, _ string, quantity int64) error {
	available, ok := a.shelf[name]
	if !ok {
		return apperror.NewNotFound("inventory product", name)
	}
	if available == 0 {
		return apperror.NewOutOfStock(name)
	}
	if available < quantity {
		return apperror.NewInsufficientStock(name, quantity, available)
	}
	a.shelf[name] = available - quantity
	return nil
}

type fixture struct {
	svc        *Service
	orders     *memOrders
	products   *memProducts
	customers  *memCustomers
	stores     *memStoreSets
	accounting *shelfAccounting
	customerID id.ID
	storeID    id.ID
}

func newFixture(t *testing.T, shelf map[string]int64) *fixture {
	t.Helper()

	f := &fixture{
		orders:     newMemOrders(),
		products:   newMemProducts(),
		customers:  newMemCustomers(),
		accounting: &shelfAccounting{shelf: shelf},
		storeID:    id.New(),
	}
	f.stores = newMemStoreSets(f.storeID)
	f.customerID = f.customers.add("Demo Customer", "42 Elm St")
	f.svc = NewService(f.orders, f.products, f.customers, f.stores, f.accounting, txStub{})
	return f
}

func (f *fixture) openOrder(t *testing.T) *Order {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), f.customerID, f.storeID, nil)
	require.NoError(t, err)
	return order
}

func TestCreateOrder_DefaultsShippingFromProfile(t *testing.T) {
	f := newFixture(t, map[string]int64{})
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, f.customerID, f.storeID, nil)
	require.NoError(t, err)

	assert.Equal(t, "Demo Customer", order.ShippingName)
	assert.Equal(t, "42 Elm St", order.ShippingAddress)
	assert.Equal(t, []id.ID{order.ID}, f.customers.customers[f.customerID].current)
	assert.Equal(t, []id.ID{order.ID}, f.stores.outgoing[f.storeID])
}

func TestCreateOrder_ExplicitShippingWins(t *testing.T) {
	f := newFixture(t, map[string]int64{})

	order, err := f.svc.CreateOrder(context.Background(), f.customerID, f.storeID, &Order{
		ShippingName:    "Gift Recipient",
		ShippingAddress: "7 Oak Ave",
	})
	require.NoError(t, err)

	assert.Equal(t, "Gift Recipient", order.ShippingName)
	assert.Equal(t, "7 Oak Ave", order.ShippingAddress)
}

func TestCreateOrder_UnknownStore(t *testing.T) {
	f := newFixture(t, map[string]int64{})

	_, err := f.svc.CreateOrder(context.Background(), f.customerID, id.New(), nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestAddLineItem_ReservesFromShelf(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	item, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 4))
	require.NoError(t, err)

	assert.Equal(t, int64(6), f.accounting.shelf["Beans"], "reservation debits the shelf")
	assert.Equal(t, order.ID, item.OrderID)

	stored, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []id.ID{item.ID}, stored.Products)
}

func TestAddLineItem_InsufficientStockAddsNothing(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	_, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 4))
	require.NoError(t, err)

	_, err = f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 10))
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(6), f.accounting.shelf["Beans"], "failed reservation leaves the shelf as it was")

	stored, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Products, 1, "failed line item is not recorded")
}

func TestAddLineItem_StockErrorKindsPropagate(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 0})
	ctx := context.Background()
	order := f.openOrder(t)

	_, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 1))
	assert.True(t, apperror.IsOutOfStock(err))

	_, err = f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Mugs", "0.3L", 1))
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateLineItemQuantity_PositiveDeltaReservesDeltaOnly(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	item, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 4))
	require.NoError(t, err)

	updated, err := f.svc.UpdateLineItemQuantity(ctx, item.ID, f.storeID, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(7), updated.Quantity)
	assert.Equal(t, int64(3), f.accounting.shelf["Beans"], "only the delta is reserved")
}

func TestUpdateLineItemQuantity_NegativeDeltaDoesNotRestock(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	item, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 4))
	require.NoError(t, err)

	updated, err := f.svc.UpdateLineItemQuantity(ctx, item.ID, f.storeID, -2)
	require.NoError(t, err)

	assert.Equal(t, int64(2), updated.Quantity)
	assert.Equal(t, int64(6), f.accounting.shelf["Beans"], "shrinking a line never credits the shelf")
}

func TestUpdateLineItemQuantity_CannotReachZero(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	item, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 4))
	require.NoError(t, err)

	_, err = f.svc.UpdateLineItemQuantity(ctx, item.ID, f.storeID, -4)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	stored, err := f.products.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stored.Quantity)
}

func TestRemoveLineItem_DoesNotRestock(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	item, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 4))
	require.NoError(t, err)
	require.Equal(t, int64(6), f.accounting.shelf["Beans"])

	require.NoError(t, f.svc.RemoveLineItem(ctx, item.ID))

	assert.Equal(t, int64(6), f.accounting.shelf["Beans"],
		"removing a cart line keeps the reserved units debited")

	stored, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Products)

	_, err = f.products.GetByID(ctx, item.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSequentialUpdates_AdvanceVersion(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	_, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 2))
	require.NoError(t, err)
	_, err = f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 3))
	require.NoError(t, err)

	updated, err := f.svc.UpdateShipping(ctx, order.ID, "Gift Recipient", "7 Oak Ave")
	require.NoError(t, err)

	// create=1, one bump per line item, one for the shipping change
	assert.Equal(t, 4, updated.Version)
}

func TestUpdate_StaleCopyIsRejected(t *testing.T) {
	f := newFixture(t, map[string]int64{})
	ctx := context.Background()
	order := f.openOrder(t)

	stale, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateShipping(ctx, order.ID, "Gift Recipient", "7 Oak Ave")
	require.NoError(t, err)

	stale.ShippingName = "Lost Update"
	err = f.orders.Update(ctx, stale)
	assert.True(t, apperror.IsConcurrentModification(err))
}

func TestUpdateShipping_RewritesDestination(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	updated, err := f.svc.UpdateShipping(ctx, order.ID, "Gift Recipient", "7 Oak Ave")
	require.NoError(t, err)
	assert.Equal(t, "Gift Recipient", updated.ShippingName)
	assert.Equal(t, "7 Oak Ave", updated.ShippingAddress)

	_, err = f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 1))
	require.NoError(t, err)
	_, err = f.svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateShipping(ctx, order.ID, "Too", "Late")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestCompleteOrder_MovesToPastOrders(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10})
	ctx := context.Background()
	order := f.openOrder(t)

	_, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 4))
	require.NoError(t, err)

	completed, err := f.svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	cust := f.customers.customers[f.customerID]
	assert.Empty(t, cust.current)
	assert.Equal(t, []id.ID{order.ID}, cust.past)

	_, err = f.svc.CompleteOrder(ctx, order.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestCompleteOrder_EmptyOrder(t *testing.T) {
	f := newFixture(t, map[string]int64{})
	order := f.openOrder(t)

	_, err := f.svc.CompleteOrder(context.Background(), order.ID)
	assert.True(t, apperror.IsEmptyOrder(err))
}

func TestDeleteOrder_CascadesEverywhere(t *testing.T) {
	f := newFixture(t, map[string]int64{"Beans": 10, "Mugs": 5})
	ctx := context.Background()
	order := f.openOrder(t)

	_, err := f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Beans", "1kg", 4))
	require.NoError(t, err)
	_, err = f.svc.AddLineItem(ctx, order.ID, f.storeID, NewProduct("Mugs", "0.3L", 2))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrder(ctx, order.ID))

	_, err = f.orders.GetByID(ctx, order.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.products.items, "line items removed with the order")
	assert.Empty(t, f.customers.customers[f.customerID].current)
	assert.Empty(t, f.stores.outgoing[f.storeID])
}
