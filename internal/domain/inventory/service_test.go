package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storechain/internal/core/apperror"
	"storechain/internal/core/id"
	"storechain/internal/core/types"
)

type txStub struct{}

func (txStub) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	products map[id.ID]*Product
}

func newMemRepo() *memRepo {
	return &memRepo{products: make(map[id.ID]*Product)}
}

func (m *memRepo) clone(p *Product) *Product {
	cp := *p
	return &cp
}

func (m *memRepo) Create(_ context.Context, p *Product) error {
	m.products[p.ID] = m.clone(p)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("inventory product", productID.String())
	}
	return m.clone(p), nil
}

func (m *memRepo) Update(_ context.Context, p *Product) error {
	cur, ok := m.products[p.ID]
	if !ok {
		return apperror.NewNotFound("inventory product", p.ID.String())
	}
	if cur.Version != p.Version {
		return apperror.NewConcurrentModification("inventory product", p.ID.String())
	}
	p.SetVersion(p.Version + 1)
	m.products[p.ID] = m.clone(p)
	return nil
}

func (m *memRepo) Delete(_ context.Context, productID id.ID) error {
	if _, ok := m.products[productID]; !ok {
		return apperror.NewNotFound("inventory product", productID.String())
	}
	delete(m.products, productID)
	return nil
}

func (m *memRepo) findShelf(storeID id.ID, name, description string) *Product {
	for _, p := range m.products {
		if p.StoreID != nil && *p.StoreID == storeID && p.Name == name && p.Description == description {
			return p
		}
	}
	return nil
}

func (m *memRepo) GetOnShelf(_ context.Context, storeID id.ID, name, description string) (*Product, error) {
	if p := m.findShelf(storeID, name, description); p != nil {
		return m.clone(p), nil
	}
	return nil, apperror.NewNotFound("inventory product", name)
}

func (m *memRepo) GetOnShelfForUpdate(ctx context.Context, storeID id.ID, name, description string) (*Product, error) {
	return m.GetOnShelf(ctx, storeID, name, description)
}

func (m *memRepo) DecrementOnShelf(_ context.Context, storeID id.ID, name, description string, qty int64) (bool, error) {
	p := m.findShelf(storeID, name, description)
	if p == nil || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	return true, nil
}

func (m *memRepo) IncrementOnShelf(_ context.Context, storeID id.ID, name, description string, qty int64) (bool, error) {
	p := m.findShelf(storeID, name, description)
	if p == nil {
		return false, nil
	}
	p.Quantity += qty
	return true, nil
}

func (m *memRepo) ListByStore(_ context.Context, storeID id.ID) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if p.StoreID != nil && *p.StoreID == storeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memRepo) ListByOrder(_ context.Context, orderID id.ID) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if p.OrderID != nil && *p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memRepo) DeleteByOrder(_ context.Context, orderID id.ID) (int64, error) {
	var n int64
	for pid, p := range m.products {
		if p.OrderID != nil && *p.OrderID == orderID {
			delete(m.products, pid)
			n++
		}
	}
	return n, nil
}

func (m *memRepo) DeleteByStore(_ context.Context, storeID id.ID) (int64, error) {
	var n int64
	for pid, p := range m.products {
		if p.StoreID != nil && *p.StoreID == storeID {
			delete(m.products, pid)
			n++
		}
	}
	return n, nil
}

func (m *memRepo) ListIDs(_ context.Context) ([]id.ID, error) {
	out := make([]id.ID, 0, len(m.products))
	for pid := range m.products {
		out = append(out, pid)
	}
	return out, nil
}

type memStores struct {
	stores  map[id.ID]bool
	current map[id.ID][]id.ID
}

func newMemStores(ids ...id.ID) *memStores {
	m := &memStores{stores: make(map[id.ID]bool), current: make(map[id.ID][]id.ID)}
	for _, sid := range ids {
		m.stores[sid] = true
	}
	return m
}

func (m *memStores) Exists(_ context.Context, storeID id.ID) (bool, error) {
	return m.stores[storeID], nil
}

func (m *memStores) AppendCurrent(_ context.Context, storeID, productID id.ID) error {
	m.current[storeID] = append(m.current[storeID], productID)
	return nil
}

func (m *memStores) RemoveCurrent(_ context.Context, storeID, productID id.ID) error {
	out := m.current[storeID][:0]
	for _, v := range m.current[storeID] {
		if v != productID {
			out = append(out, v)
		}
	}
	m.current[storeID] = out
	return nil
}

func newTestService(storeIDs ...id.ID) (*Service, *memRepo, *memStores) {
	repo := newMemRepo()
	stores := newMemStores(storeIDs...)
	return NewService(repo, stores, txStub{}), repo, stores
}

func shelfProduct(t *testing.T, repo *memRepo, storeID id.ID, name string, qty int64) *Product {
	t.Helper()
	p := NewProduct(name, name+" desc", "grocery", types.MustMoney("2.50"), qty)
	sid := storeID
	p.StoreID = &sid
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestMergeOrCreateShelfStock_NewSKU(t *testing.T) {
	storeID := id.New()
	svc, repo, stores := newTestService(storeID)
	ctx := context.Background()

	candidate := NewProduct("Beans", "1kg", "grocery", types.MustMoney("14.50"), 10)
	orderID := id.New()
	candidate.OrderID = &orderID
	require.NoError(t, repo.Create(ctx, candidate))

	got, err := svc.MergeOrCreateShelfStock(ctx, storeID, candidate)
	require.NoError(t, err)

	assert.Equal(t, int64(10), got.Quantity)
	require.NotNil(t, got.StoreID)
	assert.Equal(t, storeID, *got.StoreID)
	assert.Nil(t, got.OrderID, "shelf record must not keep its order link")
	assert.Equal(t, []id.ID{got.ID}, stores.current[storeID])

	stored, err := repo.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Quantity)
}

func TestMergeOrCreateShelfStock_MergesExistingSKU(t *testing.T) {
	storeID := id.New()
	svc, repo, stores := newTestService(storeID)
	ctx := context.Background()

	existing := shelfProduct(t, repo, storeID, "Beans", 10)

	candidate := NewProduct("Beans", "Beans desc", "grocery", types.MustMoney("14.50"), 5)
	orderID := id.New()
	candidate.OrderID = &orderID
	require.NoError(t, repo.Create(ctx, candidate))

	got, err := svc.MergeOrCreateShelfStock(ctx, storeID, candidate)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, got.ID, "stock accumulates on the existing record")
	assert.Equal(t, int64(15), got.Quantity)

	_, err = repo.GetByID(ctx, candidate.ID)
	assert.True(t, apperror.IsNotFound(err), "merged line item record is retired")

	assert.Empty(t, stores.current[storeID], "no new shelf record registered on merge")
}

func TestMergeOrCreateShelfStock_MergeIsIdempotentPerReceipt(t *testing.T) {
	storeID := id.New()
	svc, repo, _ := newTestService(storeID)
	ctx := context.Background()

	shelfProduct(t, repo, storeID, "Beans", 0)

	for i := 0; i < 3; i++ {
		item := NewProduct("Beans", "Beans desc", "grocery", types.MustMoney("14.50"), 4)
		require.NoError(t, repo.Create(ctx, item))
		_, err := svc.MergeOrCreateShelfStock(ctx, storeID, item)
		require.NoError(t, err)
	}

	got, err := repo.GetOnShelf(ctx, storeID, "Beans", "Beans desc")
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Quantity)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1, "one shelf record per SKU per store")
}

func TestMergeOrCreateShelfStock_UnknownStore(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	item := NewProduct("Beans", "1kg", "grocery", types.MustMoney("14.50"), 4)
	_, err := svc.MergeOrCreateShelfStock(ctx, id.New(), item)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReserveStock_DebitsQuantity(t *testing.T) {
	storeID := id.New()
	svc, repo, _ := newTestService(storeID)
	ctx := context.Background()

	shelfProduct(t, repo, storeID, "Beans", 10)

	require.NoError(t, svc.ReserveStock(ctx, storeID, "Beans", "Beans desc", 4))

	got, err := repo.GetOnShelf(ctx, storeID, "Beans", "Beans desc")
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Quantity)
}

func TestReserveStock_ExactlyToZeroThenOutOfStock(t *testing.T) {
	storeID := id.New()
	svc, repo, _ := newTestService(storeID)
	ctx := context.Background()

	shelfProduct(t, repo, storeID, "Beans", 5)

	require.NoError(t, svc.ReserveStock(ctx, storeID, "Beans", "Beans desc", 5))

	got, err := repo.GetOnShelf(ctx, storeID, "Beans", "Beans desc")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Quantity, "reserving the whole shelf is allowed")

	err = svc.ReserveStock(ctx, storeID, "Beans", "Beans desc", 1)
	assert.True(t, apperror.IsOutOfStock(err))
}

func TestReserveStock_ErrorKinds(t *testing.T) {
	storeID := id.New()
	svc, repo, _ := newTestService(storeID)
	ctx := context.Background()

	shelfProduct(t, repo, storeID, "Beans", 3)

	err := svc.ReserveStock(ctx, storeID, "Beans", "Beans desc", 10)
	assert.True(t, apperror.IsInsufficientStock(err), "short stock is InsufficientStock")

	err = svc.ReserveStock(ctx, storeID, "Mugs", "Mugs desc", 1)
	assert.True(t, apperror.IsNotFound(err), "absent SKU is NotFound")

	err = svc.ReserveStock(ctx, storeID, "Beans", "Beans desc", 0)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestReserveStock_FailedReservationLeavesShelfIntact(t *testing.T) {
	storeID := id.New()
	svc, repo, _ := newTestService(storeID)
	ctx := context.Background()

	shelfProduct(t, repo, storeID, "Beans", 6)

	err := svc.ReserveStock(ctx, storeID, "Beans", "Beans desc", 10)
	require.Error(t, err)

	got, err := repo.GetOnShelf(ctx, storeID, "Beans", "Beans desc")
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Quantity)
}

func TestRestock_CreditsQuantity(t *testing.T) {
	storeID := id.New()
	svc, repo, _ := newTestService(storeID)
	ctx := context.Background()

	shelfProduct(t, repo, storeID, "Beans", 2)

	require.NoError(t, svc.Restock(ctx, storeID, "Beans", "Beans desc", 3))

	got, err := repo.GetOnShelf(ctx, storeID, "Beans", "Beans desc")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)

	err = svc.Restock(ctx, storeID, "Mugs", "Mugs desc", 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRemoveShelfStock_DeletesRecordAndUnregisters(t *testing.T) {
	storeID := id.New()
	svc, repo, stores := newTestService(storeID)
	ctx := context.Background()

	p := shelfProduct(t, repo, storeID, "Beans", 10)
	stores.current[storeID] = []id.ID{p.ID}

	require.NoError(t, svc.RemoveShelfStock(ctx, storeID, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.True(t, apperror.IsNotFound(err), "shelf record is gone")
	assert.Empty(t, stores.current[storeID], "store no longer lists the product")
}

func TestRemoveShelfStock_WrongStore(t *testing.T) {
	storeID := id.New()
	otherID := id.New()
	svc, repo, stores := newTestService(storeID, otherID)
	ctx := context.Background()

	p := shelfProduct(t, repo, storeID, "Beans", 10)
	stores.current[storeID] = []id.ID{p.ID}

	err := svc.RemoveShelfStock(ctx, otherID, p.ID)
	assert.True(t, apperror.IsNotFound(err))

	_, err = repo.GetByID(ctx, p.ID)
	assert.NoError(t, err, "record stays on its own store's shelf")
	assert.Equal(t, []id.ID{p.ID}, stores.current[storeID])
}

func TestRemoveShelfStock_UnshelvedProduct(t *testing.T) {
	storeID := id.New()
	svc, repo, _ := newTestService(storeID)
	ctx := context.Background()

	item := NewProduct("Beans", "1kg", "grocery", types.MustMoney("14.50"), 4)
	orderID := id.New()
	item.OrderID = &orderID
	require.NoError(t, repo.Create(ctx, item))

	err := svc.RemoveShelfStock(ctx, storeID, item.ID)
	assert.True(t, apperror.IsNotFound(err), "line items still tied to an order are not shelf stock")
}

func TestListShelf_UnknownStore(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.ListShelf(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestListIDs_EmptyCollection(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.ListIDs(context.Background())
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeEmptyCollection, appErr.Code)
}
