package store

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

type memRepo struct {
	stores map[id.ID]*Store
}

func newMemRepo() *memRepo {
	return &memRepo{stores: make(map[id.ID]*Store)}
}

func (m *memRepo) Create(_ context.Context, s *Store) error {
	cp := *s
	m.stores[s.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, storeID id.ID) (*Store, error) {
	s, ok := m.stores[storeID]
	if !ok {
		return nil, apperror.NewNotFound("store", storeID.String())
	}
	cp := *s
	return &cp, nil
}

func (m *memRepo) GetByNumber(_ context.Context, number string) (*Store, error) {
	for _, s := range m.stores {
		if s.StoreNumber == number {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("store", number)
}

func (m *memRepo) Update(_ context.Context, s *Store) error {
	cur, ok := m.stores[s.ID]
	if !ok {
		return apperror.NewNotFound("store", s.ID.String())
	}
	if cur.Version != s.Version {
		return apperror.NewConcurrentModification("store", s.ID.String())
	}
	s.SetVersion(s.Version + 1)
	cp := *s
	m.stores[s.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, storeID id.ID) error {
	if _, ok := m.stores[storeID]; !ok {
		return apperror.NewNotFound("store", storeID.String())
	}
	delete(m.stores, storeID)
	return nil
}

func (m *memRepo) Exists(_ context.Context, storeID id.ID) (bool, error) {
	_, ok := m.stores[storeID]
	return ok, nil
}

func (m *memRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	for _, s := range m.stores {
		if s.StoreNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) ListIDs(_ context.Context) ([]id.ID, error) {
	out := make([]id.ID, 0, len(m.stores))
	for sid := range m.stores {
		out = append(out, sid)
	}
	return out, nil
}

// orderSet fakes a pipeline that owns per-store orders; it records which
// orders its DeleteOrder cascade was asked to remove.
type orderSet struct {
	byStore map[id.ID][]id.ID
	deleted []id.ID
}

func newOrderSet() *orderSet {
	return &orderSet{byStore: make(map[id.ID][]id.ID)}
}

func (o *orderSet) ListIDsByStore(_ context.Context, storeID id.ID) ([]id.ID, error) {
	return o.byStore[storeID], nil
}

func (o *orderSet) remove(orderID id.ID) error {
	for sid, ids := range o.byStore {
		out := ids[:0]
		for _, v := range ids {
			if v != orderID {
				out = append(out, v)
			}
		}
		o.byStore[sid] = out
	}
	o.deleted = append(o.deleted, orderID)
	return nil
}

func (o *orderSet) Delete(_ context.Context, orderID id.ID) error { return o.remove(orderID) }

func (o *orderSet) DeleteOrder(_ context.Context, orderID id.ID) error { return o.remove(orderID) }

type countingSet struct {
	byStore map[id.ID]int64
}

func (c *countingSet) DeleteByStore(_ context.Context, storeID id.ID) (int64, error) {
	n := c.byStore[storeID]
	delete(c.byStore, storeID)
	return n, nil
}

type fixture struct {
	svc             *Service
	repo            *memRepo
	inventoryOrders *orderSet
	cartOrders      *orderSet
	shelf           *countingSet
	employees       *countingSet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:            newMemRepo(),
		inventoryOrders: newOrderSet(),
		cartOrders:      newOrderSet(),
		shelf:           &countingSet{byStore: make(map[id.ID]int64)},
		employees:       &countingSet{byStore: make(map[id.ID]int64)},
	}
	f.svc = NewService(f.repo, f.inventoryOrders, f.cartOrders, f.shelf, f.employees, txStub{})
	return f
}

func TestCreate_DuplicateStoreNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Create(ctx, New("Downtown", "S-0001", "1 Main St")))

	err := f.svc.Create(ctx, New("Uptown", "S-0001", "9 High St"))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestGetByNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Create(ctx, New("Downtown", "S-0001", "1 Main St")))

	got, err := f.svc.GetByNumber(ctx, "S-0001")
	require.NoError(t, err)
	assert.Equal(t, "Downtown", got.Name)

	_, err = f.svc.GetByNumber(ctx, "S-9999")
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_ValidatesRequiredFields(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Create(context.Background(), New("", "S-0001", "1 Main St"))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestListIDs_EmptyCollection(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListIDs(context.Background())
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeEmptyCollection, appErr.Code)
}

func TestDelete_CascadesToAllDependents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	st := New("Downtown", "S-0001", "1 Main St")
	require.NoError(t, f.svc.Create(ctx, st))

	invA, invB := id.New(), id.New()
	f.inventoryOrders.byStore[st.ID] = []id.ID{invA, invB}
	cartA := id.New()
	f.cartOrders.byStore[st.ID] = []id.ID{cartA}
	f.shelf.byStore[st.ID] = 7
	f.employees.byStore[st.ID] = 3

	require.NoError(t, f.svc.Delete(ctx, st.ID))

	_, err := f.repo.GetByID(ctx, st.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.ElementsMatch(t, []id.ID{invA, invB}, f.inventoryOrders.deleted)
	assert.Equal(t, []id.ID{cartA}, f.cartOrders.deleted)
	assert.Empty(t, f.shelf.byStore, "shelf stock removed with the store")
	assert.Empty(t, f.employees.byStore, "employees removed with the store")
}

func TestDelete_UnknownStoreLeavesDependentsAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := id.New()
	f.cartOrders.byStore[other] = []id.ID{id.New()}

	err := f.svc.Delete(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.cartOrders.deleted)
	assert.Len(t, f.cartOrders.byStore[other], 1)
}
