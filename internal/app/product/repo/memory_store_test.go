package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/models/m_product"
	"github.com/gizigo/product-console/internal/pkg/clock"
)

var newestFirst = contracts.Query{OrderBy: m_product.FieldCreatedAt, Descending: true}

func next(t *testing.T, sub contracts.Subscription) contracts.Snapshot {
	t.Helper()
	select {
	case s, ok := <-sub.Snapshots():
		require.True(t, ok, "subscription closed")
		return s
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return contracts.Snapshot{}
	}
}

func insert(t *testing.T, s *MemoryStore, name string) string {
	t.Helper()
	id, err := s.Insert(context.Background(), m_product.BuildInsertMap(name, "Bakery", 1000, nil, "img", "Bakery", "SKU000001"))
	require.NoError(t, err)
	return id
}

func TestMemoryStore_SubscribeDeliversFullSnapshots(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewMemoryStore(clk)

	sub, err := s.Subscribe(context.Background(), newestFirst)
	require.NoError(t, err)
	defer sub.Close()

	first := next(t, sub)
	require.NoError(t, first.Err)
	assert.Empty(t, first.Products)

	insert(t, s, "Roti")
	clk.Advance(time.Second)
	insert(t, s, "Susu")

	// A slow reader only sees the latest state.
	snap := next(t, sub)
	require.Len(t, snap.Products, 2)
	assert.Equal(t, "Susu", snap.Products[0].Name)
	assert.Equal(t, "Roti", snap.Products[1].Name)
	assert.True(t, snap.Products[0].IsActive)
	require.NotNil(t, snap.Products[0].CreatedAt)
}

func TestMemoryStore_SameTimestampNewestFirst(t *testing.T) {
	s := NewMemoryStore(clock.NewFake(time.Unix(0, 0)))
	insert(t, s, "a")
	insert(t, s, "b")

	sub, err := s.Subscribe(context.Background(), newestFirst)
	require.NoError(t, err)
	defer sub.Close()

	snap := next(t, sub)
	require.Len(t, snap.Products, 2)
	assert.Equal(t, "b", snap.Products[0].Name)
}

func TestMemoryStore_OrderByName(t *testing.T) {
	s := NewMemoryStore(nil)
	insert(t, s, "Teh")
	insert(t, s, "Kopi")

	sub, err := s.Subscribe(context.Background(), contracts.Query{OrderBy: m_product.FieldName})
	require.NoError(t, err)
	defer sub.Close()

	snap := next(t, sub)
	assert.Equal(t, "Kopi", snap.Products[0].Name)
}

func TestMemoryStore_UnsupportedOrdering(t *testing.T) {
	s := NewMemoryStore(nil)
	_, err := s.Subscribe(context.Background(), contracts.Query{OrderBy: m_product.FieldPrice})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
	assert.Zero(t, s.SubscriberCount())
}

func TestMemoryStore_PatchAndGet(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewMemoryStore(clk)
	id := insert(t, s, "Roti")

	clk.Advance(time.Hour)
	require.NoError(t, s.Patch(context.Background(), id, m_product.BuildStatusMap(false)))

	p, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, p.IsActive)
	assert.Equal(t, "Roti", p.Name)
	require.NotNil(t, p.UpdatedAt)
	assert.Equal(t, clk.Now(), *p.UpdatedAt)

	err = s.Patch(context.Background(), "missing", m_product.BuildStatusMap(true))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.Get(context.Background(), "missing")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestMemoryStore_Remove(t *testing.T) {
	s := NewMemoryStore(nil)
	keep := insert(t, s, "Roti")
	gone := insert(t, s, "Susu")

	require.NoError(t, s.Remove(context.Background(), gone))
	require.NoError(t, s.Remove(context.Background(), gone))

	sub, err := s.Subscribe(context.Background(), newestFirst)
	require.NoError(t, err)
	defer sub.Close()

	snap := next(t, sub)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, keep, snap.Products[0].ID)
}

func TestMemoryStore_FailNextIsOneShot(t *testing.T) {
	s := NewMemoryStore(nil)
	denied := status.Error(codes.PermissionDenied, "denied")
	s.FailNext(domain.OpCreate, denied)

	_, err := s.Insert(context.Background(), m_product.BuildInsertMap("Roti", "Bakery", 1, nil, "img", "", "SKU1"))
	assert.ErrorIs(t, err, denied)

	insert(t, s, "Roti")
}

func TestMemoryStore_CloseReleases(t *testing.T) {
	s := NewMemoryStore(nil)
	sub, err := s.Subscribe(context.Background(), newestFirst)
	require.NoError(t, err)
	assert.Equal(t, 1, s.SubscriberCount())

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	assert.Zero(t, s.SubscriberCount())

	// drain the initial snapshot, then the channel is closed
	<-sub.Snapshots()
	_, ok := <-sub.Snapshots()
	assert.False(t, ok)
}

func TestMemoryStore_StoreCloseEndsSubscriptions(t *testing.T) {
	s := NewMemoryStore(nil)
	sub, err := s.Subscribe(context.Background(), newestFirst)
	require.NoError(t, err)
	id := insert(t, s, "Roti Gandum")

	require.NoError(t, s.Close())
	assert.Zero(t, s.SubscriberCount())
	for range sub.Snapshots() {
	}

	p, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Roti Gandum", p.Name)
}

func TestMemoryStore_ContextCancelReleases(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	_, err := s.Subscribe(ctx, newestFirst)
	require.NoError(t, err)

	cancel()
	require.Eventually(t, func() bool { return s.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_BreakSubscriptions(t *testing.T) {
	s := NewMemoryStore(nil)
	sub, err := s.Subscribe(context.Background(), newestFirst)
	require.NoError(t, err)

	broken := errors.New("listener revoked")
	s.BreakSubscriptions(broken)

	snap := next(t, sub)
	assert.ErrorIs(t, snap.Err, broken)
	_, ok := <-sub.Snapshots()
	assert.False(t, ok)
	assert.Zero(t, s.SubscriberCount())
}

func TestMemoryStore_PutRangePrice(t *testing.T) {
	s := NewMemoryStore(nil)
	min, max := 10000.0, 20000.0
	s.Put("paket", m_product.Document{Name: "Paket", PriceMin: &min, PriceMax: &max, IsActive: true})

	p, err := s.Get(context.Background(), "paket")
	require.NoError(t, err)
	assert.Equal(t, domain.PriceKindRange, p.Price.Kind())
}
