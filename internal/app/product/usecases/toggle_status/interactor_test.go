package toggle_status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/repo"
	"github.com/gizigo/product-console/internal/models/m_product"
)

func TestExecute_TouchesOnlyStatus(t *testing.T) {
	store := repo.NewMemoryStore(nil)
	id, err := store.Insert(context.Background(), m_product.BuildInsertMap("Roti", "Bakery", 1000, nil, "img", "Bakery", "SKU000001"))
	require.NoError(t, err)
	before, err := store.Get(context.Background(), id)
	require.NoError(t, err)

	it := NewInteractor(store, zap.NewNop())
	require.NoError(t, it.Execute(context.Background(), Request{ProductID: id, IsActive: false}))

	after, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, after.IsActive)
	assert.NotNil(t, after.UpdatedAt)

	after.IsActive = before.IsActive
	after.UpdatedAt = before.UpdatedAt
	assert.Equal(t, *before, *after)
}

func TestExecute_FailureIsLoggedAndReturned(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	store := repo.NewMemoryStore(nil)
	store.FailNext(domain.OpUpdate, status.Error(codes.PermissionDenied, "denied"))

	it := NewInteractor(store, zap.New(core))
	err := it.Execute(context.Background(), Request{ProductID: "any", IsActive: true})
	assert.True(t, domain.IsKind(err, domain.KindAccessDenied))
	assert.Equal(t, 1, logs.FilterMessage("toggle product status failed").Len())

	err = it.Execute(context.Background(), Request{ProductID: "missing", IsActive: true})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	err = NewInteractor(nil, nil).Execute(context.Background(), Request{ProductID: "x"})
	assert.True(t, domain.IsKind(err, domain.KindStoreUnavailable))
}
