package storeerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind domain.ErrorKind
		code string
	}{
		{"permission denied", status.Error(codes.PermissionDenied, "missing or insufficient permissions"), domain.KindAccessDenied, "permission-denied"},
		{"unauthenticated", status.Error(codes.Unauthenticated, "no token"), domain.KindAccessDenied, "unauthenticated"},
		{"unimplemented", status.Error(codes.Unimplemented, "order by price"), domain.KindQueryUnsupported, "unimplemented"},
		{"missing index", status.Error(codes.FailedPrecondition, "The query requires an index"), domain.KindQueryUnsupported, "failed-precondition"},
		{"other precondition", status.Error(codes.FailedPrecondition, "document changed"), domain.KindUnclassified, "failed-precondition"},
		{"not found", status.Error(codes.NotFound, "no document"), domain.KindNotFound, "not-found"},
		{"row not found", spanner.ErrRowNotFound, domain.KindNotFound, "not-found"},
		{"wrapped status", fmt.Errorf("patch: %w", status.Error(codes.PermissionDenied, "denied")), domain.KindAccessDenied, "permission-denied"},
		{"unavailable", status.Error(codes.Unavailable, "backend down"), domain.KindUnclassified, "unavailable"},
		{"deadline", context.DeadlineExceeded, domain.KindUnclassified, "deadline-exceeded"},
		{"plain error", errors.New("boom"), domain.KindUnclassified, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Classify(domain.OpUpdate, tc.err)

			var de *domain.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tc.kind, de.Kind)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, domain.OpUpdate, de.Op)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestClassify_PassThrough(t *testing.T) {
	assert.NoError(t, Classify(domain.OpRead, nil))

	orig := domain.StoreUnavailable(domain.OpCreate)
	assert.Same(t, orig, Classify(domain.OpRead, orig))
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "resource-exhausted", Kebab(codes.ResourceExhausted))
	assert.Equal(t, "internal", Kebab(codes.Internal))
	assert.Equal(t, "ok", Kebab(codes.OK))
}
