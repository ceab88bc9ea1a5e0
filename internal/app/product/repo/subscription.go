package repo

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/models/m_product"
)

// offer replaces whatever snapshot is still buffered in ch with s. The caller
// must be the only sender on ch, so the send never blocks.
func offer(ch chan contracts.Snapshot, s contracts.Snapshot) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}

// orderColumn returns the Spanner column for an orderable wire field. Stores
// without arbitrary ordering reject anything else the way Firestore rejects a
// query that needs a missing index.
func orderColumn(field string) (string, error) {
	switch field {
	case m_product.FieldCreatedAt:
		return m_product.ColCreatedAt, nil
	case m_product.FieldName:
		return m_product.ColName, nil
	default:
		return "", status.Error(codes.Unimplemented, fmt.Sprintf("ordering by %q is not supported", field))
	}
}
