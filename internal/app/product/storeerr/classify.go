// Package storeerr adapts raw store errors into the closed set of domain error kinds.
package storeerr

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

// Classify wraps a store-reported failure of op into a *domain.Error.
// An error that already is a *domain.Error is returned unchanged.
func Classify(op domain.Operation, err error) error {
	if err == nil {
		return nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}

	code, msg := codeOf(err)
	out := &domain.Error{Op: op, Code: Kebab(code), Message: msg, Err: err}

	switch {
	case errors.Is(err, spanner.ErrRowNotFound):
		out.Kind = domain.KindNotFound
		out.Code = Kebab(codes.NotFound)
	case code == codes.PermissionDenied, code == codes.Unauthenticated:
		out.Kind = domain.KindAccessDenied
	case code == codes.Unimplemented:
		out.Kind = domain.KindQueryUnsupported
	case code == codes.FailedPrecondition && strings.Contains(strings.ToLower(msg), "index"):
		out.Kind = domain.KindQueryUnsupported
	case code == codes.NotFound:
		out.Kind = domain.KindNotFound
	default:
		out.Kind = domain.KindUnclassified
	}
	return out
}

func codeOf(err error) (codes.Code, string) {
	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded, err.Error()
	}

	if st, ok := status.FromError(err); ok {
		return st.Code(), st.Message()
	}
	// Spanner wraps its status in *spanner.Error.
	if c := spanner.ErrCode(err); c != codes.Unknown {
		return c, spanner.ErrDesc(err)
	}
	return codes.Unknown, err.Error()
}

// Kebab renders a gRPC code the way document stores spell it, e.g. "permission-denied".
func Kebab(c codes.Code) string {
	if c == codes.OK {
		return "ok"
	}
	name := c.String()
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
