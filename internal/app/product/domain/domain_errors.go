package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed set of failure categories surfaced by the catalog.
type ErrorKind int

const (
	// KindUnclassified is any store-reported failure without a dedicated kind.
	KindUnclassified ErrorKind = iota
	// KindValidation is a local, per-field rejection raised before any store call.
	KindValidation
	// KindImageEncoding means a supplied image could not be inline-encoded.
	KindImageEncoding
	// KindAccessDenied means the store refused the operation for lack of permission.
	KindAccessDenied
	// KindQueryUnsupported means the store lacks an index for, or rejects the shape of, the query.
	KindQueryUnsupported
	// KindNotFound means the referenced document does not exist.
	KindNotFound
	// KindStoreUnavailable means no store handle could be obtained.
	KindStoreUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindImageEncoding:
		return "image-encoding"
	case KindAccessDenied:
		return "access-denied"
	case KindQueryUnsupported:
		return "query-unsupported"
	case KindNotFound:
		return "not-found"
	case KindStoreUnavailable:
		return "store-unavailable"
	default:
		return "unclassified"
	}
}

// Operation names the access-rule verb an error relates to.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Error is the single error type produced by the catalog layer.
type Error struct {
	Kind ErrorKind
	Op   Operation
	// Code is the store's machine-readable code in kebab case, e.g. "permission-denied".
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Op))
	if e.Op != "" {
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Remediation returns the user-facing hint for the error.
func (e *Error) Remediation() string {
	switch e.Kind {
	case KindValidation:
		return "Fix the highlighted fields and submit again."
	case KindImageEncoding:
		return "The product image could not be processed. Try another file."
	case KindAccessDenied:
		return fmt.Sprintf("Access denied. Check that the store access rules allow '%s' on the products collection.", e.Op)
	case KindQueryUnsupported:
		return "The catalog query needs an index. Create a descending index on 'createdAt' for the products collection in the store's index configuration."
	case KindNotFound:
		return "The product no longer exists."
	case KindStoreUnavailable:
		return "The product store is not configured. Check the store credentials and project settings."
	default:
		code := e.Code
		if code == "" {
			code = "unknown"
		}
		msg := e.Message
		if msg == "" && e.Err != nil {
			msg = e.Err.Error()
		}
		return fmt.Sprintf("Store request failed (code: %s): %s", code, msg)
	}
}

// KindOf returns the kind of err, or KindUnclassified when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StoreUnavailable builds the error every dependent reports when the store handle is missing.
func StoreUnavailable(op Operation) *Error {
	return &Error{Kind: KindStoreUnavailable, Op: op, Err: ErrStoreNotConfigured}
}

// ImageEncodingFailed wraps an encoder failure.
func ImageEncodingFailed(op Operation, err error) *Error {
	return &Error{Kind: KindImageEncoding, Op: op, Err: err}
}

var (
	// ErrStoreNotConfigured is wrapped by every KindStoreUnavailable error.
	ErrStoreNotConfigured = errors.New("product store is not configured")

	// ErrDeletionNotConfirmed is returned when a delete was not accepted by the confirmation step.
	ErrDeletionNotConfirmed = errors.New("product deletion was not confirmed")

	// ErrEmptyProductID indicates an operation addressed no document.
	ErrEmptyProductID = errors.New("product id is required")
)
