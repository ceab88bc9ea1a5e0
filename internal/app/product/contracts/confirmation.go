package contracts

import "context"

// Confirmation is the accept/cancel gate that must pass before a product is deleted.
type Confirmation interface {
	Confirm(ctx context.Context, productID string) (bool, error)
}

// ConfirmFunc adapts a plain function to Confirmation.
type ConfirmFunc func(ctx context.Context, productID string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, productID string) (bool, error) {
	return f(ctx, productID)
}

// Confirmed is a Confirmation whose answer is already known, e.g. from a
// request flag set after the user accepted a dialog.
type Confirmed bool

func (c Confirmed) Confirm(context.Context, string) (bool, error) {
	return bool(c), nil
}
