package product

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gizigo/product-console/internal/app/product/domain"
)

// statusFor maps error kinds to HTTP statuses.
var statusFor = map[domain.ErrorKind]int{
	domain.KindValidation:       http.StatusBadRequest,
	domain.KindImageEncoding:    http.StatusUnprocessableEntity,
	domain.KindAccessDenied:     http.StatusForbidden,
	domain.KindQueryUnsupported: http.StatusPreconditionFailed,
	domain.KindNotFound:         http.StatusNotFound,
	domain.KindStoreUnavailable: http.StatusServiceUnavailable,
	domain.KindUnclassified:     http.StatusBadGateway,
}

type storeDetails struct {
	Op        domain.Operation `json:"op,omitempty"`
	StoreCode string           `json:"storeCode,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// mapError translates application errors into a status and error body.
// Unknown errors become 500.
func mapError(err error) (int, ErrorResponse) {
	if errors.Is(err, domain.ErrDeletionNotConfirmed) {
		return http.StatusPreconditionRequired, ErrorResponse{
			Code:    "DELETE_NOT_CONFIRMED",
			Message: "Deleting a product is permanent. Repeat the request with confirm=true.",
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, ErrorResponse{Code: "CANCELED", Message: err.Error()}
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, ErrorResponse{Code: "INTERNAL_ERROR", Message: err.Error()}
	}

	resp := ErrorResponse{
		Code:    strings.ToUpper(strings.ReplaceAll(de.Kind.String(), "-", "_")),
		Message: de.Remediation(),
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Details = verrs
	} else {
		resp.Details = storeDetails{Op: de.Op, StoreCode: de.Code, Error: de.Error()}
	}
	return statusFor[de.Kind], resp
}

func failWith(c echo.Context, err error) error {
	status, resp := mapError(err)
	return c.JSON(status, resp)
}
