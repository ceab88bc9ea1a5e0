package product

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gizigo/product-console/internal/app/product/catalog"
)

// streamProducts pushes the filtered view as server-sent events every time
// the mirror changes. The connection owns its own controller, so its
// subscription is released when the client goes away.
func (h *Handler) streamProducts(c echo.Context) error {
	term, filter, err := parseFilters(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILTER", err.Error(), nil)
	}

	ctx := c.Request().Context()
	ctrl := h.newController()
	ctrl.SetSearchTerm(term)
	ctrl.SetStatusFilter(filter)
	if err := ctrl.Open(ctx); err != nil {
		return failWith(c, err)
	}
	defer ctrl.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	for {
		v := ctrl.View()
		event := "snapshot"
		if v.State == catalog.StateFailed {
			event = "error"
		}
		if err := writeEvent(res, event, mapView(v)); err != nil {
			h.log.Debug("product stream closed", zap.Error(err))
			return nil
		}
		if v.State == catalog.StateFailed {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ctrl.Changes():
		}
	}
}

func writeEvent(res *echo.Response, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}
