package product

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/gizigo/product-console/internal/app/product/catalog"
	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/queries/get_product"
	"github.com/gizigo/product-console/internal/app/product/usecases/create_product"
	"github.com/gizigo/product-console/internal/app/product/usecases/delete_product"
	"github.com/gizigo/product-console/internal/app/product/usecases/toggle_status"
	"github.com/gizigo/product-console/internal/app/product/usecases/update_product"
)

// Commands groups write interactors.
// Keep transport layer depending on application layer only.
type Commands struct {
	Create *create_product.Interactor
	Update *update_product.Interactor
	Toggle *toggle_status.Interactor
	Delete *delete_product.Interactor
}

// Queries groups read handlers.
type Queries struct {
	Get *get_product.Handler
}

// Handler is a thin HTTP adapter for the console front end. List reads come
// from a shared catalog mirror; each stream gets its own mirror.
type Handler struct {
	commands Commands
	queries  Queries

	catalog       *catalog.Controller
	newController func() *catalog.Controller
	log           *zap.Logger
}

func NewHandler(cmd Commands, qry Queries, shared *catalog.Controller, newController func() *catalog.Controller, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{commands: cmd, queries: qry, catalog: shared, newController: newController, log: log}
}

// Register mounts the product routes on g, typically /api/products.
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.listProducts)
	g.GET("/stream", h.streamProducts)
	g.POST("/sync", h.syncCatalog)
	g.GET("/:id", h.getProduct)
	g.POST("", h.createProduct)
	g.PUT("/:id", h.updateProduct)
	g.PATCH("/:id/status", h.setStatus)
	g.DELETE("/:id", h.deleteProduct)
}

func parseFilters(c echo.Context) (string, catalog.StatusFilter, error) {
	filter, err := catalog.ParseStatusFilter(c.QueryParam("status"))
	return c.QueryParam("q"), filter, err
}

func (h *Handler) listProducts(c echo.Context) error {
	term, filter, err := parseFilters(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILTER", err.Error(), nil)
	}

	v := h.catalog.ViewWith(term, filter)
	if v.State == catalog.StateFailed {
		status, _ := mapError(v.Err)
		return c.JSON(status, mapView(v))
	}
	return ok(c, mapView(v))
}

// syncCatalog re-opens the shared mirror after a failure. The subscription
// outlives the request.
func (h *Handler) syncCatalog(c echo.Context) error {
	if err := h.catalog.Open(context.WithoutCancel(c.Request().Context())); err != nil {
		return failWith(c, err)
	}
	return ok(c, mapView(h.catalog.View()))
}

func (h *Handler) getProduct(c echo.Context) error {
	out, err := h.queries.Get.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, out)
}

func (h *Handler) createProduct(c echo.Context) error {
	form, err := bindProductForm(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product form", err.Error())
	}
	defer form.Close()

	id, err := h.commands.Create.Execute(c.Request().Context(), create_product.Request{
		Name:        deref(form.Name),
		Category:    deref(form.Category),
		Price:       form.Price,
		Description: form.Description,
		Image:       form.Image,
	})
	if err != nil {
		return failWith(c, err)
	}
	return created(c, map[string]string{"id": id})
}

func (h *Handler) updateProduct(c echo.Context) error {
	form, err := bindProductForm(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product form", err.Error())
	}
	defer form.Close()

	id := c.Param("id")
	res, err := h.commands.Update.Execute(c.Request().Context(), update_product.Request{
		ProductID:   id,
		Name:        form.Name,
		Category:    form.Category,
		Price:       form.Price,
		Description: form.Description,
		Image:       form.Image,
	})
	if err != nil {
		return failWith(c, err)
	}

	body := map[string]interface{}{"id": id}
	if res.ImageErr != nil {
		_, warning := mapError(res.ImageErr)
		body["imageWarning"] = warning
	}
	return ok(c, body)
}

func (h *Handler) setStatus(c echo.Context) error {
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if payload.IsActive == nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "isActive is required", nil)
	}

	err := h.commands.Toggle.Execute(c.Request().Context(), toggle_status.Request{
		ProductID: c.Param("id"),
		IsActive:  *payload.IsActive,
	})
	if err != nil {
		return failWith(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) deleteProduct(c echo.Context) error {
	confirmed := cast.ToBool(strings.TrimSpace(c.QueryParam("confirm")))
	err := h.commands.Delete.Execute(c.Request().Context(), delete_product.Request{
		ProductID:    c.Param("id"),
		Confirmation: contracts.Confirmed(confirmed),
	})
	if err != nil {
		return failWith(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
