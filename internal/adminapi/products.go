package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/talkincode/taskrest/internal/service"
	"github.com/talkincode/taskrest/internal/webserver"
)

type productHandler struct {
	svc service.ProductService
}

// registerProductRoutes registers product CRUD endpoints. The id may be given
// either as a query parameter or as a path segment.
func registerProductRoutes(srv *webserver.WebServer, h *productHandler) {
	srv.ApiGET("/products", h.get)
	srv.ApiGET("/products/:id", h.get)
	srv.ApiPOST("/products", h.create)
	srv.ApiPUT("/products", h.update)
	srv.ApiPUT("/products/:id", h.update)
	srv.ApiDELETE("/products", h.delete)
	srv.ApiDELETE("/products/:id", h.delete)
}

// get returns one product when an id is given, otherwise all of them
func (h *productHandler) get(c echo.Context) error {
	id, present, err := requestID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if !present {
		products, err := h.svc.GetAllProducts(c.Request().Context())
		if err != nil {
			return h.internal(c, "GET", err)
		}
		return ok(c, products)
	}

	found, err := h.svc.GetProductByID(c.Request().Context(), id)
	if err != nil {
		return h.internal(c, "GET", err)
	}
	product, exists := found.Get()
	if !exists {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, product)
}

func (h *productHandler) create(c echo.Context) error {
	var payload service.ProductDTO
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product data", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product data", err.Error())
	}

	product, err := h.svc.CreateProduct(c.Request().Context(), payload)
	if isInputError(err) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product data", err.Error())
	}
	if err != nil {
		return h.internal(c, "POST", err)
	}
	return created(c, product)
}

func (h *productHandler) update(c echo.Context) error {
	var payload service.ProductDTO
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product data", err.Error())
	}
	if id, present, err := requestID(c); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	} else if present {
		payload.ID = id
	}
	if payload.ID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product data", err.Error())
	}

	updated, err := h.svc.UpdateProduct(c.Request().Context(), payload)
	if isInputError(err) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product data", err.Error())
	}
	if err != nil {
		return h.internal(c, "PUT", err)
	}
	product, exists := updated.Get()
	if !exists {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, product)
}

func (h *productHandler) delete(c echo.Context) error {
	id, present, err := requestID(c)
	if err != nil || !present || id <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := h.svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return h.internal(c, "DELETE", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *productHandler) internal(c echo.Context, method string, err error) error {
	zap.L().Error("product request failed", zap.String("method", method), zap.Error(err))
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error processing "+method+" request", err.Error())
}
