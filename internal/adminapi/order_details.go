package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/talkincode/taskrest/internal/service"
	"github.com/talkincode/taskrest/internal/webserver"
)

type orderDetailHandler struct {
	svc service.OrderDetailService
}

func registerOrderDetailRoutes(srv *webserver.WebServer, h *orderDetailHandler) {
	srv.ApiGET("/order-details", h.get)
	srv.ApiGET("/order-details/:id", h.get)
	srv.ApiPOST("/order-details", h.create)
	srv.ApiPUT("/order-details", h.update)
	srv.ApiPUT("/order-details/:id", h.update)
	srv.ApiDELETE("/order-details", h.delete)
	srv.ApiDELETE("/order-details/:id", h.delete)
}

func (h *orderDetailHandler) get(c echo.Context) error {
	id, present, err := requestID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid OrderDetail ID", nil)
	}
	if !present {
		orders, err := h.svc.GetAllOrderDetails(c.Request().Context())
		if err != nil {
			return h.internal(c, "GET", err)
		}
		return ok(c, orders)
	}

	found, err := h.svc.GetOrderDetailByID(c.Request().Context(), id)
	if err != nil {
		return h.internal(c, "GET", err)
	}
	order, exists := found.Get()
	if !exists {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "OrderDetail not found", nil)
	}
	return ok(c, order)
}

func (h *orderDetailHandler) create(c echo.Context) error {
	var payload service.OrderDetailDTO
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order data", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order data", err.Error())
	}

	order, err := h.svc.CreateOrderDetail(c.Request().Context(), payload)
	if isInputError(err) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order data", err.Error())
	}
	if err != nil {
		return h.internal(c, "POST", err)
	}
	return created(c, order)
}

func (h *orderDetailHandler) update(c echo.Context) error {
	var payload service.OrderDetailDTO
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order data", err.Error())
	}
	if id, present, err := requestID(c); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid OrderDetail ID", nil)
	} else if present {
		payload.ID = id
	}
	if payload.ID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid OrderDetail ID", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order data", err.Error())
	}

	updated, err := h.svc.UpdateOrderDetail(c.Request().Context(), payload)
	if isInputError(err) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order data", err.Error())
	}
	if err != nil {
		return h.internal(c, "PUT", err)
	}
	order, exists := updated.Get()
	if !exists {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "OrderDetail not found", nil)
	}
	return ok(c, order)
}

func (h *orderDetailHandler) delete(c echo.Context) error {
	id, present, err := requestID(c)
	if err != nil || !present || id <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid OrderDetail ID", nil)
	}
	if err := h.svc.DeleteOrderDetail(c.Request().Context(), id); err != nil {
		return h.internal(c, "DELETE", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *orderDetailHandler) internal(c echo.Context, method string, err error) error {
	zap.L().Error("order detail request failed", zap.String("method", method), zap.Error(err))
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error processing "+method+" request", err.Error())
}
