// Package adminapi exposes the order desk resources over HTTP.
package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/taskrest/internal/repository"
	"github.com/talkincode/taskrest/internal/service"
	"github.com/talkincode/taskrest/internal/webserver"
)

// Services bundles what the handlers depend on
type Services struct {
	Products     service.ProductService
	OrderDetails service.OrderDetailService
	Categories   service.CategoryService
}

// Init registers all resource routes on srv
func Init(srv *webserver.WebServer, svc Services) {
	registerProductRoutes(srv, &productHandler{svc: svc.Products})
	registerOrderDetailRoutes(srv, &orderDetailHandler{svc: svc.OrderDetails})
	registerCategoryRoutes(srv, svc.Categories)
	registerMetricsRoutes(srv)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, webserver.ErrorResponse{Code: code, Message: message, Details: details})
}

// requestID reads the entity id from the :id path segment or the id query
// parameter. present is false when neither is given.
func requestID(c echo.Context) (id int64, present bool, err error) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.QueryParam("id")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	return id, true, err
}

// isInputError reports service errors caused by the request content
func isInputError(err error) bool {
	return errors.Is(err, service.ErrInvalidEntity) || errors.Is(err, repository.ErrUnknownCategory)
}
