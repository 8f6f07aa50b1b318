package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/taskrest/internal/service"
	"github.com/talkincode/taskrest/internal/webserver"
)

func registerCategoryRoutes(srv *webserver.WebServer, svc service.CategoryService) {
	srv.ApiGET("/product-categories", func(c echo.Context) error {
		categories, err := svc.GetAllCategories(c.Request().Context())
		if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
		}
		return ok(c, categories)
	})
}
