package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/pkg/paging"
)

// pageFromCtx sanea page/page_size del query string.
func pageFromCtx(c *fiber.Ctx) paging.Page {
	return paging.FromQuery(c.QueryInt("page", 1), c.QueryInt("page_size", paging.DefaultPageSize))
}

// boolQuery devuelve el query param como *bool, o nil si no viene o no parsea.
func boolQuery(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
