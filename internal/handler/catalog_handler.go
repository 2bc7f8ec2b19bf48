package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fruitseason/internal/model"
)

// CatalogHandler serves the compiled-in plan and produce catalogs. Both
// listings are public and read-only.
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListFruits godoc
// @Summary List the weekly produce catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog/fruits [get]
func (h *CatalogHandler) ListFruits(c echo.Context) error {
	fruits := model.Catalog()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"fruits": fruits,
		"count":  len(fruits),
	})
}

// ListPlans godoc
// @Summary List the available subscription plans
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog/plans [get]
func (h *CatalogHandler) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"plans": model.Plans(),
	})
}
