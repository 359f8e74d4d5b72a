package recommended

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/chadastore/storefront/internal/product"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products/:id<[0-9]+>/related", h.getRelated)
}

func (h *Handler) getRelated(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	limit := 4
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	items, err := h.service.Related(c.Context(), id, limit)
	if err != nil {
		// the strip is decorative, an upstream hiccup should not break the page
		return c.JSON([]product.Item{})
	}
	return c.JSON(items)
}
