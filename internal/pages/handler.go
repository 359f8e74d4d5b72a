package pages

import "github.com/gofiber/fiber/v2"

type Handler struct {
	repo Repository
}

func NewHandler(r Repository) *Handler {
	return &Handler{repo: r}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/pages/:slug", h.getPage)
}

func (h *Handler) getPage(c *fiber.Ctx) error {
	page, err := h.repo.Get(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Page not found"})
	}
	return c.JSON(page)
}
