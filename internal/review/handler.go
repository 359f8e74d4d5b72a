package review

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/chadastore/storefront/internal/upstream"
)

type Handler struct {
	reviews Reviews
}

func NewHandler(reviews Reviews) *Handler {
	return &Handler{reviews: reviews}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products/:id<[0-9]+>/reviews", h.getReviews)
	app.Get("/api/products/:id<[0-9]+>/reviews/stats", h.getStats)
	app.Post("/api/products/:id<[0-9]+>/reviews", h.createReview)
}

func (h *Handler) getReviews(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	reviews, err := h.reviews.ByProduct(c.Context(), id)
	if err != nil {
		// reviews are decoration; the product page still works without them
		return c.JSON([]Review{})
	}
	return c.JSON(reviews)
}

func (h *Handler) getStats(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	stats, err := h.reviews.Stats(c.Context(), id)
	if err != nil {
		return c.JSON(Stats{})
	}
	return c.JSON(stats)
}

func (h *Handler) createReview(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(NewReview)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.ProductID = id

	if ves := validateNewReview(payload); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.reviews.Create(c.Context(), *payload)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return c.Status(apiErr.Status).JSON(fiber.Map{"message": apiErr.Message})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "could not submit review"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
