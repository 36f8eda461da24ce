package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/plantops/chillerwatch/internal/domain"
	"github.com/plantops/chillerwatch/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	g := app.Group("/")

	g.Post("readings", func(c *fiber.Ctx) error {
		var body struct {
			domain.Reading
			ActorID int64 `json:"actor_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		result, err := svcs.Readings.IngestReading(c.Context(), &body.Reading, body.ActorID)
		if err != nil {
			return fail(c, err)
		}
		if result.Quarantined != nil {
			return c.JSON(fiber.Map{"quarantined": result.Quarantined})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"log": result.Log})
	})

	g.Put("readings/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad id"})
		}
		var body struct {
			domain.Reading
			ActorID int64 `json:"actor_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		cl, err := svcs.Readings.UpdateReading(c.Context(), id, &body.Reading, body.ActorID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"log": cl})
	})

	g.Delete("readings/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad id"})
		}
		if err := svcs.Readings.DeleteReading(c.Context(), id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	g.Get("equipment/:id/readings", listHandler(func(c *fiber.Ctx, id int64, limit int) (any, error) {
		return svcs.Repos.Logs.ListByEquipment(c.Context(), id, limit)
	}))
	g.Get("equipment/:id/quarantine", listHandler(func(c *fiber.Ctx, id int64, limit int) (any, error) {
		return svcs.Repos.Quarantine.ListByEquipment(c.Context(), id, limit)
	}))
	g.Get("equipment/:id/timeline", listHandler(func(c *fiber.Ctx, id int64, limit int) (any, error) {
		return svcs.Repos.Timeline.ListByEquipment(c.Context(), id, limit)
	}))
}

func listHandler(list func(c *fiber.Ctx, id int64, limit int) (any, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad id"})
		}
		limit := c.QueryInt("limit", 100)
		items, err := list(c, id, limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDuplicateReading):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrBadTimestamp):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrEquipmentNotFound),
		errors.Is(err, domain.ErrFacilityNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
