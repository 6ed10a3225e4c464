package handlers

import (
	"pelada-backend/middleware"
	"pelada-backend/models"
	"pelada-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, games *services.GameService, confirmations *services.ConfirmationService, auth *services.AuthService) {
	secured := app.Group("/api/games", middleware.AuthMiddleware(auth))

	// The listing only ever has the one released game, or nothing.
	secured.Get("/", func(c *fiber.Ctx) error {
		game, err := games.FindReleased()
		if err != nil {
			return respondError(c, err)
		}
		if game == nil {
			return c.JSON([]models.Game{})
		}
		return c.JSON([]models.Game{*game})
	})

	secured.Post("/", func(c *fiber.Ctx) error {
		_, profile := principal(c)

		var req services.CreateGameInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		game, message, err := games.Create(profile, req)
		if err != nil {
			return respondError(c, err)
		}

		resp := fiber.Map{
			"id":         game.ID,
			"game_date":  game.GameDate,
			"released":   game.Released,
			"created_at": game.CreatedAt,
			"updated_at": game.UpdatedAt,
		}
		if message != "" {
			resp["message"] = message
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	})

	secured.Get("/:id", func(c *fiber.Ctx) error {
		game, err := games.FindByID(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(game)
	})

	// Closes the list: released goes to false, confirmations stop.
	secured.Put("/:id/release", func(c *fiber.Ctx) error {
		_, profile := principal(c)
		game, err := games.Release(profile, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(game)
	})

	// Post-game statistics for every confirmed player, all-or-nothing.
	secured.Put("/:id/statistics", func(c *fiber.Ctx) error {
		requesterID, _ := principal(c)

		var req struct {
			Statistics []services.BulkStatisticsEntry `json:"statistics"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		updated, err := games.BulkUpdateStatistics(requesterID, c.Params("id"), req.Statistics)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"game_id":       c.Params("id"),
			"updated_count": len(updated),
			"statistics":    toStatisticsResponses(updated),
		})
	})

	secured.Post("/:gameId/confirmations", func(c *fiber.Ctx) error {
		requesterID, _ := principal(c)

		var req services.ConfirmNameInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		confirmation, err := confirmations.ConfirmName(c.Params("gameId"), requesterID, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(confirmation)
	})

	secured.Get("/:gameId/confirmations", func(c *fiber.Ctx) error {
		_, profile := principal(c)
		list, err := confirmations.ListForGame(c.Params("gameId"), profile)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"game_id":       c.Params("gameId"),
			"confirmations": list,
			"total":         len(list),
		})
	})

	// The caller's own confirmation plus the guests they registered.
	secured.Get("/:gameId/confirmations/me", func(c *fiber.Ctx) error {
		userID, _ := principal(c)
		list, err := confirmations.ListRelatedToUser(c.Params("gameId"), userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"game_id":       c.Params("gameId"),
			"confirmations": list,
			"total":         len(list),
		})
	})
}
