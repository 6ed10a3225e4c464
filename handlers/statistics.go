package handlers

import (
	"pelada-backend/middleware"
	"pelada-backend/models"
	"pelada-backend/services"
	"pelada-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// statisticsResponse renders minutes played as "HH:mm:ss" on top of the raw
// model fields.
type statisticsResponse struct {
	models.UserStatistics
	MinutesPlayed string `json:"minutes_played"`
}

func toStatisticsResponse(stats models.UserStatistics) statisticsResponse {
	return statisticsResponse{
		UserStatistics: stats,
		MinutesPlayed:  utils.FormatDuration(stats.MinutesPlayed),
	}
}

func toStatisticsResponses(list []models.UserStatistics) []statisticsResponse {
	out := make([]statisticsResponse, len(list))
	for i, stats := range list {
		out[i] = toStatisticsResponse(stats)
	}
	return out
}

func SetupStatisticsRoutes(app *fiber.App, stats *services.StatisticsService, auth *services.AuthService) {
	secured := app.Group("/api/users", middleware.AuthMiddleware(auth))

	secured.Get("/me/statistics", func(c *fiber.Ctx) error {
		userID, _ := principal(c)
		result, err := stats.GetOrCreate(userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toStatisticsResponse(*result))
	})

	secured.Get("/:userId/statistics", func(c *fiber.Ctx) error {
		result, err := stats.GetOrCreate(c.Params("userId"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toStatisticsResponse(*result))
	})

	// Full patch: minutes accumulate, the other counters are replaced.
	secured.Put("/:userId/statistics", func(c *fiber.Ctx) error {
		requesterID, _ := principal(c)

		var patch services.StatisticsPatch
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		result, err := stats.UpdateStatistics(requesterID, c.Params("userId"), patch)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toStatisticsResponse(*result))
	})

	secured.Put("/:userId/statistics/minutes", func(c *fiber.Ctx) error {
		requesterID, _ := principal(c)

		var req struct {
			MinutesPlayed string `json:"minutes_played"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		result, err := stats.ApplyMinutesDelta(requesterID, c.Params("userId"), req.MinutesPlayed)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toStatisticsResponse(*result))
	})

	counterRoute := func(path string, field services.CounterField) {
		secured.Put("/:userId/statistics/"+path, func(c *fiber.Ctx) error {
			requesterID, _ := principal(c)

			var req map[string]int
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
			}
			delta, ok := req[path]
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": path + " is required"})
			}

			result, err := stats.ApplyCounterDelta(requesterID, c.Params("userId"), field, delta)
			if err != nil {
				return respondError(c, err)
			}
			return c.JSON(toStatisticsResponse(*result))
		})
	}

	counterRoute("goals", services.FieldGoals)
	counterRoute("complaints", services.FieldComplaints)
	counterRoute("victories", services.FieldVictories)
	counterRoute("draws", services.FieldDraws)
	counterRoute("defeats", services.FieldDefeats)
}
