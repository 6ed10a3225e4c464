package handlers

import (
	"pelada-backend/middleware"
	"pelada-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRankingRoutes(app *fiber.App, rankings *services.RankingService, auth *services.AuthService) {
	secured := app.Group("/api/ranking", middleware.AuthMiddleware(auth))

	// /api/ranking/goals, /complaints, /victories, /draws, /defeats,
	// /minutes-played
	secured.Get("/:metric", func(c *fiber.Ctx) error {
		ranking, err := rankings.Rank(c.Params("metric"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(ranking)
	})
}
