package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupHealthRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		status := "UP"
		dbStatus := "UP"

		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			status = "DOWN"
			dbStatus = "DOWN"
		}

		code := fiber.StatusOK
		if status == "DOWN" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
