package handlers

import (
	"pelada-backend/middleware"
	"pelada-backend/models"
	"pelada-backend/services"
	"pelada-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// requireAdmin guards admin-only routes. Fine-grained checks stay in the
// services; this is the route-level equivalent of the ADMIN/SUPER_ADMIN gate.
func requireAdmin(c *fiber.Ctx) error {
	_, profile := principal(c)
	if !models.IsAdminProfile(profile) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "only ADMIN or SUPER_ADMIN can access this resource",
		})
	}
	return c.Next()
}

func SetupUserRoutes(app *fiber.App, users *services.UserService, auth *services.AuthService) {
	// Account creation is open: new players register themselves.
	app.Post("/api/users", func(c *fiber.Ctx) error {
		var req services.CreateUserInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		user, err := users.Create(req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	secured := app.Group("/api/users", middleware.AuthMiddleware(auth))

	secured.Get("/me", func(c *fiber.Ctx) error {
		userID, _ := principal(c)
		user, err := users.FindActiveByID(userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	})

	secured.Get("/", requireAdmin, func(c *fiber.Ctx) error {
		list, err := users.FindAll()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	secured.Get("/:id", requireAdmin, func(c *fiber.Ctx) error {
		user, err := users.FindActiveByID(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	})

	secured.Put("/:id", requireAdmin, func(c *fiber.Ctx) error {
		var req services.UpdateUserInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		user, err := users.Update(c.Params("id"), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	})

	// Profile photo upload, multipart. Goes to object storage when configured,
	// the local uploads dir otherwise.
	secured.Put("/:id/photo", requireAdmin, func(c *fiber.Ctx) error {
		user, err := users.FindActiveByID(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}

		photoFile, err := c.FormFile("photo")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo file is required"})
		}

		key := utils.PhotoKey(user.FullName, photoFile.Filename)
		var photoURL string
		if utils.StorageEnabled() {
			photoURL, err = utils.UploadFileToR2(photoFile, key)
		} else {
			photoURL, err = utils.SavePhotoLocally(photoFile, key)
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store photo"})
		}

		updated, err := users.Update(user.ID, services.UpdateUserInput{Photo: &photoURL})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(updated)
	})

	// Deactivation is reserved for the management tier.
	secured.Delete("/:id", func(c *fiber.Ctx) error {
		_, profile := principal(c)
		if profile != models.ProfileSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "only SUPER_ADMIN can delete users",
			})
		}

		if err := users.Delete(c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
