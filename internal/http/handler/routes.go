package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"imagehub/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers decode input and delegate to the injected service.
func RegisterRoutes(app *fiber.App, db *sql.DB, imgSvc service.ImageService) {
	// Health probes
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	img := app.Group("/image")
	img.Get("/read", ListImages(imgSvc))
	img.Post("/create", UploadImage(imgSvc))
	img.Get("/read/:id/properties", ImageProperties(imgSvc))
	img.Get("/read/:id", ReadImage(imgSvc))
	img.Get("/verification-portal", VerificationPortal(imgSvc))
	img.Post("/update-status", UpdateImageStatus(imgSvc))
	// Fixed paths must be registered before the parameterized delete.
	img.Delete("/delete-rejected", DeleteRejected(imgSvc))
	img.Delete("/:id", DeleteImage(imgSvc))

	date := app.Group("/date")
	date.Get("/latest", LatestDate(imgSvc))
	date.Get("/:day/images", ImagesByDate(imgSvc))
}
