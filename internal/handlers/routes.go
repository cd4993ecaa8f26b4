package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the page routes and the JSON API on app.
func RegisterRoutes(app *fiber.App, upload *UploadHandler, analyze *AnalyzeHandler, page *PageHandler) {
	// Pages
	app.Get("/", page.HandleIndex)
	app.Post("/upload", upload.HandleUploadPage)
	app.Post("/clear", upload.HandleClear)
	app.Post("/analyze", analyze.HandleAnalyzePage)
	app.Post("/reset", page.HandleReset)

	// API endpoints
	api := app.Group("/api/v1")
	api.Get("/health", page.HandleHealth)
	api.Post("/ingest", upload.HandleIngest)
	api.Post("/analyze", analyze.HandleAnalyze)
}
