package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resumesync/internal/models"
	"alfredoptarigan/resumesync/internal/services"
)

var errAnalysisAborted = errors.New("analysis aborted unexpectedly")

type AnalyzeHandler struct {
	analyzer   services.AnalyzerService
	workspaces services.WorkspaceService
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	workspaces services.WorkspaceService,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:   analyzer,
		workspaces: workspaces,
	}
}

// HandleAnalyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	report, err := h.analyzer.Analyze(c.UserContext(), req.ResumeText, req.JobDescription)
	if err != nil {
		log.Printf("❌ Analysis failed: %v", err)
		return errorJSON(c, err)
	}

	return c.JSON(models.AnalyzeResponse{
		Report:       report,
		View:         services.Present(report),
		Notification: services.AnalysisCompleteNotification(),
	})
}

// HandleAnalyzePage handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyzePage(c *fiber.Ctx) error {
	id := workspaceID(c)

	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		h.workspaces.Notify(id, services.NotificationFor(err))
		return backToIndex(c)
	}

	if err := h.workspaces.Begin(id, req.ResumeText, req.JobDescription); err != nil {
		log.Printf("⚠️  Workspace %s: %v", id, err)
		h.workspaces.Notify(id, services.NotificationFor(err))
		return backToIndex(c)
	}

	// Finish always runs, so a panic below cannot leave the workspace stuck analyzing.
	var report *models.AnalysisReport
	notice := services.NotificationFor(errAnalysisAborted)
	defer func() {
		h.workspaces.Finish(id, report, notice)
	}()

	result, err := h.analyzer.Analyze(c.UserContext(), req.ResumeText, req.JobDescription)
	if err != nil {
		log.Printf("❌ Analysis failed for workspace %s: %v", id, err)
		notice = services.NotificationFor(err)
		return backToIndex(c)
	}

	report, notice = result, services.AnalysisCompleteNotification()
	return backToIndex(c)
}
