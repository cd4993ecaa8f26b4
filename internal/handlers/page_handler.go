package handlers

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resumesync/internal/models"
	"alfredoptarigan/resumesync/internal/services"
)

type PageHandler struct {
	workspaces services.WorkspaceService
	provider   string
}

func NewPageHandler(workspaces services.WorkspaceService, provider string) *PageHandler {
	return &PageHandler{
		workspaces: workspaces,
		provider:   provider,
	}
}

// HandleIndex handles GET /
// A pending notification is shown once and then cleared.
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	ws := h.workspaces.Take(workspaceID(c))

	page := &models.Page{
		FileName:       ws.FileName,
		ResumeText:     ws.ResumeText,
		JobDescription: ws.JobDescription,
		Analyzing:      ws.Analyzing,
		Notice:         ws.Notice,
	}
	if ws.Report != nil {
		page.View = services.Present(ws.Report)
	}

	var buf bytes.Buffer
	if err := services.RenderHTML(&buf, page); err != nil {
		return err
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// HandleReset handles POST /reset
func (h *PageHandler) HandleReset(c *fiber.Ctx) error {
	h.workspaces.Reset(workspaceID(c))
	return backToIndex(c)
}

// HandleHealth handles GET /api/v1/health
func (h *PageHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"provider": h.provider,
		"time":     time.Now(),
	})
}
