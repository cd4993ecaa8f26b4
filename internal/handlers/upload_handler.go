package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resumesync/internal/models"
	"alfredoptarigan/resumesync/internal/services"
)

const uploadField = "resume"

var errNoFile = errors.New("no resume file uploaded")

type UploadHandler struct {
	ingestion    services.IngestionService
	workspaces   services.WorkspaceService
	advisorySize int64
}

func NewUploadHandler(
	ingestion services.IngestionService,
	workspaces services.WorkspaceService,
	advisorySize int64,
) *UploadHandler {
	return &UploadHandler{
		ingestion:    ingestion,
		workspaces:   workspaces,
		advisorySize: advisorySize,
	}
}

// HandleIngest handles POST /api/v1/ingest
func (h *UploadHandler) HandleIngest(c *fiber.Ctx) error {
	upload, err := h.readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:        err.Error(),
			Notification: services.UploadFailedNotification(),
		})
	}

	doc, err := h.ingestion.Ingest(*upload)
	if err != nil {
		log.Printf("⚠️  Ingestion of %s failed: %v", upload.FileName, err)
		return errorJSON(c, err)
	}

	return c.JSON(models.IngestResponse{
		Document:     doc,
		Notification: services.UploadedNotification(doc),
	})
}

// HandleUploadPage handles POST /upload
func (h *UploadHandler) HandleUploadPage(c *fiber.Ctx) error {
	id := workspaceID(c)

	upload, err := h.readUpload(c)
	if err != nil {
		h.workspaces.Notify(id, services.UploadFailedNotification())
		return backToIndex(c)
	}

	doc, err := h.ingestion.Ingest(*upload)
	if err != nil {
		log.Printf("⚠️  Ingestion of %s failed: %v", upload.FileName, err)
		h.workspaces.Notify(id, services.NotificationFor(err))
		return backToIndex(c)
	}

	h.workspaces.SetDocument(id, doc)
	return backToIndex(c)
}

// HandleClear handles POST /clear
func (h *UploadHandler) HandleClear(c *fiber.Ctx) error {
	h.workspaces.ClearDocument(workspaceID(c))
	return backToIndex(c)
}

func (h *UploadHandler) readUpload(c *fiber.Ctx) (*models.Upload, error) {
	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		return nil, errNoFile
	}

	if h.advisorySize > 0 && fileHeader.Size > h.advisorySize {
		log.Printf("⚠️  %s is %d bytes, above the advised %d bytes", fileHeader.Filename, fileHeader.Size, h.advisorySize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &models.Upload{
		FileName:  fileHeader.Filename,
		MediaType: services.MediaTypeFor(fileHeader.Filename, fileHeader.Header.Get("Content-Type")),
		Data:      data,
	}, nil
}
