package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resumesync/internal/models"
	"alfredoptarigan/resumesync/internal/services"
)

const workspaceCookie = "resumesync_workspace"

// statusFor maps the service error taxonomy to an HTTP status code.
func statusFor(err error) int {
	var (
		missing     *services.MissingInputError
		unsupported *services.UnsupportedTypeError
		extraction  *services.ExtractionFailedError
		invalid     *services.InvalidInputError
		cfgErr      *services.ConfigurationError
		upstream    *services.UpstreamError
		empty       *services.EmptyResponseError
		malformed   *services.MalformedResponseError
	)

	switch {
	case errors.As(err, &missing), errors.As(err, &unsupported):
		return fiber.StatusBadRequest
	case errors.As(err, &extraction), errors.As(err, &invalid):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrAnalysisInProgress):
		return fiber.StatusConflict
	case errors.As(err, &cfgErr):
		return fiber.StatusInternalServerError
	case errors.As(err, &upstream), errors.As(err, &empty), errors.As(err, &malformed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(models.ErrorResponse{
		Error:        err.Error(),
		Notification: services.NotificationFor(err),
	})
}

// workspaceID returns the workspace of the requesting browser, issuing a cookie on first visit.
func workspaceID(c *fiber.Ctx) uuid.UUID {
	if id, err := uuid.Parse(c.Cookies(workspaceCookie)); err == nil {
		return id
	}

	id := uuid.New()
	c.Cookie(&fiber.Cookie{
		Name:     workspaceCookie,
		Value:    id.String(),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	return id
}

func backToIndex(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}
