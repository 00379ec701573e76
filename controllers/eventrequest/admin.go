package eventrequest

import (
	"fmt"
	"io"

	"runoot/logger"
	"runoot/middleware"
	service "runoot/services/eventrequest"
	"runoot/services/quotescan"
	"runoot/services/storage"
	"runoot/types"
	dto "runoot/types/eventrequest"

	"github.com/gofiber/fiber/v2"
)

// AdminController exposes the staff side: status transitions, quoting and
// thread replies.
type AdminController struct {
	Service *service.Service
	Logger  *logger.AsyncLogger
}

func NewAdminController(svc *service.Service, asyncLogger *logger.AsyncLogger) *AdminController {
	return &AdminController{Service: svc, Logger: asyncLogger}
}

// SetStatus applies a staff-driven status transition
func (ac *AdminController) SetStatus(c *fiber.Ctx) error {
	adminID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var in dto.SetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	in.EventRequestID = requestIDFromPath(c, in.EventRequestID)
	req, err := ac.Service.SetStatus(c.Context(), adminID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Request moved to %s", req.Status),
		Data:    req,
	})
}

// SubmitQuote attaches a partner agency offer to a request
func (ac *AdminController) SubmitQuote(c *fiber.Ctx) error {
	adminID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var in dto.SubmitQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	in.EventRequestID = requestIDFromPath(c, in.EventRequestID)
	quote, err := ac.Service.SubmitQuote(c.Context(), adminID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Quote added",
		Data:    quote,
	})
}

// ReplyToTeamLeader posts a staff message on the request thread
func (ac *AdminController) ReplyToTeamLeader(c *fiber.Ctx) error {
	adminID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var in dto.ReplyRequest
	if err := c.BodyParser(&in); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	in.EventRequestID = requestIDFromPath(c, in.EventRequestID)
	if err := ac.Service.ReplyToTeamLeader(c.Context(), adminID, in); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Message sent",
	})
}

// ScanQuote extracts structured quote fields from an uploaded offer image,
// pre-filling the quote form for staff.
func (ac *AdminController) ScanQuote(c *fiber.Ctx) error {
	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "No document file provided",
		})
	}

	mimeType := file.Header.Get("Content-Type")
	if !quotescan.IsSupportedType(mimeType) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: fmt.Sprintf("Unsupported document type: %s", mimeType),
		})
	}
	if file.Size > storage.MaxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "File size too large, maximum is 8 MiB",
		})
	}

	src, err := file.Open()
	if err != nil {
		logger.Error("failed to open uploaded document", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		logger.Error("failed to read uploaded document", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	scanned, err := quotescan.Scan(c.Context(), fileBytes, mimeType)
	if err != nil {
		logger.Error("offer document scan failed", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Could not extract quote details from the document",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Offer document scanned successfully",
		Data:    scanned,
	})
}
