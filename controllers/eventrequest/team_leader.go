package eventrequest

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"runoot/logger"
	"runoot/middleware"
	service "runoot/services/eventrequest"
	"runoot/types"
	dto "runoot/types/eventrequest"

	"github.com/gofiber/fiber/v2"
)

// TeamLeaderController exposes the team leader side of the event-request
// workflow.
type TeamLeaderController struct {
	Service *service.Service
	Logger  *logger.AsyncLogger
}

func NewTeamLeaderController(svc *service.Service, asyncLogger *logger.AsyncLogger) *TeamLeaderController {
	return &TeamLeaderController{Service: svc, Logger: asyncLogger}
}

// respondServiceError converts workflow errors into the structured response
// envelope; nothing propagates to the transport layer.
func respondServiceError(c *fiber.Ctx, err error) error {
	if key, ok := service.ValidationKey(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:   fiber.StatusBadRequest,
			Message:  "Please fill in all required fields",
			ErrorKey: key,
		})
	}

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrQuoteNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrNotReady),
		errors.Is(err, service.ErrNotQuoting),
		errors.Is(err, service.ErrQuotingClosed),
		errors.Is(err, service.ErrIllegalTransition):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: err.Error(),
		})
	}

	logger.Error("event request operation failed", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
	})
}

// successMessage appends best-effort side-effect warnings to the base text
func successMessage(base string, warnings []string) string {
	if len(warnings) == 0 {
		return base
	}
	return base + " (" + strings.Join(warnings, "; ") + ")"
}

// Overview returns the caller's requests, update log, quotes, showcase and
// unread badges in one payload.
func (tc *TeamLeaderController) Overview(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	overview, err := tc.Service.Overview(c.Context(), callerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Event requests retrieved successfully",
		Data:    overview,
	})
}

// Create submits a new event request. Accepts JSON, or multipart form-data
// when an image rides along.
func (tc *TeamLeaderController) Create(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	in, image, parseErr := parseCreatePayload(c)
	if parseErr != nil {
		logger.Error("failed to parse request body", parseErr)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	req, warnings, err := tc.Service.Create(c.Context(), callerID, in, image)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: successMessage("Event request submitted for review", warnings),
		Data:    req,
	})
}

// UpdateRequest resubmits a request that staff sent back for changes
func (tc *TeamLeaderController) UpdateRequest(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	in, image, parseErr := parseUpdatePayload(c)
	if parseErr != nil {
		logger.Error("failed to parse request body", parseErr)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	in.EventRequestID = requestIDFromPath(c, in.EventRequestID)
	req, warnings, err := tc.Service.Update(c.Context(), callerID, in, image)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: successMessage("Event request resubmitted for review", warnings),
		Data:    req,
	})
}

// ChooseQuote selects one of the request's quotes
func (tc *TeamLeaderController) ChooseQuote(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var in dto.ChooseQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	in.EventRequestID = requestIDFromPath(c, in.EventRequestID)
	req, err := tc.Service.ChooseQuote(c.Context(), callerID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quote selected, your request is approved",
		Data:    req,
	})
}

// ReplyToAdmin posts a direct message on the request thread
func (tc *TeamLeaderController) ReplyToAdmin(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
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
	if err := tc.Service.ReplyToAdmin(c.Context(), callerID, in); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Message sent",
	})
}

// MarkSeen acknowledges all activity on one request
func (tc *TeamLeaderController) MarkSeen(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var in dto.MarkSeenRequest
	if err := c.BodyParser(&in); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	in.EventRequestID = requestIDFromPath(c, in.EventRequestID)
	if err := tc.Service.MarkSeen(c.Context(), callerID, in); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Marked as seen",
	})
}

// parseCreatePayload reads the create fields from JSON or multipart
// form-data; the image only arrives through the latter.
func parseCreatePayload(c *fiber.Ctx) (dto.CreateRequest, *multipart.FileHeader, error) {
	var in dto.CreateRequest

	if !strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		err := c.BodyParser(&in)
		return in, nil, err
	}

	in.EventName = c.FormValue("event_name")
	in.EventLocation = c.FormValue("event_location")
	in.EventCountry = c.FormValue("event_country")
	in.RequestType = c.FormValue("request_type")
	in.PublicNote = c.FormValue("public_note")
	in.QuotingNotes = c.FormValue("quoting_notes")
	if v := c.FormValue("people_count"); v != "" {
		in.PeopleCount = atoiOrZero(v)
	}
	if v := c.FormValue("event_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			in.EventDate = t
		}
	}
	if v := c.FormValue("desired_deadline"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			in.DesiredDeadline = &t
		}
	}

	image, err := c.FormFile("image")
	if err != nil {
		// The image part is optional
		image = nil
	}
	return in, image, nil
}

func parseUpdatePayload(c *fiber.Ctx) (dto.UpdateRequest, *multipart.FileHeader, error) {
	var in dto.UpdateRequest

	if !strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		err := c.BodyParser(&in)
		return in, nil, err
	}

	create, image, err := parseCreatePayload(c)
	if err != nil {
		return in, nil, err
	}
	in.CreateRequest = create
	in.EventRequestID = uint(atoiOrZero(c.FormValue("event_request_id")))
	return in, image, nil
}

// requestIDFromPath lets the path parameter win over any id in the body
func requestIDFromPath(c *fiber.Ctx, fallback uint) uint {
	if id, err := c.ParamsInt("id"); err == nil && id > 0 {
		return uint(id)
	}
	return fallback
}

// atoiOrZero treats anything that is not a non-negative integer as absent
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
