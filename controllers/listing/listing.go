package listing

import (
	"errors"
	"fmt"

	"runoot/logger"
	"runoot/middleware"
	listingModel "runoot/models/listing"
	"runoot/services/storage"
	"runoot/types"
	listingTypes "runoot/types/listing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListingController handles marketplace listing CRUD and bookmarks
type ListingController struct {
	DB     *gorm.DB
	Images *storage.Store
	Logger *logger.AsyncLogger
}

func NewListingController(db *gorm.DB, images *storage.Store, asyncLogger *logger.AsyncLogger) *ListingController {
	return &ListingController{DB: db, Images: images, Logger: asyncLogger}
}

// Index lists active listings, optionally filtered by kind and event name
func (lc *ListingController) Index(c *fiber.Ctx) error {
	query := lc.DB.Preload("Owner").Where("status = ?", listingModel.StatusActive)

	if kind := c.Query("kind"); kind != "" {
		if !listingModel.ListingKind(kind).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid listing kind",
			})
		}
		query = query.Where("kind = ?", kind)
	}
	if event := c.Query("event"); event != "" {
		query = query.Where("event_name ILIKE ?", "%"+event+"%")
	}

	var listings []listingModel.Listing
	if err := query.Order("created_at DESC").Limit(100).Find(&listings).Error; err != nil {
		logger.Error("failed to list listings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Listings retrieved successfully",
		Data:    listings,
	})
}

// Mine lists the caller's own listings, any status
func (lc *ListingController) Mine(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var listings []listingModel.Listing
	if err := lc.DB.Where("owner_id = ?", callerID).Order("created_at DESC").Find(&listings).Error; err != nil {
		logger.Error("failed to list own listings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Listings retrieved successfully",
		Data:    listings,
	})
}

// Store creates a new listing
func (lc *ListingController) Store(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var req listingTypes.ListingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}
	row := listingModel.Listing{
		OwnerID:       callerID,
		Kind:          listingModel.ListingKind(req.Kind),
		Status:        listingModel.StatusActive,
		EventName:     req.EventName,
		EventLocation: req.EventLocation,
		EventCountry:  req.EventCountry,
		EventDate:     req.EventDate,
		Title:         req.Title,
		Price:         req.Price,
		Currency:      currency,
		PeopleCount:   req.PeopleCount,
	}
	if req.Description != "" {
		row.Description = &req.Description
	}

	if err := lc.DB.Create(&row).Error; err != nil {
		logger.Error("failed to create listing", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create listing",
		})
	}

	logger.Success(fmt.Sprintf("listing created: %d (%s)", row.ID, row.Title))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Listing created successfully",
		Data:    row,
	})
}

// Update edits an owned listing while it is still on the market
func (lc *ListingController) Update(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	listingID, err := c.ParamsInt("id")
	if err != nil || listingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid listing id",
		})
	}

	var req listingTypes.ListingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	row, err := lc.loadOwned(uint(listingID), callerID)
	if err != nil {
		return respondListingError(c, err)
	}
	if !row.Status.CanBeEdited() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: fmt.Sprintf("A %s listing can no longer be edited", row.Status),
		})
	}

	row.Kind = listingModel.ListingKind(req.Kind)
	row.EventName = req.EventName
	row.EventLocation = req.EventLocation
	row.EventCountry = req.EventCountry
	row.EventDate = req.EventDate
	row.Title = req.Title
	row.Price = req.Price
	row.PeopleCount = req.PeopleCount
	if req.Currency != "" {
		row.Currency = req.Currency
	}
	if req.Description != "" {
		row.Description = &req.Description
	} else {
		row.Description = nil
	}
	if req.Status != "" {
		row.Status = listingModel.ListingStatus(req.Status)
	}

	if err := lc.DB.Save(row).Error; err != nil {
		logger.Error("failed to update listing", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update listing",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Listing updated successfully",
		Data:    row,
	})
}

// UploadImage attaches an image to an owned listing
func (lc *ListingController) UploadImage(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	listingID, err := c.ParamsInt("id")
	if err != nil || listingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid listing id",
		})
	}

	row, err := lc.loadOwned(uint(listingID), callerID)
	if err != nil {
		return respondListingError(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Image file is required",
		})
	}

	url, key, err := lc.Images.SaveImage(callerID, row.ID, file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	oldKey := ""
	if row.ImagePath != nil {
		oldKey = *row.ImagePath
	}
	row.ImageURL = &url
	row.ImagePath = &key
	if err := lc.DB.Save(row).Error; err != nil {
		logger.Error("failed to attach image to listing", err)
		lc.Images.Delete(key)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update listing image",
		})
	}
	if oldKey != "" {
		lc.Images.Delete(oldKey)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Image uploaded successfully",
		Data:    row,
	})
}

// Withdraw takes an owned listing off the market
func (lc *ListingController) Withdraw(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	listingID, err := c.ParamsInt("id")
	if err != nil || listingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid listing id",
		})
	}

	row, err := lc.loadOwned(uint(listingID), callerID)
	if err != nil {
		return respondListingError(c, err)
	}

	row.Status = listingModel.StatusWithdrawn
	if err := lc.DB.Save(row).Error; err != nil {
		logger.Error("failed to withdraw listing", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to withdraw listing",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Listing withdrawn",
		Data:    row,
	})
}

// Save bookmarks a listing for the caller
func (lc *ListingController) Save(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	listingID, err := c.ParamsInt("id")
	if err != nil || listingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid listing id",
		})
	}

	var row listingModel.Listing
	if err := lc.DB.First(&row, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Listing not found",
			})
		}
		logger.Error("failed to load listing", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	saved := listingModel.SavedListing{ProfileID: callerID, ListingID: row.ID}
	err = lc.DB.Where("profile_id = ? AND listing_id = ?", callerID, row.ID).
		FirstOrCreate(&saved).Error
	if err != nil {
		logger.Error("failed to save listing", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save listing",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Listing saved",
	})
}

// Unsave removes a bookmark
func (lc *ListingController) Unsave(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	listingID, err := c.ParamsInt("id")
	if err != nil || listingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid listing id",
		})
	}

	err = lc.DB.Where("profile_id = ? AND listing_id = ?", callerID, listingID).
		Delete(&listingModel.SavedListing{}).Error
	if err != nil {
		logger.Error("failed to unsave listing", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to remove saved listing",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Listing removed from saved",
	})
}

// Saved lists the caller's bookmarked listings
func (lc *ListingController) Saved(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	var saved []listingModel.SavedListing
	err = lc.DB.Preload("Listing").Preload("Listing.Owner").
		Where("profile_id = ?", callerID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		logger.Error("failed to list saved listings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Saved listings retrieved successfully",
		Data:    saved,
	})
}

// errListingNotFound covers both missing and not-owned rows, so a lookup
// against another user's listing is indistinguishable from a miss.
var errListingNotFound = errors.New("listing not found")

// loadOwned fetches a listing scoped to its owner
func (lc *ListingController) loadOwned(listingID, callerID uint) (*listingModel.Listing, error) {
	var row listingModel.Listing
	err := lc.DB.Where("id = ? AND owner_id = ?", listingID, callerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// respondListingError converts a load failure into the response envelope
func respondListingError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errListingNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Listing not found",
		})
	}
	logger.Error("failed to load listing", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
	})
}
