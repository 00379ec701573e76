package routes

import (
	"time"

	"runoot/constants"
	"runoot/controllers/auth"
	eventRequestController "runoot/controllers/eventrequest"
	listingController "runoot/controllers/listing"
	messageController "runoot/controllers/message"
	"runoot/logger"
	"runoot/middleware"
	eventRequestService "runoot/services/eventrequest"
	"runoot/services/mailer"
	"runoot/services/storage"
	"runoot/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	imageStore := storage.New()
	mail := mailer.New()

	requestService := eventRequestService.NewService(
		eventRequestService.NewGormRepository(db),
		eventRequestService.NewGormNotifier(db),
		mail,
		imageStore,
	)

	authController := auth.NewAuthController(db, asyncLogger)
	teamLeaderController := eventRequestController.NewTeamLeaderController(requestService, asyncLogger)
	adminController := eventRequestController.NewAdminController(requestService, asyncLogger)
	listings := listingController.NewListingController(db, imageStore, asyncLogger)
	messages := messageController.NewMessageController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Persist every API request/response pair off the hot path
	app.Use("/api", func(c *fiber.Ctx) error {
		requestBody := string(c.Body())
		requestHeaders := c.Request().Header.String()

		err := c.Next()

		asyncLogger.Log(types.LogEntry{
			Method:          c.Method(),
			URL:             c.OriginalURL(),
			RequestBody:     requestBody,
			ResponseBody:    string(c.Response().Body()),
			RequestHeaders:  requestHeaders,
			ResponseHeaders: c.Response().Header.String(),
			StatusCode:      c.Response().StatusCode(),
			CreatedAt:       time.Now(),
		})
		return err
	})

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "runoot",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)

	/*=============================================================================
	| Authenticated Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuthentication())
	authGroup.Get("/profile", authController.Profile)
	authGroup.Post("/logout", authController.Logout)

	/*=============================================================================
	| Team Leader Event Request Routes
	===============================================================================*/
	tlGroup := api.Group("/team-leader/event-requests").Use(middleware.RequireRoles(
		constants.RoleTeamLeader,
	))
	tlGroup.Get("/", teamLeaderController.Overview)
	tlGroup.Post("/", teamLeaderController.Create)
	tlGroup.Put("/:id", teamLeaderController.UpdateRequest)
	tlGroup.Post("/:id/choose-quote", teamLeaderController.ChooseQuote)
	tlGroup.Post("/:id/reply", teamLeaderController.ReplyToAdmin)
	tlGroup.Post("/:id/mark-seen", teamLeaderController.MarkSeen)

	/*=============================================================================
	| Admin Event Request Routes
	===============================================================================*/
	adminGroup := api.Group("/admin/event-requests").Use(middleware.RequireRoles(
		constants.StaffRoles...,
	))
	adminGroup.Post("/:id/status", adminController.SetStatus)
	adminGroup.Post("/:id/quotes", adminController.SubmitQuote)
	adminGroup.Post("/:id/reply", adminController.ReplyToTeamLeader)
	adminGroup.Post("/scan-quote", adminController.ScanQuote)

	/*=============================================================================
	| Marketplace Listing Routes
	===============================================================================*/
	listingGroup := api.Group("/listings").Use(middleware.RequireAuthentication())
	listingGroup.Get("/", listings.Index)
	listingGroup.Get("/mine", listings.Mine)
	listingGroup.Get("/saved", listings.Saved)
	listingGroup.Post("/", listings.Store)
	listingGroup.Put("/:id", listings.Update)
	listingGroup.Post("/:id/image", listings.UploadImage)
	listingGroup.Post("/:id/withdraw", listings.Withdraw)
	listingGroup.Post("/:id/save", listings.Save)
	listingGroup.Delete("/:id/save", listings.Unsave)

	/*=============================================================================
	| Conversation Routes
	===============================================================================*/
	conversationGroup := api.Group("/conversations").Use(middleware.RequireAuthentication())
	conversationGroup.Get("/", messages.Index)
	conversationGroup.Get("/:id", messages.Show)
	conversationGroup.Post("/", messages.Start)
	conversationGroup.Post("/send", messages.Send)
}
