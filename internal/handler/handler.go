package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
	"blood-connect/internal/service"
	"blood-connect/internal/service/auth"
)

type Handlers struct {
	Auth         *AuthHandler
	Request      *RequestHandler
	Inventory    *InventoryHandler
	Donor        *DonorHandler
	Camp         *CampHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Request:      NewRequestHandler(services.Blood),
		Inventory:    NewInventoryHandler(services.Blood),
		Donor:        NewDonorHandler(services.Donor, services.Blood),
		Camp:         NewCampHandler(services.Camp),
		Notification: NewNotificationHandler(services.Notification),
		Admin:        NewAdminHandler(services.Blood, services.Donor, services.Snapshot),
	}
}

func RegisterRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(authService))
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	users := protected.Group("/users")
	users.Get("/me", h.Auth.GetProfile)
	users.Put("/me", h.Auth.UpdateProfile)
	users.Put("/me/password", h.Auth.ChangePassword)

	requests := protected.Group("/requests")
	requests.Post("/", middleware.RequireRole(domain.RoleRecipient), h.Request.Create)
	requests.Get("/", h.Request.List)
	requests.Get("/mine", h.Request.ListMine)
	requests.Get("/:id", h.Request.Get)
	requests.Post("/:id/match", adminOnly, h.Request.Match)
	requests.Patch("/:id/status", adminOnly, h.Request.UpdateStatus)
	requests.Post("/:id/advance", adminOnly, h.Request.Advance)
	requests.Post("/:id/cancel", h.Request.Cancel)

	inventory := protected.Group("/inventory")
	inventory.Get("/", h.Inventory.List)
	inventory.Post("/adjust", adminOnly, h.Inventory.Adjust)
	inventory.Patch("/:id", adminOnly, h.Inventory.Update)
	inventory.Get("/:bloodGroup", h.Inventory.GetByType)

	donors := protected.Group("/donors")
	donors.Get("/", h.Donor.Search)
	donors.Get("/compatible", h.Donor.Compatible)
	donors.Get("/nearby", h.Donor.Nearby)
	donors.Get("/:id", h.Donor.Get)
	donors.Get("/:id/stats", middleware.RequireSelfOrAdmin("id"), h.Donor.Stats)
	donors.Patch("/:id/availability", middleware.RequireSelfOrAdmin("id"), h.Donor.UpdateAvailability)
	donors.Post("/:id/donations", adminOnly, h.Donor.RecordDonation)

	camps := protected.Group("/camps")
	camps.Get("/", h.Camp.List)
	camps.Get("/upcoming", h.Camp.Upcoming)
	camps.Post("/", adminOnly, h.Camp.Create)
	camps.Get("/:id", h.Camp.Get)
	camps.Post("/:id/book", h.Camp.Book)
	camps.Post("/:id/reminders", adminOnly, h.Camp.SendReminders)

	bookings := protected.Group("/bookings")
	bookings.Get("/", h.Camp.ListMyBookings)
	bookings.Post("/:id/cancel", h.Camp.CancelBooking)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/:id", h.Notification.Delete)
	notifications.Delete("/", h.Notification.DeleteAll)

	protected.Get("/statistics", h.Admin.Statistics)

	admin := protected.Group("/admin", adminOnly)
	admin.Post("/snapshots", h.Admin.CreateSnapshot)
	admin.Get("/snapshots", h.Admin.ListSnapshots)
	admin.Post("/reminders/eligible", h.Admin.SendEligibilityReminders)
}
