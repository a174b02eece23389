package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
	"blood-connect/internal/service/camp"
)

type CampHandler struct {
	campService camp.Service
}

func NewCampHandler(campService camp.Service) *CampHandler {
	return &CampHandler{campService: campService}
}

func (h *CampHandler) List(c *fiber.Ctx) error {
	camps, err := h.campService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(camps)
}

func (h *CampHandler) Upcoming(c *fiber.Ctx) error {
	camps, err := h.campService.Upcoming(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(camps)
}

func (h *CampHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateCampInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.campService.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CampHandler) Get(c *fiber.Ctx) error {
	found, err := h.campService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(found)
}

// Book reserves a slot for the caller. The body is optional.
func (h *CampHandler) Book(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.BookSlotInput
	if len(c.Body()) > 0 {
		if err := parseBody(c, &input); err != nil {
			return err
		}
	}

	booking, err := h.campService.BookSlot(c.UserContext(), userID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *CampHandler) SendReminders(c *fiber.Ctx) error {
	notified, err := h.campService.SendReminders(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notified": notified})
}

func (h *CampHandler) ListMyBookings(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	bookings, err := h.campService.ListUserBookings(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(bookings)
}

// CancelBooking lets the booking's owner or an admin cancel it. Other
// callers see the booking as missing.
func (h *CampHandler) CancelBooking(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	booking, err := h.campService.GetBooking(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if booking.UserID != userID && !middleware.IsAdmin(c) {
		return domain.ErrBookingNotFound
	}

	cancelled, err := h.campService.CancelBooking(c.UserContext(), booking.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(cancelled)
}
