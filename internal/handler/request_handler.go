package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
	"blood-connect/internal/service/blood"
)

type RequestHandler struct {
	bloodService blood.Service
}

func NewRequestHandler(bloodService blood.Service) *RequestHandler {
	return &RequestHandler{bloodService: bloodService}
}

// Create files a request for the caller. Admins may file on behalf of a
// recipient by naming recipient_id.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.CreateBloodRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if user.Role != domain.RoleAdmin || input.RecipientID == "" {
		input.RecipientID = user.ID
		if input.RecipientName == "" {
			input.RecipientName = user.Name
		}
	}
	if err := validate.Struct(&input); err != nil {
		return err
	}

	req, err := h.bloodService.CreateRequest(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *RequestHandler) List(c *fiber.Ctx) error {
	var status *domain.RequestStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.RequestStatus(raw)
		if !s.IsValid() {
			return middleware.BadRequest("Invalid status filter")
		}
		status = &s
	}

	result, err := h.bloodService.ListRequests(c.UserContext(), status, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	requests, err := h.bloodService.ListRequestsByRecipient(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	req, err := h.bloodService.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) Match(c *fiber.Ctx) error {
	result, err := h.bloodService.AutoMatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	var input domain.UpdateRequestStatusInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	req, err := h.bloodService.UpdateStatus(c.UserContext(), c.Params("id"), input.Status)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) Advance(c *fiber.Ctx) error {
	var input domain.UpdateRequestStatusInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	req, err := h.bloodService.AdvanceStatus(c.UserContext(), c.Params("id"), input.Status)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

// Cancel is open to the recipient who filed the request and to admins.
func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	req, err := h.bloodService.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req.RecipientID != userID && !middleware.IsAdmin(c) {
		return middleware.Forbidden("You can only cancel your own requests")
	}

	req, err = h.bloodService.CancelRequest(c.UserContext(), req.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}
