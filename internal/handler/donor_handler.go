package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/middleware"
	"blood-connect/internal/service/blood"
	"blood-connect/internal/service/donor"
	"blood-connect/internal/service/matching"
)

type DonorHandler struct {
	donorService donor.Service
	bloodService blood.Service
}

func NewDonorHandler(donorService donor.Service, bloodService blood.Service) *DonorHandler {
	return &DonorHandler{donorService: donorService, bloodService: bloodService}
}

// Search filters donors by exact blood_group, location substring and
// available flag.
func (h *DonorHandler) Search(c *fiber.Ctx) error {
	bloodGroup, err := bloodTypeQuery(c, "blood_group")
	if err != nil {
		return err
	}
	available, err := boolQuery(c, "available")
	if err != nil {
		return err
	}

	donors, err := h.donorService.Search(c.UserContext(), matching.Filter{
		BloodGroup: bloodGroup,
		Location:   c.Query("location"),
		Available:  available,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(donors)
}

// Compatible lists donors who could give to blood_group today.
func (h *DonorHandler) Compatible(c *fiber.Ctx) error {
	bloodGroup, err := bloodTypeQuery(c, "blood_group")
	if err != nil {
		return err
	}
	if bloodGroup == nil {
		return middleware.BadRequest("blood_group is required")
	}

	donors, err := h.bloodService.SearchCompatibleDonors(c.UserContext(), *bloodGroup, c.Query("location"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(donors)
}

func (h *DonorHandler) Nearby(c *fiber.Ctx) error {
	bloodGroup, err := bloodTypeQuery(c, "blood_group")
	if err != nil {
		return err
	}

	donors, err := h.donorService.Nearby(c.UserContext(), c.Query("location"), bloodGroup, c.QueryFloat("max_km", 0))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(donors)
}

func (h *DonorHandler) Get(c *fiber.Ctx) error {
	d, err := h.donorService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(d)
}

func (h *DonorHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.donorService.Stats(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

type availabilityInput struct {
	Available *bool `json:"available" validate:"required"`
}

func (h *DonorHandler) UpdateAvailability(c *fiber.Ctx) error {
	var input availabilityInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	d, err := h.donorService.UpdateAvailability(c.UserContext(), c.Params("id"), *input.Available)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(d)
}

type donationInput struct {
	Units int `json:"units" validate:"omitempty,gt=0"`
}

func (h *DonorHandler) RecordDonation(c *fiber.Ctx) error {
	var input donationInput
	if len(c.Body()) > 0 {
		if err := parseBody(c, &input); err != nil {
			return err
		}
	}
	if input.Units == 0 {
		input.Units = 1
	}

	d, err := h.donorService.RecordDonation(c.UserContext(), c.Params("id"), input.Units)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(d)
}

