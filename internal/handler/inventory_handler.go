package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/service/blood"
)

type InventoryHandler struct {
	bloodService blood.Service
}

func NewInventoryHandler(bloodService blood.Service) *InventoryHandler {
	return &InventoryHandler{bloodService: bloodService}
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	inventory, err := h.bloodService.ListInventory(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(inventory)
}

// GetByType expects the blood type URL-encoded in the path ("A%2B").
func (h *InventoryHandler) GetByType(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("bloodGroup"))
	if err != nil {
		return domain.ErrInvalidBloodType
	}
	bloodGroup, err := domain.ParseBloodType(raw)
	if err != nil {
		return err
	}

	inv, err := h.bloodService.GetInventoryByType(c.UserContext(), bloodGroup)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(inv)
}

func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var input domain.AdjustInventoryInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	inv, err := h.bloodService.AdjustInventory(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(inv)
}

func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var input domain.UpdateInventoryInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	inv, err := h.bloodService.UpdateInventoryItem(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(inv)
}
