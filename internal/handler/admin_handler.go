package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/middleware"
	"blood-connect/internal/service/blood"
	"blood-connect/internal/service/donor"
	"blood-connect/internal/service/snapshot"
)

type AdminHandler struct {
	bloodService    blood.Service
	donorService    donor.Service
	snapshotService snapshot.Service
}

func NewAdminHandler(bloodService blood.Service, donorService donor.Service, snapshotService snapshot.Service) *AdminHandler {
	return &AdminHandler{
		bloodService:    bloodService,
		donorService:    donorService,
		snapshotService: snapshotService,
	}
}

func (h *AdminHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.bloodService.Statistics(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *AdminHandler) snapshots() (snapshot.Service, error) {
	if h.snapshotService == nil {
		return nil, middleware.NewError(fiber.StatusServiceUnavailable, "Object storage is not configured")
	}
	return h.snapshotService, nil
}

func (h *AdminHandler) CreateSnapshot(c *fiber.Ctx) error {
	svc, err := h.snapshots()
	if err != nil {
		return err
	}

	snap, err := svc.Export(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

func (h *AdminHandler) ListSnapshots(c *fiber.Ctx) error {
	svc, err := h.snapshots()
	if err != nil {
		return err
	}

	snaps, err := svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(snaps)
}

func (h *AdminHandler) SendEligibilityReminders(c *fiber.Ctx) error {
	notified, err := h.donorService.SendEligibilityReminders(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notified": notified})
}
