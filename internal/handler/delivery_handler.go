package handler

import (
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DeliveryHandler struct {
	service service.DeliveryService
}

func NewDeliveryHandler(s service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{service: s}
}

func (h *DeliveryHandler) GetDeliveries(c *fiber.Ctx) error {
	deliveries, err := h.service.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": deliveries})
}

func (h *DeliveryHandler) GetDelivery(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid delivery ID"})
	}
	delivery, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": delivery})
}

func (h *DeliveryHandler) CreateDelivery(c *fiber.Ctx) error {
	var delivery model.Delivery
	if err := c.BodyParser(&delivery); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.Create(&delivery, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Delivery created", "data": delivery})
}

func (h *DeliveryHandler) UpdateDelivery(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid delivery ID"})
	}
	var delivery model.Delivery
	if err := c.BodyParser(&delivery); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.Update(id, &delivery, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Delivery updated", "data": updated})
}

func (h *DeliveryHandler) DeleteDelivery(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid delivery ID"})
	}
	changes, err := h.service.Delete(id)
	if err != nil {
		return fail(c, err)
	}
	if changes == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Delivery not found"})
	}
	return c.JSON(fiber.Map{"message": "Delivery deleted"})
}

func (h *DeliveryHandler) BulkUpload(c *fiber.Ctx) error {
	result, err := h.service.BulkImport(string(c.Body()), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return bulkResponse(c, result)
}
