package handler

import (
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NewHireHandler struct {
	service service.NewHireService
}

func NewNewHireHandler(s service.NewHireService) *NewHireHandler {
	return &NewHireHandler{service: s}
}

func (h *NewHireHandler) GetNewHires(c *fiber.Ctx) error {
	hires, err := h.service.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": hires})
}

func (h *NewHireHandler) GetNewHire(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid record ID"})
	}
	hire, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": hire})
}

func (h *NewHireHandler) CreateNewHire(c *fiber.Ctx) error {
	var hire model.NewHire
	if err := c.BodyParser(&hire); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.Create(&hire, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "New hire recorded", "data": hire})
}

func (h *NewHireHandler) UpdateNewHire(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid record ID"})
	}
	var hire model.NewHire
	if err := c.BodyParser(&hire); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.Update(id, &hire, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "New hire updated", "data": updated})
}

func (h *NewHireHandler) DeleteNewHire(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid record ID"})
	}
	changes, err := h.service.Delete(id)
	if err != nil {
		return fail(c, err)
	}
	if changes == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Record not found"})
	}
	return c.JSON(fiber.Map{"message": "New hire deleted"})
}

func (h *NewHireHandler) BulkUpload(c *fiber.Ctx) error {
	result, err := h.service.BulkImport(string(c.Body()), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return bulkResponse(c, result)
}
