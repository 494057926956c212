package handler

import (
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	service service.InvoiceService
}

func NewInvoiceHandler(s service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

func (h *InvoiceHandler) GetInvoices(c *fiber.Ctx) error {
	invoices, err := h.service.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": invoices})
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}
	invoice, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": invoice})
}

func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var req model.InvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	invoice, err := h.service.Create(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Invoice created", "data": invoice})
}

func (h *InvoiceHandler) UpdateInvoice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}
	var req model.InvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	invoice, err := h.service.Update(id, &req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Invoice updated", "data": invoice})
}

func (h *InvoiceHandler) DeleteInvoice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}
	changes, err := h.service.Delete(id)
	if err != nil {
		return fail(c, err)
	}
	if changes == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Invoice not found"})
	}
	return c.JSON(fiber.Map{"message": "Invoice deleted"})
}

// DownloadFile streams the stored invoice attachment.
func (h *InvoiceHandler) DownloadFile(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}
	path, err := h.service.FilePath(id)
	if err != nil {
		return fail(c, err)
	}
	return c.Download(path)
}
