package handler

import (
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	items, err := h.service.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": items})
}

func (h *StockHandler) GetStockItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock item ID"})
	}
	item, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": item})
}

// GetItemNames feeds the dropdown on the asset form.
func (h *StockHandler) GetItemNames(c *fiber.Ctx) error {
	names, err := h.service.ItemNames()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": names})
}

func (h *StockHandler) CreateStockItem(c *fiber.Ctx) error {
	var item model.StockItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.Create(&item, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock item created", "data": item})
}

func (h *StockHandler) UpdateStockItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock item ID"})
	}
	var item model.StockItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.Update(id, &item, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock item updated", "data": updated})
}

func (h *StockHandler) DeleteStockItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock item ID"})
	}
	changes, err := h.service.Delete(id)
	if err != nil {
		return fail(c, err)
	}
	if changes == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Stock item not found"})
	}
	return c.JSON(fiber.Map{"message": "Stock item deleted"})
}

func (h *StockHandler) BulkUpload(c *fiber.Ctx) error {
	result, err := h.service.BulkImport(string(c.Body()), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return bulkResponse(c, result)
}
