package handler

import (
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AssetHandler struct {
	service service.AssetService
}

func NewAssetHandler(s service.AssetService) *AssetHandler {
	return &AssetHandler{service: s}
}

func (h *AssetHandler) GetAssets(c *fiber.Ctx) error {
	assets, err := h.service.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": assets})
}

func (h *AssetHandler) GetAsset(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid asset ID"})
	}
	asset, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "data": asset})
}

func (h *AssetHandler) CreateAsset(c *fiber.Ctx) error {
	var asset model.Asset
	if err := c.BodyParser(&asset); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.Create(&asset, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Asset created", "data": asset})
}

func (h *AssetHandler) UpdateAsset(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid asset ID"})
	}
	var asset model.Asset
	if err := c.BodyParser(&asset); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.Update(id, &asset, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Asset updated", "data": updated})
}

func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid asset ID"})
	}
	changes, err := h.service.Delete(id)
	if err != nil {
		return fail(c, err)
	}
	if changes == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Asset not found"})
	}
	return c.JSON(fiber.Map{"message": "Asset deleted"})
}

// BulkUpload accepts raw CSV text in the request body.
func (h *AssetHandler) BulkUpload(c *fiber.Ctx) error {
	result, err := h.service.BulkImport(string(c.Body()), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return bulkResponse(c, result)
}

func (h *AssetHandler) Offboard(c *fiber.Ctx) error {
	var req service.OffboardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	count, err := h.service.Offboard(req.GAID, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee offboarded", "data": fiber.Map{"assets_released": count}})
}

func (h *AssetHandler) UpgradePrimary(c *fiber.Ctx) error {
	var req service.UpgradePrimaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.UpgradePrimary(&req, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Primary asset replaced"})
}

func (h *AssetHandler) SwapPeripheral(c *fiber.Ctx) error {
	var req service.SwapPeripheralRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.SwapPeripheral(&req, actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Peripheral swapped"})
}
