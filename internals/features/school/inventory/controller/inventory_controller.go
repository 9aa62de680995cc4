package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/inventory/model"
	helper "shuleni_backend/internals/helpers"
)

type InventoryController struct {
	DB *gorm.DB
}

var validate = validator.New()

type assetUpsertRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=160"`
	Category  string  `json:"category" validate:"max=60"`
	Serial    *string `json:"serial"`
	Condition string  `json:"condition" validate:"omitempty,oneof=good fair poor damaged"`
	Location  *string `json:"location"`
	Quantity  int     `json:"quantity" validate:"omitempty,min=1"`
}

func (h *InventoryController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req assetUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Condition == "" {
		req.Condition = "good"
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	m := model.AssetModel{
		AssetSchoolID:  schoolID,
		AssetName:      strings.TrimSpace(req.Name),
		AssetCategory:  strings.TrimSpace(req.Category),
		AssetSerial:    req.Serial,
		AssetCondition: req.Condition,
		AssetLocation:  req.Location,
		AssetQuantity:  req.Quantity,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create asset")
	}
	return helper.JsonCreated(c, "Asset created", m)
}

func (h *InventoryController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	p := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&model.AssetModel{}).Where("asset_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("category")); s != "" {
		q = q.Where("asset_category = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list assets")
	}
	var rows []model.AssetModel
	if err := q.Order("asset_name asc").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list assets")
	}
	return helper.JsonList(c, "Assets", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

func (h *InventoryController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req assetUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.AssetModel
	if err := h.DB.Where("asset_school_id = ?", schoolID).First(&m, "asset_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Asset not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load asset")
	}

	m.AssetName = strings.TrimSpace(req.Name)
	m.AssetCategory = strings.TrimSpace(req.Category)
	m.AssetSerial = req.Serial
	if req.Condition != "" {
		m.AssetCondition = req.Condition
	}
	m.AssetLocation = req.Location
	if req.Quantity > 0 {
		m.AssetQuantity = req.Quantity
	}
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update asset")
	}
	return helper.JsonUpdated(c, "Asset updated", m)
}

func (h *InventoryController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("asset_school_id = ?", schoolID).
		Delete(&model.AssetModel{}, "asset_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete asset")
	}
	return helper.JsonDeleted(c, "Asset deleted", fiber.Map{"asset_id": id})
}
