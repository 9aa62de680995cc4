package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/schools/model"
	helper "shuleni_backend/internals/helpers"
)

type SchoolController struct {
	DB *gorm.DB
}

var validate = validator.New()

type schoolUpsertRequest struct {
	Name   string  `json:"name" validate:"required,min=3,max=160"`
	Code   string  `json:"code" validate:"required,min=2,max=40"`
	County *string `json:"county"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email" validate:"omitempty,email"`
}

// POST /api/o/schools (owner only)
func (h *SchoolController) Create(c *fiber.Ctx) error {
	var req schoolUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := model.SchoolModel{
		SchoolName:     strings.TrimSpace(req.Name),
		SchoolCode:     strings.ToUpper(strings.TrimSpace(req.Code)),
		SchoolCounty:   req.County,
		SchoolPhone:    req.Phone,
		SchoolEmail:    req.Email,
		SchoolIsActive: true,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "School code already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create school")
	}
	return helper.JsonCreated(c, "School created", m)
}

// GET /api/o/schools
func (h *SchoolController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 25, 200)

	var total int64
	if err := h.DB.Model(&model.SchoolModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list schools")
	}
	var rows []model.SchoolModel
	if err := h.DB.Order("school_name asc").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list schools")
	}
	return helper.JsonList(c, "Schools", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /api/u/school — the caller's own tenant record
func (h *SchoolController) Mine(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var m model.SchoolModel
	if err := h.DB.First(&m, "school_id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "School not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load school")
	}
	return helper.JsonOK(c, "School", m)
}

// PUT /api/o/schools/:id
func (h *SchoolController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req schoolUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.SchoolModel
	if err := h.DB.First(&m, "school_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "School not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load school")
	}

	m.SchoolName = strings.TrimSpace(req.Name)
	m.SchoolCode = strings.ToUpper(strings.TrimSpace(req.Code))
	m.SchoolCounty = req.County
	m.SchoolPhone = req.Phone
	m.SchoolEmail = req.Email
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update school")
	}
	return helper.JsonUpdated(c, "School updated", m)
}
