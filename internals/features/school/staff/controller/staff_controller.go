package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/staff/model"
	helper "shuleni_backend/internals/helpers"
)

type StaffController struct {
	DB *gorm.DB
}

var validate = validator.New()

type staffUpsertRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=120"`
	StaffNo string  `json:"staff_no" validate:"required,min=1,max=30"`
	TSCNo   *string `json:"tsc_no"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Role    string  `json:"role" validate:"required,oneof=admin teacher accountant support"`
}

func (h *StaffController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req staffUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := model.StaffModel{
		StaffSchoolID: schoolID,
		StaffName:     strings.TrimSpace(req.Name),
		StaffNo:       strings.TrimSpace(req.StaffNo),
		StaffTSCNo:    req.TSCNo,
		StaffPhone:    req.Phone,
		StaffEmail:    req.Email,
		StaffRole:     req.Role,
		StaffIsActive: true,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create staff member")
	}
	return helper.JsonCreated(c, "Staff member created", m)
}

func (h *StaffController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	p := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&model.StaffModel{}).Where("staff_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(staff_name) LIKE ? OR lower(staff_no) LIKE ?", pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list staff")
	}
	var rows []model.StaffModel
	if err := q.Order("staff_name asc").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list staff")
	}
	return helper.JsonList(c, "Staff", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

func (h *StaffController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req staffUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.StaffModel
	if err := h.DB.Where("staff_school_id = ?", schoolID).First(&m, "staff_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load staff member")
	}

	m.StaffName = strings.TrimSpace(req.Name)
	m.StaffNo = strings.TrimSpace(req.StaffNo)
	m.StaffTSCNo = req.TSCNo
	m.StaffPhone = req.Phone
	m.StaffEmail = req.Email
	m.StaffRole = req.Role
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update staff member")
	}
	return helper.JsonUpdated(c, "Staff member updated", m)
}

func (h *StaffController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("staff_school_id = ?", schoolID).
		Delete(&model.StaffModel{}, "staff_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete staff member")
	}
	return helper.JsonDeleted(c, "Staff member deleted", fiber.Map{"staff_id": id})
}
