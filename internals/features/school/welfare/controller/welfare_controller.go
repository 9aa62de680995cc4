package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/welfare/model"
	helper "shuleni_backend/internals/helpers"
)

type WelfareController struct {
	DB *gorm.DB
}

var validate = validator.New()

type welfareUpsertRequest struct {
	LearnerID  uuid.UUID  `json:"learner_id" validate:"required"`
	Category   string     `json:"category" validate:"required,oneof=health guidance discipline home_visit other"`
	Note       string     `json:"note" validate:"required,min=3"`
	Status     string     `json:"status" validate:"omitempty,oneof=open in_progress closed"`
	FollowUpAt *time.Time `json:"follow_up_at"`
}

func (h *WelfareController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req welfareUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Status == "" {
		req.Status = "open"
	}

	m := model.WelfareCaseModel{
		WelfareSchoolID:   schoolID,
		WelfareLearnerID:  req.LearnerID,
		WelfareCategory:   req.Category,
		WelfareNote:       strings.TrimSpace(req.Note),
		WelfareStatus:     req.Status,
		WelfareFollowUpAt: req.FollowUpAt,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create welfare case")
	}
	return helper.JsonCreated(c, "Welfare case created", m)
}

func (h *WelfareController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	q := h.DB.Model(&model.WelfareCaseModel{}).Where("welfare_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("learner_id")); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			q = q.Where("welfare_learner_id = ?", id)
		}
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("welfare_status = ?", s)
	}
	var rows []model.WelfareCaseModel
	if err := q.Order("welfare_created_at desc").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list welfare cases")
	}
	return helper.JsonOK(c, "Welfare cases", rows)
}

func (h *WelfareController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req welfareUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.WelfareCaseModel
	if err := h.DB.Where("welfare_school_id = ?", schoolID).First(&m, "welfare_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Welfare case not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load welfare case")
	}

	m.WelfareCategory = req.Category
	m.WelfareNote = strings.TrimSpace(req.Note)
	if req.Status != "" {
		m.WelfareStatus = req.Status
	}
	m.WelfareFollowUpAt = req.FollowUpAt
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update welfare case")
	}
	return helper.JsonUpdated(c, "Welfare case updated", m)
}

func (h *WelfareController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("welfare_school_id = ?", schoolID).
		Delete(&model.WelfareCaseModel{}, "welfare_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete welfare case")
	}
	return helper.JsonDeleted(c, "Welfare case deleted", fiber.Map{"welfare_id": id})
}
