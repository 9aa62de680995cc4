package controller

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shuleni_backend/internals/constants"
	dto "shuleni_backend/internals/features/assessment/tasks/dto"
	model "shuleni_backend/internals/features/assessment/tasks/model"
	helper "shuleni_backend/internals/helpers"
)

type SBATaskController struct {
	DB *gorm.DB
}

var validate = validator.New()

// encodeRubric keeps only descriptors for known CBC bands.
func encodeRubric(rubric map[string]string) (datatypes.JSON, error) {
	if len(rubric) == 0 {
		return nil, nil
	}
	clean := make(map[string]string, len(rubric))
	for band, desc := range rubric {
		band = strings.ToLower(strings.TrimSpace(band))
		if _, _, ok := constants.ProficiencyRange(band); !ok {
			return nil, errors.New("unknown proficiency band: " + band)
		}
		clean[band] = strings.TrimSpace(desc)
	}
	raw, err := sonic.Marshal(clean)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (h *SBATaskController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req dto.SBATaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	rubric, err := encodeRubric(req.Rubric)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel(schoolID, rubric)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create task")
	}
	return helper.JsonCreated(c, "Assessment task created", m)
}

func (h *SBATaskController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	q := h.DB.Model(&model.SBATaskModel{}).Where("sba_task_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("subject")); s != "" {
		q = q.Where("lower(sba_task_subject) = lower(?)", s)
	}
	if s := strings.TrimSpace(c.Query("grade")); s != "" {
		q = q.Where("sba_task_grade = ?", s)
	}
	if s := strings.TrimSpace(c.Query("term")); s != "" {
		q = q.Where("sba_task_term = ?", s)
	}

	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count tasks")
	}
	var rows []model.SBATaskModel
	if err := q.Order("sba_task_created_at desc").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list tasks")
	}
	return helper.JsonList(c, "Tasks", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

func (h *SBATaskController) Detail(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var m model.SBATaskModel
	if err := h.DB.Where("sba_task_school_id = ?", schoolID).
		First(&m, "sba_task_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Task not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load task")
	}
	return helper.JsonOK(c, "Task detail", m)
}

func (h *SBATaskController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req dto.SBATaskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.SBATaskModel
	if err := h.DB.Where("sba_task_school_id = ?", schoolID).
		First(&m, "sba_task_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Task not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load task")
	}

	req.Apply(&m)
	if len(req.Rubric) > 0 {
		rubric, err := encodeRubric(req.Rubric)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		m.SBATaskRubric = rubric
	}
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update task")
	}
	return helper.JsonUpdated(c, "Task updated", m)
}

func (h *SBATaskController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("sba_task_school_id = ?", schoolID).
		Delete(&model.SBATaskModel{}, "sba_task_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete task")
	}
	return helper.JsonDeleted(c, "Task deleted", fiber.Map{"sba_task_id": id})
}
