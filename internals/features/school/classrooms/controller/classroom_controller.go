package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/classrooms/model"
	helper "shuleni_backend/internals/helpers"
)

type ClassroomController struct {
	DB *gorm.DB
}

var validate = validator.New()

type classroomUpsertRequest struct {
	Grade     string     `json:"grade" validate:"required,min=2,max=20"`
	Stream    string     `json:"stream" validate:"max=40"`
	Capacity  int        `json:"capacity" validate:"omitempty,min=1,max=100"`
	TeacherID *uuid.UUID `json:"teacher_id"`
}

func (h *ClassroomController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req classroomUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Capacity == 0 {
		req.Capacity = 40
	}

	m := model.ClassroomModel{
		ClassroomSchoolID:  schoolID,
		ClassroomGrade:     strings.TrimSpace(req.Grade),
		ClassroomStream:    strings.TrimSpace(req.Stream),
		ClassroomCapacity:  req.Capacity,
		ClassroomTeacherID: req.TeacherID,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create classroom")
	}
	return helper.JsonCreated(c, "Classroom created", m)
}

func (h *ClassroomController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var rows []model.ClassroomModel
	if err := h.DB.Where("classroom_school_id = ?", schoolID).
		Order("classroom_grade asc, classroom_stream asc").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list classrooms")
	}
	return helper.JsonOK(c, "Classrooms", rows)
}

func (h *ClassroomController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req classroomUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.ClassroomModel
	if err := h.DB.Where("classroom_school_id = ?", schoolID).First(&m, "classroom_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load classroom")
	}

	m.ClassroomGrade = strings.TrimSpace(req.Grade)
	m.ClassroomStream = strings.TrimSpace(req.Stream)
	if req.Capacity > 0 {
		m.ClassroomCapacity = req.Capacity
	}
	m.ClassroomTeacherID = req.TeacherID
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update classroom")
	}
	return helper.JsonUpdated(c, "Classroom updated", m)
}

func (h *ClassroomController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("classroom_school_id = ?", schoolID).
		Delete(&model.ClassroomModel{}, "classroom_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete classroom")
	}
	return helper.JsonDeleted(c, "Classroom deleted", fiber.Map{"classroom_id": id})
}
