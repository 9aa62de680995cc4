package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shuleni_backend/internals/features/school/attendance/dto"
	model "shuleni_backend/internals/features/school/attendance/model"
	service "shuleni_backend/internals/features/school/attendance/service"
	helper "shuleni_backend/internals/helpers"
)

type AttendanceController struct {
	DB      *gorm.DB
	Service *service.AttendanceService
}

var validate = validator.New()

// =========================================================
// MARK - POST /api/u/attendance
// =========================================================
func (h *AttendanceController) Mark(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req dto.MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.Service.Mark(schoolID, req.LearnerID, req.ClassroomID, req.Date, req.Status, req.Note)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}
	return helper.JsonCreated(c, "Attendance recorded", rec)
}

// =========================================================
// BULK MARK - POST /api/u/attendance/bulk
// =========================================================
func (h *AttendanceController) BulkMark(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req dto.BulkMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	out := make([]*model.AttendanceModel, 0, len(req.Entries))
	for _, e := range req.Entries {
		rec, err := h.Service.Mark(schoolID, e.LearnerID, &req.ClassroomID, req.Date, e.Status, e.Note)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
		}
		out = append(out, rec)
	}
	return helper.JsonCreated(c, "Attendance recorded", out)
}

// =========================================================
// LIST - GET /api/u/attendance?learner_id=&classroom_id=&from=&to=
// =========================================================
func (h *AttendanceController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	p := helper.ResolvePaging(c, 50, 500)

	q := h.DB.Model(&model.AttendanceModel{}).Where("attendance_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("learner_id")); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			q = q.Where("attendance_learner_id = ?", id)
		}
	}
	if s := strings.TrimSpace(c.Query("classroom_id")); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			q = q.Where("attendance_classroom_id = ?", id)
		}
	}
	if s := strings.TrimSpace(c.Query("from")); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			q = q.Where("attendance_date >= ?", t)
		}
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			q = q.Where("attendance_date <= ?", t)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list attendance")
	}
	var rows []model.AttendanceModel
	if err := q.Order("attendance_date desc").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list attendance")
	}
	return helper.JsonList(c, "Attendance", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

// =========================================================
// DELETE - DELETE /api/a/attendance/:id
// =========================================================
func (h *AttendanceController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("attendance_school_id = ?", schoolID).
		Delete(&model.AttendanceModel{}, "attendance_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete record")
	}
	return helper.JsonDeleted(c, "Record deleted", fiber.Map{"attendance_id": id})
}
