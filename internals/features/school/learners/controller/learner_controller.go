package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shuleni_backend/internals/features/school/learners/dto"
	model "shuleni_backend/internals/features/school/learners/model"
	service "shuleni_backend/internals/features/school/learners/service"
	helper "shuleni_backend/internals/helpers"
)

type LearnerController struct {
	DB      *gorm.DB
	Service *service.LearnerService
}

var validate = validator.New()

// =========================================================
// CREATE - POST /api/a/learners
// =========================================================
func (h *LearnerController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}

	var req dto.LearnerCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Admission number unique per school
	var cnt int64
	if err := h.DB.Model(&model.LearnerModel{}).
		Where("learner_school_id = ? AND learner_admission_no = ?", schoolID, req.AdmissionNo).
		Count(&cnt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check admission number")
	}
	if cnt > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Admission number already in use")
	}

	m := req.ToModel(schoolID)
	if err := h.Service.Create(m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create learner")
	}
	return helper.JsonCreated(c, "Learner created", m)
}

// =========================================================
// LIST - GET /api/u/learners  (ordered by name, paged)
// =========================================================
func (h *LearnerController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	p := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&model.LearnerModel{}).Where("learner_school_id = ?", schoolID)

	var query dto.LearnerListQuery
	if err := c.QueryParser(&query); err == nil {
		if query.Status != nil && *query.Status != "" {
			q = q.Where("learner_status = ?", *query.Status)
		}
		if query.ClassroomID != nil && *query.ClassroomID != "" {
			if cid, err := uuid.Parse(*query.ClassroomID); err == nil {
				q = q.Where("learner_classroom_id = ?", cid)
			}
		}
		if query.Q != nil && strings.TrimSpace(*query.Q) != "" {
			pat := "%" + strings.ToLower(strings.TrimSpace(*query.Q)) + "%"
			q = q.Where(
				"lower(learner_first_name) LIKE ? OR lower(learner_last_name) LIKE ? OR lower(learner_admission_no) LIKE ?",
				pat, pat, pat,
			)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list learners")
	}
	var rows []model.LearnerModel
	if err := q.Preload("Guardians").
		Order("learner_first_name asc, learner_last_name asc").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list learners")
	}
	return helper.JsonList(c, "Learners", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

// =========================================================
// DETAIL - GET /api/u/learners/:id
// =========================================================
func (h *LearnerController) Detail(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	m, err := h.Service.Get(schoolID, id)
	if err != nil {
		if errors.Is(err, service.ErrLearnerNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Learner not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load learner")
	}
	return helper.JsonOK(c, "Learner", m)
}

// =========================================================
// UPDATE - PATCH /api/a/learners/:id  (partial merge)
// =========================================================
func (h *LearnerController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.LearnerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := h.Service.Get(schoolID, id)
	if err != nil {
		if errors.Is(err, service.ErrLearnerNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Learner not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load learner")
	}

	req.Apply(m)
	if err := h.Service.Save(m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update learner")
	}
	return helper.JsonUpdated(c, "Learner updated", m)
}

// =========================================================
// DELETE - DELETE /api/a/learners/:id
// Cascades to attendance and invoices via the event bus.
// =========================================================
func (h *LearnerController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := h.Service.Delete(schoolID, id); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete learner")
	}
	return helper.JsonDeleted(c, "Learner deleted", fiber.Map{"learner_id": id})
}
