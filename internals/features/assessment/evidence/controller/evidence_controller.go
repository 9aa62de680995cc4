package controller

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/assessment/evidence/model"
	service "shuleni_backend/internals/features/assessment/evidence/service"
	helper "shuleni_backend/internals/helpers"
)

type EvidenceController struct {
	DB      *gorm.DB
	Service *service.EvidenceService

	// UploadDir is where normalized evidence photos land. Defaults to ./uploads/evidence.
	UploadDir string
}

var validate = validator.New()

func NewEvidenceController(db *gorm.DB) *EvidenceController {
	return &EvidenceController{
		DB:        db,
		Service:   &service.EvidenceService{DB: db},
		UploadDir: filepath.Join("uploads", "evidence"),
	}
}

type evidenceCreateRequest struct {
	TaskID      uuid.UUID `json:"task_id" validate:"required"`
	LearnerID   uuid.UUID `json:"learner_id" validate:"required"`
	Proficiency string    `json:"proficiency" validate:"required"`
	Score       int       `json:"score" validate:"required,min=1,max=8"`
	Type        string    `json:"type" validate:"required,oneof=photo document audio observation"`
	Comment     *string   `json:"comment"`
}

func (h *EvidenceController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req evidenceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := h.Service.Record(service.RecordInput{
		SchoolID:    schoolID,
		TaskID:      req.TaskID,
		LearnerID:   req.LearnerID,
		Proficiency: strings.ToLower(strings.TrimSpace(req.Proficiency)),
		Score:       req.Score,
		Type:        req.Type,
		Comment:     req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBandUnknown),
			errors.Is(err, service.ErrScoreOutOfBand),
			errors.Is(err, service.ErrTypeNotAllowed):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("[ERROR] record evidence: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record evidence")
		}
	}
	return helper.JsonCreated(c, "Evidence recorded", m)
}

// UploadPhoto attaches a camera photo to an existing evidence record. The
// image is re-encoded to WebP before it is written to disk.
func (h *EvidenceController) UploadPhoto(c *fiber.Ctx) error {
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
		if errors.Is(err, service.ErrEvidenceNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Evidence not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load evidence")
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing photo file")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unreadable photo file")
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unreadable photo file")
	}

	webpData, err := helper.ConvertToWebP(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unsupported image format")
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		log.Printf("[ERROR] create upload dir: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store photo")
	}
	name := fmt.Sprintf("%s-%d.webp", m.EvidenceID, time.Now().Unix())
	path := filepath.Join(h.UploadDir, name)
	if err := os.WriteFile(path, webpData, 0o644); err != nil {
		log.Printf("[ERROR] write photo: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store photo")
	}

	m.EvidenceAttachment = &path
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update evidence")
	}
	return helper.JsonUpdated(c, "Photo attached", m)
}

func (h *EvidenceController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	q := h.DB.Model(&model.EvidenceModel{}).Where("evidence_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("task_id")); s != "" {
		if tid, err := uuid.Parse(s); err == nil {
			q = q.Where("evidence_task_id = ?", tid)
		}
	}
	if s := strings.TrimSpace(c.Query("learner_id")); s != "" {
		if lid, err := uuid.Parse(s); err == nil {
			q = q.Where("evidence_learner_id = ?", lid)
		}
	}

	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count evidence")
	}
	var rows []model.EvidenceModel
	if err := q.Order("evidence_created_at desc").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list evidence")
	}
	return helper.JsonList(c, "Evidence", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

func (h *EvidenceController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.Service.Delete(schoolID, id); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete evidence")
	}
	return helper.JsonDeleted(c, "Evidence deleted", fiber.Map{"evidence_id": id})
}
