package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	service "shuleni_backend/internals/features/reports/service"
	helper "shuleni_backend/internals/helpers"
)

type ReportController struct {
	DB       *gorm.DB
	Extracts *service.ExtractService
}

var validate = validator.New()

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Extracts: service.NewExtractService(db)}
}

type reportGenerateRequest struct {
	Title   string           `json:"title" validate:"required,min=2,max=120"`
	Format  string           `json:"format" validate:"required,oneof=pdf xlsx csv json"`
	Records []map[string]any `json:"records" validate:"required"`
}

func sendFile(c *fiber.Ctx, f *service.File) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Name+`"`)
	return c.Status(fiber.StatusOK).Send(f.Data)
}

// Generate renders caller-supplied records into a downloadable file.
func (h *ReportController) Generate(c *fiber.Ctx) error {
	if _, err := helper.GetSchoolIDFromToken(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req reportGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	f, err := service.Generate(strings.TrimSpace(req.Title), req.Format, req.Records)
	if err != nil {
		if errors.Is(err, service.ErrUnknownFormat) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("[ERROR] generate report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate report")
	}
	return sendFile(c, f)
}

// LearnerRoster downloads the ministry-format learner listing.
func (h *ReportController) LearnerRoster(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	f, err := h.Extracts.LearnerRoster(schoolID)
	if err != nil {
		log.Printf("[ERROR] learner roster: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build roster")
	}
	return sendFile(c, f)
}

// AssessmentExtract downloads the SBA submissions extract.
func (h *ReportController) AssessmentExtract(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	f, err := h.Extracts.AssessmentExtract(schoolID)
	if err != nil {
		log.Printf("[ERROR] assessment extract: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build extract")
	}
	return sendFile(c, f)
}
