package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/events/model"
	helper "shuleni_backend/internals/helpers"
)

type EventController struct {
	DB *gorm.DB
}

var validate = validator.New()

type eventUpsertRequest struct {
	Title    string     `json:"title" validate:"required,min=2,max=160"`
	Venue    *string    `json:"venue"`
	Audience string     `json:"audience" validate:"omitempty,oneof=all staff guardians learners"`
	StartsAt time.Time  `json:"starts_at" validate:"required"`
	EndsAt   *time.Time `json:"ends_at"`
}

func (h *EventController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req eventUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Audience == "" {
		req.Audience = "all"
	}

	m := model.SchoolEventModel{
		EventSchoolID: schoolID,
		EventTitle:    strings.TrimSpace(req.Title),
		EventVenue:    req.Venue,
		EventAudience: req.Audience,
		EventStartsAt: req.StartsAt,
		EventEndsAt:   req.EndsAt,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}
	return helper.JsonCreated(c, "Event created", m)
}

func (h *EventController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	q := h.DB.Model(&model.SchoolEventModel{}).Where("event_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("upcoming")); s == "true" {
		q = q.Where("event_starts_at >= ?", time.Now())
	}
	var rows []model.SchoolEventModel
	if err := q.Order("event_starts_at asc").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list events")
	}
	return helper.JsonOK(c, "Events", rows)
}

func (h *EventController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req eventUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.SchoolEventModel
	if err := h.DB.Where("event_school_id = ?", schoolID).First(&m, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load event")
	}

	m.EventTitle = strings.TrimSpace(req.Title)
	m.EventVenue = req.Venue
	if req.Audience != "" {
		m.EventAudience = req.Audience
	}
	m.EventStartsAt = req.StartsAt
	m.EventEndsAt = req.EndsAt
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}
	return helper.JsonUpdated(c, "Event updated", m)
}

func (h *EventController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("event_school_id = ?", schoolID).
		Delete(&model.SchoolEventModel{}, "event_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete event")
	}
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": id})
}
