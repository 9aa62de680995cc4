package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/communications/model"
	service "shuleni_backend/internals/features/communications/service"
	helper "shuleni_backend/internals/helpers"
)

type MessageController struct {
	DB      *gorm.DB
	Service *service.NotifierService
}

var validate = validator.New()

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db, Service: service.NewNotifierService(db)}
}

type recipientRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Address string `json:"address" validate:"required"`
}

type messageDraftRequest struct {
	Channel    string             `json:"channel" validate:"required,oneof=sms email"`
	Subject    string             `json:"subject" validate:"omitempty,max=160"`
	Body       string             `json:"body" validate:"required,min=2"`
	Recipients []recipientRequest `json:"recipients" validate:"required,min=1,dive"`
}

func (h *MessageController) Draft(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req messageDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	recipients := make([]model.Recipient, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		recipients = append(recipients, model.Recipient{
			Name:    strings.TrimSpace(r.Name),
			Address: strings.TrimSpace(r.Address),
		})
	}

	m, err := h.Service.Draft(service.DraftInput{
		SchoolID:   schoolID,
		Channel:    req.Channel,
		Subject:    strings.TrimSpace(req.Subject),
		Body:       strings.TrimSpace(req.Body),
		Recipients: recipients,
	})
	if err != nil {
		if errors.Is(err, helper.ErrInvalidMsisdn) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("[ERROR] draft message: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to draft message")
	}
	return helper.JsonCreated(c, "Message drafted", m)
}

func (h *MessageController) Send(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	m, err := h.Service.Send(schoolID, id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Message not found")
		}
		log.Printf("[ERROR] send message: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to send message")
	}
	return helper.JsonUpdated(c, "Message dispatched", m)
}

func (h *MessageController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	q := h.DB.Model(&model.MessageModel{}).Where("message_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("message_status = ?", s)
	}
	if s := strings.TrimSpace(c.Query("channel")); s != "" {
		q = q.Where("message_channel = ?", s)
	}

	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count messages")
	}
	var rows []model.MessageModel
	if err := q.Order("message_created_at desc").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list messages")
	}
	return helper.JsonList(c, "Messages", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

func (h *MessageController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("message_school_id = ?", schoolID).
		Delete(&model.MessageModel{}, "message_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete message")
	}
	return helper.JsonDeleted(c, "Message deleted", fiber.Map{"message_id": id})
}
