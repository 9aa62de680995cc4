package controller

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/transport/model"
	helper "shuleni_backend/internals/helpers"
)

type TransportController struct {
	DB *gorm.DB
}

var validate = validator.New()

type routeUpsertRequest struct {
	Name        string            `json:"name" validate:"required,min=2,max=120"`
	Vehicle     *string           `json:"vehicle"`
	DriverName  *string           `json:"driver_name"`
	DriverPhone *string           `json:"driver_phone"`
	Stops       []model.RouteStop `json:"stops" validate:"dive"`
}

func (h *TransportController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req routeUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.DriverPhone != nil && strings.TrimSpace(*req.DriverPhone) != "" {
		normalized, err := helper.NormalizeMsisdn(*req.DriverPhone)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid driver phone number")
		}
		req.DriverPhone = &normalized
	}

	stops, err := sonic.Marshal(req.Stops)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stop list")
	}

	m := model.TransportRouteModel{
		RouteSchoolID:    schoolID,
		RouteName:        strings.TrimSpace(req.Name),
		RouteVehicle:     req.Vehicle,
		RouteDriverName:  req.DriverName,
		RouteDriverPhone: req.DriverPhone,
		RouteStops:       stops,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create route")
	}
	return helper.JsonCreated(c, "Route created", m)
}

func (h *TransportController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var rows []model.TransportRouteModel
	if err := h.DB.Where("route_school_id = ?", schoolID).
		Order("route_name asc").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list routes")
	}
	return helper.JsonOK(c, "Routes", rows)
}

func (h *TransportController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req routeUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.TransportRouteModel
	if err := h.DB.Where("route_school_id = ?", schoolID).First(&m, "route_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Route not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load route")
	}

	stops, err := sonic.Marshal(req.Stops)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stop list")
	}
	m.RouteName = strings.TrimSpace(req.Name)
	m.RouteVehicle = req.Vehicle
	m.RouteDriverName = req.DriverName
	m.RouteDriverPhone = req.DriverPhone
	m.RouteStops = stops
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update route")
	}
	return helper.JsonUpdated(c, "Route updated", m)
}

func (h *TransportController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.DB.Where("route_school_id = ?", schoolID).
		Delete(&model.TransportRouteModel{}, "route_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete route")
	}
	return helper.JsonDeleted(c, "Route deleted", fiber.Map{"route_id": id})
}
