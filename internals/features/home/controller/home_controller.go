package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	service "shuleni_backend/internals/features/home/service"
	helper "shuleni_backend/internals/helpers"
)

type HomeController struct {
	Service *service.OverviewService
}

func NewHomeController(db *gorm.DB) *HomeController {
	return &HomeController{Service: service.NewOverviewService(db)}
}

func (h *HomeController) Overview(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	snap := h.Service.Load(c.Context(), schoolID)
	return helper.JsonOK(c, "Overview", snap)
}
