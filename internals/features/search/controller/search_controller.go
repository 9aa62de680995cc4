package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	service "shuleni_backend/internals/features/search/service"
	helper "shuleni_backend/internals/helpers"
)

type SearchController struct {
	Service *service.SearchService
}

func NewSearchController(db *gorm.DB) *SearchController {
	return &SearchController{Service: service.NewSearchService(db)}
}

func (h *SearchController) Global(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing query parameter q")
	}

	results, err := h.Service.Global(schoolID, q)
	if err != nil {
		log.Printf("[ERROR] global search: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Search failed")
	}
	return helper.JsonOK(c, "Search results", results)
}
