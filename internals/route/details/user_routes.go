package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shuleni_backend/internals/constants"
	homeController "shuleni_backend/internals/features/home/controller"
	searchController "shuleni_backend/internals/features/search/controller"
	authMw "shuleni_backend/internals/middlewares/auth"
)

// RegisterUserRoutes mounts endpoints any authenticated staff member can hit.
func RegisterUserRoutes(r fiber.Router, db *gorm.DB) {
	staffAccess := authMw.OnlyRoles("Staff access required", constants.StaffRoles...)

	home := homeController.NewHomeController(db)
	r.Get("/overview", staffAccess, home.Overview)

	search := searchController.NewSearchController(db)
	r.Get("/search", staffAccess, search.Global)
}
