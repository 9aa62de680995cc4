package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shuleni_backend/internals/events"
	authRoute "shuleni_backend/internals/features/users/auth/route"
	mpesaController "shuleni_backend/internals/features/finance/mpesa/controller"
	"shuleni_backend/internals/middlewares"
	authMw "shuleni_backend/internals/middlewares/auth"
	"shuleni_backend/internals/route/details"
)

// SetupRoutes mounts every route group.
//
//	/auth      public auth endpoints
//	/api/hooks public provider callbacks (rate limited, no JWT)
//	/api/a     school administration (JWT + role gated per route)
//	/api/u     authenticated reads for any staff role
func SetupRoutes(app *fiber.App, db *gorm.DB, bus *events.Bus) {
	authRoute.AuthRoutes(app, db)

	hooks := app.Group("/api/hooks", middlewares.WebhookRateLimiter())
	mpesa := mpesaController.NewMpesaController(db)
	hooks.Post("/mpesa/callback", mpesa.Callback)

	secured := app.Group("/api", authMw.AuthMiddleware(db))

	admin := secured.Group("/a", authMw.RequireSchoolScope())
	details.RegisterAdminRoutes(admin, db, bus)
	details.RegisterFinanceRoutes(admin, db, mpesa)
	details.RegisterAcademicRoutes(admin, db)

	user := secured.Group("/u", authMw.RequireSchoolScope())
	details.RegisterUserRoutes(user, db)

	owner := secured.Group("/o")
	details.RegisterOwnerRoutes(owner, db)
}
