package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "shuleni_backend/internals/features/users/auth/controller"
	"shuleni_backend/internals/middlewares"
	authMw "shuleni_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &authController.AuthController{DB: db}

	grp := app.Group("/auth")
	grp.Post("/register", middlewares.LoginRateLimiter(), ctl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	grp.Post("/google", middlewares.LoginRateLimiter(), ctl.GoogleLogin)

	secured := grp.Group("", authMw.AuthMiddleware(db))
	secured.Post("/logout", ctl.Logout)
	secured.Post("/change-password", ctl.ChangePassword)
}
