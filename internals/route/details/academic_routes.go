package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shuleni_backend/internals/constants"
	evidenceController "shuleni_backend/internals/features/assessment/evidence/controller"
	taskController "shuleni_backend/internals/features/assessment/tasks/controller"
	messageController "shuleni_backend/internals/features/communications/controller"
	reportController "shuleni_backend/internals/features/reports/controller"
	authMw "shuleni_backend/internals/middlewares/auth"
)

// RegisterAcademicRoutes mounts assessment, messaging and report exports.
func RegisterAcademicRoutes(r fiber.Router, db *gorm.DB) {
	assessOnly := authMw.OnlyRoles("Assessment access required", constants.AssessmentRoles...)
	adminOnly := authMw.OnlyRoles("School administrator access required", constants.AdminAndAbove...)

	tasks := &taskController.SBATaskController{DB: db}
	r.Post("/tasks", assessOnly, tasks.Create)
	r.Get("/tasks", assessOnly, tasks.List)
	r.Get("/tasks/:id", assessOnly, tasks.Detail)
	r.Patch("/tasks/:id", assessOnly, tasks.Update)
	r.Delete("/tasks/:id", adminOnly, tasks.Delete)

	evidence := evidenceController.NewEvidenceController(db)
	r.Post("/evidence", assessOnly, evidence.Create)
	r.Post("/evidence/:id/photo", assessOnly, evidence.UploadPhoto)
	r.Get("/evidence", assessOnly, evidence.List)
	r.Delete("/evidence/:id", adminOnly, evidence.Delete)

	messages := messageController.NewMessageController(db)
	r.Post("/messages", adminOnly, messages.Draft)
	r.Post("/messages/:id/send", adminOnly, messages.Send)
	r.Get("/messages", adminOnly, messages.List)
	r.Delete("/messages/:id", adminOnly, messages.Delete)

	reports := reportController.NewReportController(db)
	r.Post("/reports/generate", adminOnly, reports.Generate)
	r.Get("/reports/extracts/learner-roster", adminOnly, reports.LearnerRoster)
	r.Get("/reports/extracts/assessment", adminOnly, reports.AssessmentExtract)
}
