package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shuleni_backend/internals/constants"
	"shuleni_backend/internals/events"
	attendanceController "shuleni_backend/internals/features/school/attendance/controller"
	attendanceService "shuleni_backend/internals/features/school/attendance/service"
	classroomController "shuleni_backend/internals/features/school/classrooms/controller"
	eventController "shuleni_backend/internals/features/school/events/controller"
	inventoryController "shuleni_backend/internals/features/school/inventory/controller"
	learnerController "shuleni_backend/internals/features/school/learners/controller"
	learnerService "shuleni_backend/internals/features/school/learners/service"
	libraryController "shuleni_backend/internals/features/school/library/controller"
	schoolController "shuleni_backend/internals/features/school/schools/controller"
	staffController "shuleni_backend/internals/features/school/staff/controller"
	transportController "shuleni_backend/internals/features/school/transport/controller"
	welfareController "shuleni_backend/internals/features/school/welfare/controller"
	authMw "shuleni_backend/internals/middlewares/auth"
)

// RegisterOwnerRoutes mounts the cross-tenant operations only the platform
// owner may perform.
func RegisterOwnerRoutes(r fiber.Router, db *gorm.DB) {
	ownerOnly := authMw.OnlyRoles("Owner access required", constants.RoleOwner)

	schools := &schoolController.SchoolController{DB: db}
	r.Post("/schools", ownerOnly, schools.Create)
	r.Get("/schools", ownerOnly, schools.List)
}

// RegisterAdminRoutes mounts tenant administration: school profile, people,
// classrooms, attendance and day-to-day operations.
func RegisterAdminRoutes(r fiber.Router, db *gorm.DB, bus *events.Bus) {
	adminOnly := authMw.OnlyRoles("School administrator access required", constants.AdminAndAbove...)
	staffAccess := authMw.OnlyRoles("Staff access required", constants.StaffRoles...)

	schools := &schoolController.SchoolController{DB: db}
	r.Get("/schools/mine", staffAccess, schools.Mine)
	r.Put("/schools/mine", adminOnly, schools.Update)

	learners := &learnerController.LearnerController{
		DB:      db,
		Service: learnerService.NewLearnerService(db, bus),
	}
	r.Post("/learners", adminOnly, learners.Create)
	r.Get("/learners", staffAccess, learners.List)
	r.Get("/learners/:id", staffAccess, learners.Detail)
	r.Patch("/learners/:id", adminOnly, learners.Update)
	r.Delete("/learners/:id", adminOnly, learners.Delete)

	staff := &staffController.StaffController{DB: db}
	r.Post("/staff", adminOnly, staff.Create)
	r.Get("/staff", staffAccess, staff.List)
	r.Put("/staff/:id", adminOnly, staff.Update)
	r.Delete("/staff/:id", adminOnly, staff.Delete)

	classrooms := &classroomController.ClassroomController{DB: db}
	r.Post("/classrooms", adminOnly, classrooms.Create)
	r.Get("/classrooms", staffAccess, classrooms.List)
	r.Put("/classrooms/:id", adminOnly, classrooms.Update)
	r.Delete("/classrooms/:id", adminOnly, classrooms.Delete)

	attendance := &attendanceController.AttendanceController{
		DB:      db,
		Service: attendanceService.NewAttendanceService(db, bus),
	}
	r.Post("/attendance", staffAccess, attendance.Mark)
	r.Post("/attendance/bulk", staffAccess, attendance.BulkMark)
	r.Get("/attendance", staffAccess, attendance.List)
	r.Delete("/attendance/:id", adminOnly, attendance.Delete)

	transport := &transportController.TransportController{DB: db}
	r.Post("/transport/routes", adminOnly, transport.Create)
	r.Get("/transport/routes", staffAccess, transport.List)
	r.Put("/transport/routes/:id", adminOnly, transport.Update)
	r.Delete("/transport/routes/:id", adminOnly, transport.Delete)

	library := &libraryController.LibraryController{DB: db}
	r.Post("/library/books", adminOnly, library.CreateBook)
	r.Get("/library/books", staffAccess, library.ListBooks)
	r.Delete("/library/books/:id", adminOnly, library.DeleteBook)
	r.Post("/library/loans", staffAccess, library.IssueLoan)
	r.Post("/library/loans/:id/return", staffAccess, library.ReturnLoan)

	inventory := &inventoryController.InventoryController{DB: db}
	r.Post("/inventory/assets", adminOnly, inventory.Create)
	r.Get("/inventory/assets", staffAccess, inventory.List)
	r.Put("/inventory/assets/:id", adminOnly, inventory.Update)
	r.Delete("/inventory/assets/:id", adminOnly, inventory.Delete)

	calendar := &eventController.EventController{DB: db}
	r.Post("/events", adminOnly, calendar.Create)
	r.Get("/events", staffAccess, calendar.List)
	r.Put("/events/:id", adminOnly, calendar.Update)
	r.Delete("/events/:id", adminOnly, calendar.Delete)

	welfare := &welfareController.WelfareController{DB: db}
	r.Post("/welfare", staffAccess, welfare.Create)
	r.Get("/welfare", staffAccess, welfare.List)
	r.Put("/welfare/:id", staffAccess, welfare.Update)
	r.Delete("/welfare/:id", adminOnly, welfare.Delete)
}
