package database

import (
	"log"

	evidenceModel "shuleni_backend/internals/features/assessment/evidence/model"
	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
	messageModel "shuleni_backend/internals/features/communications/model"
	invoiceModel "shuleni_backend/internals/features/finance/invoices/model"
	attendanceModel "shuleni_backend/internals/features/school/attendance/model"
	classroomModel "shuleni_backend/internals/features/school/classrooms/model"
	eventModel "shuleni_backend/internals/features/school/events/model"
	inventoryModel "shuleni_backend/internals/features/school/inventory/model"
	learnerModel "shuleni_backend/internals/features/school/learners/model"
	libraryModel "shuleni_backend/internals/features/school/library/model"
	schoolModel "shuleni_backend/internals/features/school/schools/model"
	staffModel "shuleni_backend/internals/features/school/staff/model"
	transportModel "shuleni_backend/internals/features/school/transport/model"
	welfareModel "shuleni_backend/internals/features/school/welfare/model"
	userModel "shuleni_backend/internals/features/users/auth/model"
)

// Migrate keeps the schema in sync at startup.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&userModel.TokenBlacklistModel{},
		&schoolModel.SchoolModel{},
		&classroomModel.ClassroomModel{},
		&learnerModel.LearnerModel{},
		&learnerModel.GuardianModel{},
		&staffModel.StaffModel{},
		&attendanceModel.AttendanceModel{},
		&taskModel.SBATaskModel{},
		&evidenceModel.EvidenceModel{},
		&invoiceModel.FeeInvoiceModel{},
		&invoiceModel.FeePaymentModel{},
		&transportModel.TransportRouteModel{},
		&libraryModel.BookModel{},
		&libraryModel.LoanModel{},
		&inventoryModel.AssetModel{},
		&eventModel.SchoolEventModel{},
		&welfareModel.WelfareCaseModel{},
		&messageModel.MessageModel{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Schema migrated")
}
