package seeds

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shuleni_backend/internals/configs"
	invoiceService "shuleni_backend/internals/features/finance/invoices/service"
	classroomModel "shuleni_backend/internals/features/school/classrooms/model"
	learnerModel "shuleni_backend/internals/features/school/learners/model"
	schoolModel "shuleni_backend/internals/features/school/schools/model"
	helper "shuleni_backend/internals/helpers"
)

// SeedIfEmpty loads the demo fixtures when demo mode is on and no school
// exists yet. A half-seeded database is worse than an empty one, so the
// whole load runs in one transaction.
func SeedIfEmpty(db *gorm.DB) {
	if !configs.DemoMode {
		return
	}
	var count int64
	if err := db.Model(&schoolModel.SchoolModel{}).Count(&count).Error; err != nil {
		log.Printf("[ERROR] seed check: %v", err)
		return
	}
	if count > 0 {
		return
	}
	if err := SeedAll(db); err != nil {
		log.Printf("[ERROR] seed demo data: %v", err)
		return
	}
	log.Println("✅ Demo fixtures seeded")
}

// SeedAll inserts the full demo dataset: one school with classrooms, staff,
// learners and their guardians, assessment tasks and a term invoice per
// learner.
func SeedAll(db *gorm.DB) error {
	_, err := seedAllReturning(db)
	return err
}

func seedAllReturning(db *gorm.DB) (uuid.UUID, error) {
	var schoolID uuid.UUID
	err := db.Transaction(func(tx *gorm.DB) error {
		school := demoSchool()
		if err := tx.Create(&school).Error; err != nil {
			return fmt.Errorf("seed school: %w", err)
		}
		schoolID = school.SchoolID

		classrooms := make([]classroomModel.ClassroomModel, len(demoClassrooms))
		copy(classrooms, demoClassrooms)
		for i := range classrooms {
			classrooms[i].ClassroomID = uuid.Nil
			classrooms[i].ClassroomSchoolID = school.SchoolID
			if err := tx.Create(&classrooms[i]).Error; err != nil {
				return fmt.Errorf("seed classroom: %w", err)
			}
		}

		for i := range demoStaff {
			st := demoStaff[i]
			st.StaffSchoolID = school.SchoolID
			if err := tx.Create(&st).Error; err != nil {
				return fmt.Errorf("seed staff: %w", err)
			}
		}

		invoices := invoiceService.NewInvoiceService(tx)
		for i, dl := range demoLearners {
			classroom := classrooms[i%len(classrooms)]
			l := learnerModel.LearnerModel{
				LearnerSchoolID:    school.SchoolID,
				LearnerFirstName:   dl.First,
				LearnerLastName:    dl.Last,
				LearnerGender:      dl.Gender,
				LearnerAdmissionNo: dl.Admission,
				LearnerStatus:      learnerModel.StatusActive,
				LearnerClassroomID: &classroom.ClassroomID,
			}
			if dl.UPI != "" {
				upi := dl.UPI
				l.LearnerUPI = &upi
			}
			if err := tx.Create(&l).Error; err != nil {
				return fmt.Errorf("seed learner: %w", err)
			}

			phone, err := helper.NormalizeMsisdn(dl.Phone)
			if err != nil {
				return fmt.Errorf("seed guardian phone: %w", err)
			}
			g := learnerModel.GuardianModel{
				GuardianSchoolID:     school.SchoolID,
				GuardianLearnerID:    l.LearnerID,
				GuardianName:         dl.Guardian,
				GuardianRelationship: "parent",
				GuardianPhone:        phone,
			}
			if err := tx.Create(&g).Error; err != nil {
				return fmt.Errorf("seed guardian: %w", err)
			}

			if _, err := invoices.Create(invoiceService.CreateInput{
				SchoolID:  school.SchoolID,
				LearnerID: l.LearnerID,
				Term:      2,
				Year:      2026,
				Notes:     "Term 2 fees for " + l.FullName(),
				LineItems: demoInvoiceItems(),
			}); err != nil {
				return fmt.Errorf("seed invoice: %w", err)
			}
		}

		for _, t := range demoTasks() {
			t.SBATaskSchoolID = school.SchoolID
			if err := tx.Create(&t).Error; err != nil {
				return fmt.Errorf("seed task: %w", err)
			}
		}
		return nil
	})
	return schoolID, err
}
