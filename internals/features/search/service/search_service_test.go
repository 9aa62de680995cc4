package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
	invoiceModel "shuleni_backend/internals/features/finance/invoices/model"
	learnerModel "shuleni_backend/internals/features/school/learners/model"
	staffModel "shuleni_backend/internals/features/school/staff/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&learnerModel.LearnerModel{},
		&staffModel.StaffModel{},
		&invoiceModel.FeeInvoiceModel{},
		&taskModel.SBATaskModel{},
	))
	return db
}

func seedSearchData(t *testing.T, db *gorm.DB, schoolID uuid.UUID) {
	t.Helper()
	learners := []learnerModel.LearnerModel{
		{LearnerSchoolID: schoolID, LearnerFirstName: "Grace", LearnerLastName: "Wanjiku", LearnerAdmissionNo: "ADM-001", LearnerStatus: learnerModel.StatusActive},
		{LearnerSchoolID: schoolID, LearnerFirstName: "Brian", LearnerLastName: "Otieno", LearnerAdmissionNo: "ADM-002", LearnerStatus: learnerModel.StatusActive},
	}
	for i := range learners {
		require.NoError(t, db.Create(&learners[i]).Error)
	}
	require.NoError(t, db.Create(&staffModel.StaffModel{
		StaffSchoolID: schoolID, StaffName: "Samuel Kiprotich", StaffNo: "STF-001", StaffRole: "teacher",
	}).Error)
	require.NoError(t, db.Create(&invoiceModel.FeeInvoiceModel{
		InvoiceSchoolID: schoolID, InvoiceLearnerID: learners[0].LearnerID,
		InvoiceTerm: 2, InvoiceYear: 2026,
		InvoiceNumber:    "INV-2026-0007",
		InvoiceNotes:     "Term 2 fees for Grace Wanjiku",
		InvoiceLineItems: []byte(`[{"description":"Tuition","amount":15000}]`),
		InvoiceTotal:     15000, InvoiceBalance: 15000, InvoiceStatus: invoiceModel.InvoiceStatusUnpaid,
	}).Error)
	require.NoError(t, db.Create(&taskModel.SBATaskModel{
		SBATaskSchoolID: schoolID, SBATaskTitle: "Plant growth journal",
		SBATaskSubject: "Science and Technology", SBATaskGrade: "Grade 4", SBATaskTerm: 2,
		SBATaskEvidenceTypes: []string{"photo"},
	}).Error)
}

func TestGlobalSearchOrderAndMatching(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	schoolID := uuid.New()
	seedSearchData(t, db, schoolID)

	results, err := svc.Global(schoolID, "grace")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "learner", results[0].Type)
	assert.Equal(t, "Grace Wanjiku", results[0].Title)
	assert.Equal(t, "invoice", results[1].Type)

	// other tenants never leak in
	results, err = svc.Global(uuid.New(), "grace")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGlobalSearchFindsInvoiceByNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	schoolID := uuid.New()
	seedSearchData(t, db, schoolID)

	results, err := svc.Global(schoolID, "inv-2026-0007")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "invoice", results[0].Type)
	assert.Equal(t, "INV-2026-0007", results[0].Title)
}

func TestGlobalSearchEntityOrderIsFixed(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	schoolID := uuid.New()
	seedSearchData(t, db, schoolID)

	// "a" matches at least one row of every entity in the fixture set
	results, err := svc.Global(schoolID, "a")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	lastRank := 0
	rank := map[string]int{"learner": 1, "staff": 2, "invoice": 3, "task": 4}
	for _, r := range results {
		require.GreaterOrEqual(t, rank[r.Type], lastRank, "entity order must be learners, staff, invoices, tasks")
		lastRank = rank[r.Type]
	}
}

func TestGlobalSearchCapsAtTen(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	schoolID := uuid.New()

	for i := 0; i < 15; i++ {
		require.NoError(t, db.Create(&learnerModel.LearnerModel{
			LearnerSchoolID:    schoolID,
			LearnerFirstName:   "Common",
			LearnerLastName:    fmt.Sprintf("Name%02d", i),
			LearnerAdmissionNo: fmt.Sprintf("ADM-%03d", i),
			LearnerStatus:      learnerModel.StatusActive,
		}).Error)
	}

	results, err := svc.Global(schoolID, "common")
	require.NoError(t, err)
	assert.Len(t, results, 10)
}

func TestGlobalSearchBlankQuery(t *testing.T) {
	svc := NewSearchService(newTestDB(t))
	results, err := svc.Global(uuid.New(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}
