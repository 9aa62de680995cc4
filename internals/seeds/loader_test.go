package seeds

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	evidenceModel "shuleni_backend/internals/features/assessment/evidence/model"
	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
	invoiceModel "shuleni_backend/internals/features/finance/invoices/model"
	attendanceModel "shuleni_backend/internals/features/school/attendance/model"
	classroomModel "shuleni_backend/internals/features/school/classrooms/model"
	learnerModel "shuleni_backend/internals/features/school/learners/model"
	schoolModel "shuleni_backend/internals/features/school/schools/model"
	staffModel "shuleni_backend/internals/features/school/staff/model"
	searchService "shuleni_backend/internals/features/search/service"
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
		&schoolModel.SchoolModel{},
		&classroomModel.ClassroomModel{},
		&learnerModel.LearnerModel{},
		&learnerModel.GuardianModel{},
		&staffModel.StaffModel{},
		&taskModel.SBATaskModel{},
		&evidenceModel.EvidenceModel{},
		&attendanceModel.AttendanceModel{},
		&invoiceModel.FeeInvoiceModel{},
		&invoiceModel.FeePaymentModel{},
	))
	return db
}

func TestSeedAllLoadsCompleteFixtureSet(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedAll(db))

	var school schoolModel.SchoolModel
	require.NoError(t, db.First(&school).Error)
	assert.Equal(t, "Shuleni Demo Academy", school.SchoolName)

	counts := map[string]int64{}
	for name, m := range map[string]any{
		"learners":   &learnerModel.LearnerModel{},
		"guardians":  &learnerModel.GuardianModel{},
		"classrooms": &classroomModel.ClassroomModel{},
		"staff":      &staffModel.StaffModel{},
		"tasks":      &taskModel.SBATaskModel{},
		"invoices":   &invoiceModel.FeeInvoiceModel{},
	} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		counts[name] = n
	}
	assert.EqualValues(t, 4, counts["learners"])
	assert.EqualValues(t, 4, counts["guardians"])
	assert.EqualValues(t, 2, counts["classrooms"])
	assert.EqualValues(t, 2, counts["staff"])
	assert.EqualValues(t, 2, counts["tasks"])
	assert.EqualValues(t, 4, counts["invoices"])

	// every seeded invoice opens unpaid with balance == total
	var invoices []invoiceModel.FeeInvoiceModel
	require.NoError(t, db.Find(&invoices).Error)
	for _, inv := range invoices {
		assert.EqualValues(t, 20500, inv.InvoiceTotal)
		assert.Equal(t, inv.InvoiceTotal, inv.InvoiceBalance)
		assert.Equal(t, invoiceModel.InvoiceStatusUnpaid, inv.InvoiceStatus)
	}
}

func TestSeededDataIsSearchable(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedAll(db))

	var school schoolModel.SchoolModel
	require.NoError(t, db.First(&school).Error)

	results, err := searchService.NewSearchService(db).Global(school.SchoolID, "grace")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "learner", results[0].Type)
	assert.Equal(t, "Grace Wanjiku", results[0].Title)
}
