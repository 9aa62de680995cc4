package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shuleni_backend/internals/events"
	messageModel "shuleni_backend/internals/features/communications/model"
	communicationsService "shuleni_backend/internals/features/communications/service"
	invoiceModel "shuleni_backend/internals/features/finance/invoices/model"
	invoiceService "shuleni_backend/internals/features/finance/invoices/service"
	attendanceModel "shuleni_backend/internals/features/school/attendance/model"
	attendanceService "shuleni_backend/internals/features/school/attendance/service"
	model "shuleni_backend/internals/features/school/learners/model"
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
		&model.LearnerModel{},
		&model.GuardianModel{},
		&attendanceModel.AttendanceModel{},
		&invoiceModel.FeeInvoiceModel{},
		&invoiceModel.FeePaymentModel{},
		&messageModel.MessageModel{},
	))
	return db
}

func newLearner(schoolID uuid.UUID, first, last, admission string) *model.LearnerModel {
	return &model.LearnerModel{
		LearnerSchoolID:    schoolID,
		LearnerFirstName:   first,
		LearnerLastName:    last,
		LearnerAdmissionNo: admission,
		LearnerStatus:      model.StatusActive,
	}
}

func TestCreateThenGetRoundtrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewLearnerService(db, events.NewBus())
	schoolID := uuid.New()

	l := newLearner(schoolID, "Grace", "Wanjiku", "ADM-001")
	l.Guardians = []model.GuardianModel{{
		GuardianSchoolID: schoolID,
		GuardianName:     "Mary Wanjiku",
		GuardianPhone:    "254712345678",
	}}
	require.NoError(t, svc.Create(l))
	require.NotEqual(t, uuid.Nil, l.LearnerID)

	got, err := svc.Get(schoolID, l.LearnerID)
	require.NoError(t, err)
	assert.Equal(t, "Grace Wanjiku", got.FullName())
	assert.Equal(t, "ADM-001", got.LearnerAdmissionNo)
	require.Len(t, got.Guardians, 1)
	assert.Equal(t, "254712345678", got.Guardians[0].GuardianPhone)
}

func TestDeleteTwiceIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewLearnerService(db, events.NewBus())
	schoolID := uuid.New()

	l := newLearner(schoolID, "Brian", "Otieno", "ADM-002")
	require.NoError(t, svc.Create(l))

	require.NoError(t, svc.Delete(schoolID, l.LearnerID))
	_, err := svc.Get(schoolID, l.LearnerID)
	assert.ErrorIs(t, err, ErrLearnerNotFound)

	// second delete of the same id succeeds without touching anything
	require.NoError(t, svc.Delete(schoolID, l.LearnerID))
}

func TestDeleteCascadesToAttendanceAndInvoices(t *testing.T) {
	db := newTestDB(t)
	bus := events.NewBus()
	attendanceService.RegisterSubscribers(bus)
	invoiceService.RegisterSubscribers(bus)

	svc := NewLearnerService(db, bus)
	schoolID := uuid.New()

	victim := newLearner(schoolID, "Amina", "Hassan", "ADM-003")
	bystander := newLearner(schoolID, "Kevin", "Mutua", "ADM-004")
	require.NoError(t, svc.Create(victim))
	require.NoError(t, svc.Create(bystander))

	att := attendanceService.NewAttendanceService(db, nil)
	today := time.Now().Truncate(24 * time.Hour)
	_, err := att.Mark(schoolID, victim.LearnerID, nil, today, attendanceModel.StatusPresent, nil)
	require.NoError(t, err)
	_, err = att.Mark(schoolID, bystander.LearnerID, nil, today, attendanceModel.StatusPresent, nil)
	require.NoError(t, err)

	inv := invoiceService.NewInvoiceService(db)
	items := []invoiceModel.LineItem{{Description: "Tuition", Amount: 10000}}
	_, err = inv.Create(invoiceService.CreateInput{
		SchoolID: schoolID, LearnerID: victim.LearnerID, Term: 1, Year: 2026, LineItems: items,
	})
	require.NoError(t, err)
	_, err = inv.Create(invoiceService.CreateInput{
		SchoolID: schoolID, LearnerID: bystander.LearnerID, Term: 1, Year: 2026, LineItems: items,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(schoolID, victim.LearnerID))

	var attCount int64
	require.NoError(t, db.Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_learner_id = ?", victim.LearnerID).Count(&attCount).Error)
	assert.Zero(t, attCount)

	var invCount int64
	require.NoError(t, db.Model(&invoiceModel.FeeInvoiceModel{}).
		Where("invoice_learner_id = ?", victim.LearnerID).Count(&invCount).Error)
	assert.Zero(t, invCount)

	// the other learner's rows survive
	require.NoError(t, db.Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_learner_id = ?", bystander.LearnerID).Count(&attCount).Error)
	assert.EqualValues(t, 1, attCount)
	require.NoError(t, db.Model(&invoiceModel.FeeInvoiceModel{}).
		Where("invoice_learner_id = ?", bystander.LearnerID).Count(&invCount).Error)
	assert.EqualValues(t, 1, invCount)
}

func TestAbsenceDraftsOneMessagePerReachableGuardian(t *testing.T) {
	db := newTestDB(t)
	bus := events.NewBus()
	communicationsService.RegisterSubscribers(bus)

	svc := NewLearnerService(db, bus)
	schoolID := uuid.New()

	l := newLearner(schoolID, "Grace", "Wanjiku", "ADM-001")
	l.Guardians = []model.GuardianModel{
		{GuardianSchoolID: schoolID, GuardianName: "Mary Wanjiku", GuardianPhone: "0712345678"},
		{GuardianSchoolID: schoolID, GuardianName: "John Wanjiku", GuardianPhone: "0722000111"},
		{GuardianSchoolID: schoolID, GuardianName: "No Phone", GuardianPhone: ""},
	}
	require.NoError(t, svc.Create(l))

	att := attendanceService.NewAttendanceService(db, bus)
	_, err := att.Mark(schoolID, l.LearnerID, nil, time.Now(), attendanceModel.StatusAbsent, nil)
	require.NoError(t, err)

	var msgs []messageModel.MessageModel
	require.NoError(t, db.Where("message_school_id = ?", schoolID).Find(&msgs).Error)
	require.Len(t, msgs, 2, "one draft per guardian with a phone number")
	for _, m := range msgs {
		assert.Equal(t, messageModel.ChannelSMS, m.MessageChannel)
		assert.Equal(t, messageModel.MessageStatusDraft, m.MessageStatus)
		assert.Contains(t, m.MessageBody, "Grace Wanjiku")
	}
}
