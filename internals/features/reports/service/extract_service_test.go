package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	evidenceModel "shuleni_backend/internals/features/assessment/evidence/model"
	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
	classroomModel "shuleni_backend/internals/features/school/classrooms/model"
	learnerModel "shuleni_backend/internals/features/school/learners/model"
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
		&classroomModel.ClassroomModel{},
		&taskModel.SBATaskModel{},
		&evidenceModel.EvidenceModel{},
	))
	return db
}

func TestLearnerRosterExtract(t *testing.T) {
	db := newTestDB(t)
	svc := NewExtractService(db)
	schoolID := uuid.New()

	classroom := classroomModel.ClassroomModel{
		ClassroomSchoolID: schoolID, ClassroomGrade: "Grade 4", ClassroomStream: "North",
	}
	require.NoError(t, db.Create(&classroom).Error)

	upi := "UPI-44821"
	require.NoError(t, db.Create(&learnerModel.LearnerModel{
		LearnerSchoolID: schoolID, LearnerFirstName: "Grace", LearnerLastName: "Wanjiku",
		LearnerAdmissionNo: "ADM-001", LearnerStatus: learnerModel.StatusActive,
		LearnerUPI: &upi, LearnerClassroomID: &classroom.ClassroomID,
	}).Error)

	f, err := svc.LearnerRoster(schoolID)
	require.NoError(t, err)
	assert.Equal(t, "learner-roster.csv", f.Name)

	rows, err := csv.NewReader(bytes.NewReader(f.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"upi", "admission_no", "first_name", "last_name", "grade", "status"}, rows[0])
	assert.Equal(t, []string{"UPI-44821", "ADM-001", "Grace", "Wanjiku", "Grade 4", "active"}, rows[1])
}

func TestAssessmentExtract(t *testing.T) {
	db := newTestDB(t)
	svc := NewExtractService(db)
	schoolID := uuid.New()

	learner := learnerModel.LearnerModel{
		LearnerSchoolID: schoolID, LearnerFirstName: "Brian", LearnerLastName: "Otieno",
		LearnerAdmissionNo: "ADM-002", LearnerStatus: learnerModel.StatusActive,
	}
	require.NoError(t, db.Create(&learner).Error)

	task := taskModel.SBATaskModel{
		SBATaskSchoolID: schoolID, SBATaskTitle: "Shairi recitation",
		SBATaskSubject: "Kiswahili", SBATaskGrade: "Grade 5", SBATaskTerm: 2,
		SBATaskEvidenceTypes: []string{"audio"},
	}
	require.NoError(t, db.Create(&task).Error)

	require.NoError(t, db.Create(&evidenceModel.EvidenceModel{
		EvidenceSchoolID: schoolID, EvidenceTaskID: task.SBATaskID, EvidenceLearnerID: learner.LearnerID,
		EvidenceProficiency: "proficient", EvidenceScore: 6, EvidenceType: "audio",
	}).Error)

	f, err := svc.AssessmentExtract(schoolID)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(f.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ADM-002", "Shairi recitation", "Kiswahili", "Grade 5", "2", "proficient", "6"}, rows[1])
}
