package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shuleni_backend/internals/constants"
	evidenceModel "shuleni_backend/internals/features/assessment/evidence/model"
	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
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

	require.NoError(t, db.AutoMigrate(&taskModel.SBATaskModel{}, &evidenceModel.EvidenceModel{}))
	return db
}

func seedTask(t *testing.T, db *gorm.DB, schoolID uuid.UUID) *taskModel.SBATaskModel {
	t.Helper()
	task := &taskModel.SBATaskModel{
		SBATaskSchoolID:      schoolID,
		SBATaskTitle:         "Plant growth observation journal",
		SBATaskSubject:       "Science and Technology",
		SBATaskGrade:         "Grade 4",
		SBATaskTerm:          2,
		SBATaskEvidenceTypes: []string{"photo", "observation"},
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestRecordValidatesBandAndScore(t *testing.T) {
	db := newTestDB(t)
	svc := &EvidenceService{DB: db}
	schoolID := uuid.New()
	task := seedTask(t, db, schoolID)
	learnerID := uuid.New()

	in := RecordInput{
		SchoolID:    schoolID,
		TaskID:      task.SBATaskID,
		LearnerID:   learnerID,
		Proficiency: constants.BandProficient,
		Score:       5,
		Type:        "observation",
	}
	got, err := svc.Record(in)
	require.NoError(t, err)
	assert.Equal(t, 5, got.EvidenceScore)
	assert.Equal(t, constants.BandProficient, got.EvidenceProficiency)

	// score outside the stated band
	in.Score = 8
	_, err = svc.Record(in)
	assert.ErrorIs(t, err, ErrScoreOutOfBand)

	// unknown band
	in.Proficiency = "excellent"
	in.Score = 5
	_, err = svc.Record(in)
	assert.ErrorIs(t, err, ErrBandUnknown)
}

func TestRecordEnforcesEvidenceTypeWhitelist(t *testing.T) {
	db := newTestDB(t)
	svc := &EvidenceService{DB: db}
	schoolID := uuid.New()
	task := seedTask(t, db, schoolID)

	_, err := svc.Record(RecordInput{
		SchoolID:    schoolID,
		TaskID:      task.SBATaskID,
		LearnerID:   uuid.New(),
		Proficiency: constants.BandEmerging,
		Score:       1,
		Type:        "audio", // task allows photo and observation only
	})
	assert.ErrorIs(t, err, ErrTypeNotAllowed)
}

func TestRecordUnknownTask(t *testing.T) {
	svc := &EvidenceService{DB: newTestDB(t)}
	_, err := svc.Record(RecordInput{
		SchoolID:    uuid.New(),
		TaskID:      uuid.New(),
		LearnerID:   uuid.New(),
		Proficiency: constants.BandEmerging,
		Score:       2,
		Type:        "photo",
	})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestProficiencyRanges(t *testing.T) {
	cases := map[string][2]int{
		constants.BandEmerging:    {1, 2},
		constants.BandApproaching: {3, 4},
		constants.BandProficient:  {5, 6},
		constants.BandExceeding:   {7, 8},
	}
	for band, want := range cases {
		min, max, ok := constants.ProficiencyRange(band)
		require.True(t, ok, band)
		assert.Equal(t, want[0], min, band)
		assert.Equal(t, want[1], max, band)
	}
	_, _, ok := constants.ProficiencyRange("excellent")
	assert.False(t, ok)
}
