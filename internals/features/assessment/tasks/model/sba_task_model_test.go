package model

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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
	return db
}

func TestSBATaskSchemaMigrates(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&SBATaskModel{}))
}

func TestEvidenceTypesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&SBATaskModel{}))

	task := SBATaskModel{
		SBATaskSchoolID:      uuid.New(),
		SBATaskTitle:         "Plant growth observation journal",
		SBATaskSubject:       "Science and Technology",
		SBATaskGrade:         "Grade 4",
		SBATaskTerm:          2,
		SBATaskEvidenceTypes: EvidenceTypeList{"photo", "observation"},
	}
	require.NoError(t, db.Create(&task).Error)

	var got SBATaskModel
	require.NoError(t, db.First(&got, "sba_task_id = ?", task.SBATaskID).Error)
	assert.Equal(t, EvidenceTypeList{"photo", "observation"}, got.SBATaskEvidenceTypes)
}
