package seeds

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuleni_backend/internals/configs"
	schoolModel "shuleni_backend/internals/features/school/schools/model"
)

func withDemoMode(t *testing.T, on bool) {
	t.Helper()
	prev := configs.DemoMode
	configs.DemoMode = on
	t.Cleanup(func() { configs.DemoMode = prev })
}

func TestLoadAllReturnsTenantRows(t *testing.T) {
	withDemoMode(t, false)
	db := newTestDB(t)
	require.NoError(t, SeedAll(db))

	var school schoolModel.SchoolModel
	require.NoError(t, db.First(&school).Error)

	data := LoadAll(context.Background(), db, school.SchoolID)
	assert.Len(t, data.Learners, 4)
	assert.Len(t, data.Staff, 2)
	assert.Len(t, data.Classrooms, 2)
	assert.Len(t, data.Tasks, 2)
	assert.Len(t, data.Invoices, 4)
	assert.False(t, data.Empty())
}

func TestLoadAllScopesToSchool(t *testing.T) {
	withDemoMode(t, false)
	db := newTestDB(t)
	require.NoError(t, SeedAll(db))

	data := LoadAll(context.Background(), db, uuid.New())
	assert.True(t, data.Empty())
}

func TestLoadAllSeedsEmptyDemoTenant(t *testing.T) {
	withDemoMode(t, true)
	db := newTestDB(t)

	data := LoadAll(context.Background(), db, uuid.New())
	assert.Len(t, data.Learners, 4)
	assert.Len(t, data.Invoices, 4)

	// the fixtures were persisted, not just returned
	var schools int64
	require.NoError(t, db.Model(&schoolModel.SchoolModel{}).Count(&schools).Error)
	assert.EqualValues(t, 1, schools)
}

func TestLoadAllServesFixturesWhenDeadlineBlown(t *testing.T) {
	withDemoMode(t, false)
	db := newTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := LoadAll(ctx, db, uuid.New())
	assert.Len(t, data.Learners, 4)
	assert.Len(t, data.Staff, 2)
	assert.Len(t, data.Tasks, 2)

	// nothing written: the fallback is in-memory only
	var schools int64
	require.NoError(t, db.Model(&schoolModel.SchoolModel{}).Count(&schools).Error)
	assert.EqualValues(t, 0, schools)
}
