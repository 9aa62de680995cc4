package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/learners/model"
	"shuleni_backend/internals/events"
)

var ErrLearnerNotFound = errors.New("learner not found")

// LearnerService owns learner persistence. Constructed once per process and
// injected; controllers and fixtures share it.
type LearnerService struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewLearnerService(db *gorm.DB, bus *events.Bus) *LearnerService {
	return &LearnerService{DB: db, Bus: bus}
}

func (s *LearnerService) Create(m *model.LearnerModel) error {
	return s.DB.Create(m).Error
}

func (s *LearnerService) Get(schoolID, id uuid.UUID) (*model.LearnerModel, error) {
	var m model.LearnerModel
	err := s.DB.Preload("Guardians").
		Where("learner_school_id = ?", schoolID).
		First(&m, "learner_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLearnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *LearnerService) Save(m *model.LearnerModel) error {
	return s.DB.Save(m).Error
}

// Delete removes the learner with its guardians and publishes LearnerDeleted
// inside the same transaction, so the cascade subscribers (attendance and
// invoice cleanup) either all apply or none do. Deleting an id twice is a
// no-op the second time.
func (s *LearnerService) Delete(schoolID, id uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("learner_school_id = ?", schoolID).
			Delete(&model.LearnerModel{}, "learner_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already gone
		}
		if err := tx.Where("guardian_learner_id = ?", id).
			Delete(&model.GuardianModel{}).Error; err != nil {
			return err
		}
		if s.Bus != nil {
			return s.Bus.Publish(tx, events.LearnerDeleted{SchoolID: schoolID, LearnerID: id})
		}
		return nil
	})
}
