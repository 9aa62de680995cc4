package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/school/attendance/model"
	"shuleni_backend/internals/events"
)

type AttendanceService struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewAttendanceService(db *gorm.DB, bus *events.Bus) *AttendanceService {
	return &AttendanceService{DB: db, Bus: bus}
}

// Mark writes one attendance record. An "absent" status publishes
// AttendanceMarkedAbsent so the communications subscriber can draft the
// guardian SMS inside the same transaction.
func (s *AttendanceService) Mark(schoolID, learnerID uuid.UUID, classroomID *uuid.UUID, date time.Time, status string, note *string) (*model.AttendanceModel, error) {
	rec := &model.AttendanceModel{
		AttendanceSchoolID:    schoolID,
		AttendanceLearnerID:   learnerID,
		AttendanceClassroomID: classroomID,
		AttendanceDate:        date,
		AttendanceStatus:      status,
		AttendanceNote:        note,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		if status == model.StatusAbsent && s.Bus != nil {
			return s.Bus.Publish(tx, events.AttendanceMarkedAbsent{
				SchoolID:  schoolID,
				LearnerID: learnerID,
				RecordID:  rec.AttendanceID,
				Date:      date,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RegisterSubscribers hooks attendance cleanup to learner deletion.
func RegisterSubscribers(bus *events.Bus) {
	bus.Subscribe(events.LearnerDeleted{}.EventName(), func(tx *gorm.DB, evt events.Event) error {
		e := evt.(events.LearnerDeleted)
		return tx.Where("attendance_school_id = ? AND attendance_learner_id = ?", e.SchoolID, e.LearnerID).
			Delete(&model.AttendanceModel{}).Error
	})
}
