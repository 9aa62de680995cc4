package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

type AttendanceModel struct {
	AttendanceID       uuid.UUID `json:"attendance_id" gorm:"column:attendance_id;type:uuid;primaryKey"`
	AttendanceSchoolID uuid.UUID `json:"attendance_school_id" gorm:"column:attendance_school_id;type:uuid;not null;index:idx_attendance_school"`

	AttendanceLearnerID   uuid.UUID  `json:"attendance_learner_id" gorm:"column:attendance_learner_id;type:uuid;not null;index:idx_attendance_learner"`
	AttendanceClassroomID *uuid.UUID `json:"attendance_classroom_id,omitempty" gorm:"column:attendance_classroom_id;type:uuid;index:idx_attendance_classroom"`

	AttendanceDate   time.Time `json:"attendance_date" gorm:"column:attendance_date;not null;index:idx_attendance_date"`
	AttendanceStatus string    `json:"attendance_status" gorm:"column:attendance_status;type:varchar(10);not null"`
	AttendanceNote   *string   `json:"attendance_note,omitempty" gorm:"column:attendance_note;type:varchar(255)"`

	AttendanceCreatedAt time.Time `json:"attendance_created_at" gorm:"column:attendance_created_at;not null;autoCreateTime"`
	AttendanceUpdatedAt time.Time `json:"attendance_updated_at" gorm:"column:attendance_updated_at;not null;autoUpdateTime"`
}

func (AttendanceModel) TableName() string { return "attendance_records" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
