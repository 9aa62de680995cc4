package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassroomModel is one grade/stream, e.g. "Grade 4 Blue".
type ClassroomModel struct {
	ClassroomID       uuid.UUID `json:"classroom_id" gorm:"column:classroom_id;type:uuid;primaryKey"`
	ClassroomSchoolID uuid.UUID `json:"classroom_school_id" gorm:"column:classroom_school_id;type:uuid;not null;index:idx_classrooms_school"`

	// PP1, PP2, Grade 1 .. Grade 6
	ClassroomGrade    string     `json:"classroom_grade" gorm:"column:classroom_grade;type:varchar(20);not null"`
	ClassroomStream   string     `json:"classroom_stream" gorm:"column:classroom_stream;type:varchar(40)"`
	ClassroomCapacity int        `json:"classroom_capacity" gorm:"column:classroom_capacity;not null;default:40"`
	ClassroomTeacherID *uuid.UUID `json:"classroom_teacher_id,omitempty" gorm:"column:classroom_teacher_id;type:uuid"`

	ClassroomCreatedAt time.Time      `json:"classroom_created_at" gorm:"column:classroom_created_at;not null;autoCreateTime"`
	ClassroomUpdatedAt time.Time      `json:"classroom_updated_at" gorm:"column:classroom_updated_at;not null;autoUpdateTime"`
	ClassroomDeletedAt gorm.DeletedAt `json:"classroom_deleted_at,omitempty" gorm:"column:classroom_deleted_at;index"`
}

func (ClassroomModel) TableName() string { return "classrooms" }

func (m *ClassroomModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassroomID == uuid.Nil {
		m.ClassroomID = uuid.New()
	}
	return nil
}

func (m *ClassroomModel) Label() string {
	if m.ClassroomStream == "" {
		return m.ClassroomGrade
	}
	return m.ClassroomGrade + " " + m.ClassroomStream
}
