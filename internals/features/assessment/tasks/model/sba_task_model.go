package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// EvidenceTypeList is a Postgres text[] column; other dialects fall back to
// the pq array literal in a plain text column.
type EvidenceTypeList pq.StringArray

// GormDataType gives the schema parser a scalar type for the slice; without
// it, parsing fails before the dialect hook below is ever consulted.
func (EvidenceTypeList) GormDataType() string { return "text" }

func (EvidenceTypeList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (l *EvidenceTypeList) Scan(v interface{}) error {
	return (*pq.StringArray)(l).Scan(v)
}

func (l EvidenceTypeList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

// SBATaskModel is a teacher-defined School-Based Assessment task with its
// rubric. The rubric always carries the four CBC bands; per-task descriptors
// live in the JSON document.
type SBATaskModel struct {
	SBATaskID       uuid.UUID `json:"sba_task_id" gorm:"column:sba_task_id;type:uuid;primaryKey"`
	SBATaskSchoolID uuid.UUID `json:"sba_task_school_id" gorm:"column:sba_task_school_id;type:uuid;not null;index:idx_sba_tasks_school"`

	SBATaskTitle   string `json:"sba_task_title" gorm:"column:sba_task_title;type:varchar(200);not null"`
	SBATaskSubject string `json:"sba_task_subject" gorm:"column:sba_task_subject;type:varchar(60);not null"`
	SBATaskGrade   string `json:"sba_task_grade" gorm:"column:sba_task_grade;type:varchar(20);not null"`
	SBATaskTerm    int    `json:"sba_task_term" gorm:"column:sba_task_term;not null;default:1"`

	// Rubric descriptors per band: {"emerging": "...", "approaching": "...", ...}
	SBATaskRubric datatypes.JSON `json:"sba_task_rubric,omitempty" gorm:"column:sba_task_rubric"`

	// Evidence types a submission may carry, e.g. {photo,document,audio,observation}
	SBATaskEvidenceTypes EvidenceTypeList `json:"sba_task_evidence_types" gorm:"column:sba_task_evidence_types"`

	SBATaskDueDate *time.Time `json:"sba_task_due_date,omitempty" gorm:"column:sba_task_due_date"`

	SBATaskCreatedAt time.Time      `json:"sba_task_created_at" gorm:"column:sba_task_created_at;not null;autoCreateTime"`
	SBATaskUpdatedAt time.Time      `json:"sba_task_updated_at" gorm:"column:sba_task_updated_at;not null;autoUpdateTime"`
	SBATaskDeletedAt gorm.DeletedAt `json:"sba_task_deleted_at,omitempty" gorm:"column:sba_task_deleted_at;index"`
}

func (SBATaskModel) TableName() string { return "sba_tasks" }

func (m *SBATaskModel) BeforeCreate(tx *gorm.DB) error {
	if m.SBATaskID == uuid.Nil {
		m.SBATaskID = uuid.New()
	}
	return nil
}
