package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "shuleni_backend/internals/features/assessment/tasks/model"
)

type SBATaskCreateRequest struct {
	Title         string            `json:"title" validate:"required,min=2,max=200"`
	Subject       string            `json:"subject" validate:"required,min=2,max=60"`
	Grade         string            `json:"grade" validate:"required,min=1,max=20"`
	Term          int               `json:"term" validate:"required,min=1,max=3"`
	Rubric        map[string]string `json:"rubric"`
	EvidenceTypes []string          `json:"evidence_types" validate:"required,min=1,dive,oneof=photo document audio observation"`
	DueDate       *time.Time        `json:"due_date"`
}

func (r *SBATaskCreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Grade = strings.TrimSpace(r.Grade)
}

func (r *SBATaskCreateRequest) ToModel(schoolID uuid.UUID, rubric datatypes.JSON) *model.SBATaskModel {
	return &model.SBATaskModel{
		SBATaskSchoolID:      schoolID,
		SBATaskTitle:         r.Title,
		SBATaskSubject:       r.Subject,
		SBATaskGrade:         r.Grade,
		SBATaskTerm:          r.Term,
		SBATaskRubric:        rubric,
		SBATaskEvidenceTypes: model.EvidenceTypeList(r.EvidenceTypes),
		SBATaskDueDate:       r.DueDate,
	}
}

type SBATaskUpdateRequest struct {
	Title         *string           `json:"title" validate:"omitempty,min=2,max=200"`
	Subject       *string           `json:"subject" validate:"omitempty,min=2,max=60"`
	Grade         *string           `json:"grade" validate:"omitempty,min=1,max=20"`
	Term          *int              `json:"term" validate:"omitempty,min=1,max=3"`
	Rubric        map[string]string `json:"rubric"`
	EvidenceTypes []string          `json:"evidence_types" validate:"omitempty,min=1,dive,oneof=photo document audio observation"`
	DueDate       *time.Time        `json:"due_date"`
}

func (r *SBATaskUpdateRequest) Apply(m *model.SBATaskModel) {
	if r.Title != nil {
		m.SBATaskTitle = strings.TrimSpace(*r.Title)
	}
	if r.Subject != nil {
		m.SBATaskSubject = strings.TrimSpace(*r.Subject)
	}
	if r.Grade != nil {
		m.SBATaskGrade = strings.TrimSpace(*r.Grade)
	}
	if r.Term != nil {
		m.SBATaskTerm = *r.Term
	}
	if len(r.EvidenceTypes) > 0 {
		m.SBATaskEvidenceTypes = model.EvidenceTypeList(r.EvidenceTypes)
	}
	if r.DueDate != nil {
		m.SBATaskDueDate = r.DueDate
	}
}
