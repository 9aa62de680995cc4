package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shuleni_backend/internals/constants"
	evidenceModel "shuleni_backend/internals/features/assessment/evidence/model"
	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
)

var (
	ErrTaskNotFound     = errors.New("assessment task not found")
	ErrEvidenceNotFound = errors.New("evidence not found")
	ErrBandUnknown      = errors.New("unknown proficiency band")
	ErrScoreOutOfBand   = errors.New("score outside proficiency band range")
	ErrTypeNotAllowed   = errors.New("evidence type not allowed for this task")
)

type EvidenceService struct {
	DB *gorm.DB
}

type RecordInput struct {
	SchoolID    uuid.UUID
	TaskID      uuid.UUID
	LearnerID   uuid.UUID
	Proficiency string
	Score       int
	Type        string
	Comment     *string
	Attachment  *string
}

// Record validates a submission against the task's rubric and evidence-type
// whitelist, then persists it. The score must fall inside the range of the
// stated proficiency band (emerging 1-2, approaching 3-4, proficient 5-6,
// exceeding 7-8).
func (s *EvidenceService) Record(in RecordInput) (*evidenceModel.EvidenceModel, error) {
	min, max, ok := constants.ProficiencyRange(in.Proficiency)
	if !ok {
		return nil, ErrBandUnknown
	}
	if in.Score < min || in.Score > max {
		return nil, fmt.Errorf("%w: %s expects %d-%d, got %d",
			ErrScoreOutOfBand, in.Proficiency, min, max, in.Score)
	}

	var task taskModel.SBATaskModel
	if err := s.DB.Where("sba_task_school_id = ?", in.SchoolID).
		First(&task, "sba_task_id = ?", in.TaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	allowed := false
	for _, t := range task.SBATaskEvidenceTypes {
		if t == in.Type {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotAllowed, in.Type)
	}

	m := &evidenceModel.EvidenceModel{
		EvidenceSchoolID:    in.SchoolID,
		EvidenceTaskID:      in.TaskID,
		EvidenceLearnerID:   in.LearnerID,
		EvidenceProficiency: in.Proficiency,
		EvidenceScore:       in.Score,
		EvidenceType:        in.Type,
		EvidenceComment:     in.Comment,
		EvidenceAttachment:  in.Attachment,
	}
	if err := s.DB.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *EvidenceService) Get(schoolID, id uuid.UUID) (*evidenceModel.EvidenceModel, error) {
	var m evidenceModel.EvidenceModel
	if err := s.DB.Where("evidence_school_id = ?", schoolID).
		First(&m, "evidence_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvidenceNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *EvidenceService) Delete(schoolID, id uuid.UUID) error {
	return s.DB.Where("evidence_school_id = ?", schoolID).
		Delete(&evidenceModel.EvidenceModel{}, "evidence_id = ?", id).Error
}
