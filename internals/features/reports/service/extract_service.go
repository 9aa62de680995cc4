package service

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	evidenceModel "shuleni_backend/internals/features/assessment/evidence/model"
	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
	classroomModel "shuleni_backend/internals/features/school/classrooms/model"
	learnerModel "shuleni_backend/internals/features/school/learners/model"
)

// ExtractService renders the fixed-layout CSV extracts submitted to the
// ministry portals. Column order here is dictated by the portal templates,
// not by us.
type ExtractService struct {
	DB *gorm.DB
}

func NewExtractService(db *gorm.DB) *ExtractService {
	return &ExtractService{DB: db}
}

var rosterHeader = []string{"upi", "admission_no", "first_name", "last_name", "grade", "status"}

// LearnerRoster is the NEMIS-style learner listing.
func (s *ExtractService) LearnerRoster(schoolID uuid.UUID) (*File, error) {
	var learners []learnerModel.LearnerModel
	if err := s.DB.Where("learner_school_id = ?", schoolID).
		Order("learner_admission_no asc").Find(&learners).Error; err != nil {
		return nil, err
	}

	gradeByClassroom := map[uuid.UUID]string{}
	{
		var classrooms []classroomModel.ClassroomModel
		if err := s.DB.Where("classroom_school_id = ?", schoolID).Find(&classrooms).Error; err != nil {
			return nil, err
		}
		for _, cr := range classrooms {
			gradeByClassroom[cr.ClassroomID] = cr.ClassroomGrade
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(rosterHeader); err != nil {
		return nil, err
	}
	for _, l := range learners {
		upi := ""
		if l.LearnerUPI != nil {
			upi = *l.LearnerUPI
		}
		grade := ""
		if l.LearnerClassroomID != nil {
			grade = gradeByClassroom[*l.LearnerClassroomID]
		}
		if err := w.Write([]string{
			upi,
			l.LearnerAdmissionNo,
			l.LearnerFirstName,
			l.LearnerLastName,
			grade,
			l.LearnerStatus,
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &File{
		Name:        "learner-roster.csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

var evidenceHeader = []string{"learner_admission_no", "task_title", "subject", "grade", "term", "proficiency", "score"}

// AssessmentExtract is the per-submission SBA extract.
func (s *ExtractService) AssessmentExtract(schoolID uuid.UUID) (*File, error) {
	var rows []evidenceModel.EvidenceModel
	if err := s.DB.Where("evidence_school_id = ?", schoolID).
		Order("evidence_created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	// Resolve referenced tasks and learners in two lookups instead of per-row.
	taskByID := map[uuid.UUID]taskModel.SBATaskModel{}
	learnerByID := map[uuid.UUID]learnerModel.LearnerModel{}
	{
		var tasks []taskModel.SBATaskModel
		if err := s.DB.Where("sba_task_school_id = ?", schoolID).Find(&tasks).Error; err != nil {
			return nil, err
		}
		for _, t := range tasks {
			taskByID[t.SBATaskID] = t
		}
		var learners []learnerModel.LearnerModel
		if err := s.DB.Where("learner_school_id = ?", schoolID).Find(&learners).Error; err != nil {
			return nil, err
		}
		for _, l := range learners {
			learnerByID[l.LearnerID] = l
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(evidenceHeader); err != nil {
		return nil, err
	}
	for _, e := range rows {
		t := taskByID[e.EvidenceTaskID]
		l := learnerByID[e.EvidenceLearnerID]
		if err := w.Write([]string{
			l.LearnerAdmissionNo,
			t.SBATaskTitle,
			t.SBATaskSubject,
			t.SBATaskGrade,
			strconv.Itoa(t.SBATaskTerm),
			e.EvidenceProficiency,
			strconv.Itoa(e.EvidenceScore),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &File{
		Name:        "assessment-extract.csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}
