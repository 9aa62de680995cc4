package service

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	taskModel "shuleni_backend/internals/features/assessment/tasks/model"
	invoiceModel "shuleni_backend/internals/features/finance/invoices/model"
	learnerModel "shuleni_backend/internals/features/school/learners/model"
	staffModel "shuleni_backend/internals/features/school/staff/model"
)

const maxResults = 10

type Result struct {
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
}

type SearchService struct {
	DB *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{DB: db}
}

// Global runs a cross-entity substring search within one school. Matching is
// case-insensitive over a fixed field set; results come back in a fixed
// entity order (learners, staff, invoices, tasks) capped at 10 overall.
func (s *SearchService) Global(schoolID uuid.UUID, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"
	results := make([]Result, 0, maxResults)

	var learners []learnerModel.LearnerModel
	if err := s.DB.Where("learner_school_id = ?", schoolID).
		Where("lower(learner_first_name) LIKE ? OR lower(learner_last_name) LIKE ? OR lower(learner_admission_no) LIKE ? OR lower(learner_upi) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("learner_last_name asc, learner_first_name asc").
		Limit(maxResults).Find(&learners).Error; err != nil {
		return nil, err
	}
	for _, l := range learners {
		if len(results) >= maxResults {
			return results, nil
		}
		results = append(results, Result{
			Type:     "learner",
			ID:       l.LearnerID,
			Title:    l.FullName(),
			Subtitle: "Adm " + l.LearnerAdmissionNo,
		})
	}

	var staff []staffModel.StaffModel
	if err := s.DB.Where("staff_school_id = ?", schoolID).
		Where("lower(staff_name) LIKE ? OR lower(staff_no) LIKE ?", pattern, pattern).
		Order("staff_name asc").
		Limit(maxResults).Find(&staff).Error; err != nil {
		return nil, err
	}
	for _, st := range staff {
		if len(results) >= maxResults {
			return results, nil
		}
		results = append(results, Result{
			Type:     "staff",
			ID:       st.StaffID,
			Title:    st.StaffName,
			Subtitle: st.StaffRole,
		})
	}

	var invoices []invoiceModel.FeeInvoiceModel
	if err := s.DB.Where("invoice_school_id = ?", schoolID).
		Where("lower(invoice_number) LIKE ? OR lower(invoice_notes) LIKE ?", pattern, pattern).
		Order("invoice_created_at desc").
		Limit(maxResults).Find(&invoices).Error; err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if len(results) >= maxResults {
			return results, nil
		}
		results = append(results, Result{
			Type:     "invoice",
			ID:       inv.InvoiceID,
			Title:    inv.InvoiceNumber,
			Subtitle: inv.InvoiceNotes,
		})
	}

	var tasks []taskModel.SBATaskModel
	if err := s.DB.Where("sba_task_school_id = ?", schoolID).
		Where("lower(sba_task_title) LIKE ? OR lower(sba_task_subject) LIKE ?", pattern, pattern).
		Order("sba_task_created_at desc").
		Limit(maxResults).Find(&tasks).Error; err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if len(results) >= maxResults {
			return results, nil
		}
		results = append(results, Result{
			Type:     "task",
			ID:       t.SBATaskID,
			Title:    t.SBATaskTitle,
			Subtitle: t.SBATaskSubject,
		})
	}

	return results, nil
}
