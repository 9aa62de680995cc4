package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "shuleni_backend/internals/features/school/learners/model"
)

/* =========================
   REQUEST
   ========================= */

type GuardianUpsert struct {
	Name         string         `json:"name" validate:"required,min=2,max=120"`
	Relationship string         `json:"relationship"`
	Phone        string         `json:"phone"`
	Email        *string        `json:"email" validate:"omitempty,email"`
	Consents     datatypes.JSON `json:"consents"`
}

type LearnerCreateRequest struct {
	FirstName   string           `json:"first_name" validate:"required,min=2,max=80"`
	LastName    string           `json:"last_name" validate:"required,min=2,max=80"`
	Gender      string           `json:"gender" validate:"omitempty,oneof=male female"`
	DOB         *time.Time       `json:"dob"`
	UPI         *string          `json:"upi"`
	AdmissionNo string           `json:"admission_no" validate:"required,min=1,max=30"`
	ClassroomID *uuid.UUID       `json:"classroom_id"`
	RouteID     *uuid.UUID       `json:"route_id"`
	Guardians   []GuardianUpsert `json:"guardians" validate:"dive"`
}

func (r *LearnerCreateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.AdmissionNo = strings.TrimSpace(r.AdmissionNo)
	if r.UPI != nil {
		v := strings.TrimSpace(*r.UPI)
		if v == "" {
			r.UPI = nil
		} else {
			r.UPI = &v
		}
	}
}

func (r *LearnerCreateRequest) ToModel(schoolID uuid.UUID) *model.LearnerModel {
	m := &model.LearnerModel{
		LearnerSchoolID:    schoolID,
		LearnerFirstName:   r.FirstName,
		LearnerLastName:    r.LastName,
		LearnerGender:      r.Gender,
		LearnerDOB:         r.DOB,
		LearnerUPI:         r.UPI,
		LearnerAdmissionNo: r.AdmissionNo,
		LearnerStatus:      model.StatusActive,
		LearnerClassroomID: r.ClassroomID,
		LearnerRouteID:     r.RouteID,
	}
	for _, g := range r.Guardians {
		m.Guardians = append(m.Guardians, model.GuardianModel{
			GuardianSchoolID:     schoolID,
			GuardianName:         strings.TrimSpace(g.Name),
			GuardianRelationship: g.Relationship,
			GuardianPhone:        strings.TrimSpace(g.Phone),
			GuardianEmail:        g.Email,
			GuardianConsents:     g.Consents,
		})
	}
	return m
}

// LearnerUpdateRequest merges a partial field set; nil fields are untouched.
type LearnerUpdateRequest struct {
	FirstName   *string    `json:"first_name" validate:"omitempty,min=2,max=80"`
	LastName    *string    `json:"last_name" validate:"omitempty,min=2,max=80"`
	Gender      *string    `json:"gender" validate:"omitempty,oneof=male female"`
	DOB         *time.Time `json:"dob"`
	UPI         *string    `json:"upi"`
	Status      *string    `json:"status" validate:"omitempty,oneof=active transferred graduated"`
	ClassroomID *uuid.UUID `json:"classroom_id"`
	RouteID     *uuid.UUID `json:"route_id"`
}

func (r *LearnerUpdateRequest) Apply(m *model.LearnerModel) {
	if r.FirstName != nil {
		m.LearnerFirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		m.LearnerLastName = strings.TrimSpace(*r.LastName)
	}
	if r.Gender != nil {
		m.LearnerGender = *r.Gender
	}
	if r.DOB != nil {
		m.LearnerDOB = r.DOB
	}
	if r.UPI != nil {
		m.LearnerUPI = r.UPI
	}
	if r.Status != nil {
		m.LearnerStatus = *r.Status
	}
	if r.ClassroomID != nil {
		m.LearnerClassroomID = r.ClassroomID
	}
	if r.RouteID != nil {
		m.LearnerRouteID = r.RouteID
	}
}

type LearnerListQuery struct {
	Q           *string `query:"q"`
	Status      *string `query:"status"`
	ClassroomID *string `query:"classroom_id"`
}
