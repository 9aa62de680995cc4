package dto

import (
	"time"

	"github.com/google/uuid"
)

type MarkRequest struct {
	LearnerID   uuid.UUID  `json:"learner_id" validate:"required"`
	ClassroomID *uuid.UUID `json:"classroom_id"`
	Date        time.Time  `json:"date" validate:"required"`
	Status      string     `json:"status" validate:"required,oneof=present absent late excused"`
	Note        *string    `json:"note"`
}

// BulkMarkRequest marks a whole classroom for one day in a single call.
type BulkMarkRequest struct {
	ClassroomID uuid.UUID       `json:"classroom_id" validate:"required"`
	Date        time.Time       `json:"date" validate:"required"`
	Entries     []BulkMarkEntry `json:"entries" validate:"required,min=1,dive"`
}

type BulkMarkEntry struct {
	LearnerID uuid.UUID `json:"learner_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
	Note      *string   `json:"note"`
}
