package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolEventModel struct {
	EventID       uuid.UUID `json:"event_id" gorm:"column:event_id;type:uuid;primaryKey"`
	EventSchoolID uuid.UUID `json:"event_school_id" gorm:"column:event_school_id;type:uuid;not null;index:idx_events_school"`

	EventTitle    string    `json:"event_title" gorm:"column:event_title;type:varchar(160);not null"`
	EventVenue    *string   `json:"event_venue,omitempty" gorm:"column:event_venue;type:varchar(120)"`
	EventAudience string    `json:"event_audience" gorm:"column:event_audience;type:varchar(20);not null;default:all"`
	EventStartsAt time.Time `json:"event_starts_at" gorm:"column:event_starts_at;not null;index:idx_events_starts"`
	EventEndsAt   *time.Time `json:"event_ends_at,omitempty" gorm:"column:event_ends_at"`

	EventCreatedAt time.Time      `json:"event_created_at" gorm:"column:event_created_at;not null;autoCreateTime"`
	EventUpdatedAt time.Time      `json:"event_updated_at" gorm:"column:event_updated_at;not null;autoUpdateTime"`
	EventDeletedAt gorm.DeletedAt `json:"event_deleted_at,omitempty" gorm:"column:event_deleted_at;index"`
}

func (SchoolEventModel) TableName() string { return "school_events" }

func (m *SchoolEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	return nil
}
