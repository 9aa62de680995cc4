package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"

	MessageStatusDraft  = "draft"
	MessageStatusSent   = "sent"
	MessageStatusFailed = "failed"
)

// Recipient is one destination with its per-recipient delivery status.
type Recipient struct {
	Name    string `json:"name"`
	Address string `json:"address"` // msisdn for sms, email address for email
	Status  string `json:"status"`
}

type MessageModel struct {
	MessageID       uuid.UUID `json:"message_id" gorm:"column:message_id;type:uuid;primaryKey"`
	MessageSchoolID uuid.UUID `json:"message_school_id" gorm:"column:message_school_id;type:uuid;not null;index:idx_messages_school"`

	MessageChannel string `json:"message_channel" gorm:"column:message_channel;type:varchar(10);not null;default:sms"`
	MessageSubject string `json:"message_subject" gorm:"column:message_subject;type:varchar(160)"`
	MessageBody    string `json:"message_body" gorm:"column:message_body;type:text;not null"`

	MessageRecipients datatypes.JSON `json:"message_recipients" gorm:"column:message_recipients;not null"`

	MessageStatus string     `json:"message_status" gorm:"column:message_status;type:varchar(10);not null;default:draft"`
	MessageSentAt *time.Time `json:"message_sent_at,omitempty" gorm:"column:message_sent_at"`

	MessageCreatedAt time.Time      `json:"message_created_at" gorm:"column:message_created_at;not null;autoCreateTime"`
	MessageUpdatedAt time.Time      `json:"message_updated_at" gorm:"column:message_updated_at;not null;autoUpdateTime"`
	MessageDeletedAt gorm.DeletedAt `json:"message_deleted_at,omitempty" gorm:"column:message_deleted_at;index"`
}

func (MessageModel) TableName() string { return "messages" }

func (m *MessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
