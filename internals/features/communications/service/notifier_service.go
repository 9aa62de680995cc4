package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shuleni_backend/internals/events"
	model "shuleni_backend/internals/features/communications/model"
	learnerModel "shuleni_backend/internals/features/school/learners/model"
	helper "shuleni_backend/internals/helpers"
)

var ErrMessageNotFound = errors.New("message not found")

// DeliverFunc hands one message body to a gateway for one recipient.
type DeliverFunc func(channel, address, body string) error

// NotifierService drafts and dispatches guardian messages. The default
// gateway is a stub that logs; delivery failures mark the recipient failed
// without surfacing an error to the caller.
type NotifierService struct {
	DB      *gorm.DB
	Deliver DeliverFunc
}

func NewNotifierService(db *gorm.DB) *NotifierService {
	return &NotifierService{DB: db, Deliver: logDeliver}
}

func logDeliver(channel, address, body string) error {
	log.Printf("[INFO] %s -> %s: %s", channel, address, body)
	return nil
}

type DraftInput struct {
	SchoolID   uuid.UUID
	Channel    string
	Subject    string
	Body       string
	Recipients []model.Recipient
}

func (s *NotifierService) Draft(in DraftInput) (*model.MessageModel, error) {
	for i := range in.Recipients {
		in.Recipients[i].Status = model.MessageStatusDraft
		if in.Channel == model.ChannelSMS {
			msisdn, err := helper.NormalizeMsisdn(in.Recipients[i].Address)
			if err != nil {
				return nil, fmt.Errorf("recipient %q: %w", in.Recipients[i].Name, err)
			}
			in.Recipients[i].Address = msisdn
		}
	}
	raw, err := sonic.Marshal(in.Recipients)
	if err != nil {
		return nil, err
	}

	m := &model.MessageModel{
		MessageSchoolID:   in.SchoolID,
		MessageChannel:    in.Channel,
		MessageSubject:    in.Subject,
		MessageBody:       in.Body,
		MessageRecipients: datatypes.JSON(raw),
		MessageStatus:     model.MessageStatusDraft,
	}
	if err := s.DB.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// Send pushes a drafted message out and records per-recipient outcomes.
// Swapping in a real SMS provider means replacing Deliver.
func (s *NotifierService) Send(schoolID, messageID uuid.UUID) (*model.MessageModel, error) {
	var m model.MessageModel
	if err := s.DB.Where("message_school_id = ?", schoolID).
		First(&m, "message_id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	var recipients []model.Recipient
	if err := sonic.Unmarshal(m.MessageRecipients, &recipients); err != nil {
		return nil, err
	}

	anySent := false
	for i := range recipients {
		if err := s.Deliver(m.MessageChannel, recipients[i].Address, m.MessageBody); err != nil {
			log.Printf("[ERROR] deliver %s to %s: %v", m.MessageChannel, recipients[i].Address, err)
			recipients[i].Status = model.MessageStatusFailed
			continue
		}
		recipients[i].Status = model.MessageStatusSent
		anySent = true
	}

	raw, err := sonic.Marshal(recipients)
	if err != nil {
		return nil, err
	}
	m.MessageRecipients = datatypes.JSON(raw)
	if anySent {
		m.MessageStatus = model.MessageStatusSent
		now := time.Now()
		m.MessageSentAt = &now
	} else {
		m.MessageStatus = model.MessageStatusFailed
	}
	if err := s.DB.Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// RegisterSubscribers drafts one SMS per guardian with a phone number when a
// learner is marked absent. Drafting happens inside the attendance
// transaction; dispatch stays a separate, explicit step.
func RegisterSubscribers(bus *events.Bus) {
	bus.Subscribe(events.AttendanceMarkedAbsent{}.EventName(), func(tx *gorm.DB, evt events.Event) error {
		e := evt.(events.AttendanceMarkedAbsent)

		var learner learnerModel.LearnerModel
		if err := tx.Preload("Guardians").
			Where("learner_school_id = ?", e.SchoolID).
			First(&learner, "learner_id = ?", e.LearnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		body := fmt.Sprintf("%s was marked absent on %s. Please contact the school office if this is unexpected.",
			learner.FullName(), e.Date.Format("02 Jan 2006"))

		for _, g := range learner.Guardians {
			if g.GuardianPhone == "" {
				continue
			}
			msisdn, err := helper.NormalizeMsisdn(g.GuardianPhone)
			if err != nil {
				log.Printf("[WARN] guardian %s has invalid phone %q, skipping", g.GuardianID, g.GuardianPhone)
				continue
			}
			recipients, err := sonic.Marshal([]model.Recipient{{
				Name:    g.GuardianName,
				Address: msisdn,
				Status:  model.MessageStatusDraft,
			}})
			if err != nil {
				return err
			}
			msg := model.MessageModel{
				MessageSchoolID:   e.SchoolID,
				MessageChannel:    model.ChannelSMS,
				MessageSubject:    "Absence notification",
				MessageBody:       body,
				MessageRecipients: datatypes.JSON(recipients),
				MessageStatus:     model.MessageStatusDraft,
			}
			if err := tx.Create(&msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
