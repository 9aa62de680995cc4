package service

import (
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "shuleni_backend/internals/features/communications/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.MessageModel{}))
	return db
}

func draftTwoRecipients(t *testing.T, svc *NotifierService, schoolID uuid.UUID) *model.MessageModel {
	t.Helper()
	msg, err := svc.Draft(DraftInput{
		SchoolID: schoolID,
		Channel:  model.ChannelSMS,
		Subject:  "Fee reminder",
		Body:     "Term 2 fees are due this Friday.",
		Recipients: []model.Recipient{
			{Name: "Mary Wanjiku", Address: "0712345678"},
			{Name: "Peter Otieno", Address: "0722000111"},
		},
	})
	require.NoError(t, err)
	return msg
}

func decodeRecipients(t *testing.T, m *model.MessageModel) []model.Recipient {
	t.Helper()
	var recipients []model.Recipient
	require.NoError(t, sonic.Unmarshal(m.MessageRecipients, &recipients))
	return recipients
}

func TestSendMarksEachRecipient(t *testing.T) {
	svc := NewNotifierService(newTestDB(t))
	schoolID := uuid.New()
	msg := draftTwoRecipients(t, svc, schoolID)

	// one gateway failure must not block the other recipient
	svc.Deliver = func(channel, address, body string) error {
		if address == "254722000111" {
			return errors.New("gateway rejected")
		}
		return nil
	}

	sent, err := svc.Send(schoolID, msg.MessageID)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusSent, sent.MessageStatus)
	require.NotNil(t, sent.MessageSentAt)

	recipients := decodeRecipients(t, sent)
	require.Len(t, recipients, 2)
	assert.Equal(t, model.MessageStatusSent, recipients[0].Status)
	assert.Equal(t, model.MessageStatusFailed, recipients[1].Status)
}

func TestSendAllDeliveriesFailing(t *testing.T) {
	svc := NewNotifierService(newTestDB(t))
	schoolID := uuid.New()
	msg := draftTwoRecipients(t, svc, schoolID)

	svc.Deliver = func(channel, address, body string) error {
		return errors.New("gateway down")
	}

	sent, err := svc.Send(schoolID, msg.MessageID)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusFailed, sent.MessageStatus)
	assert.Nil(t, sent.MessageSentAt)
	for _, r := range decodeRecipients(t, sent) {
		assert.Equal(t, model.MessageStatusFailed, r.Status)
	}
}

func TestSendUnknownMessage(t *testing.T) {
	svc := NewNotifierService(newTestDB(t))
	_, err := svc.Send(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestDraftRejectsBadRecipientPhone(t *testing.T) {
	svc := NewNotifierService(newTestDB(t))
	_, err := svc.Draft(DraftInput{
		SchoolID: uuid.New(),
		Channel:  model.ChannelSMS,
		Body:     "hello",
		Recipients: []model.Recipient{
			{Name: "Nobody", Address: "12345"},
		},
	})
	assert.Error(t, err)
}
