package notificationhandler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	outboxstore "hr-platform-backend/lib/notification/outbox-store"
	pushhandler "hr-platform-backend/lib/space/push/handler"
	"hr-platform-backend/models"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	EnqueueTx(tx *gorm.DB, spaceID, userID string, data models.NotificationData, requestType models.ApprovalRequestType, requestID, dedupSuffix string) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		outboxStore: outboxstore.NewInstance,
		enabledChannels: func(spaceID, userID string, code models.SpacePushSettingCode) ([]string, error) {
			return pushhandler.Instance.EnabledChannels(spaceID, userID, code)
		},
	}
}

type impl struct {
	outboxStore     func(tx *gorm.DB) outboxstore.Provider
	enabledChannels func(spaceID, userID string, code models.SpacePushSettingCode) ([]string, error)
}

// EnqueueTx пишет уведомление в outbox в транзакции вызывающего. Ошибка получения
// настроек каналов не блокирует бизнес-операцию: уведомление уходит по всем каналам.
func (i impl) EnqueueTx(tx *gorm.DB, spaceID, userID string, data models.NotificationData, requestType models.ApprovalRequestType, requestID, dedupSuffix string) error {
	channels, err := i.enabledChannels(spaceID, userID, data.Code)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithField("event_code", string(data.Code)).
			WithError(err).
			Error("ошибка получения настроек уведомлений, событие уйдёт по всем каналам")
		channels = []string{dbmodels.ChannelSystem, dbmodels.ChannelEmail}
	}
	if len(channels) == 0 {
		return nil
	}
	rec := dbmodels.NotificationOutbox{
		UserID:      userID,
		Code:        data.Code,
		Title:       data.Title,
		Msg:         data.Msg,
		RequestType: requestType,
		RequestID:   requestID,
		DedupKey:    dedupKey(userID, data.Code, requestType, requestID, dedupSuffix),
		Channels:    channels,
		Status:      dbmodels.OutboxPending,
	}
	rec.SpaceID = spaceID
	return i.outboxStore(tx).Create(rec)
}

func dedupKey(userID string, code models.SpacePushSettingCode, requestType models.ApprovalRequestType, requestID, suffix string) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%s", userID, code, requestType, requestID, suffix)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
