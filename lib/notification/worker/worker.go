package notificationworker

import (
	"context"
	"time"

	"hr-platform-backend/config"
	"hr-platform-backend/db"
	outboxstore "hr-platform-backend/lib/notification/outbox-store"
	"hr-platform-backend/lib/smtp"
	baseworker "hr-platform-backend/lib/utils/base-worker"
	"hr-platform-backend/lib/utils/helpers"
	connectionhub "hr-platform-backend/lib/ws/hub/connection-hub"
	dbmodels "hr-platform-backend/models/db"
	wsmodels "hr-platform-backend/models/ws"
)

func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Workers.OutboxIntervalInSec) * time.Second
	i := &impl{
		BaseImpl:    *baseworker.NewInstance("NotificationOutboxWorker", 15*time.Second, interval),
		outboxStore: outboxstore.NewInstance(db.DB),
		batchSize:   config.Conf.Workers.OutboxBatchSize,
		maxAttempts: config.Conf.Workers.OutboxMaxAttempts,
		sendSystem: func(rec dbmodels.NotificationOutbox) error {
			connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
				ToUserID: rec.UserID,
				Time:     rec.CreatedAt.Format("02.01.2006 15:04:05"),
				Code:     string(rec.Code),
				Title:    rec.Title,
				Msg:      rec.Msg,
			})
			return nil
		},
		sendEmail: func(rec dbmodels.NotificationOutbox) error {
			if rec.User == nil || rec.User.Email == "" {
				return nil
			}
			return smtp.Instance.SendEMail(rec.User.Email, rec.Title, rec.Msg)
		},
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	outboxStore outboxstore.Provider
	batchSize   int
	maxAttempts int
	sendSystem  func(rec dbmodels.NotificationOutbox) error
	sendEmail   func(rec dbmodels.NotificationOutbox) error
}

// handle рассылает пачку ожидающих уведомлений. Доставка at-least-once:
// при падении между отправкой и отметкой событие уйдёт повторно.
func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.outboxStore.ListPending(i.batchSize)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка уведомлений")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		sendErr := i.send(rec)
		if sendErr == nil {
			if err = i.outboxStore.MarkSent(rec.ID); err != nil {
				logger.WithError(err).WithField("outbox_id", rec.ID).Error("Ошибка отметки уведомления отправленным")
			}
			continue
		}
		attempts := rec.Attempts + 1
		if attempts >= i.maxAttempts {
			err = i.outboxStore.MarkFailed(rec.ID, attempts, sendErr.Error())
		} else {
			err = i.outboxStore.MarkRetry(rec.ID, attempts, sendErr.Error())
		}
		if err != nil {
			logger.WithError(err).WithField("outbox_id", rec.ID).Error("Ошибка обновления статуса уведомления")
		}
	}
}

func (i impl) send(rec dbmodels.NotificationOutbox) error {
	for _, channel := range rec.Channels {
		switch channel {
		case dbmodels.ChannelSystem:
			if err := i.sendSystem(rec); err != nil {
				return err
			}
		case dbmodels.ChannelEmail:
			if err := i.sendEmail(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
