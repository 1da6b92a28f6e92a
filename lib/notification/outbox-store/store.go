package outboxstore

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.NotificationOutbox) error
	ListPending(limit int) (list []dbmodels.NotificationOutbox, err error)
	MarkSent(id string) error
	MarkRetry(id string, attempts int, lastError string) error
	MarkFailed(id string, attempts int, lastError string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Create - вставка с защитой от дублей: повторная запись с тем же ключом
// дедупликации молча пропускается
func (i impl) Create(rec dbmodels.NotificationOutbox) error {
	return i.db.
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedup_key"}},
			DoNothing: true,
		}).
		Create(&rec).
		Error
}

func (i impl) ListPending(limit int) (list []dbmodels.NotificationOutbox, err error) {
	list = []dbmodels.NotificationOutbox{}
	err = i.db.
		Where("status = ?", dbmodels.OutboxPending).
		Order("created_at ASC").
		Limit(limit).
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkSent(id string) error {
	now := time.Now()
	return i.db.
		Model(&dbmodels.NotificationOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  dbmodels.OutboxSent,
			"sent_at": &now,
		}).
		Error
}

func (i impl) MarkRetry(id string, attempts int, lastError string) error {
	return i.db.
		Model(&dbmodels.NotificationOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   attempts,
			"last_error": lastError,
		}).
		Error
}

func (i impl) MarkFailed(id string, attempts int, lastError string) error {
	return i.db.
		Model(&dbmodels.NotificationOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     dbmodels.OutboxFailed,
			"attempts":   attempts,
			"last_error": lastError,
		}).
		Error
}
