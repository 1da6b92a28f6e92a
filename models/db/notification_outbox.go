package dbmodels

import (
	"time"

	"github.com/lib/pq"

	"hr-platform-backend/models"
)

type OutboxStatus string

const (
	OutboxPending OutboxStatus = "PENDING"
	OutboxSent    OutboxStatus = "SENT"
	OutboxFailed  OutboxStatus = "FAILED"
)

// NotificationOutbox - уведомления пишутся сюда в той же транзакции, что и переход
// статуса заявки, и рассылаются воркером после коммита. Доставка at-least-once.
type NotificationOutbox struct {
	BaseSpaceModel
	UserID      string     `gorm:"type:varchar(36);index"`
	User        *SpaceUser `gorm:"foreignKey:UserID"`
	Code        models.SpacePushSettingCode `gorm:"type:varchar(255)"`
	Title       string
	Msg         string
	RequestType models.ApprovalRequestType `gorm:"type:varchar(50)"`
	RequestID   string                     `gorm:"type:varchar(36)"`
	DedupKey    string                     `gorm:"type:varchar(64);uniqueIndex"`
	Channels    pq.StringArray             `gorm:"type:text[]"`
	Status      OutboxStatus               `gorm:"type:varchar(10);index"`
	Attempts    int
	SentAt      *time.Time
	LastError   string
}

const (
	ChannelSystem = "system"
	ChannelEmail  = "email"
)
