package dbmodels

import (
	"time"

	"hr-platform-backend/models"
)

// ApprovalFields - общий блок полей согласования, встраивается в каждую таблицу заявок.
// Пока заявка в статусе PENDING, CurrentLevel лежит в [1, TotalLevels];
// после терминального решения уровень замораживается на этапе, где оно было принято.
type ApprovalFields struct {
	Status          models.RequestStatus `gorm:"type:varchar(30);index"`
	CurrentLevel    int
	TotalLevels     int
	ChainSeq        int // номер цепочки согласования, растёт при повторной отправке после доработки
	SubmittedAt     *time.Time
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	CancelledAt     *time.Time
	DecisionComment string
}

func (f *ApprovalFields) Approval() *ApprovalFields {
	return f
}

// Approval - одна запись на (заявка, этап). Создаются пакетом при отправке на
// согласование, после этого меняются только решение, комментарий и признак
// активности этапа.
type Approval struct {
	BaseSpaceModel
	RequestType models.ApprovalRequestType `gorm:"type:varchar(50);index:idx_approval_request"`
	RequestID   string                     `gorm:"type:varchar(36);index:idx_approval_request"`
	ChainSeq    int                        `gorm:"index:idx_approval_request"`
	Level       int
	ApproverID  string     `gorm:"type:varchar(36)"`
	Approver    *SpaceUser `gorm:"foreignKey:ApproverID"`
	Decision    models.ApprovalDecision
	// этап ждёт решения прямо сейчас: выставляется, когда этап становится текущим,
	// снимается при решении и при терминальном переходе заявки
	IsActive  bool `gorm:"index"`
	DecidedAt *time.Time
	Comment   string
}

type ApprovalHistory struct {
	BaseSpaceModel
	RequestType models.ApprovalRequestType `gorm:"type:varchar(50);index:idx_approval_history_request"`
	RequestID   string                     `gorm:"type:varchar(36);index:idx_approval_history_request"`
	ApprovalID  string                     `gorm:"type:varchar(36)"`
	Level       int
	ApproverID  string     `gorm:"type:varchar(36)"`
	Approver    *SpaceUser `gorm:"foreignKey:ApproverID"`
	Decision    models.ApprovalDecision
	Comment     string
}
