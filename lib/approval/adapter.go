package approvalhandler

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hr-platform-backend/models"
	dbmodels "hr-platform-backend/models/db"
)

// RequestInfo - срез заявки, достаточный движку согласования
type RequestInfo struct {
	RequesterID string
	Title       string
	Fields      dbmodels.ApprovalFields
}

// BalanceEffect - влияние заявки на остаток отпуска, nil когда заявка остаток не трогает
type BalanceEffect struct {
	EmployeeID  string
	LeaveTypeID string
	Year        int
	Amount      decimal.Decimal
}

// RequestAdapter подключает семейство заявок к движку согласования.
// Движок не знает таблиц семейств: чтение, блокировка и обновление
// строки заявки идут через адаптер.
type RequestAdapter interface {
	RequestType() models.ApprovalRequestType
	// Get читает заявку, при forUpdate строка блокируется до конца транзакции
	Get(tx *gorm.DB, spaceID, requestID string, forUpdate bool) (*RequestInfo, error)
	UpdateFields(tx *gorm.DB, spaceID, requestID string, updMap map[string]interface{}) error
	// ValidateForSubmit - доменная проверка содержимого перед отправкой
	ValidateForSubmit(tx *gorm.DB, spaceID, requestID string) error
	BalanceEffect(tx *gorm.DB, spaceID, requestID string) (*BalanceEffect, error)
	SupportsRevision() bool
	// OnFinalApproval - доменное действие после финального согласования
	OnFinalApproval(tx *gorm.DB, spaceID, requestID string) error
}
