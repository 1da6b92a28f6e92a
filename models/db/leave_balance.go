package dbmodels

import (
	"github.com/shopspring/decimal"
)

// LeaveBalance - остаток отпуска на (сотрудник, вид отпуска, год).
// Инвариант после каждой операции: Earned >= Used + Pending.
type LeaveBalance struct {
	BaseSpaceModel
	EmployeeID  string          `gorm:"type:varchar(36);uniqueIndex:idx_balance_tuple"`
	Employee    *SpaceUser      `gorm:"foreignKey:EmployeeID"`
	LeaveTypeID string          `gorm:"type:varchar(36);uniqueIndex:idx_balance_tuple"`
	LeaveType   *LeaveType
	Year        int             `gorm:"uniqueIndex:idx_balance_tuple"`
	Earned      decimal.Decimal `gorm:"type:numeric(6,2)"`
	Used        decimal.Decimal `gorm:"type:numeric(6,2)"`
	Pending     decimal.Decimal `gorm:"type:numeric(6,2)"`
}

// Available - доступный к резервированию остаток
func (b LeaveBalance) Available() decimal.Decimal {
	return b.Earned.Sub(b.Used).Sub(b.Pending)
}
