package dbmodels

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveApplication struct {
	BaseSpaceModel
	ApprovalFields
	EmployeeID  string     `gorm:"type:varchar(36);index"`
	Employee    *SpaceUser `gorm:"foreignKey:EmployeeID"`
	LeaveTypeID string     `gorm:"type:varchar(36)"`
	LeaveType   *LeaveType
	DateFrom    time.Time
	DateTo      time.Time
	Days        decimal.Decimal `gorm:"type:numeric(5,2)"`
	Reason      string
}

func (r LeaveApplication) GetRequesterID() string {
	return r.EmployeeID
}

func (r LeaveApplication) GetTitle() string {
	return fmt.Sprintf("отпуск %s - %s", r.DateFrom.Format("02.01.2006"), r.DateTo.Format("02.01.2006"))
}
