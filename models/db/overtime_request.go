package dbmodels

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hr-platform-backend/models"
)

type OvertimeRequest struct {
	BaseSpaceModel
	ApprovalFields
	EmployeeID string     `gorm:"type:varchar(36);index"`
	Employee   *SpaceUser `gorm:"foreignKey:EmployeeID"`
	Date       time.Time
	Hours      decimal.Decimal         `gorm:"type:numeric(4,2)"`
	RateType   models.OvertimeRateType `gorm:"type:varchar(20)"`
	Reason     string
}

func (r OvertimeRequest) GetRequesterID() string {
	return r.EmployeeID
}

func (r OvertimeRequest) GetTitle() string {
	return fmt.Sprintf("сверхурочная работа %s, %s ч", r.Date.Format("02.01.2006"), r.Hours.String())
}
