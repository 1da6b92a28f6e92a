package dictapimodels

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	dbmodels "hr-platform-backend/models/db"
)

type LeaveTypeData struct {
	Name       string          `json:"name"`
	Paid       bool            `json:"paid"`
	AnnualDays decimal.Decimal `json:"annual_days"`
}

func (v LeaveTypeData) Validate() error {
	if v.Name == "" {
		return errors.New("не указано название вида отпуска")
	}
	if v.AnnualDays.IsNegative() {
		return errors.New("количество дней в год не может быть отрицательным")
	}
	return nil
}

type LeaveTypeView struct {
	LeaveTypeData
	ID string `json:"id"`
}

func LeaveTypeConvert(rec dbmodels.LeaveType) LeaveTypeView {
	return LeaveTypeView{
		LeaveTypeData: LeaveTypeData{
			Name:       rec.Name,
			Paid:       rec.Paid,
			AnnualDays: rec.AnnualDays,
		},
		ID: rec.ID,
	}
}
