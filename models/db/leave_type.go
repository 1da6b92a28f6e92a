package dbmodels

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type LeaveType struct {
	BaseSpaceModel
	Name       string `gorm:"type:varchar(255)"`
	Paid       bool
	AnnualDays decimal.Decimal `gorm:"type:numeric(5,2)"` // дней в год по умолчанию
}

func (c *LeaveType) Validate() error {
	if err := c.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.New("не указано название вида отпуска")
	}
	if c.AnnualDays.IsNegative() {
		return errors.New("количество дней в год не может быть отрицательным")
	}
	return nil
}
