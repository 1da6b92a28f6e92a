package balanceapimodels

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	dbmodels "hr-platform-backend/models/db"
)

type BalanceView struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name"`
	Year          int             `json:"year"`
	Earned        decimal.Decimal `json:"earned"`
	Used          decimal.Decimal `json:"used"`
	Pending       decimal.Decimal `json:"pending"`
	Available     decimal.Decimal `json:"available"`
}

func BalanceConvert(rec dbmodels.LeaveBalance) BalanceView {
	employeeName := ""
	if rec.Employee != nil {
		employeeName = rec.Employee.GetFullName()
	}
	leaveTypeName := ""
	if rec.LeaveType != nil {
		leaveTypeName = rec.LeaveType.Name
	}
	return BalanceView{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		EmployeeName:  employeeName,
		LeaveTypeID:   rec.LeaveTypeID,
		LeaveTypeName: leaveTypeName,
		Year:          rec.Year,
		Earned:        rec.Earned,
		Used:          rec.Used,
		Pending:       rec.Pending,
		Available:     rec.Available(),
	}
}

type SetEarnedData struct {
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	Year        int             `json:"year"`
	Earned      decimal.Decimal `json:"earned"`
}

func (v SetEarnedData) Validate() error {
	if v.EmployeeID == "" {
		return errors.New("не указан сотрудник")
	}
	if v.LeaveTypeID == "" {
		return errors.New("не указан вид отпуска")
	}
	if v.Year < 2000 || v.Year > 2100 {
		return errors.New("недопустимый год")
	}
	if v.Earned.IsNegative() {
		return errors.New("начисленный остаток не может быть отрицательным")
	}
	return nil
}
