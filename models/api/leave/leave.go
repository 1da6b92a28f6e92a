package leaveapimodels

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"hr-platform-backend/models"
	apimodels "hr-platform-backend/models/api"
	approvalapimodels "hr-platform-backend/models/api/approval"
	dbmodels "hr-platform-backend/models/db"
)

type LeaveApplicationData struct {
	LeaveTypeID string          `json:"leave_type_id"`
	DateFrom    time.Time       `json:"date_from"`
	DateTo      time.Time       `json:"date_to"`
	Days        decimal.Decimal `json:"days"`
	Reason      string          `json:"reason"`
}

func (v LeaveApplicationData) Validate() error {
	if v.LeaveTypeID == "" {
		return errors.New("не указан вид отпуска")
	}
	if v.DateFrom.IsZero() || v.DateTo.IsZero() {
		return errors.New("не указан период отпуска")
	}
	if v.DateTo.Before(v.DateFrom) {
		return errors.New("дата окончания отпуска раньше даты начала")
	}
	if !v.Days.IsPositive() {
		return errors.New("количество дней должно быть больше нуля")
	}
	span := int(v.DateTo.Sub(v.DateFrom).Hours()/24) + 1
	if v.Days.GreaterThan(decimal.NewFromInt(int64(span))) {
		return errors.New("количество дней превышает длительность периода")
	}
	return nil
}

type LeaveApplicationView struct {
	LeaveApplicationData
	ID            string                           `json:"id"`
	EmployeeID    string                           `json:"employee_id"`
	EmployeeName  string                           `json:"employee_name"`
	LeaveTypeName string                           `json:"leave_type_name"`
	CreatedAt     time.Time                        `json:"created_at"`
	SubmittedAt   *time.Time                       `json:"submitted_at"`
	Approval      approvalapimodels.ApprovalState  `json:"approval"`
}

func LeaveApplicationConvert(rec dbmodels.LeaveApplication, approvals []dbmodels.Approval) LeaveApplicationView {
	employeeName := ""
	if rec.Employee != nil {
		employeeName = rec.Employee.GetFullName()
	}
	leaveTypeName := ""
	if rec.LeaveType != nil {
		leaveTypeName = rec.LeaveType.Name
	}
	return LeaveApplicationView{
		LeaveApplicationData: LeaveApplicationData{
			LeaveTypeID: rec.LeaveTypeID,
			DateFrom:    rec.DateFrom,
			DateTo:      rec.DateTo,
			Days:        rec.Days,
			Reason:      rec.Reason,
		},
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		EmployeeName:  employeeName,
		LeaveTypeName: leaveTypeName,
		CreatedAt:     rec.CreatedAt,
		SubmittedAt:   rec.SubmittedAt,
		Approval:      approvalapimodels.ApprovalStateConvert(rec.ApprovalFields, approvals),
	}
}

type LeaveFilter struct {
	apimodels.Pagination
	Statuses []models.RequestStatus `json:"statuses"`
}
