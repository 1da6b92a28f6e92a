package overtimeapimodels

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"hr-platform-backend/models"
	apimodels "hr-platform-backend/models/api"
	approvalapimodels "hr-platform-backend/models/api/approval"
	dbmodels "hr-platform-backend/models/db"
)

type OvertimeRequestData struct {
	Date     time.Time               `json:"date"`
	Hours    decimal.Decimal         `json:"hours"`
	RateType models.OvertimeRateType `json:"rate_type"`
	Reason   string                  `json:"reason"`
}

func (v OvertimeRequestData) Validate() error {
	if v.Date.IsZero() {
		return errors.New("не указана дата сверхурочной работы")
	}
	if !v.Hours.IsPositive() {
		return errors.New("количество часов должно быть больше нуля")
	}
	if v.Hours.GreaterThan(decimal.NewFromInt(12)) {
		return errors.New("количество часов не может превышать 12")
	}
	if !v.RateType.IsValid() {
		return errors.New("не указан тип оплаты")
	}
	return nil
}

type OvertimeRequestView struct {
	OvertimeRequestData
	ID           string                          `json:"id"`
	EmployeeID   string                          `json:"employee_id"`
	EmployeeName string                          `json:"employee_name"`
	Multiplier   float64                         `json:"multiplier"`
	CreatedAt    time.Time                       `json:"created_at"`
	SubmittedAt  *time.Time                      `json:"submitted_at"`
	Approval     approvalapimodels.ApprovalState `json:"approval"`
}

func OvertimeRequestConvert(rec dbmodels.OvertimeRequest, approvals []dbmodels.Approval) OvertimeRequestView {
	employeeName := ""
	if rec.Employee != nil {
		employeeName = rec.Employee.GetFullName()
	}
	return OvertimeRequestView{
		OvertimeRequestData: OvertimeRequestData{
			Date:     rec.Date,
			Hours:    rec.Hours,
			RateType: rec.RateType,
			Reason:   rec.Reason,
		},
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: employeeName,
		Multiplier:   rec.RateType.Multiplier(),
		CreatedAt:    rec.CreatedAt,
		SubmittedAt:  rec.SubmittedAt,
		Approval:     approvalapimodels.ApprovalStateConvert(rec.ApprovalFields, approvals),
	}
}

type OvertimeFilter struct {
	apimodels.Pagination
	Statuses []models.RequestStatus `json:"statuses"`
}
