package leavehandler

import (
	"gorm.io/gorm"

	approvalhandler "hr-platform-backend/lib/approval"
	leavestore "hr-platform-backend/lib/leave/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	leaveapimodels "hr-platform-backend/models/api/leave"
	dbmodels "hr-platform-backend/models/db"
)

// NewAdapter подключает заявки на отпуск к движку согласования
func NewAdapter() approvalhandler.RequestAdapter {
	return adapter{
		store: leavestore.NewInstance,
	}
}

type adapter struct {
	store func(tx *gorm.DB) leavestore.Provider
}

func (a adapter) RequestType() models.ApprovalRequestType {
	return models.RequestTypeLeave
}

func (a adapter) Get(tx *gorm.DB, spaceID, requestID string, forUpdate bool) (*approvalhandler.RequestInfo, error) {
	store := a.store(tx)
	var rec *dbmodels.LeaveApplication
	var err error
	if forUpdate {
		rec, err = store.GetByIDForUpdate(spaceID, requestID)
	} else {
		rec, err = store.GetByID(spaceID, requestID)
	}
	if err != nil || rec == nil {
		return nil, err
	}
	return &approvalhandler.RequestInfo{
		RequesterID: rec.GetRequesterID(),
		Title:       rec.GetTitle(),
		Fields:      rec.ApprovalFields,
	}, nil
}

func (a adapter) UpdateFields(tx *gorm.DB, spaceID, requestID string, updMap map[string]interface{}) error {
	return a.store(tx).Update(spaceID, requestID, updMap)
}

func (a adapter) ValidateForSubmit(tx *gorm.DB, spaceID, requestID string) error {
	rec, err := a.store(tx).GetByIDForUpdate(spaceID, requestID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.Validation("заявка не найдена")
	}
	data := leaveapimodels.LeaveApplicationData{
		LeaveTypeID: rec.LeaveTypeID,
		DateFrom:    rec.DateFrom,
		DateTo:      rec.DateTo,
		Days:        rec.Days,
		Reason:      rec.Reason,
	}
	if err = data.Validate(); err != nil {
		return apperror.Wrap(apperror.KindValidation, err, "заявка на отпуск заполнена некорректно")
	}
	return nil
}

func (a adapter) BalanceEffect(tx *gorm.DB, spaceID, requestID string) (*approvalhandler.BalanceEffect, error) {
	rec, err := a.store(tx).GetByIDForUpdate(spaceID, requestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.Validation("заявка не найдена")
	}
	return &approvalhandler.BalanceEffect{
		EmployeeID:  rec.EmployeeID,
		LeaveTypeID: rec.LeaveTypeID,
		Year:        rec.DateFrom.Year(),
		Amount:      rec.Days,
	}, nil
}

func (a adapter) SupportsRevision() bool {
	return false
}

func (a adapter) OnFinalApproval(tx *gorm.DB, spaceID, requestID string) error {
	return nil
}
