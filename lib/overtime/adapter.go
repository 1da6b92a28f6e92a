package overtimehandler

import (
	"gorm.io/gorm"

	approvalhandler "hr-platform-backend/lib/approval"
	overtimestore "hr-platform-backend/lib/overtime/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	overtimeapimodels "hr-platform-backend/models/api/overtime"
	dbmodels "hr-platform-backend/models/db"
)

func NewAdapter() approvalhandler.RequestAdapter {
	return adapter{
		store: overtimestore.NewInstance,
	}
}

type adapter struct {
	store func(tx *gorm.DB) overtimestore.Provider
}

func (a adapter) RequestType() models.ApprovalRequestType {
	return models.RequestTypeOvertime
}

func (a adapter) Get(tx *gorm.DB, spaceID, requestID string, forUpdate bool) (*approvalhandler.RequestInfo, error) {
	store := a.store(tx)
	var rec *dbmodels.OvertimeRequest
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
	data := overtimeapimodels.OvertimeRequestData{
		Date:     rec.Date,
		Hours:    rec.Hours,
		RateType: rec.RateType,
		Reason:   rec.Reason,
	}
	if err = data.Validate(); err != nil {
		return apperror.Wrap(apperror.KindValidation, err, "заявка на сверхурочную работу заполнена некорректно")
	}
	return nil
}

// сверхурочная работа не влияет на остаток отпуска
func (a adapter) BalanceEffect(tx *gorm.DB, spaceID, requestID string) (*approvalhandler.BalanceEffect, error) {
	return nil, nil
}

func (a adapter) SupportsRevision() bool {
	return false
}

func (a adapter) OnFinalApproval(tx *gorm.DB, spaceID, requestID string) error {
	return nil
}
