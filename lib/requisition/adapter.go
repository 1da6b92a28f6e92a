package requisitionhandler

import (
	"gorm.io/gorm"

	approvalhandler "hr-platform-backend/lib/approval"
	requisitionstore "hr-platform-backend/lib/requisition/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	requisitionapimodels "hr-platform-backend/models/api/requisition"
	dbmodels "hr-platform-backend/models/db"
)

func NewAdapter() approvalhandler.RequestAdapter {
	return adapter{
		store: requisitionstore.NewInstance,
	}
}

type adapter struct {
	store func(tx *gorm.DB) requisitionstore.Provider
}

func (a adapter) RequestType() models.ApprovalRequestType {
	return models.RequestTypeRequisition
}

func (a adapter) Get(tx *gorm.DB, spaceID, requestID string, forUpdate bool) (*approvalhandler.RequestInfo, error) {
	store := a.store(tx)
	var rec *dbmodels.JobRequisition
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
	data := requisitionapimodels.JobRequisitionData{
		PositionName:   rec.PositionName,
		DepartmentName: rec.DepartmentName,
		Headcount:      rec.Headcount,
		Urgency:        rec.Urgency,
		Requirements:   rec.Requirements,
		ShortInfo:      rec.ShortInfo,
	}
	if err = data.Validate(); err != nil {
		return apperror.Wrap(apperror.KindValidation, err, "заявка на подбор заполнена некорректно")
	}
	return nil
}

func (a adapter) BalanceEffect(tx *gorm.DB, spaceID, requestID string) (*approvalhandler.BalanceEffect, error) {
	return nil, nil
}

func (a adapter) SupportsRevision() bool {
	return false
}

func (a adapter) OnFinalApproval(tx *gorm.DB, spaceID, requestID string) error {
	return nil
}
