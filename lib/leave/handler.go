package leavehandler

import (
	"bytes"

	log "github.com/sirupsen/logrus"

	"hr-platform-backend/db"
	approvalstore "hr-platform-backend/lib/approval/store"
	xlsexport "hr-platform-backend/lib/export/xls"
	leavestore "hr-platform-backend/lib/leave/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	leaveapimodels "hr-platform-backend/models/api/leave"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(spaceID, employeeID string, data leaveapimodels.LeaveApplicationData) (id string, err error)
	Update(spaceID, userID, id string, data leaveapimodels.LeaveApplicationData) error
	Delete(spaceID, userID, id string) error
	GetByID(spaceID, id string) (view leaveapimodels.LeaveApplicationView, err error)
	List(spaceID, employeeID string, filter leaveapimodels.LeaveFilter) (list []leaveapimodels.LeaveApplicationView, rowCount int64, err error)
	ExportXLS(spaceID string, statuses []models.RequestStatus) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         leavestore.NewInstance(db.DB),
		approvalStore: approvalstore.NewInstance(db.DB),
	}
}

type impl struct {
	store         leavestore.Provider
	approvalStore approvalstore.Provider
}

func (i impl) Create(spaceID, employeeID string, data leaveapimodels.LeaveApplicationData) (id string, err error) {
	rec := dbmodels.LeaveApplication{
		EmployeeID:  employeeID,
		LeaveTypeID: data.LeaveTypeID,
		DateFrom:    data.DateFrom,
		DateTo:      data.DateTo,
		Days:        data.Days,
		Reason:      data.Reason,
	}
	rec.SpaceID = spaceID
	rec.Status = models.RequestStatusDraft
	id, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("employee_id", employeeID).
			WithError(err).
			Error("ошибка создания заявки на отпуск")
		return "", err
	}
	return id, nil
}

func (i impl) Update(spaceID, userID, id string, data leaveapimodels.LeaveApplicationData) error {
	rec, err := i.getEditable(spaceID, userID, id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"leave_type_id": data.LeaveTypeID,
		"date_from":     data.DateFrom,
		"date_to":       data.DateTo,
		"days":          data.Days,
		"reason":        data.Reason,
	}
	return i.store.Update(spaceID, rec.ID, updMap)
}

func (i impl) Delete(spaceID, userID, id string) error {
	rec, err := i.getEditable(spaceID, userID, id)
	if err != nil {
		return err
	}
	if rec.Status != models.RequestStatusDraft {
		return apperror.Validation("удалить можно только черновик заявки")
	}
	return i.store.Delete(spaceID, id)
}

func (i impl) GetByID(spaceID, id string) (view leaveapimodels.LeaveApplicationView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("leave_id", id).WithError(err).Error("ошибка получения заявки на отпуск")
		return view, err
	}
	if rec == nil {
		return view, apperror.Validation("заявка не найдена")
	}
	approvals, err := i.approvalStore.ListChain(spaceID, models.RequestTypeLeave, rec.ID, rec.ChainSeq)
	if err != nil {
		return view, err
	}
	return leaveapimodels.LeaveApplicationConvert(*rec, approvals), nil
}

func (i impl) List(spaceID, employeeID string, filter leaveapimodels.LeaveFilter) (list []leaveapimodels.LeaveApplicationView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(spaceID, employeeID, filter)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка заявок на отпуск")
		return nil, 0, err
	}
	list = make([]leaveapimodels.LeaveApplicationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, leaveapimodels.LeaveApplicationConvert(rec, nil))
	}
	return list, rowCount, nil
}

func (i impl) ExportXLS(spaceID string, statuses []models.RequestStatus) (*bytes.Buffer, error) {
	recList, err := i.store.ListForExport(spaceID, statuses)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения заявок для выгрузки")
		return nil, err
	}
	return xlsexport.Instance.ExportLeaveRegistry(recList)
}

func (i impl) getEditable(spaceID, userID, id string) (*dbmodels.LeaveApplication, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.Validation("заявка не найдена")
	}
	if rec.EmployeeID != userID {
		return nil, apperror.Authorization("изменять заявку может только её автор")
	}
	if !rec.Status.AllowEdit() {
		return nil, apperror.Validationf("заявка в статусе «%v» не может быть изменена", rec.Status.ToHuman())
	}
	return rec, nil
}
