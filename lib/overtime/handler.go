package overtimehandler

import (
	log "github.com/sirupsen/logrus"

	"hr-platform-backend/db"
	approvalstore "hr-platform-backend/lib/approval/store"
	overtimestore "hr-platform-backend/lib/overtime/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	overtimeapimodels "hr-platform-backend/models/api/overtime"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(spaceID, employeeID string, data overtimeapimodels.OvertimeRequestData) (id string, err error)
	Update(spaceID, userID, id string, data overtimeapimodels.OvertimeRequestData) error
	Delete(spaceID, userID, id string) error
	GetByID(spaceID, id string) (view overtimeapimodels.OvertimeRequestView, err error)
	List(spaceID, employeeID string, filter overtimeapimodels.OvertimeFilter) (list []overtimeapimodels.OvertimeRequestView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         overtimestore.NewInstance(db.DB),
		approvalStore: approvalstore.NewInstance(db.DB),
	}
}

type impl struct {
	store         overtimestore.Provider
	approvalStore approvalstore.Provider
}

func (i impl) Create(spaceID, employeeID string, data overtimeapimodels.OvertimeRequestData) (id string, err error) {
	rec := dbmodels.OvertimeRequest{
		EmployeeID: employeeID,
		Date:       data.Date,
		Hours:      data.Hours,
		RateType:   data.RateType,
		Reason:     data.Reason,
	}
	rec.SpaceID = spaceID
	rec.Status = models.RequestStatusDraft
	id, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("employee_id", employeeID).
			WithError(err).
			Error("ошибка создания заявки на сверхурочную работу")
		return "", err
	}
	return id, nil
}

func (i impl) Update(spaceID, userID, id string, data overtimeapimodels.OvertimeRequestData) error {
	rec, err := i.getEditable(spaceID, userID, id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"date":      data.Date,
		"hours":     data.Hours,
		"rate_type": data.RateType,
		"reason":    data.Reason,
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

func (i impl) GetByID(spaceID, id string) (view overtimeapimodels.OvertimeRequestView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("overtime_id", id).WithError(err).Error("ошибка получения заявки на сверхурочную работу")
		return view, err
	}
	if rec == nil {
		return view, apperror.Validation("заявка не найдена")
	}
	approvals, err := i.approvalStore.ListChain(spaceID, models.RequestTypeOvertime, rec.ID, rec.ChainSeq)
	if err != nil {
		return view, err
	}
	return overtimeapimodels.OvertimeRequestConvert(*rec, approvals), nil
}

func (i impl) List(spaceID, employeeID string, filter overtimeapimodels.OvertimeFilter) (list []overtimeapimodels.OvertimeRequestView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(spaceID, employeeID, filter)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка заявок на сверхурочную работу")
		return nil, 0, err
	}
	list = make([]overtimeapimodels.OvertimeRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, overtimeapimodels.OvertimeRequestConvert(rec, nil))
	}
	return list, rowCount, nil
}

func (i impl) getEditable(spaceID, userID, id string) (*dbmodels.OvertimeRequest, error) {
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
