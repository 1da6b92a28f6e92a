package requisitionhandler

import (
	log "github.com/sirupsen/logrus"

	"hr-platform-backend/db"
	approvalstore "hr-platform-backend/lib/approval/store"
	requisitionstore "hr-platform-backend/lib/requisition/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	requisitionapimodels "hr-platform-backend/models/api/requisition"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(spaceID, authorID string, data requisitionapimodels.JobRequisitionData) (id string, err error)
	Update(spaceID, userID, id string, data requisitionapimodels.JobRequisitionData) error
	Delete(spaceID, userID, id string) error
	GetByID(spaceID, id string) (view requisitionapimodels.JobRequisitionView, err error)
	List(spaceID, authorID string, filter requisitionapimodels.RequisitionFilter) (list []requisitionapimodels.JobRequisitionView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         requisitionstore.NewInstance(db.DB),
		approvalStore: approvalstore.NewInstance(db.DB),
	}
}

type impl struct {
	store         requisitionstore.Provider
	approvalStore approvalstore.Provider
}

func (i impl) Create(spaceID, authorID string, data requisitionapimodels.JobRequisitionData) (id string, err error) {
	rec := dbmodels.JobRequisition{
		AuthorID:       authorID,
		PositionName:   data.PositionName,
		DepartmentName: data.DepartmentName,
		Headcount:      data.Headcount,
		Urgency:        data.Urgency,
		Requirements:   data.Requirements,
		ShortInfo:      data.ShortInfo,
	}
	rec.SpaceID = spaceID
	rec.Status = models.RequestStatusDraft
	id, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("author_id", authorID).
			WithError(err).
			Error("ошибка создания заявки на подбор")
		return "", err
	}
	return id, nil
}

func (i impl) Update(spaceID, userID, id string, data requisitionapimodels.JobRequisitionData) error {
	rec, err := i.getEditable(spaceID, userID, id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"position_name":   data.PositionName,
		"department_name": data.DepartmentName,
		"headcount":       data.Headcount,
		"urgency":         data.Urgency,
		"requirements":    data.Requirements,
		"short_info":      data.ShortInfo,
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

func (i impl) GetByID(spaceID, id string) (view requisitionapimodels.JobRequisitionView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("requisition_id", id).WithError(err).Error("ошибка получения заявки на подбор")
		return view, err
	}
	if rec == nil {
		return view, apperror.Validation("заявка не найдена")
	}
	approvals, err := i.approvalStore.ListChain(spaceID, models.RequestTypeRequisition, rec.ID, rec.ChainSeq)
	if err != nil {
		return view, err
	}
	return requisitionapimodels.JobRequisitionConvert(*rec, approvals), nil
}

func (i impl) List(spaceID, authorID string, filter requisitionapimodels.RequisitionFilter) (list []requisitionapimodels.JobRequisitionView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(spaceID, authorID, filter)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка заявок на подбор")
		return nil, 0, err
	}
	list = make([]requisitionapimodels.JobRequisitionView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, requisitionapimodels.JobRequisitionConvert(rec, nil))
	}
	return list, rowCount, nil
}

func (i impl) getEditable(spaceID, userID, id string) (*dbmodels.JobRequisition, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.Validation("заявка не найдена")
	}
	if rec.AuthorID != userID {
		return nil, apperror.Authorization("изменять заявку может только её автор")
	}
	if !rec.Status.AllowEdit() {
		return nil, apperror.Validationf("заявка в статусе «%v» не может быть изменена", rec.Status.ToHuman())
	}
	return rec, nil
}
