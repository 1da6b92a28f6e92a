package leavetypeprovider

import (
	"github.com/pkg/errors"

	"hr-platform-backend/db"
	store "hr-platform-backend/lib/dicts/leave-type/store"
	initchecker "hr-platform-backend/lib/utils/init-checker"
	dictapimodels "hr-platform-backend/models/api/dict"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(spaceID string, data dictapimodels.LeaveTypeData) (id string, err error)
	Update(spaceID, id string, data dictapimodels.LeaveTypeData) error
	Delete(spaceID, id string) error
	Get(spaceID, id string) (item dictapimodels.LeaveTypeView, err error)
	List(spaceID string) (list []dictapimodels.LeaveTypeView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: store.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store store.Provider
}

func (i impl) Create(spaceID string, data dictapimodels.LeaveTypeData) (id string, err error) {
	rec := dbmodels.LeaveType{
		Name:       data.Name,
		Paid:       data.Paid,
		AnnualDays: data.AnnualDays,
	}
	rec.SpaceID = spaceID
	return i.store.Create(rec)
}

func (i impl) Update(spaceID, id string, data dictapimodels.LeaveTypeData) error {
	updMap := map[string]interface{}{
		"name":        data.Name,
		"paid":        data.Paid,
		"annual_days": data.AnnualDays,
	}
	return i.store.Update(spaceID, id, updMap)
}

func (i impl) Delete(spaceID, id string) error {
	return i.store.Delete(spaceID, id)
}

func (i impl) Get(spaceID, id string) (item dictapimodels.LeaveTypeView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.LeaveTypeView{}, err
	}
	if rec == nil {
		return dictapimodels.LeaveTypeView{}, errors.New("вид отпуска не найден")
	}
	return dictapimodels.LeaveTypeConvert(*rec), nil
}

func (i impl) List(spaceID string) (list []dictapimodels.LeaveTypeView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.LeaveTypeView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.LeaveTypeConvert(rec))
	}
	return result, nil
}
