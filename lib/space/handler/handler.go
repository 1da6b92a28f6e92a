package spacehandler

import (
	log "github.com/sirupsen/logrus"
	"github.com/pkg/errors"

	"hr-platform-backend/db"
	spacestore "hr-platform-backend/lib/space/store"
	spaceapimodels "hr-platform-backend/models/api/space"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(request spaceapimodels.CreateSpace) (id string, err error)
	GetByID(spaceID string) (view spaceapimodels.SpaceView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceStore: spacestore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceStore spacestore.Provider
}

func (i impl) Create(request spaceapimodels.CreateSpace) (id string, err error) {
	rec := dbmodels.Space{
		OrganizationName: request.Name,
		IsActive:         true,
	}
	id, err = i.spaceStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка создания рабочего пространства")
		return "", err
	}
	return id, nil
}

func (i impl) GetByID(spaceID string) (view spaceapimodels.SpaceView, err error) {
	rec, err := i.spaceStore.GetByID(spaceID)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения рабочего пространства")
		return view, err
	}
	if rec == nil {
		return view, errors.New("рабочее пространство не найдено")
	}
	return spaceapimodels.SpaceView{
		ID:   rec.ID,
		Name: rec.OrganizationName,
	}, nil
}
