package leavetypestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.LeaveType) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	GetByID(spaceID, id string) (rec *dbmodels.LeaveType, err error)
	List(spaceID string) (list []dbmodels.LeaveType, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.LeaveType) (id string, err error) {
	if err = rec.Validate(); err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.LeaveType{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.LeaveType{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.LeaveType, error) {
	rec := dbmodels.LeaveType{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(spaceID string) (list []dbmodels.LeaveType, err error) {
	list = []dbmodels.LeaveType{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
