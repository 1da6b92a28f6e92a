package spacestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Space) (string, error)
	GetByID(spaceID string) (rec *dbmodels.Space, err error)
	Update(spaceID string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Space) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID string) (rec *dbmodels.Space, err error) {
	err = i.db.Model(dbmodels.Space{}).
		Where("id = ?", spaceID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) Update(spaceID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Space{}).
		Where("id = ?", spaceID).
		Updates(updMap).
		Error
}
