package spaceusersstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hr-platform-backend/models"
	spaceapimodels "hr-platform-backend/models/api/space"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.SpaceUser) (string, error)
	Update(spaceID, userID string, updMap map[string]interface{}) error
	Delete(spaceID, userID string) error
	GetList(spaceID string, filter spaceapimodels.UserFilter) (userList []dbmodels.SpaceUser, err error)
	ExistByEmail(email string) (bool, error)
	FindByEmail(email string) (rec *dbmodels.SpaceUser, err error)
	FindByID(userID string) (rec *dbmodels.SpaceUser, err error)
	GetByID(spaceID, userID string) (rec *dbmodels.SpaceUser, err error)
	GetSupervisor(spaceID, userID string) (rec *dbmodels.SpaceUser, err error)
	FindHRManager(spaceID string) (rec *dbmodels.SpaceUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetList(spaceID string, filter spaceapimodels.UserFilter) (userList []dbmodels.SpaceUser, err error) {
	tx := i.db.Model(dbmodels.SpaceUser{}).
		Where("space_id = ?", spaceID)
	if filter.Search != "" {
		tx = tx.Where("LOWER(first_name || ' ' || last_name) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	i.setPage(tx, filter.Page, filter.Limit)
	err = tx.
		Order("last_name, first_name").
		Find(&userList).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userList, nil
}

func (i impl) Delete(spaceID, userID string) error {
	return i.db.
		Where("space_id = ?", spaceID).
		Where("id = ?", userID).
		Delete(&dbmodels.SpaceUser{}).
		Error
}

func (i impl) Update(spaceID, userID string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.SpaceUser{}).
		Where("space_id = ?", spaceID).
		Where("id = ?", userID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(spaceID, userID string) (rec *dbmodels.SpaceUser, err error) {
	err = i.db.Model(dbmodels.SpaceUser{}).
		Where("space_id = ?", spaceID).
		Where("id = ?", userID).
		Preload(clause.Associations).
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

// GetSupervisor - непосредственный руководитель сотрудника, nil если не назначен
func (i impl) GetSupervisor(spaceID, userID string) (rec *dbmodels.SpaceUser, err error) {
	user, err := i.GetByID(spaceID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.HeadID == nil {
		return nil, nil
	}
	return i.GetByID(spaceID, *user.HeadID)
}

// FindHRManager - действующий HR менеджер пространства
func (i impl) FindHRManager(spaceID string) (rec *dbmodels.SpaceUser, err error) {
	err = i.db.Model(dbmodels.SpaceUser{}).
		Where("space_id = ?", spaceID).
		Where("is_hr_manager = ?", true).
		Where("is_active = ?", true).
		Where("status <> ?", models.SpaceDismissedStatus).
		Order("created_at").
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

// FindByID - поиск без привязки к пространству, используется при обновлении токена
func (i impl) FindByID(userID string) (rec *dbmodels.SpaceUser, err error) {
	err = i.db.Model(dbmodels.SpaceUser{}).
		Where("id = ?", userID).
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

func (i impl) FindByEmail(email string) (rec *dbmodels.SpaceUser, err error) {
	err = i.db.Model(dbmodels.SpaceUser{}).
		Where("email = ?", email).
		Preload(clause.Associations).
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

func (i impl) Create(rec dbmodels.SpaceUser) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ExistByEmail(email string) (bool, error) {
	err := i.db.
		Where("email = ?", email).
		First(&dbmodels.SpaceUser{}).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (i impl) setPage(tx *gorm.DB, pageValue, limitValue int) {
	page, limit := GetPage(pageValue, limitValue)
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}

func GetPage(pageValue, limitValue int) (page, limit int) {
	page = 1
	limit = 10
	if pageValue > 0 {
		page = pageValue
	}
	if limitValue > 0 {
		limit = limitValue
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
