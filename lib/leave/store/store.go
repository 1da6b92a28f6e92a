package leavestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hr-platform-backend/models"
	leaveapimodels "hr-platform-backend/models/api/leave"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.LeaveApplication) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	GetByID(spaceID, id string) (rec *dbmodels.LeaveApplication, err error)
	GetByIDForUpdate(spaceID, id string) (rec *dbmodels.LeaveApplication, err error)
	List(spaceID, employeeID string, filter leaveapimodels.LeaveFilter) (list []dbmodels.LeaveApplication, rowCount int64, err error)
	ListForExport(spaceID string, statuses []models.RequestStatus) (list []dbmodels.LeaveApplication, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.LeaveApplication) (id string, err error) {
	err = i.db.
		Omit("Employee", "LeaveType").
		Create(&rec).
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
		Model(&dbmodels.LeaveApplication{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.LeaveApplication{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.LeaveApplication, error) {
	rec := dbmodels.LeaveApplication{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Employee").
		Preload("LeaveType").
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

// GetByIDForUpdate - чтение с блокировкой строки, ассоциации не загружаются
func (i impl) GetByIDForUpdate(spaceID, id string) (*dbmodels.LeaveApplication, error) {
	rec := dbmodels.LeaveApplication{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
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

func (i impl) List(spaceID, employeeID string, filter leaveapimodels.LeaveFilter) (list []dbmodels.LeaveApplication, rowCount int64, err error) {
	list = []dbmodels.LeaveApplication{}
	tx := i.db.Model(dbmodels.LeaveApplication{}).
		Where("space_id = ?", spaceID)
	if employeeID != "" {
		tx = tx.Where("employee_id = ?", employeeID)
	}
	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN (?)", filter.Statuses)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Limit(limit).
		Offset((page - 1) * limit).
		Order("created_at DESC").
		Preload("Employee").
		Preload("LeaveType").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

// ListForExport - без пагинации, для выгрузки реестра в xlsx
func (i impl) ListForExport(spaceID string, statuses []models.RequestStatus) (list []dbmodels.LeaveApplication, err error) {
	list = []dbmodels.LeaveApplication{}
	tx := i.db.Model(dbmodels.LeaveApplication{}).
		Where("space_id = ?", spaceID)
	if len(statuses) > 0 {
		tx = tx.Where("status IN (?)", statuses)
	}
	err = tx.
		Order("created_at DESC").
		Preload("Employee").
		Preload("LeaveType").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
