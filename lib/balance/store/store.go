package balancestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.LeaveBalance) (id string, err error)
	Save(rec *dbmodels.LeaveBalance) error
	Get(spaceID, employeeID, leaveTypeID string, year int) (rec *dbmodels.LeaveBalance, err error)
	GetForUpdate(spaceID, employeeID, leaveTypeID string, year int) (rec *dbmodels.LeaveBalance, err error)
	ListByEmployee(spaceID, employeeID string, year int) (list []dbmodels.LeaveBalance, err error)
	ListBySpace(spaceID string, year int) (list []dbmodels.LeaveBalance, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.LeaveBalance) (id string, err error) {
	err = i.db.
		Omit("Employee", "LeaveType").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(rec *dbmodels.LeaveBalance) error {
	return i.db.
		Omit("Employee", "LeaveType").
		Save(rec).
		Error
}

func (i impl) Get(spaceID, employeeID, leaveTypeID string, year int) (rec *dbmodels.LeaveBalance, err error) {
	err = i.db.Model(dbmodels.LeaveBalance{}).
		Where("space_id = ?", spaceID).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		Preload("LeaveType").
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

// GetForUpdate - чтение с блокировкой строки до конца транзакции
func (i impl) GetForUpdate(spaceID, employeeID, leaveTypeID string, year int) (rec *dbmodels.LeaveBalance, err error) {
	err = i.db.Model(dbmodels.LeaveBalance{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("space_id = ?", spaceID).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
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

func (i impl) ListByEmployee(spaceID, employeeID string, year int) (list []dbmodels.LeaveBalance, err error) {
	list = []dbmodels.LeaveBalance{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Where("employee_id = ?", employeeID).
		Preload("Employee").
		Preload("LeaveType")
	if year > 0 {
		tx = tx.Where("year = ?", year)
	}
	err = tx.Order("year DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListBySpace(spaceID string, year int) (list []dbmodels.LeaveBalance, err error) {
	list = []dbmodels.LeaveBalance{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Preload("Employee").
		Preload("LeaveType")
	if year > 0 {
		tx = tx.Where("year = ?", year)
	}
	err = tx.Order("year DESC, employee_id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
