package balancehandler

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-platform-backend/db"
	balancestore "hr-platform-backend/lib/balance/store"
	leavetypestore "hr-platform-backend/lib/dicts/leave-type/store"
	xlsexport "hr-platform-backend/lib/export/xls"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/lib/utils/lock"
	balanceapimodels "hr-platform-backend/models/api/balance"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	ReserveTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error
	ConsumeTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error
	ReleaseTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error
	SetEarned(spaceID string, data balanceapimodels.SetEarnedData) error
	ListByEmployee(spaceID, employeeID string, year int) (list []balanceapimodels.BalanceView, err error)
	ListBySpace(spaceID string, year int) (list []balanceapimodels.BalanceView, err error)
	ExportXLS(spaceID string, year int) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		balanceStore:   balancestore.NewInstance,
		leaveTypeStore: leavetypestore.NewInstance,
		inTx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
		lockWait: 3 * time.Second,
	}
}

type impl struct {
	balanceStore   func(tx *gorm.DB) balancestore.Provider
	leaveTypeStore func(tx *gorm.DB) leavetypestore.Provider
	inTx           func(fn func(tx *gorm.DB) error) error
	lockWait       time.Duration
}

func balanceLockKey(spaceID, employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("balance:%s:%s:%s:%d", spaceID, employeeID, leaveTypeID, year)
}

// ReserveTx - резервирование дней под заявку. Строка остатка создаётся при первом
// резервировании с начислением по справочнику вида отпуска.
func (i impl) ReserveTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.Validation("количество дней должно быть больше нуля")
	}
	key := balanceLockKey(spaceID, employeeID, leaveTypeID, year)
	var opErr error
	locked, err := lock.WithDelay(context.Background(), key, i.lockWait, func() error {
		opErr = i.reserve(tx, spaceID, employeeID, leaveTypeID, year, amount)
		return nil
	})
	if err != nil {
		return err
	}
	if !locked {
		return apperror.Conflict("остаток занят другой операцией, повторите попытку")
	}
	return opErr
}

func (i impl) reserve(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error {
	store := i.balanceStore(tx)
	rec, err := store.GetForUpdate(spaceID, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}
	if rec == nil {
		rec, err = i.createBalance(tx, spaceID, employeeID, leaveTypeID, year)
		if err != nil {
			return err
		}
	}
	if rec.Available().LessThan(amount) {
		return apperror.InsufficientBalancef("недостаточно дней отпуска: доступно %s, запрошено %s",
			rec.Available().String(), amount.String())
	}
	rec.Pending = rec.Pending.Add(amount)
	return store.Save(rec)
}

func (i impl) createBalance(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int) (*dbmodels.LeaveBalance, error) {
	leaveType, err := i.leaveTypeStore(tx).GetByID(spaceID, leaveTypeID)
	if err != nil {
		return nil, err
	}
	if leaveType == nil {
		return nil, apperror.Validation("вид отпуска не найден")
	}
	rec := dbmodels.LeaveBalance{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        year,
		Earned:      leaveType.AnnualDays,
		Used:        decimal.Zero,
		Pending:     decimal.Zero,
	}
	rec.SpaceID = spaceID
	id, err := i.balanceStore(tx).Create(rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}

// ConsumeTx - перевод зарезервированных дней в использованные при финальном согласовании
func (i impl) ConsumeTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error {
	store := i.balanceStore(tx)
	rec, err := store.GetForUpdate(spaceID, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}
	if rec == nil || rec.Pending.LessThan(amount) {
		// резерв меньше списания - рассинхронизация остатка, не исправляем молча
		return apperror.InvariantViolationf("нарушение инварианта остатка: резерв меньше списания (заявка %s/%s/%d)",
			employeeID, leaveTypeID, year)
	}
	rec.Pending = rec.Pending.Sub(amount)
	rec.Used = rec.Used.Add(amount)
	return store.Save(rec)
}

// ReleaseTx - возврат резерва при отклонении, отмене или доработке
func (i impl) ReleaseTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error {
	store := i.balanceStore(tx)
	rec, err := store.GetForUpdate(spaceID, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}
	if rec == nil || rec.Pending.LessThan(amount) {
		return apperror.InvariantViolationf("нарушение инварианта остатка: резерв меньше возврата (заявка %s/%s/%d)",
			employeeID, leaveTypeID, year)
	}
	rec.Pending = rec.Pending.Sub(amount)
	return store.Save(rec)
}

// SetEarned - административное начисление остатка
func (i impl) SetEarned(spaceID string, data balanceapimodels.SetEarnedData) error {
	return i.inTx(func(tx *gorm.DB) error {
		store := i.balanceStore(tx)
		rec, err := store.GetForUpdate(spaceID, data.EmployeeID, data.LeaveTypeID, data.Year)
		if err != nil {
			return err
		}
		if rec == nil {
			rec := dbmodels.LeaveBalance{
				EmployeeID:  data.EmployeeID,
				LeaveTypeID: data.LeaveTypeID,
				Year:        data.Year,
				Earned:      data.Earned,
				Used:        decimal.Zero,
				Pending:     decimal.Zero,
			}
			rec.SpaceID = spaceID
			_, err = store.Create(rec)
			return err
		}
		if data.Earned.LessThan(rec.Used.Add(rec.Pending)) {
			return apperror.Validation("начисление меньше уже использованных и зарезервированных дней")
		}
		rec.Earned = data.Earned
		return store.Save(rec)
	})
}

func (i impl) ListByEmployee(spaceID, employeeID string, year int) (list []balanceapimodels.BalanceView, err error) {
	recList, err := i.balanceStore(db.DB).ListByEmployee(spaceID, employeeID, year)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("employee_id", employeeID).
			WithError(err).
			Error("ошибка получения остатков отпуска")
		return nil, err
	}
	for _, rec := range recList {
		list = append(list, balanceapimodels.BalanceConvert(rec))
	}
	return list, nil
}

func (i impl) ExportXLS(spaceID string, year int) (*bytes.Buffer, error) {
	recList, err := i.balanceStore(db.DB).ListBySpace(spaceID, year)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения остатков для выгрузки")
		return nil, err
	}
	return xlsexport.Instance.ExportBalanceReport(recList)
}

func (i impl) ListBySpace(spaceID string, year int) (list []balanceapimodels.BalanceView, err error) {
	recList, err := i.balanceStore(db.DB).ListBySpace(spaceID, year)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithError(err).
			Error("ошибка получения остатков отпуска")
		return nil, err
	}
	for _, rec := range recList {
		list = append(list, balanceapimodels.BalanceConvert(rec))
	}
	return list, nil
}
