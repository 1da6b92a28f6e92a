package balancehandler

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	balancestore "hr-platform-backend/lib/balance/store"
	leavetypestore "hr-platform-backend/lib/dicts/leave-type/store"
	"hr-platform-backend/lib/utils/apperror"
	balanceapimodels "hr-platform-backend/models/api/balance"
	dbmodels "hr-platform-backend/models/db"
)

type fakeBalanceStore struct {
	rec     *dbmodels.LeaveBalance
	created []dbmodels.LeaveBalance
	saved   *dbmodels.LeaveBalance
}

func (f *fakeBalanceStore) Create(rec dbmodels.LeaveBalance) (string, error) {
	f.created = append(f.created, rec)
	return "balance-1", nil
}

func (f *fakeBalanceStore) Save(rec *dbmodels.LeaveBalance) error {
	f.saved = rec
	return nil
}

func (f *fakeBalanceStore) Get(spaceID, employeeID, leaveTypeID string, year int) (*dbmodels.LeaveBalance, error) {
	return f.rec, nil
}

func (f *fakeBalanceStore) GetForUpdate(spaceID, employeeID, leaveTypeID string, year int) (*dbmodels.LeaveBalance, error) {
	return f.rec, nil
}

func (f *fakeBalanceStore) ListByEmployee(spaceID, employeeID string, year int) ([]dbmodels.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeBalanceStore) ListBySpace(spaceID string, year int) ([]dbmodels.LeaveBalance, error) {
	return nil, nil
}

type fakeLeaveTypeStore struct {
	rec *dbmodels.LeaveType
}

func (f *fakeLeaveTypeStore) Create(rec dbmodels.LeaveType) (string, error) { return "", nil }
func (f *fakeLeaveTypeStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeLeaveTypeStore) Delete(spaceID, id string) error { return nil }
func (f *fakeLeaveTypeStore) GetByID(spaceID, id string) (*dbmodels.LeaveType, error) {
	return f.rec, nil
}
func (f *fakeLeaveTypeStore) List(spaceID string) ([]dbmodels.LeaveType, error) { return nil, nil }

func newBalanceHandler(store *fakeBalanceStore, leaveTypes *fakeLeaveTypeStore) impl {
	return impl{
		balanceStore:   func(tx *gorm.DB) balancestore.Provider { return store },
		leaveTypeStore: func(tx *gorm.DB) leavetypestore.Provider { return leaveTypes },
		inTx:           func(fn func(tx *gorm.DB) error) error { return fn(nil) },
		lockWait:       time.Second,
	}
}

func balanceRec(earned, used, pending int64) *dbmodels.LeaveBalance {
	rec := dbmodels.LeaveBalance{
		EmployeeID:  "user-1",
		LeaveTypeID: "lt-1",
		Year:        2026,
		Earned:      decimal.NewFromInt(earned),
		Used:        decimal.NewFromInt(used),
		Pending:     decimal.NewFromInt(pending),
	}
	rec.ID = "balance-1"
	rec.SpaceID = "space-1"
	return &rec
}

func TestReserve(t *testing.T) {
	t.Run(`резервирование увеличивает зарезервированные дни`, func(t *testing.T) {
		store := &fakeBalanceStore{rec: balanceRec(28, 3, 0)}
		h := newBalanceHandler(store, &fakeLeaveTypeStore{})
		err := h.ReserveTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.NewFromInt(14))
		require.Nil(t, err)
		require.NotNil(t, store.saved)
		require.True(t, store.saved.Pending.Equal(decimal.NewFromInt(14)))
		require.True(t, store.saved.Used.Equal(decimal.NewFromInt(3)))
	})
	t.Run(`резерв сверх доступного остатка отклоняется`, func(t *testing.T) {
		store := &fakeBalanceStore{rec: balanceRec(28, 10, 15)}
		h := newBalanceHandler(store, &fakeLeaveTypeStore{})
		err := h.ReserveTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.NewFromInt(4))
		require.True(t, apperror.IsKind(err, apperror.KindInsufficientBalance))
		require.Nil(t, store.saved)
	})
	t.Run(`строка остатка создаётся при первом резервировании с начислением по справочнику`, func(t *testing.T) {
		store := &fakeBalanceStore{}
		leaveTypes := &fakeLeaveTypeStore{rec: &dbmodels.LeaveType{AnnualDays: decimal.NewFromInt(28)}}
		h := newBalanceHandler(store, leaveTypes)
		err := h.ReserveTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.NewFromInt(7))
		require.Nil(t, err)
		require.Len(t, store.created, 1)
		require.True(t, store.created[0].Earned.Equal(decimal.NewFromInt(28)))
		require.True(t, store.saved.Pending.Equal(decimal.NewFromInt(7)))
	})
	t.Run(`неизвестный вид отпуска`, func(t *testing.T) {
		h := newBalanceHandler(&fakeBalanceStore{}, &fakeLeaveTypeStore{})
		err := h.ReserveTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.NewFromInt(7))
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
	t.Run(`количество дней должно быть положительным`, func(t *testing.T) {
		h := newBalanceHandler(&fakeBalanceStore{}, &fakeLeaveTypeStore{})
		err := h.ReserveTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.Zero)
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestConsumeRelease(t *testing.T) {
	t.Run(`списание переводит резерв в использованные`, func(t *testing.T) {
		store := &fakeBalanceStore{rec: balanceRec(28, 3, 14)}
		h := newBalanceHandler(store, &fakeLeaveTypeStore{})
		err := h.ConsumeTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.NewFromInt(14))
		require.Nil(t, err)
		require.True(t, store.saved.Pending.Equal(decimal.Zero))
		require.True(t, store.saved.Used.Equal(decimal.NewFromInt(17)))
	})
	t.Run(`списание больше резерва - нарушение инварианта`, func(t *testing.T) {
		store := &fakeBalanceStore{rec: balanceRec(28, 3, 5)}
		h := newBalanceHandler(store, &fakeLeaveTypeStore{})
		err := h.ConsumeTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.NewFromInt(14))
		require.True(t, apperror.IsKind(err, apperror.KindInvariantViolation))
	})
	t.Run(`возврат уменьшает резерв без изменения использованных`, func(t *testing.T) {
		store := &fakeBalanceStore{rec: balanceRec(28, 3, 14)}
		h := newBalanceHandler(store, &fakeLeaveTypeStore{})
		err := h.ReleaseTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.NewFromInt(14))
		require.Nil(t, err)
		require.True(t, store.saved.Pending.Equal(decimal.Zero))
		require.True(t, store.saved.Used.Equal(decimal.NewFromInt(3)))
	})
	t.Run(`возврат без строки остатка - нарушение инварианта`, func(t *testing.T) {
		h := newBalanceHandler(&fakeBalanceStore{}, &fakeLeaveTypeStore{})
		err := h.ReleaseTx(nil, "space-1", "user-1", "lt-1", 2026, decimal.NewFromInt(1))
		require.True(t, apperror.IsKind(err, apperror.KindInvariantViolation))
	})
}

func TestSetEarned(t *testing.T) {
	data := balanceapimodels.SetEarnedData{
		EmployeeID:  "user-1",
		LeaveTypeID: "lt-1",
		Year:        2026,
		Earned:      decimal.NewFromInt(31),
	}
	t.Run(`начисление обновляет существующую строку остатка`, func(t *testing.T) {
		store := &fakeBalanceStore{rec: balanceRec(28, 3, 5)}
		h := newBalanceHandler(store, &fakeLeaveTypeStore{})
		err := h.SetEarned("space-1", data)
		require.Nil(t, err)
		require.True(t, store.saved.Earned.Equal(decimal.NewFromInt(31)))
	})
	t.Run(`отсутствующая строка остатка создаётся`, func(t *testing.T) {
		store := &fakeBalanceStore{}
		h := newBalanceHandler(store, &fakeLeaveTypeStore{})
		err := h.SetEarned("space-1", data)
		require.Nil(t, err)
		require.Len(t, store.created, 1)
		require.True(t, store.created[0].Earned.Equal(decimal.NewFromInt(31)))
	})
	t.Run(`начисление меньше использованных и зарезервированных отклоняется`, func(t *testing.T) {
		store := &fakeBalanceStore{rec: balanceRec(28, 20, 14)}
		h := newBalanceHandler(store, &fakeLeaveTypeStore{})
		err := h.SetEarned("space-1", data)
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
		require.Nil(t, store.saved)
	})
}
