package approvalhandler

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	approvalchain "hr-platform-backend/lib/approval/chain"
	approvalhistorystore "hr-platform-backend/lib/approval/history-store"
	approvalstore "hr-platform-backend/lib/approval/store"
	balancehandler "hr-platform-backend/lib/balance"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	balanceapimodels "hr-platform-backend/models/api/balance"
	dbmodels "hr-platform-backend/models/db"
)

type fakeAdapter struct {
	requestType models.ApprovalRequestType
	info        *RequestInfo
	effect      *BalanceEffect
	revision    bool
	updates     []map[string]interface{}
	finalized   bool
}

func (f *fakeAdapter) RequestType() models.ApprovalRequestType { return f.requestType }
func (f *fakeAdapter) Get(tx *gorm.DB, spaceID, requestID string, forUpdate bool) (*RequestInfo, error) {
	return f.info, nil
}
func (f *fakeAdapter) UpdateFields(tx *gorm.DB, spaceID, requestID string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}
func (f *fakeAdapter) ValidateForSubmit(tx *gorm.DB, spaceID, requestID string) error { return nil }
func (f *fakeAdapter) BalanceEffect(tx *gorm.DB, spaceID, requestID string) (*BalanceEffect, error) {
	return f.effect, nil
}
func (f *fakeAdapter) SupportsRevision() bool { return f.revision }
func (f *fakeAdapter) OnFinalApproval(tx *gorm.DB, spaceID, requestID string) error {
	f.finalized = true
	return nil
}

type fakeApprovalStore struct {
	created []dbmodels.Approval
	updates map[string]map[string]interface{}
	byLevel map[int]*dbmodels.Approval
}

func (f *fakeApprovalStore) CreateBatch(recs []dbmodels.Approval) error {
	f.created = append(f.created, recs...)
	return nil
}

func (f *fakeApprovalStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	if f.updates == nil {
		f.updates = map[string]map[string]interface{}{}
	}
	f.updates[id] = updMap
	return nil
}

func (f *fakeApprovalStore) GetCurrent(spaceID string, requestType models.ApprovalRequestType, requestID string, chainSeq, level int) (*dbmodels.Approval, error) {
	return f.byLevel[level], nil
}

func (f *fakeApprovalStore) ListChain(spaceID string, requestType models.ApprovalRequestType, requestID string, chainSeq int) ([]dbmodels.Approval, error) {
	return f.created, nil
}

func (f *fakeApprovalStore) ListPendingByApprover(spaceID, approverID string) ([]dbmodels.Approval, error) {
	return nil, nil
}

type fakeHistoryStore struct {
	recs []dbmodels.ApprovalHistory
}

func (f *fakeHistoryStore) Create(rec dbmodels.ApprovalHistory) (string, error) {
	f.recs = append(f.recs, rec)
	return "history-1", nil
}

func (f *fakeHistoryStore) List(spaceID string, requestType models.ApprovalRequestType, requestID string) ([]dbmodels.ApprovalHistory, error) {
	return f.recs, nil
}

type balanceCall struct {
	op     string
	amount decimal.Decimal
}

type fakeBalance struct {
	calls      []balanceCall
	reserveErr error
}

func (f *fakeBalance) ReserveTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.calls = append(f.calls, balanceCall{op: "reserve", amount: amount})
	return nil
}

func (f *fakeBalance) ConsumeTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error {
	f.calls = append(f.calls, balanceCall{op: "consume", amount: amount})
	return nil
}

func (f *fakeBalance) ReleaseTx(tx *gorm.DB, spaceID, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error {
	f.calls = append(f.calls, balanceCall{op: "release", amount: amount})
	return nil
}

func (f *fakeBalance) SetEarned(spaceID string, data balanceapimodels.SetEarnedData) error { return nil }
func (f *fakeBalance) ListByEmployee(spaceID, employeeID string, year int) ([]balanceapimodels.BalanceView, error) {
	return nil, nil
}
func (f *fakeBalance) ListBySpace(spaceID string, year int) ([]balanceapimodels.BalanceView, error) {
	return nil, nil
}
func (f *fakeBalance) ExportXLS(spaceID string, year int) (*bytes.Buffer, error) { return nil, nil }

type fakeResolver struct {
	chain []approvalchain.ChainLink
}

func (f *fakeResolver) Resolve(tx *gorm.DB, spaceID, requesterID string, requestType models.ApprovalRequestType) ([]approvalchain.ChainLink, error) {
	return f.chain, nil
}

type notification struct {
	userID string
	dedup  string
}

type engineEnv struct {
	engine   impl
	adapter  *fakeAdapter
	store    *fakeApprovalStore
	history  *fakeHistoryStore
	balance  *fakeBalance
	notified []notification
}

func newEngineEnv(adapter *fakeAdapter, chain []approvalchain.ChainLink) *engineEnv {
	env := &engineEnv{
		adapter: adapter,
		store:   &fakeApprovalStore{byLevel: map[int]*dbmodels.Approval{}},
		history: &fakeHistoryStore{},
		balance: &fakeBalance{},
	}
	env.engine = impl{
		adapters:      map[models.ApprovalRequestType]RequestAdapter{adapter.requestType: adapter},
		approvalStore: func(tx *gorm.DB) approvalstore.Provider { return env.store },
		historyStore:  func(tx *gorm.DB) approvalhistorystore.Provider { return env.history },
		resolver:      &fakeResolver{chain: chain},
		balance:       func() balancehandler.Provider { return env.balance },
		notify: func(tx *gorm.DB, spaceID, userID string, data models.NotificationData, requestType models.ApprovalRequestType, requestID, dedupSuffix string) error {
			env.notified = append(env.notified, notification{userID: userID, dedup: dedupSuffix})
			return nil
		},
		inTx: func(fn func(tx *gorm.DB) error) error { return fn(nil) },
		now:  func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return env
}

func draftInfo(requesterID string) *RequestInfo {
	return &RequestInfo{
		RequesterID: requesterID,
		Title:       "Отпуск 01.07-14.07",
		Fields:      dbmodels.ApprovalFields{Status: models.RequestStatusDraft},
	}
}

func pendingInfo(requesterID string, currentLevel, totalLevels int) *RequestInfo {
	return &RequestInfo{
		RequesterID: requesterID,
		Title:       "Отпуск 01.07-14.07",
		Fields: dbmodels.ApprovalFields{
			Status:       models.RequestStatusPending,
			CurrentLevel: currentLevel,
			TotalLevels:  totalLevels,
			ChainSeq:     1,
		},
	}
}

func pendingApproval(id, approverID string, level int) *dbmodels.Approval {
	rec := dbmodels.Approval{
		RequestType: models.RequestTypeLeave,
		RequestID:   "req-1",
		ChainSeq:    1,
		Level:       level,
		ApproverID:  approverID,
		Decision:    models.DecisionPending,
		IsActive:    true,
	}
	rec.ID = id
	return &rec
}

func leaveEffect(days int64) *BalanceEffect {
	return &BalanceEffect{
		EmployeeID:  "user-1",
		LeaveTypeID: "lt-1",
		Year:        2026,
		Amount:      decimal.NewFromInt(days),
	}
}

func TestSubmit(t *testing.T) {
	spaceID := "space-1"
	chain := []approvalchain.ChainLink{
		{Level: 1, ApproverID: "head-1"},
		{Level: 2, ApproverID: "head-2"},
	}
	t.Run(`отправка создаёт этапы, резервирует остаток и уведомляет первого согласующего`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: draftInfo("user-1"), effect: leaveEffect(5)}
		env := newEngineEnv(adapter, chain)
		err := env.engine.Submit(spaceID, models.RequestTypeLeave, "req-1", "user-1")
		require.Nil(t, err)
		require.Len(t, env.store.created, 2)
		require.Equal(t, 1, env.store.created[0].ChainSeq)
		require.Equal(t, "head-1", env.store.created[0].ApproverID)
		require.Equal(t, models.DecisionPending, env.store.created[0].Decision)
		require.True(t, env.store.created[0].IsActive)
		require.False(t, env.store.created[1].IsActive, "этап второго уровня не должен быть активен до своей очереди")
		require.Equal(t, []balanceCall{{op: "reserve", amount: decimal.NewFromInt(5)}}, env.balance.calls)
		require.Len(t, adapter.updates, 1)
		require.Equal(t, models.RequestStatusPending, adapter.updates[0]["status"])
		require.Equal(t, 1, adapter.updates[0]["current_level"])
		require.Equal(t, 2, adapter.updates[0]["total_levels"])
		require.Equal(t, 1, adapter.updates[0]["chain_seq"])
		require.Equal(t, []notification{{userID: "head-1", dedup: "chain1-level1"}}, env.notified)
	})
	t.Run(`повторная отправка после доработки начинает новую цепочку`, func(t *testing.T) {
		info := draftInfo("user-1")
		info.Fields.Status = models.RequestStatusRevisionRequested
		info.Fields.ChainSeq = 1
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: info}
		env := newEngineEnv(adapter, chain)
		err := env.engine.Submit(spaceID, models.RequestTypeLeave, "req-1", "user-1")
		require.Nil(t, err)
		require.Equal(t, 2, env.store.created[0].ChainSeq)
		require.Equal(t, 2, adapter.updates[0]["chain_seq"])
		require.Equal(t, "chain2-level1", env.notified[0].dedup)
	})
	t.Run(`отправить заявку может только её автор`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: draftInfo("user-1")}
		env := newEngineEnv(adapter, chain)
		err := env.engine.Submit(spaceID, models.RequestTypeLeave, "req-1", "user-2")
		require.True(t, apperror.IsKind(err, apperror.KindAuthorization))
	})
	t.Run(`заявка на согласовании не отправляется повторно`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 2)}
		env := newEngineEnv(adapter, chain)
		err := env.engine.Submit(spaceID, models.RequestTypeLeave, "req-1", "user-1")
		require.True(t, apperror.IsKind(err, apperror.KindConflict))
		require.Equal(t, "заявка уже на согласовании", err.Error())
	})
	t.Run(`недостаточный остаток - ошибка резервирования доходит до автора`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: draftInfo("user-1"), effect: leaveEffect(30)}
		env := newEngineEnv(adapter, chain)
		env.balance.reserveErr = apperror.InsufficientBalance("недостаточно дней отпуска: доступно 5, запрошено 30")
		err := env.engine.Submit(spaceID, models.RequestTypeLeave, "req-1", "user-1")
		require.True(t, apperror.IsKind(err, apperror.KindInsufficientBalance))
		require.Empty(t, adapter.updates)
		require.Empty(t, env.notified)
	})
	t.Run(`неизвестный тип заявки`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: draftInfo("user-1")}
		env := newEngineEnv(adapter, chain)
		err := env.engine.Submit(spaceID, models.RequestTypeOvertime, "req-1", "user-1")
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestApprove(t *testing.T) {
	spaceID := "space-1"
	t.Run(`согласование промежуточного этапа передаёт заявку следующему`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 2), effect: leaveEffect(5)}
		env := newEngineEnv(adapter, nil)
		env.store.byLevel[1] = pendingApproval("appr-1", "head-1", 1)
		env.store.byLevel[2] = pendingApproval("appr-2", "head-2", 2)
		err := env.engine.Approve(spaceID, models.RequestTypeLeave, "req-1", "head-1", "не возражаю")
		require.Nil(t, err)
		require.Equal(t, models.DecisionApproved, env.store.updates["appr-1"]["decision"])
		require.Equal(t, false, env.store.updates["appr-1"]["is_active"])
		require.Equal(t, true, env.store.updates["appr-2"]["is_active"])
		require.Len(t, env.history.recs, 1)
		require.Equal(t, models.DecisionApproved, env.history.recs[0].Decision)
		require.Equal(t, 2, adapter.updates[0]["current_level"])
		require.Empty(t, env.balance.calls)
		require.False(t, adapter.finalized)
		require.Equal(t, []notification{{userID: "head-2", dedup: "chain1-level2"}}, env.notified)
	})
	t.Run(`финальное согласование списывает резерв и уведомляет автора`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 2, 2), effect: leaveEffect(5)}
		env := newEngineEnv(adapter, nil)
		env.store.byLevel[2] = pendingApproval("appr-2", "head-2", 2)
		err := env.engine.Approve(spaceID, models.RequestTypeLeave, "req-1", "head-2", "")
		require.Nil(t, err)
		require.Equal(t, []balanceCall{{op: "consume", amount: decimal.NewFromInt(5)}}, env.balance.calls)
		require.Equal(t, models.RequestStatusApproved, adapter.updates[0]["status"])
		require.True(t, adapter.finalized)
		require.Equal(t, []notification{{userID: "user-1", dedup: "chain1-approved"}}, env.notified)
	})
	t.Run(`решение этапа принимает только назначенный согласующий`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 2)}
		env := newEngineEnv(adapter, nil)
		env.store.byLevel[1] = pendingApproval("appr-1", "head-1", 1)
		err := env.engine.Approve(spaceID, models.RequestTypeLeave, "req-1", "head-2", "")
		require.True(t, apperror.IsKind(err, apperror.KindAuthorization))
		require.Equal(t, "за текущий этап согласования отвечает другой сотрудник", err.Error())
	})
	t.Run(`повторное решение по этапу - конфликт`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 2)}
		env := newEngineEnv(adapter, nil)
		decided := pendingApproval("appr-1", "head-1", 1)
		decided.Decision = models.DecisionApproved
		env.store.byLevel[1] = decided
		err := env.engine.Approve(spaceID, models.RequestTypeLeave, "req-1", "head-1", "")
		require.True(t, apperror.IsKind(err, apperror.KindConflict))
	})
	t.Run(`решение по терминальной заявке - конфликт`, func(t *testing.T) {
		info := pendingInfo("user-1", 2, 2)
		info.Fields.Status = models.RequestStatusApproved
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: info}
		env := newEngineEnv(adapter, nil)
		err := env.engine.Approve(spaceID, models.RequestTypeLeave, "req-1", "head-2", "")
		require.True(t, apperror.IsKind(err, apperror.KindConflict))
		require.Equal(t, "решение по заявке уже принято", err.Error())
	})
	t.Run(`отсутствие записи этапа - нарушение инварианта`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 2)}
		env := newEngineEnv(adapter, nil)
		err := env.engine.Approve(spaceID, models.RequestTypeLeave, "req-1", "head-1", "")
		require.True(t, apperror.IsKind(err, apperror.KindInvariantViolation))
	})
}

func TestReject(t *testing.T) {
	spaceID := "space-1"
	t.Run(`отклонение на любом этапе терминально и возвращает резерв`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 3), effect: leaveEffect(5)}
		env := newEngineEnv(adapter, nil)
		env.store.byLevel[1] = pendingApproval("appr-1", "head-1", 1)
		err := env.engine.Reject(spaceID, models.RequestTypeLeave, "req-1", "head-1", "нет замены на период")
		require.Nil(t, err)
		require.Equal(t, models.DecisionRejected, env.store.updates["appr-1"]["decision"])
		require.Equal(t, false, env.store.updates["appr-1"]["is_active"], "этап отклонённой заявки не должен оставаться во входящих")
		require.Equal(t, []balanceCall{{op: "release", amount: decimal.NewFromInt(5)}}, env.balance.calls)
		require.Equal(t, models.RequestStatusRejected, adapter.updates[0]["status"])
		require.Equal(t, "нет замены на период", adapter.updates[0]["decision_comment"])
		require.Equal(t, []notification{{userID: "user-1", dedup: "chain1-rejected"}}, env.notified)
	})
	t.Run(`причина отклонения обязательна`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 1)}
		env := newEngineEnv(adapter, nil)
		err := env.engine.Reject(spaceID, models.RequestTypeLeave, "req-1", "head-1", "")
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
		require.Equal(t, "не указана причина отклонения", err.Error())
	})
}

func TestCancel(t *testing.T) {
	spaceID := "space-1"
	t.Run(`отмена заявки на согласовании возвращает резерв и уведомляет согласующего`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 2), effect: leaveEffect(5)}
		env := newEngineEnv(adapter, nil)
		env.store.byLevel[1] = pendingApproval("appr-1", "head-1", 1)
		err := env.engine.Cancel(spaceID, models.RequestTypeLeave, "req-1", "user-1", "планы изменились")
		require.Nil(t, err)
		require.Equal(t, []balanceCall{{op: "release", amount: decimal.NewFromInt(5)}}, env.balance.calls)
		require.Equal(t, false, env.store.updates["appr-1"]["is_active"], "этап отменённой заявки не должен оставаться во входящих")
		require.Equal(t, models.RequestStatusCancelled, adapter.updates[0]["status"])
		require.Equal(t, []notification{{userID: "head-1", dedup: "chain1-cancelled"}}, env.notified)
	})
	t.Run(`отмена черновика не трогает остаток`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: draftInfo("user-1"), effect: leaveEffect(5)}
		env := newEngineEnv(adapter, nil)
		err := env.engine.Cancel(spaceID, models.RequestTypeLeave, "req-1", "user-1", "")
		require.Nil(t, err)
		require.Empty(t, env.balance.calls)
		require.Empty(t, env.notified)
	})
	t.Run(`отменить заявку может только её автор`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 2)}
		env := newEngineEnv(adapter, nil)
		err := env.engine.Cancel(spaceID, models.RequestTypeLeave, "req-1", "head-1", "")
		require.True(t, apperror.IsKind(err, apperror.KindAuthorization))
	})
	t.Run(`терминальная заявка не отменяется`, func(t *testing.T) {
		info := pendingInfo("user-1", 2, 2)
		info.Fields.Status = models.RequestStatusRejected
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: info}
		env := newEngineEnv(adapter, nil)
		err := env.engine.Cancel(spaceID, models.RequestTypeLeave, "req-1", "user-1", "")
		require.True(t, apperror.IsKind(err, apperror.KindConflict))
	})
}

func TestRequestRevision(t *testing.T) {
	spaceID := "space-1"
	t.Run(`возврат на доработку освобождает резерв и фиксирует пропуск этапа`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeEvaluation, info: pendingInfo("user-1", 1, 2), effect: leaveEffect(5), revision: true}
		env := newEngineEnv(adapter, nil)
		env.store.byLevel[1] = pendingApproval("appr-1", "head-1", 1)
		err := env.engine.RequestRevision(spaceID, models.RequestTypeEvaluation, "req-1", "head-1", "дополните цели")
		require.Nil(t, err)
		require.Equal(t, models.DecisionSkipped, env.store.updates["appr-1"]["decision"])
		require.Equal(t, []balanceCall{{op: "release", amount: decimal.NewFromInt(5)}}, env.balance.calls)
		require.Equal(t, models.RequestStatusRevisionRequested, adapter.updates[0]["status"])
		require.Equal(t, []notification{{userID: "user-1", dedup: "chain1-revision"}}, env.notified)
	})
	t.Run(`доработка недоступна для типов без её поддержки`, func(t *testing.T) {
		adapter := &fakeAdapter{requestType: models.RequestTypeLeave, info: pendingInfo("user-1", 1, 2)}
		env := newEngineEnv(adapter, nil)
		err := env.engine.RequestRevision(spaceID, models.RequestTypeLeave, "req-1", "head-1", "")
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}
