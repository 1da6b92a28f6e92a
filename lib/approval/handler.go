package approvalhandler

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-platform-backend/db"
	approvalchain "hr-platform-backend/lib/approval/chain"
	approvalhistorystore "hr-platform-backend/lib/approval/history-store"
	approvalstore "hr-platform-backend/lib/approval/store"
	balancehandler "hr-platform-backend/lib/balance"
	notificationhandler "hr-platform-backend/lib/notification"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	approvalapimodels "hr-platform-backend/models/api/approval"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Submit(spaceID string, requestType models.ApprovalRequestType, requestID, userID string) error
	Approve(spaceID string, requestType models.ApprovalRequestType, requestID, userID, comment string) error
	Reject(spaceID string, requestType models.ApprovalRequestType, requestID, userID, reason string) error
	Cancel(spaceID string, requestType models.ApprovalRequestType, requestID, userID, reason string) error
	RequestRevision(spaceID string, requestType models.ApprovalRequestType, requestID, userID, comment string) error
	ListApprovals(spaceID string, requestType models.ApprovalRequestType, requestID string) (list []approvalapimodels.ApprovalView, err error)
	History(spaceID string, requestType models.ApprovalRequestType, requestID string) (list []approvalapimodels.ApprovalHistoryView, err error)
	ListPendingForApprover(spaceID, approverID string) (list []approvalapimodels.ApprovalView, err error)
}

var Instance Provider

func NewHandler(adapters ...RequestAdapter) {
	adapterMap := map[models.ApprovalRequestType]RequestAdapter{}
	for _, adapter := range adapters {
		adapterMap[adapter.RequestType()] = adapter
	}
	Instance = &impl{
		adapters:      adapterMap,
		approvalStore: approvalstore.NewInstance,
		historyStore:  approvalhistorystore.NewInstance,
		resolver:      approvalchain.NewInstance(),
		balance:       func() balancehandler.Provider { return balancehandler.Instance },
		notify: func(tx *gorm.DB, spaceID, userID string, data models.NotificationData, requestType models.ApprovalRequestType, requestID, dedupSuffix string) error {
			return notificationhandler.Instance.EnqueueTx(tx, spaceID, userID, data, requestType, requestID, dedupSuffix)
		},
		inTx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
		now: time.Now,
	}
}

type impl struct {
	adapters      map[models.ApprovalRequestType]RequestAdapter
	approvalStore func(tx *gorm.DB) approvalstore.Provider
	historyStore  func(tx *gorm.DB) approvalhistorystore.Provider
	resolver      approvalchain.Provider
	balance       func() balancehandler.Provider
	notify        func(tx *gorm.DB, spaceID, userID string, data models.NotificationData, requestType models.ApprovalRequestType, requestID, dedupSuffix string) error
	inTx          func(fn func(tx *gorm.DB) error) error
	now           func() time.Time
}

func (i impl) getLogger(spaceID string, requestType models.ApprovalRequestType, requestID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("request_type", string(requestType)).
		WithField("request_id", requestID)
}

func (i impl) adapter(requestType models.ApprovalRequestType) (RequestAdapter, error) {
	adapter, exist := i.adapters[requestType]
	if !exist {
		return nil, apperror.Validationf("неизвестный тип заявки: %v", requestType)
	}
	return adapter, nil
}

// Submit отправляет заявку на согласование: строится цепочка по текущей
// структуре подчинения, создаются записи этапов, резервируется остаток
func (i impl) Submit(spaceID string, requestType models.ApprovalRequestType, requestID, userID string) error {
	adapter, err := i.adapter(requestType)
	if err != nil {
		return err
	}
	return i.inTx(func(tx *gorm.DB) error {
		info, err := adapter.Get(tx, spaceID, requestID, true)
		if err != nil {
			return err
		}
		if info == nil {
			return apperror.Validation("заявка не найдена")
		}
		if info.RequesterID != userID {
			return apperror.Authorization("отправить заявку на согласование может только её автор")
		}
		if !info.Fields.Status.AllowSubmit() {
			if info.Fields.Status == models.RequestStatusPending {
				return apperror.Conflict("заявка уже на согласовании")
			}
			return apperror.Validationf("заявка в статусе «%v» не может быть отправлена на согласование", info.Fields.Status.ToHuman())
		}
		if err = adapter.ValidateForSubmit(tx, spaceID, requestID); err != nil {
			return err
		}
		chain, err := i.resolver.Resolve(tx, spaceID, info.RequesterID, requestType)
		if err != nil {
			return err
		}
		chainSeq := info.Fields.ChainSeq + 1
		recs := make([]dbmodels.Approval, 0, len(chain))
		for _, link := range chain {
			rec := dbmodels.Approval{
				RequestType: requestType,
				RequestID:   requestID,
				ChainSeq:    chainSeq,
				Level:       link.Level,
				ApproverID:  link.ApproverID,
				Decision:    models.DecisionPending,
				IsActive:    link.Level == 1,
			}
			rec.SpaceID = spaceID
			recs = append(recs, rec)
		}
		if err = i.approvalStore(tx).CreateBatch(recs); err != nil {
			return err
		}
		effect, err := adapter.BalanceEffect(tx, spaceID, requestID)
		if err != nil {
			return err
		}
		if effect != nil {
			err = i.balance().ReserveTx(tx, spaceID, effect.EmployeeID, effect.LeaveTypeID, effect.Year, effect.Amount)
			if err != nil {
				return err
			}
		}
		now := i.now()
		updMap := map[string]interface{}{
			"status":        models.RequestStatusPending,
			"current_level": 1,
			"total_levels":  len(chain),
			"chain_seq":     chainSeq,
			"submitted_at":  &now,
		}
		if err = adapter.UpdateFields(tx, spaceID, requestID, updMap); err != nil {
			return err
		}
		data := models.GetPushApprovalPending(requestType, info.Title, 1, len(chain))
		return i.notify(tx, spaceID, chain[0].ApproverID, data, requestType, requestID,
			fmt.Sprintf("chain%d-level%d", chainSeq, 1))
	})
}

// Approve фиксирует решение согласующего текущего этапа. Непоследний этап
// передаёт заявку дальше, последний делает статус терминальным и списывает резерв.
func (i impl) Approve(spaceID string, requestType models.ApprovalRequestType, requestID, userID, comment string) error {
	adapter, err := i.adapter(requestType)
	if err != nil {
		return err
	}
	return i.inTx(func(tx *gorm.DB) error {
		info, current, err := i.lockPendingRequest(tx, adapter, spaceID, requestID, userID)
		if err != nil {
			return err
		}
		now := i.now()
		err = i.decide(tx, spaceID, current, models.DecisionApproved, comment, now)
		if err != nil {
			return err
		}
		if info.Fields.CurrentLevel < info.Fields.TotalLevels {
			nextLevel := info.Fields.CurrentLevel + 1
			updMap := map[string]interface{}{
				"current_level": nextLevel,
			}
			if err = adapter.UpdateFields(tx, spaceID, requestID, updMap); err != nil {
				return err
			}
			next, err := i.approvalStore(tx).GetCurrent(spaceID, requestType, requestID, info.Fields.ChainSeq, nextLevel)
			if err != nil {
				return err
			}
			if next == nil {
				return apperror.InvariantViolationf("отсутствует запись согласования этапа %d заявки %s", nextLevel, requestID)
			}
			if err = i.approvalStore(tx).Update(spaceID, next.ID, map[string]interface{}{"is_active": true}); err != nil {
				return err
			}
			data := models.GetPushApprovalPending(requestType, info.Title, nextLevel, info.Fields.TotalLevels)
			return i.notify(tx, spaceID, next.ApproverID, data, requestType, requestID,
				fmt.Sprintf("chain%d-level%d", info.Fields.ChainSeq, nextLevel))
		}
		// финальное согласование
		effect, err := adapter.BalanceEffect(tx, spaceID, requestID)
		if err != nil {
			return err
		}
		if effect != nil {
			err = i.balance().ConsumeTx(tx, spaceID, effect.EmployeeID, effect.LeaveTypeID, effect.Year, effect.Amount)
			if err != nil {
				return err
			}
		}
		updMap := map[string]interface{}{
			"status":           models.RequestStatusApproved,
			"approved_at":      &now,
			"decision_comment": comment,
		}
		if err = adapter.UpdateFields(tx, spaceID, requestID, updMap); err != nil {
			return err
		}
		if err = adapter.OnFinalApproval(tx, spaceID, requestID); err != nil {
			return err
		}
		data := models.GetPushRequestApproved(requestType, info.Title)
		return i.notify(tx, spaceID, info.RequesterID, data, requestType, requestID,
			fmt.Sprintf("chain%d-approved", info.Fields.ChainSeq))
	})
}

// Reject - отклонение терминально на любом этапе, оставшиеся этапы решения не получают
func (i impl) Reject(spaceID string, requestType models.ApprovalRequestType, requestID, userID, reason string) error {
	if reason == "" {
		return apperror.Validation("не указана причина отклонения")
	}
	adapter, err := i.adapter(requestType)
	if err != nil {
		return err
	}
	return i.inTx(func(tx *gorm.DB) error {
		info, current, err := i.lockPendingRequest(tx, adapter, spaceID, requestID, userID)
		if err != nil {
			return err
		}
		now := i.now()
		err = i.decide(tx, spaceID, current, models.DecisionRejected, reason, now)
		if err != nil {
			return err
		}
		if err = i.releaseEffect(tx, adapter, spaceID, requestID); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":           models.RequestStatusRejected,
			"rejected_at":      &now,
			"decision_comment": reason,
		}
		if err = adapter.UpdateFields(tx, spaceID, requestID, updMap); err != nil {
			return err
		}
		approverName := current.ApproverID
		if current.Approver != nil {
			approverName = current.Approver.GetFullName()
		}
		data := models.GetPushRequestRejected(requestType, info.Title, approverName, reason)
		return i.notify(tx, spaceID, info.RequesterID, data, requestType, requestID,
			fmt.Sprintf("chain%d-rejected", info.Fields.ChainSeq))
	})
}

// Cancel доступен только автору заявки из черновика или согласования
func (i impl) Cancel(spaceID string, requestType models.ApprovalRequestType, requestID, userID, reason string) error {
	adapter, err := i.adapter(requestType)
	if err != nil {
		return err
	}
	return i.inTx(func(tx *gorm.DB) error {
		info, err := adapter.Get(tx, spaceID, requestID, true)
		if err != nil {
			return err
		}
		if info == nil {
			return apperror.Validation("заявка не найдена")
		}
		if info.RequesterID != userID {
			return apperror.Authorization("отменить заявку может только её автор")
		}
		if !info.Fields.Status.AllowCancel() {
			if info.Fields.Status.IsTerminal() {
				return apperror.Conflict("решение по заявке уже принято")
			}
			return apperror.Validationf("заявка в статусе «%v» не может быть отменена", info.Fields.Status.ToHuman())
		}
		wasPending := info.Fields.Status == models.RequestStatusPending
		if wasPending {
			if err = i.releaseEffect(tx, adapter, spaceID, requestID); err != nil {
				return err
			}
		}
		now := i.now()
		updMap := map[string]interface{}{
			"status":           models.RequestStatusCancelled,
			"cancelled_at":     &now,
			"decision_comment": reason,
		}
		if err = adapter.UpdateFields(tx, spaceID, requestID, updMap); err != nil {
			return err
		}
		if !wasPending {
			return nil
		}
		// согласующий текущего этапа узнаёт, что решение больше не требуется
		current, err := i.approvalStore(tx).GetCurrent(spaceID, requestType, requestID, info.Fields.ChainSeq, info.Fields.CurrentLevel)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}
		if err = i.approvalStore(tx).Update(spaceID, current.ID, map[string]interface{}{"is_active": false}); err != nil {
			return err
		}
		data := models.GetPushRequestCancelled(requestType, info.Title, reason)
		return i.notify(tx, spaceID, current.ApproverID, data, requestType, requestID,
			fmt.Sprintf("chain%d-cancelled", info.Fields.ChainSeq))
	})
}

// RequestRevision возвращает заявку автору. Повторная отправка строит новую
// цепочку, старые записи этапов остаются в истории под прежним chain_seq.
func (i impl) RequestRevision(spaceID string, requestType models.ApprovalRequestType, requestID, userID, comment string) error {
	adapter, err := i.adapter(requestType)
	if err != nil {
		return err
	}
	if !adapter.SupportsRevision() {
		return apperror.Validationf("доработка недоступна для заявок типа «%v»", requestType.ToHuman())
	}
	return i.inTx(func(tx *gorm.DB) error {
		info, current, err := i.lockPendingRequest(tx, adapter, spaceID, requestID, userID)
		if err != nil {
			return err
		}
		now := i.now()
		err = i.decide(tx, spaceID, current, models.DecisionSkipped, comment, now)
		if err != nil {
			return err
		}
		if err = i.releaseEffect(tx, adapter, spaceID, requestID); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":           models.RequestStatusRevisionRequested,
			"decision_comment": comment,
		}
		if err = adapter.UpdateFields(tx, spaceID, requestID, updMap); err != nil {
			return err
		}
		approverName := current.ApproverID
		if current.Approver != nil {
			approverName = current.Approver.GetFullName()
		}
		data := models.GetPushRequestRevision(requestType, info.Title, approverName)
		return i.notify(tx, spaceID, info.RequesterID, data, requestType, requestID,
			fmt.Sprintf("chain%d-revision", info.Fields.ChainSeq))
	})
}

func (i impl) ListApprovals(spaceID string, requestType models.ApprovalRequestType, requestID string) (list []approvalapimodels.ApprovalView, err error) {
	adapter, err := i.adapter(requestType)
	if err != nil {
		return nil, err
	}
	var recs []dbmodels.Approval
	err = i.inTx(func(tx *gorm.DB) error {
		info, err := adapter.Get(tx, spaceID, requestID, false)
		if err != nil {
			return err
		}
		if info == nil {
			return apperror.Validation("заявка не найдена")
		}
		recs, err = i.approvalStore(tx).ListChain(spaceID, requestType, requestID, info.Fields.ChainSeq)
		return err
	})
	if err != nil {
		i.getLogger(spaceID, requestType, requestID).WithError(err).Error("ошибка получения этапов согласования")
		return nil, err
	}
	list = make([]approvalapimodels.ApprovalView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, approvalapimodels.ApprovalConvert(rec))
	}
	return list, nil
}

func (i impl) History(spaceID string, requestType models.ApprovalRequestType, requestID string) (list []approvalapimodels.ApprovalHistoryView, err error) {
	recs, err := i.historyStore(db.DB).List(spaceID, requestType, requestID)
	if err != nil {
		i.getLogger(spaceID, requestType, requestID).WithError(err).Error("ошибка получения истории согласования")
		return nil, err
	}
	list = make([]approvalapimodels.ApprovalHistoryView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, approvalapimodels.ApprovalHistoryConvert(rec))
	}
	return list, nil
}

func (i impl) ListPendingForApprover(spaceID, approverID string) (list []approvalapimodels.ApprovalView, err error) {
	recs, err := i.approvalStore(db.DB).ListPendingByApprover(spaceID, approverID)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("approver_id", approverID).
			WithError(err).
			Error("ошибка получения заявок на согласовании")
		return nil, err
	}
	list = make([]approvalapimodels.ApprovalView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, approvalapimodels.ApprovalConvert(rec))
	}
	return list, nil
}

// lockPendingRequest блокирует строку заявки и проверяет право действующего
// лица на решение текущего этапа. Повторная проверка статуса после взятия
// блокировки превращает проигранную гонку в конфликт.
func (i impl) lockPendingRequest(tx *gorm.DB, adapter RequestAdapter, spaceID, requestID, userID string) (info *RequestInfo, current *dbmodels.Approval, err error) {
	info, err = adapter.Get(tx, spaceID, requestID, true)
	if err != nil {
		return nil, nil, err
	}
	if info == nil {
		return nil, nil, apperror.Validation("заявка не найдена")
	}
	if !info.Fields.Status.AllowDecision() {
		if info.Fields.Status.IsTerminal() {
			return nil, nil, apperror.Conflict("решение по заявке уже принято")
		}
		return nil, nil, apperror.Validationf("заявка в статусе «%v» не ожидает решения", info.Fields.Status.ToHuman())
	}
	current, err = i.approvalStore(tx).GetCurrent(spaceID, adapter.RequestType(), requestID, info.Fields.ChainSeq, info.Fields.CurrentLevel)
	if err != nil {
		return nil, nil, err
	}
	if current == nil {
		return nil, nil, apperror.InvariantViolationf("отсутствует запись согласования этапа %d заявки %s", info.Fields.CurrentLevel, requestID)
	}
	if current.ApproverID != userID {
		return nil, nil, apperror.Authorization("за текущий этап согласования отвечает другой сотрудник")
	}
	if current.Decision != models.DecisionPending {
		return nil, nil, apperror.Conflict("решение по текущему этапу уже принято")
	}
	return info, current, nil
}

// decide фиксирует решение этапа и пишет строку аудита
func (i impl) decide(tx *gorm.DB, spaceID string, current *dbmodels.Approval, decision models.ApprovalDecision, comment string, now time.Time) error {
	updMap := map[string]interface{}{
		"decision":   decision,
		"decided_at": &now,
		"comment":    comment,
		"is_active":  false,
	}
	if err := i.approvalStore(tx).Update(spaceID, current.ID, updMap); err != nil {
		return err
	}
	history := dbmodels.ApprovalHistory{
		RequestType: current.RequestType,
		RequestID:   current.RequestID,
		ApprovalID:  current.ID,
		Level:       current.Level,
		ApproverID:  current.ApproverID,
		Decision:    decision,
		Comment:     comment,
	}
	history.SpaceID = spaceID
	_, err := i.historyStore(tx).Create(history)
	return err
}

func (i impl) releaseEffect(tx *gorm.DB, adapter RequestAdapter, spaceID, requestID string) error {
	effect, err := adapter.BalanceEffect(tx, spaceID, requestID)
	if err != nil {
		return err
	}
	if effect == nil {
		return nil
	}
	return i.balance().ReleaseTx(tx, spaceID, effect.EmployeeID, effect.LeaveTypeID, effect.Year, effect.Amount)
}
