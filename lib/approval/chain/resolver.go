package approvalchain

import (
	"gorm.io/gorm"

	"hr-platform-backend/config"
	spaceusersstore "hr-platform-backend/lib/space/users/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
)

// ChainLink - один этап цепочки согласования
type ChainLink struct {
	Level      int
	ApproverID string
}

type Provider interface {
	Resolve(tx *gorm.DB, spaceID, requesterID string, requestType models.ApprovalRequestType) (chain []ChainLink, err error)
}

func NewInstance() Provider {
	leaveHRFinal := true
	if config.Conf.Approval.LeaveHRApproval != nil {
		leaveHRFinal = *config.Conf.Approval.LeaveHRApproval
	}
	return &impl{
		maxDepth:     config.Conf.Approval.MaxChainDepth,
		leaveHRFinal: leaveHRFinal,
		usersStore:   spaceusersstore.NewInstance,
	}
}

type impl struct {
	maxDepth     int
	leaveHRFinal bool
	usersStore   func(tx *gorm.DB) spaceusersstore.Provider
}

// Resolve строит цепочку по структуре подчинения на момент отправки заявки.
// Сам заявитель не может быть согласующим ни на одном этапе, уволенные и
// заблокированные пользователи пропускаются.
func (i impl) Resolve(tx *gorm.DB, spaceID, requesterID string, requestType models.ApprovalRequestType) (chain []ChainLink, err error) {
	store := i.usersStore(tx)
	visited := map[string]bool{requesterID: true}
	currentID := requesterID
	for depth := 0; depth < i.maxDepth; depth++ {
		head, err := store.GetSupervisor(spaceID, currentID)
		if err != nil {
			return nil, err
		}
		if head == nil {
			break
		}
		if visited[head.ID] {
			return nil, apperror.Resolution("обнаружен цикл в структуре подчинения")
		}
		visited[head.ID] = true
		if head.IsEligibleApprover() {
			chain = append(chain, ChainLink{ApproverID: head.ID})
		}
		currentID = head.ID
	}
	if i.hrFinalRequired(requestType) {
		hr, err := store.FindHRManager(spaceID)
		if err != nil {
			return nil, err
		}
		if hr != nil && hr.ID != requesterID && !containsApprover(chain, hr.ID) {
			chain = append(chain, ChainLink{ApproverID: hr.ID})
		}
	}
	if len(chain) == 0 {
		return nil, apperror.Resolution("не найден ни один согласующий для заявки")
	}
	for idx := range chain {
		chain[idx].Level = idx + 1
	}
	return chain, nil
}

// hrFinalRequired - HR менеджер завершает цепочку: для оценок испытательного
// срока всегда, для отпусков по настройке пространства
func (i impl) hrFinalRequired(requestType models.ApprovalRequestType) bool {
	switch requestType {
	case models.RequestTypeEvaluation:
		return true
	case models.RequestTypeLeave:
		return i.leaveHRFinal
	}
	return false
}

func containsApprover(chain []ChainLink, approverID string) bool {
	for _, link := range chain {
		if link.ApproverID == approverID {
			return true
		}
	}
	return false
}
