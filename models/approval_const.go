package models

type ApprovalRequestType string

const (
	RequestTypeLeave       ApprovalRequestType = "leave_application"
	RequestTypeOvertime    ApprovalRequestType = "overtime_request"
	RequestTypeRequisition ApprovalRequestType = "job_requisition"
	RequestTypeEvaluation  ApprovalRequestType = "probation_evaluation"
)

var requestTypeHumanName = map[ApprovalRequestType]string{
	RequestTypeLeave:       "Заявка на отпуск",
	RequestTypeOvertime:    "Заявка на сверхурочную работу",
	RequestTypeRequisition: "Заявка на подбор",
	RequestTypeEvaluation:  "Оценка испытательного срока",
}

func (r ApprovalRequestType) ToHuman() string {
	if human, exist := requestTypeHumanName[r]; exist {
		return human
	}
	return string(r)
}

type RequestStatus string

const (
	RequestStatusDraft             RequestStatus = "DRAFT"
	RequestStatusPending           RequestStatus = "PENDING"
	RequestStatusApproved          RequestStatus = "APPROVED"
	RequestStatusRejected          RequestStatus = "REJECTED"
	RequestStatusCancelled         RequestStatus = "CANCELLED"
	RequestStatusRevisionRequested RequestStatus = "REVISION_REQUESTED"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusDraft:             "Черновик",
	RequestStatusPending:           "На согласовании",
	RequestStatusApproved:          "Согласована",
	RequestStatusRejected:          "Отклонена",
	RequestStatusCancelled:         "Отменена",
	RequestStatusRevisionRequested: "На доработке",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// AllowSubmit - отправка на согласование возможна из черновика или после доработки
func (s RequestStatus) AllowSubmit() bool {
	return s == RequestStatusDraft || s == RequestStatusRevisionRequested
}

// AllowDecision - решение по заявке принимается только пока она на согласовании
func (s RequestStatus) AllowDecision() bool {
	return s == RequestStatusPending
}

func (s RequestStatus) AllowCancel() bool {
	return s == RequestStatusDraft || s == RequestStatusPending
}

func (s RequestStatus) AllowEdit() bool {
	return s == RequestStatusDraft || s == RequestStatusRevisionRequested
}

func (s RequestStatus) IsTerminal() bool {
	switch s {
	case RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}

type ApprovalDecision string

const (
	DecisionPending  ApprovalDecision = "PENDING"
	DecisionApproved ApprovalDecision = "APPROVED"
	DecisionRejected ApprovalDecision = "REJECTED"
	DecisionSkipped  ApprovalDecision = "SKIPPED"
)

var decisionHumanName = map[ApprovalDecision]string{
	DecisionPending:  "Ожидает решения",
	DecisionApproved: "Согласовано",
	DecisionRejected: "Отклонено",
	DecisionSkipped:  "Пропущено",
}

func (d ApprovalDecision) ToHuman() string {
	if human, exist := decisionHumanName[d]; exist {
		return human
	}
	return string(d)
}
