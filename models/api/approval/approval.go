package approvalapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-platform-backend/models"
	dbmodels "hr-platform-backend/models/db"
)

type DecisionData struct {
	Comment string `json:"comment"`
}

func (v DecisionData) Validate() error {
	return nil
}

type RejectData struct {
	Reason string `json:"reason"`
}

func (v RejectData) Validate() error {
	if v.Reason == "" {
		return errors.New("не указана причина отклонения")
	}
	return nil
}

type CancelData struct {
	Reason string `json:"reason"`
}

func (v CancelData) Validate() error {
	if v.Reason == "" {
		return errors.New("не указана причина отмены")
	}
	return nil
}

type RevisionData struct {
	Comment string `json:"comment"`
}

func (v RevisionData) Validate() error {
	if v.Comment == "" {
		return errors.New("не указан комментарий")
	}
	return nil
}

type ApprovalView struct {
	ID           string                  `json:"id"`
	Level        int                     `json:"level"`
	ChainSeq     int                     `json:"chain_seq"`
	ApproverID   string                  `json:"approver_id"`
	ApproverName string                  `json:"approver_name"`
	Decision     models.ApprovalDecision `json:"decision"`
	DecidedAt    *time.Time              `json:"decided_at"`
	Comment      string                  `json:"comment"`
}

func ApprovalConvert(rec dbmodels.Approval) ApprovalView {
	userName := ""
	if rec.Approver != nil {
		userName = rec.Approver.GetFullName()
	}
	return ApprovalView{
		ID:           rec.ID,
		Level:        rec.Level,
		ChainSeq:     rec.ChainSeq,
		ApproverID:   rec.ApproverID,
		ApproverName: userName,
		Decision:     rec.Decision,
		DecidedAt:    rec.DecidedAt,
		Comment:      rec.Comment,
	}
}

type ApprovalHistoryView struct {
	CreatedAt    time.Time               `json:"created_at"`
	Level        int                     `json:"level"`
	ApproverID   string                  `json:"approver_id"`
	ApproverName string                  `json:"approver_name"`
	Decision     models.ApprovalDecision `json:"decision"`
	Comment      string                  `json:"comment"`
}

func ApprovalHistoryConvert(rec dbmodels.ApprovalHistory) ApprovalHistoryView {
	userName := ""
	if rec.Approver != nil {
		userName = rec.Approver.GetFullName()
	}
	return ApprovalHistoryView{
		CreatedAt:    rec.CreatedAt,
		Level:        rec.Level,
		ApproverID:   rec.ApproverID,
		ApproverName: userName,
		Decision:     rec.Decision,
		Comment:      rec.Comment,
	}
}

// ApprovalState - сводка по согласованию для карточки заявки
type ApprovalState struct {
	Status       models.RequestStatus `json:"status"`
	StatusName   string               `json:"status_name"`
	CurrentLevel int                  `json:"current_level"`
	TotalLevels  int                  `json:"total_levels"`
	Approvals    []ApprovalView       `json:"approvals"`
}

func ApprovalStateConvert(fields dbmodels.ApprovalFields, approvals []dbmodels.Approval) ApprovalState {
	list := make([]ApprovalView, 0, len(approvals))
	for _, rec := range approvals {
		list = append(list, ApprovalConvert(rec))
	}
	return ApprovalState{
		Status:       fields.Status,
		StatusName:   fields.Status.ToHuman(),
		CurrentLevel: fields.CurrentLevel,
		TotalLevels:  fields.TotalLevels,
		Approvals:    list,
	}
}
