package requisitionapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-platform-backend/models"
	apimodels "hr-platform-backend/models/api"
	approvalapimodels "hr-platform-backend/models/api/approval"
	dbmodels "hr-platform-backend/models/db"
)

type JobRequisitionData struct {
	PositionName   string            `json:"position_name"`
	DepartmentName string            `json:"department_name"`
	Headcount      int               `json:"headcount"`
	Urgency        models.ReqUrgency `json:"urgency"`
	Requirements   string            `json:"requirements"`
	ShortInfo      string            `json:"short_info"`
}

func (v JobRequisitionData) Validate() error {
	if v.PositionName == "" {
		return errors.New("не указано название должности")
	}
	if v.Headcount <= 0 {
		return errors.New("не указано количество позиций")
	}
	if v.Urgency != models.ReqUrgencyUrgent && v.Urgency != models.ReqUrgencyNonUrgent {
		return errors.New("не указана срочность заявки")
	}
	return nil
}

type JobRequisitionView struct {
	JobRequisitionData
	ID          string                          `json:"id"`
	AuthorID    string                          `json:"author_id"`
	AuthorName  string                          `json:"author_name"`
	CreatedAt   time.Time                       `json:"created_at"`
	SubmittedAt *time.Time                      `json:"submitted_at"`
	Approval    approvalapimodels.ApprovalState `json:"approval"`
}

func JobRequisitionConvert(rec dbmodels.JobRequisition, approvals []dbmodels.Approval) JobRequisitionView {
	authorName := ""
	if rec.Author != nil {
		authorName = rec.Author.GetFullName()
	}
	return JobRequisitionView{
		JobRequisitionData: JobRequisitionData{
			PositionName:   rec.PositionName,
			DepartmentName: rec.DepartmentName,
			Headcount:      rec.Headcount,
			Urgency:        rec.Urgency,
			Requirements:   rec.Requirements,
			ShortInfo:      rec.ShortInfo,
		},
		ID:          rec.ID,
		AuthorID:    rec.AuthorID,
		AuthorName:  authorName,
		CreatedAt:   rec.CreatedAt,
		SubmittedAt: rec.SubmittedAt,
		Approval:    approvalapimodels.ApprovalStateConvert(rec.ApprovalFields, approvals),
	}
}

type RequisitionFilter struct {
	apimodels.Pagination
	Statuses []models.RequestStatus `json:"statuses"`
}
