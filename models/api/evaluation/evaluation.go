package evaluationapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-platform-backend/models"
	apimodels "hr-platform-backend/models/api"
	approvalapimodels "hr-platform-backend/models/api/approval"
	dbmodels "hr-platform-backend/models/db"
)

type ProbationEvaluationData struct {
	EmployeeID      string                    `json:"employee_id"`
	Milestone       models.EvalMilestone      `json:"milestone"`
	QualityScore    int                       `json:"quality_score"`
	DisciplineScore int                       `json:"discipline_score"`
	SkillScore      int                       `json:"skill_score"`
	Recommendation  models.EvalRecommendation `json:"recommendation"`
	Summary         string                    `json:"summary"`
}

func (v ProbationEvaluationData) Validate() error {
	if v.EmployeeID == "" {
		return errors.New("не указан оцениваемый сотрудник")
	}
	if v.Milestone != models.EvalMilestoneInterim && v.Milestone != models.EvalMilestoneFinal {
		return errors.New("не указан этап оценки")
	}
	for _, score := range []int{v.QualityScore, v.DisciplineScore, v.SkillScore} {
		if score < 1 || score > 5 {
			return errors.New("оценка должна быть в диапазоне от 1 до 5")
		}
	}
	if v.Recommendation != "" && !v.Recommendation.IsValid() {
		return errors.New("недопустимое значение рекомендации")
	}
	return nil
}

type ProbationEvaluationView struct {
	ProbationEvaluationData
	ID                 string                          `json:"id"`
	AuthorID           string                          `json:"author_id"`
	AuthorName         string                          `json:"author_name"`
	EmployeeName       string                          `json:"employee_name"`
	RecommendationName string                          `json:"recommendation_name"`
	CreatedAt          time.Time                       `json:"created_at"`
	SubmittedAt        *time.Time                      `json:"submitted_at"`
	Approval           approvalapimodels.ApprovalState `json:"approval"`
}

func ProbationEvaluationConvert(rec dbmodels.ProbationEvaluation, approvals []dbmodels.Approval) ProbationEvaluationView {
	authorName := ""
	if rec.Author != nil {
		authorName = rec.Author.GetFullName()
	}
	employeeName := ""
	if rec.Employee != nil {
		employeeName = rec.Employee.GetFullName()
	}
	return ProbationEvaluationView{
		ProbationEvaluationData: ProbationEvaluationData{
			EmployeeID:      rec.EmployeeID,
			Milestone:       rec.Milestone,
			QualityScore:    rec.QualityScore,
			DisciplineScore: rec.DisciplineScore,
			SkillScore:      rec.SkillScore,
			Recommendation:  rec.Recommendation,
			Summary:         rec.Summary,
		},
		ID:                 rec.ID,
		AuthorID:           rec.AuthorID,
		AuthorName:         authorName,
		EmployeeName:       employeeName,
		RecommendationName: rec.Recommendation.ToHuman(),
		CreatedAt:          rec.CreatedAt,
		SubmittedAt:        rec.SubmittedAt,
		Approval:           approvalapimodels.ApprovalStateConvert(rec.ApprovalFields, approvals),
	}
}

type EvaluationFilter struct {
	apimodels.Pagination
	Statuses []models.RequestStatus `json:"statuses"`
}
