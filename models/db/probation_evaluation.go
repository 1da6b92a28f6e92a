package dbmodels

import (
	"fmt"

	"hr-platform-backend/models"
)

type ProbationEvaluation struct {
	BaseSpaceModel
	ApprovalFields
	AuthorID       string     `gorm:"type:varchar(36);index"` // руководитель, проводящий оценку
	Author         *SpaceUser `gorm:"foreignKey:AuthorID"`
	EmployeeID     string     `gorm:"type:varchar(36);index"` // оцениваемый сотрудник
	Employee       *SpaceUser `gorm:"foreignKey:EmployeeID"`
	Milestone      models.EvalMilestone `gorm:"type:varchar(20)"`
	QualityScore   int
	DisciplineScore int
	SkillScore     int
	Recommendation models.EvalRecommendation `gorm:"type:varchar(20)"` // обязательна для финальной оценки
	Summary        string
}

func (r ProbationEvaluation) GetRequesterID() string {
	return r.AuthorID
}

func (r ProbationEvaluation) GetTitle() string {
	name := r.EmployeeID
	if r.Employee != nil {
		name = r.Employee.GetFullName()
	}
	return fmt.Sprintf("оценка сотрудника %s", name)
}
