package evaluationhandler

import (
	log "github.com/sirupsen/logrus"

	"hr-platform-backend/db"
	approvalstore "hr-platform-backend/lib/approval/store"
	evaluationstore "hr-platform-backend/lib/evaluation/store"
	spaceusersstore "hr-platform-backend/lib/space/users/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	evaluationapimodels "hr-platform-backend/models/api/evaluation"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(spaceID, authorID string, data evaluationapimodels.ProbationEvaluationData) (id string, err error)
	Update(spaceID, userID, id string, data evaluationapimodels.ProbationEvaluationData) error
	Delete(spaceID, userID, id string) error
	GetByID(spaceID, id string) (view evaluationapimodels.ProbationEvaluationView, err error)
	List(spaceID, authorID string, filter evaluationapimodels.EvaluationFilter) (list []evaluationapimodels.ProbationEvaluationView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         evaluationstore.NewInstance(db.DB),
		approvalStore: approvalstore.NewInstance(db.DB),
		usersStore:    spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store         evaluationstore.Provider
	approvalStore approvalstore.Provider
	usersStore    spaceusersstore.Provider
}

func (i impl) Create(spaceID, authorID string, data evaluationapimodels.ProbationEvaluationData) (id string, err error) {
	employee, err := i.usersStore.GetByID(spaceID, data.EmployeeID)
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "", apperror.Validation("оцениваемый сотрудник не найден")
	}
	if employee.EmploymentStatus != models.EmploymentProbation {
		return "", apperror.Validation("сотрудник не находится на испытательном сроке")
	}
	rec := dbmodels.ProbationEvaluation{
		AuthorID:        authorID,
		EmployeeID:      data.EmployeeID,
		Milestone:       data.Milestone,
		QualityScore:    data.QualityScore,
		DisciplineScore: data.DisciplineScore,
		SkillScore:      data.SkillScore,
		Recommendation:  data.Recommendation,
		Summary:         data.Summary,
	}
	rec.SpaceID = spaceID
	rec.Status = models.RequestStatusDraft
	id, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("author_id", authorID).
			WithError(err).
			Error("ошибка создания оценки испытательного срока")
		return "", err
	}
	return id, nil
}

func (i impl) Update(spaceID, userID, id string, data evaluationapimodels.ProbationEvaluationData) error {
	rec, err := i.getEditable(spaceID, userID, id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"milestone":        data.Milestone,
		"quality_score":    data.QualityScore,
		"discipline_score": data.DisciplineScore,
		"skill_score":      data.SkillScore,
		"recommendation":   data.Recommendation,
		"summary":          data.Summary,
	}
	return i.store.Update(spaceID, rec.ID, updMap)
}

func (i impl) Delete(spaceID, userID, id string) error {
	rec, err := i.getEditable(spaceID, userID, id)
	if err != nil {
		return err
	}
	if rec.Status != models.RequestStatusDraft {
		return apperror.Validation("удалить можно только черновик оценки")
	}
	return i.store.Delete(spaceID, id)
}

func (i impl) GetByID(spaceID, id string) (view evaluationapimodels.ProbationEvaluationView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("evaluation_id", id).WithError(err).Error("ошибка получения оценки испытательного срока")
		return view, err
	}
	if rec == nil {
		return view, apperror.Validation("оценка не найдена")
	}
	approvals, err := i.approvalStore.ListChain(spaceID, models.RequestTypeEvaluation, rec.ID, rec.ChainSeq)
	if err != nil {
		return view, err
	}
	return evaluationapimodels.ProbationEvaluationConvert(*rec, approvals), nil
}

func (i impl) List(spaceID, authorID string, filter evaluationapimodels.EvaluationFilter) (list []evaluationapimodels.ProbationEvaluationView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(spaceID, authorID, filter)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка оценок")
		return nil, 0, err
	}
	list = make([]evaluationapimodels.ProbationEvaluationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, evaluationapimodels.ProbationEvaluationConvert(rec, nil))
	}
	return list, rowCount, nil
}

func (i impl) getEditable(spaceID, userID, id string) (*dbmodels.ProbationEvaluation, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.Validation("оценка не найдена")
	}
	if rec.AuthorID != userID {
		return nil, apperror.Authorization("изменять оценку может только её автор")
	}
	if !rec.Status.AllowEdit() {
		return nil, apperror.Validationf("оценка в статусе «%v» не может быть изменена", rec.Status.ToHuman())
	}
	return rec, nil
}
