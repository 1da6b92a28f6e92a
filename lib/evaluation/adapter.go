package evaluationhandler

import (
	"gorm.io/gorm"

	approvalhandler "hr-platform-backend/lib/approval"
	evaluationstore "hr-platform-backend/lib/evaluation/store"
	notificationhandler "hr-platform-backend/lib/notification"
	spaceusersstore "hr-platform-backend/lib/space/users/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	evaluationapimodels "hr-platform-backend/models/api/evaluation"
	dbmodels "hr-platform-backend/models/db"
)

func NewAdapter() approvalhandler.RequestAdapter {
	return adapter{
		store:      evaluationstore.NewInstance,
		usersStore: spaceusersstore.NewInstance,
		notify: func(tx *gorm.DB, spaceID, userID string, data models.NotificationData, requestType models.ApprovalRequestType, requestID, dedupSuffix string) error {
			return notificationhandler.Instance.EnqueueTx(tx, spaceID, userID, data, requestType, requestID, dedupSuffix)
		},
	}
}

type adapter struct {
	store      func(tx *gorm.DB) evaluationstore.Provider
	usersStore func(tx *gorm.DB) spaceusersstore.Provider
	notify     func(tx *gorm.DB, spaceID, userID string, data models.NotificationData, requestType models.ApprovalRequestType, requestID, dedupSuffix string) error
}

func (a adapter) RequestType() models.ApprovalRequestType {
	return models.RequestTypeEvaluation
}

func (a adapter) Get(tx *gorm.DB, spaceID, requestID string, forUpdate bool) (*approvalhandler.RequestInfo, error) {
	store := a.store(tx)
	var rec *dbmodels.ProbationEvaluation
	var err error
	if forUpdate {
		rec, err = store.GetByIDForUpdate(spaceID, requestID)
	} else {
		rec, err = store.GetByID(spaceID, requestID)
	}
	if err != nil || rec == nil {
		return nil, err
	}
	return &approvalhandler.RequestInfo{
		RequesterID: rec.GetRequesterID(),
		Title:       rec.GetTitle(),
		Fields:      rec.ApprovalFields,
	}, nil
}

func (a adapter) UpdateFields(tx *gorm.DB, spaceID, requestID string, updMap map[string]interface{}) error {
	return a.store(tx).Update(spaceID, requestID, updMap)
}

func (a adapter) ValidateForSubmit(tx *gorm.DB, spaceID, requestID string) error {
	rec, err := a.store(tx).GetByIDForUpdate(spaceID, requestID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.Validation("оценка не найдена")
	}
	data := evaluationapimodels.ProbationEvaluationData{
		EmployeeID:      rec.EmployeeID,
		Milestone:       rec.Milestone,
		QualityScore:    rec.QualityScore,
		DisciplineScore: rec.DisciplineScore,
		SkillScore:      rec.SkillScore,
		Recommendation:  rec.Recommendation,
		Summary:         rec.Summary,
	}
	if err = data.Validate(); err != nil {
		return apperror.Wrap(apperror.KindValidation, err, "оценка заполнена некорректно")
	}
	// финальная оценка без рекомендации не принимается
	if rec.Milestone == models.EvalMilestoneFinal && rec.Recommendation == "" {
		return apperror.Validation("для финальной оценки обязательна рекомендация")
	}
	return nil
}

func (a adapter) BalanceEffect(tx *gorm.DB, spaceID, requestID string) (*approvalhandler.BalanceEffect, error) {
	return nil, nil
}

func (a adapter) SupportsRevision() bool {
	return true
}

// OnFinalApproval переводит сотрудника в штат при финальной оценке с
// положительной рекомендацией
func (a adapter) OnFinalApproval(tx *gorm.DB, spaceID, requestID string) error {
	rec, err := a.store(tx).GetByIDForUpdate(spaceID, requestID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.Validation("оценка не найдена")
	}
	if rec.Milestone != models.EvalMilestoneFinal || rec.Recommendation != models.EvalRecommendRegularize {
		return nil
	}
	usersStore := a.usersStore(tx)
	employee, err := usersStore.GetByID(spaceID, rec.EmployeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.InvariantViolationf("оцениваемый сотрудник %s не найден", rec.EmployeeID)
	}
	updMap := map[string]interface{}{
		"employment_status":  models.EmploymentPermanent,
		"probation_end_date": nil,
	}
	if err = usersStore.Update(spaceID, rec.EmployeeID, updMap); err != nil {
		return err
	}
	data := models.GetPushRegularization(employee.GetFullName())
	return a.notify(tx, spaceID, rec.EmployeeID, data, models.RequestTypeEvaluation, requestID, "regularized")
}
