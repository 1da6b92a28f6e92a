package spaceusershander

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hr-platform-backend/db"
	spaceusersstore "hr-platform-backend/lib/space/users/store"
	authutils "hr-platform-backend/lib/utils/auth-utils"
	"hr-platform-backend/models"
	spaceapimodels "hr-platform-backend/models/api/space"
	dbmodels "hr-platform-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	CreateUser(spaceID string, request spaceapimodels.CreateUser) (id string, err error)
	UpdateUser(spaceID, userID string, request spaceapimodels.UpdateUser) error
	DismissUser(spaceID, userID string) error
	GetListUsers(spaceID string, filter spaceapimodels.UserFilter) (usersList []spaceapimodels.SpaceUser, err error)
	GetByID(spaceID, userID string) (user spaceapimodels.SpaceUser, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceUserStore: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceUserStore spaceusersstore.Provider
}

func (i impl) GetByID(spaceID, userID string) (user spaceapimodels.SpaceUser, err error) {
	userDB, err := i.spaceUserStore.GetByID(spaceID, userID)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка поиска пользователя")
		return spaceapimodels.SpaceUser{}, err
	}
	if userDB == nil {
		return spaceapimodels.SpaceUser{}, errors.New("пользователь не найден")
	}
	return userDB.ToModel(), nil
}

func (i impl) CreateUser(spaceID string, request spaceapimodels.CreateUser) (id string, err error) {
	userExist, err := i.spaceUserStore.ExistByEmail(request.Email)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("ошибка проверки уже существующего пользователя space")
		return "", err
	}
	if userExist {
		return "", errors.New("пользователь с такой почтой уже существует")
	}
	rec := dbmodels.SpaceUser{
		Password:         authutils.GetPasswordHash(request.Password),
		FirstName:        request.FirstName,
		LastName:         request.LastName,
		Email:            request.Email,
		PhoneNumber:      request.PhoneNumber,
		IsActive:         true,
		Status:           models.SpaceWorkingStatus,
		JobTitle:         request.JobTitle,
		HeadID:           request.HeadID,
		IsHRManager:      request.IsHRManager,
		EmploymentStatus: models.EmploymentPermanent,
		PushEnabled:      true,
		EmailEnabled:     true,
	}
	rec.SpaceID = spaceID
	if request.IsAdmin {
		rec.Role = models.SpaceAdminRole
	} else if request.IsHRManager {
		rec.Role = models.SpaceHRRole
	} else {
		rec.Role = models.SpaceUserRole
	}
	if request.OnProbation {
		rec.EmploymentStatus = models.EmploymentProbation
		rec.ProbationEndDate = request.ProbationEndDate
	}
	id, err = i.spaceUserStore.Create(rec)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("ошибка создания пользователя space")
		return "", err
	}
	return id, nil
}

func (i impl) UpdateUser(spaceID, userID string, request spaceapimodels.UpdateUser) error {
	_, err := i.GetByID(spaceID, userID)
	if err != nil {
		return err
	}
	if request.HeadID != nil && *request.HeadID == userID {
		return errors.New("сотрудник не может быть руководителем самого себя")
	}
	role := models.SpaceUserRole
	if request.IsAdmin {
		role = models.SpaceAdminRole
	} else if request.IsHRManager {
		role = models.SpaceHRRole
	}
	updMap := map[string]interface{}{
		"first_name":         request.FirstName,
		"last_name":          request.LastName,
		"phone_number":       request.PhoneNumber,
		"role":               role,
		"job_title":          request.JobTitle,
		"head_id":            request.HeadID,
		"is_hr_manager":      request.IsHRManager,
		"probation_end_date": request.ProbationEndDate,
	}
	err = i.spaceUserStore.Update(spaceID, userID, updMap)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("ошибка обновления пользователя space")
		return err
	}
	return nil
}

// DismissUser - увольнение, запись остаётся для истории согласований
func (i impl) DismissUser(spaceID, userID string) error {
	updMap := map[string]interface{}{
		"is_active": false,
		"status":    models.SpaceDismissedStatus,
	}
	err := i.spaceUserStore.Update(spaceID, userID, updMap)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка увольнения пользователя space")
		return err
	}
	return nil
}

func (i impl) GetListUsers(spaceID string, filter spaceapimodels.UserFilter) (usersList []spaceapimodels.SpaceUser, err error) {
	list, err := i.spaceUserStore.GetList(spaceID, filter)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("ошибка получения списка пользователей space")
		return nil, err
	}
	for _, user := range list {
		usersList = append(usersList, user.ToModel())
	}
	return usersList, nil
}
