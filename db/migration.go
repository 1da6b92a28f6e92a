package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "hr-platform-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Space{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Space")
	}
	if err := DB.AutoMigrate(&dbmodels.SpaceUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SpaceUser")
	}
	if err := DB.AutoMigrate(&dbmodels.SpacePushSetting{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SpacePushSetting")
	}
	if err := DB.AutoMigrate(&dbmodels.LeaveType{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры LeaveType")
	}
	if err := DB.AutoMigrate(&dbmodels.LeaveBalance{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры LeaveBalance")
	}
	if err := DB.AutoMigrate(&dbmodels.LeaveApplication{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры LeaveApplication")
	}
	if err := DB.AutoMigrate(&dbmodels.OvertimeRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры OvertimeRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.JobRequisition{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры JobRequisition")
	}
	if err := DB.AutoMigrate(&dbmodels.ProbationEvaluation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ProbationEvaluation")
	}
	if err := DB.AutoMigrate(&dbmodels.Approval{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Approval")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApprovalHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.NotificationOutbox{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NotificationOutbox")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
