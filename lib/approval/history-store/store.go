package approvalhistorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hr-platform-backend/models"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApprovalHistory) (id string, err error)
	List(spaceID string, requestType models.ApprovalRequestType, requestID string) (list []dbmodels.ApprovalHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalHistory) (id string, err error) {
	err = i.db.
		Omit("Approver").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(spaceID string, requestType models.ApprovalRequestType, requestID string) (list []dbmodels.ApprovalHistory, err error) {
	list = []dbmodels.ApprovalHistory{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("request_type = ?", requestType).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Preload("Approver").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
