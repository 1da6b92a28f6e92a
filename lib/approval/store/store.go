package approvalstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hr-platform-backend/models"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	CreateBatch(recs []dbmodels.Approval) error
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetCurrent(spaceID string, requestType models.ApprovalRequestType, requestID string, chainSeq, level int) (rec *dbmodels.Approval, err error)
	ListChain(spaceID string, requestType models.ApprovalRequestType, requestID string, chainSeq int) (list []dbmodels.Approval, err error)
	ListPendingByApprover(spaceID, approverID string) (list []dbmodels.Approval, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateBatch(recs []dbmodels.Approval) error {
	if len(recs) == 0 {
		return nil
	}
	err := i.db.
		Omit("Approver").
		Create(&recs).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Approval{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// GetCurrent - запись согласования текущего этапа активной цепочки
func (i impl) GetCurrent(spaceID string, requestType models.ApprovalRequestType, requestID string, chainSeq, level int) (*dbmodels.Approval, error) {
	rec := dbmodels.Approval{}
	err := i.db.
		Where("space_id = ?", spaceID).
		Where("request_type = ?", requestType).
		Where("request_id = ?", requestID).
		Where("chain_seq = ?", chainSeq).
		Where("level = ?", level).
		Preload("Approver").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListChain(spaceID string, requestType models.ApprovalRequestType, requestID string, chainSeq int) (list []dbmodels.Approval, err error) {
	list = []dbmodels.Approval{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Where("request_type = ?", requestType).
		Where("request_id = ?", requestID).
		Order("level ASC").
		Preload("Approver")
	if chainSeq > 0 {
		tx = tx.Where("chain_seq = ?", chainSeq)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// ListPendingByApprover - этапы, ожидающие решения указанного согласующего прямо
// сейчас. Отбор по признаку активности: нерешённые записи будущих этапов,
// отклонённых и отменённых заявок и вытесненных доработкой цепочек не попадают
func (i impl) ListPendingByApprover(spaceID, approverID string) (list []dbmodels.Approval, err error) {
	list = []dbmodels.Approval{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("approver_id = ?", approverID).
		Where("decision = ?", models.DecisionPending).
		Where("is_active = ?", true).
		Order("created_at ASC").
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
