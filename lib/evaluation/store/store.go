package evaluationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	evaluationapimodels "hr-platform-backend/models/api/evaluation"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ProbationEvaluation) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	GetByID(spaceID, id string) (rec *dbmodels.ProbationEvaluation, err error)
	GetByIDForUpdate(spaceID, id string) (rec *dbmodels.ProbationEvaluation, err error)
	List(spaceID, authorID string, filter evaluationapimodels.EvaluationFilter) (list []dbmodels.ProbationEvaluation, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ProbationEvaluation) (id string, err error) {
	err = i.db.
		Omit("Author", "Employee").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.ProbationEvaluation{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.ProbationEvaluation{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.ProbationEvaluation, error) {
	rec := dbmodels.ProbationEvaluation{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Author").
		Preload("Employee").
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

func (i impl) GetByIDForUpdate(spaceID, id string) (*dbmodels.ProbationEvaluation, error) {
	rec := dbmodels.ProbationEvaluation{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
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

func (i impl) List(spaceID, authorID string, filter evaluationapimodels.EvaluationFilter) (list []dbmodels.ProbationEvaluation, rowCount int64, err error) {
	list = []dbmodels.ProbationEvaluation{}
	tx := i.db.Model(dbmodels.ProbationEvaluation{}).
		Where("space_id = ?", spaceID)
	if authorID != "" {
		tx = tx.Where("author_id = ?", authorID)
	}
	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN (?)", filter.Statuses)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Limit(limit).
		Offset((page - 1) * limit).
		Order("created_at DESC").
		Preload("Author").
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
