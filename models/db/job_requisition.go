package dbmodels

import (
	"hr-platform-backend/models"
)

type JobRequisition struct {
	BaseSpaceModel
	ApprovalFields
	AuthorID       string     `gorm:"type:varchar(36);index"`
	Author         *SpaceUser `gorm:"foreignKey:AuthorID"`
	PositionName   string     `gorm:"type:varchar(255)"`
	DepartmentName string     `gorm:"type:varchar(255)"`
	Headcount      int
	Urgency        models.ReqUrgency `gorm:"type:varchar(100)"`
	Requirements   string
	ShortInfo      string
}

func (r JobRequisition) GetRequesterID() string {
	return r.AuthorID
}

func (r JobRequisition) GetTitle() string {
	return r.PositionName
}
