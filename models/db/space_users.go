package dbmodels

import (
	"fmt"
	"time"

	"hr-platform-backend/models"
	spaceapimodels "hr-platform-backend/models/api/space"
)

type SpaceUser struct {
	BaseModel
	SpaceID          string `gorm:"type:varchar(36);index"`
	Space            *Space
	Password         string `gorm:"type:varchar(128)"`
	FirstName        string `gorm:"type:varchar(150)"`
	LastName         string `gorm:"type:varchar(150)"`
	Email            string `gorm:"type:varchar(255);index"`
	PhoneNumber      string `gorm:"type:varchar(15)"`
	IsActive         bool
	Role             models.UserRole   `gorm:"type:varchar(50)"`
	Status           models.UserStatus `gorm:"type:varchar(20)"`
	JobTitle         string            `gorm:"type:varchar(255)"`
	HeadID           *string           `gorm:"type:varchar(36)"` // непосредственный руководитель
	Head             *SpaceUser        `gorm:"foreignKey:HeadID"`
	IsHRManager      bool
	EmploymentStatus models.EmploymentStatus `gorm:"type:varchar(20)"`
	ProbationEndDate *time.Time
	PushEnabled      bool
	EmailEnabled     bool
	LastLogin        time.Time
}

func (r SpaceUser) ToModel() spaceapimodels.SpaceUser {
	return spaceapimodels.SpaceUser{
		ID: r.ID,
		SpaceUserCommonData: spaceapimodels.SpaceUserCommonData{
			Email:            r.Email,
			FirstName:        r.FirstName,
			LastName:         r.LastName,
			PhoneNumber:      r.PhoneNumber,
			IsAdmin:          r.Role.IsSpaceAdmin(),
			SpaceID:          r.SpaceID,
			Role:             r.Role.ToHuman(),
			JobTitle:         r.JobTitle,
			HeadID:           r.HeadID,
			IsHRManager:      r.IsHRManager,
			EmploymentStatus: r.EmploymentStatus.ToHuman(),
		},
	}
}

func (r SpaceUser) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

// IsEligibleApprover - может ли пользователь выступать согласующим
func (r SpaceUser) IsEligibleApprover() bool {
	return r.IsActive && r.Status != models.SpaceDismissedStatus
}
