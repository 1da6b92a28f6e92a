package spaceapimodels

import (
	"hr-platform-backend/models"
)

type SpaceUserCommonData struct {
	Email            string  `json:"email"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	PhoneNumber      string  `json:"phone_number"`
	IsAdmin          bool    `json:"is_admin"`
	SpaceID          string  `json:"space_id"`
	Role             string  `json:"role"`
	JobTitle         string  `json:"job_title"`
	HeadID           *string `json:"head_id"`           // непосредственный руководитель
	IsHRManager      bool    `json:"is_hr_manager"`
	EmploymentStatus string  `json:"employment_status"`
}

type SpaceUser struct {
	SpaceUserCommonData
	ID string `json:"id"`
}

type PushSettingValue struct {
	System *bool `json:"system"`
	Email  *bool `json:"email"`
}

type PushSettingData struct {
	Code  models.SpacePushSettingCode `json:"code"`
	Value PushSettingValue            `json:"value"`
}

type PushSettingView struct {
	PushSettingData
	Name string `json:"name"`
}
