package dbmodels

import (
	"hr-platform-backend/models"
	spaceapimodels "hr-platform-backend/models/api/space"
)

type SpacePushSetting struct {
	BaseSpaceModel
	SpaceUserID string                      `gorm:"type:varchar(36);uniqueIndex:idx_user_code"`
	Code        models.SpacePushSettingCode `gorm:"type:varchar(255);uniqueIndex:idx_user_code"`
	SystemValue *bool
	EmailValue  *bool
}

func (r SpacePushSetting) ToModelView() spaceapimodels.PushSettingView {
	return spaceapimodels.PushSettingView{
		Name: models.PushCodeMap[r.Code].Name,
		PushSettingData: spaceapimodels.PushSettingData{
			Code: r.Code,
			Value: spaceapimodels.PushSettingValue{
				System: r.SystemValue,
				Email:  r.EmailValue,
			},
		},
	}
}
