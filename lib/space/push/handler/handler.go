package pushhandler

import (
	log "github.com/sirupsen/logrus"

	"hr-platform-backend/db"
	pushsettingsstore "hr-platform-backend/lib/space/push/settings-store"
	spaceusersstore "hr-platform-backend/lib/space/users/store"
	"hr-platform-backend/models"
	spaceapimodels "hr-platform-backend/models/api/space"
	dbmodels "hr-platform-backend/models/db"
)

type Provider interface {
	GetSettings(spaceID, userID string) (list []spaceapimodels.PushSettingView, err error)
	SetSetting(spaceID, userID string, data spaceapimodels.PushSettingData) error
	EnabledChannels(spaceID, userID string, code models.SpacePushSettingCode) (channels []string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceUserStore:    spaceusersstore.NewInstance(db.DB),
		pushSettingsStore: pushsettingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceUserStore    spaceusersstore.Provider
	pushSettingsStore pushsettingsstore.Provider
}

func (i impl) GetSettings(spaceID, userID string) (list []spaceapimodels.PushSettingView, err error) {
	saved, err := i.pushSettingsStore.List(spaceID, userID)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка получения настроек уведомлений")
		return nil, err
	}
	savedByCode := map[models.SpacePushSettingCode]dbmodels.SpacePushSetting{}
	for _, rec := range saved {
		savedByCode[rec.Code] = rec
	}
	enabled := true
	for code, tpl := range models.PushCodeMap {
		if rec, exist := savedByCode[code]; exist {
			list = append(list, rec.ToModelView())
			continue
		}
		// настройка не сохранялась - уведомления по событию включены
		list = append(list, spaceapimodels.PushSettingView{
			Name: tpl.Name,
			PushSettingData: spaceapimodels.PushSettingData{
				Code: code,
				Value: spaceapimodels.PushSettingValue{
					System: &enabled,
					Email:  &enabled,
				},
			},
		})
	}
	return list, nil
}

func (i impl) SetSetting(spaceID, userID string, data spaceapimodels.PushSettingData) error {
	existing, err := i.pushSettingsStore.GetByCode(userID, data.Code)
	if err != nil {
		return err
	}
	if existing == nil {
		rec := dbmodels.SpacePushSetting{
			SpaceUserID: userID,
			Code:        data.Code,
			SystemValue: data.Value.System,
			EmailValue:  data.Value.Email,
		}
		rec.SpaceID = spaceID
		return i.pushSettingsStore.Save(rec)
	}
	updMap := map[string]interface{}{
		"system_value": data.Value.System,
		"email_value":  data.Value.Email,
	}
	return i.pushSettingsStore.Update(spaceID, userID, data.Code, updMap)
}

// EnabledChannels - каналы доставки с учётом личных настроек пользователя
func (i impl) EnabledChannels(spaceID, userID string, code models.SpacePushSettingCode) (channels []string, err error) {
	user, err := i.spaceUserStore.GetByID(spaceID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}
	systemEnabled := user.PushEnabled
	emailEnabled := user.EmailEnabled
	setting, err := i.pushSettingsStore.GetByCode(userID, code)
	if err != nil {
		return nil, err
	}
	if setting != nil {
		if setting.SystemValue != nil {
			systemEnabled = systemEnabled && *setting.SystemValue
		}
		if setting.EmailValue != nil {
			emailEnabled = emailEnabled && *setting.EmailValue
		}
	}
	if systemEnabled {
		channels = append(channels, dbmodels.ChannelSystem)
	}
	if emailEnabled && user.Email != "" {
		channels = append(channels, dbmodels.ChannelEmail)
	}
	return channels, nil
}
