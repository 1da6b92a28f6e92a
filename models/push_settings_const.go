package models

import "fmt"

type SpacePushSettingCode string

type PushTpl struct {
	Name  string
	Title string
	Msg   string
}

var PushCodeMap = map[SpacePushSettingCode]PushTpl{
	PushApprovalPending:  {Name: "Поступила заявка на согласование", Title: "Заявка ожидает вашего решения", Msg: "%v «%v» ожидает вашего согласования (этап %v из %v)."},
	PushRequestApproved:  {Name: "Согласование заявки", Title: "Заявка согласована", Msg: "%v «%v» была согласована."},
	PushRequestRejected:  {Name: "Отклонение заявки", Title: "Заявка отклонена", Msg: "%v «%v» была отклонена пользователем %v. Причина: %v."},
	PushRequestRevision:  {Name: "Заявка отправлена на доработку", Title: "Заявка на доработке", Msg: "%v «%v» отправлена на доработку пользователем %v."},
	PushRequestCancelled: {Name: "Отмена заявки", Title: "Заявка отменена", Msg: "%v «%v» отменена. Причина: %v."},
	PushRegularization:   {Name: "Завершение испытательного срока", Title: "Сотрудник переведён в штат", Msg: "Сотрудник %v успешно прошёл испытательный срок и переведён в штат."},
}

const (
	PushApprovalPending  SpacePushSettingCode = "PushApprovalPending"
	PushRequestApproved  SpacePushSettingCode = "PushRequestApproved"
	PushRequestRejected  SpacePushSettingCode = "PushRequestRejected"
	PushRequestRevision  SpacePushSettingCode = "PushRequestRevision"
	PushRequestCancelled SpacePushSettingCode = "PushRequestCancelled"
	PushRegularization   SpacePushSettingCode = "PushRegularization"
)

type NotificationData struct {
	Code  SpacePushSettingCode
	Msg   string
	Title string
}

func GetPushApprovalPending(requestType ApprovalRequestType, title string, level, total int) NotificationData {
	code := PushApprovalPending
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestType.ToHuman(), title, level, total),
	}
}

func GetPushRequestApproved(requestType ApprovalRequestType, title string) NotificationData {
	code := PushRequestApproved
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestType.ToHuman(), title),
	}
}

func GetPushRequestRejected(requestType ApprovalRequestType, title, userName, reason string) NotificationData {
	code := PushRequestRejected
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestType.ToHuman(), title, userName, reason),
	}
}

func GetPushRequestRevision(requestType ApprovalRequestType, title, userName string) NotificationData {
	code := PushRequestRevision
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestType.ToHuman(), title, userName),
	}
}

func GetPushRequestCancelled(requestType ApprovalRequestType, title, reason string) NotificationData {
	code := PushRequestCancelled
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, requestType.ToHuman(), title, reason),
	}
}

func GetPushRegularization(employeeFullName string) NotificationData {
	code := PushRegularization
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, employeeFullName),
	}
}
