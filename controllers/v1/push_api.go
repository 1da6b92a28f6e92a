package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	pushhandler "hr-platform-backend/lib/space/push/handler"
	"hr-platform-backend/middleware"
	apimodels "hr-platform-backend/models/api"
	spaceapimodels "hr-platform-backend/models/api/space"
)

type pushApiController struct {
	controllers.BaseAPIController
}

func InitPushApiRouters(app *fiber.App) {
	controller := pushApiController{}
	app.Route("push_settings", func(router fiber.Router) {
		router.Get("", controller.getSettings)
		router.Put("", controller.setSetting)
	})
}

// @Summary Настройки уведомлений текущего пользователя
// @Tags Уведомления
// @Description Настройки уведомлений текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]spaceapimodels.PushSettingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/push_settings [get]
func (c *pushApiController) getSettings(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	list, err := pushhandler.Instance.GetSettings(spaceID, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения настроек уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Изменить настройку уведомлений
// @Tags Уведомления
// @Description Изменить настройку уведомлений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		spaceapimodels.PushSettingData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/push_settings [put]
func (c *pushApiController) setSetting(ctx *fiber.Ctx) error {
	var payload spaceapimodels.PushSettingData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.Code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан код уведомления"))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err := pushhandler.Instance.SetSetting(spaceID, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения настройки уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
