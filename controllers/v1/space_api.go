package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	spacehandler "hr-platform-backend/lib/space/handler"
	"hr-platform-backend/middleware"
	apimodels "hr-platform-backend/models/api"
	spaceapimodels "hr-platform-backend/models/api/space"
)

type spaceApiController struct {
	controllers.BaseAPIController
}

func InitSpaceApiRouters(app *fiber.App) {
	controller := spaceApiController{}
	app.Route("space_reg", func(router fiber.Router) {
		router.Post("", controller.create)
	})
	app.Route("profile", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.get)
	})
}

// @Summary Регистрация организации
// @Tags Организация
// @Description Регистрация организации
// @Param	body				body		spaceapimodels.CreateSpace	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space_reg [post]
func (c *spaceApiController) create(ctx *fiber.Ctx) error {
	var payload spaceapimodels.CreateSpace
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := spacehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка регистрации организации")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Профиль организации
// @Tags Организация
// @Description Профиль организации
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=spaceapimodels.SpaceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile [get]
func (c *spaceApiController) get(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	resp, err := spacehandler.Instance.GetByID(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения профиля организации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
