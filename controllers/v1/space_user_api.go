package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	spaceusershander "hr-platform-backend/lib/space/users/hander"
	"hr-platform-backend/middleware"
	apimodels "hr-platform-backend/models/api"
	spaceapimodels "hr-platform-backend/models/api/space"
)

type spaceUserController struct {
	controllers.BaseAPIController
}

func InitSpaceUserRouters(app *fiber.App) {
	controller := spaceUserController{}
	app.Route("users", func(usersRootRoute fiber.Router) {
		usersRootRoute.Use(middleware.AuthorizationRequired())
		usersRootRoute.Use(middleware.SpaceAdminRequired())
		usersRootRoute.Post("", controller.CreateUser)
		usersRootRoute.Post("list", controller.ListUsers)
		usersRootRoute.Route(":id", func(usersIDRoute fiber.Router) {
			usersIDRoute.Delete("", controller.DismissUser)
			usersIDRoute.Put("", controller.UpdateUser)
			usersIDRoute.Get("", controller.GetUserByID)
		})
	})
}

// @Summary Создать нового сотрудника
// @Tags Сотрудники space
// @Description Создать нового сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		spaceapimodels.CreateUser	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users [post]
func (c *spaceUserController) CreateUser(ctx *fiber.Ctx) error {
	var payload spaceapimodels.CreateUser
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := spaceusershander.Instance.CreateUser(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сотрудника")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Уволить сотрудника
// @Tags Сотрудники space
// @Description Уволить сотрудника, запись сохраняется для истории
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"space user ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id} [delete]
func (c *spaceUserController) DismissUser(ctx *fiber.Ctx) error {
	userID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = spaceusershander.Instance.DismissUser(spaceID, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка увольнения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Обновить данные сотрудника
// @Tags Сотрудники space
// @Description Обновить данные сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"space user ID"
// @Param	body				body		spaceapimodels.UpdateUser	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id} [put]
func (c *spaceUserController) UpdateUser(ctx *fiber.Ctx) error {
	userID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload spaceapimodels.UpdateUser
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = spaceusershander.Instance.UpdateUser(spaceID, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления данных сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список сотрудников
// @Tags Сотрудники space
// @Description Список сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		spaceapimodels.UserFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]spaceapimodels.SpaceUser}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/list [post]
func (c *spaceUserController) ListUsers(ctx *fiber.Ctx) error {
	var payload spaceapimodels.UserFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := spaceusershander.Instance.GetListUsers(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Данные сотрудника
// @Tags Сотрудники space
// @Description Данные сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 				path 		string  true 	"space user ID"
// @Success 200 {object} apimodels.Response{data=spaceapimodels.SpaceUser}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id} [get]
func (c *spaceUserController) GetUserByID(ctx *fiber.Ctx) error {
	userID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	user, err := spaceusershander.Instance.GetByID(spaceID, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения данных сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(user))
}
