package dict

import (
	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	leavetypeprovider "hr-platform-backend/lib/dicts/leave-type"
	"hr-platform-backend/middleware"
	apimodels "hr-platform-backend/models/api"
	dictapimodels "hr-platform-backend/models/api/dict"
)

type leaveTypeDictApiController struct {
	controllers.BaseAPIController
}

func InitLeaveTypeDictApiRouters(app *fiber.App) {
	controller := leaveTypeDictApiController{}
	app.Route("leave_type", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", middleware.HRRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.HRRequired(), controller.update)
			idRoute.Delete("", middleware.HRRequired(), controller.delete)
		})
	})
}

// @Summary Список видов отпуска
// @Tags Справочник. Виды отпуска
// @Description Список видов отпуска организации
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.LeaveTypeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/leave_type [get]
func (c *leaveTypeDictApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	list, err := leavetypeprovider.Instance.List(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка видов отпуска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение по ИД
// @Tags Справочник. Виды отпуска
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.LeaveTypeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/leave_type/{id} [get]
func (c *leaveTypeDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	resp, err := leavetypeprovider.Instance.Get(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения вида отпуска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создать вид отпуска
// @Tags Справочник. Виды отпуска
// @Description Создать вид отпуска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		dictapimodels.LeaveTypeData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/leave_type [post]
func (c *leaveTypeDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.LeaveTypeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := leavetypeprovider.Instance.Create(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания вида отпуска")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Изменить вид отпуска
// @Tags Справочник. Виды отпуска
// @Description Изменить вид отпуска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Param	body				body		dictapimodels.LeaveTypeData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/leave_type/{id} [put]
func (c *leaveTypeDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.LeaveTypeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = leavetypeprovider.Instance.Update(spaceID, id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения вида отпуска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить вид отпуска
// @Tags Справочник. Виды отпуска
// @Description Удалить вид отпуска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/leave_type/{id} [delete]
func (c *leaveTypeDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = leavetypeprovider.Instance.Delete(spaceID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вида отпуска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
