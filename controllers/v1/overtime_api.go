package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	approvalhandler "hr-platform-backend/lib/approval"
	overtimehandler "hr-platform-backend/lib/overtime"
	"hr-platform-backend/middleware"
	"hr-platform-backend/models"
	apimodels "hr-platform-backend/models/api"
	approvalapimodels "hr-platform-backend/models/api/approval"
	overtimeapimodels "hr-platform-backend/models/api/overtime"
)

type overtimeApiController struct {
	controllers.BaseAPIController
}

func InitOvertimeApiRouters(app *fiber.App) {
	controller := overtimeApiController{}
	app.Route("overtime", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getByID)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Post("submit", controller.submit)
			idRoute.Post("approve", controller.approve)
			idRoute.Post("reject", controller.reject)
			idRoute.Post("cancel", controller.cancel)
			idRoute.Get("approvals", controller.approvals)
			idRoute.Get("history", controller.history)
		})
	})
}

// @Summary Создать заявку на сверхурочную работу
// @Tags Сверхурочная работа
// @Description Создать заявку на сверхурочную работу
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body				body	overtimeapimodels.OvertimeRequestData	true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime [post]
func (c *overtimeApiController) create(ctx *fiber.Ctx) error {
	var payload overtimeapimodels.OvertimeRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := overtimehandler.Instance.Create(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на сверхурочную работу")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Список заявок на сверхурочную работу
// @Tags Сверхурочная работа
// @Description Список заявок текущего сотрудника, для HR - все заявки организации
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body				body	overtimeapimodels.OvertimeFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]overtimeapimodels.OvertimeRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/list [post]
func (c *overtimeApiController) list(ctx *fiber.Ctx) error {
	var payload overtimeapimodels.OvertimeFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	employeeID := middleware.GetUserID(ctx)
	if middleware.GetSpaceRole(ctx) != models.SpaceUserRole {
		employeeID = ""
	}
	list, rowCount, err := overtimehandler.Instance.List(spaceID, employeeID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок на сверхурочную работу")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Карточка заявки на сверхурочную работу
// @Tags Сверхурочная работа
// @Description Карточка заявки с цепочкой согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=overtimeapimodels.OvertimeRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id} [get]
func (c *overtimeApiController) getByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, err := overtimehandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки на сверхурочную работу")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Изменить заявку на сверхурочную работу
// @Tags Сверхурочная работа
// @Description Изменить заявку, доступно автору для черновика
// @Param   Authorization		header	string									true	"Authorization token"
// @Param   id          		path    string  								true    "rec ID"
// @Param	body				body	overtimeapimodels.OvertimeRequestData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id} [put]
func (c *overtimeApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload overtimeapimodels.OvertimeRequestData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = overtimehandler.Instance.Update(spaceID, userID, id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения заявки на сверхурочную работу")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить черновик заявки
// @Tags Сверхурочная работа
// @Description Удалить черновик заявки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id} [delete]
func (c *overtimeApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = overtimehandler.Instance.Delete(spaceID, userID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки на сверхурочную работу")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправить заявку на согласование
// @Tags Сверхурочная работа
// @Description Отправить заявку на согласование
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id}/submit [post]
func (c *overtimeApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalhandler.Instance.Submit(spaceID, models.RequestTypeOvertime, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки заявки на согласование")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать заявку
// @Tags Сверхурочная работа
// @Description Согласовать текущий этап заявки
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.DecisionData	false	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id}/approve [post]
func (c *overtimeApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.DecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalhandler.Instance.Approve(spaceID, models.RequestTypeOvertime, id, userID, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить заявку
// @Tags Сверхурочная работа
// @Description Отклонить заявку
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id}/reject [post]
func (c *overtimeApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalhandler.Instance.Reject(spaceID, models.RequestTypeOvertime, id, userID, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отменить заявку
// @Tags Сверхурочная работа
// @Description Отменить заявку, доступно автору до финального решения
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.CancelData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id}/cancel [post]
func (c *overtimeApiController) cancel(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.CancelData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalhandler.Instance.Cancel(spaceID, models.RequestTypeOvertime, id, userID, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Цепочка согласования заявки
// @Tags Сверхурочная работа
// @Description Цепочка согласования текущего круга
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id}/approvals [get]
func (c *overtimeApiController) approvals(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := approvalhandler.Instance.ListApprovals(spaceID, models.RequestTypeOvertime, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения цепочки согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary История решений по заявке
// @Tags Сверхурочная работа
// @Description История решений по всем кругам согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/overtime/{id}/history [get]
func (c *overtimeApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := approvalhandler.Instance.History(spaceID, models.RequestTypeOvertime, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
