package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	approvalhandler "hr-platform-backend/lib/approval"
	leavehandler "hr-platform-backend/lib/leave"
	"hr-platform-backend/middleware"
	"hr-platform-backend/models"
	apimodels "hr-platform-backend/models/api"
	approvalapimodels "hr-platform-backend/models/api/approval"
	leaveapimodels "hr-platform-backend/models/api/leave"
)

type leaveApiController struct {
	controllers.BaseAPIController
}

func InitLeaveApiRouters(app *fiber.App) {
	controller := leaveApiController{}
	app.Route("leave", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Put("export", middleware.HRRequired(), controller.export)
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

// @Summary Создать заявку на отпуск
// @Tags Заявки на отпуск
// @Description Создать заявку на отпуск, заявка создаётся в статусе черновика
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body				body	leaveapimodels.LeaveApplicationData		true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave [post]
func (c *leaveApiController) create(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveApplicationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := leavehandler.Instance.Create(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на отпуск")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Список заявок на отпуск
// @Tags Заявки на отпуск
// @Description Список заявок текущего сотрудника, для HR - все заявки организации
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body				body	leaveapimodels.LeaveFilter		true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]leaveapimodels.LeaveApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/list [post]
func (c *leaveApiController) list(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	employeeID := middleware.GetUserID(ctx)
	if middleware.GetSpaceRole(ctx) != models.SpaceUserRole {
		// админ и hr видят заявки всей организации
		employeeID = ""
	}
	list, rowCount, err := leavehandler.Instance.List(spaceID, employeeID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Реестр заявок на отпуск. Выгрузить в Excel
// @Tags Заявки на отпуск
// @Description Реестр заявок на отпуск. Выгрузить в Excel
// @Param   Authorization		header	string						true	"Authorization token"
// @Param	body				body	leaveapimodels.LeaveFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/export [put]
func (c *leaveApiController) export(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	data, err := leavehandler.Instance.ExportXLS(spaceID, payload.Statuses)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки реестра заявок в Excel")
	}
	fileName := fmt.Sprintf("leave-registry-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Карточка заявки на отпуск
// @Tags Заявки на отпуск
// @Description Карточка заявки с цепочкой согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id} [get]
func (c *leaveApiController) getByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, err := leavehandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Изменить заявку на отпуск
// @Tags Заявки на отпуск
// @Description Изменить заявку, доступно автору для черновика и заявки на доработке
// @Param   Authorization		header	string									true	"Authorization token"
// @Param   id          		path    string  								true    "rec ID"
// @Param	body				body	leaveapimodels.LeaveApplicationData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id} [put]
func (c *leaveApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload leaveapimodels.LeaveApplicationData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = leavehandler.Instance.Update(spaceID, userID, id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить черновик заявки
// @Tags Заявки на отпуск
// @Description Удалить черновик заявки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id} [delete]
func (c *leaveApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = leavehandler.Instance.Delete(spaceID, userID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправить заявку на согласование
// @Tags Заявки на отпуск
// @Description Отправить заявку на согласование, дни резервируются из остатка
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id}/submit [post]
func (c *leaveApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalhandler.Instance.Submit(spaceID, models.RequestTypeLeave, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки заявки на согласование")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать заявку
// @Tags Заявки на отпуск
// @Description Согласовать текущий этап заявки
// @Param   Authorization		header	string								true	"Authorization token"
// @Param   id          		path    string  							true    "rec ID"
// @Param	body				body	approvalapimodels.DecisionData		false	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id}/approve [post]
func (c *leaveApiController) approve(ctx *fiber.Ctx) error {
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
	err = approvalhandler.Instance.Approve(spaceID, models.RequestTypeLeave, id, userID, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить заявку
// @Tags Заявки на отпуск
// @Description Отклонить заявку, резерв дней возвращается в остаток
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id}/reject [post]
func (c *leaveApiController) reject(ctx *fiber.Ctx) error {
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
	err = approvalhandler.Instance.Reject(spaceID, models.RequestTypeLeave, id, userID, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отменить заявку
// @Tags Заявки на отпуск
// @Description Отменить заявку, доступно автору до финального решения
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.CancelData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id}/cancel [post]
func (c *leaveApiController) cancel(ctx *fiber.Ctx) error {
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
	err = approvalhandler.Instance.Cancel(spaceID, models.RequestTypeLeave, id, userID, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Цепочка согласования заявки
// @Tags Заявки на отпуск
// @Description Цепочка согласования текущего круга
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id}/approvals [get]
func (c *leaveApiController) approvals(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := approvalhandler.Instance.ListApprovals(spaceID, models.RequestTypeLeave, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения цепочки согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary История решений по заявке
// @Tags Заявки на отпуск
// @Description История решений по всем кругам согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave/{id}/history [get]
func (c *leaveApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := approvalhandler.Instance.History(spaceID, models.RequestTypeLeave, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
