package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	approvalhandler "hr-platform-backend/lib/approval"
	evaluationhandler "hr-platform-backend/lib/evaluation"
	"hr-platform-backend/middleware"
	"hr-platform-backend/models"
	apimodels "hr-platform-backend/models/api"
	approvalapimodels "hr-platform-backend/models/api/approval"
	evaluationapimodels "hr-platform-backend/models/api/evaluation"
)

type evaluationApiController struct {
	controllers.BaseAPIController
}

func InitEvaluationApiRouters(app *fiber.App) {
	controller := evaluationApiController{}
	app.Route("evaluation", func(router fiber.Router) {
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
			idRoute.Post("request_changes", controller.requestChanges)
			idRoute.Get("approvals", controller.approvals)
			idRoute.Get("history", controller.history)
		})
	})
}

// @Summary Создать оценку испытательного срока
// @Tags Оценка испытательного срока
// @Description Создать оценку, сотрудник должен находиться на испытательном сроке
// @Param   Authorization		header	string											true	"Authorization token"
// @Param	body				body	evaluationapimodels.ProbationEvaluationData		true	"request body"
// @Success 201 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation [post]
func (c *evaluationApiController) create(ctx *fiber.Ctx) error {
	var payload evaluationapimodels.ProbationEvaluationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := evaluationhandler.Instance.Create(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания оценки испытательного срока")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary Список оценок испытательного срока
// @Tags Оценка испытательного срока
// @Description Список оценок текущего руководителя, для HR - все оценки организации
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body				body	evaluationapimodels.EvaluationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]evaluationapimodels.ProbationEvaluationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/list [post]
func (c *evaluationApiController) list(ctx *fiber.Ctx) error {
	var payload evaluationapimodels.EvaluationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	authorID := middleware.GetUserID(ctx)
	if middleware.GetSpaceRole(ctx) != models.SpaceUserRole {
		authorID = ""
	}
	list, rowCount, err := evaluationhandler.Instance.List(spaceID, authorID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка оценок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Карточка оценки испытательного срока
// @Tags Оценка испытательного срока
// @Description Карточка оценки с цепочкой согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.ProbationEvaluationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id} [get]
func (c *evaluationApiController) getByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, err := evaluationhandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оценки испытательного срока")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Изменить оценку испытательного срока
// @Tags Оценка испытательного срока
// @Description Изменить оценку, доступно автору для черновика и оценки на доработке
// @Param   Authorization		header	string											true	"Authorization token"
// @Param   id          		path    string  										true    "rec ID"
// @Param	body				body	evaluationapimodels.ProbationEvaluationData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id} [put]
func (c *evaluationApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload evaluationapimodels.ProbationEvaluationData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = evaluationhandler.Instance.Update(spaceID, userID, id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения оценки испытательного срока")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить черновик оценки
// @Tags Оценка испытательного срока
// @Description Удалить черновик оценки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id} [delete]
func (c *evaluationApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = evaluationhandler.Instance.Delete(spaceID, userID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления оценки испытательного срока")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправить оценку на согласование
// @Tags Оценка испытательного срока
// @Description Отправить оценку на согласование
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id}/submit [post]
func (c *evaluationApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalhandler.Instance.Submit(spaceID, models.RequestTypeEvaluation, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки оценки на согласование")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать оценку
// @Tags Оценка испытательного срока
// @Description Согласовать текущий этап, при финальном согласовании с рекомендацией сотрудник переводится в штат
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.DecisionData	false	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id}/approve [post]
func (c *evaluationApiController) approve(ctx *fiber.Ctx) error {
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
	err = approvalhandler.Instance.Approve(spaceID, models.RequestTypeEvaluation, id, userID, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить оценку
// @Tags Оценка испытательного срока
// @Description Отклонить оценку
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id}/reject [post]
func (c *evaluationApiController) reject(ctx *fiber.Ctx) error {
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
	err = approvalhandler.Instance.Reject(spaceID, models.RequestTypeEvaluation, id, userID, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отменить оценку
// @Tags Оценка испытательного срока
// @Description Отменить оценку, доступно автору до финального решения
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.CancelData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id}/cancel [post]
func (c *evaluationApiController) cancel(ctx *fiber.Ctx) error {
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
	err = approvalhandler.Instance.Cancel(spaceID, models.RequestTypeEvaluation, id, userID, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Вернуть оценку на доработку
// @Tags Оценка испытательного срока
// @Description Вернуть оценку автору на доработку, автор может изменить её и отправить повторно
// @Param   Authorization		header	string							true	"Authorization token"
// @Param   id          		path    string  						true    "rec ID"
// @Param	body				body	approvalapimodels.RevisionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id}/request_changes [post]
func (c *evaluationApiController) requestChanges(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.RevisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = approvalhandler.Instance.RequestRevision(spaceID, models.RequestTypeEvaluation, id, userID, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки оценки на доработку")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Цепочка согласования оценки
// @Tags Оценка испытательного срока
// @Description Цепочка согласования текущего круга
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id}/approvals [get]
func (c *evaluationApiController) approvals(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := approvalhandler.Instance.ListApprovals(spaceID, models.RequestTypeEvaluation, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения цепочки согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary История решений по оценке
// @Tags Оценка испытательного срока
// @Description История решений по всем кругам согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/evaluation/{id}/history [get]
func (c *evaluationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := approvalhandler.Instance.History(spaceID, models.RequestTypeEvaluation, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
