package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	approvalhandler "hr-platform-backend/lib/approval"
	"hr-platform-backend/middleware"
	apimodels "hr-platform-backend/models/api"
)

type approvalApiController struct {
	controllers.BaseAPIController
}

func InitApprovalApiRouters(app *fiber.App) {
	controller := approvalApiController{}
	app.Route("approvals", func(router fiber.Router) {
		router.Get("pending", controller.pending)
	})
}

// @Summary Входящие согласования
// @Tags Согласование
// @Description Этапы согласования, ожидающие решения текущего пользователя
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/approvals/pending [get]
func (c *approvalApiController) pending(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	list, err := approvalhandler.Instance.ListPendingForApprover(spaceID, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения входящих согласований")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
