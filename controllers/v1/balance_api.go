package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"hr-platform-backend/controllers"
	balancehandler "hr-platform-backend/lib/balance"
	"hr-platform-backend/middleware"
	apimodels "hr-platform-backend/models/api"
	balanceapimodels "hr-platform-backend/models/api/balance"
)

type balanceApiController struct {
	controllers.BaseAPIController
}

func InitBalanceApiRouters(app *fiber.App) {
	controller := balanceApiController{}
	app.Route("balance", func(router fiber.Router) {
		router.Get("my", controller.my)
		router.Get("list", middleware.HRRequired(), controller.list)
		router.Put("earned", middleware.HRRequired(), controller.setEarned)
		router.Put("export", middleware.HRRequired(), controller.export)
	})
}

// @Summary Остатки отпуска текущего сотрудника
// @Tags Остатки отпусков
// @Description Остатки отпуска текущего сотрудника, параметр year фильтрует по году
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   year           		query   int  	false   "год"
// @Success 200 {object} apimodels.Response{data=[]balanceapimodels.BalanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/balance/my [get]
func (c *balanceApiController) my(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	year := ctx.QueryInt("year")
	list, err := balancehandler.Instance.ListByEmployee(spaceID, userID, year)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения остатков отпуска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Остатки отпусков по организации
// @Tags Остатки отпусков
// @Description Остатки отпусков всех сотрудников организации
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   year           		query   int  	false   "год"
// @Success 200 {object} apimodels.Response{data=[]balanceapimodels.BalanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/balance/list [get]
func (c *balanceApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	year := ctx.QueryInt("year")
	list, err := balancehandler.Instance.ListBySpace(spaceID, year)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения остатков отпусков")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Начислить остаток отпуска
// @Tags Остатки отпусков
// @Description Установить начисленное количество дней по сотруднику, виду отпуска и году
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body				body	balanceapimodels.SetEarnedData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/balance/earned [put]
func (c *balanceApiController) setEarned(ctx *fiber.Ctx) error {
	var payload balanceapimodels.SetEarnedData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err := balancehandler.Instance.SetEarned(spaceID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка начисления остатка отпуска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Остатки отпусков. Выгрузить в Excel
// @Tags Остатки отпусков
// @Description Остатки отпусков. Выгрузить в Excel
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   year           		query   int  	false   "год"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/balance/export [put]
func (c *balanceApiController) export(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	year := ctx.QueryInt("year")
	data, err := balancehandler.Instance.ExportXLS(spaceID, year)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки остатков отпусков в Excel")
	}
	fileName := fmt.Sprintf("leave-balance-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
