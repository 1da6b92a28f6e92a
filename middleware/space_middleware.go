package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "hr-platform-backend/lib/utils/auth-utils"
	"hr-platform-backend/models"
	apimodels "hr-platform-backend/models/api"
)

func SpaceAdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetSpaceRole(ctx).IsSpaceAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func HRRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		role := GetSpaceRole(ctx)
		if !role.IsSpaceAdmin() && role != models.SpaceHRRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func GetUserSpace(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if space, exist := claims["space"]; exist {
		if stringSpace, ok := space.(string); ok {
			return stringSpace
		}
	}
	return ""
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if stringSub, ok := sub.(string); ok {
			return stringSub
		}
	}
	return ""
}

func GetSpaceRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}
