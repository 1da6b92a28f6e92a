package spaceauthhandler

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"hr-platform-backend/config"
	"hr-platform-backend/db"
	spaceusersstore "hr-platform-backend/lib/space/users/store"
	"hr-platform-backend/lib/utils/apperror"
	authutils "hr-platform-backend/lib/utils/auth-utils"
	authapimodels "hr-platform-backend/models/api/auth"
)

type Provider interface {
	Login(request authapimodels.LoginRequest) (resp authapimodels.LoginResponse, err error)
	Refresh(refreshToken string) (resp authapimodels.LoginResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceUsersStore spaceusersstore.Provider
}

func (i impl) Login(request authapimodels.LoginRequest) (resp authapimodels.LoginResponse, err error) {
	user, err := i.spaceUsersStore.FindByEmail(request.Email)
	if err != nil {
		log.WithField("email", request.Email).WithError(err).Error("ошибка поиска пользователя при входе")
		return resp, err
	}
	if user == nil || !user.IsActive {
		return resp, apperror.Authorization("неверная почта или пароль")
	}
	if user.Password != authutils.GetPasswordHash(request.Password) {
		return resp, apperror.Authorization("неверная почта или пароль")
	}
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.SpaceID, user.Role.IsSpaceAdmin(), user.Role)
	if err != nil {
		return resp, err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return resp, err
	}
	updMap := map[string]interface{}{
		"last_login": time.Now(),
	}
	if err = i.spaceUsersStore.Update(user.SpaceID, user.ID, updMap); err != nil {
		log.WithField("user_id", user.ID).WithError(err).Error("ошибка обновления времени входа")
	}
	return authapimodels.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (i impl) Refresh(refreshToken string) (resp authapimodels.LoginResponse, err error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return resp, apperror.Authorization("недействительный refresh токен")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return resp, apperror.Authorization("недействительный refresh токен")
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return resp, apperror.Authorization("недействительный refresh токен")
	}
	user, err := i.spaceUsersStore.FindByID(userID)
	if err != nil {
		return resp, err
	}
	if user == nil || !user.IsActive {
		return resp, apperror.Authorization("пользователь не найден или заблокирован")
	}
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.SpaceID, user.Role.IsSpaceAdmin(), user.Role)
	if err != nil {
		return resp, err
	}
	refreshToken, err = authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return resp, err
	}
	return authapimodels.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
