package approvalchain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	spaceusersstore "hr-platform-backend/lib/space/users/store"
	"hr-platform-backend/lib/utils/apperror"
	"hr-platform-backend/models"
	spaceapimodels "hr-platform-backend/models/api/space"
	dbmodels "hr-platform-backend/models/db"
)

type fakeUsersStore struct {
	heads map[string]*dbmodels.SpaceUser
	hr    *dbmodels.SpaceUser
}

func (f *fakeUsersStore) Create(rec dbmodels.SpaceUser) (string, error) { return "", nil }
func (f *fakeUsersStore) Update(spaceID, userID string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeUsersStore) Delete(spaceID, userID string) error { return nil }
func (f *fakeUsersStore) GetList(spaceID string, filter spaceapimodels.UserFilter) ([]dbmodels.SpaceUser, error) {
	return nil, nil
}
func (f *fakeUsersStore) ExistByEmail(email string) (bool, error)                  { return false, nil }
func (f *fakeUsersStore) FindByEmail(email string) (*dbmodels.SpaceUser, error)    { return nil, nil }
func (f *fakeUsersStore) FindByID(userID string) (*dbmodels.SpaceUser, error)      { return nil, nil }
func (f *fakeUsersStore) GetByID(spaceID, userID string) (*dbmodels.SpaceUser, error) {
	return nil, nil
}
func (f *fakeUsersStore) GetSupervisor(spaceID, userID string) (*dbmodels.SpaceUser, error) {
	return f.heads[userID], nil
}
func (f *fakeUsersStore) FindHRManager(spaceID string) (*dbmodels.SpaceUser, error) {
	return f.hr, nil
}

func activeUser(id string) *dbmodels.SpaceUser {
	rec := dbmodels.SpaceUser{
		IsActive: true,
		Status:   models.SpaceWorkingStatus,
	}
	rec.ID = id
	return &rec
}

func dismissedUser(id string) *dbmodels.SpaceUser {
	rec := activeUser(id)
	rec.Status = models.SpaceDismissedStatus
	return rec
}

func newResolver(store spaceusersstore.Provider, maxDepth int, leaveHRFinal bool) impl {
	return impl{
		maxDepth:     maxDepth,
		leaveHRFinal: leaveHRFinal,
		usersStore:   func(tx *gorm.DB) spaceusersstore.Provider { return store },
	}
}

func TestResolve(t *testing.T) {
	spaceID := "space-1"
	t.Run(`цепочка строится по структуре подчинения с нумерацией этапов`, func(t *testing.T) {
		store := &fakeUsersStore{heads: map[string]*dbmodels.SpaceUser{
			"user-1": activeUser("head-1"),
			"head-1": activeUser("head-2"),
		}}
		r := newResolver(store, 3, false)
		chain, err := r.Resolve(nil, spaceID, "user-1", models.RequestTypeOvertime)
		require.Nil(t, err)
		require.Equal(t, []ChainLink{
			{Level: 1, ApproverID: "head-1"},
			{Level: 2, ApproverID: "head-2"},
		}, chain)
	})
	t.Run(`глубина цепочки ограничена настройкой`, func(t *testing.T) {
		store := &fakeUsersStore{heads: map[string]*dbmodels.SpaceUser{
			"user-1": activeUser("head-1"),
			"head-1": activeUser("head-2"),
			"head-2": activeUser("head-3"),
			"head-3": activeUser("head-4"),
		}}
		r := newResolver(store, 2, false)
		chain, err := r.Resolve(nil, spaceID, "user-1", models.RequestTypeOvertime)
		require.Nil(t, err)
		require.Len(t, chain, 2)
		require.Equal(t, "head-2", chain[1].ApproverID)
	})
	t.Run(`цикл в структуре подчинения - ошибка разрешения цепочки`, func(t *testing.T) {
		store := &fakeUsersStore{heads: map[string]*dbmodels.SpaceUser{
			"user-1": activeUser("head-1"),
			"head-1": activeUser("user-1"),
		}}
		r := newResolver(store, 3, false)
		_, err := r.Resolve(nil, spaceID, "user-1", models.RequestTypeOvertime)
		require.NotNil(t, err)
		require.True(t, apperror.IsKind(err, apperror.KindResolution))
		require.Equal(t, "обнаружен цикл в структуре подчинения", err.Error())
	})
	t.Run(`уволенный руководитель пропускается, цепочка идёт выше`, func(t *testing.T) {
		store := &fakeUsersStore{heads: map[string]*dbmodels.SpaceUser{
			"user-1": dismissedUser("head-1"),
			"head-1": activeUser("head-2"),
		}}
		r := newResolver(store, 3, false)
		chain, err := r.Resolve(nil, spaceID, "user-1", models.RequestTypeOvertime)
		require.Nil(t, err)
		require.Equal(t, []ChainLink{{Level: 1, ApproverID: "head-2"}}, chain)
	})
	t.Run(`для оценки испытательного срока HR менеджер завершает цепочку`, func(t *testing.T) {
		store := &fakeUsersStore{
			heads: map[string]*dbmodels.SpaceUser{"user-1": activeUser("head-1")},
			hr:    activeUser("hr-1"),
		}
		r := newResolver(store, 3, false)
		chain, err := r.Resolve(nil, spaceID, "user-1", models.RequestTypeEvaluation)
		require.Nil(t, err)
		require.Equal(t, []ChainLink{
			{Level: 1, ApproverID: "head-1"},
			{Level: 2, ApproverID: "hr-1"},
		}, chain)
	})
	t.Run(`для отпуска HR менеджер добавляется по настройке пространства`, func(t *testing.T) {
		store := &fakeUsersStore{
			heads: map[string]*dbmodels.SpaceUser{"user-1": activeUser("head-1")},
			hr:    activeUser("hr-1"),
		}
		withHR := newResolver(store, 3, true)
		chain, err := withHR.Resolve(nil, spaceID, "user-1", models.RequestTypeLeave)
		require.Nil(t, err)
		require.Len(t, chain, 2)
		require.Equal(t, "hr-1", chain[1].ApproverID)

		withoutHR := newResolver(store, 3, false)
		chain, err = withoutHR.Resolve(nil, spaceID, "user-1", models.RequestTypeLeave)
		require.Nil(t, err)
		require.Equal(t, []ChainLink{{Level: 1, ApproverID: "head-1"}}, chain)
	})
	t.Run(`HR менеджер не дублируется, если уже есть в цепочке`, func(t *testing.T) {
		store := &fakeUsersStore{
			heads: map[string]*dbmodels.SpaceUser{"user-1": activeUser("hr-1")},
			hr:    activeUser("hr-1"),
		}
		r := newResolver(store, 3, true)
		chain, err := r.Resolve(nil, spaceID, "user-1", models.RequestTypeLeave)
		require.Nil(t, err)
		require.Equal(t, []ChainLink{{Level: 1, ApproverID: "hr-1"}}, chain)
	})
	t.Run(`HR менеджер не согласует собственную заявку`, func(t *testing.T) {
		store := &fakeUsersStore{
			heads: map[string]*dbmodels.SpaceUser{"hr-1": activeUser("head-1")},
			hr:    activeUser("hr-1"),
		}
		r := newResolver(store, 3, false)
		chain, err := r.Resolve(nil, spaceID, "hr-1", models.RequestTypeEvaluation)
		require.Nil(t, err)
		require.Equal(t, []ChainLink{{Level: 1, ApproverID: "head-1"}}, chain)
	})
	t.Run(`пустая цепочка - ошибка разрешения`, func(t *testing.T) {
		store := &fakeUsersStore{heads: map[string]*dbmodels.SpaceUser{}}
		r := newResolver(store, 3, false)
		_, err := r.Resolve(nil, spaceID, "user-1", models.RequestTypeOvertime)
		require.NotNil(t, err)
		require.True(t, apperror.IsKind(err, apperror.KindResolution))
		require.Equal(t, "не найден ни один согласующий для заявки", err.Error())
	})
}
