package notificationworker

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	baseworker "hr-platform-backend/lib/utils/base-worker"
	dbmodels "hr-platform-backend/models/db"
)

type fakeOutboxStore struct {
	pending []dbmodels.NotificationOutbox
	sent    []string
	retried []string
	failed  []string
}

func (f *fakeOutboxStore) Create(rec dbmodels.NotificationOutbox) error { return nil }
func (f *fakeOutboxStore) ListPending(limit int) ([]dbmodels.NotificationOutbox, error) {
	return f.pending, nil
}
func (f *fakeOutboxStore) MarkSent(id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutboxStore) MarkRetry(id string, attempts int, lastError string) error {
	f.retried = append(f.retried, id)
	return nil
}
func (f *fakeOutboxStore) MarkFailed(id string, attempts int, lastError string) error {
	f.failed = append(f.failed, id)
	return nil
}

func outboxRec(id string, attempts int, channels ...string) dbmodels.NotificationOutbox {
	rec := dbmodels.NotificationOutbox{
		UserID:   "user-1",
		Title:    "Заявка ожидает согласования",
		Channels: channels,
		Status:   dbmodels.OutboxPending,
		Attempts: attempts,
	}
	rec.ID = id
	return rec
}

func TestOutboxDispatch(t *testing.T) {
	newWorker := func(store *fakeOutboxStore, systemErr, emailErr error) (impl, *[]string) {
		sentSystem := []string{}
		w := impl{
			BaseImpl:    *baseworker.NewInstance("NotificationOutboxWorker", 0, time.Minute),
			outboxStore: store,
			batchSize:   10,
			maxAttempts: 3,
			sendSystem: func(rec dbmodels.NotificationOutbox) error {
				if systemErr != nil {
					return systemErr
				}
				sentSystem = append(sentSystem, rec.ID)
				return nil
			},
			sendEmail: func(rec dbmodels.NotificationOutbox) error { return emailErr },
		}
		return w, &sentSystem
	}
	t.Run(`доставленное уведомление отмечается отправленным`, func(t *testing.T) {
		store := &fakeOutboxStore{pending: []dbmodels.NotificationOutbox{
			outboxRec("outbox-1", 0, dbmodels.ChannelSystem),
			outboxRec("outbox-2", 0, dbmodels.ChannelSystem),
		}}
		w, sentSystem := newWorker(store, nil, nil)
		w.handle(context.Background())
		require.Equal(t, []string{"outbox-1", "outbox-2"}, *sentSystem)
		require.Equal(t, []string{"outbox-1", "outbox-2"}, store.sent)
		require.Empty(t, store.retried)
	})
	t.Run(`ошибка доставки - повтор до исчерпания попыток`, func(t *testing.T) {
		store := &fakeOutboxStore{pending: []dbmodels.NotificationOutbox{
			outboxRec("outbox-1", 0, dbmodels.ChannelEmail),
			outboxRec("outbox-2", 2, dbmodels.ChannelEmail),
		}}
		w, _ := newWorker(store, nil, errors.New("smtp: connection refused"))
		w.handle(context.Background())
		require.Empty(t, store.sent)
		require.Equal(t, []string{"outbox-1"}, store.retried)
		require.Equal(t, []string{"outbox-2"}, store.failed)
	})
	t.Run(`рассылаются только каналы уведомления`, func(t *testing.T) {
		store := &fakeOutboxStore{pending: []dbmodels.NotificationOutbox{
			outboxRec("outbox-1", 0, dbmodels.ChannelEmail),
		}}
		w, sentSystem := newWorker(store, nil, nil)
		w.handle(context.Background())
		require.Empty(t, *sentSystem)
		require.Equal(t, []string{"outbox-1"}, store.sent)
	})
	t.Run(`отменённый контекст прерывает рассылку пачки`, func(t *testing.T) {
		store := &fakeOutboxStore{pending: []dbmodels.NotificationOutbox{
			outboxRec("outbox-1", 0, dbmodels.ChannelSystem),
		}}
		w, sentSystem := newWorker(store, nil, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w.handle(ctx)
		require.Empty(t, *sentSystem)
		require.Empty(t, store.sent)
	})
}
