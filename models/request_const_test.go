package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestStatus(t *testing.T) {
	t.Run(`отправка на согласование из черновика и после доработки`, func(t *testing.T) {
		require.True(t, RequestStatusDraft.AllowSubmit())
		require.True(t, RequestStatusRevisionRequested.AllowSubmit())
		require.False(t, RequestStatusPending.AllowSubmit())
		require.False(t, RequestStatusApproved.AllowSubmit())
	})
	t.Run(`решение принимается только на согласовании`, func(t *testing.T) {
		require.True(t, RequestStatusPending.AllowDecision())
		require.False(t, RequestStatusDraft.AllowDecision())
		require.False(t, RequestStatusRejected.AllowDecision())
	})
	t.Run(`редактирование и отмена`, func(t *testing.T) {
		require.True(t, RequestStatusDraft.AllowEdit())
		require.True(t, RequestStatusRevisionRequested.AllowEdit())
		require.False(t, RequestStatusPending.AllowEdit())
		require.True(t, RequestStatusDraft.AllowCancel())
		require.True(t, RequestStatusPending.AllowCancel())
		require.False(t, RequestStatusCancelled.AllowCancel())
	})
	t.Run(`терминальные статусы`, func(t *testing.T) {
		for _, s := range []RequestStatus{RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled} {
			require.True(t, s.IsTerminal())
		}
		for _, s := range []RequestStatus{RequestStatusDraft, RequestStatusPending, RequestStatusRevisionRequested} {
			require.False(t, s.IsTerminal())
		}
	})
}
