package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func TestRegisterForEvent(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	event := seedEvent(t, svcCtx, nil)

	reg, err := RegisterForEvent(ctx, svcCtx, user.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.RegistrationStatusRegistered, reg.Status)

	got, err := GetEvent(ctx, svcCtx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Participants)

	_, err = RegisterForEvent(ctx, svcCtx, user.ID, event.ID)
	assert.ErrorIs(t, err, errcode.ErrAlreadyRegistered)
}

func TestRegisterForEventRespectsCapacity(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	event := seedEvent(t, svcCtx, func(e *trbe.Event) { e.MaxParticipants = 1 })

	first := seedUser(t, svcCtx, nil)
	second := seedUser(t, svcCtx, func(u *trbe.User) {
		u.Email = "late@example.com"
		u.Username = "late"
	})

	_, err := RegisterForEvent(ctx, svcCtx, first.ID, event.ID)
	require.NoError(t, err)

	_, err = RegisterForEvent(ctx, svcCtx, second.ID, event.ID)
	assert.ErrorIs(t, err, errcode.ErrEventFull)

	// Cancelling frees the seat.
	require.NoError(t, CancelEventRegistration(ctx, svcCtx, first.ID, event.ID))

	_, err = RegisterForEvent(ctx, svcCtx, second.ID, event.ID)
	require.NoError(t, err)
}

func TestRegisterForEventClosedStates(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)

	cancelled := seedEvent(t, svcCtx, func(e *trbe.Event) { e.Status = trbe.EventStatusCancelled })
	_, err := RegisterForEvent(ctx, svcCtx, user.ID, cancelled.ID)
	assert.Error(t, err)

	finished := seedEvent(t, svcCtx, func(e *trbe.Event) { e.Status = trbe.EventStatusFinished })
	_, err = RegisterForEvent(ctx, svcCtx, user.ID, finished.ID)
	assert.Error(t, err)
}

func TestCancelledRegistrationCanComeBack(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	event := seedEvent(t, svcCtx, nil)

	_, err := RegisterForEvent(ctx, svcCtx, user.ID, event.ID)
	require.NoError(t, err)
	require.NoError(t, CancelEventRegistration(ctx, svcCtx, user.ID, event.ID))

	// A cancelled registration is as good as none.
	err = CancelEventRegistration(ctx, svcCtx, user.ID, event.ID)
	assert.ErrorIs(t, err, errcode.ErrNotRegistered)

	reg, err := RegisterForEvent(ctx, svcCtx, user.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.RegistrationStatusRegistered, reg.Status)

	got, err := GetEvent(ctx, svcCtx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Participants)
}

func TestConfirmAttendancePaysOnce(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	event := seedEvent(t, svcCtx, nil) // pays 30 tokens / 60 xp

	_, err := ConfirmAttendance(ctx, svcCtx, user.ID, event.ID)
	assert.ErrorIs(t, err, errcode.ErrNotRegistered)

	_, err = RegisterForEvent(ctx, svcCtx, user.ID, event.ID)
	require.NoError(t, err)

	reg, err := ConfirmAttendance(ctx, svcCtx, user.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.RegistrationStatusConfirmed, reg.Status)
	require.NotNil(t, reg.ConfirmedAt)

	got, err := GetUser(ctx, svcCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), got.Tokens)
	assert.Equal(t, int64(60), got.Experience)
	assert.Equal(t, 1, got.TotalEvents)

	// Second confirmation must not pay again.
	_, err = ConfirmAttendance(ctx, svcCtx, user.ID, event.ID)
	assert.Error(t, err)

	var count int64
	require.NoError(t, svcCtx.DB.Model(&trbe.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Confirmed attendance can no longer be cancelled.
	err = CancelEventRegistration(ctx, svcCtx, user.ID, event.ID)
	assert.Error(t, err)
}
