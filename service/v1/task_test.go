package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func TestStartTask(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	task := seedTask(t, svcCtx, nil)

	userTask, err := StartTask(ctx, svcCtx, user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.UserTaskStatusAssigned, userTask.Status)
	assert.Zero(t, userTask.Progress)

	// Starting twice is rejected while the attempt is live.
	_, err = StartTask(ctx, svcCtx, user.ID, task.ID)
	assert.ErrorIs(t, err, errcode.ErrTaskStarted)
}

func TestStartTaskRestartAfterFailure(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	task := seedTask(t, svcCtx, func(tk *trbe.Task) { tk.MaxProgress = 5 })

	_, err := StartTask(ctx, svcCtx, user.ID, task.ID)
	require.NoError(t, err)
	_, err = UpdateTaskProgress(ctx, svcCtx, user.ID, task.ID, 3)
	require.NoError(t, err)
	_, err = FailTask(ctx, svcCtx, user.ID, task.ID)
	require.NoError(t, err)

	restarted, err := StartTask(ctx, svcCtx, user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.UserTaskStatusAssigned, restarted.Status)
	assert.Zero(t, restarted.Progress)
	assert.Nil(t, restarted.CompletedAt)
}

func TestUpdateTaskProgressCompletesAndPaysOnce(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	task := seedTask(t, svcCtx, nil) // max_progress 1, 25 tokens, 50 xp

	_, err := StartTask(ctx, svcCtx, user.ID, task.ID)
	require.NoError(t, err)

	userTask, err := UpdateTaskProgress(ctx, svcCtx, user.ID, task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, trbe.UserTaskStatusCompleted, userTask.Status)
	require.NotNil(t, userTask.CompletedAt)

	reloaded, err := svcCtx.Dao.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), reloaded.Tokens)
	assert.Equal(t, int64(50), reloaded.Experience)
	assert.Equal(t, 1, reloaded.TotalTasks)

	// A second submission cannot pay again.
	_, err = UpdateTaskProgress(ctx, svcCtx, user.ID, task.ID, 1)
	assert.ErrorIs(t, err, errcode.ErrTaskTerminal)

	reloaded, err = svcCtx.Dao.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), reloaded.Tokens)
	assert.Equal(t, 1, reloaded.TotalTasks)

	var count int64
	require.NoError(t, svcCtx.DB.Model(&trbe.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateTaskProgressRejectsOverflow(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	task := seedTask(t, svcCtx, func(tk *trbe.Task) { tk.MaxProgress = 10 })

	_, err := StartTask(ctx, svcCtx, user.ID, task.ID)
	require.NoError(t, err)

	_, err = UpdateTaskProgress(ctx, svcCtx, user.ID, task.ID, 11)
	assert.ErrorIs(t, err, errcode.ErrInvalidProgress)
}

func TestUpdateTaskProgressIsMonotone(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	task := seedTask(t, svcCtx, func(tk *trbe.Task) { tk.MaxProgress = 10 })

	_, err := StartTask(ctx, svcCtx, user.ID, task.ID)
	require.NoError(t, err)

	userTask, err := UpdateTaskProgress(ctx, svcCtx, user.ID, task.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, userTask.Progress)
	assert.Equal(t, trbe.UserTaskStatusInProgress, userTask.Status)

	// A lower submission never regresses the stored progress.
	userTask, err = UpdateTaskProgress(ctx, svcCtx, user.ID, task.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, userTask.Progress)
}

func TestUpdateTaskProgressUnassigned(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	task := seedTask(t, svcCtx, nil)

	_, err := UpdateTaskProgress(ctx, svcCtx, user.ID, task.ID, 1)
	assert.ErrorIs(t, err, errcode.ErrTaskNotAssigned)
}

func TestGetAvailableTasksExcludesStarted(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	started := seedTask(t, svcCtx, nil)
	open := seedTask(t, svcCtx, func(tk *trbe.Task) { tk.Title = "share a post" })

	_, err := StartTask(ctx, svcCtx, user.ID, started.ID)
	require.NoError(t, err)

	available, err := GetAvailableTasks(ctx, svcCtx, user.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, open.ID, available[0].ID)
}

func TestGetUserTaskStats(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	done := seedTask(t, svcCtx, nil)
	active := seedTask(t, svcCtx, func(tk *trbe.Task) {
		tk.Title = "weekly quiz"
		tk.MaxProgress = 4
	})

	_, err := StartTask(ctx, svcCtx, user.ID, done.ID)
	require.NoError(t, err)
	_, err = UpdateTaskProgress(ctx, svcCtx, user.ID, done.ID, 1)
	require.NoError(t, err)

	_, err = StartTask(ctx, svcCtx, user.ID, active.ID)
	require.NoError(t, err)
	_, err = UpdateTaskProgress(ctx, svcCtx, user.ID, active.ID, 2)
	require.NoError(t, err)

	stats, err := GetUserTaskStats(ctx, svcCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 1, stats.ActiveTasks)
	assert.Equal(t, int64(25), stats.TotalTokens)
	assert.Equal(t, int64(50), stats.TotalExperience)
}
