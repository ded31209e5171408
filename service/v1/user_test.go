package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func TestRegisterAndLogin(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()

	user, err := Register(ctx, svcCtx, types.RegisterReq{
		Username: "torcedor",
		Email:    "torcedor@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 500, user.ReputationScore)
	assert.Equal(t, "torcedor", user.DisplayName)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	// Duplicate email rejected.
	_, err = Register(ctx, svcCtx, types.RegisterReq{
		Username: "other",
		Email:    "torcedor@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, errcode.ErrUserExists)

	resp, err := Login(ctx, svcCtx, types.LoginReq{Email: "torcedor@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	_, err = Login(ctx, svcCtx, types.LoginReq{Email: "torcedor@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, errcode.ErrUnauthorized)

	// A banned account cannot log in even with the right password.
	require.NoError(t, svcCtx.DB.Model(&trbe.User{}).Where("id = ?", user.ID).
		Update("status", trbe.UserStatusBanned).Error)
	_, err = Login(ctx, svcCtx, types.LoginReq{Email: "torcedor@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, errcode.ErrUnauthorized)
}

func TestSoftDeleteHidesUser(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)

	require.NoError(t, DeleteUser(ctx, svcCtx, user.ID))

	_, err := GetUser(ctx, svcCtx, user.ID)
	assert.ErrorIs(t, err, errcode.ErrUserNotFound)

	// The row itself survives for ledger integrity.
	var raw trbe.User
	require.NoError(t, svcCtx.DB.Where("id = ?", user.ID).First(&raw).Error)
	assert.NotNil(t, raw.DeletedAt)
	assert.Equal(t, trbe.UserStatusBanned, raw.Status)
}

func TestGetUserRank(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()

	leader := seedUser(t, svcCtx, func(u *trbe.User) {
		u.Email = "leader@example.com"
		u.Username = "leader"
		u.Tokens = 500
		u.ReputationScore = 900
	})
	mid := seedUser(t, svcCtx, func(u *trbe.User) {
		u.Email = "mid@example.com"
		u.Username = "mid"
		u.Tokens = 100
	})

	rank, err := GetUserRank(ctx, svcCtx, leader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank.TokenRank)
	assert.Equal(t, int64(1), rank.ReputationRank)

	rank, err = GetUserRank(ctx, svcCtx, mid.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank.TokenRank)
	assert.Equal(t, int64(2), rank.ReputationRank)
}

func TestGetRecentActivityMergesStreams(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	task := seedTask(t, svcCtx, nil)
	badge := seedBadge(t, svcCtx, func(b *trbe.Badge) { b.MaxProgress = 1 })

	_, err := StartTask(ctx, svcCtx, user.ID, task.ID)
	require.NoError(t, err)
	_, err = UpdateTaskProgress(ctx, svcCtx, user.ID, task.ID, 1)
	require.NoError(t, err)

	_, err = AwardBadgeProgress(ctx, svcCtx, user.ID, badge.ID, 1)
	require.NoError(t, err)

	_, err = CreateCheckIn(ctx, svcCtx, user.ID, types.CreateCheckInReq{Location: "arena"})
	require.NoError(t, err)

	items, err := GetRecentActivity(ctx, svcCtx, user.ID, 20)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	seen := map[string]bool{}
	for _, item := range items {
		seen[item.Type] = true
	}
	assert.True(t, seen["task_completed"])
	assert.True(t, seen["badge_earned"])
	assert.True(t, seen["transaction"])
	assert.True(t, seen["check_in"])

	// Newest first.
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i-1].Timestamp.Before(items[i].Timestamp),
			"feed out of order at %d", i)
	}
}

func TestGetUserStatsNextLevel(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, func(u *trbe.User) {
		u.Experience = 1500
		u.Level = 2
	})

	stats, err := GetUserStats(ctx, svcCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), stats.NextLevelAt)
	assert.Equal(t, 2, stats.Level)
}
