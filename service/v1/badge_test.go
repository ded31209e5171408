package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func TestAwardBadgeProgressIsMonotone(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	badge := seedBadge(t, svcCtx, nil) // max_progress 3

	userBadge, err := AwardBadgeProgress(ctx, svcCtx, user.ID, badge.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, userBadge.Progress)
	assert.False(t, userBadge.Completed())

	// A lower submission never regresses stored progress.
	userBadge, err = AwardBadgeProgress(ctx, svcCtx, user.ID, badge.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, userBadge.Progress)

	// No payout before the threshold.
	reloaded, err := svcCtx.Dao.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, reloaded.Tokens)
	assert.Zero(t, reloaded.TotalBadges)
}

func TestAwardBadgeProgressPaysOnceAtThreshold(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	badge := seedBadge(t, svcCtx, nil) // 10 tokens, 20 xp at progress 3

	_, err := AwardBadgeProgress(ctx, svcCtx, user.ID, badge.ID, 2)
	require.NoError(t, err)

	userBadge, err := AwardBadgeProgress(ctx, svcCtx, user.ID, badge.ID, 5)
	require.NoError(t, err)
	assert.True(t, userBadge.Completed())
	// Progress caps at the threshold even on an oversized submission.
	assert.Equal(t, 3, userBadge.Progress)

	reloaded, err := svcCtx.Dao.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), reloaded.Tokens)
	assert.Equal(t, int64(20), reloaded.Experience)
	assert.Equal(t, 1, reloaded.TotalBadges)

	// Further submissions after earning change nothing.
	userBadge, err = AwardBadgeProgress(ctx, svcCtx, user.ID, badge.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, userBadge.Progress)

	reloaded, err = svcCtx.Dao.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), reloaded.Tokens)
	assert.Equal(t, 1, reloaded.TotalBadges)

	var count int64
	require.NoError(t, svcCtx.DB.Model(&trbe.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAwardBadgeProgressRejectsNonPositive(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	badge := seedBadge(t, svcCtx, nil)

	_, err := AwardBadgeProgress(ctx, svcCtx, user.ID, badge.ID, 0)
	assert.ErrorIs(t, err, errcode.ErrInvalidParams)

	_, err = AwardBadgeProgress(ctx, svcCtx, user.ID, badge.ID, -2)
	assert.ErrorIs(t, err, errcode.ErrInvalidParams)
}

func TestGetBadgeProgressWithoutRow(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	badge := seedBadge(t, svcCtx, nil)

	userBadge, err := GetBadgeProgress(ctx, svcCtx, user.ID, badge.ID)
	require.NoError(t, err)
	assert.Zero(t, userBadge.Progress)
	assert.False(t, userBadge.Completed())
	require.NotNil(t, userBadge.Badge)
	assert.Equal(t, badge.ID, userBadge.Badge.ID)
}

func TestGetUserBadgeStats(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	common := seedBadge(t, svcCtx, func(b *trbe.Badge) { b.MaxProgress = 1 })
	epic := seedBadge(t, svcCtx, func(b *trbe.Badge) {
		b.Name = "derby hero"
		b.Rarity = trbe.BadgeRarityEpic
		b.MaxProgress = 2
	})

	_, err := AwardBadgeProgress(ctx, svcCtx, user.ID, common.ID, 1)
	require.NoError(t, err)
	_, err = AwardBadgeProgress(ctx, svcCtx, user.ID, epic.ID, 1)
	require.NoError(t, err)

	stats, err := GetUserBadgeStats(ctx, svcCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBadges)
	assert.Equal(t, 1, stats.EarnedBadges)
	assert.Equal(t, 1, stats.ByRarity[string(trbe.BadgeRarityCommon)])
	assert.Zero(t, stats.ByRarity[string(trbe.BadgeRarityEpic)])
}
