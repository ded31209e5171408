package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func TestLevelForExperience(t *testing.T) {
	cases := []struct {
		experience int64
		level      int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1050, 2},
		{4999, 5},
		{5000, 6},
		{-50, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForExperience(tc.experience), "experience=%d", tc.experience)
	}
}

func TestClampReputation(t *testing.T) {
	assert.Equal(t, 0, ClampReputation(-1))
	assert.Equal(t, 0, ClampReputation(-9999))
	assert.Equal(t, 500, ClampReputation(500))
	assert.Equal(t, 1000, ClampReputation(1000))
	assert.Equal(t, 1000, ClampReputation(1001))

	// Clamping twice changes nothing.
	assert.Equal(t, ClampReputation(1234), ClampReputation(ClampReputation(1234)))
}

func TestSocialScore(t *testing.T) {
	stats := &trbe.SocialStats{
		Likes:       10,
		Comments:    5,
		Retweets:    3,
		Hashtags:    2,
		CheckEvents: 1,
		GamesID:     4,
		Reports:     1,
	}
	// 10 + 2*5 + 3 + 3*2 + 3*1 + 3*4 - 10*1
	assert.Equal(t, int64(34), SocialScore(stats))

	assert.Equal(t, int64(0), SocialScore(&trbe.SocialStats{}))
	assert.Equal(t, int64(-20), SocialScore(&trbe.SocialStats{Reports: 2}))
}

func TestUpdateTokensWritesLedger(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)

	got, err := UpdateTokens(ctx, svcCtx, user.ID, 100, trbe.TransactionTypeEarned)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Tokens)

	var entries []trbe.Transaction
	require.NoError(t, svcCtx.DB.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].BalanceBefore)
	assert.Equal(t, int64(100), entries[0].BalanceAfter)
	assert.Equal(t, trbe.TransactionTypeEarned, entries[0].Type)

	got, err = UpdateTokens(ctx, svcCtx, user.ID, -40, trbe.TransactionTypeSpent)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Tokens)

	require.NoError(t, svcCtx.DB.Where("user_id = ?", user.ID).Order("created_at").Find(&entries).Error)
	require.Len(t, entries, 2)
}

func TestUpdateTokensInsufficientBalance(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, func(u *trbe.User) { u.Tokens = 30 })

	_, err := UpdateTokens(ctx, svcCtx, user.ID, -31, trbe.TransactionTypeSpent)
	assert.ErrorIs(t, err, errcode.ErrInsufficientToken)

	// Balance untouched, no ledger row written.
	reloaded, err := svcCtx.Dao.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), reloaded.Tokens)

	var count int64
	require.NoError(t, svcCtx.DB.Model(&trbe.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateTokensUnknownUser(t *testing.T) {
	svcCtx := newTestCtx(t)

	_, err := UpdateTokens(context.Background(), svcCtx, "no-such-user", 10, trbe.TransactionTypeEarned)
	assert.ErrorIs(t, err, errcode.ErrUserNotFound)
}

func TestUpdateExperienceLevelsUp(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, func(u *trbe.User) { u.Experience = 950 })

	got, err := UpdateExperience(ctx, svcCtx, user.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1050), got.Experience)
	assert.Equal(t, 2, got.Level)

	// Experience changes never touch the token ledger.
	var count int64
	require.NoError(t, svcCtx.DB.Model(&trbe.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateExperienceFloorsAtZero(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, func(u *trbe.User) {
		u.Experience = 1500
		u.Level = 2
	})

	got, err := UpdateExperience(ctx, svcCtx, user.ID, -2000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Experience)
	assert.Equal(t, 1, got.Level)
}

func TestUpdateReputationClampsAndRecordsBoth(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)

	got, err := UpdateReputation(ctx, svcCtx, user.ID, -9999, trbe.ReputationActionNegative, trbe.ReputationCategoryModeration, "spam reports")
	require.NoError(t, err)
	assert.Equal(t, 0, got.ReputationScore)

	var history []trbe.ReputationHistory
	require.NoError(t, svcCtx.DB.Where("user_id = ?", user.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, -9999, history[0].Points)
	assert.Equal(t, -500, history[0].Applied)

	got, err = UpdateReputation(ctx, svcCtx, user.ID, 5000, trbe.ReputationActionPositive, trbe.ReputationCategoryAchievement, "season mvp")
	require.NoError(t, err)
	assert.Equal(t, 1000, got.ReputationScore)

	require.NoError(t, svcCtx.DB.Where("user_id = ?", user.ID).Order("created_at").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, 5000, history[1].Points)
	assert.Equal(t, 1000, history[1].Applied)
}
