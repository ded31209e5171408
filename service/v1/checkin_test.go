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

func TestCreateCheckInPaysFlatReward(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	club := seedClub(t, svcCtx, nil)
	game := seedGame(t, svcCtx, club, nil)

	checkIn, err := CreateCheckIn(ctx, svcCtx, user.ID, types.CreateCheckInReq{
		GameID:   game.ID,
		Location: "Allianz Parque",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, checkIn.ID)

	got, err := GetUser(ctx, svcCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(checkInTokens), got.Tokens)
	assert.Equal(t, int64(checkInExperience), got.Experience)
	assert.Equal(t, 1, got.TotalCheckIns)

	var stats trbe.SocialStats
	require.NoError(t, svcCtx.DB.Where("user_id = ?", user.ID).First(&stats).Error)
	assert.Equal(t, int64(1), stats.CheckEvents)

	var tx trbe.Transaction
	require.NoError(t, svcCtx.DB.Where("user_id = ?", user.ID).First(&tx).Error)
	assert.Equal(t, "checkin:"+checkIn.ID, tx.Reference)
}

func TestCreateCheckInValidatesReferences(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)

	_, err := CreateCheckIn(ctx, svcCtx, user.ID, types.CreateCheckInReq{EventID: "nope"})
	assert.ErrorIs(t, err, errcode.ErrEventNotFound)

	_, err = CreateCheckIn(ctx, svcCtx, user.ID, types.CreateCheckInReq{GameID: "nope"})
	assert.ErrorIs(t, err, errcode.ErrGameNotFound)

	event := seedEvent(t, svcCtx, nil)
	checkIn, err := CreateCheckIn(ctx, svcCtx, user.ID, types.CreateCheckInReq{EventID: event.ID})
	require.NoError(t, err)
	assert.Equal(t, event.ID, checkIn.EventID)
}

func TestCreateCheckInUnknownUser(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	club := seedClub(t, svcCtx, nil)
	game := seedGame(t, svcCtx, club, nil)

	_, err := CreateCheckIn(ctx, svcCtx, "missing", types.CreateCheckInReq{GameID: game.ID})
	assert.ErrorIs(t, err, errcode.ErrUserNotFound)
}

func TestListCheckIns(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	club := seedClub(t, svcCtx, nil)
	game := seedGame(t, svcCtx, club, nil)

	for i := 0; i < 3; i++ {
		_, err := CreateCheckIn(ctx, svcCtx, user.ID, types.CreateCheckInReq{GameID: game.ID})
		require.NoError(t, err)
	}

	page, err := ListCheckIns(ctx, svcCtx, user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
