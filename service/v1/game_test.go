package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func TestCreateGameRequiresClub(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()

	_, err := CreateGame(ctx, svcCtx, types.CreateGameReq{
		ClubID:   "00000000-0000-0000-0000-000000000000",
		HomeTeam: "Palmeiras",
		AwayTeam: "Santos",
		Date:     time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, errcode.ErrClubNotFound)

	club := seedClub(t, svcCtx, nil)
	game, err := CreateGame(ctx, svcCtx, types.CreateGameReq{
		ClubID:   club.ID,
		HomeTeam: "Palmeiras",
		AwayTeam: "Santos",
		Date:     time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, trbe.GameStatusScheduled, game.Status)
	assert.Equal(t, trbe.GameTypeHome, game.Type)
}

func TestListGamesFilters(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	club := seedClub(t, svcCtx, nil)
	other := seedClub(t, svcCtx, func(c *trbe.Club) { c.Name = "Santos" })

	seedGame(t, svcCtx, club, nil)
	seedGame(t, svcCtx, club, func(g *trbe.Game) {
		g.AwayTeam = "Flamengo"
		g.Status = trbe.GameStatusFinished
	})
	seedGame(t, svcCtx, other, func(g *trbe.Game) { g.HomeTeam = "Santos" })

	result, err := ListGames(ctx, svcCtx, 1, 10, dao.GameFilter{ClubID: club.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	result, err = ListGames(ctx, svcCtx, 1, 10, dao.GameFilter{Status: trbe.GameStatusFinished})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	result, err = ListGames(ctx, svcCtx, 1, 10, dao.GameFilter{Search: "Flamengo"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestGetUpcomingGames(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	club := seedClub(t, svcCtx, nil)

	past := seedGame(t, svcCtx, club, func(g *trbe.Game) {
		g.Date = time.Now().Add(-24 * time.Hour)
		g.Status = trbe.GameStatusFinished
	})
	soon := seedGame(t, svcCtx, club, func(g *trbe.Game) { g.Date = time.Now().Add(2 * time.Hour) })
	later := seedGame(t, svcCtx, club, func(g *trbe.Game) { g.Date = time.Now().Add(72 * time.Hour) })

	games, err := GetUpcomingGames(ctx, svcCtx, 10)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, soon.ID, games[0].ID)
	assert.Equal(t, later.ID, games[1].ID)
	for _, g := range games {
		assert.NotEqual(t, past.ID, g.ID)
	}
}

func TestFinishGame(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	club := seedClub(t, svcCtx, nil)
	game := seedGame(t, svcCtx, club, nil)

	finished, err := FinishGame(ctx, svcCtx, game.ID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, trbe.GameStatusFinished, finished.Status)
	require.NotNil(t, finished.HomeScore)
	require.NotNil(t, finished.AwayScore)
	assert.Equal(t, 2, *finished.HomeScore)
	assert.Equal(t, 1, *finished.AwayScore)

	_, err = FinishGame(ctx, svcCtx, game.ID, 3, 3)
	assert.Error(t, err)
}

func TestDeleteGame(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	club := seedClub(t, svcCtx, nil)
	game := seedGame(t, svcCtx, club, nil)

	require.NoError(t, DeleteGame(ctx, svcCtx, game.ID))

	_, err := GetGame(ctx, svcCtx, game.ID)
	assert.ErrorIs(t, err, errcode.ErrGameNotFound)
}
