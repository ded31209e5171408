package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func TestFollowClubIsExclusive(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	palmeiras := seedClub(t, svcCtx, nil)
	flamengo := seedClub(t, svcCtx, func(c *trbe.Club) {
		c.Name = "Flamengo"
		c.ShortName = "FLA"
	})

	follow, err := FollowClub(ctx, svcCtx, user.ID, palmeiras.ID)
	require.NoError(t, err)
	assert.Equal(t, palmeiras.ID, follow.ClubID)

	// One club at a time, even when the second club differs.
	_, err = FollowClub(ctx, svcCtx, user.ID, flamengo.ID)
	assert.ErrorIs(t, err, errcode.ErrAlreadyFollowing)

	got, err := GetFollowedClub(ctx, svcCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, palmeiras.ID, got.ID)
	assert.Equal(t, 1, got.FollowersCount)
}

func TestUnfollowClub(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	club := seedClub(t, svcCtx, nil)

	err := UnfollowClub(ctx, svcCtx, user.ID, club.ID)
	assert.ErrorIs(t, err, errcode.ErrNotFollowing)

	_, err = FollowClub(ctx, svcCtx, user.ID, club.ID)
	require.NoError(t, err)

	other := seedClub(t, svcCtx, func(c *trbe.Club) { c.Name = "Santos" })
	err = UnfollowClub(ctx, svcCtx, user.ID, other.ID)
	assert.ErrorIs(t, err, errcode.ErrNotFollowing)

	require.NoError(t, UnfollowClub(ctx, svcCtx, user.ID, club.ID))

	_, err = GetFollowedClub(ctx, svcCtx, user.ID)
	assert.ErrorIs(t, err, errcode.ErrNotFollowing)

	got, err := GetClub(ctx, svcCtx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FollowersCount)
}

func TestChainOpsRequireChainPresence(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	club := seedClub(t, svcCtx, nil) // no ChainClubID, no contract client

	_, err := GetChainClub(ctx, svcCtx, club.ID)
	assert.Error(t, err)

	_, err = CheckChainMember(ctx, svcCtx, club.ID, "0xabc")
	assert.Error(t, err)
}
