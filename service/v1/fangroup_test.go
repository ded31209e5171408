package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func TestJoinPublicGroupApprovesImmediately(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	group := seedFanGroup(t, svcCtx, nil)

	membership, err := JoinFanGroup(ctx, svcCtx, user.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.MembershipStatusApproved, membership.Status)
	assert.Equal(t, trbe.MembershipRoleMember, membership.Role)

	got, err := GetFanGroup(ctx, svcCtx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MembersCount)
}

func TestJoinPrivateGroupStaysPending(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	group := seedFanGroup(t, svcCtx, func(g *trbe.FanGroup) { g.IsPublic = false })

	membership, err := JoinFanGroup(ctx, svcCtx, user.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.MembershipStatusPending, membership.Status)

	// Pending requests do not count as members yet.
	got, err := GetFanGroup(ctx, svcCtx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MembersCount)

	approved, err := ApproveMembership(ctx, svcCtx, group.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.MembershipStatusApproved, approved.Status)

	got, err = GetFanGroup(ctx, svcCtx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MembersCount)

	// Already decided.
	_, err = ApproveMembership(ctx, svcCtx, group.ID, user.ID)
	assert.Error(t, err)
}

func TestJoinFanGroupIsExclusive(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	first := seedFanGroup(t, svcCtx, nil)
	second := seedFanGroup(t, svcCtx, func(g *trbe.FanGroup) { g.Name = "south stand" })

	_, err := JoinFanGroup(ctx, svcCtx, user.ID, first.ID)
	require.NoError(t, err)

	_, err = JoinFanGroup(ctx, svcCtx, user.ID, second.ID)
	assert.ErrorIs(t, err, errcode.ErrAlreadyMember)

	// Leaving deletes the membership row outright, freeing the slot.
	require.NoError(t, LeaveFanGroup(ctx, svcCtx, user.ID, first.ID))

	var remaining int64
	require.NoError(t, svcCtx.DB.Model(&trbe.FanGroupMembership{}).
		Where("user_id = ?", user.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	got, err := GetFanGroup(ctx, svcCtx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MembersCount)

	membership, err := JoinFanGroup(ctx, svcCtx, user.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, membership.FanGroupID)
}

func TestLeaveFanGroupChecksMembership(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	group := seedFanGroup(t, svcCtx, nil)
	other := seedFanGroup(t, svcCtx, func(g *trbe.FanGroup) { g.Name = "east stand" })

	err := LeaveFanGroup(ctx, svcCtx, user.ID, group.ID)
	assert.ErrorIs(t, err, errcode.ErrNotMember)

	_, err = JoinFanGroup(ctx, svcCtx, user.ID, group.ID)
	require.NoError(t, err)

	err = LeaveFanGroup(ctx, svcCtx, user.ID, other.ID)
	assert.ErrorIs(t, err, errcode.ErrNotMember)
}

func TestRejectedRequestCanReapply(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	group := seedFanGroup(t, svcCtx, func(g *trbe.FanGroup) { g.IsPublic = false })

	_, err := JoinFanGroup(ctx, svcCtx, user.ID, group.ID)
	require.NoError(t, err)

	rejected, err := RejectMembership(ctx, svcCtx, group.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.MembershipStatusRejected, rejected.Status)

	got, err := GetFanGroup(ctx, svcCtx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MembersCount)

	membership, err := JoinFanGroup(ctx, svcCtx, user.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, trbe.MembershipStatusPending, membership.Status)
}

func TestSetMembershipRoleRequiresApproval(t *testing.T) {
	svcCtx := newTestCtx(t)
	ctx := context.Background()
	user := seedUser(t, svcCtx, nil)
	group := seedFanGroup(t, svcCtx, func(g *trbe.FanGroup) { g.IsPublic = false })

	_, err := JoinFanGroup(ctx, svcCtx, user.ID, group.ID)
	require.NoError(t, err)

	_, err = SetMembershipRole(ctx, svcCtx, group.ID, user.ID, trbe.MembershipRoleModerator)
	assert.ErrorIs(t, err, errcode.ErrNotMember)

	_, err = ApproveMembership(ctx, svcCtx, group.ID, user.ID)
	require.NoError(t, err)

	membership, err := SetMembershipRole(ctx, svcCtx, group.ID, user.ID, trbe.MembershipRoleModerator)
	require.NoError(t, err)
	assert.Equal(t, trbe.MembershipRoleModerator, membership.Role)
}
