package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func CreateFanGroup(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateFanGroupReq) (*trbe.FanGroup, error) {
	if req.ClubID != "" {
		if _, err := GetClub(ctx, svcCtx, req.ClubID); err != nil {
			return nil, err
		}
	}

	group := &trbe.FanGroup{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		ClubID:      req.ClubID,
		IsPublic:    true,
		IsActive:    true,
	}
	if req.IsPublic != nil {
		group.IsPublic = *req.IsPublic
	}
	if err := svcCtx.Dao.CreateFanGroup(ctx, group); err != nil {
		return nil, errors.Wrap(err, "create fan group")
	}
	return group, nil
}

func GetFanGroup(ctx context.Context, svcCtx *svc.ServerCtx, groupID string) (*trbe.FanGroup, error) {
	group, err := svcCtx.Dao.GetFanGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrFanGroupNotFound
		}
		return nil, errors.Wrap(err, "get fan group")
	}
	return group, nil
}

func ListFanGroups(ctx context.Context, svcCtx *svc.ServerCtx, page, pageSize int, clubID, search string) (*types.PageResult, error) {
	groups, total, err := svcCtx.Dao.ListFanGroups(ctx, page, pageSize, clubID, search)
	if err != nil {
		return nil, errors.Wrap(err, "list fan groups")
	}
	return types.NewPageResult(groups, total, page, pageSize), nil
}

func UpdateFanGroup(ctx context.Context, svcCtx *svc.ServerCtx, groupID string, fields map[string]interface{}) (*trbe.FanGroup, error) {
	if _, err := GetFanGroup(ctx, svcCtx, groupID); err != nil {
		return nil, err
	}
	if err := svcCtx.Dao.UpdateFanGroupFields(ctx, groupID, fields); err != nil {
		return nil, errors.Wrap(err, "update fan group")
	}
	return svcCtx.Dao.GetFanGroupByID(ctx, groupID)
}

func DeleteFanGroup(ctx context.Context, svcCtx *svc.ServerCtx, groupID string) error {
	if _, err := GetFanGroup(ctx, svcCtx, groupID); err != nil {
		return err
	}
	return svcCtx.Dao.DeleteFanGroup(ctx, groupID)
}

// JoinFanGroup requests membership. A user belongs to at most one group at a
// time. Public groups grant membership immediately; private groups leave the
// request PENDING until a moderator decides.
func JoinFanGroup(ctx context.Context, svcCtx *svc.ServerCtx, userID, groupID string) (*trbe.FanGroupMembership, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}
	group, err := GetFanGroup(ctx, svcCtx, groupID)
	if err != nil {
		return nil, err
	}

	existing, err := svcCtx.Dao.GetMembership(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "check membership")
	}
	if err == nil {
		if existing.Status != trbe.MembershipStatusRejected {
			return nil, errcode.ErrAlreadyMember
		}
		// A rejected request does not block reapplying.
		if err := svcCtx.Dao.CancelMembership(ctx, existing); err != nil {
			return nil, errors.Wrap(err, "clear rejected membership")
		}
	}

	membership := &trbe.FanGroupMembership{
		UserID:     userID,
		FanGroupID: groupID,
		Status:     trbe.MembershipStatusPending,
		Role:       trbe.MembershipRoleMember,
	}
	if group.IsPublic {
		membership.Status = trbe.MembershipStatusApproved
	}
	if err := svcCtx.Dao.CreateMembership(ctx, membership); err != nil {
		return nil, errors.Wrap(err, "create membership")
	}
	membership.FanGroup = group
	return membership, nil
}

func LeaveFanGroup(ctx context.Context, svcCtx *svc.ServerCtx, userID, groupID string) error {
	membership, err := svcCtx.Dao.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errcode.ErrNotMember
		}
		return errors.Wrap(err, "get membership")
	}
	if membership.FanGroupID != groupID {
		return errcode.ErrNotMember
	}
	return svcCtx.Dao.CancelMembership(ctx, membership)
}

// ApproveMembership grants a pending request. Only pending requests can be
// decided.
func ApproveMembership(ctx context.Context, svcCtx *svc.ServerCtx, groupID, userID string) (*trbe.FanGroupMembership, error) {
	membership, err := svcCtx.Dao.GetGroupMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotMember
		}
		return nil, errors.Wrap(err, "get membership")
	}
	if membership.Status != trbe.MembershipStatusPending {
		return nil, errcode.NewCustomErr("membership is not pending")
	}
	membership.Status = trbe.MembershipStatusApproved
	if err := svcCtx.Dao.ApproveMembership(ctx, membership); err != nil {
		return nil, errors.Wrap(err, "approve membership")
	}
	return membership, nil
}

func RejectMembership(ctx context.Context, svcCtx *svc.ServerCtx, groupID, userID string) (*trbe.FanGroupMembership, error) {
	membership, err := svcCtx.Dao.GetGroupMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotMember
		}
		return nil, errors.Wrap(err, "get membership")
	}
	if membership.Status != trbe.MembershipStatusPending {
		return nil, errcode.NewCustomErr("membership is not pending")
	}
	membership.Status = trbe.MembershipStatusRejected
	if err := svcCtx.Dao.SaveMembership(ctx, membership); err != nil {
		return nil, errors.Wrap(err, "reject membership")
	}
	return membership, nil
}

func SetMembershipRole(ctx context.Context, svcCtx *svc.ServerCtx, groupID, userID string, role trbe.MembershipRole) (*trbe.FanGroupMembership, error) {
	membership, err := svcCtx.Dao.GetGroupMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotMember
		}
		return nil, errors.Wrap(err, "get membership")
	}
	if membership.Status != trbe.MembershipStatusApproved {
		return nil, errcode.ErrNotMember
	}
	membership.Role = role
	if err := svcCtx.Dao.SaveMembership(ctx, membership); err != nil {
		return nil, errors.Wrap(err, "set membership role")
	}
	return membership, nil
}

func ListGroupMembers(ctx context.Context, svcCtx *svc.ServerCtx, groupID string, status trbe.MembershipStatus, page, pageSize int) (*types.PageResult, error) {
	if _, err := GetFanGroup(ctx, svcCtx, groupID); err != nil {
		return nil, err
	}
	members, total, err := svcCtx.Dao.ListGroupMembers(ctx, groupID, status, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list group members")
	}
	return types.NewPageResult(members, total, page, pageSize), nil
}

// GetUserMembership returns the user's current group membership, or
// ErrNotMember.
func GetUserMembership(ctx context.Context, svcCtx *svc.ServerCtx, userID string) (*trbe.FanGroupMembership, error) {
	membership, err := svcCtx.Dao.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotMember
		}
		return nil, errors.Wrap(err, "get membership")
	}
	return membership, nil
}
