package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/logger/xzap"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func CreateClub(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateClubReq) (*trbe.Club, error) {
	club := &trbe.Club{
		Name:        req.Name,
		ShortName:   req.ShortName,
		Description: req.Description,
		Logo:        req.Logo,
		Country:     req.Country,
		League:      req.League,
		ChainClubID: req.ChainClubID,
		IsActive:    true,
	}

	// When a join price is given and the chain boundary is up, the club is
	// also created in the FanClubs contract.
	if req.JoinPrice != "" && svcCtx.FanClubs != nil && club.ChainClubID != "" {
		price, err := decimal.NewFromString(req.JoinPrice)
		if err != nil {
			return nil, errcode.ErrInvalidParams
		}
		txHash, err := svcCtx.FanClubs.CreateFanClub(ctx, club.ChainClubID, price)
		if err != nil {
			return nil, errors.Wrap(err, "create fan club on-chain")
		}
		xzap.WithContext(ctx).Info("fan club created on-chain",
			zap.String("club_id", club.ChainClubID), zap.String("tx", txHash))
	}

	if err := svcCtx.Dao.CreateClub(ctx, club); err != nil {
		return nil, errors.Wrap(err, "create club")
	}
	return club, nil
}

func GetClub(ctx context.Context, svcCtx *svc.ServerCtx, clubID string) (*trbe.Club, error) {
	club, err := svcCtx.Dao.GetClubByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrClubNotFound
		}
		return nil, errors.Wrap(err, "get club")
	}
	return club, nil
}

func ListClubs(ctx context.Context, svcCtx *svc.ServerCtx, page, pageSize int, search string) (*types.PageResult, error) {
	clubs, total, err := svcCtx.Dao.ListClubs(ctx, page, pageSize, search)
	if err != nil {
		return nil, errors.Wrap(err, "list clubs")
	}
	return types.NewPageResult(clubs, total, page, pageSize), nil
}

func UpdateClub(ctx context.Context, svcCtx *svc.ServerCtx, clubID string, fields map[string]interface{}) (*trbe.Club, error) {
	if _, err := GetClub(ctx, svcCtx, clubID); err != nil {
		return nil, err
	}
	if err := svcCtx.Dao.UpdateClubFields(ctx, clubID, fields); err != nil {
		return nil, errors.Wrap(err, "update club")
	}
	return svcCtx.Dao.GetClubByID(ctx, clubID)
}

func DeleteClub(ctx context.Context, svcCtx *svc.ServerCtx, clubID string) error {
	if _, err := GetClub(ctx, svcCtx, clubID); err != nil {
		return err
	}
	return svcCtx.Dao.DeleteClub(ctx, clubID)
}

// FollowClub makes the user a follower. A user follows at most one club;
// following while already following any club is rejected.
func FollowClub(ctx context.Context, svcCtx *svc.ServerCtx, userID, clubID string) (*trbe.ClubFollow, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}
	club, err := GetClub(ctx, svcCtx, clubID)
	if err != nil {
		return nil, err
	}

	if _, err := svcCtx.Dao.GetClubFollow(ctx, userID); err == nil {
		return nil, errcode.ErrAlreadyFollowing
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "check follow")
	}

	follow := &trbe.ClubFollow{UserID: userID, ClubID: clubID}
	err = svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		return svcCtx.Dao.CreateClubFollow(ctx, tx, follow)
	})
	if err != nil {
		return nil, errors.Wrap(err, "create follow")
	}
	follow.Club = club
	return follow, nil
}

func UnfollowClub(ctx context.Context, svcCtx *svc.ServerCtx, userID, clubID string) error {
	follow, err := svcCtx.Dao.GetClubFollow(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errcode.ErrNotFollowing
		}
		return errors.Wrap(err, "get follow")
	}
	if follow.ClubID != clubID {
		return errcode.ErrNotFollowing
	}
	return svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		return svcCtx.Dao.DeleteClubFollow(ctx, tx, follow)
	})
}

// GetFollowedClub returns the club the user currently follows, or
// ErrNotFollowing.
func GetFollowedClub(ctx context.Context, svcCtx *svc.ServerCtx, userID string) (*trbe.Club, error) {
	follow, err := svcCtx.Dao.GetClubFollow(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFollowing
		}
		return nil, errors.Wrap(err, "get follow")
	}
	return GetClub(ctx, svcCtx, follow.ClubID)
}

func ListClubFollowers(ctx context.Context, svcCtx *svc.ServerCtx, clubID string, page, pageSize int) (*types.PageResult, error) {
	if _, err := GetClub(ctx, svcCtx, clubID); err != nil {
		return nil, err
	}
	users, total, err := svcCtx.Dao.ListClubFollowers(ctx, clubID, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list followers")
	}
	return types.NewPageResult(users, total, page, pageSize), nil
}

// GetChainClub reads the club's on-chain state from the FanClubs contract.
func GetChainClub(ctx context.Context, svcCtx *svc.ServerCtx, clubID string) (*types.ChainClubResp, error) {
	club, err := GetClub(ctx, svcCtx, clubID)
	if err != nil {
		return nil, err
	}
	if svcCtx.FanClubs == nil || club.ChainClubID == "" {
		return nil, errcode.NewCustomErr("club has no chain presence")
	}

	owner, err := svcCtx.FanClubs.GetOwner(ctx, club.ChainClubID)
	if err != nil {
		return nil, errors.Wrap(err, "get owner")
	}
	price, err := svcCtx.FanClubs.GetJoinPrice(ctx, club.ChainClubID)
	if err != nil {
		return nil, errors.Wrap(err, "get join price")
	}
	balance, err := svcCtx.FanClubs.GetBalance(ctx, club.ChainClubID)
	if err != nil {
		return nil, errors.Wrap(err, "get balance")
	}
	members, err := svcCtx.FanClubs.GetMembers(ctx, club.ChainClubID)
	if err != nil {
		return nil, errors.Wrap(err, "get members")
	}

	return &types.ChainClubResp{
		ClubID:    club.ChainClubID,
		Owner:     owner.Hex(),
		JoinPrice: price.String(),
		Balance:   balance.String(),
		Members:   len(members),
	}, nil
}

// ListChainClubIDs returns every fan club id registered in the contract.
func ListChainClubIDs(ctx context.Context, svcCtx *svc.ServerCtx) ([]string, error) {
	if svcCtx.FanClubs == nil {
		return nil, errcode.NewCustomErr("chain boundary is not configured")
	}
	return svcCtx.FanClubs.GetAllFanClubIDs(ctx)
}

// CheckChainMember reports whether the wallet belongs to the club on-chain.
func CheckChainMember(ctx context.Context, svcCtx *svc.ServerCtx, clubID, wallet string) (bool, error) {
	club, err := GetClub(ctx, svcCtx, clubID)
	if err != nil {
		return false, err
	}
	if svcCtx.FanClubs == nil || club.ChainClubID == "" {
		return false, errcode.NewCustomErr("club has no chain presence")
	}
	return svcCtx.FanClubs.CheckMember(ctx, club.ChainClubID, wallet)
}

func UpdateChainJoinPrice(ctx context.Context, svcCtx *svc.ServerCtx, clubID string, price decimal.Decimal) (string, error) {
	club, err := GetClub(ctx, svcCtx, clubID)
	if err != nil {
		return "", err
	}
	if svcCtx.FanClubs == nil || club.ChainClubID == "" {
		return "", errcode.NewCustomErr("club has no chain presence")
	}
	return svcCtx.FanClubs.UpdatePrice(ctx, club.ChainClubID, price)
}

func WithdrawFromChainClub(ctx context.Context, svcCtx *svc.ServerCtx, clubID string, amount decimal.Decimal) (string, error) {
	club, err := GetClub(ctx, svcCtx, clubID)
	if err != nil {
		return "", err
	}
	if svcCtx.FanClubs == nil || club.ChainClubID == "" {
		return "", errcode.NewCustomErr("club has no chain presence")
	}
	return svcCtx.FanClubs.Withdraw(ctx, club.ChainClubID, amount)
}
