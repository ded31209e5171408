package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func CreateBadge(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateBadgeReq) (*trbe.Badge, error) {
	badge := &trbe.Badge{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Rarity:      trbe.BadgeRarity(req.Rarity),
		Category:    req.Category,
		MaxProgress: req.MaxProgress,
		Tokens:      req.Tokens,
		Experience:  req.Experience,
		IsActive:    true,
	}
	if badge.Rarity == "" {
		badge.Rarity = trbe.BadgeRarityCommon
	}
	if badge.MaxProgress <= 0 {
		badge.MaxProgress = 1
	}
	if err := svcCtx.Dao.CreateBadge(ctx, badge); err != nil {
		return nil, errors.Wrap(err, "create badge")
	}
	return badge, nil
}

func GetBadge(ctx context.Context, svcCtx *svc.ServerCtx, badgeID string) (*trbe.Badge, error) {
	badge, err := svcCtx.Dao.GetBadgeByID(ctx, badgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrBadgeNotFound
		}
		return nil, errors.Wrap(err, "get badge")
	}
	return badge, nil
}

func ListBadges(ctx context.Context, svcCtx *svc.ServerCtx, page, pageSize int, rarity trbe.BadgeRarity, onlyActive bool) (*types.PageResult, error) {
	badges, total, err := svcCtx.Dao.ListBadges(ctx, page, pageSize, rarity, onlyActive)
	if err != nil {
		return nil, errors.Wrap(err, "list badges")
	}
	return types.NewPageResult(badges, total, page, pageSize), nil
}

func UpdateBadge(ctx context.Context, svcCtx *svc.ServerCtx, badgeID string, fields map[string]interface{}) (*trbe.Badge, error) {
	if _, err := GetBadge(ctx, svcCtx, badgeID); err != nil {
		return nil, err
	}
	if err := svcCtx.Dao.UpdateBadgeFields(ctx, badgeID, fields); err != nil {
		return nil, errors.Wrap(err, "update badge")
	}
	return svcCtx.Dao.GetBadgeByID(ctx, badgeID)
}

func DeleteBadge(ctx context.Context, svcCtx *svc.ServerCtx, badgeID string) error {
	if _, err := GetBadge(ctx, svcCtx, badgeID); err != nil {
		return err
	}
	return svcCtx.Dao.DeleteBadge(ctx, badgeID)
}

// AwardBadgeProgress records the user's progress toward a badge. Progress is
// monotone, a lower value than the stored one is a no-op; the badge reward is
// paid exactly once, when progress first reaches the badge threshold.
func AwardBadgeProgress(ctx context.Context, svcCtx *svc.ServerCtx, userID, badgeID string, progress int) (*trbe.UserBadge, error) {
	badge, err := GetBadge(ctx, svcCtx, badgeID)
	if err != nil {
		return nil, err
	}
	if progress <= 0 {
		return nil, errcode.ErrInvalidParams
	}

	var userBadge *trbe.UserBadge
	err = svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		var err error
		userBadge, err = svcCtx.Dao.GetUserBadgeForUpdate(ctx, tx, userID, badgeID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(err, "load user badge")
			}
			userBadge = &trbe.UserBadge{UserID: userID, BadgeID: badgeID}
			if err := svcCtx.Dao.CreateUserBadge(ctx, tx, userBadge); err != nil {
				return errors.Wrap(err, "create user badge")
			}
		}

		if userBadge.Completed() {
			return nil
		}
		if progress <= userBadge.Progress {
			return nil
		}

		userBadge.Progress = progress
		if userBadge.Progress > badge.MaxProgress {
			userBadge.Progress = badge.MaxProgress
		}

		earned := userBadge.Progress >= badge.MaxProgress
		if earned {
			now := time.Now()
			userBadge.EarnedAt = &now
		}
		if err := svcCtx.Dao.SaveUserBadge(ctx, tx, userBadge); err != nil {
			return errors.Wrap(err, "save user badge")
		}

		if !earned {
			return nil
		}

		user, err := svcCtx.Dao.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrUserNotFound
			}
			return errors.Wrap(err, "load user")
		}
		if err := awardRewards(ctx, svcCtx, tx, user, badge.Tokens, badge.Experience, "badge:"+badge.ID); err != nil {
			return err
		}
		user.TotalBadges++
		return svcCtx.Dao.SaveUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	userBadge.Badge = badge
	return userBadge, nil
}

func GetUserBadges(ctx context.Context, svcCtx *svc.ServerCtx, userID string, page, pageSize int) (*types.PageResult, error) {
	userBadges, total, err := svcCtx.Dao.ListUserBadges(ctx, userID, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list user badges")
	}
	return types.NewPageResult(userBadges, total, page, pageSize), nil
}

func GetBadgeProgress(ctx context.Context, svcCtx *svc.ServerCtx, userID, badgeID string) (*trbe.UserBadge, error) {
	badge, err := GetBadge(ctx, svcCtx, badgeID)
	if err != nil {
		return nil, err
	}
	userBadge, err := svcCtx.Dao.GetUserBadge(ctx, userID, badgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &trbe.UserBadge{UserID: userID, BadgeID: badgeID, Badge: badge}, nil
		}
		return nil, errors.Wrap(err, "get user badge")
	}
	userBadge.Badge = badge
	return userBadge, nil
}

func GetPopularBadges(ctx context.Context, svcCtx *svc.ServerCtx, limit int) ([]trbe.Badge, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return svcCtx.Dao.PopularBadges(ctx, limit)
}

// GetUserBadgeStats summarizes earned badges per rarity.
func GetUserBadgeStats(ctx context.Context, svcCtx *svc.ServerCtx, userID string) (*types.UserBadgeStats, error) {
	userBadges, _, err := svcCtx.Dao.ListUserBadges(ctx, userID, 1, 1000)
	if err != nil {
		return nil, errors.Wrap(err, "list user badges")
	}

	stats := &types.UserBadgeStats{
		TotalBadges: len(userBadges),
		ByRarity:    make(map[string]int),
	}
	for _, ub := range userBadges {
		if !ub.Completed() {
			continue
		}
		stats.EarnedBadges++
		if ub.Badge != nil {
			stats.ByRarity[string(ub.Badge.Rarity)]++
		}
	}
	return stats, nil
}
