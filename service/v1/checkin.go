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

// Flat reward for showing up at a game or venue.
const (
	checkInTokens     = 10
	checkInExperience = 25
)

// CreateCheckIn records presence, pays the flat check-in reward and bumps
// the check counter that feeds the social score. One transaction covers the
// row, the payout and both counters.
func CreateCheckIn(ctx context.Context, svcCtx *svc.ServerCtx, userID string, req types.CreateCheckInReq) (*trbe.CheckIn, error) {
	if req.GameID != "" {
		if _, err := GetGame(ctx, svcCtx, req.GameID); err != nil {
			return nil, err
		}
	}
	if req.EventID != "" {
		if _, err := GetEvent(ctx, svcCtx, req.EventID); err != nil {
			return nil, err
		}
	}

	checkIn := &trbe.CheckIn{
		UserID:   userID,
		GameID:   req.GameID,
		EventID:  req.EventID,
		Location: req.Location,
	}
	err := svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		user, err := svcCtx.Dao.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrUserNotFound
			}
			return errors.Wrap(err, "load user")
		}

		if err := svcCtx.Dao.CreateCheckIn(ctx, tx, checkIn); err != nil {
			return errors.Wrap(err, "create check-in")
		}

		if err := awardRewards(ctx, svcCtx, tx, user, checkInTokens, checkInExperience, "checkin:"+checkIn.ID); err != nil {
			return err
		}
		user.TotalCheckIns++
		if err := svcCtx.Dao.SaveUser(ctx, tx, user); err != nil {
			return errors.Wrap(err, "save user")
		}

		stats, err := svcCtx.Dao.GetSocialStatsForUpdate(ctx, tx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(err, "load social stats")
			}
			stats = &trbe.SocialStats{UserID: userID}
		}
		stats.CheckEvents++
		return svcCtx.Dao.SaveSocialStats(ctx, tx, stats)
	})
	if err != nil {
		return nil, err
	}
	return checkIn, nil
}

func ListCheckIns(ctx context.Context, svcCtx *svc.ServerCtx, userID string, page, pageSize int) (*types.PageResult, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}
	checkIns, total, err := svcCtx.Dao.ListCheckIns(ctx, userID, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list check-ins")
	}
	return types.NewPageResult(checkIns, total, page, pageSize), nil
}
