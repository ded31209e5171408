package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/contract"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/logger/xzap"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

// UpdateSocialStats replaces the user's social counters and recomputes the
// weighted score. When the user has a wallet and the chain boundary is up,
// the counters are also pushed to the ScoreUser contract so the on-chain
// reputation tracks the same formula.
func UpdateSocialStats(ctx context.Context, svcCtx *svc.ServerCtx, userID string, req types.SocialStatsReq) (*types.SocialScoreResp, error) {
	user, err := GetUser(ctx, svcCtx, userID)
	if err != nil {
		return nil, err
	}

	var stats *trbe.SocialStats
	err = svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = svcCtx.Dao.GetSocialStatsForUpdate(ctx, tx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(err, "load social stats")
			}
			stats = &trbe.SocialStats{UserID: userID}
		}
		stats.Likes = req.Likes
		stats.Comments = req.Comments
		stats.Retweets = req.Retweets
		stats.Hashtags = req.Hashtags
		stats.CheckEvents = req.CheckEvents
		stats.GamesID = req.GamesID
		stats.Reports = req.Reports
		return svcCtx.Dao.SaveSocialStats(ctx, tx, stats)
	})
	if err != nil {
		return nil, err
	}

	resp := &types.SocialScoreResp{
		UserID: userID,
		Score:  SocialScore(stats),
	}

	if svcCtx.ScoreUser == nil || user.WalletAddress == "" {
		return resp, nil
	}

	txHash, err := svcCtx.ScoreUser.CalculateReputation(ctx, user.WalletAddress, contract.SocialActivity{
		Likes:       stats.Likes,
		Comments:    stats.Comments,
		Retweets:    stats.Retweets,
		Hashtags:    stats.Hashtags,
		CheckEvents: stats.CheckEvents,
		GamesID:     stats.GamesID,
		Reports:     stats.Reports,
	})
	if err != nil {
		// The off-chain score is already saved; chain drift is logged and
		// corrected on the next update.
		xzap.WithContext(ctx).Warn("on-chain score update failed",
			zap.String("user_id", userID), zap.Error(err))
		return resp, nil
	}
	resp.TxHash = txHash
	resp.WalletAddress = user.WalletAddress
	resp.OnChain = true

	if score, err := svcCtx.ScoreUser.GetReputation(ctx, user.WalletAddress); err == nil {
		resp.OnChainScore = score.Int64()
	}
	return resp, nil
}

// GetSocialScore computes the weighted score from the stored counters and,
// when available, reads the on-chain value next to it.
func GetSocialScore(ctx context.Context, svcCtx *svc.ServerCtx, userID string) (*types.SocialScoreResp, error) {
	user, err := GetUser(ctx, svcCtx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := svcCtx.Dao.GetSocialStats(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(err, "get social stats")
		}
		stats = &trbe.SocialStats{UserID: userID}
	}

	resp := &types.SocialScoreResp{
		UserID: userID,
		Score:  SocialScore(stats),
	}
	if svcCtx.ScoreUser != nil && user.WalletAddress != "" {
		if score, err := svcCtx.ScoreUser.GetReputation(ctx, user.WalletAddress); err == nil {
			resp.OnChain = true
			resp.OnChainScore = score.Int64()
			resp.WalletAddress = user.WalletAddress
		}
	}
	return resp, nil
}

// RewardFanToken sends fan tokens from a club treasury to a supporter.
func RewardFanToken(ctx context.Context, svcCtx *svc.ServerCtx, req types.RewardFanTokenReq) (string, error) {
	if svcCtx.FanClubs == nil {
		return "", errcode.NewCustomErr("chain boundary is not configured")
	}
	club, err := GetClub(ctx, svcCtx, req.ClubID)
	if err != nil {
		return "", err
	}
	if club.ChainClubID == "" {
		return "", errcode.NewCustomErr("club has no chain presence")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return "", errcode.ErrInvalidParams
	}
	return svcCtx.FanClubs.RewardFanToken(ctx, club.ChainClubID, req.Token, req.To, amount)
}
