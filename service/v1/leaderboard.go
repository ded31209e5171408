package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/logger/xzap"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

const (
	LeaderboardTokens     = "tokens"
	LeaderboardReputation = "reputation"

	leaderboardCacheTTL = 60 * time.Second
)

func leaderboardCacheKey(board string, page, pageSize int) string {
	return fmt.Sprintf("leaderboard:%s:%d:%d", board, page, pageSize)
}

// GetLeaderboard returns one page of the token or reputation board. Pages
// are cached in redis for a minute; without redis every request hits the
// database.
func GetLeaderboard(ctx context.Context, svcCtx *svc.ServerCtx, board string, page, pageSize int) ([]types.RankEntry, error) {
	var orderBy string
	switch board {
	case LeaderboardTokens:
		orderBy = "tokens"
	case LeaderboardReputation:
		orderBy = "reputation_score"
	default:
		return nil, errcode.NewCustomErr("unknown leaderboard " + board)
	}

	cacheKey := leaderboardCacheKey(board, page, pageSize)
	if svcCtx.Redis != nil {
		if cached, err := svcCtx.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var entries []types.RankEntry
			if err := json.Unmarshal(cached, &entries); err == nil {
				return entries, nil
			}
		}
	}

	users, _, err := svcCtx.Dao.ListUsersRanked(ctx, orderBy, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list ranked users")
	}

	entries := make([]types.RankEntry, 0, len(users))
	base := (page - 1) * pageSize
	for i, u := range users {
		score := u.Tokens
		if board == LeaderboardReputation {
			score = int64(u.ReputationScore)
		}
		entries = append(entries, types.RankEntry{
			Rank:        base + i + 1,
			UserID:      u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Avatar:      u.Avatar,
			Level:       u.Level,
			Score:       score,
		})
	}

	if svcCtx.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := svcCtx.Redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				xzap.WithContext(ctx).Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}

// InvalidateLeaderboard drops all cached pages of a board. Called after
// bulk token adjustments; individual progression updates rely on the TTL.
func InvalidateLeaderboard(ctx context.Context, svcCtx *svc.ServerCtx, board string) {
	if svcCtx.Redis == nil {
		return
	}
	iter := svcCtx.Redis.Scan(ctx, 0, "leaderboard:"+board+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := svcCtx.Redis.Del(ctx, iter.Val()).Err(); err != nil {
			xzap.WithContext(ctx).Warn("leaderboard cache delete failed", zap.Error(err))
		}
	}
}
