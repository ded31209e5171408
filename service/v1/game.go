package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func CreateGame(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateGameReq) (*trbe.Game, error) {
	if _, err := GetClub(ctx, svcCtx, req.ClubID); err != nil {
		return nil, err
	}

	game := &trbe.Game{
		ClubID:       req.ClubID,
		HomeTeam:     req.HomeTeam,
		AwayTeam:     req.AwayTeam,
		Date:         req.Date,
		Stadium:      req.Stadium,
		Championship: req.Championship,
		Type:         trbe.GameType(req.Type),
		Status:       trbe.GameStatusScheduled,
		Description:  req.Description,
	}
	if game.Type == "" {
		game.Type = trbe.GameTypeHome
	}
	if err := svcCtx.Dao.CreateGame(ctx, game); err != nil {
		return nil, errors.Wrap(err, "create game")
	}
	return game, nil
}

func GetGame(ctx context.Context, svcCtx *svc.ServerCtx, gameID string) (*trbe.Game, error) {
	game, err := svcCtx.Dao.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrGameNotFound
		}
		return nil, errors.Wrap(err, "get game")
	}
	return game, nil
}

func ListGames(ctx context.Context, svcCtx *svc.ServerCtx, page, pageSize int, filter dao.GameFilter) (*types.PageResult, error) {
	games, total, err := svcCtx.Dao.ListGames(ctx, page, pageSize, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list games")
	}
	return types.NewPageResult(games, total, page, pageSize), nil
}

func UpdateGame(ctx context.Context, svcCtx *svc.ServerCtx, gameID string, fields map[string]interface{}) (*trbe.Game, error) {
	if _, err := GetGame(ctx, svcCtx, gameID); err != nil {
		return nil, err
	}
	if err := svcCtx.Dao.UpdateGameFields(ctx, gameID, fields); err != nil {
		return nil, errors.Wrap(err, "update game")
	}
	return svcCtx.Dao.GetGameByID(ctx, gameID)
}

func DeleteGame(ctx context.Context, svcCtx *svc.ServerCtx, gameID string) error {
	if _, err := GetGame(ctx, svcCtx, gameID); err != nil {
		return err
	}
	return svcCtx.Dao.DeleteGame(ctx, gameID)
}

// GetUpcomingGames lists games still ahead of now, soonest first.
func GetUpcomingGames(ctx context.Context, svcCtx *svc.ServerCtx, limit int) ([]trbe.Game, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return svcCtx.Dao.UpcomingGames(ctx, limit)
}

// FinishGame records the final score and closes the game.
func FinishGame(ctx context.Context, svcCtx *svc.ServerCtx, gameID string, homeScore, awayScore int) (*trbe.Game, error) {
	game, err := GetGame(ctx, svcCtx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status == trbe.GameStatusFinished || game.Status == trbe.GameStatusCancelled {
		return nil, errcode.NewCustomErr("game is already closed")
	}
	fields := map[string]interface{}{
		"status":     trbe.GameStatusFinished,
		"home_score": homeScore,
		"away_score": awayScore,
	}
	if err := svcCtx.Dao.UpdateGameFields(ctx, gameID, fields); err != nil {
		return nil, errors.Wrap(err, "finish game")
	}
	return svcCtx.Dao.GetGameByID(ctx, gameID)
}
