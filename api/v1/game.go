package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/kit/validator"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	service "github.com/Inteli-Club5/trbe-backend/service/v1"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

func CreateGameHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateGameReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		game, err := service.CreateGame(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, game)
	}
}

func GetGameHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, err := service.GetGame(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, game)
	}
}

func ListGamesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)

		filter := dao.GameFilter{
			ClubID:       c.Query("club_id"),
			Status:       trbe.GameStatus(c.Query("status")),
			Type:         trbe.GameType(c.Query("type")),
			Championship: c.Query("championship"),
			Search:       c.Query("search"),
		}
		if from := c.Query("date_from"); from != "" {
			t, err := time.Parse(time.RFC3339, from)
			if err != nil {
				xhttp.Error(c, errcode.ErrInvalidParams)
				return
			}
			filter.DateFrom = t
		}
		if to := c.Query("date_to"); to != "" {
			t, err := time.Parse(time.RFC3339, to)
			if err != nil {
				xhttp.Error(c, errcode.ErrInvalidParams)
				return
			}
			filter.DateTo = t
		}

		result, err := service.ListGames(c.Request.Context(), svcCtx, page.Page, page.PageSize, filter)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func UpdateGameHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.UpdateGameReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		fields := map[string]interface{}{}
		if req.HomeTeam != nil {
			fields["home_team"] = *req.HomeTeam
		}
		if req.AwayTeam != nil {
			fields["away_team"] = *req.AwayTeam
		}
		if req.HomeScore != nil {
			fields["home_score"] = *req.HomeScore
		}
		if req.AwayScore != nil {
			fields["away_score"] = *req.AwayScore
		}
		if req.Date != nil {
			fields["date"] = *req.Date
		}
		if req.Stadium != nil {
			fields["stadium"] = *req.Stadium
		}
		if req.Championship != nil {
			fields["championship"] = *req.Championship
		}
		if req.Type != nil {
			fields["type"] = *req.Type
		}
		if req.Status != nil {
			fields["status"] = *req.Status
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
		if req.Attendance != nil {
			fields["attendance"] = *req.Attendance
		}

		game, err := service.UpdateGame(c.Request.Context(), svcCtx, c.Params.ByName("id"), fields)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, game)
	}
}

func DeleteGameHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Params.ByName("id")
		if err := service.DeleteGame(c.Request.Context(), svcCtx, gameID); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"deleted": gameID})
	}
}

func GetUpcomingGamesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		games, err := service.GetUpcomingGames(c.Request.Context(), svcCtx, atoiOrZero(c.Query("limit")))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, games)
	}
}

func FinishGameHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := struct {
			HomeScore int `json:"home_score" binding:"min=0"`
			AwayScore int `json:"away_score" binding:"min=0"`
		}{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		game, err := service.FinishGame(c.Request.Context(), svcCtx, c.Params.ByName("id"), req.HomeScore, req.AwayScore)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, game)
	}
}
