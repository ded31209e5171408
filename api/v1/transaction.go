package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	service "github.com/Inteli-Club5/trbe-backend/service/v1"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

func GetTransactionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := service.GetTransaction(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, t)
	}
}

func ListUserTransactionsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.TransactionListReq{}
		if err := c.ShouldBindQuery(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Normalize()

		result, err := service.ListUserTransactions(c.Request.Context(), svcCtx, c.Params.ByName("id"), req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func GetTransactionSummaryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var from, to *time.Time
		if v := c.Query("date_from"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				xhttp.Error(c, errcode.ErrInvalidParams)
				return
			}
			from = &t
		}
		if v := c.Query("date_to"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				xhttp.Error(c, errcode.ErrInvalidParams)
				return
			}
			to = &t
		}

		summary, err := service.GetTransactionSummary(c.Request.Context(), svcCtx, c.Params.ByName("id"), from, to)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, summary)
	}
}

func GetReputationHistoryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		result, err := service.GetReputationHistory(c.Request.Context(), svcCtx, c.Params.ByName("id"), page.Page, page.PageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func GetLeaderboardHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		board := c.DefaultQuery("board", service.LeaderboardTokens)

		entries, err := service.GetLeaderboard(c.Request.Context(), svcCtx, board, page.Page, page.PageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, entries)
	}
}
