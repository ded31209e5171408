package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Inteli-Club5/trbe-backend/api/middleware"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/kit/validator"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	service "github.com/Inteli-Club5/trbe-backend/service/v1"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

func CreateBadgeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateBadgeReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		badge, err := service.CreateBadge(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, badge)
	}
}

func GetBadgeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		badge, err := service.GetBadge(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, badge)
	}
}

func ListBadgesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		rarity := trbe.BadgeRarity(c.Query("rarity"))
		onlyActive := c.Query("include_inactive") == ""

		result, err := service.ListBadges(c.Request.Context(), svcCtx, page.Page, page.PageSize, rarity, onlyActive)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func UpdateBadgeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.UpdateBadgeReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		fields := map[string]interface{}{}
		if req.Name != nil {
			fields["name"] = *req.Name
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
		if req.Icon != nil {
			fields["icon"] = *req.Icon
		}
		if req.IsActive != nil {
			fields["is_active"] = *req.IsActive
		}

		badge, err := service.UpdateBadge(c.Request.Context(), svcCtx, c.Params.ByName("id"), fields)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, badge)
	}
}

func DeleteBadgeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		badgeID := c.Params.ByName("id")
		if err := service.DeleteBadge(c.Request.Context(), svcCtx, badgeID); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"deleted": badgeID})
	}
}

func AwardBadgeProgressHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.BadgeProgressReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		userBadge, err := service.AwardBadgeProgress(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id"), req.Progress)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, userBadge)
	}
}

func GetUserBadgesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		result, err := service.GetUserBadges(c.Request.Context(), svcCtx, middleware.AuthUserID(c), page.Page, page.PageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func GetBadgeProgressHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userBadge, err := service.GetBadgeProgress(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, userBadge)
	}
}

func GetPopularBadgesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		badges, err := service.GetPopularBadges(c.Request.Context(), svcCtx, atoiOrZero(c.Query("limit")))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, badges)
	}
}

func GetUserBadgeStatsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := service.GetUserBadgeStats(c.Request.Context(), svcCtx, middleware.AuthUserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, stats)
	}
}
