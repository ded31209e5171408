package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Inteli-Club5/trbe-backend/api/middleware"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/kit/validator"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	service "github.com/Inteli-Club5/trbe-backend/service/v1"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

func CreateClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateClubReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		club, err := service.CreateClub(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, club)
	}
}

func GetClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		club, err := service.GetClub(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, club)
	}
}

func ListClubsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		result, err := service.ListClubs(c.Request.Context(), svcCtx, page.Page, page.PageSize, c.Query("search"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func UpdateClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.UpdateClubReq{}
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
		if req.Logo != nil {
			fields["logo"] = *req.Logo
		}
		if req.League != nil {
			fields["league"] = *req.League
		}
		if req.Country != nil {
			fields["country"] = *req.Country
		}

		club, err := service.UpdateClub(c.Request.Context(), svcCtx, c.Params.ByName("id"), fields)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, club)
	}
}

func DeleteClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		clubID := c.Params.ByName("id")
		if err := service.DeleteClub(c.Request.Context(), svcCtx, clubID); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"deleted": clubID})
	}
}

func FollowClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		follow, err := service.FollowClub(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, follow)
	}
}

func UnfollowClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.UnfollowClub(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id")); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"unfollowed": c.Params.ByName("id")})
	}
}

func GetFollowedClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		club, err := service.GetFollowedClub(c.Request.Context(), svcCtx, middleware.AuthUserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, club)
	}
}

func ListClubFollowersHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		result, err := service.ListClubFollowers(c.Request.Context(), svcCtx, c.Params.ByName("id"), page.Page, page.PageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func GetChainClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := service.GetChainClub(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, resp)
	}
}

func ListChainClubIDsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := service.ListChainClubIDs(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, ids)
	}
}

func CheckChainMemberHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.Query("wallet")
		if wallet == "" {
			wallet = middleware.WalletAddress(c)
		}
		if wallet == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		isMember, err := service.CheckChainMember(c.Request.Context(), svcCtx, c.Params.ByName("id"), wallet)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"member": isMember})
	}
}

func UpdateChainPriceHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := struct {
			Price string `json:"price" binding:"required"`
		}{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		txHash, err := service.UpdateChainJoinPrice(c.Request.Context(), svcCtx, c.Params.ByName("id"), price)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"tx": txHash})
	}
}

func WithdrawChainClubHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := struct {
			Amount string `json:"amount" binding:"required"`
		}{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		txHash, err := service.WithdrawFromChainClub(c.Request.Context(), svcCtx, c.Params.ByName("id"), amount)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"tx": txHash})
	}
}
