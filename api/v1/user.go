package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Inteli-Club5/trbe-backend/api/middleware"
	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/kit/validator"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	service "github.com/Inteli-Club5/trbe-backend/service/v1"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

func RegisterHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.RegisterReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		user, err := service.Register(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, user)
	}
}

func LoginHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.LoginReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		resp, err := service.Login(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, resp)
	}
}

func GetUserHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Params.ByName("id")
		if userID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		user, err := service.GetUser(c.Request.Context(), svcCtx, userID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, user)
	}
}

func GetUserByWalletHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Params.ByName("address")
		if address == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		user, err := service.GetUserByWallet(c.Request.Context(), svcCtx, address)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, user)
	}
}

func UpdateUserHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Params.ByName("id")
		req := types.UpdateUserReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		user, err := service.UpdateUser(c.Request.Context(), svcCtx, userID, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, user)
	}
}

func DeleteUserHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Params.ByName("id")
		if err := service.DeleteUser(c.Request.Context(), svcCtx, userID); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"deleted": userID})
	}
}

func ListUsersHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := types.PageReq{}
		if err := c.ShouldBindQuery(&page); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		page.Normalize()

		filter := dao.UserFilter{
			Search: c.Query("search"),
			Status: trbe.UserStatus(c.Query("status")),
			Role:   trbe.UserRole(c.Query("role")),
		}
		result, err := service.ListUsers(c.Request.Context(), svcCtx, page.Page, page.PageSize, filter)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func GetUserStatsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := service.GetUserStats(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, stats)
	}
}

func GetUserRankHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		rank, err := service.GetUserRank(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, rank)
	}
}

func GetRecentActivityHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if v := c.Query("limit"); v != "" {
			limit = atoiOrZero(v)
		}
		items, err := service.GetRecentActivity(c.Request.Context(), svcCtx, c.Params.ByName("id"), limit)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, items)
	}
}

func UpdateTokensHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.TokenUpdateReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		user, err := service.UpdateTokens(c.Request.Context(), svcCtx, c.Params.ByName("id"), req.Amount, trbe.TransactionType(req.Type))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, user)
	}
}

func UpdateExperienceHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.ExperienceUpdateReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		user, err := service.UpdateExperience(c.Request.Context(), svcCtx, c.Params.ByName("id"), req.Amount)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, user)
	}
}

func UpdateReputationHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.ReputationUpdateReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		action := trbe.ReputationActionPositive
		if req.Points < 0 {
			action = trbe.ReputationActionNegative
		}
		category := trbe.ReputationCategory(req.Category)
		if category == "" {
			category = trbe.ReputationCategoryEngagement
		}

		user, err := service.UpdateReputation(c.Request.Context(), svcCtx, c.Params.ByName("id"), req.Points, action, category, req.Reason)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, user)
	}
}

// MeHandler resolves the authenticated caller's own profile.
func MeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := service.GetUser(c.Request.Context(), svcCtx, middleware.AuthUserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, user)
	}
}
