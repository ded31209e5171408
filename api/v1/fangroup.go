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

func CreateFanGroupHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateFanGroupReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		group, err := service.CreateFanGroup(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, group)
	}
}

func GetFanGroupHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		group, err := service.GetFanGroup(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, group)
	}
}

func ListFanGroupsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		result, err := service.ListFanGroups(c.Request.Context(), svcCtx, page.Page, page.PageSize, c.Query("club_id"), c.Query("search"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func UpdateFanGroupHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.UpdateFanGroupReq{}
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
		if req.IsPublic != nil {
			fields["is_public"] = *req.IsPublic
		}

		group, err := service.UpdateFanGroup(c.Request.Context(), svcCtx, c.Params.ByName("id"), fields)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, group)
	}
}

func DeleteFanGroupHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Params.ByName("id")
		if err := service.DeleteFanGroup(c.Request.Context(), svcCtx, groupID); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"deleted": groupID})
	}
}

func JoinFanGroupHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		membership, err := service.JoinFanGroup(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, membership)
	}
}

func LeaveFanGroupHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.LeaveFanGroup(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id")); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"left": c.Params.ByName("id")})
	}
}

func ApproveMembershipHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.MembershipDecisionReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		membership, err := service.ApproveMembership(c.Request.Context(), svcCtx, c.Params.ByName("id"), req.UserID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, membership)
	}
}

func RejectMembershipHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.MembershipDecisionReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		membership, err := service.RejectMembership(c.Request.Context(), svcCtx, c.Params.ByName("id"), req.UserID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, membership)
	}
}

func SetMembershipRoleHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.MembershipRoleReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		membership, err := service.SetMembershipRole(c.Request.Context(), svcCtx, c.Params.ByName("id"), req.UserID, trbe.MembershipRole(req.Role))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, membership)
	}
}

func ListGroupMembersHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		status := trbe.MembershipStatus(c.Query("status"))

		result, err := service.ListGroupMembers(c.Request.Context(), svcCtx, c.Params.ByName("id"), status, page.Page, page.PageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func GetMyMembershipHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		membership, err := service.GetUserMembership(c.Request.Context(), svcCtx, middleware.AuthUserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, membership)
	}
}
