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

func CreateEventHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateEventReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		event, err := service.CreateEvent(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, event)
	}
}

func GetEventHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := service.GetEvent(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, event)
	}
}

func ListEventsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		status := trbe.EventStatus(c.Query("status"))

		result, err := service.ListEvents(c.Request.Context(), svcCtx, page.Page, page.PageSize, c.Query("club_id"), status)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func UpdateEventHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.UpdateEventReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		fields := map[string]interface{}{}
		if req.Title != nil {
			fields["title"] = *req.Title
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
		if req.Location != nil {
			fields["location"] = *req.Location
		}
		if req.StartTime != nil {
			fields["start_time"] = *req.StartTime
		}
		if req.EndTime != nil {
			fields["end_time"] = *req.EndTime
		}
		if req.Status != nil {
			fields["status"] = *req.Status
		}
		if req.MaxParticipants != nil {
			fields["max_participants"] = *req.MaxParticipants
		}

		event, err := service.UpdateEvent(c.Request.Context(), svcCtx, c.Params.ByName("id"), fields)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, event)
	}
}

func DeleteEventHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Params.ByName("id")
		if err := service.DeleteEvent(c.Request.Context(), svcCtx, eventID); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"deleted": eventID})
	}
}

func RegisterForEventHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg, err := service.RegisterForEvent(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, reg)
	}
}

func CancelEventRegistrationHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.CancelEventRegistration(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id")); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"cancelled": c.Params.ByName("id")})
	}
}

func ConfirmAttendanceHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			userID = middleware.AuthUserID(c)
		}

		reg, err := service.ConfirmAttendance(c.Request.Context(), svcCtx, userID, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, reg)
	}
}

func ListEventParticipantsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		result, err := service.ListEventParticipants(c.Request.Context(), svcCtx, c.Params.ByName("id"), page.Page, page.PageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func CreateCheckInHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateCheckInReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		checkIn, err := service.CreateCheckIn(c.Request.Context(), svcCtx, middleware.AuthUserID(c), req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, checkIn)
	}
}

func ListCheckInsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		result, err := service.ListCheckIns(c.Request.Context(), svcCtx, c.Params.ByName("id"), page.Page, page.PageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}
