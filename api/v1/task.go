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

func CreateTaskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateTaskReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		task, err := service.CreateTask(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, task)
	}
}

func GetTaskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, err := service.GetTask(c.Request.Context(), svcCtx, c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, task)
	}
}

func ListTasksHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		filter := dao.TaskFilter{
			Category:   trbe.TaskCategory(c.Query("category")),
			Difficulty: c.Query("difficulty"),
			ClubID:     c.Query("club_id"),
			OnlyLive:   c.Query("include_inactive") == "",
		}
		result, err := service.ListTasks(c.Request.Context(), svcCtx, page.Page, page.PageSize, filter)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func UpdateTaskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.UpdateTaskReq{}
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
		if req.Difficulty != nil {
			fields["difficulty"] = *req.Difficulty
		}
		if req.Tokens != nil {
			fields["tokens"] = *req.Tokens
		}
		if req.Experience != nil {
			fields["experience"] = *req.Experience
		}
		if req.IsActive != nil {
			fields["is_active"] = *req.IsActive
		}

		task, err := service.UpdateTask(c.Request.Context(), svcCtx, c.Params.ByName("id"), fields)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, task)
	}
}

func DeleteTaskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID := c.Params.ByName("id")
		if err := service.DeleteTask(c.Request.Context(), svcCtx, taskID); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"deleted": taskID})
	}
}

func StartTaskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userTask, err := service.StartTask(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, userTask)
	}
}

func UpdateTaskProgressHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.TaskProgressReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		userTask, err := service.UpdateTaskProgress(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id"), req.Progress)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, userTask)
	}
}

func FailTaskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		userTask, err := service.FailTask(c.Request.Context(), svcCtx, middleware.AuthUserID(c), c.Params.ByName("id"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, userTask)
	}
}

func GetUserTasksHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := trbe.UserTaskStatus(c.Query("status"))
		userTasks, err := service.GetUserTasks(c.Request.Context(), svcCtx, middleware.AuthUserID(c), status)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, userTasks)
	}
}

func GetAvailableTasksHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := service.GetAvailableTasks(c.Request.Context(), svcCtx, middleware.AuthUserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, tasks)
	}
}

func GetCompletedTasksHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := bindPage(c)
		result, err := service.GetCompletedTasks(c.Request.Context(), svcCtx, middleware.AuthUserID(c), page.Page, page.PageSize)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, result)
	}
}

func GetUserTaskStatsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := service.GetUserTaskStats(c.Request.Context(), svcCtx, middleware.AuthUserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, stats)
	}
}
