package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func CreateTask(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateTaskReq) (*trbe.Task, error) {
	task := &trbe.Task{
		Title:       req.Title,
		Description: req.Description,
		Category:    trbe.TaskCategory(req.Category),
		Difficulty:  req.Difficulty,
		MaxProgress: req.MaxProgress,
		Tokens:      req.Tokens,
		Experience:  req.Experience,
		IsActive:    true,
		ClubID:      req.ClubID,
		FanGroupID:  req.FanGroupID,
		EventID:     req.EventID,
	}
	if task.MaxProgress <= 0 {
		task.MaxProgress = 1
	}
	if err := svcCtx.Dao.CreateTask(ctx, task); err != nil {
		return nil, errors.Wrap(err, "create task")
	}
	return task, nil
}

func GetTask(ctx context.Context, svcCtx *svc.ServerCtx, taskID string) (*trbe.Task, error) {
	task, err := svcCtx.Dao.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrTaskNotFound
		}
		return nil, errors.Wrap(err, "get task")
	}
	return task, nil
}

func ListTasks(ctx context.Context, svcCtx *svc.ServerCtx, page, pageSize int, filter dao.TaskFilter) (*types.PageResult, error) {
	tasks, total, err := svcCtx.Dao.ListTasks(ctx, page, pageSize, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list tasks")
	}
	return types.NewPageResult(tasks, total, page, pageSize), nil
}

func UpdateTask(ctx context.Context, svcCtx *svc.ServerCtx, taskID string, fields map[string]interface{}) (*trbe.Task, error) {
	if _, err := GetTask(ctx, svcCtx, taskID); err != nil {
		return nil, err
	}
	if err := svcCtx.Dao.UpdateTaskFields(ctx, taskID, fields); err != nil {
		return nil, errors.Wrap(err, "update task")
	}
	return svcCtx.Dao.GetTaskByID(ctx, taskID)
}

func DeleteTask(ctx context.Context, svcCtx *svc.ServerCtx, taskID string) error {
	if _, err := GetTask(ctx, svcCtx, taskID); err != nil {
		return err
	}
	return svcCtx.Dao.DeleteTask(ctx, taskID)
}

// StartTask assigns the task to the user. Restarting is only allowed after a
// FAILED attempt; any other existing row is rejected.
func StartTask(ctx context.Context, svcCtx *svc.ServerCtx, userID, taskID string) (*trbe.UserTask, error) {
	task, err := GetTask(ctx, svcCtx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsActive {
		return nil, errcode.NewCustomErr("task is not active")
	}

	existing, err := svcCtx.Dao.GetUserTask(ctx, userID, taskID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "check user task")
	}
	if err == nil {
		if existing.Status != trbe.UserTaskStatusFailed {
			return nil, errcode.ErrTaskStarted
		}
		existing.Status = trbe.UserTaskStatusAssigned
		existing.Progress = 0
		existing.CompletedAt = nil
		existing.StartedAt = time.Now()
		if err := svcCtx.Dao.SaveUserTask(ctx, nil, existing); err != nil {
			return nil, errors.Wrap(err, "restart user task")
		}
		existing.Task = task
		return existing, nil
	}

	userTask := &trbe.UserTask{
		UserID:    userID,
		TaskID:    taskID,
		Status:    trbe.UserTaskStatusAssigned,
		StartedAt: time.Now(),
	}
	if err := svcCtx.Dao.CreateUserTask(ctx, nil, userTask); err != nil {
		return nil, errors.Wrap(err, "create user task")
	}
	userTask.Task = task
	return userTask, nil
}

// UpdateTaskProgress moves the user's progress on a task. Crossing the task
// threshold completes it and pays the reward exactly once; the status write,
// the payout and the ledger row commit or roll back together.
func UpdateTaskProgress(ctx context.Context, svcCtx *svc.ServerCtx, userID, taskID string, progress int) (*trbe.UserTask, error) {
	task, err := GetTask(ctx, svcCtx, taskID)
	if err != nil {
		return nil, err
	}
	if progress > task.MaxProgress {
		return nil, errcode.ErrInvalidProgress
	}

	var userTask *trbe.UserTask
	err = svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		var err error
		userTask, err = svcCtx.Dao.GetUserTaskForUpdate(ctx, tx, userID, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrTaskNotAssigned
			}
			return errors.Wrap(err, "load user task")
		}

		if userTask.Status.Terminal() {
			return errcode.ErrTaskTerminal
		}

		// Progress never regresses while the row is live.
		if progress > userTask.Progress {
			userTask.Progress = progress
		}

		completed := userTask.Progress >= task.MaxProgress
		if completed {
			now := time.Now()
			userTask.Status = trbe.UserTaskStatusCompleted
			userTask.CompletedAt = &now
		} else {
			userTask.Status = trbe.UserTaskStatusInProgress
		}

		if err := svcCtx.Dao.SaveUserTask(ctx, tx, userTask); err != nil {
			return errors.Wrap(err, "save user task")
		}

		if !completed {
			return nil
		}

		user, err := svcCtx.Dao.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrUserNotFound
			}
			return errors.Wrap(err, "load user")
		}
		if err := awardRewards(ctx, svcCtx, tx, user, task.Tokens, task.Experience, "task:"+task.ID); err != nil {
			return err
		}
		user.TotalTasks++
		return svcCtx.Dao.SaveUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	userTask.Task = task
	return userTask, nil
}

// FailTask marks an attempt as failed; no reward is paid and further
// progress submissions are rejected.
func FailTask(ctx context.Context, svcCtx *svc.ServerCtx, userID, taskID string) (*trbe.UserTask, error) {
	var userTask *trbe.UserTask
	err := svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		var err error
		userTask, err = svcCtx.Dao.GetUserTaskForUpdate(ctx, tx, userID, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrTaskNotAssigned
			}
			return errors.Wrap(err, "load user task")
		}
		if userTask.Status.Terminal() {
			return errcode.ErrTaskTerminal
		}
		userTask.Status = trbe.UserTaskStatusFailed
		return svcCtx.Dao.SaveUserTask(ctx, tx, userTask)
	})
	if err != nil {
		return nil, err
	}
	return userTask, nil
}

func GetUserTasks(ctx context.Context, svcCtx *svc.ServerCtx, userID string, status trbe.UserTaskStatus) ([]trbe.UserTask, error) {
	return svcCtx.Dao.ListUserTasks(ctx, userID, status)
}

func GetAvailableTasks(ctx context.Context, svcCtx *svc.ServerCtx, userID string) ([]trbe.Task, error) {
	return svcCtx.Dao.ListAvailableTasks(ctx, userID)
}

func GetCompletedTasks(ctx context.Context, svcCtx *svc.ServerCtx, userID string, page, pageSize int) (*types.PageResult, error) {
	userTasks, total, err := svcCtx.Dao.ListCompletedUserTasks(ctx, userID, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list completed tasks")
	}
	return types.NewPageResult(userTasks, total, page, pageSize), nil
}

// GetUserTaskStats aggregates the user's task activity for the stats page.
func GetUserTaskStats(ctx context.Context, svcCtx *svc.ServerCtx, userID string) (*types.UserTaskStats, error) {
	userTasks, err := svcCtx.Dao.ListUserTasks(ctx, userID, "")
	if err != nil {
		return nil, errors.Wrap(err, "list user tasks")
	}

	stats := &types.UserTaskStats{TotalTasks: len(userTasks)}
	for _, ut := range userTasks {
		switch ut.Status {
		case trbe.UserTaskStatusCompleted:
			stats.CompletedTasks++
			if ut.Task != nil {
				stats.TotalTokens += ut.Task.Tokens
				stats.TotalExperience += ut.Task.Experience
			}
		case trbe.UserTaskStatusInProgress, trbe.UserTaskStatusAssigned:
			stats.ActiveTasks++
		case trbe.UserTaskStatusFailed:
			stats.FailedTasks++
		}
	}
	return stats, nil
}
