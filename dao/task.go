package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func (d *Dao) CreateTask(c context.Context, task *trbe.Task) error {
	return d.DB.WithContext(c).Create(task).Error
}

func (d *Dao) GetTaskByID(c context.Context, id string) (*trbe.Task, error) {
	var task trbe.Task
	err := d.DB.WithContext(c).Where("id = ?", id).First(&task).Error
	return &task, err
}

func (d *Dao) UpdateTaskFields(c context.Context, id string, fields map[string]interface{}) error {
	return d.DB.WithContext(c).Model(&trbe.Task{}).Where("id = ?", id).Updates(fields).Error
}

func (d *Dao) DeleteTask(c context.Context, id string) error {
	return d.DB.WithContext(c).Where("id = ?", id).Delete(&trbe.Task{}).Error
}

type TaskFilter struct {
	Category   trbe.TaskCategory
	Difficulty string
	ClubID     string
	OnlyLive   bool
}

func (d *Dao) ListTasks(c context.Context, page, pageSize int, filter TaskFilter) ([]trbe.Task, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.Task{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.ClubID != "" {
		query = query.Where("club_id = ?", filter.ClubID)
	}
	if filter.OnlyLive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []trbe.Task
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&tasks).Error
	return tasks, total, err
}

func (d *Dao) GetUserTask(c context.Context, userID, taskID string) (*trbe.UserTask, error) {
	var userTask trbe.UserTask
	err := d.DB.WithContext(c).Preload("Task").
		Where("user_id = ? AND task_id = ?", userID, taskID).First(&userTask).Error
	return &userTask, err
}

// GetUserTaskForUpdate locks the progress row so two concurrent progress
// submissions cannot both observe a non-terminal status.
func (d *Dao) GetUserTaskForUpdate(c context.Context, tx *gorm.DB, userID, taskID string) (*trbe.UserTask, error) {
	var userTask trbe.UserTask
	err := locked(d.orDB(tx).WithContext(c)).
		Where("user_id = ? AND task_id = ?", userID, taskID).First(&userTask).Error
	return &userTask, err
}

func (d *Dao) CreateUserTask(c context.Context, tx *gorm.DB, userTask *trbe.UserTask) error {
	return d.orDB(tx).WithContext(c).Create(userTask).Error
}

func (d *Dao) SaveUserTask(c context.Context, tx *gorm.DB, userTask *trbe.UserTask) error {
	return d.orDB(tx).WithContext(c).Save(userTask).Error
}

func (d *Dao) ListUserTasks(c context.Context, userID string, status trbe.UserTaskStatus) ([]trbe.UserTask, error) {
	query := d.DB.WithContext(c).Preload("Task").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var userTasks []trbe.UserTask
	err := query.Order("updated_at DESC").Find(&userTasks).Error
	return userTasks, err
}

func (d *Dao) ListCompletedUserTasks(c context.Context, userID string, page, pageSize int) ([]trbe.UserTask, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.UserTask{}).
		Where("user_id = ? AND status = ?", userID, trbe.UserTaskStatusCompleted)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userTasks []trbe.UserTask
	err := query.Preload("Task").Order("completed_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&userTasks).Error
	return userTasks, total, err
}

// ListAvailableTasks returns live tasks the user has not started yet.
func (d *Dao) ListAvailableTasks(c context.Context, userID string) ([]trbe.Task, error) {
	var tasks []trbe.Task
	err := d.DB.WithContext(c).
		Where("is_active = ?", true).
		Where("id NOT IN (?)", d.DB.Model(&trbe.UserTask{}).
			Select("task_id").Where("user_id = ? AND status <> ?", userID, trbe.UserTaskStatusFailed)).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (d *Dao) RecentCompletedUserTasks(c context.Context, userID string, limit int) ([]trbe.UserTask, error) {
	var userTasks []trbe.UserTask
	err := d.DB.WithContext(c).Preload("Task").
		Where("user_id = ? AND status = ?", userID, trbe.UserTaskStatusCompleted).
		Order("completed_at DESC").Limit(limit).
		Find(&userTasks).Error
	return userTasks, err
}
