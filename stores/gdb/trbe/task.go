package trbe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskCategory string

const (
	TaskCategoryEngagement TaskCategory = "ENGAGEMENT"
	TaskCategorySocial     TaskCategory = "SOCIAL"
	TaskCategoryAttendance TaskCategory = "ATTENDANCE"
	TaskCategoryGame       TaskCategory = "GAME"
)

// Task defines a reward-bearing activity. max_progress is the completion
// threshold; tokens and experience are paid once when a user's progress
// reaches it.
type Task struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Category    TaskCategory `gorm:"size:20;default:ENGAGEMENT" json:"category"`
	Difficulty  string       `gorm:"size:20" json:"difficulty"`

	MaxProgress int   `gorm:"not null;default:1" json:"max_progress"`
	Tokens      int64 `gorm:"not null;default:0" json:"tokens"`
	Experience  int64 `gorm:"not null;default:0" json:"experience"`

	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	ClubID     string `gorm:"size:36;index" json:"club_id,omitempty"`
	FanGroupID string `gorm:"size:36;index" json:"fan_group_id,omitempty"`
	EventID    string `gorm:"size:36;index" json:"event_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func TaskTableName() string {
	return "tasks"
}

func (Task) TableName() string {
	return TaskTableName()
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type UserTaskStatus string

const (
	UserTaskStatusAssigned   UserTaskStatus = "ASSIGNED"
	UserTaskStatusInProgress UserTaskStatus = "IN_PROGRESS"
	UserTaskStatusCompleted  UserTaskStatus = "COMPLETED"
	UserTaskStatusFailed     UserTaskStatus = "FAILED"
)

// Terminal reports whether the status admits no further progress updates.
func (s UserTaskStatus) Terminal() bool {
	return s == UserTaskStatusCompleted || s == UserTaskStatusFailed
}

// UserTask is the per-user progress row, unique on (user_id, task_id).
// Progress never decreases while the status is non-terminal.
type UserTask struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;uniqueIndex:idx_user_task" json:"user_id"`
	TaskID string `gorm:"size:36;not null;uniqueIndex:idx_user_task" json:"task_id"`

	Progress int            `gorm:"not null;default:0" json:"progress"`
	Status   UserTaskStatus `gorm:"size:20;default:ASSIGNED" json:"status"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

func UserTaskTableName() string {
	return "user_tasks"
}

func (UserTask) TableName() string {
	return UserTaskTableName()
}

func (ut *UserTask) BeforeCreate(tx *gorm.DB) error {
	if ut.ID == "" {
		ut.ID = uuid.NewString()
	}
	return nil
}
