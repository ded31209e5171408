package types

type CreateTaskReq struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Category    string `json:"category" binding:"omitempty,oneof=ENGAGEMENT SOCIAL ATTENDANCE GAME"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	MaxProgress int    `json:"max_progress" binding:"omitempty,min=1"`
	Tokens      int64  `json:"tokens" binding:"omitempty,min=0"`
	Experience  int64  `json:"experience" binding:"omitempty,min=0"`
	ClubID      string `json:"club_id" binding:"omitempty,uuid"`
	FanGroupID  string `json:"fan_group_id" binding:"omitempty,uuid"`
	EventID     string `json:"event_id" binding:"omitempty,uuid"`
}

type UpdateTaskReq struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Difficulty  *string `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	Tokens      *int64  `json:"tokens" binding:"omitempty,min=0"`
	Experience  *int64  `json:"experience" binding:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active"`
}

type TaskProgressReq struct {
	Progress int `json:"progress" binding:"min=0"`
}

type UserTaskStats struct {
	TotalTasks      int   `json:"total_tasks"`
	CompletedTasks  int   `json:"completed_tasks"`
	ActiveTasks     int   `json:"active_tasks"`
	FailedTasks     int   `json:"failed_tasks"`
	TotalTokens     int64 `json:"total_tokens"`
	TotalExperience int64 `json:"total_experience"`
}
