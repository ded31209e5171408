package types

import "time"

type CreateEventReq struct {
	Title           string     `json:"title" binding:"required,max=200"`
	Description     string     `json:"description" binding:"max=2000"`
	Location        string     `json:"location" binding:"omitempty,max=255"`
	ClubID          string     `json:"club_id" binding:"omitempty,uuid"`
	FanGroupID      string     `json:"fan_group_id" binding:"omitempty,uuid"`
	StartTime       time.Time  `json:"start_time" binding:"required"`
	EndTime         *time.Time `json:"end_time"`
	MaxParticipants int        `json:"max_participants" binding:"omitempty,min=0"`
	Tokens          int64      `json:"tokens" binding:"omitempty,min=0"`
	Experience      int64      `json:"experience" binding:"omitempty,min=0"`
}

type UpdateEventReq struct {
	Title           *string    `json:"title" binding:"omitempty,max=200"`
	Description     *string    `json:"description" binding:"omitempty,max=2000"`
	Location        *string    `json:"location" binding:"omitempty,max=255"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	Status          *string    `json:"status" binding:"omitempty,oneof=SCHEDULED ONGOING FINISHED CANCELLED"`
	MaxParticipants *int       `json:"max_participants" binding:"omitempty,min=0"`
}

type CreateCheckInReq struct {
	GameID   string `json:"game_id" binding:"omitempty,max=36"`
	EventID  string `json:"event_id" binding:"omitempty,uuid"`
	Location string `json:"location" binding:"omitempty,max=255"`
}
