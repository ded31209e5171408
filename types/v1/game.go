package types

import "time"

type CreateGameReq struct {
	ClubID       string    `json:"club_id" binding:"required,uuid"`
	HomeTeam     string    `json:"home_team" binding:"required,max=100"`
	AwayTeam     string    `json:"away_team" binding:"required,max=100"`
	Date         time.Time `json:"date" binding:"required"`
	Stadium      string    `json:"stadium" binding:"omitempty,max=150"`
	Championship string    `json:"championship" binding:"omitempty,max=50"`
	Type         string    `json:"type" binding:"omitempty,oneof=HOME AWAY NEUTRAL"`
	Description  string    `json:"description" binding:"max=2000"`
}

type UpdateGameReq struct {
	HomeTeam     *string    `json:"home_team" binding:"omitempty,max=100"`
	AwayTeam     *string    `json:"away_team" binding:"omitempty,max=100"`
	HomeScore    *int       `json:"home_score" binding:"omitempty,min=0"`
	AwayScore    *int       `json:"away_score" binding:"omitempty,min=0"`
	Date         *time.Time `json:"date"`
	Stadium      *string    `json:"stadium" binding:"omitempty,max=150"`
	Championship *string    `json:"championship" binding:"omitempty,max=50"`
	Type         *string    `json:"type" binding:"omitempty,oneof=HOME AWAY NEUTRAL"`
	Status       *string    `json:"status" binding:"omitempty,oneof=SCHEDULED LIVE FINISHED CANCELLED POSTPONED"`
	Description  *string    `json:"description" binding:"omitempty,max=2000"`
	Attendance   *int       `json:"attendance" binding:"omitempty,min=0"`
}
