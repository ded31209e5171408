package types

import (
	"time"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

type RegisterReq struct {
	Username      string `json:"username" binding:"required,min=3,max=50"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
	DisplayName   string `json:"display_name" binding:"omitempty,max=100"`
	WalletAddress string `json:"wallet_address" binding:"omitempty,len=42"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *trbe.User `json:"user"`
}

type UpdateUserReq struct {
	FirstName     *string `json:"first_name" binding:"omitempty,max=50"`
	LastName      *string `json:"last_name" binding:"omitempty,max=50"`
	DisplayName   *string `json:"display_name" binding:"omitempty,max=100"`
	Bio           *string `json:"bio" binding:"omitempty,max=500"`
	Avatar        *string `json:"avatar" binding:"omitempty,url"`
	Location      *string `json:"location" binding:"omitempty,max=100"`
	Language      *string `json:"language" binding:"omitempty,max=10"`
	WalletAddress *string `json:"wallet_address" binding:"omitempty,len=42"`
}

type TokenUpdateReq struct {
	Amount int64  `json:"amount" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=EARNED SPENT PURCHASED REFUNDED"`
}

type ExperienceUpdateReq struct {
	Amount int64 `json:"amount" binding:"required"`
}

type ReputationUpdateReq struct {
	Points   int    `json:"points" binding:"required"`
	Reason   string `json:"reason" binding:"required,max=200"`
	Category string `json:"category" binding:"omitempty,oneof=ENGAGEMENT ACHIEVEMENT SOCIAL MODERATION"`
}

// RankEntry is one leaderboard row.
type RankEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	Level       int    `json:"level"`
	Score       int64  `json:"score"`
}

type UserRankResp struct {
	UserID         string `json:"user_id"`
	TokenRank      int64  `json:"token_rank"`
	ReputationRank int64  `json:"reputation_rank"`
	Tokens         int64  `json:"tokens"`
	Reputation     int    `json:"reputation"`
}

// ActivityItem is one entry of the merged recent-activity feed.
type ActivityItem struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Detail    interface{} `json:"detail"`
}

type UserStatsResp struct {
	UserID        string `json:"user_id"`
	Level         int    `json:"level"`
	Experience    int64  `json:"experience"`
	NextLevelAt   int64  `json:"next_level_at"`
	Tokens        int64  `json:"tokens"`
	Reputation    int    `json:"reputation"`
	TotalTasks    int    `json:"total_tasks"`
	TotalBadges   int    `json:"total_badges"`
	TotalCheckIns int    `json:"total_check_ins"`
	TotalEvents   int    `json:"total_events"`
}
