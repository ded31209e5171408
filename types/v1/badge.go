package types

type CreateBadgeReq struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Icon        string `json:"icon" binding:"omitempty,max=255"`
	Rarity      string `json:"rarity" binding:"omitempty,oneof=COMMON RARE EPIC LEGENDARY"`
	Category    string `json:"category" binding:"omitempty,max=50"`
	MaxProgress int    `json:"max_progress" binding:"omitempty,min=1"`
	Tokens      int64  `json:"tokens" binding:"omitempty,min=0"`
	Experience  int64  `json:"experience" binding:"omitempty,min=0"`
}

type UpdateBadgeReq struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

type BadgeProgressReq struct {
	Progress int `json:"progress" binding:"required,min=1"`
}

type UserBadgeStats struct {
	TotalBadges  int            `json:"total_badges"`
	EarnedBadges int            `json:"earned_badges"`
	ByRarity     map[string]int `json:"by_rarity"`
}
