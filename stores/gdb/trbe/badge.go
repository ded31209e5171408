package trbe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeRarity string

const (
	BadgeRarityCommon    BadgeRarity = "COMMON"
	BadgeRarityRare      BadgeRarity = "RARE"
	BadgeRarityEpic      BadgeRarity = "EPIC"
	BadgeRarityLegendary BadgeRarity = "LEGENDARY"
)

// Badge shares the progress/reward shape of Task: crossing max_progress
// pays tokens and experience exactly once.
type Badge struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	Name        string      `gorm:"size:100;not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Icon        string      `gorm:"size:255" json:"icon"`
	Rarity      BadgeRarity `gorm:"size:20;default:COMMON" json:"rarity"`
	Category    string      `gorm:"size:50" json:"category"`

	MaxProgress int   `gorm:"not null;default:1" json:"max_progress"`
	Tokens      int64 `gorm:"not null;default:0" json:"tokens"`
	Experience  int64 `gorm:"not null;default:0" json:"experience"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func BadgeTableName() string {
	return "badges"
}

func (Badge) TableName() string {
	return BadgeTableName()
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// UserBadge is unique on (user_id, badge_id); progress only moves forward.
// earned_at is set when progress first reaches the badge threshold.
type UserBadge struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	UserID  string `gorm:"size:36;not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID string `gorm:"size:36;not null;uniqueIndex:idx_user_badge" json:"badge_id"`

	Progress int        `gorm:"not null;default:0" json:"progress"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Badge *Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func UserBadgeTableName() string {
	return "user_badges"
}

func (UserBadge) TableName() string {
	return UserBadgeTableName()
}

func (ub *UserBadge) BeforeCreate(tx *gorm.DB) error {
	if ub.ID == "" {
		ub.ID = uuid.NewString()
	}
	return nil
}

// Completed reports whether the badge threshold has been crossed.
func (ub *UserBadge) Completed() bool {
	return ub.EarnedAt != nil
}
