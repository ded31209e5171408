package trbe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Club struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	ShortName   string `gorm:"size:20" json:"short_name"`
	Description string `gorm:"type:text" json:"description"`
	Logo        string `gorm:"size:255" json:"logo"`
	Country     string `gorm:"size:50" json:"country"`
	League      string `gorm:"size:100" json:"league"`

	// On-chain fan club id in the FanClubs contract, empty when the club has
	// no chain presence.
	ChainClubID string `gorm:"size:66" json:"chain_club_id,omitempty"`

	FollowersCount int  `gorm:"not null;default:0" json:"followers_count"`
	IsActive       bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ClubTableName() string {
	return "clubs"
}

func (Club) TableName() string {
	return ClubTableName()
}

func (c *Club) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ClubFollow enforces the single-club rule through the unique user_id index.
type ClubFollow struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	ClubID string `gorm:"size:36;not null;index" json:"club_id"`

	FollowedAt time.Time `json:"followed_at"`

	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}

func ClubFollowTableName() string {
	return "club_follows"
}

func (ClubFollow) TableName() string {
	return ClubFollowTableName()
}

func (f *ClubFollow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.FollowedAt.IsZero() {
		f.FollowedAt = time.Now()
	}
	return nil
}
