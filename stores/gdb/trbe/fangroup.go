package trbe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FanGroup struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Logo        string `gorm:"size:255" json:"logo"`
	ClubID      string `gorm:"size:36;index" json:"club_id,omitempty"`

	MembersCount int  `gorm:"not null;default:0" json:"members_count"`
	IsPublic     bool `gorm:"not null;default:true" json:"is_public"`
	IsActive     bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FanGroupTableName() string {
	return "fan_groups"
}

func (FanGroup) TableName() string {
	return FanGroupTableName()
}

func (g *FanGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "PENDING"
	MembershipStatusApproved MembershipStatus = "APPROVED"
	MembershipStatusRejected MembershipStatus = "REJECTED"
)

type MembershipRole string

const (
	MembershipRoleMember    MembershipRole = "MEMBER"
	MembershipRoleModerator MembershipRole = "MODERATOR"
	MembershipRoleLeader    MembershipRole = "LEADER"
)

// FanGroupMembership enforces the single-group rule through the unique
// user_id index. Leaving deletes the row, which is what frees the user to
// join another group.
type FanGroupMembership struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	UserID     string `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	FanGroupID string `gorm:"size:36;not null;index" json:"fan_group_id"`

	Status MembershipStatus `gorm:"size:20;default:PENDING" json:"status"`
	Role   MembershipRole   `gorm:"size:20;default:MEMBER" json:"role"`

	JoinedAt time.Time `json:"joined_at"`

	FanGroup *FanGroup `gorm:"foreignKey:FanGroupID" json:"fan_group,omitempty"`
}

func FanGroupMembershipTableName() string {
	return "fan_group_memberships"
}

func (FanGroupMembership) TableName() string {
	return FanGroupMembershipTableName()
}

func (m *FanGroupMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	return nil
}
