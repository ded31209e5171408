package trbe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusBanned    UserStatus = "BANNED"
)

type UserRole string

const (
	UserRoleFan       UserRole = "FAN"
	UserRoleModerator UserRole = "MODERATOR"
	UserRoleAdmin     UserRole = "ADMIN"
)

// User is the aggregate root of the progression economy. tokens, experience,
// level and reputation_score are only ever mutated through the progression
// service, which locks the row for the duration of each update.
type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;size:30;not null" json:"username"`
	PasswordHash string `gorm:"size:100" json:"-"`
	FirstName    string `gorm:"size:50" json:"first_name"`
	LastName     string `gorm:"size:50" json:"last_name"`
	DisplayName  string `gorm:"size:100" json:"display_name"`
	Avatar       string `gorm:"size:255" json:"avatar"`
	Bio          string `gorm:"type:text" json:"bio"`
	Location     string `gorm:"size:100" json:"location"`
	Language     string `gorm:"size:10;default:en" json:"language"`

	WalletAddress string `gorm:"size:42;index" json:"wallet_address"`

	Role   UserRole   `gorm:"size:20;default:FAN" json:"role"`
	Status UserStatus `gorm:"size:20;default:ACTIVE" json:"status"`

	Tokens          int64 `gorm:"not null;default:0" json:"tokens"`
	Experience      int64 `gorm:"not null;default:0" json:"experience"`
	Level           int   `gorm:"not null;default:1" json:"level"`
	ReputationScore int   `gorm:"not null;default:500" json:"reputation_score"`

	TotalTasks    int `gorm:"not null;default:0" json:"total_tasks"`
	TotalBadges   int `gorm:"not null;default:0" json:"total_badges"`
	TotalCheckIns int `gorm:"not null;default:0" json:"total_check_ins"`
	TotalEvents   int `gorm:"not null;default:0" json:"total_events"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func UserTableName() string {
	return "users"
}

func (User) TableName() string {
	return UserTableName()
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SocialStats mirrors a user's off-platform social activity. The counters
// feed the same weighted score formula the ScoreUser contract applies
// on-chain.
type SocialStats struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	Likes       int64     `gorm:"not null;default:0" json:"likes"`
	Comments    int64     `gorm:"not null;default:0" json:"comments"`
	Retweets    int64     `gorm:"not null;default:0" json:"retweets"`
	Hashtags    int64     `gorm:"not null;default:0" json:"hashtags"`
	CheckEvents int64     `gorm:"not null;default:0" json:"check_events"`
	GamesID     int64     `gorm:"not null;default:0" json:"games_id"`
	Reports     int64     `gorm:"not null;default:0" json:"reports"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func SocialStatsTableName() string {
	return "social_stats"
}

func (SocialStats) TableName() string {
	return SocialStatsTableName()
}

func (s *SocialStats) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
