package trbe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameStatus string

const (
	GameStatusScheduled GameStatus = "SCHEDULED"
	GameStatusLive      GameStatus = "LIVE"
	GameStatusFinished  GameStatus = "FINISHED"
	GameStatusCancelled GameStatus = "CANCELLED"
	GameStatusPostponed GameStatus = "POSTPONED"
)

type GameType string

const (
	GameTypeHome    GameType = "HOME"
	GameTypeAway    GameType = "AWAY"
	GameTypeNeutral GameType = "NEUTRAL"
)

type Game struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	ClubID string `gorm:"size:36;not null;index" json:"club_id"`

	HomeTeam  string `gorm:"size:100;not null" json:"home_team"`
	AwayTeam  string `gorm:"size:100;not null" json:"away_team"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`

	Date         time.Time  `gorm:"index" json:"date"`
	Stadium      string     `gorm:"size:150" json:"stadium"`
	Championship string     `gorm:"size:50" json:"championship"`
	Type         GameType   `gorm:"size:20;default:HOME" json:"type"`
	Status       GameStatus `gorm:"size:20;default:SCHEDULED" json:"status"`

	Description string `gorm:"type:text" json:"description"`
	Attendance  *int   `json:"attendance,omitempty"`

	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func GameTableName() string {
	return "games"
}

func (Game) TableName() string {
	return GameTableName()
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
