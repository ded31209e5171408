package trbe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "SCHEDULED"
	EventStatusOngoing   EventStatus = "ONGOING"
	EventStatusFinished  EventStatus = "FINISHED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

type Event struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"size:255" json:"location"`

	ClubID     string `gorm:"size:36;index" json:"club_id,omitempty"`
	FanGroupID string `gorm:"size:36;index" json:"fan_group_id,omitempty"`

	StartTime time.Time   `json:"start_time"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Status    EventStatus `gorm:"size:20;default:SCHEDULED" json:"status"`

	MaxParticipants int `gorm:"not null;default:0" json:"max_participants"`
	Participants    int `gorm:"not null;default:0" json:"participants"`

	// Reward paid through the progression engine when attendance is
	// confirmed.
	Tokens     int64 `gorm:"not null;default:0" json:"tokens"`
	Experience int64 `gorm:"not null;default:0" json:"experience"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func EventTableName() string {
	return "events"
}

func (Event) TableName() string {
	return EventTableName()
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "REGISTERED"
	RegistrationStatusConfirmed  RegistrationStatus = "CONFIRMED"
	RegistrationStatusCancelled  RegistrationStatus = "CANCELLED"
)

type EventRegistration struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	UserID  string `gorm:"size:36;not null;uniqueIndex:idx_user_event" json:"user_id"`
	EventID string `gorm:"size:36;not null;uniqueIndex:idx_user_event" json:"event_id"`

	Status       RegistrationStatus `gorm:"size:20;default:REGISTERED" json:"status"`
	RegisteredAt time.Time          `json:"registered_at"`
	ConfirmedAt  *time.Time         `json:"confirmed_at,omitempty"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func EventRegistrationTableName() string {
	return "event_registrations"
}

func (EventRegistration) TableName() string {
	return EventRegistrationTableName()
}

func (r *EventRegistration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.RegisteredAt.IsZero() {
		r.RegisteredAt = time.Now()
	}
	return nil
}

// CheckIn records presence at a game or venue. Creating one pays the
// configured check-in reward and bumps the user's social check counter.
type CheckIn struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;index" json:"user_id"`

	GameID   string `gorm:"size:36;index" json:"game_id,omitempty"`
	EventID  string `gorm:"size:36;index" json:"event_id,omitempty"`
	Location string `gorm:"size:255" json:"location"`

	CheckedInAt time.Time `gorm:"index" json:"checked_in_at"`
}

func CheckInTableName() string {
	return "check_ins"
}

func (CheckIn) TableName() string {
	return CheckInTableName()
}

func (c *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CheckedInAt.IsZero() {
		c.CheckedInAt = time.Now()
	}
	return nil
}
