package trbe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeEarned    TransactionType = "EARNED"
	TransactionTypeSpent     TransactionType = "SPENT"
	TransactionTypePurchased TransactionType = "PURCHASED"
	TransactionTypeRefunded  TransactionType = "REFUNDED"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable ledger row appended for every token balance
// change. balance_after = balance_before + amount, and balance_after equals
// the user's balance at the moment the row is written.
type Transaction struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;index" json:"user_id"`

	Type   TransactionType   `gorm:"size:20;not null" json:"type"`
	Status TransactionStatus `gorm:"size:20;default:COMPLETED" json:"status"`

	Amount        int64 `gorm:"not null" json:"amount"`
	BalanceBefore int64 `gorm:"not null" json:"balance_before"`
	BalanceAfter  int64 `gorm:"not null" json:"balance_after"`

	Description string `gorm:"size:255" json:"description"`
	Reference   string `gorm:"size:100" json:"reference,omitempty"`

	ProcessedAt time.Time `json:"processed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func TransactionTableName() string {
	return "transactions"
}

func (Transaction) TableName() string {
	return TransactionTableName()
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type ReputationAction string

const (
	ReputationActionPositive ReputationAction = "POSITIVE"
	ReputationActionNegative ReputationAction = "NEGATIVE"
)

type ReputationCategory string

const (
	ReputationCategoryEngagement  ReputationCategory = "ENGAGEMENT"
	ReputationCategoryAchievement ReputationCategory = "ACHIEVEMENT"
	ReputationCategorySocial      ReputationCategory = "SOCIAL"
	ReputationCategoryModeration  ReputationCategory = "MODERATION"
)

// ReputationHistory is the reputation ledger. points is the delta the caller
// asked for; applied is the delta that actually landed on the score after
// clamping to [0, 1000]. The two differ only when the score hit a bound.
type ReputationHistory struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;index" json:"user_id"`

	Action   ReputationAction   `gorm:"size:20;not null" json:"action"`
	Category ReputationCategory `gorm:"size:20;not null" json:"category"`

	Points  int    `gorm:"not null" json:"points"`
	Applied int    `gorm:"not null" json:"applied"`
	Reason  string `gorm:"size:255" json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func ReputationHistoryTableName() string {
	return "reputation_history"
}

func (ReputationHistory) TableName() string {
	return ReputationHistoryTableName()
}

func (r *ReputationHistory) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
