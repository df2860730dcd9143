package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AirdropStatus represents the settlement state of an airdrop
type AirdropStatus string

// Airdrop status values. Transitions are one-directional:
// pending -> processing -> (completed | failed).
const (
	AirdropStatusPending    AirdropStatus = "pending"
	AirdropStatusProcessing AirdropStatus = "processing"
	AirdropStatusCompleted  AirdropStatus = "completed"
	AirdropStatusFailed     AirdropStatus = "failed"
)

// AirdropType represents the origin of an airdrop grant
type AirdropType string

// Airdrop type values
const (
	AirdropTypeRandomGrant   AirdropType = "random_grant"
	AirdropTypeMissionReward AirdropType = "mission_reward"
	AirdropTypeReferralBonus AirdropType = "referral_bonus"
	AirdropTypeWelcomeBonus  AirdropType = "welcome_bonus"
)

// Airdrop represents a discrete token-reward grant for one user
type Airdrop struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	User            User          `gorm:"foreignKey:UserID" json:"-"`
	WalletAddress   string        `gorm:"type:varchar(64);not null;index" json:"wallet_address"`
	Amount          int           `gorm:"not null" json:"amount"`
	Status          AirdropStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Type            AirdropType   `gorm:"type:varchar(20);not null" json:"type"`
	Reason          string        `gorm:"type:text" json:"reason"`
	IdempotencyKey  *string       `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	TransactionHash *string       `gorm:"type:varchar(66)" json:"transaction_hash,omitempty"`
	ScheduledFor    *time.Time    `gorm:"index" json:"scheduled_for,omitempty"`
	ProcessedAt     *time.Time    `json:"processed_at,omitempty"`
	CreatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// BeforeCreate sets a UUID primary key if one was not provided
func (a *Airdrop) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AirdropStats aggregates airdrop counts for reporting
type AirdropStats struct {
	TotalAirdrops   int64   `json:"total_airdrops"`
	TotalAmount     int64   `json:"total_amount"`
	PendingAirdrops int64   `json:"pending_airdrops"`
	CompletedToday  int64   `json:"completed_today"`
	AverageAmount   float64 `json:"average_amount"`
}
