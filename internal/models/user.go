package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a wallet-linked user profile
type User struct {
	ID                uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WalletAddress     string      `gorm:"type:varchar(64);uniqueIndex;not null" json:"wallet_address"`
	ReferralCode      string      `gorm:"type:varchar(16);uniqueIndex;not null" json:"referral_code"`
	ReferredBy        *string     `gorm:"type:varchar(16)" json:"referred_by,omitempty"`
	TwitterHandle     *string     `gorm:"type:varchar(50)" json:"twitter_handle,omitempty"`
	TelegramID        *string     `gorm:"type:varchar(50)" json:"telegram_id,omitempty"`
	Badges            StringArray `gorm:"type:jsonb" json:"badges"`
	TotalPoints       int         `gorm:"not null;default:0" json:"total_points"`
	MissionsCompleted StringArray `gorm:"type:jsonb" json:"missions_completed"`
	TotalTrades       int         `gorm:"not null;default:0" json:"total_trades"`
	ReferralEarnings  int         `gorm:"not null;default:0" json:"referral_earnings"`
	AirdropsClaimed   int         `gorm:"not null;default:0" json:"airdrops_claimed"`
	LastActive        time.Time   `gorm:"index" json:"last_active"`
	CreatedAt         time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BeforeCreate sets a UUID primary key if one was not provided
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserStats aggregates user counts for reporting
type UserStats struct {
	TotalUsers             int64 `json:"total_users"`
	ActiveUsers            int64 `json:"active_users"`
	TotalReferrals         int64 `json:"total_referrals"`
	TotalMissionsCompleted int64 `json:"total_missions_completed"`
}
