package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MissionCategory represents the difficulty tier of a mission
type MissionCategory string

// Mission difficulty categories
const (
	MissionCategoryEasy   MissionCategory = "easy"
	MissionCategoryMedium MissionCategory = "medium"
	MissionCategoryHard   MissionCategory = "hard"
	MissionCategoryEpic   MissionCategory = "epic"
)

// RequirementType identifies the rule used to measure mission progress
type RequirementType string

// Mission requirement types. Progress evaluation dispatches exhaustively
// over these values; adding a new type requires a new evaluator case.
const (
	RequirementFirstTrade       RequirementType = "first_trade"
	RequirementHoldDuration     RequirementType = "hold_duration"
	RequirementSocialShare      RequirementType = "social_share"
	RequirementReferralCount    RequirementType = "referral_count"
	RequirementRewardClaimCount RequirementType = "reward_claim_count"
)

// Mission represents a goal definition with a completion rule and a reward
type Mission struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string          `gorm:"type:varchar(100);not null" json:"title"`
	Slug            string          `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        MissionCategory `gorm:"type:varchar(10);not null;index" json:"category"`
	RewardPoints    int             `gorm:"not null" json:"reward_points"`
	RewardBadge     *string         `gorm:"type:varchar(50)" json:"reward_badge,omitempty"`
	RequirementType RequirementType `gorm:"type:varchar(30);not null" json:"requirement_type"`
	TargetValue     int             `gorm:"not null;default:1" json:"target_value"`
	DurationDays    *int            `json:"duration_days,omitempty"`
	Participants    int             `gorm:"not null;default:0" json:"participants"`
	Completions     int             `gorm:"not null;default:0" json:"completions"`
	IsActive        bool            `gorm:"not null;default:true;index" json:"is_active"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	CreatedAt       time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BeforeCreate sets a UUID primary key if one was not provided
func (m *Mission) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UserMission tracks one user's progress against one mission
type UserMission struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_mission" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
	MissionID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_mission" json:"mission_id"`
	Mission     Mission    `gorm:"foreignKey:MissionID" json:"-"`
	Progress    float64    `gorm:"not null;default:0" json:"progress"`
	IsCompleted bool       `gorm:"not null;default:false;index" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	StartedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"started_at"`
	LastUpdated time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"last_updated"`
}

// BeforeCreate sets a UUID primary key if one was not provided
func (um *UserMission) BeforeCreate(tx *gorm.DB) error {
	if um.ID == uuid.Nil {
		um.ID = uuid.New()
	}
	return nil
}
