package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ufotoken/backend/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint is violated
var ErrDuplicate = errors.New("duplicate record")

// AccountStore provides access to user accounts and their reward counters
type AccountStore interface {
	// Get returns the user with the given id, or ErrNotFound
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	// ListEligible returns users active since the given time with at least
	// minPoints total points
	ListEligible(ctx context.Context, minPoints int, activeSince time.Time) ([]models.User, error)
	// AwardMissionReward credits points and records the completed mission
	// and badge on the account
	AwardMissionReward(ctx context.Context, userID uuid.UUID, points int, missionID uuid.UUID, badge *string) error
	// CreditAirdrop credits points for a settled airdrop and increments the
	// claimed counter
	CreditAirdrop(ctx context.Context, userID uuid.UUID, points int) error
}

// AirdropStore provides access to airdrop reward records
type AirdropStore interface {
	// Create persists a new airdrop. Returns ErrDuplicate when an
	// idempotency key collides with an existing record.
	Create(ctx context.Context, airdrop *models.Airdrop) error
	// ListPending returns up to limit airdrops still in the pending state
	ListPending(ctx context.Context, limit int) ([]models.Airdrop, error)
	// ClaimPending atomically moves an airdrop from pending to processing.
	// Returns false when the record was already claimed or settled.
	ClaimPending(ctx context.Context, id uuid.UUID) (bool, error)
	// MarkCompleted finalizes a processing airdrop with its settlement reference
	MarkCompleted(ctx context.Context, id uuid.UUID, txHash string, processedAt time.Time) error
	// MarkFailed finalizes a processing airdrop as failed
	MarkFailed(ctx context.Context, id uuid.UUID, processedAt time.Time) error
}

// MissionStore provides access to mission definitions and progress records
type MissionStore interface {
	// GetMission returns the mission with the given id, or ErrNotFound
	GetMission(ctx context.Context, id uuid.UUID) (*models.Mission, error)
	// ListOpenProgress returns up to limit progress records not yet completed
	ListOpenProgress(ctx context.Context, limit int) ([]models.UserMission, error)
	// SaveProgress persists an updated progress record
	SaveProgress(ctx context.Context, progress *models.UserMission) error
	// IncrementCompletions bumps a mission's completion counter
	IncrementCompletions(ctx context.Context, missionID uuid.UUID) error
}

// StatsStore records global pipeline metrics
type StatsStore interface {
	// IncrementStat atomically adds delta to the named counter,
	// creating it when missing
	IncrementStat(ctx context.Context, name string, delta int64) error
}
