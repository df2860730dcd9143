package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ufotoken/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements the store interfaces on top of a GORM connection
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// translateError maps GORM errors onto store sentinel errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// Get returns the user with the given id
func (s *GormStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// ListEligible returns users active since the given time with at least minPoints
func (s *GormStore) ListEligible(ctx context.Context, minPoints int, activeSince time.Time) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("last_active >= ? AND total_points >= ?", activeSince, minPoints).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("error listing eligible users: %w", err)
	}
	return users, nil
}

// AwardMissionReward credits mission rewards to a user inside a transaction.
// The point counter uses an atomic increment; the badge and completed-mission
// arrays are rewritten under a row lock.
func (s *GormStore) AwardMissionReward(ctx context.Context, userID uuid.UUID, points int, missionID uuid.UUID, badge *string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error; err != nil {
			return translateError(err)
		}

		if !user.MissionsCompleted.Contains(missionID.String()) {
			user.MissionsCompleted = append(user.MissionsCompleted, missionID.String())
		}
		if badge != nil && !user.Badges.Contains(*badge) {
			user.Badges = append(user.Badges, *badge)
		}

		return tx.Model(&user).Updates(map[string]interface{}{
			"total_points":       gorm.Expr("total_points + ?", points),
			"missions_completed": user.MissionsCompleted,
			"badges":             user.Badges,
			"updated_at":         time.Now(),
		}).Error
	})
}

// CreditAirdrop credits points for a settled airdrop and bumps the claim counter
func (s *GormStore) CreditAirdrop(ctx context.Context, userID uuid.UUID, points int) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_points":     gorm.Expr("total_points + ?", points),
			"airdrops_claimed": gorm.Expr("airdrops_claimed + 1"),
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("error crediting airdrop: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Create persists a new airdrop record
func (s *GormStore) Create(ctx context.Context, airdrop *models.Airdrop) error {
	if err := s.db.WithContext(ctx).Create(airdrop).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// ListPending returns up to limit airdrops still pending settlement
func (s *GormStore) ListPending(ctx context.Context, limit int) ([]models.Airdrop, error) {
	var airdrops []models.Airdrop
	err := s.db.WithContext(ctx).
		Where("status = ?", models.AirdropStatusPending).
		Limit(limit).
		Find(&airdrops).Error
	if err != nil {
		return nil, fmt.Errorf("error listing pending airdrops: %w", err)
	}
	return airdrops, nil
}

// ClaimPending atomically transitions an airdrop from pending to processing.
// The status guard in the WHERE clause is what prevents two overlapping
// distributor runs from settling the same record twice.
func (s *GormStore) ClaimPending(ctx context.Context, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Airdrop{}).
		Where("id = ? AND status = ?", id, models.AirdropStatusPending).
		Update("status", models.AirdropStatusProcessing)
	if result.Error != nil {
		return false, fmt.Errorf("error claiming airdrop: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// MarkCompleted finalizes a processing airdrop as completed
func (s *GormStore) MarkCompleted(ctx context.Context, id uuid.UUID, txHash string, processedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Airdrop{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           models.AirdropStatusCompleted,
			"transaction_hash": txHash,
			"processed_at":     processedAt,
		}).Error
}

// MarkFailed finalizes a processing airdrop as failed
func (s *GormStore) MarkFailed(ctx context.Context, id uuid.UUID, processedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Airdrop{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.AirdropStatusFailed,
			"processed_at": processedAt,
		}).Error
}

// GetMission returns the mission with the given id
func (s *GormStore) GetMission(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	var mission models.Mission
	if err := s.db.WithContext(ctx).First(&mission, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &mission, nil
}

// ListOpenProgress returns up to limit progress records that are not completed
func (s *GormStore) ListOpenProgress(ctx context.Context, limit int) ([]models.UserMission, error) {
	var progress []models.UserMission
	err := s.db.WithContext(ctx).
		Where("is_completed = ?", false).
		Limit(limit).
		Find(&progress).Error
	if err != nil {
		return nil, fmt.Errorf("error listing open mission progress: %w", err)
	}
	return progress, nil
}

// SaveProgress persists an updated progress record
func (s *GormStore) SaveProgress(ctx context.Context, progress *models.UserMission) error {
	return s.db.WithContext(ctx).Save(progress).Error
}

// IncrementCompletions bumps a mission's completion counter
func (s *GormStore) IncrementCompletions(ctx context.Context, missionID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.Mission{}).
		Where("id = ?", missionID).
		Update("completions", gorm.Expr("completions + 1")).Error
}

// IncrementStat atomically adds delta to the named counter, upserting the row
func (s *GormStore) IncrementStat(ctx context.Context, name string, delta int64) error {
	stat := models.GlobalStat{Name: name, Value: delta, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      gorm.Expr("global_stats.value + ?", delta),
			"updated_at": time.Now(),
		}),
	}).Create(&stat).Error
}
