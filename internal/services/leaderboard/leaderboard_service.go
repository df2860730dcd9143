package leaderboard

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/utils"
	"gorm.io/gorm"
)

const cacheTTL = 60 * time.Second

// Entry is one ranked row on the leaderboard
type Entry struct {
	Rank              int                `json:"rank"`
	WalletAddress     string             `json:"wallet_address"`
	Username          string             `json:"username"`
	TotalPoints       int                `json:"total_points"`
	MissionsCompleted int                `json:"missions_completed"`
	Badges            models.StringArray `json:"badges"`
	ReferralCount     int                `json:"referral_count"`
	LastActive        time.Time          `json:"last_active"`
}

// Board is a ranked leaderboard for one period
type Board struct {
	Period            string    `json:"period"`
	TopUsers          []Entry   `json:"top_users"`
	TotalParticipants int64     `json:"total_participants"`
	AveragePoints     int       `json:"average_points"`
	LastUpdated       time.Time `json:"last_updated"`
}

// Service computes ranked leaderboards with a short-lived Redis cache
type Service struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewService creates a new leaderboard service
func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{db: db, redis: redisClient}
}

// periodCutoff returns the activity cutoff for a leaderboard period, or nil
// for the all-time board
func periodCutoff(period string, now time.Time) *time.Time {
	var cutoff time.Time
	switch period {
	case "daily":
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "weekly":
		cutoff = now.AddDate(0, 0, -7)
	case "monthly":
		cutoff = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return &cutoff
}

// Get returns the leaderboard for a period, serving from cache when possible
func (s *Service) Get(ctx context.Context, period string, limit int) (*Board, error) {
	cacheKey := "leaderboard:" + period

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var board Board
			if err := json.Unmarshal([]byte(cached), &board); err == nil {
				return &board, nil
			}
		}
	}

	board, err := s.compute(ctx, period, limit)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(board); err == nil {
			if err := s.redis.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
				log.Printf("Leaderboard: failed to cache %s board: %v", period, err)
			}
		}
	}
	return board, nil
}

// compute builds the leaderboard from the users table
func (s *Service) compute(ctx context.Context, period string, limit int) (*Board, error) {
	query := s.db.WithContext(ctx).Model(&models.User{})
	if cutoff := periodCutoff(period, time.Now()); cutoff != nil {
		query = query.Where("last_active >= ?", *cutoff)
	}

	var users []models.User
	if err := query.Session(&gorm.Session{}).
		Order("total_points DESC, last_active DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(users))
	for i, u := range users {
		entries = append(entries, Entry{
			Rank:              i + 1,
			WalletAddress:     u.WalletAddress,
			Username:          utils.ShortenWalletAddress(u.WalletAddress),
			TotalPoints:       u.TotalPoints,
			MissionsCompleted: len(u.MissionsCompleted),
			Badges:            u.Badges,
			ReferralCount:     u.ReferralEarnings / 50,
			LastActive:        u.LastActive,
		})
	}

	countQuery := s.db.WithContext(ctx).Model(&models.User{})
	if cutoff := periodCutoff(period, time.Now()); cutoff != nil {
		countQuery = countQuery.Where("last_active >= ?", *cutoff)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var average float64
	avgQuery := s.db.WithContext(ctx).Model(&models.User{})
	if cutoff := periodCutoff(period, time.Now()); cutoff != nil {
		avgQuery = avgQuery.Where("last_active >= ?", *cutoff)
	}
	if err := avgQuery.Select("COALESCE(AVG(total_points), 0)").Scan(&average).Error; err != nil {
		return nil, err
	}

	return &Board{
		Period:            period,
		TopUsers:          entries,
		TotalParticipants: total,
		AveragePoints:     int(math.Round(average)),
		LastUpdated:       time.Now(),
	}, nil
}
