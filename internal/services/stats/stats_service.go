package stats

import (
	"context"
	"time"

	"github.com/ufotoken/backend/internal/models"
	"gorm.io/gorm"
)

// Overview aggregates platform-wide counters for reporting
type Overview struct {
	Users          models.UserStats    `json:"users"`
	Airdrops       models.AirdropStats `json:"airdrops"`
	TotalBeams     int64               `json:"total_beams"`
	TotalBeamValue int64               `json:"total_beam_amount"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// Service computes platform statistics from the database
type Service struct {
	db *gorm.DB
}

// NewService creates a new stats service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Overview builds the full statistics snapshot
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	db := s.db.WithContext(ctx)
	now := time.Now()
	out := &Overview{GeneratedAt: now}

	if err := db.Model(&models.User{}).Count(&out.Users.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).
		Where("last_active >= ?", now.Add(-24*time.Hour)).
		Count(&out.Users.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).
		Where("referred_by IS NOT NULL").
		Count(&out.Users.TotalReferrals).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.UserMission{}).
		Where("is_completed = ?", true).
		Count(&out.Users.TotalMissionsCompleted).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Airdrop{}).Count(&out.Airdrops.TotalAirdrops).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Airdrop{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.Airdrops.TotalAmount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Airdrop{}).
		Where("status = ?", models.AirdropStatusPending).
		Count(&out.Airdrops.PendingAirdrops).Error; err != nil {
		return nil, err
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.Airdrop{}).
		Where("status = ? AND processed_at >= ?", models.AirdropStatusCompleted, midnight).
		Count(&out.Airdrops.CompletedToday).Error; err != nil {
		return nil, err
	}
	if out.Airdrops.TotalAirdrops > 0 {
		out.Airdrops.AverageAmount = float64(out.Airdrops.TotalAmount) / float64(out.Airdrops.TotalAirdrops)
	}

	var counters []models.GlobalStat
	if err := db.Where("name IN ?", []string{models.StatTotalBeams, models.StatTotalBeamValue}).
		Find(&counters).Error; err != nil {
		return nil, err
	}
	for _, c := range counters {
		switch c.Name {
		case models.StatTotalBeams:
			out.TotalBeams = c.Value
		case models.StatTotalBeamValue:
			out.TotalBeamValue = c.Value
		}
	}

	return out, nil
}
