package migrations

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/gosimple/slug"
	"github.com/ufotoken/backend/internal/models"
	"gorm.io/gorm"
)

func seedMissionsMigration() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_seed_missions",
		Migrate: func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Mission{}).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			now := time.Now()
			badge := func(s string) *string { return &s }
			days := func(n int) *int { return &n }
			until := func(d time.Duration) *time.Time {
				t := now.Add(d)
				return &t
			}

			missions := []models.Mission{
				{
					Title:           "First Contact",
					Description:     "Complete your first UFO token transaction and join the galactic community.",
					Category:        models.MissionCategoryEasy,
					RewardPoints:    500,
					RewardBadge:     badge("Newcomer"),
					RequirementType: models.RequirementFirstTrade,
					TargetValue:     1,
					StartDate:       now,
					IsActive:        true,
				},
				{
					Title:           "Beam Collector",
					Description:     "Receive 5 random airdrops from UFO beam technology.",
					Category:        models.MissionCategoryMedium,
					RewardPoints:    1000,
					RewardBadge:     badge("Collector"),
					RequirementType: models.RequirementRewardClaimCount,
					TargetValue:     5,
					StartDate:       now,
					EndDate:         until(7 * 24 * time.Hour),
					IsActive:        true,
				},
				{
					Title:           "Social Invader",
					Description:     "Share UFO Token on Twitter and tag 3 fellow space explorers.",
					Category:        models.MissionCategoryEasy,
					RewardPoints:    750,
					RewardBadge:     badge("Influencer"),
					RequirementType: models.RequirementSocialShare,
					TargetValue:     1,
					StartDate:       now,
					EndDate:         until(5 * 24 * time.Hour),
					IsActive:        true,
				},
				{
					Title:           "Galactic HODLer",
					Description:     "Hold UFO tokens for 30 days without selling to prove your cosmic loyalty.",
					Category:        models.MissionCategoryHard,
					RewardPoints:    2500,
					RewardBadge:     badge("Diamond Hands"),
					RequirementType: models.RequirementHoldDuration,
					TargetValue:     1,
					DurationDays:    days(30),
					StartDate:       now,
					IsActive:        true,
				},
				{
					Title:           "Alien Ambassador",
					Description:     "Invite 10 friends to join the UFO invasion using your referral link.",
					Category:        models.MissionCategoryHard,
					RewardPoints:    5000,
					RewardBadge:     badge("Ambassador"),
					RequirementType: models.RequirementReferralCount,
					TargetValue:     10,
					StartDate:       now,
					EndDate:         until(10 * 24 * time.Hour),
					IsActive:        true,
				},
			}

			for i := range missions {
				missions[i].Slug = slug.Make(missions[i].Title)
				if err := tx.Create(&missions[i]).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DELETE FROM missions").Error
		},
	}
}

func init() {
	migrationsList = append(migrationsList, seedMissionsMigration())
}
