package agents

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/store"
)

// CompletedMission summarizes one mission completion awarded by the evaluator
type CompletedMission struct {
	MissionID    string  `json:"mission_id"`
	UserID       string  `json:"user_id"`
	Title        string  `json:"title"`
	RewardPoints int     `json:"reward_points"`
	RewardBadge  *string `json:"reward_badge,omitempty"`
}

// EvaluationReport summarizes one mission evaluator run
type EvaluationReport struct {
	Processed         int                `json:"processed"`
	Completed         int                `json:"completed"`
	CompletedMissions []CompletedMission `json:"completed_missions"`
}

// MissionEvaluator recomputes mission progress for open progress records and
// awards rewards on completion
type MissionEvaluator struct {
	missions store.MissionStore
	accounts store.AccountStore
	airdrops store.AirdropStore
	limit    int
	now      func() time.Time
}

// NewMissionEvaluator creates a new mission evaluator
func NewMissionEvaluator(missions store.MissionStore, accounts store.AccountStore, airdrops store.AirdropStore, limit int) *MissionEvaluator {
	return &MissionEvaluator{
		missions: missions,
		accounts: accounts,
		airdrops: airdrops,
		limit:    limit,
		now:      time.Now,
	}
}

// Run examines at most limit open progress records, updates their completion
// percentage, and awards rewards for records that cross 100%. One record
// failing never aborts the batch.
func (e *MissionEvaluator) Run(ctx context.Context) (*EvaluationReport, error) {
	open, err := e.missions.ListOpenProgress(ctx, e.limit)
	if err != nil {
		return nil, err
	}

	report := &EvaluationReport{CompletedMissions: []CompletedMission{}}
	if len(open) == 0 {
		return report, nil
	}

	for i := range open {
		progress := &open[i]
		// Every visited record counts as processed, even ones skipped over
		report.Processed++
		completed, err := e.evaluateOne(ctx, progress, report)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Mission or user no longer exists; tolerate and move on
				continue
			}
			log.Printf("Mission evaluator: failed to process progress %s: %v", progress.ID, err)
			continue
		}
		if completed {
			report.Completed++
		}
	}

	log.Printf("Mission evaluator: processed %d records, completed %d", report.Processed, report.Completed)
	return report, nil
}

// evaluateOne recomputes and persists a single progress record, returning
// whether it newly completed
func (e *MissionEvaluator) evaluateOne(ctx context.Context, progress *models.UserMission, report *EvaluationReport) (bool, error) {
	mission, err := e.missions.GetMission(ctx, progress.MissionID)
	if err != nil {
		return false, err
	}
	user, err := e.accounts.Get(ctx, progress.UserID)
	if err != nil {
		return false, err
	}

	now := e.now()
	newProgress := missionProgress(mission, user, progress, now)
	// Progress never moves backwards under correct counter inputs, but a
	// stale rule change must not regress a stored value either.
	if newProgress < progress.Progress {
		newProgress = progress.Progress
	}
	newlyCompleted := newProgress >= 100 && !progress.IsCompleted

	if newlyCompleted {
		if err := e.award(ctx, mission, user, progress); err != nil {
			return false, err
		}
		progress.IsCompleted = true
		completedAt := now
		progress.CompletedAt = &completedAt

		report.CompletedMissions = append(report.CompletedMissions, CompletedMission{
			MissionID:    mission.ID.String(),
			UserID:       user.ID.String(),
			Title:        mission.Title,
			RewardPoints: mission.RewardPoints,
			RewardBadge:  mission.RewardBadge,
		})
	}

	progress.Progress = newProgress
	progress.LastUpdated = now
	if err := e.missions.SaveProgress(ctx, progress); err != nil {
		return false, fmt.Errorf("error saving progress: %w", err)
	}
	return newlyCompleted, nil
}

// award credits the mission reward: points and badge on the account, a
// pending reward airdrop, and the mission's completion counter
func (e *MissionEvaluator) award(ctx context.Context, mission *models.Mission, user *models.User, progress *models.UserMission) error {
	if err := e.accounts.AwardMissionReward(ctx, user.ID, mission.RewardPoints, mission.ID, mission.RewardBadge); err != nil {
		return fmt.Errorf("error awarding mission reward: %w", err)
	}

	airdrop := &models.Airdrop{
		ID:            uuid.New(),
		UserID:        user.ID,
		WalletAddress: user.WalletAddress,
		Amount:        mission.RewardPoints,
		Status:        models.AirdropStatusPending,
		Type:          models.AirdropTypeMissionReward,
		Reason:        fmt.Sprintf("Completed mission: %s", mission.Title),
		CreatedAt:     e.now(),
	}
	if err := e.airdrops.Create(ctx, airdrop); err != nil {
		return fmt.Errorf("error creating mission reward airdrop: %w", err)
	}

	if err := e.missions.IncrementCompletions(ctx, mission.ID); err != nil {
		return fmt.Errorf("error incrementing mission completions: %w", err)
	}
	return nil
}

// missionProgress recomputes the completion percentage for one requirement
// type. The switch is exhaustive over models.RequirementType; unknown values
// leave the stored progress untouched.
func missionProgress(mission *models.Mission, user *models.User, progress *models.UserMission, now time.Time) float64 {
	switch mission.RequirementType {
	case models.RequirementFirstTrade:
		if user.TotalTrades > 0 {
			return 100
		}
		return progress.Progress

	case models.RequirementHoldDuration:
		if mission.DurationDays == nil || *mission.DurationDays <= 0 {
			return progress.Progress
		}
		daysSinceStart := int(now.Sub(progress.StartedAt).Hours() / 24)
		return clampProgress(float64(daysSinceStart) / float64(*mission.DurationDays) * 100)

	case models.RequirementSocialShare:
		if user.TwitterHandle != nil && *user.TwitterHandle != "" {
			return 100
		}
		return progress.Progress

	case models.RequirementReferralCount:
		if mission.TargetValue <= 0 {
			return progress.Progress
		}
		// Referral count is derived from earnings at 50 points per referral
		referrals := float64(user.ReferralEarnings) / 50
		return clampProgress(referrals / float64(mission.TargetValue) * 100)

	case models.RequirementRewardClaimCount:
		if mission.TargetValue <= 0 {
			return progress.Progress
		}
		return clampProgress(float64(user.AirdropsClaimed) / float64(mission.TargetValue) * 100)

	default:
		return progress.Progress
	}
}

func clampProgress(p float64) float64 {
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
