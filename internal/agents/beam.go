package agents

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/ufotoken/backend/internal/config"
	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/store"
	"github.com/ufotoken/backend/internal/utils"
)

const beamReason = "UFO Beam Technology - Random Airdrop!"

// BeamedAirdrop summarizes one airdrop created by the beam agent
type BeamedAirdrop struct {
	ID            string     `json:"id"`
	WalletAddress string     `json:"wallet_address"`
	Amount        int        `json:"amount"`
	ScheduledFor  *time.Time `json:"scheduled_for,omitempty"`
}

// BeamReport summarizes one beam agent run
type BeamReport struct {
	EligibleUsers int             `json:"eligible_users"`
	Beamed        int             `json:"beamed"`
	TotalAmount   int             `json:"total_amount"`
	Airdrops      []BeamedAirdrop `json:"airdrops"`
}

// BeamAgent creates pending random-grant airdrops for a weighted random
// subset of active users
type BeamAgent struct {
	accounts store.AccountStore
	airdrops store.AirdropStore
	stats    store.StatsStore
	cfg      config.AgentConfig
	rng      *rand.Rand
	now      func() time.Time
}

// NewBeamAgent creates a new beam agent
func NewBeamAgent(accounts store.AccountStore, airdrops store.AirdropStore, stats store.StatsStore, cfg config.AgentConfig, rng *rand.Rand) *BeamAgent {
	return &BeamAgent{
		accounts: accounts,
		airdrops: airdrops,
		stats:    stats,
		cfg:      cfg,
		rng:      rng,
		now:      time.Now,
	}
}

// Run selects eligible users and creates one pending airdrop per selected
// user. Failures are isolated per user: one insert failing never aborts the
// rest of the batch.
func (a *BeamAgent) Run(ctx context.Context) (*BeamReport, error) {
	activeSince := a.now().Add(-a.cfg.BeamActiveWindow)
	users, err := a.accounts.ListEligible(ctx, a.cfg.BeamMinPoints, activeSince)
	if err != nil {
		return nil, err
	}

	report := &BeamReport{EligibleUsers: len(users), Airdrops: []BeamedAirdrop{}}
	if len(users) == 0 {
		return report, nil
	}

	selected := SelectBeamTargets(users, a.cfg.BeamMinPoints, activeSince,
		a.cfg.BeamFractionLow, a.cfg.BeamFractionHigh, a.rng)

	for i := range selected {
		user := &selected[i]

		baseAmount := a.rng.Intn(201) + 50
		bonus := user.TotalPoints / 100 * 10
		amount := baseAmount + bonus

		scheduledFor := a.now().Add(time.Duration(a.rng.Int63n(int64(time.Hour))))
		key := utils.BeamIdempotencyKey(user.ID, a.now())

		airdrop := &models.Airdrop{
			UserID:         user.ID,
			WalletAddress:  user.WalletAddress,
			Amount:         amount,
			Status:         models.AirdropStatusPending,
			Type:           models.AirdropTypeRandomGrant,
			Reason:         beamReason,
			IdempotencyKey: &key,
			ScheduledFor:   &scheduledFor,
			CreatedAt:      a.now(),
		}

		if err := a.airdrops.Create(ctx, airdrop); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				log.Printf("Beam agent: user %s already beamed today, skipping", user.ID)
			} else {
				log.Printf("Beam agent: failed to create airdrop for user %s: %v", user.ID, err)
			}
			continue
		}

		report.Beamed++
		report.TotalAmount += amount
		report.Airdrops = append(report.Airdrops, BeamedAirdrop{
			ID:            airdrop.ID.String(),
			WalletAddress: user.WalletAddress,
			Amount:        amount,
			ScheduledFor:  &scheduledFor,
		})
	}

	// Best effort: metric failures never fail the run
	if report.Beamed > 0 {
		if err := a.stats.IncrementStat(ctx, models.StatTotalBeams, int64(report.Beamed)); err != nil {
			log.Printf("Beam agent: failed to update beam counter: %v", err)
		}
		if err := a.stats.IncrementStat(ctx, models.StatTotalBeamValue, int64(report.TotalAmount)); err != nil {
			log.Printf("Beam agent: failed to update beam amount counter: %v", err)
		}
	}

	log.Printf("Beam agent: generated %d random airdrops for %d eligible users", report.Beamed, report.EligibleUsers)
	return report, nil
}
