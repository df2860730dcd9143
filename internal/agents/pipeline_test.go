package agents

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufotoken/backend/internal/models"
)

// Full pipeline: a beam grant for an active account flows through the
// distributor and lands as a completed airdrop with points credited.
func TestPipelineBeamToSettlement(t *testing.T) {
	m := newMemStore()
	user := m.addUser(&models.User{
		WalletAddress: "0xaaa",
		TotalPoints:   150,
		LastActive:    time.Now(),
	})

	cfg := beamTestConfig()
	cfg.BeamFractionLow = 1.0
	cfg.BeamFractionHigh = 1.0

	beam := NewBeamAgent(m, m, m, cfg, rand.New(rand.NewSource(7)))
	report, err := beam.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Beamed)

	granted := m.airdrops[0]
	// Base range [50,250] plus a 10 point loyalty bonus at 150 points
	assert.GreaterOrEqual(t, granted.Amount, 60)
	assert.LessOrEqual(t, granted.Amount, 260)
	assert.Equal(t, models.AirdropStatusPending, granted.Status)

	distributor := NewDistributor(m, m, NewSimulatedSettler(rand.New(rand.NewSource(8))), 20)
	processed, err := distributor.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, processed.Processed)

	assert.Equal(t, models.AirdropStatusCompleted, granted.Status)
	require.NotNil(t, granted.TransactionHash)

	assert.Equal(t, 150+granted.Amount/10, user.TotalPoints)
	assert.Equal(t, 1, user.AirdropsClaimed)
	assert.Equal(t, int64(1), m.stats[models.StatTotalBeams])

	// A second distributor pass finds nothing left to do
	again, err := distributor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.Total)
}

// Mission completion feeds the distributor: the reward airdrop created by the
// evaluator is settled on the next distributor run.
func TestPipelineMissionRewardToSettlement(t *testing.T) {
	m := newMemStore()
	user := m.addUser(&models.User{WalletAddress: "0xbbb", TotalPoints: 0, TotalTrades: 1})
	mission := m.addMission(&models.Mission{
		Title:           "First Contact",
		RequirementType: models.RequirementFirstTrade,
		RewardPoints:    500,
		RewardBadge:     strPtr("Newcomer"),
		TargetValue:     1,
	})
	m.addProgress(&models.UserMission{UserID: user.ID, MissionID: mission.ID, StartedAt: time.Now()})

	evaluator := NewMissionEvaluator(m, m, m, 50)
	evalReport, err := evaluator.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, evalReport.Completed)
	assert.Equal(t, 500, user.TotalPoints)

	distributor := NewDistributor(m, m, NewSimulatedSettler(rand.New(rand.NewSource(3))), 20)
	processed, err := distributor.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, processed.Processed)

	// 500 mission points plus 500/10 settlement credit
	assert.Equal(t, 550, user.TotalPoints)
	assert.Equal(t, 1, user.AirdropsClaimed)
	assert.True(t, user.Badges.Contains("Newcomer"))
}
