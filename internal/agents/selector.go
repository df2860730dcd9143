package agents

import (
	"math/rand"
	"sort"
	"time"

	"github.com/ufotoken/backend/internal/models"
)

// BeamWeight computes a user's selection weight for beam airdrops.
// Heavier users are more active: points count once, each claimed airdrop
// counts ten-fold and each trade fifty-fold.
func BeamWeight(u *models.User) int {
	return u.TotalPoints + 10*u.AirdropsClaimed + 50*u.TotalTrades
}

// SelectBeamTargets filters users down to those eligible for a beam airdrop
// and picks a weighted random subset.
//
// Eligibility requires activity at or after activeSince and at least
// minPoints total points. The selected share is drawn uniformly from
// [fractionLow, fractionHigh], with a floor of one user. Candidates are
// shuffled before the weight sort so that ties between equal weights land in
// random order rather than insertion order.
func SelectBeamTargets(users []models.User, minPoints int, activeSince time.Time, fractionLow, fractionHigh float64, rng *rand.Rand) []models.User {
	eligible := make([]models.User, 0, len(users))
	for _, u := range users {
		if !u.LastActive.Before(activeSince) && u.TotalPoints >= minPoints {
			eligible = append(eligible, u)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	fraction := fractionLow + rng.Float64()*(fractionHigh-fractionLow)
	target := int(float64(len(eligible)) * fraction)
	if target < 1 {
		target = 1
	}
	if target > len(eligible) {
		target = len(eligible)
	}

	rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	sort.SliceStable(eligible, func(i, j int) bool {
		return BeamWeight(&eligible[i]) > BeamWeight(&eligible[j])
	})

	return eligible[:target]
}
