package agents

import (
	"context"
	"math/rand"

	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/utils"
)

// Settler submits an airdrop for settlement and returns the ledger reference
type Settler interface {
	Settle(ctx context.Context, airdrop *models.Airdrop) (string, error)
}

// SimulatedSettler fabricates settlement references without touching a real
// ledger. It stands in for on-chain submission, which is out of scope.
type SimulatedSettler struct {
	rng *rand.Rand
}

// NewSimulatedSettler creates a settler backed by the given randomness source
func NewSimulatedSettler(rng *rand.Rand) *SimulatedSettler {
	return &SimulatedSettler{rng: rng}
}

// Settle returns a pseudo transaction hash for the airdrop
func (s *SimulatedSettler) Settle(ctx context.Context, airdrop *models.Airdrop) (string, error) {
	return utils.GenerateTransactionHash(s.rng), nil
}
