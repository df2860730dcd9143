package agents

import (
	"context"
	"log"
	"time"

	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/store"
)

// ProcessedAirdrop summarizes one airdrop settled by the distributor
type ProcessedAirdrop struct {
	ID              string `json:"id"`
	WalletAddress   string `json:"wallet_address"`
	Amount          int    `json:"amount"`
	TransactionHash string `json:"transaction_hash"`
}

// ProcessingReport summarizes one distributor run
type ProcessingReport struct {
	Processed int                `json:"processed"`
	Total     int                `json:"total"`
	Airdrops  []ProcessedAirdrop `json:"airdrops"`
}

// Distributor settles pending airdrops and credits points on success
type Distributor struct {
	airdrops store.AirdropStore
	accounts store.AccountStore
	settler  Settler
	limit    int
	now      func() time.Time
}

// NewDistributor creates a new airdrop distributor
func NewDistributor(airdrops store.AirdropStore, accounts store.AccountStore, settler Settler, limit int) *Distributor {
	return &Distributor{
		airdrops: airdrops,
		accounts: accounts,
		settler:  settler,
		limit:    limit,
		now:      time.Now,
	}
}

// Run settles at most limit pending airdrops. Each record is claimed with an
// atomic pending-to-processing transition before settlement, so overlapping
// runs never settle the same record twice. One record failing never aborts
// the rest of the batch.
func (d *Distributor) Run(ctx context.Context) (*ProcessingReport, error) {
	pending, err := d.airdrops.ListPending(ctx, d.limit)
	if err != nil {
		return nil, err
	}

	report := &ProcessingReport{Airdrops: []ProcessedAirdrop{}}
	if len(pending) == 0 {
		return report, nil
	}

	for i := range pending {
		airdrop := &pending[i]

		claimed, err := d.airdrops.ClaimPending(ctx, airdrop.ID)
		if err != nil {
			log.Printf("Distributor: failed to claim airdrop %s: %v", airdrop.ID, err)
			continue
		}
		if !claimed {
			// Another run got there first
			continue
		}
		report.Total++

		if err := d.settleOne(ctx, airdrop, report); err != nil {
			log.Printf("Distributor: failed to process airdrop %s: %v", airdrop.ID, err)
			if err := d.airdrops.MarkFailed(ctx, airdrop.ID, d.now()); err != nil {
				log.Printf("Distributor: failed to mark airdrop %s as failed: %v", airdrop.ID, err)
			}
		}
	}

	log.Printf("Distributor: processed %d/%d airdrops", report.Processed, report.Total)
	return report, nil
}

// settleOne submits one claimed airdrop for settlement, finalizes its status
// and credits the owning account
func (d *Distributor) settleOne(ctx context.Context, airdrop *models.Airdrop, report *ProcessingReport) error {
	txHash, err := d.settler.Settle(ctx, airdrop)
	if err != nil {
		return err
	}

	if err := d.airdrops.MarkCompleted(ctx, airdrop.ID, txHash, d.now()); err != nil {
		return err
	}

	// One point per ten tokens settled
	if err := d.accounts.CreditAirdrop(ctx, airdrop.UserID, airdrop.Amount/10); err != nil {
		return err
	}

	report.Processed++
	report.Airdrops = append(report.Airdrops, ProcessedAirdrop{
		ID:              airdrop.ID.String(),
		WalletAddress:   airdrop.WalletAddress,
		Amount:          airdrop.Amount,
		TransactionHash: txHash,
	})
	return nil
}
