package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const referralCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode generates a short uppercase referral code
func GenerateReferralCode(rng *rand.Rand) string {
	result := make([]byte, 8)
	for i := range result {
		result[i] = referralCharset[rng.Intn(len(referralCharset))]
	}
	return string(result)
}

// GenerateTransactionHash fabricates a 0x-prefixed pseudo transaction hash.
// A real deployment would receive this from the settlement ledger.
func GenerateTransactionHash(rng *rand.Rand) string {
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = byte(rng.Intn(256))
	}
	return "0x" + hex.EncodeToString(buf)
}

// BeamIdempotencyKey derives a deterministic key for a random-grant airdrop.
// Keys are bucketed per UTC day so a rerun of the generator within the same
// day cannot beam the same user twice.
func BeamIdempotencyKey(userID uuid.UUID, at time.Time) string {
	bucket := at.UTC().Format("2006-01-02")
	sum := sha256.Sum256([]byte(fmt.Sprintf("beam:%s:%s", userID, bucket)))
	return hex.EncodeToString(sum[:])
}
