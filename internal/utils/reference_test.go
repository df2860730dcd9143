package utils

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateReferralCode(rng)
		assert.Regexp(t, "^[A-Z0-9]{8}$", code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 95, "codes should rarely collide")
}

func TestGenerateTransactionHash(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	hash := GenerateTransactionHash(rng)
	assert.Regexp(t, "^0x[0-9a-f]{64}$", hash)
	assert.NotEqual(t, hash, GenerateTransactionHash(rng))
}

func TestBeamIdempotencyKey(t *testing.T) {
	user := uuid.New()
	other := uuid.New()
	morning := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 1, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, BeamIdempotencyKey(user, morning), BeamIdempotencyKey(user, evening),
		"same user and UTC day must map to the same key")
	assert.NotEqual(t, BeamIdempotencyKey(user, morning), BeamIdempotencyKey(user, nextDay))
	assert.NotEqual(t, BeamIdempotencyKey(user, morning), BeamIdempotencyKey(other, morning))

	// Bucketing follows UTC, not the local zone of the timestamp
	late := time.Date(2025, 6, 1, 23, 0, 0, 0, time.FixedZone("UTC-2", -2*3600))
	assert.Equal(t, BeamIdempotencyKey(user, nextDay), BeamIdempotencyKey(user, late))

	assert.Len(t, BeamIdempotencyKey(user, morning), 64)
}
