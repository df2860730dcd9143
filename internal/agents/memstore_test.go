package agents

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/store"
)

// memStore is an in-memory implementation of the store interfaces for
// agent tests
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	missions map[uuid.UUID]*models.Mission
	progress []*models.UserMission
	airdrops []*models.Airdrop
	keys     map[string]bool
	stats    map[string]int64

	// failCreateFor makes airdrop creation fail for specific users
	failCreateFor map[uuid.UUID]error
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[uuid.UUID]*models.User),
		missions:      make(map[uuid.UUID]*models.Mission),
		keys:          make(map[string]bool),
		stats:         make(map[string]int64),
		failCreateFor: make(map[uuid.UUID]error),
	}
}

func (m *memStore) addUser(u *models.User) *models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addMission(mission *models.Mission) *models.Mission {
	if mission.ID == uuid.Nil {
		mission.ID = uuid.New()
	}
	m.missions[mission.ID] = mission
	return mission
}

func (m *memStore) addProgress(p *models.UserMission) *models.UserMission {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.progress = append(m.progress, p)
	return p
}

func (m *memStore) airdropsFor(userID uuid.UUID) []*models.Airdrop {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Airdrop
	for _, a := range m.airdrops {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

func (m *memStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memStore) ListEligible(ctx context.Context, minPoints int, activeSince time.Time) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if !u.LastActive.Before(activeSince) && u.TotalPoints >= minPoints {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memStore) AwardMissionReward(ctx context.Context, userID uuid.UUID, points int, missionID uuid.UUID, badge *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	user.TotalPoints += points
	if !user.MissionsCompleted.Contains(missionID.String()) {
		user.MissionsCompleted = append(user.MissionsCompleted, missionID.String())
	}
	if badge != nil && !user.Badges.Contains(*badge) {
		user.Badges = append(user.Badges, *badge)
	}
	return nil
}

func (m *memStore) CreditAirdrop(ctx context.Context, userID uuid.UUID, points int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	user.TotalPoints += points
	user.AirdropsClaimed++
	return nil
}

func (m *memStore) Create(ctx context.Context, airdrop *models.Airdrop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failCreateFor[airdrop.UserID]; ok {
		return err
	}
	if airdrop.IdempotencyKey != nil {
		if m.keys[*airdrop.IdempotencyKey] {
			return store.ErrDuplicate
		}
		m.keys[*airdrop.IdempotencyKey] = true
	}
	if airdrop.ID == uuid.Nil {
		airdrop.ID = uuid.New()
	}
	copied := *airdrop
	m.airdrops = append(m.airdrops, &copied)
	return nil
}

func (m *memStore) ListPending(ctx context.Context, limit int) ([]models.Airdrop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Airdrop
	for _, a := range m.airdrops {
		if a.Status == models.AirdropStatusPending {
			out = append(out, *a)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) ClaimPending(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.airdrops {
		if a.ID == id {
			if a.Status != models.AirdropStatusPending {
				return false, nil
			}
			a.Status = models.AirdropStatusProcessing
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) MarkCompleted(ctx context.Context, id uuid.UUID, txHash string, processedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.airdrops {
		if a.ID == id {
			a.Status = models.AirdropStatusCompleted
			a.TransactionHash = &txHash
			a.ProcessedAt = &processedAt
			return nil
		}
	}
	return fmt.Errorf("airdrop %s not found", id)
}

func (m *memStore) MarkFailed(ctx context.Context, id uuid.UUID, processedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.airdrops {
		if a.ID == id {
			a.Status = models.AirdropStatusFailed
			a.ProcessedAt = &processedAt
			return nil
		}
	}
	return fmt.Errorf("airdrop %s not found", id)
}

func (m *memStore) GetMission(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mission, ok := m.missions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *mission
	return &copied, nil
}

func (m *memStore) ListOpenProgress(ctx context.Context, limit int) ([]models.UserMission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.UserMission
	for _, p := range m.progress {
		if !p.IsCompleted {
			out = append(out, *p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) SaveProgress(ctx context.Context, progress *models.UserMission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.progress {
		if p.ID == progress.ID {
			copied := *progress
			m.progress[i] = &copied
			return nil
		}
	}
	return fmt.Errorf("progress %s not found", progress.ID)
}

func (m *memStore) IncrementCompletions(ctx context.Context, missionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mission, ok := m.missions[missionID]
	if !ok {
		return store.ErrNotFound
	}
	mission.Completions++
	return nil
}

func (m *memStore) IncrementStat(ctx context.Context, name string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[name] += delta
	return nil
}

// failingSettler always returns an error
type failingSettler struct{}

func (failingSettler) Settle(ctx context.Context, airdrop *models.Airdrop) (string, error) {
	return "", fmt.Errorf("settlement unavailable")
}

// selectiveSettler fails only for the configured wallet addresses
type selectiveSettler struct {
	inner Settler
	fail  map[string]bool
}

func (s *selectiveSettler) Settle(ctx context.Context, airdrop *models.Airdrop) (string, error) {
	if s.fail[airdrop.WalletAddress] {
		return "", fmt.Errorf("settlement rejected for %s", airdrop.WalletAddress)
	}
	return s.inner.Settle(ctx, airdrop)
}
