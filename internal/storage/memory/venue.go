package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/storage"
)

// Venue is an in-memory auxiliary execution venue. It holds temporary
// custody of delegated records and stamps each write with a slot so the
// ledger can order checkpoints.
type Venue struct {
	mu sync.RWMutex

	custody map[address.Address]*custodyRecord
}

// custodyRecord tracks one delegated record while the venue holds it
type custodyRecord struct {
	handoffID string
	player    *model.Player
	slot      uint64
}

// NewVenue creates a new in-memory venue
func NewVenue() *Venue {
	return &Venue{
		custody: make(map[address.Address]*custodyRecord),
	}
}

// Ensure Venue implements the interface
var _ storage.Venue = (*Venue)(nil)

func (v *Venue) AcceptDelegation(ctx context.Context, addr address.Address, player *model.Player, slot uint64) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.custody[addr]; ok {
		return "", model.ErrInvalidDelegation
	}
	rec := &custodyRecord{
		handoffID: uuid.NewString(),
		player:    player.Clone(),
		slot:      slot,
	}
	v.custody[addr] = rec
	return rec.handoffID, nil
}

func (v *Venue) GetPlayer(ctx context.Context, addr address.Address) (*model.Player, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	rec, ok := v.custody[addr]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rec.player.Clone(), nil
}

func (v *Venue) WritePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	rec, ok := v.custody[addr]
	if !ok {
		return model.ErrPlayerNotFound
	}
	rec.player = player.Clone()
	rec.slot++
	return nil
}

func (v *Venue) Snapshot(ctx context.Context, addr address.Address) (storage.Snapshot, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	rec, ok := v.custody[addr]
	if !ok {
		return storage.Snapshot{}, model.ErrPlayerNotFound
	}
	return storage.Snapshot{Player: rec.player.Clone(), Slot: rec.slot}, nil
}

func (v *Venue) ReleaseDelegation(ctx context.Context, addr address.Address) (storage.Snapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	rec, ok := v.custody[addr]
	if !ok {
		return storage.Snapshot{}, model.ErrPlayerNotFound
	}
	delete(v.custody, addr)
	return storage.Snapshot{Player: rec.player, Slot: rec.slot}, nil
}
