package memory

import (
	"context"
	"sync"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/storage"
)

// Ledger is an in-memory implementation of the durable store interface
type Ledger struct {
	mu sync.RWMutex

	boards  map[address.Address]*model.Board
	players map[address.Address]*playerRecord
}

// playerRecord is the stored envelope around a player: the frozen flag
// enforces the single-writer rule, slot orders checkpoints within a
// delegation epoch.
type playerRecord struct {
	player *model.Player
	frozen bool
	slot   uint64
}

// NewLedger creates a new in-memory ledger
func NewLedger() *Ledger {
	return &Ledger{
		boards:  make(map[address.Address]*model.Board),
		players: make(map[address.Address]*playerRecord),
	}
}

// Ensure Ledger implements the interface
var _ storage.Ledger = (*Ledger)(nil)

// Board operations

func (l *Ledger) CreateBoard(ctx context.Context, addr address.Address, board *model.Board) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.boards[addr]; ok {
		return model.ErrBoardExists
	}
	b := *board
	l.boards[addr] = &b
	return nil
}

func (l *Ledger) GetBoard(ctx context.Context, addr address.Address) (*model.Board, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	board, ok := l.boards[addr]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	b := *board
	return &b, nil
}

// Player operations

func (l *Ledger) CreatePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.players[addr]; ok {
		return model.ErrPlayerExists
	}
	l.players[addr] = &playerRecord{player: player.Clone()}
	return nil
}

func (l *Ledger) GetPlayer(ctx context.Context, addr address.Address) (*model.Player, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.players[addr]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rec.player.Clone(), nil
}

func (l *Ledger) WritePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.players[addr]
	if !ok {
		return model.ErrPlayerNotFound
	}
	if rec.frozen {
		return model.ErrWriteRejected
	}
	rec.player = player.Clone()
	return nil
}

// Delegation support

func (l *Ledger) FreezePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.players[addr]
	if !ok {
		return model.ErrPlayerNotFound
	}
	rec.player = player.Clone()
	rec.frozen = true
	rec.slot = 0
	return nil
}

func (l *Ledger) CheckpointPlayer(ctx context.Context, addr address.Address, player *model.Player, slot uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.players[addr]
	if !ok {
		return model.ErrPlayerNotFound
	}
	if slot < rec.slot {
		return model.ErrStaleCommit
	}
	rec.player = player.Clone()
	rec.slot = slot
	return nil
}

func (l *Ledger) ReleasePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.players[addr]
	if !ok {
		return model.ErrPlayerNotFound
	}
	rec.player = player.Clone()
	rec.frozen = false
	rec.slot = 0
	return nil
}
