package storage

import (
	"context"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/model"
)

// Ledger is the durable, globally ordered record store. Records are located
// by deterministically derived addresses; creation is rejected when a record
// already exists at the address, which makes create idempotent-by-detection.
//
// Every method that can touch a delegated record enforces the single-writer
// rule: while a player record is frozen, only the checkpoint and release
// paths may write it.
type Ledger interface {
	// Board operations
	CreateBoard(ctx context.Context, addr address.Address, board *model.Board) error
	GetBoard(ctx context.Context, addr address.Address) (*model.Board, error)

	// Player operations
	CreatePlayer(ctx context.Context, addr address.Address, player *model.Player) error
	GetPlayer(ctx context.Context, addr address.Address) (*model.Player, error)
	// WritePlayer stores a direct mutation. It fails with
	// model.ErrWriteRejected while the record is frozen for delegation.
	WritePlayer(ctx context.Context, addr address.Address, player *model.Player) error

	// Delegation support
	//
	// FreezePlayer marks the record read-only for direct mutation and
	// stores the handoff snapshot; it resets commit ordering for the new
	// delegation epoch.
	FreezePlayer(ctx context.Context, addr address.Address, player *model.Player) error
	// CheckpointPlayer writes a venue snapshot into the frozen record. A
	// slot older than the last checkpoint fails with model.ErrStaleCommit
	// and leaves the stored state untouched.
	CheckpointPlayer(ctx context.Context, addr address.Address, player *model.Player, slot uint64) error
	// ReleasePlayer unfreezes the record and stores the final state,
	// returning write-authority to the ledger.
	ReleasePlayer(ctx context.Context, addr address.Address, player *model.Player) error
}

// Snapshot is a venue state capture together with its ordering slot. Slots
// are monotonic within a delegation epoch; the ledger uses them to refuse
// stale checkpoints.
type Snapshot struct {
	Player *model.Player
	Slot   uint64
}

// Venue is the auxiliary execution venue that can hold temporary custody of
// a player record and apply mutations to it faster than the ledger.
type Venue interface {
	// AcceptDelegation takes custody of the record, returning an opaque
	// handoff id. Fails if the venue already holds the record. slot is the
	// ordering counter custody starts from: zero for a fresh delegation,
	// the last snapshot's slot when custody is being restored mid-epoch.
	AcceptDelegation(ctx context.Context, addr address.Address, player *model.Player, slot uint64) (string, error)
	// GetPlayer reads the venue's current copy of a delegated record
	GetPlayer(ctx context.Context, addr address.Address) (*model.Player, error)
	// WritePlayer applies a mutation to a delegated record, advancing its slot
	WritePlayer(ctx context.Context, addr address.Address, player *model.Player) error
	// Snapshot returns the current state and slot without ending custody
	Snapshot(ctx context.Context, addr address.Address) (Snapshot, error)
	// ReleaseDelegation ends custody and returns the final state
	ReleaseDelegation(ctx context.Context, addr address.Address) (Snapshot, error)
}
