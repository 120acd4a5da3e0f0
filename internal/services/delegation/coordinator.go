// Package delegation moves write-authority for a player record between the
// durable ledger and the auxiliary venue. At most one writable copy exists
// at any time: the ledger copy is frozen for exactly as long as the venue
// holds custody.
package delegation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/storage"
)

// DefaultVenueName is the label of the single configured auxiliary venue
const DefaultVenueName = "ephemeral"

// op is a delegation operation for transition checking
type op int

const (
	opDelegate op = iota
	opCommit
	opUndelegate
)

func (o op) String() string {
	switch o {
	case opDelegate:
		return "delegate"
	case opCommit:
		return "commit"
	case opUndelegate:
		return "undelegate"
	}
	return "unknown"
}

// transitions is the state machine: which operations are legal in which
// state, and the transient state each one passes through. The transient
// states never persist; a completed call always lands on Resident or
// Delegated.
var transitions = map[model.DelegationState]map[op]model.DelegationState{
	model.DelegationResident: {
		opDelegate: model.DelegationDelegating,
	},
	model.DelegationDelegated: {
		opCommit:     model.DelegationDelegated,
		opUndelegate: model.DelegationUndelegating,
	},
}

// checkTransition validates that o is legal from state
func checkTransition(state model.DelegationState, o op) error {
	if _, ok := transitions[state][o]; !ok {
		return fmt.Errorf("%w: cannot %s while %s", model.ErrInvalidDelegation, o, state)
	}
	return nil
}

// Coordinator orchestrates the delegate / commit / undelegate lifecycle
type Coordinator struct {
	ledger    storage.Ledger
	venue     storage.Venue
	venueName string
	logger    *slog.Logger
}

// New creates a new delegation coordinator
func New(ledger storage.Ledger, venue storage.Venue, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		ledger:    ledger,
		venue:     venue,
		venueName: DefaultVenueName,
		logger:    logger,
	}
}

// Delegate hands write-authority for the player's record to the auxiliary
// venue. The ledger copy is frozen first so no direct write can land during
// the handoff; if the venue refuses custody the freeze is rolled back and
// the record comes out Resident, exactly as it went in.
//
// venueName optionally selects the target venue; empty means the default.
// Only the single configured venue is routable.
func (c *Coordinator) Delegate(ctx context.Context, authority model.Identity, venueName string) (*model.Player, error) {
	if venueName != "" && venueName != c.venueName {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownVenue, venueName)
	}

	addr := address.Player(authority)
	player, err := c.ledger.GetPlayer(ctx, addr)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(player.Delegation, opDelegate); err != nil {
		return nil, err
	}

	handoff := player.Clone()
	handoff.Delegation = model.DelegationDelegated

	if err := c.ledger.FreezePlayer(ctx, addr, handoff); err != nil {
		return nil, fmt.Errorf("freezing ledger copy: %w", err)
	}

	handoffID, err := c.venue.AcceptDelegation(ctx, addr, handoff, 0)
	if err != nil {
		// Roll the freeze back; a failed handoff must leave the record
		// Resident with no trace of the attempt.
		if rbErr := c.ledger.ReleasePlayer(ctx, addr, player); rbErr != nil {
			return nil, fmt.Errorf("venue refused custody and freeze rollback failed: %w", errors.Join(err, rbErr))
		}
		return nil, fmt.Errorf("venue refused custody: %w", err)
	}

	c.logger.Info("player delegated",
		slog.String("authority", authority.String()),
		slog.String("venue", c.venueName),
		slog.String("handoff_id", handoffID),
	)
	return handoff, nil
}

// Commit checkpoints the venue's current state into the ledger without
// releasing custody. It is repeatable; the ledger refuses a snapshot older
// than the last checkpoint, so a late or replayed commit can never clobber
// newer data.
func (c *Coordinator) Commit(ctx context.Context, authority model.Identity) (*model.Player, error) {
	addr := address.Player(authority)
	player, err := c.ledger.GetPlayer(ctx, addr)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(player.Delegation, opCommit); err != nil {
		return nil, err
	}

	snap, err := c.venue.Snapshot(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("taking venue snapshot: %w", err)
	}

	if err := c.ledger.CheckpointPlayer(ctx, addr, snap.Player, snap.Slot); err != nil {
		return nil, err
	}

	c.logger.Info("delegation checkpoint committed",
		slog.String("authority", authority.String()),
		slog.Uint64("slot", snap.Slot),
	)
	return snap.Player, nil
}

// Undelegate ends the delegation: the venue's final state is written back
// and the ledger copy unfreezes as Resident. If the ledger write fails the
// venue re-takes custody, so the record is never left without exactly one
// writable home. Any registered session key is left in place; revoking it
// stays an explicit owner action.
func (c *Coordinator) Undelegate(ctx context.Context, authority model.Identity) (*model.Player, error) {
	addr := address.Player(authority)
	player, err := c.ledger.GetPlayer(ctx, addr)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(player.Delegation, opUndelegate); err != nil {
		return nil, err
	}

	final, err := c.venue.ReleaseDelegation(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("venue release failed: %w", err)
	}

	released := final.Player.Clone()
	released.Delegation = model.DelegationResident

	if err := c.ledger.ReleasePlayer(ctx, addr, released); err != nil {
		// Re-custody resumes at the released slot so the epoch's commit
		// ordering survives the failed handoff; restarting at zero would
		// make the ledger reject newer state as stale.
		if _, rbErr := c.venue.AcceptDelegation(ctx, addr, final.Player, final.Slot); rbErr != nil {
			return nil, fmt.Errorf("ledger release failed and venue re-custody failed: %w", errors.Join(err, rbErr))
		}
		return nil, fmt.Errorf("ledger release failed: %w", err)
	}

	c.logger.Info("player undelegated",
		slog.String("authority", authority.String()),
		slog.Uint64("final_slot", final.Slot),
	)
	return released, nil
}
