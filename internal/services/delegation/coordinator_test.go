package delegation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/storage"
	"github.com/mfreeman/gridledger/internal/storage/memory"
	"github.com/mfreeman/gridledger/internal/testutil"
)

// failingVenue wraps the memory venue and fails selected calls
type failingVenue struct {
	*memory.Venue
	failAccept  bool
	failRelease bool
}

var errVenueDown = errors.New("venue unreachable")

func (v *failingVenue) AcceptDelegation(ctx context.Context, addr address.Address, player *model.Player, slot uint64) (string, error) {
	if v.failAccept {
		return "", errVenueDown
	}
	return v.Venue.AcceptDelegation(ctx, addr, player, slot)
}

func (v *failingVenue) ReleaseDelegation(ctx context.Context, addr address.Address) (storage.Snapshot, error) {
	if v.failRelease {
		return storage.Snapshot{}, errVenueDown
	}
	return v.Venue.ReleaseDelegation(ctx, addr)
}

// failingLedger wraps the memory ledger and fails the next release once
type failingLedger struct {
	*memory.Ledger
	failReleaseOnce bool
}

var errLedgerDown = errors.New("ledger unreachable")

func (l *failingLedger) ReleasePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	if l.failReleaseOnce {
		l.failReleaseOnce = false
		return errLedgerDown
	}
	return l.Ledger.ReleasePlayer(ctx, addr, player)
}

type CoordinatorSuite struct {
	suite.Suite
	ledger      *memory.Ledger
	venue       *failingVenue
	coordinator *Coordinator
	ctx         context.Context
	authority   model.Identity
	addr        address.Address
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.ledger = memory.NewLedger()
	s.venue = &failingVenue{Venue: memory.NewVenue()}
	s.coordinator = New(s.ledger, s.venue, testutil.NopLogger())
	s.ctx = context.Background()
	s.authority = model.Identity{1}
	s.addr = address.Player(s.authority)

	player := model.NewPlayer(s.authority, time.Now())
	s.Require().NoError(s.ledger.CreatePlayer(s.ctx, s.addr, player))
}

// Delegate tests

func (s *CoordinatorSuite) TestDelegateTransitionsToDelegated() {
	player, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)
	s.Equal(model.DelegationDelegated, player.Delegation)

	// Ledger copy reflects the delegation and is frozen
	stored, err := s.ledger.GetPlayer(s.ctx, s.addr)
	s.Require().NoError(err)
	s.Equal(model.DelegationDelegated, stored.Delegation)
	s.ErrorIs(s.ledger.WritePlayer(s.ctx, s.addr, stored), model.ErrWriteRejected)

	// Venue holds the writable copy
	held, err := s.venue.GetPlayer(s.ctx, s.addr)
	s.Require().NoError(err)
	s.Equal(model.DelegationDelegated, held.Delegation)
}

func (s *CoordinatorSuite) TestDelegateTwiceFails() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)

	_, err = s.coordinator.Delegate(s.ctx, s.authority, "")
	s.ErrorIs(err, model.ErrInvalidDelegation)

	// State unchanged
	stored, _ := s.ledger.GetPlayer(s.ctx, s.addr)
	s.Equal(model.DelegationDelegated, stored.Delegation)
}

func (s *CoordinatorSuite) TestDelegateNamedVenue() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, DefaultVenueName)
	s.NoError(err)
}

func (s *CoordinatorSuite) TestDelegateUnknownVenue() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, "some-other-rollup")
	s.ErrorIs(err, model.ErrUnknownVenue)

	stored, _ := s.ledger.GetPlayer(s.ctx, s.addr)
	s.Equal(model.DelegationResident, stored.Delegation)
}

func (s *CoordinatorSuite) TestDelegateUnknownPlayer() {
	_, err := s.coordinator.Delegate(s.ctx, model.Identity{99}, "")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *CoordinatorSuite) TestDelegateRollsBackWhenVenueRefuses() {
	s.venue.failAccept = true

	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.ErrorIs(err, errVenueDown)

	// Record is Resident and writable, as if nothing happened
	stored, getErr := s.ledger.GetPlayer(s.ctx, s.addr)
	s.Require().NoError(getErr)
	s.Equal(model.DelegationResident, stored.Delegation)
	s.NoError(s.ledger.WritePlayer(s.ctx, s.addr, stored))
}

// Commit tests

func (s *CoordinatorSuite) TestCommitWhileResidentFails() {
	_, err := s.coordinator.Commit(s.ctx, s.authority)
	s.ErrorIs(err, model.ErrInvalidDelegation)
}

func (s *CoordinatorSuite) TestCommitCheckpointsVenueState() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)

	// Venue-side mutation moves the player
	held, _ := s.venue.GetPlayer(s.ctx, s.addr)
	held.Position = model.Position{X: 77, Y: 3}
	s.Require().NoError(s.venue.WritePlayer(s.ctx, s.addr, held))

	committed, err := s.coordinator.Commit(s.ctx, s.authority)
	s.Require().NoError(err)
	s.Equal(model.Position{X: 77, Y: 3}, committed.Position)
	s.Equal(model.DelegationDelegated, committed.Delegation)

	// Ledger snapshot matches the venue, delegation retained
	stored, _ := s.ledger.GetPlayer(s.ctx, s.addr)
	s.Equal(model.Position{X: 77, Y: 3}, stored.Position)
	s.Equal(model.DelegationDelegated, stored.Delegation)
}

func (s *CoordinatorSuite) TestCommitIsRepeatable() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)

	_, err = s.coordinator.Commit(s.ctx, s.authority)
	s.Require().NoError(err)

	_, err = s.coordinator.Commit(s.ctx, s.authority)
	s.NoError(err)
}

func (s *CoordinatorSuite) TestStaleCheckpointIsRejectedByLedger() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)

	held, _ := s.venue.GetPlayer(s.ctx, s.addr)
	s.Require().NoError(s.venue.WritePlayer(s.ctx, s.addr, held))
	s.Require().NoError(s.venue.WritePlayer(s.ctx, s.addr, held))

	_, err = s.coordinator.Commit(s.ctx, s.authority)
	s.Require().NoError(err)

	// A replayed checkpoint from an earlier slot must not land
	err = s.ledger.CheckpointPlayer(s.ctx, s.addr, held, 1)
	s.ErrorIs(err, model.ErrStaleCommit)
}

// Undelegate tests

func (s *CoordinatorSuite) TestUndelegateWhileResidentFails() {
	_, err := s.coordinator.Undelegate(s.ctx, s.authority)
	s.ErrorIs(err, model.ErrInvalidDelegation)
}

func (s *CoordinatorSuite) TestUndelegateRestoresResident() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)

	held, _ := s.venue.GetPlayer(s.ctx, s.addr)
	held.Position = model.Position{X: 12, Y: 34}
	s.Require().NoError(s.venue.WritePlayer(s.ctx, s.addr, held))

	player, err := s.coordinator.Undelegate(s.ctx, s.authority)
	s.Require().NoError(err)
	s.Equal(model.DelegationResident, player.Delegation)
	s.Equal(model.Position{X: 12, Y: 34}, player.Position)

	// Ledger holds the final venue state and accepts writes again
	stored, _ := s.ledger.GetPlayer(s.ctx, s.addr)
	s.Equal(model.Position{X: 12, Y: 34}, stored.Position)
	s.Equal(model.DelegationResident, stored.Delegation)
	s.NoError(s.ledger.WritePlayer(s.ctx, s.addr, stored))

	// Venue custody has ended
	_, err = s.venue.GetPlayer(s.ctx, s.addr)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *CoordinatorSuite) TestUndelegateKeepsSessionKey() {
	key := model.Identity{5}
	stored, _ := s.ledger.GetPlayer(s.ctx, s.addr)
	stored.SessionKey = &key
	s.Require().NoError(s.ledger.WritePlayer(s.ctx, s.addr, stored))

	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)

	player, err := s.coordinator.Undelegate(s.ctx, s.authority)
	s.Require().NoError(err)
	s.Require().NotNil(player.SessionKey)
	s.Equal(key, *player.SessionKey)
}

func (s *CoordinatorSuite) TestUndelegateVenueFailureLeavesDelegated() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)

	s.venue.failRelease = true
	_, err = s.coordinator.Undelegate(s.ctx, s.authority)
	s.ErrorIs(err, errVenueDown)

	// Still delegated; venue still holds custody
	stored, _ := s.ledger.GetPlayer(s.ctx, s.addr)
	s.Equal(model.DelegationDelegated, stored.Delegation)
	_, err = s.venue.GetPlayer(s.ctx, s.addr)
	s.NoError(err)
}

func (s *CoordinatorSuite) TestUndelegateLedgerFailureKeepsCommitOrdering() {
	ledger := &failingLedger{Ledger: memory.NewLedger()}
	venue := memory.NewVenue()
	coordinator := New(ledger, venue, testutil.NopLogger())

	player := model.NewPlayer(s.authority, time.Now())
	s.Require().NoError(ledger.CreatePlayer(s.ctx, s.addr, player))

	_, err := coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)

	// Two venue writes, then a checkpoint at slot 2
	held, _ := venue.GetPlayer(s.ctx, s.addr)
	held.Position = model.Position{X: 20, Y: 20}
	s.Require().NoError(venue.WritePlayer(s.ctx, s.addr, held))
	s.Require().NoError(venue.WritePlayer(s.ctx, s.addr, held))
	_, err = coordinator.Commit(s.ctx, s.authority)
	s.Require().NoError(err)

	// Undelegate fails at the ledger; the venue re-takes custody
	ledger.failReleaseOnce = true
	_, err = coordinator.Undelegate(s.ctx, s.authority)
	s.ErrorIs(err, errLedgerDown)

	stored, _ := ledger.GetPlayer(s.ctx, s.addr)
	s.Equal(model.DelegationDelegated, stored.Delegation)
	_, err = venue.GetPlayer(s.ctx, s.addr)
	s.Require().NoError(err)

	// Newer venue state must still be committable: the restored custody
	// continues the epoch's slots instead of restarting at zero
	held, _ = venue.GetPlayer(s.ctx, s.addr)
	held.Position = model.Position{X: 30, Y: 30}
	s.Require().NoError(venue.WritePlayer(s.ctx, s.addr, held))

	committed, err := coordinator.Commit(s.ctx, s.authority)
	s.Require().NoError(err)
	s.Equal(model.Position{X: 30, Y: 30}, committed.Position)

	// And the delegation still winds down cleanly
	player, err = coordinator.Undelegate(s.ctx, s.authority)
	s.Require().NoError(err)
	s.Equal(model.DelegationResident, player.Delegation)
	s.Equal(model.Position{X: 30, Y: 30}, player.Position)
}

func (s *CoordinatorSuite) TestRedelegateAfterUndelegate() {
	_, err := s.coordinator.Delegate(s.ctx, s.authority, "")
	s.Require().NoError(err)
	_, err = s.coordinator.Undelegate(s.ctx, s.authority)
	s.Require().NoError(err)

	_, err = s.coordinator.Delegate(s.ctx, s.authority, "")
	s.NoError(err)
}
