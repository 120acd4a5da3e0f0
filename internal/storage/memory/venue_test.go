package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/model"
)

type VenueSuite struct {
	suite.Suite
	venue *Venue
	ctx   context.Context
	addr  address.Address
}

func TestVenueSuite(t *testing.T) {
	suite.Run(t, new(VenueSuite))
}

func (s *VenueSuite) SetupTest() {
	s.venue = NewVenue()
	s.ctx = context.Background()
	s.addr = address.Player(model.Identity{1})
}

func (s *VenueSuite) newPlayer() *model.Player {
	return model.NewPlayer(model.Identity{1}, time.Now())
}

func (s *VenueSuite) TestAcceptDelegation() {
	id, err := s.venue.AcceptDelegation(s.ctx, s.addr, s.newPlayer(), 0)
	s.Require().NoError(err)
	s.NotEmpty(id)

	retrieved, err := s.venue.GetPlayer(s.ctx, s.addr)
	s.Require().NoError(err)
	s.Equal(model.SpawnPosition(), retrieved.Position)
}

func (s *VenueSuite) TestAcceptDelegationTwiceFails() {
	_, err := s.venue.AcceptDelegation(s.ctx, s.addr, s.newPlayer(), 0)
	s.Require().NoError(err)

	_, err = s.venue.AcceptDelegation(s.ctx, s.addr, s.newPlayer(), 0)
	s.ErrorIs(err, model.ErrInvalidDelegation)
}

func (s *VenueSuite) TestGetPlayerWithoutCustody() {
	_, err := s.venue.GetPlayer(s.ctx, s.addr)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *VenueSuite) TestWriteAdvancesSlot() {
	_, err := s.venue.AcceptDelegation(s.ctx, s.addr, s.newPlayer(), 0)
	s.Require().NoError(err)

	snap, err := s.venue.Snapshot(s.ctx, s.addr)
	s.Require().NoError(err)
	s.Equal(uint64(0), snap.Slot)

	moved := s.newPlayer()
	moved.Position = moved.Position.Move(1, 0)
	s.Require().NoError(s.venue.WritePlayer(s.ctx, s.addr, moved))

	snap, err = s.venue.Snapshot(s.ctx, s.addr)
	s.Require().NoError(err)
	s.Equal(uint64(1), snap.Slot)
	s.Equal(moved.Position, snap.Player.Position)
}

func (s *VenueSuite) TestAcceptDelegationResumesSlot() {
	_, err := s.venue.AcceptDelegation(s.ctx, s.addr, s.newPlayer(), 5)
	s.Require().NoError(err)

	snap, err := s.venue.Snapshot(s.ctx, s.addr)
	s.Require().NoError(err)
	s.Equal(uint64(5), snap.Slot)

	s.Require().NoError(s.venue.WritePlayer(s.ctx, s.addr, s.newPlayer()))
	snap, err = s.venue.Snapshot(s.ctx, s.addr)
	s.Require().NoError(err)
	s.Equal(uint64(6), snap.Slot)
}

func (s *VenueSuite) TestWriteWithoutCustody() {
	err := s.venue.WritePlayer(s.ctx, s.addr, s.newPlayer())
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *VenueSuite) TestReleaseReturnsFinalStateAndEndsCustody() {
	_, err := s.venue.AcceptDelegation(s.ctx, s.addr, s.newPlayer(), 0)
	s.Require().NoError(err)

	moved := s.newPlayer()
	moved.Position = model.Position{X: 33, Y: 44}
	s.Require().NoError(s.venue.WritePlayer(s.ctx, s.addr, moved))

	final, err := s.venue.ReleaseDelegation(s.ctx, s.addr)
	s.Require().NoError(err)
	s.Equal(model.Position{X: 33, Y: 44}, final.Player.Position)
	s.Equal(uint64(1), final.Slot)

	_, err = s.venue.GetPlayer(s.ctx, s.addr)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *VenueSuite) TestReleaseWithoutCustody() {
	_, err := s.venue.ReleaseDelegation(s.ctx, s.addr)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *VenueSuite) TestHandoffIDsAreUnique() {
	id1, err := s.venue.AcceptDelegation(s.ctx, s.addr, s.newPlayer(), 0)
	s.Require().NoError(err)

	other := address.Player(model.Identity{2})
	id2, err := s.venue.AcceptDelegation(s.ctx, other, s.newPlayer(), 0)
	s.Require().NoError(err)

	s.NotEqual(id1, id2)
}
