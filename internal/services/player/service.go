package player

import (
	"context"
	"log/slog"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/authz"
	"github.com/mfreeman/gridledger/internal/dependencies/clock"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/storage"
)

// Service provides player operations: joining, movement and session-key
// management. Mutations are routed by the record's delegation state: the
// ledger copy while Resident, the venue copy while Delegated.
type Service struct {
	ledger storage.Ledger
	venue  storage.Venue
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new player service
func New(ledger storage.Ledger, venue storage.Venue, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		ledger: ledger,
		venue:  venue,
		clock:  clk,
		logger: logger,
	}
}

// Join creates the player record for the caller's identity at its derived
// address. A repeat join by the same identity fails with ErrPlayerExists
// and leaves the original record untouched.
func (s *Service) Join(ctx context.Context, authority model.Identity) (*model.Player, error) {
	player := model.NewPlayer(authority, s.clock.Now())

	if err := s.ledger.CreatePlayer(ctx, address.Player(authority), player); err != nil {
		return nil, err
	}

	s.logger.Info("player joined",
		slog.String("authority", authority.String()),
		slog.Int("x", int(player.Position.X)),
		slog.Int("y", int(player.Position.Y)),
	)
	return player, nil
}

// Get returns the authoritative copy of the player: the venue's while
// delegated, the ledger's otherwise.
func (s *Service) Get(ctx context.Context, authority model.Identity) (*model.Player, error) {
	player, _, err := s.load(ctx, address.Player(authority))
	return player, err
}

// Move shifts the player by the given deltas, clamped to the board. The
// signer must be the authority or the registered session key.
func (s *Service) Move(ctx context.Context, signer, authority model.Identity, dx, dy int8) (*model.Player, error) {
	addr := address.Player(authority)
	player, delegated, err := s.load(ctx, addr)
	if err != nil {
		return nil, err
	}

	role, err := authz.Authorize(player, signer)
	if err != nil {
		return nil, err
	}

	player.Position = player.Position.Move(dx, dy)

	if err := s.store(ctx, addr, player, delegated); err != nil {
		return nil, err
	}

	s.logger.Info("player moved",
		slog.String("authority", authority.String()),
		slog.String("role", string(role)),
		slog.Int("x", int(player.Position.X)),
		slog.Int("y", int(player.Position.Y)),
		slog.Bool("delegated", delegated),
	)
	return player, nil
}

// RegisterSessionKey sets the player's movement delegate, replacing any
// previous one. Only the authority itself may register; the session key
// cannot extend its own capability.
func (s *Service) RegisterSessionKey(ctx context.Context, signer, authority, sessionKey model.Identity) (*model.Player, error) {
	addr := address.Player(authority)
	player, delegated, err := s.load(ctx, addr)
	if err != nil {
		return nil, err
	}

	if err := authz.AuthorizeOwner(player, signer); err != nil {
		return nil, err
	}

	key := sessionKey
	player.SessionKey = &key

	if err := s.store(ctx, addr, player, delegated); err != nil {
		return nil, err
	}

	s.logger.Info("session key registered",
		slog.String("authority", authority.String()),
		slog.String("session_key", sessionKey.String()),
	)
	return player, nil
}

// RevokeSessionKey clears the player's movement delegate. Authority only.
func (s *Service) RevokeSessionKey(ctx context.Context, signer, authority model.Identity) (*model.Player, error) {
	addr := address.Player(authority)
	player, delegated, err := s.load(ctx, addr)
	if err != nil {
		return nil, err
	}

	if err := authz.AuthorizeOwner(player, signer); err != nil {
		return nil, err
	}

	player.SessionKey = nil

	if err := s.store(ctx, addr, player, delegated); err != nil {
		return nil, err
	}

	s.logger.Info("session key revoked", slog.String("authority", authority.String()))
	return player, nil
}

// load reads the writable copy of the record. The ledger's delegation
// state is the single source of truth for where that copy lives.
func (s *Service) load(ctx context.Context, addr address.Address) (*model.Player, bool, error) {
	player, err := s.ledger.GetPlayer(ctx, addr)
	if err != nil {
		return nil, false, err
	}
	if !player.IsDelegated() {
		return player, false, nil
	}

	held, err := s.venue.GetPlayer(ctx, addr)
	if err != nil {
		return nil, false, err
	}
	return held, true, nil
}

// store writes the record back to wherever load found it
func (s *Service) store(ctx context.Context, addr address.Address, player *model.Player, delegated bool) error {
	if delegated {
		return s.venue.WritePlayer(ctx, addr, player)
	}
	return s.ledger.WritePlayer(ctx, addr, player)
}
