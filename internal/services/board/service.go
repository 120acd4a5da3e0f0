package board

import (
	"context"
	"log/slog"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/dependencies/clock"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/storage"
)

// Service manages the singleton board record
type Service struct {
	ledger storage.Ledger
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new board service
func New(ledger storage.Ledger, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		ledger: ledger,
		clock:  clk,
		logger: logger,
	}
}

// Initialize creates the board, recording the creator as its authority.
// The board lives at a well-known derived address, so a second initialize
// is rejected by the store itself with ErrBoardExists.
func (s *Service) Initialize(ctx context.Context, authority model.Identity) (*model.Board, error) {
	board := &model.Board{
		Authority: authority,
		CreatedAt: s.clock.Now(),
	}

	if err := s.ledger.CreateBoard(ctx, address.Board(), board); err != nil {
		return nil, err
	}

	s.logger.Info("board initialized", slog.String("authority", authority.String()))
	return board, nil
}

// Get returns the board record
func (s *Service) Get(ctx context.Context) (*model.Board, error) {
	return s.ledger.GetBoard(ctx, address.Board())
}
