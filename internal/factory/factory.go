package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mfreeman/gridledger/internal/dependencies/clock"
	"github.com/mfreeman/gridledger/internal/dependencies/verifier"
	"github.com/mfreeman/gridledger/internal/services/board"
	"github.com/mfreeman/gridledger/internal/services/delegation"
	"github.com/mfreeman/gridledger/internal/services/player"
	"github.com/mfreeman/gridledger/internal/storage"
	"github.com/mfreeman/gridledger/internal/storage/memory"
	redisstorage "github.com/mfreeman/gridledger/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Stores
	Ledger storage.Ledger
	Venue  storage.Venue

	// External dependencies
	Clock    clock.Clock
	Verifier verifier.Verifier

	// Services
	BoardService  *board.Service
	PlayerService *player.Service
	Coordinator   *delegation.Coordinator
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the ledger backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Verifier overrides the signature verifier (optional, for testing)
	Verifier verifier.Verifier
}

// New creates a new application with all dependencies wired.
//
// The auxiliary venue is always the in-process one: it is the fast
// execution side of the delegation protocol, while the ledger backend is
// the durable side that storage type selects.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var ledger storage.Ledger
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		ledger = memory.NewLedger()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisLedger, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		ledger = redisLedger
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	venue := memory.NewVenue()
	clk := clock.New()

	v := cfg.Verifier
	if v == nil {
		v = verifier.New()
	}

	return &App{
		Ledger:        ledger,
		Venue:         venue,
		Clock:         clk,
		Verifier:      v,
		BoardService:  board.New(ledger, clk, logger),
		PlayerService: player.New(ledger, venue, clk, logger),
		Coordinator:   delegation.New(ledger, venue, logger),
	}, nil
}
