package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mfreeman/gridledger/internal/address"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/storage"
)

// Ledger is a Redis-backed implementation of the durable store interface
type Ledger struct {
	client *redis.Client
	cfg    Config
}

// playerEnvelope is the persisted form of a player record. Frozen and Slot
// carry the delegation bookkeeping alongside the state itself.
type playerEnvelope struct {
	Player *model.Player `json:"player"`
	Frozen bool          `json:"frozen"`
	Slot   uint64        `json:"slot"`
}

// New creates a new Redis ledger
func New(cfg Config) (*Ledger, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Ledger{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis ledger with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Ledger {
	return &Ledger{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (l *Ledger) Close() error {
	return l.client.Close()
}

// Ensure Ledger implements the interface
var _ storage.Ledger = (*Ledger)(nil)

// storeErr wraps low-level Redis failures so callers can classify them
func storeErr(err error) error {
	return fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
}

// Board operations

func (l *Ledger) CreateBoard(ctx context.Context, addr address.Address, board *model.Board) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}

	// SETNX gives idempotent creation at the deterministic address
	created, err := l.client.SetNX(ctx, boardKey(addr), data, 0).Result()
	if err != nil {
		return storeErr(err)
	}
	if !created {
		return model.ErrBoardExists
	}
	return nil
}

func (l *Ledger) GetBoard(ctx context.Context, addr address.Address) (*model.Board, error) {
	data, err := l.client.Get(ctx, boardKey(addr)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBoardNotFound
		}
		return nil, storeErr(err)
	}

	var board model.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// Player operations

func (l *Ledger) CreatePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	data, err := json.Marshal(playerEnvelope{Player: player})
	if err != nil {
		return err
	}

	created, err := l.client.SetNX(ctx, playerKey(addr), data, 0).Result()
	if err != nil {
		return storeErr(err)
	}
	if !created {
		return model.ErrPlayerExists
	}
	return nil
}

func (l *Ledger) GetPlayer(ctx context.Context, addr address.Address) (*model.Player, error) {
	env, err := l.getEnvelope(ctx, addr)
	if err != nil {
		return nil, err
	}
	return env.Player, nil
}

func (l *Ledger) WritePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	return l.updateEnvelope(ctx, addr, func(env *playerEnvelope) error {
		if env.Frozen {
			return model.ErrWriteRejected
		}
		env.Player = player
		return nil
	})
}

// Delegation support

func (l *Ledger) FreezePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	return l.updateEnvelope(ctx, addr, func(env *playerEnvelope) error {
		env.Player = player
		env.Frozen = true
		env.Slot = 0
		return nil
	})
}

func (l *Ledger) CheckpointPlayer(ctx context.Context, addr address.Address, player *model.Player, slot uint64) error {
	return l.updateEnvelope(ctx, addr, func(env *playerEnvelope) error {
		if slot < env.Slot {
			return model.ErrStaleCommit
		}
		env.Player = player
		env.Slot = slot
		return nil
	})
}

func (l *Ledger) ReleasePlayer(ctx context.Context, addr address.Address, player *model.Player) error {
	return l.updateEnvelope(ctx, addr, func(env *playerEnvelope) error {
		env.Player = player
		env.Frozen = false
		env.Slot = 0
		return nil
	})
}

// getEnvelope reads and decodes the player envelope at addr
func (l *Ledger) getEnvelope(ctx context.Context, addr address.Address) (*playerEnvelope, error) {
	data, err := l.client.Get(ctx, playerKey(addr)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, storeErr(err)
	}

	var env playerEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// updateEnvelope applies mutate to the envelope at addr inside a WATCH
// transaction, so concurrent writers cannot interleave with the
// frozen/slot checks.
func (l *Ledger) updateEnvelope(ctx context.Context, addr address.Address, mutate func(*playerEnvelope) error) error {
	key := playerKey(addr)

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrPlayerNotFound
			}
			return storeErr(err)
		}

		var env playerEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}

		if err := mutate(&env); err != nil {
			return err
		}

		updated, err := json.Marshal(env)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		if err != nil {
			return storeErr(err)
		}
		return nil
	}

	err := l.client.Watch(ctx, txn, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Per-record requests are serialized upstream; a lost race is a
		// store-level failure, not something to retry here.
		return storeErr(err)
	}
	return err
}
