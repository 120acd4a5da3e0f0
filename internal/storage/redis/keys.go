package redis

import (
	"fmt"

	"github.com/mfreeman/gridledger/internal/address"
)

// Key prefix for all ledger data
const keyPrefix = "gridledger"

// boardKey returns the Redis key for the board record at addr
func boardKey(addr address.Address) string {
	return fmt.Sprintf("%s:board:%s", keyPrefix, addr)
}

// playerKey returns the Redis key for the player record at addr
func playerKey(addr address.Address) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, addr)
}
