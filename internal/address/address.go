// Package address derives storage addresses deterministically from seed
// components. The same seeds always yield the same address, which lets the
// store detect duplicate creation without a separate lookup index.
package address

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/mfreeman/gridledger/internal/model"
)

// Size is the byte length of a derived address
const Size = blake2b.Size256

// Address locates a record in the durable store
type Address [Size]byte

// Seed prefixes for each record kind
const (
	boardSeed  = "board"
	playerSeed = "player"
)

// Board returns the well-known address of the singleton board record
func Board() Address {
	return derive([]byte(boardSeed))
}

// Player returns the address of the player record owned by authority
func Player(authority model.Identity) Address {
	return derive([]byte(playerSeed), authority.Bytes())
}

// Parse parses the hex text form of an Address
func Parse(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address encoding: %w", err)
	}
	if len(b) != Size {
		return Address{}, fmt.Errorf("address must be %d bytes, got %d", Size, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// String returns the hex text form
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// derive hashes the seed components with blake2b-256. Each seed is
// length-prefixed so distinct seed lists can never produce the same digest
// input.
func derive(seeds ...[]byte) Address {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // only fails for an oversized key, and we pass none
	}
	var lenBuf [4]byte
	for _, seed := range seeds {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(seed)))
		h.Write(lenBuf[:])
		h.Write(seed)
	}
	var a Address
	copy(a[:], h.Sum(nil))
	return a
}
