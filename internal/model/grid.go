package model

// BoardSize is the grid dimension; valid coordinates are [0, BoardSize-1]
const BoardSize = 100

// Spawn coordinates for newly joined players
const (
	SpawnX uint8 = 10
	SpawnY uint8 = 10
)

// Position is a location on the board grid
type Position struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

// SpawnPosition returns the fixed starting position for new players
func SpawnPosition() Position {
	return Position{X: SpawnX, Y: SpawnY}
}

// Move returns the position shifted by the given deltas, clamped to the
// board. Every position mutation in the system goes through here, so an
// in-bounds input always yields an in-bounds output.
func (p Position) Move(dx, dy int8) Position {
	return Position{
		X: clampAxis(p.X, dx),
		Y: clampAxis(p.Y, dy),
	}
}

// clampAxis widens to int16 before adding so the sum cannot wrap
func clampAxis(v uint8, d int8) uint8 {
	n := int16(v) + int16(d)
	if n < 0 {
		n = 0
	}
	if n > BoardSize-1 {
		n = BoardSize - 1
	}
	return uint8(n)
}
