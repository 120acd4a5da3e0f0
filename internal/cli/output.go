package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Board:
		o.printBoard(v)
	case Player:
		o.printPlayer(v)
	case KeyInfo:
		o.printKeyInfo(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Board response type (matches API)
type Board struct {
	Authority string    `json:"authority"`
	CreatedAt time.Time `json:"created_at"`
}

// Player response type
type Player struct {
	Authority       string    `json:"authority"`
	X               uint8     `json:"x"`
	Y               uint8     `json:"y"`
	SessionKey      *string   `json:"session_key"`
	DelegationState string    `json:"delegation_state"`
	CreatedAt       time.Time `json:"created_at"`
}

// KeyInfo describes the local signing key
type KeyInfo struct {
	PublicKey string `json:"public_key"`
	KeyFile   string `json:"key_file"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printBoard(b Board) {
	fmt.Printf("Board Authority: %s\n", b.Authority)
	fmt.Printf("Created: %s\n", b.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Authority)
	fmt.Printf("Position: (%d, %d)\n", p.X, p.Y)
	if p.SessionKey != nil {
		fmt.Printf("Session Key: %s\n", *p.SessionKey)
	} else {
		fmt.Println("Session Key: none")
	}
	fmt.Printf("Delegation: %s\n", p.DelegationState)
	fmt.Printf("Created: %s\n", p.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printKeyInfo(k KeyInfo) {
	fmt.Printf("Public Key: %s\n", k.PublicKey)
	fmt.Printf("Key File: %s\n", k.KeyFile)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
