package easyvr

import (
	"errors"
	"fmt"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

var (
	// ErrNoReply indicates no byte was received within the timeout.
	ErrNoReply = errors.New("no reply")
	// ErrBadReply indicates a status argument was missing or out of range.
	ErrBadReply = errors.New("bad reply")
	// ErrNotDetected indicates the module didn't answer any detection attempt.
	ErrNotDetected = errors.New("module not detected")
	// ErrMemoryFull indicates no more custom commands can be added.
	ErrMemoryFull = errors.New("memory full")
	// ErrTimeout indicates the module reported a timeout.
	ErrTimeout = errors.New("module timeout")
	// ErrInvalid indicates the module rejected the command sequence.
	ErrInvalid = errors.New("invalid command")
)

// StatusError reports an unexpected status byte.
type StatusError struct {
	Status protocol.Status
	Byte   byte
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Status == protocol.StatusUnknown {
		return fmt.Sprintf("unexpected status 0x%02x", e.Byte)
	}
	return fmt.Sprintf("unexpected status %v", e.Status)
}

// ArgumentError reports a value a command can't carry.
type ArgumentError struct {
	Name  string
	Value int
}

// Error implements error.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Name, e.Value)
}

func checkRange(name string, v, min, max int) error {
	if v < min || v > max {
		return &ArgumentError{Name: name, Value: v}
	}
	return nil
}
