package easyvr

import (
	"strings"
)

// Flags is the set of conditions reported by the last decoded reply.
type Flags uint16

// Result flags.
const (
	FlagCommand Flags = 1 << iota
	FlagBuiltin
	FlagError
	FlagTimeout
	FlagInvalid
	FlagMemoryFull
	FlagConflict
	FlagToken
	FlagAwakened
)

var flagNames = []string{
	"command",
	"builtin",
	"error",
	"timeout",
	"invalid",
	"memory-full",
	"conflict",
	"token",
	"awakened",
}

// Has indicates all flags in f are set.
func (f Flags) Has(flags Flags) bool {
	return f&flags == flags
}

// String implements fmt.Stringer.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for i, name := range flagNames {
		if f&(1<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// Result is the outcome of the last decoded reply. Value belongs to the
// flag that owns it and is only exposed through the accessors.
type Result struct {
	Flags Flags
	Value int
}

func (r Result) owned(f Flags) int {
	if r.Flags.Has(f) {
		return r.Value
	}
	return -1
}

// Command returns the command index, -1 if FlagCommand is not set.
func (r Result) Command() int { return r.owned(FlagCommand) }

// Word returns the built-in word index, -1 if FlagBuiltin is not set.
func (r Result) Word() int { return r.owned(FlagBuiltin) }

// Token returns the token, -1 if FlagToken is not set.
func (r Result) Token() int { return r.owned(FlagToken) }

// ErrorCode returns the error code, -1 if FlagError is not set.
func (r Result) ErrorCode() int { return r.owned(FlagError) }

// IsTimeout reports FlagTimeout.
func (r Result) IsTimeout() bool { return r.Flags.Has(FlagTimeout) }

// IsAwakened reports FlagAwakened.
func (r Result) IsAwakened() bool { return r.Flags.Has(FlagAwakened) }

// IsConflict reports FlagConflict.
func (r Result) IsConflict() bool { return r.Flags.Has(FlagConflict) }

// IsMemoryFull reports FlagMemoryFull.
func (r Result) IsMemoryFull() bool { return r.Flags.Has(FlagMemoryFull) }

// IsInvalid reports FlagInvalid.
func (r Result) IsInvalid() bool { return r.Flags.Has(FlagInvalid) }

// Err returns the failure reported by r, nil if there's none.
func (r Result) Err() error {
	switch {
	case r.Flags.Has(FlagError):
		return ErrorCode(r.Value)
	case r.Flags.Has(FlagMemoryFull):
		return ErrMemoryFull
	case r.Flags.Has(FlagTimeout):
		return ErrTimeout
	case r.Flags.Has(FlagInvalid):
		return ErrInvalid
	}
	return nil
}
