package easyvr

import "time"

// Port is the byte stream connected to the module.
type Port interface {
	// WriteByte sends one byte.
	WriteByte(c byte) error
	// TryReadByte returns a received byte without blocking.
	TryReadByte() (byte, bool)
	// Buffered returns the number of bytes readable without blocking.
	Buffered() int
	// Flush waits until written bytes are transmitted.
	Flush() error
}

// Clock provides time for timeout bookkeeping.
type Clock interface {
	Now() time.Time
	Sleep(time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is the Clock backed by package time.
var SystemClock Clock = systemClock{}

// Forever waits for a reply without time limits.
const Forever time.Duration = -1

// Timeouts defines how long to wait for replies.
type Timeouts struct {
	// Reply is the default time to wait for a reply.
	Reply time.Duration
	// Wake is the time the module may take to wake up from sleep.
	Wake time.Duration
	// Play is the longest synchronous sound playback.
	Play time.Duration
	// Token is the time to send a SonicNet token and reply.
	Token time.Duration
	// Storage is used by commands writing to the module storage.
	Storage time.Duration

	// Bulk operations, waited in steps of one second.
	ResetAll      time.Duration
	ResetAllFast  time.Duration // ResetAll on EasyVR 3 and newer
	ResetCommands time.Duration
	ResetMessages time.Duration
	FixMessages   time.Duration
}

// DefaultTimeouts returns the default Timeouts.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Reply:         100 * time.Millisecond,
		Wake:          200 * time.Millisecond,
		Play:          5 * time.Second,
		Token:         1500 * time.Millisecond,
		Storage:       500 * time.Millisecond,
		ResetAll:      40 * time.Second,
		ResetAllFast:  5 * time.Second,
		ResetCommands: 5 * time.Second,
		ResetMessages: 15 * time.Second,
		FixMessages:   25 * time.Second,
	}
}
