// Package fake provides deterministic test doubles for the EasyVR session.
package fake

import (
	"errors"
	"time"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

// Clock is a manual clock, Sleep advances the time immediately.
type Clock struct {
	now   time.Time
	slept time.Duration
}

// NewClock creates a Clock.
func NewClock() *Clock {
	return &Clock{now: time.Unix(1000, 0)}
}

// Now implements easyvr.Clock.
func (c *Clock) Now() time.Time {
	return c.now
}

// Sleep implements easyvr.Clock.
func (c *Clock) Sleep(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
		c.slept += d
	}
}

// Slept returns the accumulated sleeping time.
func (c *Clock) Slept() time.Duration {
	return c.slept
}

type timedByte struct {
	at time.Time
	b  byte
}

type reply struct {
	status []byte
	args   []byte
}

// ErrClosed is returned by a closed Port.
var ErrClosed = errors.New("port closed")

// Port is a scripted byte port.
//
// Replies queued with Reply are consumed one per exchange: the exchange
// starts with Flush, the status byte becomes readable once the command byte
// is written, and each following ArgAck releases one argument byte.
type Port struct {
	Clock *Clock

	written []byte
	input   []timedByte
	acks    []byte
	replies []*reply
	armed   *reply
	flushes int
	closed  bool
}

// NewPort creates a Port. clock is only needed by FeedAfter.
func NewPort(clock *Clock) *Port {
	return &Port{Clock: clock}
}

// Reply queues the reply of the next exchange.
func (p *Port) Reply(status byte, args ...byte) *Port {
	p.replies = append(p.replies, &reply{status: []byte{status}, args: args})
	return p
}

// NoReply queues an exchange the module doesn't answer.
func (p *Port) NoReply() *Port {
	p.replies = append(p.replies, &reply{})
	return p
}

// Feed makes bytes readable immediately.
func (p *Port) Feed(bs ...byte) *Port {
	for _, b := range bs {
		p.input = append(p.input, timedByte{b: b})
	}
	return p
}

// FeedAfter makes bytes readable once the clock advanced by d.
func (p *Port) FeedAfter(d time.Duration, bs ...byte) *Port {
	at := p.Clock.Now().Add(d)
	for _, b := range bs {
		p.input = append(p.input, timedByte{at: at, b: b})
	}
	return p
}

// FeedArgs queues bytes released one per ArgAck.
func (p *Port) FeedArgs(bs ...byte) *Port {
	p.acks = append(p.acks, bs...)
	return p
}

// Written returns all bytes written so far.
func (p *Port) Written() []byte {
	return p.written
}

// TakeWritten returns and clears the written bytes.
func (p *Port) TakeWritten() []byte {
	w := p.written
	p.written = nil
	return w
}

// Flushes returns the number of Flush calls.
func (p *Port) Flushes() int {
	return p.flushes
}

// Pending returns the number of queued replies not consumed yet.
func (p *Port) Pending() int {
	return len(p.replies)
}

// Close makes further writes fail.
func (p *Port) Close() error {
	p.closed = true
	return nil
}

// WriteByte implements easyvr.Port.
func (p *Port) WriteByte(b byte) error {
	if p.closed {
		return ErrClosed
	}
	p.written = append(p.written, b)
	if r := p.armed; r != nil {
		p.armed = nil
		p.Feed(r.status...)
		p.acks = append([]byte(nil), r.args...)
		return nil
	}
	if b == protocol.ArgAck && len(p.acks) > 0 {
		p.Feed(p.acks[0])
		p.acks = p.acks[1:]
	}
	return nil
}

func (p *Port) ready(tb timedByte) bool {
	return p.Clock == nil || !tb.at.After(p.Clock.Now())
}

// TryReadByte implements easyvr.Port.
func (p *Port) TryReadByte() (byte, bool) {
	if len(p.input) == 0 || !p.ready(p.input[0]) {
		return 0, false
	}
	b := p.input[0].b
	p.input = p.input[1:]
	return b, true
}

// Buffered implements easyvr.Port.
func (p *Port) Buffered() int {
	n := 0
	for _, tb := range p.input {
		if !p.ready(tb) {
			break
		}
		n++
	}
	return n
}

// Flush implements easyvr.Port.
func (p *Port) Flush() error {
	if p.closed {
		return ErrClosed
	}
	p.flushes++
	if len(p.replies) > 0 {
		p.armed, p.replies = p.replies[0], p.replies[1:]
		if len(p.armed.status) == 0 {
			p.armed = nil
		}
		p.acks = nil
	}
	return nil
}
