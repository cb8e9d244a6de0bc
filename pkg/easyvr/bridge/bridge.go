// Package bridge lets a companion host talk to the module directly, e.g. for
// configuration or firmware update tools, bypassing the protocol session.
package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/easyvr.go/pkg/easyvr"
	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

// Mode is the bridge mode requested by the companion.
type Mode int

// Bridge modes.
const (
	// None means no bridge was requested.
	None Mode = iota
	// Normal relays at the module baud rate.
	Normal
	// Boot relays to the module boot loader at 115200 bps.
	Boot
)

// BootBaudrate is the baud rate of the module boot loader.
const BootBaudrate = 115200

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Normal:
		return "normal"
	case Boot:
		return "boot"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

const (
	requestTicks = 150
	requestTick  = 10 * time.Millisecond
	ackDelay     = time.Millisecond
	idleDelay    = time.Millisecond
	// GuardTime is the silence required around the escape byte.
	GuardTime = 100 * time.Millisecond
)

func ack(companion easyvr.Port, clock easyvr.Clock, b byte) error {
	if err := companion.WriteByte(b); err != nil {
		return err
	}
	clock.Sleep(ackDelay)
	return companion.Flush()
}

// Requested probes the companion link for a bridge request. The companion
// answers the probe with a request byte followed by the mode byte, each one
// acknowledged. It returns None when no complete request arrived in about
// 1.5 seconds.
func Requested(companion easyvr.Port, clock easyvr.Clock) (Mode, error) {
	if err := companion.WriteByte(protocol.BridgeProbe); err != nil {
		return None, err
	}
	request := false
	for t := 0; t < requestTicks; t++ {
		clock.Sleep(requestTick)
		rx, ok := companion.TryReadByte()
		if !ok {
			continue
		}
		if !request {
			if rx == protocol.BridgeRequest {
				if err := ack(companion, clock, protocol.BridgeRequestAck); err != nil {
					return None, err
				}
				request = true
			}
			continue
		}
		switch rx {
		case protocol.BridgeNormal:
			return Normal, ack(companion, clock, protocol.BridgeNormalAck)
		case protocol.BridgeBoot:
			return Boot, ack(companion, clock, protocol.BridgeBootAck)
		}
		request = false
	}
	return None, nil
}

// Relay copies bytes in both directions between the module and the
// companion until the companion sends the escape byte surrounded by
// GuardTime of silence, or ctx is done. An escape byte followed by more
// traffic within GuardTime is forwarded.
func Relay(ctx context.Context, module, companion easyvr.Port, clock easyvr.Clock) error {
	guard := clock.Now()
	held := false
	for {
		if held && !clock.Now().Before(guard) {
			glog.V(2).Info("bridge: escape")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		idle := true
		if rx, ok := companion.TryReadByte(); ok {
			idle = false
			if rx == protocol.BridgeEscape && !held && !clock.Now().Before(guard) {
				held = true
				guard = clock.Now().Add(GuardTime)
				continue
			}
			if held {
				held = false
				if err := module.WriteByte(protocol.BridgeEscape); err != nil {
					return fmt.Errorf("relay to module: %w", err)
				}
			}
			if err := module.WriteByte(rx); err != nil {
				return fmt.Errorf("relay to module: %w", err)
			}
			guard = clock.Now().Add(GuardTime)
		}
		if rx, ok := module.TryReadByte(); ok {
			idle = false
			if err := companion.WriteByte(rx); err != nil {
				return fmt.Errorf("relay to companion: %w", err)
			}
		}
		if idle {
			clock.Sleep(idleDelay)
		}
	}
}
