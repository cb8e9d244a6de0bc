package easyvr

import (
	"time"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

// Detect checks the module is connected and responding. It retries a few
// times with the wake timeout, as a sleeping module swallows the first byte.
func (s *Session) Detect() error {
	for i := 0; i < detectAttempts; i++ {
		s.sendCmd(protocol.CmdBreak)
		b, err := s.recvStatus(s.Timeouts.Wake)
		if err == nil && protocol.StatusOf(b) == protocol.StatusSuccess {
			return nil
		}
		if s.txErr != nil {
			return s.txErr
		}
	}
	return ErrNotDetected
}

// Stop interrupts the running operation.
func (s *Session) Stop() error {
	s.sendCmd(protocol.CmdBreak)
	b, err := s.recvStatus(s.Timeouts.Storage)
	if err != nil {
		return err
	}
	switch protocol.StatusOf(b) {
	case protocol.StatusInterr, protocol.StatusSuccess:
		s.task = TaskNone
		return nil
	}
	return &StatusError{Status: protocol.StatusOf(b), Byte: b}
}

// Sleep puts the module in power down until woken up by mode. Waking up is
// reported by HasFinished with IsAwakened.
func (s *Session) Sleep(mode WakeMode, sense ClapSense) error {
	v := int(mode)
	if mode == WakeOn2Claps || mode == WakeOn3Claps {
		v += int(sense)
	}
	if err := checkRange("wake mode", v, 0, int(protocol.MaxArg)); err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdSleep, int8(v))
}

// ID identifies the module. The result is cached for CachedID, a failure
// clears the cache.
func (s *Session) ID() (ModuleID, error) {
	s.sendCmd(protocol.CmdID)
	err := s.expect(s.Timeouts.Reply, protocol.StatusID)
	if err == nil {
		if v, ok := s.recvArg(); ok {
			s.id = ModuleID(v)
			return s.id, nil
		}
		err = ErrBadReply
	}
	s.id = ModuleUnknown
	return s.id, err
}

// CachedID returns the result of the last ID call without querying the
// module. It's never invalidated, call ID again after a cold reset of the
// module.
func (s *Session) CachedID() ModuleID {
	return s.id
}

// SetLanguage selects the language of the built-in word sets.
func (s *Session) SetLanguage(lang Language) error {
	if err := checkRange("language", int(lang), int(English), int(French)); err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdLanguage, int8(lang))
}

// SetTimeout sets the recognition timeout, 0 means infinite.
func (s *Session) SetTimeout(seconds int) error {
	if err := checkRange("timeout", seconds, 0, int(protocol.MaxArg)); err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdTimeout, int8(seconds))
}

// SetMicDistance sets the microphone operating distance.
func (s *Session) SetMicDistance(dist Distance) error {
	if err := checkRange("distance", int(dist), int(Headset), int(FarMic)); err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdMicDist, -1, int8(dist))
}

// SetKnob sets the confidence threshold of built-in words recognition.
func (s *Session) SetKnob(knob Knob) error {
	if err := checkRange("knob", int(knob), int(KnobLooser), int(KnobStricter)); err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdKnob, int8(knob))
}

// SetTrailingSilence sets the silence required to end a command.
func (s *Session) SetTrailingSilence(dur TrailingSilence) error {
	if err := checkRange("trailing silence", int(dur), int(TrailingMin), int(TrailingMax)); err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdTrailing, -1, int8(dur))
}

// SetLevel sets the strictness of custom commands recognition.
func (s *Session) SetLevel(level Level) error {
	if err := checkRange("level", int(level), int(LevelEasy), int(LevelHardest)); err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdLevel, int8(level))
}

// SetCommandLatency selects the custom commands recognition settings.
func (s *Session) SetCommandLatency(mode CommandLatency) error {
	if err := checkRange("latency", int(mode), int(LatencyNormal), int(LatencyFast)); err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdFastSD, -1, int8(mode))
}

// delayArg maps a reply delay on the logarithmic scale of the module.
func delayArg(d time.Duration) (int8, error) {
	ms := int(d / time.Millisecond)
	switch {
	case ms < 0:
	case ms <= 10:
		return int8(ms), nil
	case ms <= 100:
		return int8(ms/10 + 9), nil
	case ms <= 1000:
		return int8(ms/100 + 18), nil
	}
	return 0, &ArgumentError{Name: "delay", Value: ms}
}

// SetDelay sets the delay before the module replies, up to one second.
func (s *Session) SetDelay(d time.Duration) error {
	v, err := delayArg(d)
	if err != nil {
		return err
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdDelay, v)
}

// ChangeBaudrate sets the module baud rate. The new rate is effective after
// the reply, the port must be reconfigured by the caller.
func (s *Session) ChangeBaudrate(baud Baudrate) error {
	switch baud {
	case B115200, B57600, B38400, B19200, B9600:
	default:
		return &ArgumentError{Name: "baudrate", Value: int(baud)}
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdBaudrate, int8(baud))
}
