package easyvr

import (
	"time"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

// RealtimeLipsync starts streaming mouth positions of the microphone input
// for up to timeout (1 to 255 seconds). threshold sets the sound level of
// an open mouth, LipsyncThresholdDef is a good start. Positions are read
// with FetchMouthPosition until it reports the end.
func (s *Session) RealtimeLipsync(threshold int, timeout time.Duration) error {
	if err := checkRange("threshold", threshold, 0, LipsyncThresholdMax); err != nil {
		return err
	}
	secs := int(timeout / time.Second)
	if err := checkRange("timeout", secs, 1, 255); err != nil {
		return err
	}
	s.sendCmd(protocol.CmdLipsync)
	s.sendArg(-1)
	s.send5(threshold)
	hi, lo := protocol.Split4(byte(secs))
	s.sendArgs(hi, lo)
	b, err := s.recvStatus(s.Timeouts.Reply)
	if err != nil {
		return err
	}
	if protocol.StatusOf(b) != protocol.StatusLipsync {
		s.readStatus(b)
		if err = s.result.Err(); err == nil {
			err = &StatusError{Status: protocol.StatusOf(b), Byte: b}
		}
		return err
	}
	return nil
}

// FetchMouthPosition reads the next mouth position (0 closed to 31 open).
// When ok is false lipsync has ended, and the final status is decoded into
// the result record if one was received.
func (s *Session) FetchMouthPosition() (pos int, ok bool) {
	s.txErr = nil
	s.send(protocol.ArgAck)
	if s.txErr != nil {
		return 0, false
	}
	b, ok := s.recv(s.Timeouts.Reply)
	if !ok {
		return 0, false
	}
	if v, isArg := protocol.DecodeArg(b); isArg {
		return int(v), true
	}
	s.readStatus(b)
	return 0, false
}
