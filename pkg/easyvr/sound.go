package easyvr

import (
	"time"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

// PlayPhoneTone plays a DTMF tone (0-15) for duration in 40ms units, or the
// dial tone (ToneDial) for duration in seconds. duration is 1 to 32.
func (s *Session) PlayPhoneTone(tone, duration int) error {
	if err := checkRange("tone", tone, ToneDial, ToneD); err != nil {
		return err
	}
	if err := checkRange("duration", duration, 1, 32); err != nil {
		return err
	}
	wait := time.Duration(duration) * 40 * time.Millisecond
	if tone < 0 {
		wait = time.Duration(duration) * time.Second
	}
	s.sendCmd(protocol.CmdPlayDTMF)
	s.sendArgs(-1, int8(tone), int8(duration-1))
	return s.expect(wait+s.Timeouts.Reply, protocol.StatusSuccess)
}

func (s *Session) sendPlaySound(index, volume int) error {
	if err := checkRange("sound", index, 0, MaxSoundIndex); err != nil {
		return err
	}
	if err := checkRange("volume", volume, VolumeMin, VolumeDouble); err != nil {
		return err
	}
	s.sendCmd(protocol.CmdPlaySX)
	s.send5(index)
	s.sendArg(int8(volume))
	return nil
}

// PlaySound plays a sound from the sound table and waits for its end.
func (s *Session) PlaySound(index, volume int) error {
	if err := s.sendPlaySound(index, volume); err != nil {
		return err
	}
	return s.expect(s.Timeouts.Play, protocol.StatusSuccess)
}

// PlaySoundAsync starts playing a sound from the sound table.
func (s *Session) PlaySoundAsync(index, volume int) error {
	if err := s.sendPlaySound(index, volume); err != nil {
		return err
	}
	if s.txErr != nil {
		return s.txErr
	}
	s.task = TaskPlaySound
	return nil
}

func checkTokenBits(bits int) error {
	if bits != 4 && bits != 8 {
		return &ArgumentError{Name: "bits", Value: bits}
	}
	return nil
}

func (s *Session) sendToken(bits, token int) error {
	if err := checkTokenBits(bits); err != nil {
		return err
	}
	if err := checkRange("token", token, 0, 1<<uint(bits)-1); err != nil {
		return err
	}
	s.sendCmd(protocol.CmdSendSN)
	s.sendArg(int8(bits))
	s.send5(token)
	return nil
}

// DetectToken starts listening for a SonicNet token of 4 or 8 bits. A zero
// timeout waits forever. The token is read with Token after HasFinished.
func (s *Session) DetectToken(bits int, rejection RejectionLevel, timeout time.Duration) error {
	if err := checkTokenBits(bits); err != nil {
		return err
	}
	if err := checkRange("rejection", int(rejection), int(RejectionMin), int(RejectionMax)); err != nil {
		return err
	}
	units := protocol.MillisToUnits(int(timeout / time.Millisecond))
	if err := checkRange("timeout", units, 0, protocol.Join5(31, 31)); err != nil {
		return err
	}
	s.sendCmd(protocol.CmdRecvSN)
	s.sendArgs(int8(bits), int8(rejection))
	s.send5(units)
	if s.txErr != nil {
		return s.txErr
	}
	s.task = TaskDetectToken
	return nil
}

// SendToken plays a SonicNet token and waits for its end.
func (s *Session) SendToken(bits, token int) error {
	if err := s.sendToken(bits, token); err != nil {
		return err
	}
	s.sendArgs(0, 0)
	return s.expect(s.Timeouts.Token, protocol.StatusSuccess)
}

// SendTokenAsync starts playing a SonicNet token.
func (s *Session) SendTokenAsync(bits, token int) error {
	if err := s.sendToken(bits, token); err != nil {
		return err
	}
	s.sendArgs(0, 0)
	if s.txErr != nil {
		return s.txErr
	}
	s.task = TaskSendToken
	return nil
}

// EmbedToken schedules a SonicNet token to be mixed into the next sound
// played, after delay from its start.
func (s *Session) EmbedToken(bits, token int, delay time.Duration) error {
	units := protocol.MillisToDelayUnits(int(delay / time.Millisecond))
	if units == 0 {
		units = 1
	}
	if err := checkRange("delay", units, 1, protocol.Join5(31, 31)); err != nil {
		return err
	}
	if err := s.sendToken(bits, token); err != nil {
		return err
	}
	s.send5(units)
	return s.expect(s.Timeouts.Reply, protocol.StatusSuccess)
}

// SoundTable describes the sound table stored in the module.
type SoundTable struct {
	Label string
	Count int
}

// DumpSoundTable reads the label and size of the sound table.
func (s *Session) DumpSoundTable() (*SoundTable, error) {
	s.sendCmd(protocol.CmdDumpSX)
	if err := s.expect(s.Timeouts.Reply, protocol.StatusTableSX); err != nil {
		return nil, err
	}
	args, ok := s.recvArgs(2)
	if !ok {
		return nil, ErrBadReply
	}
	table := &SoundTable{Count: protocol.Join5(args[0], args[1])}
	// a label count of -1 reads as 32 units, tables never carry one
	if table.Label, ok = s.recvLabel(); !ok {
		return nil, ErrBadReply
	}
	return table, nil
}
