package easyvr

import (
	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

// SetPinOutput configures pin as output and sets its level, value is
// OutputLow or OutputHigh.
func (s *Session) SetPinOutput(pin int, value PinConfig) error {
	if err := checkRange("pin", pin, IO1, IO6); err != nil {
		return err
	}
	if value != OutputLow && value != OutputHigh {
		return &ArgumentError{Name: "pin output", Value: int(value)}
	}
	return s.exec(s.Timeouts.Reply, protocol.CmdQueryIO, int8(pin), int8(value))
}

// PinInput configures pin as input and reads its level.
func (s *Session) PinInput(pin int, config PinConfig) (int, error) {
	if err := checkRange("pin", pin, IO1, IO6); err != nil {
		return 0, err
	}
	if err := checkRange("pin input", int(config), int(InputHiZ), int(InputWeak)); err != nil {
		return 0, err
	}
	s.sendCmd(protocol.CmdQueryIO)
	s.sendArgs(int8(pin), int8(config))
	if err := s.expect(s.Timeouts.Reply, protocol.StatusPin); err != nil {
		return 0, err
	}
	v, ok := s.recvArg()
	if !ok {
		return 0, ErrBadReply
	}
	return int(v), nil
}
