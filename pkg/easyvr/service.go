package easyvr

import (
	"fmt"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

func (s *Session) sendService(code protocol.ServiceCode, group, index int) {
	s.sendCmd(protocol.CmdService)
	s.sendArg(code.Arg())
	s.sendGroup(group)
	s.sendArg(int8(index))
}

// ExportCommand reads the raw data of a trained command.
func (s *Session) ExportCommand(group, index int) ([]byte, error) {
	if err := checkCommand(group, index); err != nil {
		return nil, err
	}
	s.sendService(protocol.SvcExportSD, group, index)
	if err := s.expect(s.Timeouts.Storage, protocol.StatusService); err != nil {
		return nil, err
	}
	if code, ok := s.recvArg(); !ok || code != protocol.SvcDumpSD.Arg() {
		return nil, ErrBadReply
	}
	data := make([]byte, RawCommandSize)
	for i := range data {
		args, ok := s.recvArgs(2)
		if !ok {
			return nil, ErrBadReply
		}
		data[i] = protocol.Join4(args[0], args[1])
	}
	return data, nil
}

// ImportCommand writes raw data exported by ExportCommand into a command.
// Training should be checked with VerifyCommand afterwards.
func (s *Session) ImportCommand(group, index int, data []byte) error {
	if err := checkCommand(group, index); err != nil {
		return err
	}
	if len(data) != RawCommandSize {
		return fmt.Errorf("raw command must be %d bytes, got %d", RawCommandSize, len(data))
	}
	s.sendService(protocol.SvcImportSD, group, index)
	for _, b := range data {
		hi, lo := protocol.Split4(b)
		s.sendArgs(hi, lo)
	}
	return s.expect(s.Timeouts.Storage, protocol.StatusSuccess)
}

// VerifyCommand starts verifying the training of an imported command.
// The outcome is read after HasFinished, like TrainCommand.
func (s *Session) VerifyCommand(group, index int) error {
	if err := checkCommand(group, index); err != nil {
		return err
	}
	s.sendService(protocol.SvcVerifySD, group, index)
	if s.txErr != nil {
		return s.txErr
	}
	s.task = TaskVerifyCommand
	return nil
}
