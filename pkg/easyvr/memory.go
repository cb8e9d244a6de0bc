package easyvr

import (
	"time"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

// MaxMessage is the highest message slot index.
const MaxMessage = 31

// waitBulk waits for the reply of a long storage operation, checking once
// per second.
func (s *Session) waitBulk(timeout time.Duration) error {
	b, err := s.recvStatusStep(timeout, bulkPollStep)
	if err != nil {
		return err
	}
	return statusErr(b, protocol.StatusSuccess)
}

// reset erases storage in scope. Without wait the completion is reported by
// HasFinished.
func (s *Session) reset(scope protocol.ResetScope, wait bool, timeout time.Duration) error {
	if err := s.start(TaskReset, protocol.CmdResetAll, scope.Arg()); err != nil || !wait {
		return err
	}
	s.task = TaskNone
	return s.waitBulk(timeout)
}

// ResetAll erases all commands, groups and messages. The wait budget depends
// on the module generation, the module is identified first when unknown.
func (s *Session) ResetAll(wait bool) error {
	timeout := s.Timeouts.ResetAll
	if wait {
		id := s.id
		if id == ModuleUnknown {
			id, _ = s.ID()
		}
		if id >= EasyVR3 {
			timeout = s.Timeouts.ResetAllFast
		}
	}
	return s.reset(protocol.ResetScopeAll, wait, timeout)
}

// ResetCommands erases all commands and groups.
func (s *Session) ResetCommands(wait bool) error {
	return s.reset(protocol.ResetScopeCommands, wait, s.Timeouts.ResetCommands)
}

// ResetMessages erases all recorded messages.
func (s *Session) ResetMessages(wait bool) error {
	return s.reset(protocol.ResetScopeMessages, wait, s.Timeouts.ResetMessages)
}

// CheckMessages verifies the consistency of message storage. The module
// reply is decoded into the result record.
func (s *Session) CheckMessages() error {
	s.sendCmd(protocol.CmdVerifyRP)
	s.sendArgs(-1, 0)
	b, err := s.recvStatus(s.Timeouts.Storage)
	if err != nil {
		s.result = Result{Flags: FlagError}
		return err
	}
	s.readStatus(b)
	return s.result.Err()
}

// FixMessages repairs message storage.
func (s *Session) FixMessages(wait bool) error {
	if err := s.start(TaskFixMessages, protocol.CmdVerifyRP, -1, 1); err != nil || !wait {
		return err
	}
	s.task = TaskNone
	return s.waitBulk(s.Timeouts.FixMessages)
}

// RecordMessageAsync starts recording a message, bits is 8 and timeout in
// seconds (0 is the longest).
func (s *Session) RecordMessageAsync(index, bits, timeout int) error {
	if err := checkRange("message", index, 0, MaxMessage); err != nil {
		return err
	}
	if bits != int(Message8Bit) {
		return &ArgumentError{Name: "bits", Value: bits}
	}
	if err := checkRange("timeout", timeout, 0, int(protocol.MaxArg)); err != nil {
		return err
	}
	return s.start(TaskRecordMessage, protocol.CmdRecordRP, -1, int8(index), int8(bits), int8(timeout))
}

// PlayMessageAsync starts playing a recorded message.
func (s *Session) PlayMessageAsync(index int, speed MessageSpeed, atten MessageAttenuation) error {
	if err := checkRange("message", index, 0, MaxMessage); err != nil {
		return err
	}
	if err := checkRange("speed", int(speed), int(SpeedNormal), int(SpeedFaster)); err != nil {
		return err
	}
	return s.start(TaskPlayMessage, protocol.CmdPlayRP, -1, int8(index), int8(int(speed)<<2|int(atten)&3))
}

// EraseMessageAsync starts erasing a recorded message.
func (s *Session) EraseMessageAsync(index int) error {
	if err := checkRange("message", index, 0, MaxMessage); err != nil {
		return err
	}
	return s.start(TaskEraseMessage, protocol.CmdEraseRP, -1, int8(index))
}

// MessageInfo describes a message slot.
type MessageInfo struct {
	Type MessageType
	// Length is the message size in bytes.
	Length int64
}

// messageLengthBytes is the size of the message length field.
const messageLengthBytes = 6

// DumpMessage reads type and length of a recorded message. Any other reply
// than the message data is decoded into the result record.
func (s *Session) DumpMessage(index int) (*MessageInfo, error) {
	if err := checkRange("message", index, 0, MaxMessage); err != nil {
		return nil, err
	}
	s.sendCmd(protocol.CmdDumpRP)
	s.sendArgs(-1, int8(index))
	b, err := s.recvStatus(s.Timeouts.Storage)
	if err != nil {
		return nil, err
	}
	if protocol.StatusOf(b) != protocol.StatusMessage {
		s.readStatus(b)
		if err = s.result.Err(); err == nil {
			err = &StatusError{Status: protocol.StatusOf(b), Byte: b}
		}
		return nil, err
	}
	typ, ok := s.recvArg()
	if !ok {
		return nil, s.badReply()
	}
	info := &MessageInfo{Type: MessageType(typ)}
	if typ != 0 {
		args, ok := s.recvArgs(messageLengthBytes * 2)
		if !ok {
			return nil, s.badReply()
		}
		for i, v := range protocol.PackNibbles(args) {
			info.Length |= int64(v) << (8 * uint(i))
		}
	}
	s.result = Result{}
	return info, nil
}
