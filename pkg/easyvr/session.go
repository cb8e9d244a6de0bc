package easyvr

import (
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

const (
	byteDelay      = time.Millisecond
	pollStep       = time.Millisecond
	bulkPollStep   = time.Second
	groupDelay     = 19 * time.Millisecond
	groupDelayFast = 39 * time.Millisecond
	detectAttempts = 5
)

// Session is the client state bound to one module connection.
type Session struct {
	Clock    Clock
	Timeouts Timeouts

	port   Port
	result Result
	// group is the last addressed command group, -1 if none.
	group int
	// id caches the last identification, see CachedID.
	id   ModuleID
	task Task
	// txErr is the first transport error of the current exchange.
	txErr error
}

// NewSession creates a Session on port.
func NewSession(port Port) *Session {
	return &Session{
		Clock:    SystemClock,
		Timeouts: DefaultTimeouts(),
		port:     port,
		group:    -1,
		id:       ModuleUnknown,
	}
}

// Port returns the underlying port.
func (s *Session) Port() Port {
	return s.port
}

func (s *Session) send(c byte) {
	s.Clock.Sleep(byteDelay)
	if err := s.port.WriteByte(c); err != nil && s.txErr == nil {
		s.txErr = fmt.Errorf("write 0x%02x: %w", c, err)
	}
}

// sendCmd starts an exchange: pending output is flushed and stale input is
// discarded before the command byte is written.
func (s *Session) sendCmd(cmd protocol.Command) {
	s.txErr = nil
	if err := s.port.Flush(); err != nil {
		s.txErr = fmt.Errorf("flush: %w", err)
	}
	for s.port.Buffered() > 0 {
		if _, ok := s.port.TryReadByte(); !ok {
			break
		}
	}
	if glog.V(4) {
		glog.Infof("easyvr: send %v", cmd)
	}
	s.send(cmd.Byte())
}

func (s *Session) sendArg(v int8) {
	s.send(protocol.EncodeArg(v))
}

func (s *Session) sendArgs(args ...int8) {
	for _, v := range args {
		s.sendArg(v)
	}
}

func (s *Session) send5(v int) {
	hi, lo := protocol.Split5(v)
	s.sendArgs(hi, lo)
}

// sendGroup sends the group argument and waits for the module to cache the
// group when it's different from the last one.
func (s *Session) sendGroup(group int) {
	s.sendArg(int8(group))
	if group == s.group {
		return
	}
	s.group = group
	if s.id >= EasyVR3 {
		s.Clock.Sleep(groupDelayFast)
	} else {
		s.Clock.Sleep(groupDelay)
	}
}

// poll waits up to timeout for a byte, checking every step.
// A negative timeout waits forever.
func (s *Session) poll(timeout, step time.Duration) (byte, bool) {
	n := int64(timeout / step)
	if timeout < 0 {
		n = -1
	}
	for n != 0 && s.port.Buffered() == 0 {
		s.Clock.Sleep(step)
		if n > 0 {
			n--
		}
	}
	return s.port.TryReadByte()
}

func (s *Session) recv(timeout time.Duration) (byte, bool) {
	return s.poll(timeout, pollStep)
}

// recvArg requests and reads one status argument.
func (s *Session) recvArg() (int8, bool) {
	s.send(protocol.ArgAck)
	if s.txErr != nil {
		return 0, false
	}
	b, ok := s.recv(s.Timeouts.Reply)
	if !ok {
		return 0, false
	}
	return protocol.DecodeArg(b)
}

// recvArgs reads n status arguments.
func (s *Session) recvArgs(n int) ([]int8, bool) {
	args := make([]int8, n)
	for i := range args {
		v, ok := s.recvArg()
		if !ok {
			return nil, false
		}
		args[i] = v
	}
	return args, true
}

// recvCount reads a count argument where -1 stands for 32.
func (s *Session) recvCount() (int, bool) {
	v, ok := s.recvArg()
	if !ok {
		return 0, false
	}
	if v == -1 {
		return 32, true
	}
	return int(v), true
}

func (s *Session) recvLabel() (string, bool) {
	return protocol.DecodeLabel(protocol.ReadArgFunc(s.recvArg))
}

func (s *Session) recvStatusStep(timeout, step time.Duration) (byte, error) {
	if s.txErr != nil {
		return 0, s.txErr
	}
	b, ok := s.poll(timeout, step)
	if !ok {
		return 0, ErrNoReply
	}
	if glog.V(4) {
		glog.Infof("easyvr: recv %v", protocol.StatusOf(b))
	}
	return b, nil
}

func (s *Session) recvStatus(timeout time.Duration) (byte, error) {
	return s.recvStatusStep(timeout, pollStep)
}

func statusErr(b byte, want protocol.Status) error {
	if st := protocol.StatusOf(b); st != want {
		return &StatusError{Status: st, Byte: b}
	}
	return nil
}

// expect reads the status byte and checks it's the wanted one.
func (s *Session) expect(timeout time.Duration, want protocol.Status) error {
	b, err := s.recvStatus(timeout)
	if err != nil {
		return err
	}
	return statusErr(b, want)
}

// exec runs a command answered by success.
func (s *Session) exec(timeout time.Duration, cmd protocol.Command, args ...int8) error {
	s.sendCmd(cmd)
	s.sendArgs(args...)
	return s.expect(timeout, protocol.StatusSuccess)
}

// start issues an asynchronous command.
func (s *Session) start(task Task, cmd protocol.Command, args ...int8) error {
	s.sendCmd(cmd)
	s.sendArgs(args...)
	if s.txErr != nil {
		return s.txErr
	}
	s.task = task
	return nil
}

// readStatus decodes the reply opened by status byte b into the result
// record. Unknown status bytes and failed follow-up reads end up as the
// error flag with value 0.
func (s *Session) readStatus(b byte) {
	var r Result
	switch protocol.StatusOf(b) {
	case protocol.StatusSuccess:
		s.result = r
		return
	case protocol.StatusSimilar, protocol.StatusResult:
		r.Flags = FlagCommand
		if protocol.StatusOf(b) == protocol.StatusSimilar {
			r.Flags = FlagBuiltin
		}
		if v, ok := s.recvArg(); ok {
			r.Value = int(v)
			s.result = r
			return
		}
	case protocol.StatusToken:
		r.Flags = FlagToken
		if args, ok := s.recvArgs(2); ok {
			r.Value = protocol.Join5(args[0], args[1])
			s.result = r
			return
		}
	case protocol.StatusAwaken:
		s.result = Result{Flags: FlagAwakened}
		return
	case protocol.StatusTimeout:
		s.result = Result{Flags: FlagTimeout}
		return
	case protocol.StatusInvalid:
		s.result = Result{Flags: FlagInvalid}
		return
	case protocol.StatusError:
		r.Flags = FlagError
		if args, ok := s.recvArgs(2); ok {
			r.Value = int(args[0])<<4 | int(args[1])
			s.result = r
			return
		}
	}
	if glog.V(4) {
		glog.Infof("easyvr: unexpected reply 0x%02x", b)
	}
	s.result = Result{Flags: FlagError}
}

// HasFinished polls the completion of an asynchronous operation without
// waiting. Once a reply is available it is decoded into the result record
// and true is returned, otherwise nothing changes.
func (s *Session) HasFinished() bool {
	b, ok := s.recv(0)
	if !ok {
		return false
	}
	s.txErr = nil
	s.readStatus(b)
	s.task = TaskNone
	return true
}

// Task returns the pending asynchronous operation.
func (s *Session) Task() Task {
	return s.task
}

// Busy indicates an asynchronous operation is pending.
func (s *Session) Busy() bool {
	return s.task != TaskNone
}

// Result returns the result record of the last decoded reply.
func (s *Session) Result() Result {
	return s.result
}

// Err converts the result record into an error, nil if no failure flag is
// set.
func (s *Session) Err() error {
	return s.result.Err()
}

// Command returns the recognized or dumped command index, -1 if none.
func (s *Session) Command() int { return s.result.Command() }

// Word returns the recognized built-in word index, -1 if none.
func (s *Session) Word() int { return s.result.Word() }

// Token returns the detected SonicNet token, -1 if none.
func (s *Session) Token() int { return s.result.Token() }

// ErrorCode returns the module error code, -1 if no error occurred.
// Code 0 means a communication failure.
func (s *Session) ErrorCode() int { return s.result.ErrorCode() }

// IsTimeout indicates the module reported a timeout.
func (s *Session) IsTimeout() bool { return s.result.IsTimeout() }

// IsAwakened indicates the module woke up from sleep.
func (s *Session) IsAwakened() bool { return s.result.IsAwakened() }

// IsConflict indicates the last trained or dumped command conflicts with
// another one.
func (s *Session) IsConflict() bool { return s.result.IsConflict() }

// IsMemoryFull indicates the last AddCommand failed for lack of space.
func (s *Session) IsMemoryFull() bool { return s.result.IsMemoryFull() }

// IsInvalid indicates the module rejected the last command.
func (s *Session) IsInvalid() bool { return s.result.IsInvalid() }
