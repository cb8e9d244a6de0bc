package easyvr

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/easyvr.go/pkg/easyvr/fake"
	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

func newTestSession() (*Session, *fake.Port, *fake.Clock) {
	clock := fake.NewClock()
	port := fake.NewPort(clock)
	s := NewSession(port)
	s.Clock = clock
	return s, port, clock
}

// argBytes encodes argument values.
func argBytes(vs ...int8) []byte {
	b := make([]byte, len(vs))
	for i, v := range vs {
		b[i] = protocol.EncodeArg(v)
	}
	return b
}

func wire(parts ...interface{}) []byte {
	var b []byte
	for _, p := range parts {
		switch v := p.(type) {
		case byte:
			b = append(b, v)
		case rune:
			b = append(b, byte(v))
		case []byte:
			b = append(b, v...)
		case string:
			b = append(b, v...)
		default:
			panic("unsupported wire part")
		}
	}
	return b
}

func TestStatusDispatch(t *testing.T) {
	testCases := []struct {
		name   string
		status byte
		args   []byte
		flags  Flags
		value  int
	}{
		{"success", 'o', nil, 0, 0},
		{"command", 'r', []byte{0x45}, FlagCommand, 4},
		{"builtin", 's', []byte{0x43}, FlagBuiltin, 2},
		{"token", 'f', argBytes(1, 2), FlagToken, 34},
		{"error", 'e', []byte{0x42, 0x42}, FlagError, 0x11},
		{"timeout", 't', nil, FlagTimeout, 0},
		{"invalid", 'v', nil, FlagInvalid, 0},
		{"awakened", 'w', nil, FlagAwakened, 0},
		{"unknown status", 'Z', nil, FlagError, 0},
		{"missing argument", 'r', nil, FlagError, 0},
		{"bad argument", 'r', []byte{0x7a}, FlagError, 0},
		{"truncated error", 'e', []byte{0x42}, FlagError, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, port, _ := newTestSession()
			require.NoError(t, s.RecognizeCommand(1))
			require.Equal(t, TaskRecognizeCommand, s.Task())
			port.Feed(tc.status).FeedArgs(tc.args...)
			require.True(t, s.HasFinished())
			require.Equal(t, Result{Flags: tc.flags, Value: tc.value}, s.Result())
			require.False(t, s.Busy())
		})
	}
}

func TestResultAccessors(t *testing.T) {
	s, port, _ := newTestSession()
	require.NoError(t, s.RecognizeCommand(2))
	port.Feed('r').FeedArgs(0x45)
	require.True(t, s.HasFinished())
	require.Equal(t, 4, s.Command())
	require.Equal(t, -1, s.Word())
	require.Equal(t, -1, s.Token())
	require.Equal(t, -1, s.ErrorCode())
	require.NoError(t, s.Err())

	require.NoError(t, s.RecognizeWord(WordsetAction))
	port.Feed('e').FeedArgs(0x42, 0x42)
	require.True(t, s.HasFinished())
	require.Equal(t, -1, s.Command())
	require.Equal(t, int(ErrRecogFail), s.ErrorCode())
	require.Equal(t, ErrRecogFail, s.Err())
}

func TestHasFinishedWithoutReply(t *testing.T) {
	s, port, clock := newTestSession()
	require.NoError(t, s.RecognizeCommand(1))
	port.Feed('r').FeedArgs(0x45)
	require.True(t, s.HasFinished())
	before := s.Result()

	require.NoError(t, s.RecognizeCommand(1))
	port.FeedAfter(50*time.Millisecond, 's').FeedArgs(0x43)
	slept := clock.Slept()
	for i := 0; i < 3; i++ {
		require.False(t, s.HasFinished())
		require.Equal(t, before, s.Result())
		require.True(t, s.Busy())
	}
	require.Equal(t, slept, clock.Slept())

	clock.Sleep(50 * time.Millisecond)
	require.True(t, s.HasFinished())
	require.Equal(t, 2, s.Word())
	require.False(t, s.HasFinished())
}

func TestDetect(t *testing.T) {
	s, port, clock := newTestSession()
	port.NoReply().NoReply().Reply('o')
	require.NoError(t, s.Detect())
	require.Equal(t, []byte("bbb"), port.Written())
	require.Equal(t, 3, port.Flushes())
	require.Equal(t, 3*time.Millisecond+2*s.Timeouts.Wake, clock.Slept())
}

func TestDetectNotFound(t *testing.T) {
	s, port, _ := newTestSession()
	for i := 0; i < 5; i++ {
		port.NoReply()
	}
	port.Reply('o')
	require.Equal(t, ErrNotDetected, s.Detect())
	require.Equal(t, []byte("bbbbb"), port.Written())
	require.Equal(t, 1, port.Pending())
}

func TestStaleInputDiscarded(t *testing.T) {
	s, port, _ := newTestSession()
	port.Feed('x', 'y').Reply('o')
	require.NoError(t, s.SetLevel(LevelHard))
	require.Equal(t, wire('v', argBytes(3)), port.Written())
}

func TestStop(t *testing.T) {
	s, port, _ := newTestSession()
	require.NoError(t, s.RecognizeWord(WordsetTrigger))
	port.Reply('i')
	require.NoError(t, s.Stop())
	require.False(t, s.Busy())

	port.Reply('o')
	require.NoError(t, s.Stop())

	port.Reply('e')
	err := s.Stop()
	require.Error(t, err)
	se, ok := err.(*StatusError)
	require.True(t, ok)
	require.Equal(t, protocol.StatusError, se.Status)

	port.NoReply()
	require.Equal(t, ErrNoReply, s.Stop())
}

func TestID(t *testing.T) {
	s, port, _ := newTestSession()
	require.Equal(t, ModuleUnknown, s.CachedID())
	port.Reply('x', argBytes(8)...)
	id, err := s.ID()
	require.NoError(t, err)
	require.Equal(t, EasyVR3, id)
	require.Equal(t, EasyVR3, s.CachedID())
	require.Equal(t, wire('x', byte(protocol.ArgAck)), port.Written())

	port.Reply('x')
	_, err = s.ID()
	require.Equal(t, ErrBadReply, err)
	require.Equal(t, ModuleUnknown, s.CachedID())
}

func TestGroupDelay(t *testing.T) {
	s, port, clock := newTestSession()
	port.Reply('o').Reply('o')
	require.NoError(t, s.AddCommand(1, 2))
	require.Equal(t, 3*time.Millisecond+groupDelay, clock.Slept())
	require.NoError(t, s.AddCommand(1, 3))
	require.Equal(t, 6*time.Millisecond+groupDelay, clock.Slept())

	port.Reply('x', argBytes(9)...).Reply('o')
	_, err := s.ID()
	require.NoError(t, err)
	slept := clock.Slept()
	require.NoError(t, s.AddCommand(2, 0))
	require.Equal(t, slept+3*time.Millisecond+groupDelayFast, clock.Slept())
}

func TestWriteFailure(t *testing.T) {
	s, port, _ := newTestSession()
	port.Close()
	err := s.SetLevel(LevelEasy)
	require.Error(t, err)
	require.True(t, errors.Is(err, fake.ErrClosed))
	require.Error(t, s.RecognizeCommand(1))
	require.False(t, s.Busy())
}

func TestArgumentValidation(t *testing.T) {
	s, port, _ := newTestSession()
	err := s.AddCommand(MaxGroup+1, 0)
	argErr, ok := err.(*ArgumentError)
	require.True(t, ok)
	require.Equal(t, "group", argErr.Name)
	require.Error(t, s.SetCommandLabel(0, 32, "X"))
	require.Error(t, s.SetKnob(Knob(5)))
	require.Error(t, s.PlaySound(1024, VolumeFull))
	require.Error(t, s.SendToken(5, 1))
	require.Error(t, s.SendToken(4, 16))
	require.Error(t, s.SetDelay(1001*time.Millisecond))
	require.Error(t, s.ChangeBaudrate(Baudrate(4)))
	require.Empty(t, port.Written())
	require.Equal(t, 0, port.Flushes())
}

func TestFlags(t *testing.T) {
	require.Equal(t, "none", Flags(0).String())
	require.Equal(t, "command|conflict", (FlagCommand | FlagConflict).String())
	require.True(t, (FlagError | FlagTimeout).Has(FlagTimeout))
	require.False(t, FlagError.Has(FlagError|FlagTimeout))
}

func TestResultErr(t *testing.T) {
	require.NoError(t, Result{}.Err())
	require.Equal(t, ErrCommunication, Result{Flags: FlagError}.Err())
	require.Equal(t, ErrTimeout, Result{Flags: FlagTimeout}.Err())
	require.Equal(t, ErrInvalid, Result{Flags: FlagInvalid}.Err())
	require.Equal(t, ErrMemoryFull, Result{Flags: FlagMemoryFull}.Err())
	require.Equal(t, -1, Result{Flags: FlagTimeout, Value: 3}.Command())
}

func TestErrorCode(t *testing.T) {
	require.Equal(t, CategoryRecognition, ErrRecogFail.Category())
	require.Equal(t, CategoryMessages, ErrRPNoMsg.Category())
	require.Equal(t, CategoryInternal, ErrSWStackOverflow.Category())
	require.Equal(t, CategoryUnknown, ErrCommunication.Category())
	require.Equal(t, "module error 0x11: recognition failed", ErrRecogFail.Error())
	require.Equal(t, "module error 0x7f", ErrorCode(0x7f).Error())
}

func TestSettings(t *testing.T) {
	testCases := []struct {
		name    string
		call    func(*Session) error
		written []byte
	}{
		{"sleep", func(s *Session) error { return s.Sleep(WakeOn3Claps, ClapSenseHigh) }, wire('s', argBytes(8))},
		{"language", func(s *Session) error { return s.SetLanguage(German) }, wire('l', argBytes(3))},
		{"timeout", func(s *Session) error { return s.SetTimeout(5) }, wire('o', argBytes(5))},
		{"distance", func(s *Session) error { return s.SetMicDistance(FarMic) }, wire('k', argBytes(-1, 3))},
		{"knob", func(s *Session) error { return s.SetKnob(KnobStrict) }, wire('k', argBytes(3))},
		{"trailing", func(s *Session) error { return s.SetTrailingSilence(Trailing300ms) }, wire('t', argBytes(-1, 8))},
		{"latency", func(s *Session) error { return s.SetCommandLatency(LatencyFast) }, wire('f', argBytes(-1, 1))},
		{"delay 5ms", func(s *Session) error { return s.SetDelay(5 * time.Millisecond) }, wire('y', argBytes(5))},
		{"delay 50ms", func(s *Session) error { return s.SetDelay(50 * time.Millisecond) }, wire('y', argBytes(14))},
		{"delay 1s", func(s *Session) error { return s.SetDelay(time.Second) }, wire('y', argBytes(28))},
		{"baudrate", func(s *Session) error { return s.ChangeBaudrate(B19200) }, wire('a', argBytes(6))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, port, _ := newTestSession()
			port.Reply('o')
			require.NoError(t, tc.call(s))
			require.Equal(t, tc.written, port.Written())
		})
	}
}
