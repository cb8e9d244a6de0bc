package easyvr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

func TestResetAllIdentifiesFirst(t *testing.T) {
	s, port, clock := newTestSession()
	port.Reply('x', argBytes(8)...).NoReply()
	require.Equal(t, ErrNoReply, s.ResetAll(true))
	require.Equal(t, wire('x', byte(protocol.ArgAck), 'r', 'R'), port.Written())
	require.Equal(t, s.Timeouts.ResetAllFast+4*time.Millisecond, clock.Slept())
	require.False(t, s.Busy())
}

func TestResetAllOldModule(t *testing.T) {
	s, port, clock := newTestSession()
	port.Reply('x', argBytes(int8(EasyVR2))...).NoReply()
	require.Equal(t, ErrNoReply, s.ResetAll(true))
	require.Equal(t, s.Timeouts.ResetAll+4*time.Millisecond, clock.Slept())

	// cached id, no query
	port.TakeWritten()
	port.Reply('o')
	require.NoError(t, s.ResetAll(true))
	require.Equal(t, wire('r', 'R'), port.Written())
}

func TestResetAsync(t *testing.T) {
	s, port, _ := newTestSession()
	require.NoError(t, s.ResetCommands(false))
	require.Equal(t, TaskReset, s.Task())
	port.Feed('o')
	require.True(t, s.HasFinished())
	require.NoError(t, s.Err())

	port.Reply('e')
	require.Error(t, s.ResetMessages(true))
	require.Equal(t, wire('r', 'D', 'r', 'M'), port.Written())
}

func TestMessageStorage(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('o').Reply('e', argBytes(8, 1)...)
	require.NoError(t, s.CheckMessages())
	require.Equal(t, ErrCustomInvalid, s.CheckMessages())
	require.Equal(t, int(ErrCustomInvalid), s.ErrorCode())
	require.Equal(t, wire('v', argBytes(-1, 0)), port.Written()[:3])

	port.TakeWritten()
	port.Reply('o')
	require.NoError(t, s.FixMessages(true))
	require.Equal(t, wire('v', argBytes(-1, 1)), port.Written())
}

func TestMessageExchanges(t *testing.T) {
	s, port, _ := newTestSession()
	require.NoError(t, s.RecordMessageAsync(2, 8, 5))
	require.Equal(t, TaskRecordMessage, s.Task())
	require.NoError(t, s.PlayMessageAsync(2, SpeedFaster, Atten4dB5))
	require.Equal(t, TaskPlayMessage, s.Task())
	require.NoError(t, s.EraseMessageAsync(2))
	require.Equal(t, TaskEraseMessage, s.Task())
	require.Equal(t, wire(
		'r', argBytes(-1, 2, 8, 5),
		'p', argBytes(-1, 2, 6),
		'e', argBytes(-1, 2),
	), port.Written())
	require.Error(t, s.RecordMessageAsync(2, 4, 0))
}

func TestDumpMessage(t *testing.T) {
	s, port, _ := newTestSession()
	length := argBytes(5, 4, 3, 2, 1, 0, 0, 0, 0, 0, 0, 0)
	port.Reply('g', wire(argBytes(8), length)...)
	info, err := s.DumpMessage(1)
	require.NoError(t, err)
	require.Equal(t, &MessageInfo{Type: Message8Bit, Length: 0x012345}, info)

	port.Reply('g', argBytes(0)...)
	info, err = s.DumpMessage(2)
	require.NoError(t, err)
	require.Equal(t, &MessageInfo{Type: MessageEmpty}, info)

	port.Reply('e', argBytes(3, 8)...)
	_, err = s.DumpMessage(3)
	require.Equal(t, ErrRPNoMsg, err)

	port.Reply('g', argBytes(8, 1)...)
	_, err = s.DumpMessage(4)
	require.Equal(t, ErrBadReply, err)
	require.Equal(t, 0, s.ErrorCode())
}

func TestLipsync(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('l', 0x45, 0x50, 'o')
	require.NoError(t, s.RealtimeLipsync(LipsyncThresholdDef, 10*time.Second))
	require.Equal(t, wire('l', argBytes(-1, 8, 14, 0, 10)), port.Written())

	var positions []int
	for {
		pos, ok := s.FetchMouthPosition()
		if !ok {
			break
		}
		positions = append(positions, pos)
	}
	require.Equal(t, []int{4, 15}, positions)
	require.NoError(t, s.Err())

	port.Reply('v')
	require.Equal(t, ErrInvalid, s.RealtimeLipsync(LipsyncThresholdMax, time.Second))
	require.Error(t, s.RealtimeLipsync(LipsyncThresholdDef, 0))
}

func TestExportImportCommand(t *testing.T) {
	s, port, _ := newTestSession()
	data := make([]byte, RawCommandSize)
	args := []byte{byte(protocol.SvcDumpSD)}
	for i := range data {
		data[i] = byte(i * 7)
		hi, lo := protocol.Split4(data[i])
		args = append(args, argBytes(hi, lo)...)
	}
	port.Reply('~', args...)
	exported, err := s.ExportCommand(1, 2)
	require.NoError(t, err)
	require.Equal(t, data, exported)
	require.Equal(t, wire('~', 'X', argBytes(1, 2)), port.TakeWritten()[:4])

	port.Reply('o')
	require.NoError(t, s.ImportCommand(1, 2, exported))
	written := port.TakeWritten()
	require.Equal(t, wire('~', 'I', argBytes(1, 2)), written[:4])
	require.Equal(t, args[1:], written[4:])

	require.Error(t, s.ImportCommand(1, 2, data[:10]))

	require.NoError(t, s.VerifyCommand(1, 2))
	require.Equal(t, TaskVerifyCommand, s.Task())
	require.Equal(t, wire('~', 'V', argBytes(1, 2)), port.TakeWritten())

	port.Reply('~', 'X')
	_, err = s.ExportCommand(1, 2)
	require.Equal(t, ErrBadReply, err)
}
