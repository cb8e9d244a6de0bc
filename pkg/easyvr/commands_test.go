package easyvr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

func TestAddCommandMemoryFull(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('m')
	require.Equal(t, ErrMemoryFull, s.AddCommand(3, 4))
	require.True(t, s.IsMemoryFull())
	require.Equal(t, wire('g', argBytes(3, 4)), port.Written())

	port.Reply('o')
	require.NoError(t, s.AddCommand(3, 5))
	require.True(t, s.IsMemoryFull(), "result record only changes on failures")

	port.Reply('v')
	require.Error(t, s.AddCommand(3, 6))
	require.False(t, s.IsMemoryFull())
}

func TestAddCommandNoReplyClearsResult(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('m').NoReply()
	require.Equal(t, ErrMemoryFull, s.AddCommand(1, 0))
	require.True(t, s.IsMemoryFull())
	require.Equal(t, ErrNoReply, s.AddCommand(1, 1))
	require.False(t, s.IsMemoryFull())
	require.Equal(t, Result{}, s.Result())
}

func TestCommandTableExchanges(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('o').Reply('o')
	require.NoError(t, s.RemoveCommand(1, 2))
	require.NoError(t, s.EraseCommand(1, 7))
	require.Equal(t, wire('u', argBytes(1, 2), 'e', argBytes(1, 7)), port.Written())
}

func TestSetCommandLabel(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('o')
	require.NoError(t, s.SetCommandLabel(1, 0, "ab12"))
	require.Equal(t, wire('n', argBytes(1, 0), argBytes(6), "AB^", argBytes(1), '^', argBytes(2)), port.Written())
}

func TestGroupMask(t *testing.T) {
	s, port, _ := newTestSession()
	mask := uint32(0x00010003)
	port.Reply('k', argBytes(protocol.PackMask(mask)...)...)
	m, err := s.GroupMask()
	require.NoError(t, err)
	require.Equal(t, mask, m)

	port.Reply('k', argBytes(1, 2, 3)...)
	_, err = s.GroupMask()
	require.Equal(t, ErrBadReply, err)
}

func TestCommandCount(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('c', argBytes(5)...).Reply('c', argBytes(-1)...).Reply('o')
	n, err := s.CommandCount(2)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	n, err = s.CommandCount(2)
	require.NoError(t, err)
	require.Equal(t, 32, n)
	_, err = s.CommandCount(2)
	require.Error(t, err)
}

func TestDumpCommand(t *testing.T) {
	s, port, _ := newTestSession()
	label := protocol.EncodeLabel("AB1")
	port.Reply('d', wire(argBytes(0x0A, 5), label)...)
	info, err := s.DumpCommand(1, 2)
	require.NoError(t, err)
	require.Equal(t, &CommandInfo{
		Label:           "AB1",
		Training:        2,
		Conflict:        true,
		ConflictCommand: 5,
		ConflictWord:    -1,
	}, info)
	require.True(t, s.IsConflict())
	require.Equal(t, 5, s.Command())

	// untrained command without conflicts
	port.Reply('d', wire(argBytes(-1, 0), protocol.EncodeLabel(""))...)
	info, err = s.DumpCommand(1, 3)
	require.NoError(t, err)
	require.Equal(t, 0, info.Training)
	require.False(t, info.Conflict)
	require.Equal(t, Result{}, s.Result())

	port.Reply('d', argBytes(1)...)
	_, err = s.DumpCommand(1, 4)
	require.Equal(t, ErrBadReply, err)
	require.Equal(t, 0, s.ErrorCode())
}

func TestCommandLabels(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('c', argBytes(2)...).
		Reply('d', wire(argBytes(1, 0), protocol.EncodeLabel("ON"))...).
		Reply('d', wire(argBytes(1, 0), protocol.EncodeLabel("OFF"))...)
	labels, err := s.CommandLabels(1)
	require.NoError(t, err)
	require.Equal(t, []string{"ON", "OFF"}, labels)

	port.Reply('c', argBytes(2)...).
		Reply('d', wire(argBytes(1, 0), protocol.EncodeLabel("ON"))...).
		NoReply()
	labels, err = s.CommandLabels(1)
	require.True(t, errors.Is(err, ErrNoReply))
	require.Equal(t, []string{"ON"}, labels)
}

func TestWordLabels(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('z', wire(argBytes(GrammarFlagTrigger, 2), protocol.EncodeLabel("HI"), protocol.EncodeLabel("GO9"))...)
	info, labels, err := s.WordLabels(3)
	require.NoError(t, err)
	require.True(t, info.IsTrigger())
	require.Equal(t, 2, info.Count)
	require.Equal(t, []string{"HI", "GO9"}, labels)
	require.Equal(t, wire('z', argBytes(3)), port.Written()[:2])

	port.Reply('c', argBytes(-1)...)
	n, err := s.GrammarsCount()
	require.NoError(t, err)
	require.Equal(t, 32, n)
}

func TestTrainAndRecognize(t *testing.T) {
	s, port, _ := newTestSession()
	require.NoError(t, s.TrainCommand(2, 1))
	require.Equal(t, TaskTrain, s.Task())
	port.Feed('o')
	require.True(t, s.HasFinished())
	require.NoError(t, s.Err())

	require.NoError(t, s.RecognizeWord(WordsetNumber))
	require.NoError(t, s.RecognizeCommand(GroupPassword))
	require.Equal(t, wire('t', argBytes(2, 1), 'i', argBytes(3), 'd', argBytes(16)), port.Written())
}
