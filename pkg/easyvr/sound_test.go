package easyvr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

func TestPlayPhoneTone(t *testing.T) {
	testCases := []struct {
		name     string
		tone     int
		duration int
		wait     time.Duration
	}{
		{"dtmf", 5, 10, 400 * time.Millisecond},
		{"dial", ToneDial, 2, 2 * time.Second},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, port, clock := newTestSession()
			port.NoReply()
			require.Equal(t, ErrNoReply, s.PlayPhoneTone(tc.tone, tc.duration))
			require.Equal(t, wire('w', argBytes(-1, int8(tc.tone), int8(tc.duration-1))), port.Written())
			require.Equal(t, 4*time.Millisecond+tc.wait+s.Timeouts.Reply, clock.Slept())
		})
	}
}

func TestPlaySound(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('o')
	require.NoError(t, s.PlaySound(100, VolumeFull))
	require.Equal(t, wire('w', argBytes(3, 4, 15)), port.TakeWritten())

	require.NoError(t, s.PlaySoundAsync(SoundBeep, VolumeHalf))
	require.Equal(t, TaskPlaySound, s.Task())
	require.Equal(t, wire('w', argBytes(0, 0, 7)), port.TakeWritten())
}

func TestTokens(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('o')
	require.NoError(t, s.SendToken(8, 0x55))
	require.Equal(t, wire('j', argBytes(8, 2, 21, 0, 0)), port.TakeWritten())

	require.NoError(t, s.DetectToken(4, RejectionAvg, time.Second))
	require.Equal(t, wire('f', argBytes(4, 1, 1, 5)), port.TakeWritten())
	port.Feed('f').FeedArgs(argBytes(0, 9)...)
	require.True(t, s.HasFinished())
	require.Equal(t, 9, s.Token())

	port.Reply('o')
	require.NoError(t, s.EmbedToken(4, 3, 0))
	require.Equal(t, wire('j', argBytes(4, 0, 3, 0, 1)), port.TakeWritten())

	port.Reply('o')
	require.NoError(t, s.EmbedToken(4, 3, 28090*time.Millisecond))
	hi, lo := protocol.Split5(1021)
	require.Equal(t, wire('j', argBytes(4, 0, 3, hi, lo)), port.TakeWritten())
}

func TestDumpSoundTable(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('h', wire(argBytes(1, 2), protocol.EncodeLabel("SND2"))...)
	table, err := s.DumpSoundTable()
	require.NoError(t, err)
	require.Equal(t, &SoundTable{Label: "SND2", Count: 34}, table)
}

func TestPins(t *testing.T) {
	s, port, _ := newTestSession()
	port.Reply('o').Reply('p', argBytes(1)...)
	require.NoError(t, s.SetPinOutput(IO2, OutputHigh))
	v, err := s.PinInput(IO1, InputStrong)
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, wire('q', argBytes(2, 1), 'q', argBytes(1, 3), byte(protocol.ArgAck)), port.Written())
	require.Error(t, s.SetPinOutput(IO1, InputHiZ))
	require.Error(t, s.SetPinOutput(7, OutputLow))
}
