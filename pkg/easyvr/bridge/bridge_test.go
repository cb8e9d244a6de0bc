package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/easyvr.go/pkg/easyvr/fake"
)

func TestRequested(t *testing.T) {
	testCases := []struct {
		name    string
		input   []byte
		mode    Mode
		written []byte
	}{
		{"normal", []byte{0xBB, 0xDD}, Normal, []byte{0x99, 0xCC, 0xEE}},
		{"boot", []byte{0xBB, 0xAA}, Boot, []byte{0x99, 0xCC, 0xFF}},
		{"garbage first", []byte{0x01, 0x02, 0xBB, 0xDD}, Normal, []byte{0x99, 0xCC, 0xEE}},
		{"unrelated", []byte{0x01, 0xDD, 0xAA, 0xCC}, None, []byte{0x99}},
		{"reset partial match", []byte{0xBB, 0x01, 0xDD}, None, []byte{0x99, 0xCC}},
		{"nothing", nil, None, []byte{0x99}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock := fake.NewClock()
			companion := fake.NewPort(clock)
			for i, b := range tc.input {
				companion.FeedAfter(time.Duration(i+1)*20*time.Millisecond, b)
			}
			mode, err := Requested(companion, clock)
			require.NoError(t, err)
			require.Equal(t, tc.mode, mode)
			require.Equal(t, tc.written, companion.Written())
			if mode == None {
				require.True(t, clock.Slept() >= 1500*time.Millisecond)
			}
		})
	}
}

func TestRequestedWindow(t *testing.T) {
	clock := fake.NewClock()
	companion := fake.NewPort(clock)
	companion.FeedAfter(2*time.Second, 0xBB, 0xDD)
	mode, err := Requested(companion, clock)
	require.NoError(t, err)
	require.Equal(t, None, mode)
}

func relayPorts() (*fake.Clock, *fake.Port, *fake.Port) {
	clock := fake.NewClock()
	return clock, fake.NewPort(clock), fake.NewPort(clock)
}

func TestRelayForwards(t *testing.T) {
	clock, module, companion := relayPorts()
	companion.Feed('a', 'b').FeedAfter(200*time.Millisecond, '?')
	module.Feed('x').FeedAfter(150*time.Millisecond, 'y')
	require.NoError(t, Relay(context.Background(), module, companion, clock))
	require.Equal(t, []byte("ab"), module.Written())
	require.Equal(t, []byte("xy"), companion.Written())
	require.True(t, clock.Slept() >= 300*time.Millisecond)
}

func TestRelayEscapeFollowedByTraffic(t *testing.T) {
	clock, module, companion := relayPorts()
	companion.FeedAfter(200*time.Millisecond, '?').
		FeedAfter(250*time.Millisecond, 'c').
		FeedAfter(500*time.Millisecond, '?')
	require.NoError(t, Relay(context.Background(), module, companion, clock))
	require.Equal(t, []byte("?c"), module.Written())
	require.True(t, clock.Slept() >= 600*time.Millisecond)
}

func TestRelayEscapeWithinGuardTime(t *testing.T) {
	clock, module, companion := relayPorts()
	companion.Feed('a').
		FeedAfter(50*time.Millisecond, '?').
		FeedAfter(300*time.Millisecond, '?')
	require.NoError(t, Relay(context.Background(), module, companion, clock))
	require.Equal(t, []byte("a?"), module.Written())
}

func TestRelayCancel(t *testing.T) {
	clock, module, companion := relayPorts()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, Relay(ctx, module, companion, clock))
}

func TestRelayWriteError(t *testing.T) {
	clock, module, companion := relayPorts()
	module.Close()
	companion.Feed('a')
	require.Error(t, Relay(context.Background(), module, companion, clock))
}
