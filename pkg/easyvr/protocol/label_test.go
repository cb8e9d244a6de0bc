package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeLabelBytes(t *testing.T, b []byte) string {
	buf := ArgBuffer(b)
	name, ok := DecodeLabel(&buf)
	require.True(t, ok)
	require.Empty(t, buf, "units left over")
	return name
}

func TestEncodeLabel(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []byte
	}{
		{"empty", "", []byte{0x41}},
		{"letters", "AB", []byte{0x43, 'A', 'B'}},
		{"lowercase", "ab", []byte{0x43, 'A', 'B'}},
		{"digits", "AB12", []byte{0x47, 'A', 'B', '^', 0x42, '^', 0x43}},
		{"others", "a-b c", []byte{0x46, 'A', '_', 'B', '_', 'C'}},
		{"zero", "0", []byte{0x43, '^', 0x41}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, EncodeLabel(tc.input))
		})
	}
}

func TestLabelRoundTrip(t *testing.T) {
	labels := []string{
		"",
		"AB12",
		"HELLO_WORLD",
		"0123456789",
		"LIGHTS_ON_1",
		strings.Repeat("X", 31),
		strings.Repeat("7", 15) + "Z",
		"A" + strings.Repeat("9", 15),
	}
	for _, label := range labels {
		b := EncodeLabel(label)
		count, ok := DecodeArg(b[0])
		require.True(t, ok)
		require.Equal(t, len(b)-1, int(count))
		require.Equal(t, label, decodeLabelBytes(t, b))
	}
}

func TestLabelUnits(t *testing.T) {
	n, units := LabelLen("AB12")
	require.Equal(t, 4, n)
	require.Equal(t, 6, units)
}

func TestLabelTruncation(t *testing.T) {
	// 40 letters: only 31 fit
	long := strings.Repeat("Q", 40)
	require.Equal(t, long[:31], decodeLabelBytes(t, EncodeLabel(long)))

	// 30 letters then a digit: the digit would need units 31 and 32
	label := strings.Repeat("A", 30) + "5B"
	n, units := LabelLen(label)
	require.Equal(t, 30, n)
	require.Equal(t, 30, units)
	require.Equal(t, strings.Repeat("A", 30), decodeLabelBytes(t, EncodeLabel(label)))

	// 16 digits: 15 fit in 30 units
	digits := strings.Repeat("1", 16)
	require.Equal(t, digits[:15], decodeLabelBytes(t, EncodeLabel(digits)))
}

func TestDecodeLabel(t *testing.T) {
	// count -1 means 32 units
	b := append([]byte{0x40}, []byte(strings.Repeat("K", 32))...)
	require.Equal(t, strings.Repeat("K", 32), decodeLabelBytes(t, b))

	// truncated stream
	buf := ArgBuffer([]byte{0x44, 'A', '^'})
	_, ok := DecodeLabel(&buf)
	require.False(t, ok)

	// out of range unit
	buf = ArgBuffer([]byte{0x43, 'A', 0x7a})
	_, ok = DecodeLabel(&buf)
	require.False(t, ok)
}
