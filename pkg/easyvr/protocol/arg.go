package protocol

// Argument bytes are in the range ArgMin (-1) to ArgMax (+31) inclusive.
const (
	ArgMin  = 0x40
	ArgMax  = 0x60
	ArgZero = 0x41
	ArgAck  = 0x20 // requests one more status argument
)

// Argument value range.
const (
	MinArg int8 = -1
	MaxArg int8 = 31
)

// EncodeArg maps v to its argument byte.
// No range check is done, values outside MinArg..MaxArg produce garbage.
func EncodeArg(v int8) byte {
	return byte(int(v) + ArgZero)
}

// DecodeArg maps an argument byte to its value.
// ok is false if b is outside ArgMin..ArgMax, the value is meaningless then.
func DecodeArg(b byte) (v int8, ok bool) {
	return int8(int(b) - ArgZero), b >= ArgMin && b <= ArgMax
}

// Split5 splits a 10-bit value into two 5-bit groups, high group first.
func Split5(v int) (hi, lo int8) {
	return int8((v >> 5) & 0x1F), int8(v & 0x1F)
}

// Join5 reassembles two 5-bit groups.
func Join5(hi, lo int8) int {
	return int(hi)<<5 | int(lo)
}

// Split4 splits a byte into nibbles, high nibble first.
func Split4(b byte) (hi, lo int8) {
	return int8((b >> 4) & 0x0F), int8(b & 0x0F)
}

// Join4 reassembles two nibbles into a byte.
func Join4(hi, lo int8) byte {
	return (byte(hi)<<4)&0xF0 | byte(lo)&0x0F
}

// PackNibbles packs arguments into bytes, two per byte, low nibble first.
// A trailing odd argument fills the low nibble of the last byte.
func PackNibbles(args []int8) []byte {
	b := make([]byte, (len(args)+1)/2)
	for i, arg := range args {
		if i&1 == 0 {
			b[i/2] |= byte(arg) & 0x0F
		} else {
			b[i/2] |= (byte(arg) << 4) & 0xF0
		}
	}
	return b
}

// UnpackNibbles splits bytes into arguments, low nibble first.
func UnpackNibbles(b []byte) []int8 {
	args := make([]int8, len(b)*2)
	for i, v := range b {
		args[i*2], args[i*2+1] = int8(v&0x0F), int8(v>>4)
	}
	return args
}

// MaskArgs is the number of arguments carrying a group mask.
const MaskArgs = 8

// PackMask encodes a 32-bit mask as arguments, least significant byte first,
// low nibble first.
func PackMask(mask uint32) []int8 {
	return UnpackNibbles([]byte{byte(mask), byte(mask >> 8), byte(mask >> 16), byte(mask >> 24)})
}

// UnpackMask decodes arguments produced by PackMask.
func UnpackMask(args []int8) uint32 {
	var mask uint32
	for i, b := range PackNibbles(args) {
		if i >= 4 {
			break
		}
		mask |= uint32(b) << (8 * uint(i))
	}
	return mask
}

// MillisToUnits converts a timeout in milliseconds into module time units.
func MillisToUnits(ms int) int {
	return (ms*2 + 53) / 55
}

// MillisToDelayUnits converts a delay in milliseconds into the nearest
// module time unit.
func MillisToDelayUnits(ms int) int {
	return (ms*2 + 27) / 55
}
