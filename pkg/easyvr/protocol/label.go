package protocol

// MaxLabelUnits is the maximum number of units in a counted string.
const MaxLabelUnits = 31

// LabelEscape precedes a digit in a counted string.
const LabelEscape byte = '^'

var escapeArg = int8(int(LabelEscape) - ArgZero)

// ArgReader provides status arguments one at a time.
type ArgReader interface {
	ReadArg() (int8, bool)
}

// ReadArgFunc is func type of ArgReader.
type ReadArgFunc func() (int8, bool)

// ReadArg implements ArgReader.
func (f ReadArgFunc) ReadArg() (int8, bool) {
	return f()
}

// ArgBuffer reads arguments from received bytes.
type ArgBuffer []byte

// ReadArg implements ArgReader.
func (b *ArgBuffer) ReadArg() (int8, bool) {
	if len(*b) == 0 {
		return 0, false
	}
	v, ok := DecodeArg((*b)[0])
	*b = (*b)[1:]
	return v, ok
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// LabelLen returns how many bytes of name fit in a counted string and the
// number of units they take. Digits take two units, anything else one.
// Characters that don't fit are silently dropped.
func LabelLen(name string) (n, units int) {
	for ; n < len(name); n++ {
		cost := 1
		if isDigit(name[n]) {
			cost = 2
		}
		if units+cost > MaxLabelUnits {
			break
		}
		units += cost
	}
	return
}

// EncodeLabel encodes name as a counted string: the unit count as argument
// followed by the units. Letters are uppercased, digits escaped and any other
// character replaced by '_'.
func EncodeLabel(name string) []byte {
	n, units := LabelLen(name)
	b := make([]byte, 0, units+1)
	b = append(b, EncodeArg(int8(units)))
	for i := 0; i < n; i++ {
		switch c := name[i]; {
		case isDigit(c):
			b = append(b, LabelEscape, EncodeArg(int8(c-'0')))
		case isAlpha(c):
			b = append(b, c&^0x20)
		default:
			b = append(b, '_')
		}
	}
	return b
}

// DecodeLabel reads a counted string. A count of -1 stands for 32 units.
func DecodeLabel(r ArgReader) (string, bool) {
	count, ok := r.ReadArg()
	if !ok {
		return "", false
	}
	n := int(count)
	if count == -1 {
		n = 32
	}
	name := make([]byte, 0, n)
	for ; n > 0; n-- {
		rx, ok := r.ReadArg()
		if !ok {
			return "", false
		}
		if rx != escapeArg {
			name = append(name, byte(int(rx)+ArgZero))
			continue
		}
		if rx, ok = r.ReadArg(); !ok {
			return "", false
		}
		name = append(name, byte('0'+int(rx)))
		n--
	}
	return string(name), true
}
