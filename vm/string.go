package vm

import (
	"strings"
	"unsafe"
)

// ObjString is an immutable byte sequence with a pre-computed hash.
//
// The bytes are interpreted as UTF-8 for code-point operations but indexed
// by byte for byte operations. No normalization is performed.
type ObjString struct {
	Obj
	hash  uint32
	Value string
}

// NewString creates a string object for the given bytes.
//
// Strings created before the String class exists get a nil class pointer;
// the bootstrap repairs these in a single final pass.
func (vm *VM) NewString(s string) *ObjString {
	str := &ObjString{hash: hashString(s), Value: s}
	vm.appendObj(&str.Obj, ObjTypeString, vm.StringClass,
		uint64(unsafe.Sizeof(*str))+uint64(len(s)))
	return str
}

// StringVal creates a string object and returns it as a Value.
func (vm *VM) StringVal(s string) Value {
	return ObjVal(&vm.NewString(s).Obj)
}

// Hash returns the string's pre-computed FNV-1a hash.
func (s *ObjString) Hash() uint32 {
	return s.hash
}

// hashString computes the 32-bit FNV-1a hash of a byte sequence.
func hashString(s string) uint32 {
	hash := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= 16777619
	}
	return hash
}

// ---------------------------------------------------------------------------
// UTF-8 helpers
//
// Hand-rolled instead of unicode/utf8 because the semantics differ from
// Go's: a continuation byte decodes to -1, and an invalid lead byte is
// surfaced as its raw byte value rather than U+FFFD.
// ---------------------------------------------------------------------------

// utf8EncodedLength returns the number of bytes needed to UTF-8 encode cp.
func utf8EncodedLength(cp int) int {
	switch {
	case cp < 0x80:
		return 1
	case cp < 0x800:
		return 2
	case cp < 0x10000:
		return 3
	default:
		return 4
	}
}

// utf8Encode appends the UTF-8 encoding of cp to buf.
func utf8Encode(buf []byte, cp int) []byte {
	switch {
	case cp < 0x80:
		return append(buf, byte(cp))
	case cp < 0x800:
		return append(buf,
			byte(0xc0|(cp>>6)),
			byte(0x80|(cp&0x3f)))
	case cp < 0x10000:
		return append(buf,
			byte(0xe0|(cp>>12)),
			byte(0x80|((cp>>6)&0x3f)),
			byte(0x80|(cp&0x3f)))
	default:
		return append(buf,
			byte(0xf0|(cp>>18)),
			byte(0x80|((cp>>12)&0x3f)),
			byte(0x80|((cp>>6)&0x3f)),
			byte(0x80|(cp&0x3f)))
	}
}

// utf8Decode decodes the code point starting at byte index i of s.
// Returns the code point and its byte length. A continuation byte yields
// (-1, 0); an invalid or truncated sequence yields the raw byte and length 1.
func utf8Decode(s string, i int) (int, int) {
	b := s[i]
	if b <= 0x7f {
		return int(b), 1
	}
	if b&0xc0 == 0x80 {
		// Landed in the middle of a character.
		return -1, 0
	}

	var cp, length int
	switch {
	case b&0xe0 == 0xc0:
		cp = int(b & 0x1f)
		length = 2
	case b&0xf0 == 0xe0:
		cp = int(b & 0x0f)
		length = 3
	case b&0xf8 == 0xf0:
		cp = int(b & 0x07)
		length = 4
	default:
		// Not a valid UTF-8 lead byte; surface the raw byte.
		return int(b), 1
	}

	if i+length > len(s) {
		return int(b), 1
	}
	for j := 1; j < length; j++ {
		c := s[i+j]
		if c&0xc0 != 0x80 {
			return int(b), 1
		}
		cp = (cp << 6) | int(c&0x3f)
	}
	return cp, length
}

// stringCodePointAt returns a new string containing the code point that
// starts at byte index i. If the byte at i does not start a valid code
// point, the single raw byte is returned.
func (vm *VM) stringCodePointAt(s string, i int) Value {
	cp, length := utf8Decode(s, i)
	if cp == -1 || length <= 1 {
		return vm.StringVal(s[i : i+1])
	}
	return vm.StringVal(s[i : i+length])
}

// stringFromCodePoint creates a one-character string for a code point.
func (vm *VM) stringFromCodePoint(cp int) Value {
	buf := make([]byte, 0, utf8EncodedLength(cp))
	buf = utf8Encode(buf, cp)
	return vm.StringVal(string(buf))
}

// stringFromRange creates a new string from the code points of s selected
// by a computed byte range: count byte indices starting at start, stepping
// by step. An index that lands in a continuation byte selects nothing.
func (vm *VM) stringFromRange(s string, start, count, step int) Value {
	var buf []byte
	for i := 0; i < count; i++ {
		index := start + i*step
		cp, length := utf8Decode(s, index)
		if cp == -1 {
			continue
		}
		buf = append(buf, s[index:index+length]...)
	}
	return vm.StringVal(string(buf))
}

// stringFind returns the byte index of the first occurrence of needle in s
// at or after byte index start, or -1 if absent.
func stringFind(s, needle string, start int) int {
	if start > len(s) {
		return -1
	}
	idx := strings.Index(s[start:], needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// numCodePoints counts the code points of s: every byte that is not a
// UTF-8 continuation byte starts one.
func numCodePoints(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i]&0xc0 != 0x80 {
			count++
		}
	}
	return count
}
