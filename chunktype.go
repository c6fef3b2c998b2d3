//
// PNG chunk type codes
//
// PNG spec, 5.4 Chunk naming conventions
// https://www.w3.org/TR/2003/REC-PNG-20031110/#5Chunk-naming-conventions
//

package pngchunk

import "unicode/utf8"

// ChunkType is a 4-byte chunk type code. Each byte is an ASCII letter and the
// case of each letter carries one property bit. Only the Parse functions
// build a non-zero ChunkType.
type ChunkType struct {
	b [4]byte
}

// ParseChunkType validates b as a chunk type code.
func ParseChunkType(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isASCIILetter(c) {
			return ChunkType{}, &InvalidByteError{Byte: c}
		}
	}
	return ChunkType{b: b}, nil
}

// ParseChunkTypeString parses a 4-character chunk type name such as "IHDR".
func ParseChunkTypeString(s string) (ChunkType, error) {
	if n := utf8.RuneCountInString(s); n != 4 {
		return ChunkType{}, &InvalidLengthError{Length: n}
	}
	if len(s) != 4 {
		// four characters in more than four bytes: one of them is not ASCII
		for i := 0; i < len(s); i++ {
			if s[i] >= utf8.RuneSelf {
				return ChunkType{}, &InvalidByteError{Byte: s[i]}
			}
		}
	}
	var b [4]byte
	copy(b[:], s)
	return ParseChunkType(b)
}

// MustChunkType is like ParseChunkTypeString but panics on error.
func MustChunkType(s string) ChunkType {
	t, err := ParseChunkTypeString(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t ChunkType) Bytes() [4]byte { return t.b }

func (t ChunkType) String() string { return string(t.b[:]) }

// ancillary bit (bit 5 of the first byte): 0 (uppercase) = critical
func (t ChunkType) IsCritical() bool { return isUpper(t.b[0]) }

// private bit (bit 5 of the second byte): 0 (uppercase) = public
func (t ChunkType) IsPublic() bool { return isUpper(t.b[1]) }

// reserved bit (bit 5 of the third byte): must be 0 (uppercase)
func (t ChunkType) IsReservedBitValid() bool { return isUpper(t.b[2]) }

// safe-to-copy bit (bit 5 of the fourth byte): 1 (lowercase) = safe to copy
func (t ChunkType) IsSafeToCopy() bool { return !isUpper(t.b[3]) }

// IsValid reports whether t is a critical, private, safe-to-copy code with a
// valid reserved bit.
func (t ChunkType) IsValid() bool {
	return t.IsCritical() && !t.IsPublic() && t.IsReservedBitValid() && t.IsSafeToCopy()
}

// IsConformant reports whether t is acceptable to a PNG decoder: letters only
// (guaranteed by construction) with the reserved bit clear. The zero
// ChunkType is not conformant.
func (t ChunkType) IsConformant() bool { return t.IsReservedBitValid() }

// IsZero reports whether t is the zero ChunkType, which holds no type code.
func (t ChunkType) IsZero() bool { return t == ChunkType{} }

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

func isASCIILetter(c byte) bool { return isUpper(c) || ('a' <= c && c <= 'z') }
