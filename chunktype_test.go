package pngchunk

import (
	"errors"
	"testing"
)

func TestParseChunkTypeFromBytes(t *testing.T) {
	expected := [4]byte{82, 117, 83, 116}
	ct, err := ParseChunkType([4]byte{82, 117, 83, 116})
	if err != nil {
		t.Fatal(err)
	}
	if ct.Bytes() != expected {
		t.Fatalf("bytes mismatch: got %v want %v", ct.Bytes(), expected)
	}
}

func TestParseChunkTypeFromString(t *testing.T) {
	expected, err := ParseChunkType([4]byte{82, 117, 83, 116})
	if err != nil {
		t.Fatal(err)
	}
	ct, err := ParseChunkTypeString("RuSt")
	if err != nil {
		t.Fatal(err)
	}
	if ct != expected {
		t.Fatalf("got %v want %v", ct, expected)
	}
}

func TestChunkTypeFlags(t *testing.T) {
	tests := []struct {
		name string
		fn   func(ChunkType) bool
		tag  string
		want bool
	}{
		{"critical", ChunkType.IsCritical, "RuSt", true},
		{"critical", ChunkType.IsCritical, "ruSt", false},
		{"public", ChunkType.IsPublic, "RUSt", true},
		{"public", ChunkType.IsPublic, "RuSt", false},
		{"reserved", ChunkType.IsReservedBitValid, "RuSt", true},
		{"reserved", ChunkType.IsReservedBitValid, "Rust", false},
		{"safe-to-copy", ChunkType.IsSafeToCopy, "RuSt", true},
		{"safe-to-copy", ChunkType.IsSafeToCopy, "RuST", false},
		{"valid", ChunkType.IsValid, "RuSt", true},
		{"valid", ChunkType.IsValid, "Rust", false},
		{"valid", ChunkType.IsValid, "IHDR", false},
		{"conformant", ChunkType.IsConformant, "IHDR", true},
		{"conformant", ChunkType.IsConformant, "tEXt", true},
		{"conformant", ChunkType.IsConformant, "ruSt", true},
		{"conformant", ChunkType.IsConformant, "Rust", false},
	}
	for _, tc := range tests {
		got := tc.fn(MustChunkType(tc.tag))
		if got != tc.want {
			t.Fatalf("%s(%s): got %v want %v", tc.name, tc.tag, got, tc.want)
		}
	}
}

func TestZeroChunkTypeIsNotConformant(t *testing.T) {
	var ct ChunkType
	if ct.IsConformant() {
		t.Fatalf("zero chunk type must not be conformant")
	}
}

func TestChunkTypeStringRoundTrip(t *testing.T) {
	for _, tag := range []string{"RuSt", "IHDR", "IEND", "tEXt", "zTXt", "abcd", "ZZZZ"} {
		ct, err := ParseChunkTypeString(tag)
		if err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
		if ct.String() != tag {
			t.Fatalf("round trip: got %q want %q", ct.String(), tag)
		}
	}
}

func TestParseChunkTypeInvalidByte(t *testing.T) {
	for _, bad := range []byte{0x00, '1', ' ', '@', '[', '`', '{', 0x7f, 0x80, 0xff} {
		_, err := ParseChunkType([4]byte{'R', 'u', bad, 't'})
		var ibe *InvalidByteError
		if !errors.As(err, &ibe) {
			t.Fatalf("byte 0x%02x: expected InvalidByteError, got %v", bad, err)
		}
		if ibe.Byte != bad {
			t.Fatalf("byte 0x%02x: error reports 0x%02x", bad, ibe.Byte)
		}
	}

	_, err := ParseChunkTypeString("Ru1t")
	var ibe *InvalidByteError
	if !errors.As(err, &ibe) || ibe.Byte != '1' {
		t.Fatalf("expected InvalidByteError for '1', got %v", err)
	}
}

func TestParseChunkTypeStringLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"abcde", 5},
		{"ééééé", 5},
	}
	for _, tc := range tests {
		_, err := ParseChunkTypeString(tc.in)
		var ile *InvalidLengthError
		if !errors.As(err, &ile) {
			t.Fatalf("%q: expected InvalidLengthError, got %v", tc.in, err)
		}
		if ile.Length != tc.want {
			t.Fatalf("%q: length %d want %d", tc.in, ile.Length, tc.want)
		}
	}
}

func TestParseChunkTypeStringNonASCII(t *testing.T) {
	// four characters, five bytes
	_, err := ParseChunkTypeString("RuSé")
	var ibe *InvalidByteError
	if !errors.As(err, &ibe) {
		t.Fatalf("expected InvalidByteError, got %v", err)
	}
	if ibe.Byte != 0xc3 {
		t.Fatalf("unexpected byte 0x%02x", ibe.Byte)
	}
}

func TestMustChunkTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustChunkType("Ru1t")
}

func TestZeroChunkType(t *testing.T) {
	var ct ChunkType
	if !ct.IsZero() {
		t.Fatalf("zero chunk type must report IsZero")
	}
	if MustChunkType("RuSt").IsZero() {
		t.Fatalf("parsed chunk type reported as zero")
	}
}
