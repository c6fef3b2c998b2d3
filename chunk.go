//
// PNG chunk layout
//
// PNG spec, 5.3 Chunk layout
// https://www.w3.org/TR/2003/REC-PNG-20031110/#5Chunk-layout
//

package pngchunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	bst "github.com/mixcode/binarystruct"
	"golang.org/x/text/encoding/unicode"
)

const (
	chunkHeaderSize  = 8 // length + type
	chunkTrailerSize = 4 // CRC32
	chunkFrameSize   = chunkHeaderSize + chunkTrailerSize
)

// the leading part of a chunk. {DataLen, Type}, big-endian
type chunkHeader struct {
	DataLen uint32 `binary:"uint32"`
	Type    string `binary:"[4]byte"`
}

// Chunk is a PNG chunk: {Length, Type, [DATA], CRC32}.
// The CRC covers the type and the data, never the length.
type Chunk struct {
	typ  ChunkType
	data []byte
	crc  uint32
}

// NewChunk builds a chunk of type t holding a copy of data.
// t must come from ParseChunkType, ParseChunkTypeString or MustChunkType.
func NewChunk(t ChunkType, data []byte) Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return Chunk{typ: t, data: d, crc: chunkCRC(t, d)}
}

// ParseChunk decodes exactly one serialized chunk.
// The CRC is verified before the length field.
func ParseChunk(b []byte) (c Chunk, err error) {
	if len(b) < chunkFrameSize {
		err = ErrTruncated
		return
	}

	var h chunkHeader
	if _, err = bst.Unmarshal(b[:chunkHeaderSize], bst.BigEndian, &h); err != nil {
		return
	}
	var declaredCRC uint32
	if _, err = bst.Unmarshal(b[len(b)-chunkTrailerSize:], bst.BigEndian, &declaredCRC); err != nil {
		return
	}

	var tb [4]byte
	copy(tb[:], h.Type)
	t, err := ParseChunkType(tb)
	if err != nil {
		return
	}

	parsed := NewChunk(t, b[chunkHeaderSize:len(b)-chunkTrailerSize])
	if parsed.crc != declaredCRC {
		err = &CRCMismatchError{Declared: declaredCRC, Computed: parsed.crc}
		return
	}
	if parsed.Length() != h.DataLen {
		err = &LengthMismatchError{Declared: h.DataLen, Actual: parsed.Length()}
		return
	}
	return parsed, nil
}

// Length is the number of data bytes.
func (c Chunk) Length() uint32 { return uint32(len(c.data)) }

// Type is the chunk type code.
func (c Chunk) Type() ChunkType { return c.typ }

// CRC is the CRC-32 of the type and data.
func (c Chunk) CRC() uint32 { return c.crc }

// Data returns a copy of the chunk data.
func (c Chunk) Data() []byte {
	d := make([]byte, len(c.data))
	copy(d, c.data)
	return d
}

// DataAsText renders the data as UTF-8. Invalid bytes become U+FFFD.
func (c Chunk) DataAsText() string {
	s, err := unicode.UTF8.NewDecoder().Bytes(c.data)
	if err != nil {
		// the decoder replaces ill-formed input, so this is not reached in practice
		return string(c.data)
	}
	return string(s)
}

// Bytes serializes the chunk. ParseChunk(c.Bytes()) reproduces c.
func (c Chunk) Bytes() []byte {
	return c.appendTo(make([]byte, 0, c.size()))
}

func (c Chunk) String() string {
	return fmt.Sprintf("%s len=%d crc=%08x", c.typ, len(c.data), c.crc)
}

// serialized size of the chunk
func (c Chunk) size() int { return chunkFrameSize + len(c.data) }

func (c Chunk) appendTo(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, c.Length())
	b = append(b, c.typ.b[:]...)
	b = append(b, c.data...)
	return binary.BigEndian.AppendUint32(b, c.crc)
}

// CRC-32/ISO-HDLC over type || data
func chunkCRC(t ChunkType, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(t.b[:])
	crc.Write(data)
	return crc.Sum32()
}
