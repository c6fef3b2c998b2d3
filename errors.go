package pngchunk

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSignature is returned when the input does not start with the PNG signature.
	ErrBadSignature = errors.New("pngchunk: invalid PNG signature")

	// ErrTruncated is returned when a chunk needs more bytes than the input holds.
	ErrTruncated = errors.New("pngchunk: truncated chunk")

	// ErrChunkNotFound matches every *NotFoundError.
	ErrChunkNotFound = errors.New("pngchunk: chunk not found")

	// ErrNotTextual is returned by DecodeText for chunks other than tEXt and zTXt.
	ErrNotTextual = errors.New("pngchunk: not a textual chunk")

	// ErrMalformedText is returned for a textual chunk that cannot be decoded or built.
	ErrMalformedText = errors.New("pngchunk: malformed textual chunk")
)

// InvalidByteError reports a chunk type byte outside A-Z and a-z.
type InvalidByteError struct {
	Byte byte
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("pngchunk: invalid chunk type byte 0x%02x", e.Byte)
}

// InvalidLengthError reports a chunk type string that is not 4 characters long.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("pngchunk: invalid chunk type length %d", e.Length)
}

// CRCMismatchError reports a chunk whose trailing CRC disagrees with its content.
type CRCMismatchError struct {
	Declared uint32
	Computed uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("pngchunk: crc mismatch: declared %08x, computed %08x", e.Declared, e.Computed)
}

// LengthMismatchError reports a chunk whose length field disagrees with its data size.
type LengthMismatchError struct {
	Declared uint32
	Actual   uint32
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("pngchunk: length mismatch: declared %d, actual %d", e.Declared, e.Actual)
}

// ChunkError locates a chunk failure inside a PNG datastream.
type ChunkError struct {
	Index  int   // position of the chunk in the sequence
	Offset int64 // byte offset of the chunk's length field
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("pngchunk: chunk %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup of a chunk type that is absent.
type NotFoundError struct {
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pngchunk: chunk %q not found", e.Type)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrChunkNotFound }

// CompressionMethodError reports a compressed text chunk using an unknown method.
type CompressionMethodError struct {
	Method byte
}

func (e *CompressionMethodError) Error() string {
	return fmt.Sprintf("pngchunk: unknown compression method: %d", e.Method)
}
