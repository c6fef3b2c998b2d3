//
// PNG datastream as an ordered list of chunks
//
// PNG spec
// https://www.w3.org/TR/2003/REC-PNG-20031110/
//

package pngchunk

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Signature is the 8-byte PNG file header.
var Signature = [8]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// PNG image is a list of chunks.
// Chunk order is kept as read; no PNG ordering rule (IHDR first, IEND last)
// is enforced.
type PNG struct {
	chunks []Chunk
}

// New returns a PNG holding the given chunks in order.
// Zero Chunk values are skipped, as in AppendChunk.
func New(chunks ...Chunk) *PNG {
	p := &PNG{chunks: make([]Chunk, 0, len(chunks))}
	for _, c := range chunks {
		p.AppendChunk(c)
	}
	return p
}

// Parse decodes a complete PNG datastream. On error no PNG is returned.
func Parse(b []byte) (*PNG, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrBadSignature
	}

	p := &PNG{chunks: make([]Chunk, 0)}
	offset := len(Signature)
	for offset < len(b) {
		fail := func(err error) (*PNG, error) {
			return nil, &ChunkError{Index: len(p.chunks), Offset: int64(offset), Err: err}
		}

		rest := b[offset:]
		if len(rest) < chunkFrameSize {
			return fail(ErrTruncated)
		}
		// each chunk is self-describing: 12 bytes of framing plus its data
		size := uint64(binary.BigEndian.Uint32(rest[:4])) + chunkFrameSize
		if uint64(len(rest)) < size {
			return fail(ErrTruncated)
		}

		c, err := ParseChunk(rest[:size])
		if err != nil {
			return fail(err)
		}
		p.chunks = append(p.chunks, c)
		offset += int(size)
	}
	return p, nil
}

// Bytes serializes the signature followed by every chunk in order.
func (p *PNG) Bytes() []byte {
	n := len(Signature)
	for _, c := range p.chunks {
		n += c.size()
	}
	b := make([]byte, 0, n)
	b = append(b, Signature[:]...)
	for _, c := range p.chunks {
		b = c.appendTo(b)
	}
	return b
}

// WriteTo writes the serialized PNG to w.
func (p *PNG) WriteTo(w io.Writer) (n int64, err error) {
	sz, err := w.Write(Signature[:])
	n += int64(sz)
	if err != nil {
		return
	}
	buf := make([]byte, 0, 4096)
	for _, c := range p.chunks {
		buf = c.appendTo(buf[:0])
		sz, err = w.Write(buf)
		n += int64(sz)
		if err != nil {
			return
		}
	}
	return
}

// FindChunk returns the first chunk whose type is typ.
func (p *PNG) FindChunk(typ string) (Chunk, bool) {
	i := p.index(typ)
	if i < 0 {
		return Chunk{}, false
	}
	return p.chunks[i], true
}

// ChunksByType returns every chunk whose type is typ, in order.
func (p *PNG) ChunksByType(typ string) []Chunk {
	l := make([]Chunk, 0)
	for _, c := range p.chunks {
		if c.typ.String() == typ {
			l = append(l, c)
		}
	}
	return l
}

// AppendChunk adds c to the end of the chunk list. A zero Chunk, such as the
// one FindChunk returns on a miss, has no type code and is ignored.
func (p *PNG) AppendChunk(c Chunk) {
	if c.typ.IsZero() {
		return
	}
	p.chunks = append(p.chunks, c)
}

// RemoveChunk removes and returns the first chunk whose type is typ.
// Later chunks of the same type are left in place.
func (p *PNG) RemoveChunk(typ string) (Chunk, error) {
	i := p.index(typ)
	if i < 0 {
		return Chunk{}, &NotFoundError{Type: typ}
	}
	c := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return c, nil
}

// Chunks returns the chunks in their current order.
func (p *PNG) Chunks() []Chunk {
	l := make([]Chunk, len(p.chunks))
	copy(l, p.chunks)
	return l
}

// Len is the number of chunks.
func (p *PNG) Len() int { return len(p.chunks) }

func (p *PNG) index(typ string) int {
	for i, c := range p.chunks {
		if c.typ.String() == typ {
			return i
		}
	}
	return -1
}
