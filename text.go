//
// textual chunks: tEXt and zTXt
//
// PNG spec, 11.3.4 Textual information
// https://www.w3.org/TR/2003/REC-PNG-20031110/#11textinfo
//

package pngchunk

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	bst "github.com/mixcode/binarystruct"
	"golang.org/x/text/encoding/charmap"
)

var (
	TypeText           = MustChunkType("tEXt")
	TypeCompressedText = MustChunkType("zTXt")
)

const (
	maxKeywordLen      = 79
	compressionDeflate = 0 // the only compression method defined by PNG

	// MaxTextSize caps the decompressed text of a zTXt chunk.
	MaxTextSize = 1 << 20
)

// Text is the decoded content of a tEXt or zTXt chunk.
type Text struct {
	Keyword    string
	Text       string
	Compressed bool
}

// DecodeText decodes a tEXt or zTXt chunk. Keyword and text are stored as
// ISO-8859-1 and returned as UTF-8.
func DecodeText(c Chunk) (t Text, err error) {
	switch c.typ {
	case TypeText:
	case TypeCompressedText:
		t.Compressed = true
	default:
		err = ErrNotTextual
		return
	}

	nul := bytes.IndexByte(c.data, 0)
	if nul < 1 || nul > maxKeywordLen {
		err = fmt.Errorf("%w: bad keyword in %s", ErrMalformedText, c.typ)
		return
	}

	var raw []byte
	if !t.Compressed {
		var hdr struct {
			Keyword string `binary:"zstring"` // keyword, NUL terminated
		}
		if _, err = bst.Unmarshal(c.data, bst.BigEndian, &hdr); err != nil {
			return
		}
		t.Keyword = decodeLatin1(hdr.Keyword)
		raw = c.data[nul+1:]
	} else {
		if nul+1 >= len(c.data) {
			err = fmt.Errorf("%w: missing compression method", ErrMalformedText)
			return
		}
		var hdr struct {
			Keyword           string `binary:"zstring"`
			CompressionMethod byte
		}
		if _, err = bst.Unmarshal(c.data, bst.BigEndian, &hdr); err != nil {
			return
		}
		if hdr.CompressionMethod != compressionDeflate {
			err = &CompressionMethodError{Method: hdr.CompressionMethod}
			return
		}
		t.Keyword = decodeLatin1(hdr.Keyword)

		var zl io.ReadCloser
		zl, err = zlib.NewReader(bytes.NewReader(c.data[nul+2:]))
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedText, err)
			return
		}
		raw, err = io.ReadAll(io.LimitReader(zl, MaxTextSize+1))
		zl.Close()
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedText, err)
			return
		}
		if len(raw) > MaxTextSize {
			err = fmt.Errorf("%w: text exceeds %d bytes", ErrMalformedText, MaxTextSize)
			return
		}
	}
	t.Text = decodeLatin1(string(raw))
	return t, nil
}

// NewTextChunk builds an uncompressed tEXt chunk.
func NewTextChunk(keyword, text string) (Chunk, error) {
	k, body, err := encodeText(keyword, text)
	if err != nil {
		return Chunk{}, err
	}
	hdr := struct {
		Keyword string `binary:"zstring"`
	}{k}
	data, err := bst.Marshal(hdr, bst.BigEndian)
	if err != nil {
		return Chunk{}, err
	}
	return NewChunk(TypeText, append(data, body...)), nil
}

// NewCompressedTextChunk builds a zlib compressed zTXt chunk.
func NewCompressedTextChunk(keyword, text string) (Chunk, error) {
	k, body, err := encodeText(keyword, text)
	if err != nil {
		return Chunk{}, err
	}
	hdr := struct {
		Keyword           string `binary:"zstring"`
		CompressionMethod byte
	}{k, compressionDeflate}
	data, err := bst.Marshal(hdr, bst.BigEndian)
	if err != nil {
		return Chunk{}, err
	}

	buf := bytes.NewBuffer(data)
	zw := zlib.NewWriter(buf)
	if _, err = zw.Write(body); err != nil {
		return Chunk{}, err
	}
	if err = zw.Close(); err != nil {
		return Chunk{}, err
	}
	return NewChunk(TypeCompressedText, buf.Bytes()), nil
}

// convert keyword and text to ISO-8859-1 and check the keyword
func encodeText(keyword, text string) (k string, body []byte, err error) {
	enc := charmap.ISO8859_1.NewEncoder()
	if k, err = enc.String(keyword); err != nil {
		err = fmt.Errorf("%w: keyword is not latin-1: %v", ErrMalformedText, err)
		return
	}
	if len(k) < 1 || len(k) > maxKeywordLen {
		err = fmt.Errorf("%w: keyword length %d", ErrMalformedText, len(k))
		return
	}
	for i := 0; i < len(k); i++ {
		// printable Latin-1 only
		if c := k[i]; c < 0x20 || (c > 0x7e && c < 0xa1) {
			err = fmt.Errorf("%w: keyword byte 0x%02x", ErrMalformedText, c)
			return
		}
	}
	if body, err = enc.Bytes([]byte(text)); err != nil {
		err = fmt.Errorf("%w: text is not latin-1: %v", ErrMalformedText, err)
		return
	}
	return
}

func decodeLatin1(s string) string {
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}
