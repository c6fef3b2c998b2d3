// Package commands runs the pngme operations: each one loads a whole PNG
// file, works on the parsed chunk list and, when it changed, saves the
// whole file back.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mixcode/pngchunk"
	"github.com/rs/zerolog/log"
)

var ErrChunkExists = errors.New("commands: chunk already exists, remove it first")

// Options tunes command behavior; it is filled from the config file.
type Options struct {
	Overwrite bool
	Textual   bool
	Summary   bool
}

// Encode appends a chunk of type typ holding message. A file that already
// has a chunk of that type is left alone unless opts.Overwrite is set.
func Encode(path, typ, message string, opts Options) error {
	ct, err := pngchunk.ParseChunkTypeString(typ)
	if err != nil {
		return err
	}
	img, mode, err := load(path)
	if err != nil {
		return err
	}

	if _, ok := img.FindChunk(ct.String()); ok {
		if !opts.Overwrite {
			return fmt.Errorf("%s: %w", ct, ErrChunkExists)
		}
		old, err := img.RemoveChunk(ct.String())
		if err != nil {
			return err
		}
		log.Debug().Str("path", path).Stringer("chunk", old).Msg("replacing chunk")
	}

	c := pngchunk.NewChunk(ct, []byte(message))
	img.AppendChunk(c)
	if err := save(path, img, mode); err != nil {
		return err
	}
	log.Info().Str("path", path).Stringer("chunk", c).Msg("encoded message")
	return nil
}

// Decode writes "<type>: <text>" for the first chunk of type typ.
func Decode(path, typ string, w io.Writer) error {
	ct, err := pngchunk.ParseChunkTypeString(typ)
	if err != nil {
		return err
	}
	img, _, err := load(path)
	if err != nil {
		return err
	}
	c, ok := img.FindChunk(ct.String())
	if !ok {
		return &pngchunk.NotFoundError{Type: ct.String()}
	}
	log.Debug().Str("path", path).Stringer("chunk", c).Msg("decoded chunk")
	_, err = fmt.Fprintf(w, "%s: %s\n", ct, c.DataAsText())
	return err
}

// Remove deletes the first chunk of type typ and saves the file.
func Remove(path, typ string) (pngchunk.Chunk, error) {
	ct, err := pngchunk.ParseChunkTypeString(typ)
	if err != nil {
		return pngchunk.Chunk{}, err
	}
	img, mode, err := load(path)
	if err != nil {
		return pngchunk.Chunk{}, err
	}
	c, err := img.RemoveChunk(ct.String())
	if err != nil {
		return pngchunk.Chunk{}, err
	}
	if err := save(path, img, mode); err != nil {
		return pngchunk.Chunk{}, err
	}
	log.Info().Str("path", path).Stringer("chunk", c).Msg("removed chunk")
	return c, nil
}

// Print writes one "<type>: <text>" line per chunk, in file order.
func Print(path string, w io.Writer, opts Options) error {
	img, _, err := load(path)
	if err != nil {
		return err
	}
	if opts.Summary {
		size := uint64(len(img.Bytes()))
		if _, err := fmt.Fprintf(w, "%s: %d chunks, %s\n", filepath.Base(path), img.Len(), humanize.Bytes(size)); err != nil {
			return err
		}
	}
	for _, c := range img.Chunks() {
		if _, err := fmt.Fprintln(w, render(c, opts)); err != nil {
			return err
		}
	}
	return nil
}

func render(c pngchunk.Chunk, opts Options) string {
	if opts.Textual {
		txt, err := pngchunk.DecodeText(c)
		if err == nil {
			return fmt.Sprintf("%s: %s=%s", c.Type(), txt.Keyword, txt.Text)
		}
		if !errors.Is(err, pngchunk.ErrNotTextual) {
			log.Warn().Err(err).Stringer("chunk", c).Msg("cannot decode textual chunk")
		}
	}
	return fmt.Sprintf("%s: %s", c.Type(), c.DataAsText())
}

// read and parse a whole PNG file
func load(path string) (*pngchunk.PNG, os.FileMode, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	img, err := pngchunk.Parse(b)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("chunks", img.Len()).Int("bytes", len(b)).Msg("loaded png")
	return img, fi.Mode().Perm(), nil
}

// write to a temporary file first, then replace the original
func save(path string, img *pngchunk.PNG, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	n, err := img.WriteTo(tmp)
	if err == nil {
		err = tmp.Chmod(mode)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int64("bytes", n).Msg("saved png")
	return nil
}
