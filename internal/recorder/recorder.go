// Package recorder writes simulation snapshots to a zstd-compressed stream
// of msgpack records and reads them back.
package recorder

import (
	"errors"
	"fmt"
	"io"
	"os"

	"flightmap/internal/game/simulation"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

const FILE_SUFFIX = ".msgpack.zst"

type Writer struct {
	zw    *zstd.Encoder
	enc   *msgpack.Encoder
	close io.Closer
	count int
}

func NewWriter(w io.Writer) (*Writer, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	return &Writer{zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

// Create opens path for writing and returns a Writer that closes the file
// on Close.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	w, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.close = f
	return w, nil
}

func (w *Writer) Write(snap simulation.Snapshot) error {
	if err := w.enc.Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot %d: %w", snap.Tick, err)
	}
	w.count++
	return nil
}

func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) Close() error {
	err := w.zw.Close()
	if w.close != nil {
		err = errors.Join(err, w.close.Close())
	}
	return err
}

type Reader struct {
	zr    *zstd.Decoder
	dec   *msgpack.Decoder
	close io.Closer
}

func NewReader(r io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	return &Reader{zr: zr, dec: msgpack.NewDecoder(zr)}, nil
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.close = f
	return r, nil
}

// Next returns the next snapshot, or io.EOF after the last one.
func (r *Reader) Next() (simulation.Snapshot, error) {
	var snap simulation.Snapshot
	if err := r.dec.Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return snap, io.EOF
		}
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (r *Reader) ReadAll() ([]simulation.Snapshot, error) {
	var out []simulation.Snapshot
	for {
		snap, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, snap)
	}
}

func (r *Reader) Close() error {
	r.zr.Close()
	if r.close != nil {
		return r.close.Close()
	}
	return nil
}
