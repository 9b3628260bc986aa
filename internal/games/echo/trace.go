package echo

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// TraceWriter streams snapshots as consecutive msgpack values.
type TraceWriter struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	frames uint64
}

// NewTraceWriter creates a trace writer on w. Call Flush when done.
func NewTraceWriter(w io.Writer) *TraceWriter {
	buf := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(buf)
	enc.UseCompactInts(true)
	return &TraceWriter{buf: buf, enc: enc}
}

// Write appends one frame, numbering it in write order.
func (t *TraceWriter) Write(snap Snapshot) error {
	snap.Frame = t.frames
	if err := t.enc.Encode(&snap); err != nil {
		return fmt.Errorf("trace: cannot encode frame %d: %w", t.frames, err)
	}
	t.frames++
	return nil
}

// Frames returns how many frames were written.
func (t *TraceWriter) Frames() uint64 {
	return t.frames
}

// Flush writes buffered frames to the underlying writer.
func (t *TraceWriter) Flush() error {
	if err := t.buf.Flush(); err != nil {
		return fmt.Errorf("trace: cannot flush: %w", err)
	}
	return nil
}

// ReadTrace decodes every frame from r.
func ReadTrace(r io.Reader) ([]Snapshot, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	var frames []Snapshot
	for {
		var snap Snapshot
		if err := dec.Decode(&snap); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, fmt.Errorf("trace: cannot decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, snap)
	}
}
