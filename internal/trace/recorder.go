package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// DefaultRingSize is the buffer capacity used when none is configured.
const DefaultRingSize = 4096

// Config describes a recorder. Output wins over OutputPath; an empty path
// or "-" means stderr.
type Config struct {
	Level      Level
	Mode       Mode
	Format     Format // zero: chosen from OutputPath
	Output     io.Writer
	OutputPath string
	RingSize   int
}

// Recorder receives the events of a session. It streams them, keeps the
// last RingSize of them in memory, or both. A nil *Recorder records
// nothing, so callers never check whether tracing is on.
type Recorder struct {
	level  Level
	format Format
	ids    atomic.Uint64

	mu    sync.Mutex
	w     io.Writer // nil: no stream
	owned io.Closer // file opened by New
	ring  []Event   // nil: no buffer
	next  int
	full  bool
}

// New builds a recorder for cfg. It returns nil for LevelOff.
func New(cfg Config) (*Recorder, error) {
	if cfg.Level == LevelOff {
		return nil, nil
	}
	if cfg.Format == 0 {
		cfg.Format = FormatFor(cfg.OutputPath)
	}
	r := &Recorder{level: cfg.Level, format: cfg.Format}

	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		switch {
		case cfg.Output != nil:
			r.w = cfg.Output
		case cfg.OutputPath == "" || cfg.OutputPath == "-":
			r.w = os.Stderr
		default:
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output: %w", err)
			}
			r.w, r.owned = f, f
		}
	}
	switch cfg.Mode {
	case ModeRing, ModeBoth:
		size := cfg.RingSize
		if size <= 0 {
			size = DefaultRingSize
		}
		r.ring = make([]Event, size)
	case ModeStream:
	default:
		return nil, fmt.Errorf("unknown trace mode: %v", cfg.Mode)
	}
	return r, nil
}

// NewRing is a buffer-only recorder.
func NewRing(size int, level Level) *Recorder {
	r, err := New(Config{Level: level, Mode: ModeRing, Format: FormatText, RingSize: size})
	if err != nil {
		panic(err) // ring mode opens nothing
	}
	return r
}

// NewStream is a recorder that writes every event to w.
func NewStream(w io.Writer, level Level, f Format) *Recorder {
	r, err := New(Config{Level: level, Mode: ModeStream, Format: f, Output: w})
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Recorder) Level() Level {
	if r == nil {
		return LevelOff
	}
	return r.level
}

func (r *Recorder) nextID() uint64 {
	return r.ids.Add(1)
}

func (r *Recorder) record(ev Event) {
	if r == nil || !r.level.Allows(ev.Scope) {
		return
	}
	var line []byte
	if r.w != nil {
		line = ev.Append(nil, r.format)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ring != nil {
		r.ring[r.next] = ev
		r.next = (r.next + 1) % len(r.ring)
		r.full = r.full || r.next == 0
	}
	if r.w != nil {
		// ошибка записи трассы не должна ронять строку
		_, _ = r.w.Write(line)
	}
}

// Buffered reports whether the recorder keeps events in memory.
func (r *Recorder) Buffered() bool {
	return r != nil && r.ring != nil
}

// Events returns the buffered events, oldest first.
func (r *Recorder) Events() []Event {
	if !r.Buffered() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Event(nil), r.ring[:r.next]...)
	}
	out := make([]Event, 0, len(r.ring))
	out = append(out, r.ring[r.next:]...)
	return append(out, r.ring[:r.next]...)
}

// Dump writes the buffered events to w as text.
func (r *Recorder) Dump(w io.Writer) error {
	var buf []byte
	for _, ev := range r.Events() {
		buf = ev.Append(buf, FormatText)
	}
	_, err := w.Write(buf)
	return err
}

// Close closes the output file if New opened one.
func (r *Recorder) Close() error {
	if r == nil || r.owned == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.owned.Close()
	r.owned, r.w = nil, nil
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
