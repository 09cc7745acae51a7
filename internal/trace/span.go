package trace

import (
	"context"
	"time"
)

type recorderKey struct{}
type spanKey struct{}

// WithRecorder attaches r to ctx. A nil r turns tracing off below ctx.
func WithRecorder(ctx context.Context, r *Recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, r)
}

// FromContext returns the recorder attached to ctx, or nil.
func FromContext(ctx context.Context) *Recorder {
	r, _ := ctx.Value(recorderKey{}).(*Recorder)
	return r
}

// Span is an open begin/end pair. A span whose scope the level filters out
// is inert but still passes its parent on, so node marks under a hidden
// phase attach to the turn.
type Span struct {
	rec     *Recorder
	id      uint64 // 0 when inert
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

// Start opens a span under the span carried by ctx and returns a context
// carrying the new one.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	rec := FromContext(ctx)
	s := &Span{rec: rec, scope: scope, name: name}
	if outer, ok := ctx.Value(spanKey{}).(*Span); ok {
		s.parent = outer.anchor()
	}
	if rec.Level().Allows(scope) {
		s.id = rec.nextID()
		s.started = time.Now()
		rec.record(Event{At: s.started, Kind: KindBegin, Scope: scope, ID: s.id, Parent: s.parent, Name: name})
	}
	return context.WithValue(ctx, spanKey{}, s), s
}

// anchor is the id children attach to.
func (s *Span) anchor() uint64 {
	if s.id != 0 {
		return s.id
	}
	return s.parent
}

// Wants reports whether a child of the given scope would be recorded.
func (s *Span) Wants(scope Scope) bool {
	return s != nil && s.rec.Level().Allows(scope)
}

// Set attaches a counter to the end event.
func (s *Span) Set(key, value string) *Span {
	if s != nil && s.id != 0 {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// Mark records a single event under s.
func (s *Span) Mark(scope Scope, name, detail string) {
	if !s.Wants(scope) {
		return
	}
	s.rec.record(Event{
		At:     time.Now(),
		Kind:   KindMark,
		Scope:  scope,
		ID:     s.rec.nextID(),
		Parent: s.anchor(),
		Name:   name,
		Detail: detail,
	})
}

// End closes the span and returns how long it was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 {
		return 0
	}
	took := time.Since(s.started)
	s.rec.record(Event{
		At:     time.Now(),
		Kind:   KindEnd,
		Scope:  s.scope,
		ID:     s.id,
		Parent: s.parent,
		Name:   s.name,
		Detail: detail,
		Took:   took,
		Attrs:  s.attrs,
	})
	return took
}
