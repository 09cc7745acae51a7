package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Scope is the granularity of an event. Coarser scopes have lower values.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // a REPL session or a batch run
	ScopeTurn                    // one input line
	ScopePhase                   // lex+parse, eval, render
	ScopeNode                    // one evaluated tree node
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeTurn:
		return "turn"
	case ScopePhase:
		return "phase"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Kind tells span boundaries from single marks.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindMark
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindMark:
		return "mark"
	default:
		return "unknown"
	}
}

// Attr is one counter attached to a span end, e.g. nodes=5.
type Attr struct {
	Key   string
	Value string
}

// Event is what a recorder stores. ID is unique within one recorder;
// Parent is 0 for driver spans.
type Event struct {
	At     time.Time
	Kind   Kind
	Scope  Scope
	ID     uint64
	Parent uint64
	Name   string
	Detail string
	Took   time.Duration // KindEnd only
	Attrs  []Attr
}

// Format is the encoding of streamed and dumped events.
type Format uint8

const (
	FormatText   Format = iota + 1
	FormatNDJSON        // one JSON object per line
)

// FormatFor picks NDJSON for *.ndjson and *.jsonl paths, text otherwise.
func FormatFor(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// Append encodes ev in format f onto buf, newline included.
func (ev *Event) Append(buf []byte, f Format) []byte {
	if f == FormatNDJSON {
		return ev.appendJSON(buf)
	}
	return ev.appendText(buf)
}

// appendText writes one line:
//
//	15:04:05.000001     end turn:turn #2^1 (ok) 41µs failures=0
//
// Nested scopes are indented two spaces per level below the driver.
func (ev *Event) appendText(buf []byte) []byte {
	buf = ev.At.AppendFormat(buf, "15:04:05.000000")
	buf = append(buf, ' ')
	for s := ScopeDriver; s < ev.Scope; s++ {
		buf = append(buf, "  "...)
	}
	buf = fmt.Appendf(buf, "%5s %s:%s #%d", ev.Kind, ev.Scope, ev.Name, ev.ID)
	if ev.Parent != 0 {
		buf = append(buf, '^')
		buf = strconv.AppendUint(buf, ev.Parent, 10)
	}
	if ev.Detail != "" {
		buf = fmt.Appendf(buf, " (%s)", ev.Detail)
	}
	if ev.Kind == KindEnd {
		buf = append(buf, ' ')
		buf = append(buf, ev.Took.String()...)
	}
	for _, a := range ev.Attrs {
		buf = fmt.Appendf(buf, " %s=%s", a.Key, a.Value)
	}
	return append(buf, '\n')
}

type jsonEvent struct {
	At     string            `json:"at"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	Name   string            `json:"name"`
	ID     uint64            `json:"id"`
	Parent uint64            `json:"parent,omitempty"`
	Detail string            `json:"detail,omitempty"`
	TookNS int64             `json:"took_ns,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

func (ev *Event) appendJSON(buf []byte) []byte {
	j := jsonEvent{
		At:     ev.At.Format(time.RFC3339Nano),
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Name:   ev.Name,
		ID:     ev.ID,
		Parent: ev.Parent,
		Detail: ev.Detail,
		TookNS: ev.Took.Nanoseconds(),
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		// только строки и числа
		panic(fmt.Errorf("trace: marshal event: %w", err))
	}
	buf = append(buf, data...)
	return append(buf, '\n')
}
