package trace

import (
	"fmt"
	"strings"
)

// Level selects which scopes reach the recorder.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // session/batch and lines
	LevelPhase        // plus lex+parse, eval, render
	LevelDetail       // as phase, span ends carry counters
	LevelDebug        // plus every evaluated node
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Allows reports whether events of scope are recorded at this level.
func (l Level) Allows(scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case l == LevelError:
		return scope <= ScopeTurn
	case l < LevelDebug:
		return scope <= ScopePhase
	default:
		return true
	}
}

// Detailed reports whether span ends should carry counters.
func (l Level) Detailed() bool {
	return l >= LevelDetail
}

// Mode says where a recorder puts events.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // written as they happen
	ModeRing                   // last N kept in memory, dumped at exit
	ModeBoth
)

var modeNames = map[string]Mode{"stream": ModeStream, "ring": ModeRing, "both": ModeBoth}

func (m Mode) String() string {
	for name, v := range modeNames {
		if v == m {
			return name
		}
	}
	return "unknown"
}

func ParseMode(s string) (Mode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("invalid trace mode: %q (expected: stream|ring|both)", s)
}
